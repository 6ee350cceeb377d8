package splunkd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
)

// List returns every record in the storage/passwords collection visible to
// the add-on namespace.
func (c *Client) List(ctx context.Context) ([]*model.Secret, error) {
	resp, err := c.do(ctx, c.servicesNS("storage", "passwords"), nil)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Secret, 0, len(resp.Entry))
	for _, e := range resp.Entry {
		out = append(out, &model.Secret{
			Realm: contentString(e.Content["realm"]),
			Name:  contentString(e.Content["username"]),
			Value: contentString(e.Content["clear_password"]),
		})
	}
	return out, nil
}

// Lookup resolves key (realm:name:) to a weak reference, or
// model.ErrSecretNotFound when no record exists.
func (c *Client) Lookup(ctx context.Context, key string) (*model.SecretRef, error) {
	resp, err := c.do(ctx, c.servicesNS("storage", "passwords", key), nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", model.ErrSecretNotFound, key)
		}
		return nil, err
	}
	if len(resp.Entry) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrSecretNotFound, key)
	}
	realm := contentString(resp.Entry[0].Content["realm"])
	name := contentString(resp.Entry[0].Content["username"])
	if realm == "" && name == "" {
		// Older splunkd versions omit content on the keyed endpoint; fall
		// back to splitting the entry name (realm:name:).
		parts := strings.SplitN(resp.Entry[0].Name, ":", 3)
		if len(parts) >= 2 {
			realm, name = parts[0], parts[1]
		}
	}
	return &model.SecretRef{Realm: realm, Name: name}, nil
}

// Create stores a new record under realm:name:.
func (c *Client) Create(ctx context.Context, s *model.Secret) error {
	form := url.Values{
		"name":     {s.Name},
		"password": {s.Value},
		"realm":    {s.Realm},
	}
	if _, err := c.do(ctx, c.servicesNS("storage", "passwords"), form); err != nil {
		return err
	}
	return nil
}

// Update replaces the stored value of the record ref points at.
func (c *Client) Update(ctx context.Context, ref *model.SecretRef, value string) error {
	form := url.Values{"password": {value}}
	if _, err := c.do(ctx, c.servicesNS("storage", "passwords", ref.Key()), form); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", model.ErrSecretNotFound, ref.Key())
		}
		return err
	}
	return nil
}

var _ domain.SecretStore = (*Client)(nil)
