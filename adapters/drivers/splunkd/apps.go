package splunkd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
)

// AppRegistry adapts the apps/local endpoints. It is a separate type so the
// registry's List does not collide with the secret store's on Client.
type AppRegistry struct {
	c *Client
}

// Apps returns the app registry view of the client.
func (c *Client) Apps() *AppRegistry {
	return &AppRegistry{c: c}
}

// List returns the installed app registrations.
func (a *AppRegistry) List(ctx context.Context) ([]*model.App, error) {
	resp, err := a.c.do(ctx, a.c.services("apps", "local"), nil)
	if err != nil {
		return nil, err
	}
	out := make([]*model.App, 0, len(resp.Entry))
	for _, e := range resp.Entry {
		out = append(out, appFromEntry(e))
	}
	return out, nil
}

// Get returns a single app registration by name.
func (a *AppRegistry) Get(ctx context.Context, name string) (*model.App, error) {
	resp, err := a.c.do(ctx, a.c.services("apps", "local", name), nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", model.ErrAppNotFound, name)
		}
		return nil, err
	}
	if len(resp.Entry) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrAppNotFound, name)
	}
	return appFromEntry(resp.Entry[0]), nil
}

// Reload asks splunkd to re-read the app's configuration.
func (a *AppRegistry) Reload(ctx context.Context, name string) error {
	if _, err := a.c.do(ctx, a.c.services("apps", "local", name, "_reload"), url.Values{}); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", model.ErrAppNotFound, name)
		}
		return err
	}
	return nil
}

func appFromEntry(e apiEntry) *model.App {
	return &model.App{
		Name:       e.Name,
		Label:      contentString(e.Content["label"]),
		Version:    contentString(e.Content["version"]),
		Configured: model.ParseFlag(contentString(e.Content["configured"])),
	}
}

var _ domain.AppRegistry = (*AppRegistry)(nil)
