package splunkd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
)

// FetchStanza reads domain/stanza via the configs/conf-<domain> endpoint.
// A missing stanza in a reachable conf file maps to model.ErrStanzaNotFound;
// a missing conf file maps to model.ErrDomainUnavailable.
func (c *Client) FetchStanza(ctx context.Context, domainName, stanza string) (*model.Stanza, error) {
	resp, err := c.do(ctx, c.servicesNS("configs", "conf-"+domainName, stanza), nil)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		// 404 is ambiguous: unknown conf file and unknown stanza answer the
		// same. Probe the conf file itself to tell them apart.
		if _, ferr := c.do(ctx, c.servicesNS("configs", "conf-"+domainName), nil); ferr != nil {
			if isNotFound(ferr) {
				return nil, fmt.Errorf("%w: %s", model.ErrDomainUnavailable, domainName)
			}
			return nil, ferr
		}
		return nil, fmt.Errorf("%w: %s/%s", model.ErrStanzaNotFound, domainName, stanza)
	}
	if len(resp.Entry) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", model.ErrStanzaNotFound, domainName, stanza)
	}

	props := make(map[string]string)
	for k, v := range resp.Entry[0].Content {
		// splunkd mixes eai: bookkeeping keys into content.
		if strings.HasPrefix(k, "eai:") || k == "disabled" {
			continue
		}
		props[k] = contentString(v)
	}
	return &model.Stanza{Domain: domainName, Name: stanza, Properties: props}, nil
}

// UpdateStanza writes properties into domain/stanza, creating the stanza
// when it does not exist yet. Properties not named are left untouched.
func (c *Client) UpdateStanza(ctx context.Context, domainName, stanza string, props map[string]string) error {
	form := url.Values{}
	for k, v := range props {
		form.Set(k, v)
	}
	_, err := c.do(ctx, c.servicesNS("configs", "conf-"+domainName, stanza), form)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return err
	}
	form.Set("name", stanza)
	if _, cerr := c.do(ctx, c.servicesNS("configs", "conf-"+domainName), form); cerr != nil {
		return cerr
	}
	return nil
}

var _ domain.ConfigService = (*Client)(nil)
