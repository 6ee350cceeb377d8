package setup

import (
	"context"
	"fmt"

	"github.com/spurintel/spursetup/domain/model"
)

// complete runs the completion gate: set the configured flag, issue the
// registry reload, then hand back the redirect instruction. The order is
// load-bearing: the reload must be issued before the surface navigates, or
// the home view races a stale unconfigured flag.
func (u *UseCase) complete(ctx context.Context) (*model.Redirect, error) {
	props := map[string]string{model.PropConfigured: model.FormatFlag(true)}
	if err := u.updateStanza(ctx, model.DomainInstall, model.StanzaInstall, props); err != nil {
		return nil, fmt.Errorf("set configured flag: %w", err)
	}

	cctx, cancel := u.callCtx(ctx)
	defer cancel()
	if err := u.Ports.Apps.Reload(cctx, u.AppName); err != nil {
		return nil, fmt.Errorf("reload app %s: %w", u.AppName, err)
	}

	return &model.Redirect{Path: u.HomePath, Delay: u.RedirectDelay}, nil
}
