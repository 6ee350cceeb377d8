package setup

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spurintel/spursetup/domain/model"
)

// applyOptional writes each optional setting whose domain probed available.
// Write failures are demoted to warnings so one broken domain cannot sink
// the run; invalid operator input and network timeouts are returned as
// errors. Domains marked unavailable are never attempted.
func (u *UseCase) applyOptional(ctx context.Context, in *model.Input, probe *ProbeOutput, out *model.Outcome) error {
	if probe.Threshold.Availability.Writable() {
		n, err := model.ParseThreshold(in.Threshold)
		if err != nil {
			return err
		}
		props := map[string]string{model.PropThreshold: strconv.Itoa(n)}
		if err := u.updateStanza(ctx, model.DomainCustomAlerts, model.StanzaAlerts, props); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			out.Warn(fmt.Sprintf("could not save alert threshold: %v", err))
		}
	}

	if probe.ContextURL.Availability.Writable() {
		props := map[string]string{model.PropContextURL: model.NormalizeContextURL(in.ContextURL)}
		if err := u.updateStanza(ctx, model.DomainAPI, model.StanzaSettings, props); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			out.Warn(fmt.Sprintf("could not save API URL: %v", err))
		}
	}
	return nil
}

func (u *UseCase) updateStanza(ctx context.Context, domain, stanza string, props map[string]string) error {
	cctx, cancel := u.callCtx(ctx)
	defer cancel()
	return u.Ports.Config.UpdateStanza(cctx, domain, stanza, props)
}
