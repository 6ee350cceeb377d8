package setup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spurintel/spursetup/domain/model"
)

// ProbeOutput is the availability snapshot one orchestration run works from.
// It is computed fresh per run and never cached across runs.
type ProbeOutput struct {
	Threshold  model.FeatureState
	ContextURL model.FeatureState
	// SecretExists reports whether a token record is already present under
	// the fixed realm/name key.
	SecretExists bool
	// Configured is the persisted flag from the install domain.
	Configured bool
	// SkipSetup is true when policy says the setup entry point should not
	// be shown because the flag is already set.
	SkipSetup bool
	// Warnings carries one message per collaborator that failed to probe.
	Warnings []string
}

// Probe discovers which optional config domains are reachable, loads their
// current values, and looks up the existing token. Each probe is fault
// isolated: a failure marks that domain unavailable with a warning and the
// others proceed. Probe performs reads only.
func (u *UseCase) Probe(ctx context.Context) (*ProbeOutput, error) {
	out := &ProbeOutput{}

	var (
		wg          sync.WaitGroup
		warnings    [4]string
		secretRef   bool
		configured  bool
		thresholdFS model.FeatureState
		contextFS   model.FeatureState
	)

	// Independent reads are issued together and settle regardless of each
	// other's outcome; per-slot results keep warning order deterministic.
	wg.Add(4)
	go func() {
		defer wg.Done()
		thresholdFS, warnings[0] = u.probeFeature(ctx, model.DomainCustomAlerts, model.StanzaAlerts, model.PropThreshold)
	}()
	go func() {
		defer wg.Done()
		contextFS, warnings[1] = u.probeFeature(ctx, model.DomainAPI, model.StanzaSettings, model.PropContextURL)
	}()
	go func() {
		defer wg.Done()
		cctx, cancel := u.callCtx(ctx)
		defer cancel()
		ref, err := u.Ports.Secrets.Lookup(cctx, model.SecretKey())
		switch {
		case err == nil:
			secretRef = ref != nil
		case errors.Is(err, model.ErrSecretNotFound):
			// Normal for first-time setup.
		default:
			warnings[2] = fmt.Sprintf("secret store lookup failed: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		cctx, cancel := u.callCtx(ctx)
		defer cancel()
		st, err := u.Ports.Config.FetchStanza(cctx, model.DomainInstall, model.StanzaInstall)
		switch {
		case err == nil:
			configured = model.ParseFlag(st.Get(model.PropConfigured))
		case errors.Is(err, model.ErrStanzaNotFound):
			// Not configured yet.
		default:
			warnings[3] = fmt.Sprintf("install domain fetch failed: %v", err)
		}
	}()
	wg.Wait()

	out.Threshold = thresholdFS
	out.ContextURL = contextFS
	out.SecretExists = secretRef
	out.Configured = configured
	out.SkipSetup = u.SkipWhenConfigured && configured
	for _, w := range warnings {
		if w != "" {
			out.Warnings = append(out.Warnings, w)
		}
	}
	return out, nil
}

// probeFeature fetches one optional domain and classifies its availability.
func (u *UseCase) probeFeature(ctx context.Context, domain, stanza, prop string) (model.FeatureState, string) {
	cctx, cancel := u.callCtx(ctx)
	defer cancel()
	st, err := u.Ports.Config.FetchStanza(cctx, domain, stanza)
	if err != nil {
		if errors.Is(err, model.ErrStanzaNotFound) {
			return model.FeatureState{Availability: model.AvailableEmpty}, ""
		}
		return model.FeatureState{Availability: model.Unavailable},
			fmt.Sprintf("config domain %s unavailable: %v", domain, err)
	}
	v := st.Get(prop)
	if v == "" {
		return model.FeatureState{Availability: model.AvailableEmpty}, ""
	}
	return model.FeatureState{Availability: model.Available, Value: v}, ""
}
