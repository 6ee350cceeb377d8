package setup

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/spurintel/spursetup/domain/model"
)

// RunInput is the user-triggered completion command.
type RunInput struct {
	Input model.Input
	// Probe is the availability snapshot taken when the form loaded. When
	// nil, Run probes itself before applying.
	Probe *ProbeOutput
}

// Run executes the end-to-end bootstrap sequence:
//
//	Probing → ApplyingOptional → PersistingSecret → Completing → Done
//
// Probe failures become warnings. Invalid optional input, any secret
// persistence failure, and any gate failure are fatal; the outcome carries
// the stage label. Exactly one run may be in flight at a time.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*model.Outcome, error) {
	if in == nil {
		return nil, model.ErrInputInvalid
	}
	if !u.running.CompareAndSwap(false, true) {
		return nil, model.ErrRunInProgress
	}
	defer u.running.Store(false)

	out := &model.Outcome{RunID: uuid.NewString(), State: model.StateIdle}
	defer u.Notifier.RunFinished(ctx, out)

	probe := in.Probe
	if probe == nil {
		u.setState(ctx, out, model.StateProbing)
		p, err := u.Probe(ctx)
		if err != nil {
			// Probe never blocks the run; kept for interface symmetry.
			out.Fail(model.StageProbing, err)
			return out, err
		}
		probe = p
	}
	out.Warnings = append(out.Warnings, probe.Warnings...)

	u.setState(ctx, out, model.StateApplyingOptional)
	if err := u.applyOptional(ctx, &in.Input, probe, out); err != nil {
		out.Fail(stageFor(err, model.StageApplyingOptional), err)
		return out, err
	}

	// Blank token with an existing record means keep the current value.
	if in.Input.Token == "" && probe.SecretExists {
		out.Warn("token unchanged: input left blank and a stored token exists")
	} else {
		u.setState(ctx, out, model.StatePersistingSecret)
		if err := u.persistSecret(ctx, in.Input.Token, probe.SecretExists); err != nil {
			out.Fail(stageFor(err, model.StagePersistingSecret), err)
			return out, err
		}
	}

	u.setState(ctx, out, model.StateCompleting)
	redirect, err := u.complete(ctx)
	if err != nil {
		out.Fail(stageFor(err, model.StageCompleting), err)
		return out, err
	}
	out.Redirect = redirect

	u.setState(ctx, out, model.StateDone)
	return out, nil
}

// setState advances the state machine and notifies the display surface.
func (u *UseCase) setState(ctx context.Context, out *model.Outcome, s model.State) {
	out.State = s
	u.Notifier.StateChanged(ctx, out.RunID, s)
}

// stageFor substitutes the network-timeout stage label when the failure was
// a bounded call deadline rather than a collaborator rejection.
func stageFor(err error, fallback model.Stage) model.Stage {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.StageNetworkTimeout
	}
	return fallback
}
