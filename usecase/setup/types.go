package setup

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
)

// Notifier receives state transitions and the final outcome of a run.
// The display surface implements it; NopNotifier is used elsewhere.
type Notifier interface {
	StateChanged(ctx context.Context, runID string, state model.State)
	RunFinished(ctx context.Context, out *model.Outcome)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) StateChanged(context.Context, string, model.State) {}
func (NopNotifier) RunFinished(context.Context, *model.Outcome)       {}

// UseCase wires the collaborator ports and policy needed for setup flows.
type UseCase struct {
	Ports    *domain.Ports
	Notifier Notifier

	// AppName is the registration reloaded by the completion gate.
	AppName string
	// HomePath is the redirect target after completion.
	HomePath string
	// RedirectDelay is how long the surface waits before navigating.
	RedirectDelay time.Duration
	// SkipWhenConfigured makes Probe report that the setup entry point
	// should be skipped when the configured flag is already set.
	SkipWhenConfigured bool
	// CallTimeout bounds each network call to a collaborator. A timeout is
	// fatal and reported with the network-timeout stage label.
	CallTimeout time.Duration

	running atomic.Bool
}

// Option tweaks a UseCase under construction.
type Option func(*UseCase)

// WithNotifier attaches a display surface notifier.
func WithNotifier(n Notifier) Option {
	return func(u *UseCase) { u.Notifier = n }
}

// WithSkipWhenConfigured sets the re-entry gating policy.
func WithSkipWhenConfigured(skip bool) Option {
	return func(u *UseCase) { u.SkipWhenConfigured = skip }
}

// WithCallTimeout overrides the per-call network timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(u *UseCase) { u.CallTimeout = d }
}

// New returns a UseCase with add-on defaults applied.
func New(ports *domain.Ports, opts ...Option) *UseCase {
	u := &UseCase{
		Ports:         ports,
		Notifier:      NopNotifier{},
		AppName:       model.DefaultAppName,
		HomePath:      model.DefaultHomePath,
		RedirectDelay: 800 * time.Millisecond,
		CallTimeout:   15 * time.Second,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// callCtx derives the bounded per-call context for collaborator calls.
func (u *UseCase) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.CallTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.CallTimeout)
}
