package setup

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spurintel/spursetup/adapters/store/inmem"
	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
)

// recordingNotifier captures state transitions and the final outcome.
type recordingNotifier struct {
	mu     sync.Mutex
	states []model.State
	final  *model.Outcome
}

func (n *recordingNotifier) StateChanged(_ context.Context, _ string, s model.State) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.states = append(n.states, s)
}

func (n *recordingNotifier) RunFinished(_ context.Context, out *model.Outcome) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.final = out
}

func (n *recordingNotifier) sawState(s model.State) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, v := range n.states {
		if v == s {
			return true
		}
	}
	return false
}

func newTestStore() *inmem.Store {
	store := inmem.NewStore()
	store.SeedDefaults()
	return store
}

func confValue(t *testing.T, store *inmem.Store, domainName, stanza, key string) string {
	t.Helper()
	st, err := store.Config.FetchStanza(context.Background(), domainName, stanza)
	if err != nil {
		t.Fatalf("FetchStanza(%s/%s): %v", domainName, stanza, err)
	}
	return st.Get(key)
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("first run creates secret and completes", func(t *testing.T) {
		store := newTestStore()
		n := &recordingNotifier{}
		u := New(store.Ports(), WithNotifier(n))

		out, err := u.Run(ctx, &RunInput{Input: model.Input{
			Token:     "tok-123",
			Threshold: "1000",
		}})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !out.OK() {
			t.Fatalf("outcome not OK: %+v", out)
		}
		if got, _ := store.Secrets.Value(model.SecretKey()); got != "tok-123" {
			t.Errorf("secret value = %q, want tok-123", got)
		}
		if store.Secrets.Len() != 1 {
			t.Errorf("secret count = %d, want 1", store.Secrets.Len())
		}
		if got := confValue(t, store, model.DomainCustomAlerts, model.StanzaAlerts, model.PropThreshold); got != "1000" {
			t.Errorf("threshold = %q, want 1000", got)
		}
		if got := confValue(t, store, model.DomainAPI, model.StanzaSettings, model.PropContextURL); got != model.DefaultContextURL {
			t.Errorf("context URL = %q, want default", got)
		}
		if got := confValue(t, store, model.DomainInstall, model.StanzaInstall, model.PropConfigured); !model.ParseFlag(got) {
			t.Errorf("configured flag = %q, want set", got)
		}
		if reloads := store.Apps.Reloads(); len(reloads) != 1 || reloads[0] != model.DefaultAppName {
			t.Errorf("reloads = %v, want [%s]", reloads, model.DefaultAppName)
		}
		if out.Redirect == nil || out.Redirect.Path != model.DefaultHomePath {
			t.Errorf("redirect = %+v, want path %s", out.Redirect, model.DefaultHomePath)
		}
	})

	t.Run("existing secret is updated in place", func(t *testing.T) {
		store := newTestStore()
		seed := &model.Secret{Realm: model.SecretRealm, Name: model.SecretName, Value: "old"}
		if err := store.Secrets.Create(ctx, seed); err != nil {
			t.Fatal(err)
		}
		u := New(store.Ports())

		if _, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "new"}}); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if got, _ := store.Secrets.Value(model.SecretKey()); got != "new" {
			t.Errorf("secret value = %q, want new", got)
		}
		if store.Secrets.Len() != 1 {
			t.Errorf("secret count = %d, want 1 (no duplicate)", store.Secrets.Len())
		}
	})

	t.Run("blank token with existing secret skips persistence", func(t *testing.T) {
		store := newTestStore()
		seed := &model.Secret{Realm: model.SecretRealm, Name: model.SecretName, Value: "keep"}
		if err := store.Secrets.Create(ctx, seed); err != nil {
			t.Fatal(err)
		}
		n := &recordingNotifier{}
		u := New(store.Ports(), WithNotifier(n))

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: ""}})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !out.OK() {
			t.Fatalf("outcome not OK: %+v", out)
		}
		if n.sawState(model.StatePersistingSecret) {
			t.Error("persistence stage entered despite blank token and existing secret")
		}
		if got, _ := store.Secrets.Value(model.SecretKey()); got != "keep" {
			t.Errorf("secret value = %q, want keep", got)
		}
		found := false
		for _, w := range out.Warnings {
			if strings.Contains(w, "token unchanged") {
				found = true
			}
		}
		if !found {
			t.Errorf("warnings = %v, want token-unchanged notice", out.Warnings)
		}
	})

	t.Run("blank token without existing secret still attempts persistence", func(t *testing.T) {
		store := newTestStore()
		n := &recordingNotifier{}
		u := New(store.Ports(), WithNotifier(n))

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: ""}})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !n.sawState(model.StatePersistingSecret) {
			t.Error("persistence stage skipped; empty install would stay unauthenticated silently")
		}
		if store.Secrets.Len() != 1 {
			t.Errorf("secret count = %d, want 1", store.Secrets.Len())
		}
		if !out.OK() {
			t.Fatalf("outcome not OK: %+v", out)
		}
	})

	t.Run("negative threshold fails the run before persistence", func(t *testing.T) {
		store := newTestStore()
		n := &recordingNotifier{}
		u := New(store.Ports(), WithNotifier(n))

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "tok", Threshold: "-5"}})
		if err == nil {
			t.Fatal("Run succeeded, want validation failure")
		}
		if !errors.Is(err, model.ErrInputInvalid) {
			t.Errorf("err = %v, want ErrInputInvalid", err)
		}
		if out.Stage != model.StageApplyingOptional {
			t.Errorf("stage = %s, want %s", out.Stage, model.StageApplyingOptional)
		}
		if store.Secrets.Len() != 0 {
			t.Error("secret persisted despite failed validation")
		}
		if _, err := store.Config.FetchStanza(ctx, model.DomainInstall, model.StanzaInstall); err == nil {
			t.Error("configured flag written despite failed run")
		}
	})

	t.Run("unavailable domain is never written", func(t *testing.T) {
		store := newTestStore()
		store.Config.SetUnavailable(model.DomainCustomAlerts, true)
		u := New(store.Ports())

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "tok", Threshold: "7"}})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !out.OK() {
			t.Fatalf("outcome not OK: %+v", out)
		}
		if len(out.Warnings) == 0 {
			t.Error("no probe warning for unavailable domain")
		}
		store.Config.SetUnavailable(model.DomainCustomAlerts, false)
		if got := confValue(t, store, model.DomainCustomAlerts, model.StanzaAlerts, model.PropThreshold); got != "" {
			t.Errorf("threshold written to unavailable domain: %q", got)
		}
	})

	t.Run("optional write failure is a warning, not fatal", func(t *testing.T) {
		store := newTestStore()
		flaky := &failingDomainConfig{inner: store.Config, domain: model.DomainCustomAlerts}
		ports := &domain.Ports{Config: flaky, Secrets: store.Secrets, Apps: store.Apps}
		u := New(ports)

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "tok", Threshold: "7"}})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !out.OK() {
			t.Fatalf("outcome not OK: %+v", out)
		}
		found := false
		for _, w := range out.Warnings {
			if strings.Contains(w, "could not save alert threshold") {
				found = true
			}
		}
		if !found {
			t.Errorf("warnings = %v, want alert-threshold save warning", out.Warnings)
		}
		// The other optional setting and the completion gate still ran.
		if got := confValue(t, store, model.DomainAPI, model.StanzaSettings, model.PropContextURL); got != model.DefaultContextURL {
			t.Errorf("context URL = %q, want default", got)
		}
		if got := confValue(t, store, model.DomainInstall, model.StanzaInstall, model.PropConfigured); !model.ParseFlag(got) {
			t.Errorf("configured flag = %q, want set", got)
		}
	})

	t.Run("secret update failure is fatal with stage label", func(t *testing.T) {
		store := newTestStore()
		seed := &model.Secret{Realm: model.SecretRealm, Name: model.SecretName, Value: "old"}
		if err := store.Secrets.Create(ctx, seed); err != nil {
			t.Fatal(err)
		}
		store.Secrets.FailUpdate = errors.New("storage down")
		u := New(store.Ports())

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "new"}})
		if err == nil {
			t.Fatal("Run succeeded, want update failure")
		}
		if out.Stage != model.StagePersistingSecret {
			t.Errorf("stage = %s, want %s", out.Stage, model.StagePersistingSecret)
		}
		if got, _ := store.Secrets.Value(model.SecretKey()); got != "old" {
			t.Errorf("secret value = %q, want old left in place", got)
		}
		if len(store.Apps.Reloads()) != 0 {
			t.Error("reload issued despite failed persistence")
		}
	})

	t.Run("persistence failure is fatal with stage label", func(t *testing.T) {
		store := newTestStore()
		store.Secrets.FailCreate = errors.New("storage down")
		u := New(store.Ports())

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "tok"}})
		if err == nil {
			t.Fatal("Run succeeded, want persistence failure")
		}
		if out.Stage != model.StagePersistingSecret {
			t.Errorf("stage = %s, want %s", out.Stage, model.StagePersistingSecret)
		}
		if len(store.Apps.Reloads()) != 0 {
			t.Error("reload issued despite failed persistence")
		}
	})

	t.Run("flag write failure is fatal at completing", func(t *testing.T) {
		store := newTestStore()
		store.Config.FailUpdate = errors.New("config store down")
		u := New(store.Ports())

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "tok"}})
		if err == nil {
			t.Fatal("Run succeeded, want flag write failure")
		}
		if out.Stage != model.StageCompleting {
			t.Errorf("stage = %s, want %s", out.Stage, model.StageCompleting)
		}
		// Optional writes failed too, but only as warnings.
		if len(out.Warnings) == 0 {
			t.Error("no warnings for failed optional writes")
		}
		if len(store.Apps.Reloads()) != 0 {
			t.Error("reload issued despite failed flag write")
		}
	})

	t.Run("reload failure is fatal at completing", func(t *testing.T) {
		store := newTestStore()
		store.Apps.FailReload = errors.New("registry down")
		u := New(store.Ports())

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "tok"}})
		if err == nil {
			t.Fatal("Run succeeded, want gate failure")
		}
		if out.Stage != model.StageCompleting {
			t.Errorf("stage = %s, want %s", out.Stage, model.StageCompleting)
		}
		if out.Redirect != nil {
			t.Error("redirect scheduled despite failed reload")
		}
	})

	t.Run("reload is issued before redirect is handed out", func(t *testing.T) {
		store := newTestStore()
		u := New(store.Ports())

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "tok"}})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if len(store.Apps.Reloads()) != 1 {
			t.Fatal("reload not issued")
		}
		if out.Redirect == nil {
			t.Fatal("no redirect in outcome")
		}
		if out.Redirect.Delay <= 0 {
			t.Errorf("redirect delay = %v, want positive", out.Redirect.Delay)
		}
	})

	t.Run("second identical run is idempotent", func(t *testing.T) {
		store := newTestStore()
		u := New(store.Ports())
		in := &RunInput{Input: model.Input{Token: "tok", Threshold: "1000", ContextURL: "https://example.test/ctx/"}}

		if _, err := u.Run(ctx, in); err != nil {
			t.Fatalf("first Run: %v", err)
		}
		out, err := u.Run(ctx, in)
		if err != nil {
			t.Fatalf("second Run: %v", err)
		}
		if !out.OK() {
			t.Fatalf("second outcome not OK: %+v", out)
		}
		if got, _ := store.Secrets.Value(model.SecretKey()); got != "tok" {
			t.Errorf("secret value = %q, want tok", got)
		}
		if store.Secrets.Len() != 1 {
			t.Errorf("secret count = %d, want 1", store.Secrets.Len())
		}
		if got := confValue(t, store, model.DomainCustomAlerts, model.StanzaAlerts, model.PropThreshold); got != "1000" {
			t.Errorf("threshold = %q, want 1000", got)
		}
		if got := confValue(t, store, model.DomainAPI, model.StanzaSettings, model.PropContextURL); got != "https://example.test/ctx/" {
			t.Errorf("context URL = %q, want verbatim input", got)
		}
	})

	t.Run("concurrent trigger is rejected", func(t *testing.T) {
		store := newTestStore()
		release := make(chan struct{})
		entered := make(chan struct{})
		slow := &blockingConfig{inner: store.Config, entered: entered, release: release}
		ports := &domain.Ports{Config: slow, Secrets: store.Secrets, Apps: store.Apps}
		u := New(ports)

		done := make(chan error, 1)
		go func() {
			_, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "tok"}})
			done <- err
		}()
		<-entered

		_, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "other"}})
		if !errors.Is(err, model.ErrRunInProgress) {
			t.Errorf("err = %v, want ErrRunInProgress", err)
		}
		close(release)
		if err := <-done; err != nil {
			t.Fatalf("first Run: %v", err)
		}
	})

	t.Run("hung call fails with network-timeout stage", func(t *testing.T) {
		store := newTestStore()
		hang := &hangingConfig{inner: store.Config}
		ports := &domain.Ports{Config: hang, Secrets: store.Secrets, Apps: store.Apps}
		u := New(ports, WithCallTimeout(20*time.Millisecond))

		out, err := u.Run(ctx, &RunInput{Input: model.Input{Token: "tok", Threshold: "5"}})
		if err == nil {
			t.Fatal("Run succeeded, want timeout")
		}
		if out.Stage != model.StageNetworkTimeout {
			t.Errorf("stage = %s, want %s", out.Stage, model.StageNetworkTimeout)
		}
	})
}

// blockingConfig delays the first FetchStanza until released, to hold a run
// in flight.
type blockingConfig struct {
	inner   domain.ConfigService
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (b *blockingConfig) FetchStanza(ctx context.Context, domainName, stanza string) (*model.Stanza, error) {
	b.once.Do(func() {
		close(b.entered)
		<-b.release
	})
	return b.inner.FetchStanza(ctx, domainName, stanza)
}

func (b *blockingConfig) UpdateStanza(ctx context.Context, domainName, stanza string, props map[string]string) error {
	return b.inner.UpdateStanza(ctx, domainName, stanza, props)
}

// failingDomainConfig rejects updates to one domain and passes everything
// else through.
type failingDomainConfig struct {
	inner  domain.ConfigService
	domain string
}

func (f *failingDomainConfig) FetchStanza(ctx context.Context, domainName, stanza string) (*model.Stanza, error) {
	return f.inner.FetchStanza(ctx, domainName, stanza)
}

func (f *failingDomainConfig) UpdateStanza(ctx context.Context, domainName, stanza string, props map[string]string) error {
	if domainName == f.domain {
		return errors.New("write rejected")
	}
	return f.inner.UpdateStanza(ctx, domainName, stanza, props)
}

// hangingConfig blocks UpdateStanza until the call context expires.
type hangingConfig struct {
	inner domain.ConfigService
}

func (h *hangingConfig) FetchStanza(ctx context.Context, domainName, stanza string) (*model.Stanza, error) {
	return h.inner.FetchStanza(ctx, domainName, stanza)
}

func (h *hangingConfig) UpdateStanza(ctx context.Context, _, _ string, _ map[string]string) error {
	<-ctx.Done()
	return ctx.Err()
}
