package rdb

import (
	"context"
	"errors"
	"testing"

	"github.com/spurintel/spursetup/domain/model"
)

func newTestRDB(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), "sqlite::memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestConfigService(t *testing.T) {
	ctx := context.Background()

	t.Run("missing stanza", func(t *testing.T) {
		store := newTestRDB(t)
		_, err := store.Config.FetchStanza(ctx, model.DomainCustomAlerts, model.StanzaAlerts)
		if !errors.Is(err, model.ErrStanzaNotFound) {
			t.Errorf("err = %v, want ErrStanzaNotFound", err)
		}
	})

	t.Run("update creates then upserts", func(t *testing.T) {
		store := newTestRDB(t)
		err := store.Config.UpdateStanza(ctx, model.DomainCustomAlerts, model.StanzaAlerts,
			map[string]string{model.PropThreshold: "250"})
		if err != nil {
			t.Fatalf("UpdateStanza: %v", err)
		}
		err = store.Config.UpdateStanza(ctx, model.DomainCustomAlerts, model.StanzaAlerts,
			map[string]string{model.PropThreshold: "1000"})
		if err != nil {
			t.Fatalf("UpdateStanza (second): %v", err)
		}

		st, err := store.Config.FetchStanza(ctx, model.DomainCustomAlerts, model.StanzaAlerts)
		if err != nil {
			t.Fatalf("FetchStanza: %v", err)
		}
		if got := st.Get(model.PropThreshold); got != "1000" {
			t.Errorf("threshold = %q, want 1000", got)
		}

		var count int64
		if err := store.DB.Model(&PropertyRecord{}).Count(&count).Error; err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("property rows = %d, want 1 after upsert", count)
		}
	})
}

func TestSecretStore(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup absent", func(t *testing.T) {
		store := newTestRDB(t)
		_, err := store.Secrets.Lookup(ctx, model.SecretKey())
		if !errors.Is(err, model.ErrSecretNotFound) {
			t.Errorf("err = %v, want ErrSecretNotFound", err)
		}
	})

	t.Run("create lookup update", func(t *testing.T) {
		store := newTestRDB(t)
		err := store.Secrets.Create(ctx, &model.Secret{
			Realm: model.SecretRealm, Name: model.SecretName, Value: "tok-1",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ref, err := store.Secrets.Lookup(ctx, model.SecretKey())
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if err := store.Secrets.Update(ctx, ref, "tok-2"); err != nil {
			t.Fatalf("Update: %v", err)
		}

		secrets, err := store.Secrets.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(secrets) != 1 || secrets[0].Value != "tok-2" {
			t.Errorf("secrets = %+v, want single tok-2", secrets)
		}
	})

	t.Run("malformed key", func(t *testing.T) {
		store := newTestRDB(t)
		if _, err := store.Secrets.Lookup(ctx, "no-colons"); !errors.Is(err, model.ErrSecretNotFound) {
			t.Errorf("err = %v, want ErrSecretNotFound", err)
		}
	})
}

func TestAppRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded app", func(t *testing.T) {
		store := newTestRDB(t)
		app, err := store.Apps.Get(ctx, model.DefaultAppName)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if app.Configured {
			t.Error("fresh sandbox app reported configured")
		}
	})

	t.Run("reload observes the configured flag", func(t *testing.T) {
		store := newTestRDB(t)
		err := store.Config.UpdateStanza(ctx, model.DomainInstall, model.StanzaInstall,
			map[string]string{model.PropConfigured: model.FormatFlag(true)})
		if err != nil {
			t.Fatalf("UpdateStanza: %v", err)
		}
		if err := store.Apps.Reload(ctx, model.DefaultAppName); err != nil {
			t.Fatalf("Reload: %v", err)
		}
		app, err := store.Apps.Get(ctx, model.DefaultAppName)
		if err != nil {
			t.Fatal(err)
		}
		if !app.Configured {
			t.Error("configured flag not observed after reload")
		}
		if app.ReloadedAt.IsZero() {
			t.Error("reload timestamp not recorded")
		}
	})

	t.Run("unknown app", func(t *testing.T) {
		store := newTestRDB(t)
		if err := store.Apps.Reload(ctx, "nosuch"); !errors.Is(err, model.ErrAppNotFound) {
			t.Errorf("err = %v, want ErrAppNotFound", err)
		}
	})
}
