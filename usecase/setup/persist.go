package setup

import (
	"context"
	"fmt"

	"github.com/spurintel/spursetup/domain/model"
)

// persistSecret creates or updates the token record under the fixed
// realm/name key. Any failure here is fatal: an unset or stale token leaves
// every downstream lookup non-functional.
//
// A blank token with an existing record means "keep existing" and is
// skipped by the caller; a blank token with no record still attempts the
// create so the absence surfaces as an explicit store error instead of a
// silently unauthenticated install.
func (u *UseCase) persistSecret(ctx context.Context, token string, exists bool) error {
	cctx, cancel := u.callCtx(ctx)
	defer cancel()

	if exists {
		ref := &model.SecretRef{Realm: model.SecretRealm, Name: model.SecretName}
		if err := u.Ports.Secrets.Update(cctx, ref, token); err != nil {
			return fmt.Errorf("update token: %w", err)
		}
		return nil
	}
	s := &model.Secret{Realm: model.SecretRealm, Name: model.SecretName, Value: token}
	if err := u.Ports.Secrets.Create(cctx, s); err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}
