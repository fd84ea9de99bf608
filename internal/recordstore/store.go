// Package recordstore is the gateway's client for the external Record
// Store, the system of record for Law Records and their compendium
// associations. The store is independently consistent; no transaction spans
// it and the Blob Transfer Service.
package recordstore

import (
	"context"

	"lexgate/internal/law/models"
)

// Store is the narrow contract the pipeline consumes.
//
// GetLaw returns sentinel.ErrNotFound (wrapped) when the id denotes no
// record. UpsertLaw is create-or-replace on the law id and always returns a
// fresh one-time upload URL for the law's full-text blob.
// CreateCompendiumLaw is idempotent on the deterministic association id;
// the store's own uniqueness enforces at-most-one association per pair.
type Store interface {
	GetLaw(ctx context.Context, id string) (*models.LawRecord, []models.Association, error)
	UpsertLaw(ctx context.Context, law models.LawRecord) (uploadURL string, err error)
	CreateCompendiumLaw(ctx context.Context, compendiumID, lawID string) (models.Association, error)
}
