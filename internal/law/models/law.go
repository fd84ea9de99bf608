// Package models holds the law ingestion domain types shared by the
// resolver, orchestrator, linker, batch importer, and HTTP handlers.
package models

import (
	"time"
)

// LawRecord is a legal document record as held by the Record Store.
// ID is immutable once created; every other field is mutable via upsert.
// BlobRef is set only by a successful blob transfer, never by a metadata
// upsert alone.
type LawRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Jurisdiction   string `json:"jurisdiction"`
	Source         string `json:"source"`
	LastReformDate string `json:"lastReformDate"`
	BlobRef        string `json:"blobRef,omitempty"`
}

// HasBlob reports whether the record already carries a full-text blob.
func (l LawRecord) HasBlob() bool {
	return l.BlobRef != ""
}

// Association links a law into a compendium grouping. ID is the
// deterministic composite "<compendiumId>-<lawId>"; the store's uniqueness
// on it guarantees at most one association per pair.
type Association struct {
	ID           string `json:"id"`
	CompendiumID string `json:"compendiumId"`
	LawID        string `json:"lawId"`
}

// CompositeAssociationID builds the deterministic association id.
func CompositeAssociationID(compendiumID, lawID string) string {
	return compendiumID + "-" + lawID
}

// UploadSession is the ephemeral one-time write location issued by a
// metadata upsert. Consumed by exactly one blob transfer or discarded; a new
// metadata upsert must be issued to obtain a new one.
type UploadSession struct {
	ID        string    `json:"sessionId"`
	UploadURL string    `json:"-"`
	LawID     string    `json:"lawId"`
	// HadBlob records whether the law carried a blob when the session was
	// issued; skipping the transfer is only legal when it did.
	HadBlob   bool      `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Resolution is the outcome of an existence lookup. Any lookup failure is
// recovered as Exists=false, so callers never distinguish "not found" from
// "store unreachable".
type Resolution struct {
	ID           string        `json:"id"`
	Exists       bool          `json:"exists"`
	Record       *LawRecord    `json:"record,omitempty"`
	Associations []Association `json:"associations,omitempty"`
}
