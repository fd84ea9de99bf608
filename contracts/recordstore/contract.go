// Package recordstore defines the wire contract of the external Record Store.
// The gateway client and the mock upstream both build against these shapes so
// drift between them shows up at compile time.
package recordstore

// Law is the record shape the store returns from GET law/{id}.
type Law struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Jurisdiction          string   `json:"jurisdiction"`
	Source                string   `json:"source"`
	LastReformDate        string   `json:"lastReformDate"`
	BlobRef               string   `json:"blobRef,omitempty"`
	AssociatedCompendiums []string `json:"associatedCompendiums,omitempty"`
}

// UpsertLawRequest is the body of POST law. The store treats the call as
// create-or-replace keyed on ID.
type UpsertLawRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Jurisdiction   string `json:"jurisdiction"`
	Source         string `json:"source"`
	LastReformDate string `json:"lastReformDate"`
}

// UpsertLawResponse carries the one-time write location for the law's
// full-text blob. Every successful upsert issues a fresh location.
type UpsertLawResponse struct {
	UploadURL string `json:"uploadUrl"`
}

// CreateCompendiumLawRequest is the body of POST compendiumLaw.
type CreateCompendiumLawRequest struct {
	CompendiumID string `json:"compendiumId"`
	LawID        string `json:"lawId"`
}

// CompendiumLaw is the association the store returns. ID is the deterministic
// composite "<compendiumId>-<lawId>"; the store enforces uniqueness on it.
type CompendiumLaw struct {
	ID           string `json:"id"`
	CompendiumID string `json:"compendiumId"`
	LawID        string `json:"lawId"`
}

// ErrorResponse is the store's JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
