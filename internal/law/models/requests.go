package models

// UpsertLawRequest is the operator-facing body of POST /laws. Field names
// mirror the admin form of the legacy panel.
type UpsertLawRequest struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Jurisdiction   string `json:"jurisdiction"`
	Source         string `json:"source"`
	LastReformDate string `json:"lastReformDate"`
}

// Fields converts the request into the record shape submitted upstream.
func (r UpsertLawRequest) Fields() LawRecord {
	return LawRecord{
		ID:             r.ID,
		Name:           r.Title,
		Jurisdiction:   r.Jurisdiction,
		Source:         r.Source,
		LastReformDate: r.LastReformDate,
	}
}

// UpsertLawResponse is returned by POST /laws once the metadata phase
// committed and a fresh upload session was issued.
type UpsertLawResponse struct {
	SessionID string `json:"sessionId"`
	LawID     string `json:"lawId"`
	Existed   bool   `json:"existed"`
	ExpiresAt string `json:"expiresAt"`
}

// LinkRequest is the body of POST /compendium-laws.
type LinkRequest struct {
	CompendiumID string `json:"compendiumId"`
	LawID        string `json:"lawId"`
}

// BatchImportRequest is the body of POST /laws/import. CSVFile is
// base64-encoded, matching the legacy batch contract.
type BatchImportRequest struct {
	CSVFile      string `json:"csvFile"`
	CompendiumID string `json:"compendiumID"`
}
