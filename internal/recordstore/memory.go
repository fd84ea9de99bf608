package recordstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"lexgate/internal/law/models"
	"lexgate/internal/platform/sentinel"
)

// Memory is an in-memory Store for unit tests and local development. It
// mirrors the external store's observable behavior: upserts replace fields
// and issue a fresh upload URL, association ids are unique, and blob refs
// change only through AttachBlob.
type Memory struct {
	mu           sync.RWMutex
	laws         map[string]models.LawRecord
	associations map[string]models.Association

	// UpsertErr, GetErr, and LinkErr let tests force remote failures.
	UpsertErr error
	GetErr    error
	LinkErr   error

	upserts int
	gets    int
}

func NewMemory() *Memory {
	return &Memory{
		laws:         make(map[string]models.LawRecord),
		associations: make(map[string]models.Association),
	}
}

func (m *Memory) GetLaw(_ context.Context, id string) (*models.LawRecord, []models.Association, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.GetErr != nil {
		return nil, nil, m.GetErr
	}
	law, ok := m.laws[id]
	if !ok {
		return nil, nil, fmt.Errorf("law %s: %w", id, sentinel.ErrNotFound)
	}
	record := law
	var assocs []models.Association
	for _, a := range m.associations {
		if a.LawID == id {
			assocs = append(assocs, a)
		}
	}
	return &record, assocs, nil
}

func (m *Memory) UpsertLaw(_ context.Context, law models.LawRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.UpsertErr != nil {
		return "", m.UpsertErr
	}
	existing, ok := m.laws[law.ID]
	if ok {
		// Metadata upsert never touches the blob ref.
		law.BlobRef = existing.BlobRef
	}
	m.laws[law.ID] = law
	return "https://blobs.local/upload/" + uuid.NewString(), nil
}

func (m *Memory) CreateCompendiumLaw(_ context.Context, compendiumID, lawID string) (models.Association, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LinkErr != nil {
		return models.Association{}, m.LinkErr
	}
	id := models.CompositeAssociationID(compendiumID, lawID)
	if existing, ok := m.associations[id]; ok {
		return existing, nil
	}
	assoc := models.Association{ID: id, CompendiumID: compendiumID, LawID: lawID}
	m.associations[id] = assoc
	return assoc, nil
}

// AttachBlob simulates a completed blob transfer observed by the store.
func (m *Memory) AttachBlob(id, blobRef string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	law, ok := m.laws[id]
	if !ok {
		return
	}
	law.BlobRef = blobRef
	m.laws[id] = law
}

// Seed inserts a record directly, bypassing upload URL issuance.
func (m *Memory) Seed(law models.LawRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.laws[law.ID] = law
}

// Law returns a stored record by id for assertions.
func (m *Memory) Law(id string) (models.LawRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	law, ok := m.laws[id]
	return law, ok
}

// Counts reports how many upserts and gets the store served.
func (m *Memory) Counts() (upserts, gets int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.upserts, m.gets
}

// Associations returns all stored associations.
func (m *Memory) Associations() []models.Association {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Association, 0, len(m.associations))
	for _, a := range m.associations {
		out = append(out, a)
	}
	return out
}
