// Command record-store is a mock Record Store for local development. It
// keeps laws and associations in memory and issues upload URLs that point
// at the mock blob store.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	contract "lexgate/contracts/recordstore"
)

type server struct {
	mu           sync.Mutex
	laws         map[string]contract.Law
	associations map[string]contract.CompendiumLaw
	blobBaseURL  string
}

func main() {
	addr := flag.String("addr", ":9081", "listen address")
	flag.Parse()

	blobBase := os.Getenv("MOCK_BLOB_STORE_URL")
	if blobBase == "" {
		blobBase = "http://localhost:9082"
	}

	s := &server{
		laws:         make(map[string]contract.Law),
		associations: make(map[string]contract.CompendiumLaw),
		blobBaseURL:  strings.TrimRight(blobBase, "/"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /law/{id}", s.handleGetLaw)
	mux.HandleFunc("POST /law", s.handleUpsertLaw)
	mux.HandleFunc("POST /compendiumLaw", s.handleCreateCompendiumLaw)

	log.Printf("mock record store listening on %s (blob store at %s)", *addr, s.blobBaseURL)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}

func (s *server) handleGetLaw(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	law, ok := s.laws[id]
	if ok {
		for _, assoc := range s.associations {
			if assoc.LawID == id {
				law.AssociatedCompendiums = append(law.AssociatedCompendiums, assoc.CompendiumID)
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, contract.ErrorResponse{Error: "law not found"})
		return
	}
	writeJSON(w, http.StatusOK, law)
}

func (s *server) handleUpsertLaw(w http.ResponseWriter, r *http.Request) {
	var req contract.UpsertLawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, contract.ErrorResponse{Error: "malformed law"})
		return
	}

	s.mu.Lock()
	existing, ok := s.laws[req.ID]
	law := contract.Law{
		ID:             req.ID,
		Name:           req.Name,
		Jurisdiction:   req.Jurisdiction,
		Source:         req.Source,
		LastReformDate: req.LastReformDate,
	}
	if ok {
		law.BlobRef = existing.BlobRef
	}
	s.laws[req.ID] = law
	s.mu.Unlock()

	uploadURL := fmt.Sprintf("%s/upload/%s", s.blobBaseURL, token())
	log.Printf("upserted law %s, upload URL %s", req.ID, uploadURL)
	writeJSON(w, http.StatusOK, contract.UpsertLawResponse{UploadURL: uploadURL})
}

func (s *server) handleCreateCompendiumLaw(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateCompendiumLawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CompendiumID == "" || req.LawID == "" {
		writeJSON(w, http.StatusBadRequest, contract.ErrorResponse{Error: "malformed association"})
		return
	}

	id := req.CompendiumID + "-" + req.LawID

	s.mu.Lock()
	assoc, ok := s.associations[id]
	if !ok {
		assoc = contract.CompendiumLaw{ID: id, CompendiumID: req.CompendiumID, LawID: req.LawID}
		s.associations[id] = assoc
	}
	s.mu.Unlock()

	status := http.StatusCreated
	if ok {
		status = http.StatusOK
	}
	writeJSON(w, status, assoc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func token() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
