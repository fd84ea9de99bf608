// Command blob-store is a mock Blob Transfer Service for local development.
// Each upload token accepts exactly one PUT, mirroring the real service's
// one-time write locations.
package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"sync"
)

type server struct {
	mu   sync.Mutex
	used map[string]bool
}

func main() {
	addr := flag.String("addr", ":9082", "listen address")
	flag.Parse()

	s := &server{used: make(map[string]bool)}

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /upload/{token}", s.handleUpload)

	log.Printf("mock blob store listening on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	tok := r.PathValue("token")

	s.mu.Lock()
	spent := s.used[tok]
	s.used[tok] = true
	s.mu.Unlock()

	if spent {
		http.Error(w, "upload location already consumed", http.StatusConflict)
		return
	}

	n, err := io.Copy(io.Discard, r.Body)
	if err != nil {
		http.Error(w, "read failed", http.StatusBadRequest)
		return
	}
	log.Printf("accepted %d bytes for token %s", n, tok)
	w.WriteHeader(http.StatusOK)
}
