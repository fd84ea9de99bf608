package blobstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutSuccess(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewHTTPTransferrer(2 * time.Second)
	err := tr.Put(context.Background(), srv.URL+"/one-time/abc", []byte("ARTICLE 1..."))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", gotContentType)
	assert.Equal(t, "ARTICLE 1...", string(gotBody))
}

func TestPutNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	tr := NewHTTPTransferrer(2 * time.Second)
	err := tr.Put(context.Background(), srv.URL, []byte("text"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestPutTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	tr := NewHTTPTransferrer(time.Second)
	err := tr.Put(context.Background(), srv.URL, []byte("text"))
	require.Error(t, err)
}
