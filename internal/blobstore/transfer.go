// Package blobstore writes full-text blobs to the one-time upload locations
// issued by the Record Store. The Blob Transfer Service is opaque: a single
// PUT to the location, 2xx means stored, anything else is a failure.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lexgate_blob_transfers_total",
	Help: "Blob transfer attempts by outcome",
}, []string{"outcome"})

// Transferrer performs the direct byte write of a full-text blob.
type Transferrer interface {
	Put(ctx context.Context, uploadURL string, data []byte) error
}

// HTTPTransferrer PUTs blobs over HTTP.
type HTTPTransferrer struct {
	http *http.Client
}

// NewHTTPTransferrer builds a transferrer with the given per-transfer
// timeout.
func NewHTTPTransferrer(timeout time.Duration) *HTTPTransferrer {
	return &HTTPTransferrer{http: &http.Client{Timeout: timeout}}
}

func (t *HTTPTransferrer) Put(ctx context.Context, uploadURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build blob request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.ContentLength = int64(len(data))

	resp, err := t.http.Do(req)
	if err != nil {
		transfersTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("blob transfer: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		transfersTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("blob transfer: unexpected status %s", resp.Status)
	}

	transfersTotal.WithLabelValues("ok").Inc()
	return nil
}
