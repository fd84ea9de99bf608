// Package handler exposes the ingestion pipeline over HTTP.
package handler

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lexgate/internal/law/metrics"
	"lexgate/internal/law/models"
	"lexgate/internal/platform/middleware"
	"lexgate/pkg/faults"
	"lexgate/pkg/httputil"
	"lexgate/pkg/lawid"
)

//go:generate mockgen -source=handler.go -destination=mocks/law-mocks.go -package=mocks

// SessionHeader names the upload session carried between the metadata call
// and the blob call.
const SessionHeader = "X-Upload-Session"

// maxBlobBytes caps the accepted full-text body.
const maxBlobBytes = 32 << 20

// Resolver answers existence lookups.
type Resolver interface {
	ResolveNow(ctx context.Context, id lawid.LawID) models.Resolution
}

// Upserter runs the two-phase upsert flow.
type Upserter interface {
	SubmitMetadata(ctx context.Context, req models.UpsertLawRequest) (models.UploadSession, bool, error)
	TransferBlob(ctx context.Context, sessionID string, data []byte) error
	SkipBlob(ctx context.Context, sessionID string) error
}

// Linker attaches laws to compendiums.
type Linker interface {
	Link(ctx context.Context, compendiumID, lawID string) (models.Association, error)
}

// Importer runs batch CSV imports.
type Importer interface {
	Import(ctx context.Context, csv []byte, compendiumID string) (*models.BatchReport, error)
}

// Handler wires ingestion endpoints to the pipeline services.
type Handler struct {
	resolver Resolver
	upserter Upserter
	linker   Linker
	importer Importer
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New constructs a law handler with its dependencies.
func New(resolver Resolver, upserter Upserter, linker Linker, importer Importer, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		resolver: resolver,
		upserter: upserter,
		linker:   linker,
		importer: importer,
		logger:   logger,
		metrics:  m,
	}
}

// Register mounts ingestion endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/laws/{id}", h.handleGetLaw)
	r.Post("/laws", h.handleUpsertLaw)
	r.Put("/laws/{id}/text", h.handleTransferText)
	r.Post("/laws/{id}/text/skip", h.handleSkipText)
	r.Post("/compendium-laws", h.handleLink)
	r.Post("/laws/import", h.handleImport)
}

// handleGetLaw serves the pre-population lookup for the edit form. The
// debounce lives client-side here; the server path is always immediate.
func (h *Handler) handleGetLaw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := lawid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resolution := h.resolver.ResolveNow(ctx, id)
	if !resolution.Exists {
		httputil.WriteError(w, faults.Newf(faults.CodeNotFound, "law %s not found", id))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resolution)
}

func (h *Handler) handleUpsertLaw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[models.UpsertLawRequest](w, r, h.logger)
	if !ok {
		return
	}

	session, existed, err := h.upserter.SubmitMetadata(ctx, req)
	h.metrics.ObserveOperation("upsert", err)
	if err != nil {
		h.logger.ErrorContext(ctx, "metadata upsert rejected",
			"request_id", requestID,
			"law_id", req.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.metrics.SessionIssued()

	h.logger.InfoContext(ctx, "metadata upserted",
		"request_id", requestID,
		"law_id", req.ID,
		"existed", existed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, models.UpsertLawResponse{
		SessionID: session.ID,
		LawID:     session.LawID,
		Existed:   existed,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handleTransferText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		httputil.WriteError(w, faults.New(faults.CodeNoSession, "missing "+SessionHeader+" header"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBlobBytes))
	if err != nil {
		httputil.WriteError(w, faults.New(faults.CodeBadRequest, "could not read request body"))
		return
	}
	if len(data) == 0 {
		httputil.WriteError(w, faults.New(faults.CodeValidation, "full text body must not be empty"))
		return
	}

	err = h.upserter.TransferBlob(ctx, sessionID, data)
	h.metrics.ObserveOperation("transfer", err)
	if err != nil {
		h.logger.ErrorContext(ctx, "full text transfer failed",
			"request_id", requestID,
			"law_id", chi.URLParam(r, "id"),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSkipText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		httputil.WriteError(w, faults.New(faults.CodeNoSession, "missing "+SessionHeader+" header"))
		return
	}

	err := h.upserter.SkipBlob(ctx, sessionID)
	h.metrics.ObserveOperation("skip", err)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.Decode[models.LinkRequest](w, r, h.logger)
	if !ok {
		return
	}

	assoc, err := h.linker.Link(ctx, req.CompendiumID, req.LawID)
	h.metrics.ObserveOperation("link", err)
	if err != nil {
		h.logger.ErrorContext(ctx, "compendium link failed",
			"request_id", requestID,
			"compendium_id", req.CompendiumID,
			"law_id", req.LawID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, assoc)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[models.BatchImportRequest](w, r, h.logger)
	if !ok {
		return
	}

	csv, err := base64.StdEncoding.DecodeString(req.CSVFile)
	if err != nil {
		httputil.WriteError(w, faults.New(faults.CodeBadRequest, "csvFile is not valid base64"))
		return
	}

	report, err := h.importer.Import(ctx, csv, req.CompendiumID)
	h.metrics.ObserveOperation("import", err)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.metrics.ObserveBatchRows(report.SuccessCount, report.ErrorCount)

	h.logger.InfoContext(ctx, "batch import completed",
		"request_id", requestID,
		"compendium_id", req.CompendiumID,
		"success", report.SuccessCount,
		"errors", report.ErrorCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}
