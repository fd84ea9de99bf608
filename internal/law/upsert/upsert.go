// Package upsert drives the two-phase ingestion of a single law record:
// a metadata upsert against the Record Store, then a blob transfer to the
// one-time upload location the store issued. The two phases hit different
// upstreams with no shared transaction, so a blob failure after a committed
// metadata upsert is a permanently partial record — it is reported loudly,
// never rolled back.
package upsert

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"lexgate/internal/blobstore"
	"lexgate/internal/law/cache"
	"lexgate/internal/law/models"
	"lexgate/internal/platform/audit"
	"lexgate/internal/platform/middleware"
	"lexgate/internal/platform/sentinel"
	"lexgate/internal/recordstore"
	"lexgate/pkg/faults"
	"lexgate/pkg/lawid"
)

// Phase names a step of the two-phase flow. Phases are logged, not stored:
// the registry's session lifecycle is the durable state.
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseMetadataSubmitting Phase = "metadata_submitting"
	PhaseAwaitingBlob       Phase = "awaiting_blob"
	PhaseTransferring       Phase = "transferring"
	PhaseComplete           Phase = "complete"
	PhaseFailed             Phase = "failed"
)

// Orchestrator coordinates metadata upserts, upload sessions, and blob
// transfers. Safe for concurrent use; per-record state lives in sessions.
type Orchestrator struct {
	store    recordstore.Store
	transfer blobstore.Transferrer
	sessions *Sessions
	cache    *cache.Cache
	audit    *audit.Publisher
	logger   *slog.Logger
}

// New builds an Orchestrator. cache may be nil.
func New(
	store recordstore.Store,
	transfer blobstore.Transferrer,
	sessions *Sessions,
	lookupCache *cache.Cache,
	publisher *audit.Publisher,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:    store,
		transfer: transfer,
		sessions: sessions,
		cache:    lookupCache,
		audit:    publisher,
		logger:   logger,
	}
}

// SubmitMetadata validates the fields locally, upserts them to the Record
// Store, and issues a fresh single-use upload session. Re-submitting the
// same fields is idempotent upstream; a new session is issued every call
// regardless. The reported existed flag describes the record before this
// upsert.
func (o *Orchestrator) SubmitMetadata(ctx context.Context, req models.UpsertLawRequest) (models.UploadSession, bool, error) {
	record, err := validate(req)
	if err != nil {
		return models.UploadSession{}, false, err
	}

	o.logPhase(ctx, PhaseMetadataSubmitting, record.ID)

	// Prior state decides whether the blob may later be skipped. A failed
	// lookup is treated as "new record" so a skip stays impossible.
	existed, hadBlob := false, false
	if prior, _, err := o.store.GetLaw(ctx, record.ID); err == nil {
		existed = true
		hadBlob = prior.HasBlob()
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		o.logger.WarnContext(ctx, "prior-state lookup failed, treating record as new",
			"law_id", record.ID, "error", err)
	}

	uploadURL, err := o.store.UpsertLaw(ctx, record)
	if err != nil {
		o.logPhase(ctx, PhaseFailed, record.ID)
		return models.UploadSession{}, false, faults.Wrap(err, faults.CodeStore, "metadata upsert failed")
	}

	o.cache.Invalidate(ctx, record.ID)
	o.emit(ctx, audit.ActionLawUpserted, record.ID, "")

	session := o.sessions.Issue(record.ID, uploadURL, hadBlob)
	o.logPhase(ctx, PhaseAwaitingBlob, record.ID)
	return session, existed, nil
}

// TransferBlob consumes the session and PUTs the full text to its upload
// URL. On failure the session stays consumed, committed metadata stays
// committed, and the caller receives a transfer fault carrying the
// integrity warning.
func (o *Orchestrator) TransferBlob(ctx context.Context, sessionID string, data []byte) error {
	session, err := o.takeSession(sessionID)
	if err != nil {
		return err
	}

	o.logPhase(ctx, PhaseTransferring, session.LawID)

	if err := o.transfer.Put(ctx, session.UploadURL, data); err != nil {
		o.logPhase(ctx, PhaseFailed, session.LawID)
		o.logger.ErrorContext(ctx, "DATA INTEGRITY: metadata committed without full text",
			"law_id", session.LawID,
			"error", err,
		)
		o.emit(ctx, audit.ActionBlobTransferFailed, session.LawID,
			"metadata committed, blob transfer failed; record has no full text")
		return faults.Wrap(err, faults.CodeTransfer,
			"blob transfer failed; metadata already committed without full text")
	}

	o.cache.Invalidate(ctx, session.LawID)
	o.emit(ctx, audit.ActionBlobTransferred, session.LawID, "")
	o.logPhase(ctx, PhaseComplete, session.LawID)
	return nil
}

// SkipBlob discards the session without a transfer. Only legal when the
// record already carried a blob when the session was issued; a brand-new
// record must receive its full text.
func (o *Orchestrator) SkipBlob(ctx context.Context, sessionID string) error {
	session, err := o.takeSession(sessionID)
	if err != nil {
		return err
	}
	if !session.HadBlob {
		return faults.New(faults.CodeValidation,
			"cannot skip full text: record has no existing blob")
	}

	o.emit(ctx, audit.ActionBlobSkipped, session.LawID, "")
	o.logPhase(ctx, PhaseComplete, session.LawID)
	return nil
}

func (o *Orchestrator) takeSession(sessionID string) (models.UploadSession, error) {
	session, err := o.sessions.Take(sessionID)
	if err != nil {
		return models.UploadSession{}, faults.Wrap(err, faults.CodeNoSession, "no active upload session")
	}
	return session, nil
}

// validate enforces the local gate: no network call happens for fields
// that cannot possibly be accepted. The name is upper-cased and the date
// normalized before submission.
func validate(req models.UpsertLawRequest) (models.LawRecord, error) {
	if _, err := lawid.Parse(req.ID); err != nil {
		return models.LawRecord{}, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return models.LawRecord{}, faults.New(faults.CodeValidation, "title must not be empty")
	}
	if strings.TrimSpace(req.Jurisdiction) == "" {
		return models.LawRecord{}, faults.New(faults.CodeValidation, "jurisdiction must not be empty")
	}
	src, err := url.Parse(req.Source)
	if err != nil || !src.IsAbs() || src.Host == "" {
		return models.LawRecord{}, faults.Newf(faults.CodeValidation, "source %q is not an absolute URL", req.Source)
	}
	date, ok := models.ParseReformDate(req.LastReformDate)
	if !ok {
		return models.LawRecord{}, faults.Newf(faults.CodeValidation, "last reform date %q is not a valid date", req.LastReformDate)
	}

	record := req.Fields()
	record.Name = strings.ToUpper(record.Name)
	record.LastReformDate = date
	return record, nil
}

func (o *Orchestrator) logPhase(ctx context.Context, phase Phase, lawID string) {
	o.logger.DebugContext(ctx, "upsert phase", "phase", string(phase), "law_id", lawID)
}

func (o *Orchestrator) emit(ctx context.Context, action audit.Action, lawID, detail string) {
	if o.audit == nil {
		return
	}
	meta := middleware.GetClientMeta(ctx)
	o.audit.Emit(audit.Event{
		Action:     action,
		LawID:      lawID,
		OperatorID: middleware.GetOperatorID(ctx),
		RequestID:  middleware.GetRequestID(ctx),
		Detail:     detail,
		Client:     strings.TrimSpace(meta.Browser + " " + meta.OS),
	})
}
