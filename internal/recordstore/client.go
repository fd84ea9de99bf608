package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	contract "lexgate/contracts/recordstore"
	"lexgate/internal/law/models"
	"lexgate/internal/platform/credentials"
	"lexgate/internal/platform/sentinel"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lexgate_record_store_requests_total",
	Help: "Record Store requests by operation and outcome",
}, []string{"operation", "outcome"})

// Client talks HTTP+JSON to the Record Store. Concurrent GetLaw calls for
// the same id collapse into one upstream request via singleflight.
type Client struct {
	baseURL string
	http    *http.Client
	creds   credentials.Provider
	logger  *slog.Logger
	tracer  trace.Tracer
	group   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Tests use this to
// point at httptest servers with short timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient builds a Record Store client.
func NewClient(baseURL string, creds credentials.Provider, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		logger:  logger,
		tracer:  otel.Tracer("lexgate/recordstore"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type getLawResult struct {
	record       *models.LawRecord
	associations []models.Association
}

func (c *Client) GetLaw(ctx context.Context, id string) (*models.LawRecord, []models.Association, error) {
	v, err, _ := c.group.Do("law:"+id, func() (any, error) {
		record, assocs, err := c.getLaw(ctx, id)
		if err != nil {
			return nil, err
		}
		return getLawResult{record: record, associations: assocs}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	res := v.(getLawResult)
	return res.record, res.associations, nil
}

func (c *Client) getLaw(ctx context.Context, id string) (*models.LawRecord, []models.Association, error) {
	ctx, span := c.tracer.Start(ctx, "recordstore.GetLaw",
		trace.WithAttributes(attribute.String("law.id", id)))
	defer span.End()

	req, err := c.newRequest(ctx, http.MethodGet, "/law/"+id, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues("get_law", "error").Inc()
		return nil, nil, fmt.Errorf("record store get law: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		requestsTotal.WithLabelValues("get_law", "not_found").Inc()
		return nil, nil, fmt.Errorf("law %s: %w", id, sentinel.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		requestsTotal.WithLabelValues("get_law", "error").Inc()
		return nil, nil, fmt.Errorf("record store get law: %s", c.errorBody(resp))
	}

	var wire contract.Law
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		requestsTotal.WithLabelValues("get_law", "error").Inc()
		return nil, nil, fmt.Errorf("record store get law: decode response: %w", err)
	}
	// Some store deployments answer 200 with an empty body instead of 404.
	if wire.ID == "" {
		requestsTotal.WithLabelValues("get_law", "not_found").Inc()
		return nil, nil, fmt.Errorf("law %s: %w", id, sentinel.ErrNotFound)
	}

	requestsTotal.WithLabelValues("get_law", "ok").Inc()

	record := &models.LawRecord{
		ID:             wire.ID,
		Name:           wire.Name,
		Jurisdiction:   wire.Jurisdiction,
		Source:         wire.Source,
		LastReformDate: wire.LastReformDate,
		BlobRef:        wire.BlobRef,
	}
	var assocs []models.Association
	for _, compendiumID := range wire.AssociatedCompendiums {
		assocs = append(assocs, models.Association{
			ID:           models.CompositeAssociationID(compendiumID, wire.ID),
			CompendiumID: compendiumID,
			LawID:        wire.ID,
		})
	}
	return record, assocs, nil
}

func (c *Client) UpsertLaw(ctx context.Context, law models.LawRecord) (string, error) {
	ctx, span := c.tracer.Start(ctx, "recordstore.UpsertLaw",
		trace.WithAttributes(attribute.String("law.id", law.ID)))
	defer span.End()

	body := contract.UpsertLawRequest{
		ID:             law.ID,
		Name:           law.Name,
		Jurisdiction:   law.Jurisdiction,
		Source:         law.Source,
		LastReformDate: law.LastReformDate,
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/law", body)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues("upsert_law", "error").Inc()
		return "", fmt.Errorf("record store upsert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		requestsTotal.WithLabelValues("upsert_law", "error").Inc()
		return "", fmt.Errorf("record store upsert: %s", c.errorBody(resp))
	}

	var wire contract.UpsertLawResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		requestsTotal.WithLabelValues("upsert_law", "error").Inc()
		return "", fmt.Errorf("record store upsert: decode response: %w", err)
	}
	if wire.UploadURL == "" {
		requestsTotal.WithLabelValues("upsert_law", "error").Inc()
		return "", fmt.Errorf("record store upsert: response missing uploadUrl")
	}

	requestsTotal.WithLabelValues("upsert_law", "ok").Inc()
	return wire.UploadURL, nil
}

func (c *Client) CreateCompendiumLaw(ctx context.Context, compendiumID, lawID string) (models.Association, error) {
	ctx, span := c.tracer.Start(ctx, "recordstore.CreateCompendiumLaw",
		trace.WithAttributes(
			attribute.String("law.id", lawID),
			attribute.String("compendium.id", compendiumID),
		))
	defer span.End()

	body := contract.CreateCompendiumLawRequest{CompendiumID: compendiumID, LawID: lawID}
	req, err := c.newRequest(ctx, http.MethodPost, "/compendiumLaw", body)
	if err != nil {
		return models.Association{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues("create_association", "error").Inc()
		return models.Association{}, fmt.Errorf("record store create association: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		requestsTotal.WithLabelValues("create_association", "error").Inc()
		return models.Association{}, fmt.Errorf("record store create association: %s", c.errorBody(resp))
	}

	var wire contract.CompendiumLaw
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		requestsTotal.WithLabelValues("create_association", "error").Inc()
		return models.Association{}, fmt.Errorf("record store create association: decode response: %w", err)
	}

	requestsTotal.WithLabelValues("create_association", "ok").Inc()
	return models.Association{
		ID:           wire.ID,
		CompendiumID: wire.CompendiumID,
		LawID:        wire.LawID,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire record store credential: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// errorBody extracts the store's error envelope for messages, falling back
// to the HTTP status.
func (c *Client) errorBody(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var wire contract.ErrorResponse
		if json.Unmarshal(raw, &wire) == nil && wire.Error != "" {
			return fmt.Sprintf("%s (%s)", wire.Error, resp.Status)
		}
	}
	return resp.Status
}
