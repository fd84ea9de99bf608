package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexgate/internal/law/batch"
	lawhandler "lexgate/internal/law/handler"
	"lexgate/internal/law/linker"
	"lexgate/internal/law/models"
	"lexgate/internal/law/resolver"
	"lexgate/internal/law/upsert"
	"lexgate/internal/platform/logger"
	"lexgate/internal/platform/middleware"
	"lexgate/internal/recordstore"
	transporthttp "lexgate/internal/transport/http"
)

const signingKey = "test-signing-key"

func newRouter(t *testing.T, store *recordstore.Memory) http.Handler {
	t.Helper()
	log := logger.Discard()

	res := resolver.New(store, log)
	t.Cleanup(res.Stop)
	orch := upsert.New(store, noopTransferrer{}, upsert.NewSessions(time.Minute), nil, nil, log)
	l := linker.New(store, nil, log, linker.WithRetry(1, 0))
	importer := batch.New(orch, l, nil, log)

	h := lawhandler.New(res, orch, l, importer, log, nil)
	return transporthttp.NewRouter(transporthttp.Deps{
		LawHandler:     h,
		AuthValidator:  middleware.NewHMACValidator(signingKey),
		Logger:         log,
		RequestTimeout: 5 * time.Second,
	})
}

type noopTransferrer struct{}

func (noopTransferrer) Put(_ context.Context, _ string, _ []byte) error {
	return nil
}

func operatorToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(signingKey))
	require.NoError(t, err)
	return signed
}

func TestHealthz(t *testing.T) {
	router := newRouter(t, recordstore.NewMemory())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestIngestionEndpointsRequireAuth(t *testing.T) {
	router := newRouter(t, recordstore.NewMemory())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/laws/1.00001", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticatedLookup(t *testing.T) {
	store := recordstore.NewMemory()
	store.Seed(models.LawRecord{ID: "1.00001", Name: "LABOR LAW"})
	router := newRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/laws/1.00001", nil)
	req.Header.Set("Authorization", "Bearer "+operatorToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resolution models.Resolution
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolution))
	assert.True(t, resolution.Exists)
}

func TestAuthenticatedUpsertFlow(t *testing.T) {
	store := recordstore.NewMemory()
	router := newRouter(t, store)
	token := operatorToken(t)

	body, err := json.Marshal(models.UpsertLawRequest{
		ID:             "1.00001",
		Title:          "Labor Law",
		Jurisdiction:   "MX",
		Source:         "https://example.com/a.txt",
		LastReformDate: "2024/01/15",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/laws", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.UpsertLawResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)

	req = httptest.NewRequest(http.MethodPut, "/laws/1.00001/text", bytes.NewReader([]byte("article 1")))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(lawhandler.SessionHeader, resp.SessionID)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
