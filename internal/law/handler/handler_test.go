package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"lexgate/internal/law/handler/mocks"
	"lexgate/internal/law/models"
	"lexgate/pkg/faults"
	"lexgate/pkg/lawid"
	"lexgate/pkg/testutil"
)

type LawHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *LawHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestLawHandlerSuite(t *testing.T) {
	suite.Run(t, new(LawHandlerSuite))
}

type testMocks struct {
	resolver *mocks.MockResolver
	upserter *mocks.MockUpserter
	linker   *mocks.MockLinker
	importer *mocks.MockImporter
}

func newTestHandler(t *testing.T) (*Handler, chi.Router, testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	tm := testMocks{
		resolver: mocks.NewMockResolver(ctrl),
		upserter: mocks.NewMockUpserter(ctrl),
		linker:   mocks.NewMockLinker(ctrl),
		importer: mocks.NewMockImporter(ctrl),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(tm.resolver, tm.upserter, tm.linker, tm.importer, logger, nil)
	r := chi.NewRouter()
	h.Register(r)
	return h, r, tm
}

func (s *LawHandlerSuite) TestGetLawFound() {
	_, r, tm := newTestHandler(s.T())
	id, err := lawid.Parse("100.00001")
	require.NoError(s.T(), err)
	tm.resolver.EXPECT().ResolveNow(gomock.Any(), id).Return(models.Resolution{
		ID:     "100.00001",
		Exists: true,
		Record: &models.LawRecord{ID: "100.00001", Name: "FEDERAL LABOR LAW"},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/laws/100.00001", nil))

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), true, resp["exists"])
	record := resp["record"].(map[string]any)
	assert.Equal(s.T(), "FEDERAL LABOR LAW", record["name"])
}

func (s *LawHandlerSuite) TestGetLawAbsent() {
	_, r, tm := newTestHandler(s.T())
	id, err := lawid.Parse("9.99999")
	require.NoError(s.T(), err)
	tm.resolver.EXPECT().ResolveNow(gomock.Any(), id).Return(models.Resolution{ID: "9.99999"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/laws/9.99999", nil))

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *LawHandlerSuite) TestGetLawRejectsBadIDWithoutLookup() {
	_, r, _ := newTestHandler(s.T())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/laws/100.1", nil))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	resp := testutil.UnmarshalErrorResponse(s.T(), w)
	assert.Equal(s.T(), "validation", resp["error"])
}

func (s *LawHandlerSuite) TestUpsertLaw() {
	_, r, tm := newTestHandler(s.T())
	expires := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	req := models.UpsertLawRequest{
		ID:             "100.00001",
		Title:          "Federal Labor Law",
		Jurisdiction:   "MX",
		Source:         "https://example.com/laws/lft.txt",
		LastReformDate: "2024/01/15",
	}
	tm.upserter.EXPECT().SubmitMetadata(gomock.Any(), req).Return(models.UploadSession{
		ID:        "sess-1",
		LawID:     "100.00001",
		ExpiresAt: expires,
	}, true, nil)

	w := testutil.DoRequest(r, testutil.NewJSONRequest(s.T(), http.MethodPost, "/laws", req))

	assert.Equal(s.T(), http.StatusOK, w.Code)
	resp := testutil.UnmarshalResponse[models.UpsertLawResponse](s.T(), w)
	assert.Equal(s.T(), "sess-1", resp.SessionID)
	assert.Equal(s.T(), "100.00001", resp.LawID)
	assert.True(s.T(), resp.Existed)
	assert.Equal(s.T(), "2026-08-29T12:00:00Z", resp.ExpiresAt)
}

func (s *LawHandlerSuite) TestUpsertLawValidationFault() {
	_, r, tm := newTestHandler(s.T())
	tm.upserter.EXPECT().SubmitMetadata(gomock.Any(), gomock.Any()).
		Return(models.UploadSession{}, false, faults.New(faults.CodeValidation, "title must not be empty"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/laws", bytes.NewReader([]byte(`{"id":"1.00001"}`))))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *LawHandlerSuite) TestTransferText() {
	_, r, tm := newTestHandler(s.T())
	tm.upserter.EXPECT().TransferBlob(gomock.Any(), "sess-1", []byte("article 1")).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/laws/100.00001/text", bytes.NewReader([]byte("article 1")))
	req.Header.Set(SessionHeader, "sess-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *LawHandlerSuite) TestTransferTextWithoutSessionHeader() {
	_, r, _ := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodPut, "/laws/100.00001/text", bytes.NewReader([]byte("article 1")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusConflict, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "no_active_session", resp["error"])
}

func (s *LawHandlerSuite) TestTransferTextFailureSurfacesIntegrityFault() {
	_, r, tm := newTestHandler(s.T())
	tm.upserter.EXPECT().TransferBlob(gomock.Any(), "sess-1", gomock.Any()).
		Return(faults.Wrap(errors.New("403"), faults.CodeTransfer, "blob transfer failed; metadata already committed without full text"))

	req := httptest.NewRequest(http.MethodPut, "/laws/100.00001/text", bytes.NewReader([]byte("article 1")))
	req.Header.Set(SessionHeader, "sess-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadGateway, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(s.T(), resp["error_description"], "metadata already committed")
}

func (s *LawHandlerSuite) TestSkipText() {
	_, r, tm := newTestHandler(s.T())
	tm.upserter.EXPECT().SkipBlob(gomock.Any(), "sess-1").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/laws/100.00001/text/skip", nil)
	req.Header.Set(SessionHeader, "sess-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *LawHandlerSuite) TestLink() {
	_, r, tm := newTestHandler(s.T())
	tm.linker.EXPECT().Link(gomock.Any(), "c1", "1.00001").
		Return(models.Association{ID: "c1-1.00001", CompendiumID: "c1", LawID: "1.00001"}, nil)

	body := []byte(`{"compendiumId":"c1","lawId":"1.00001"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/compendium-laws", bytes.NewReader(body)))

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp models.Association
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "c1-1.00001", resp.ID)
}

func (s *LawHandlerSuite) TestImport() {
	_, r, tm := newTestHandler(s.T())
	csv := "Id,title,jurisdiction,source,last_reform_date\n1.00001,Labor Law,MX,https://example.com/a.txt,2024/01/15\n"
	tm.importer.EXPECT().Import(gomock.Any(), []byte(csv), "c1").
		Return(&models.BatchReport{
			SuccessCount: 1,
			Rows:         []models.RowResult{{LawID: "1.00001", Valid: true}},
		}, nil)

	w := testutil.DoRequest(r, testutil.NewJSONRequest(s.T(), http.MethodPost, "/laws/import", models.BatchImportRequest{
		CSVFile:      base64.StdEncoding.EncodeToString([]byte(csv)),
		CompendiumID: "c1",
	}))

	assert.Equal(s.T(), http.StatusOK, w.Code)
	resp := testutil.UnmarshalResponse[models.BatchReport](s.T(), w)
	assert.Equal(s.T(), 1, resp.SuccessCount)
	require.Len(s.T(), resp.Rows, 1)
	assert.True(s.T(), resp.Rows[0].Valid)
}

func (s *LawHandlerSuite) TestImportRejectsBadBase64() {
	_, r, _ := newTestHandler(s.T())

	body := []byte(`{"csvFile":"%%%not-base64%%%","compendiumID":"c1"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/laws/import", bytes.NewReader(body)))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}
