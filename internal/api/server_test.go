// internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/config"
	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
	"github.com/VivekSamant23/Gate-Reassignment/internal/integration"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
	"github.com/VivekSamant23/Gate-Reassignment/internal/search"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==========================
// Fakes
// ==========================

type fakeFlightStore struct {
	flights   map[int64]*models.Flight
	listed    []models.Flight
	listCalls int
	created   []models.Flight
	createErr error
	assigned  map[int64]string
	cleared   int64
}

func (f *fakeFlightStore) FlightByID(_ context.Context, id int64) (*models.Flight, error) {
	flight, ok := f.flights[id]
	if !ok {
		return nil, engine.ErrNotFound
	}
	return flight, nil
}

func (f *fakeFlightStore) List(_ context.Context, _ string) ([]models.Flight, error) {
	f.listCalls++
	return f.listed, nil
}

func (f *fakeFlightStore) Create(_ context.Context, flight *models.Flight) error {
	if f.createErr != nil {
		return f.createErr
	}
	flight.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *flight)
	return nil
}

func (f *fakeFlightStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.flights[id]; !ok {
		return apperrors.NewFlightNotFoundError(id)
	}
	delete(f.flights, id)
	return nil
}

func (f *fakeFlightStore) DeleteAll(_ context.Context) (int64, error) {
	return f.cleared, nil
}

func (f *fakeFlightStore) AssignGate(_ context.Context, flightID int64, gateNumber string) error {
	if f.assigned == nil {
		f.assigned = map[int64]string{}
	}
	f.assigned[flightID] = gateNumber
	return nil
}

type fakeGateStore struct {
	gates map[string]*models.Gate
}

func (f *fakeGateStore) GateByNumber(_ context.Context, gateNumber string) (*models.Gate, error) {
	gate, ok := f.gates[gateNumber]
	if !ok {
		return nil, engine.ErrNotFound
	}
	return gate, nil
}

type fakeConfigStore struct {
	rows         map[string]*models.AirportConfig
	savedWeights engine.Weights
	saveErr      error
}

func (f *fakeConfigStore) All(_ context.Context) ([]models.AirportConfig, error) {
	out := []models.AirportConfig{}
	for _, row := range f.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeConfigStore) Get(_ context.Context, key string) (*models.AirportConfig, error) {
	row, ok := f.rows[key]
	if !ok {
		return nil, engine.ErrNotFound
	}
	return row, nil
}

func (f *fakeConfigStore) Upsert(_ context.Context, row *models.AirportConfig) error {
	if f.rows == nil {
		f.rows = map[string]*models.AirportConfig{}
	}
	f.rows[row.ConfigKey] = row
	return nil
}

func (f *fakeConfigStore) SaveWeights(_ context.Context, weights engine.Weights) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedWeights = weights
	return nil
}

type fakeRecReader struct {
	recs     []models.Recommendation
	accepted map[int64]string
}

func (f *fakeRecReader) ForFlight(_ context.Context, _ int64) ([]models.Recommendation, error) {
	return f.recs, nil
}

func (f *fakeRecReader) MarkAccepted(_ context.Context, flightID int64, gateNumber string) error {
	if f.accepted == nil {
		f.accepted = map[int64]string{}
	}
	f.accepted[flightID] = gateNumber
	return nil
}

type fakeRecommender struct {
	recs    []models.Recommendation
	err     error
	weights engine.Weights
	gotIDs  []int64
}

func (f *fakeRecommender) Generate(_ context.Context, flightIDs []int64) ([]models.Recommendation, error) {
	f.gotIDs = flightIDs
	return f.recs, f.err
}

func (f *fakeRecommender) ActiveWeights() engine.Weights {
	if f.weights == nil {
		return engine.DefaultWeights()
	}
	return f.weights
}

func (f *fakeRecommender) UpdateWeights(weights engine.Weights) error {
	if err := weights.Validate(); err != nil {
		return apperrors.NewWeightsInvalidError(err.Error())
	}
	f.weights = weights
	return nil
}

type fakeSyncer struct {
	calls  int
	result *integration.SyncResult
	onSync func()
}

func (f *fakeSyncer) Sync(_ context.Context, _ string) (*integration.SyncResult, error) {
	f.calls++
	if f.onSync != nil {
		f.onSync()
	}
	if f.result == nil {
		return &integration.SyncResult{}, nil
	}
	return f.result, nil
}

type fakeAudit struct {
	batches [][]models.Recommendation
}

func (f *fakeAudit) IndexBatch(_ context.Context, recs []models.Recommendation) {
	f.batches = append(f.batches, recs)
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) GateAssigned(_ context.Context, flight *models.Flight, gateNumber, _ string) {
	f.events = append(f.events, flight.FlightNumber+"->"+gateNumber)
}

type fakeSearcher struct {
	docs []search.AuditDocument
	got  search.HistoryQuery
}

func (f *fakeSearcher) Search(_ context.Context, q search.HistoryQuery) ([]search.AuditDocument, error) {
	f.got = q
	return f.docs, nil
}

// ==========================
// Harness
// ==========================

type harness struct {
	flights  *fakeFlightStore
	gates    *fakeGateStore
	configs  *fakeConfigStore
	recs     *fakeRecReader
	engine   *fakeRecommender
	syncer   *fakeSyncer
	audit    *fakeAudit
	notifier *fakeNotifier
	searcher *fakeSearcher
	router   *gin.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		flights:  &fakeFlightStore{flights: map[int64]*models.Flight{}},
		gates:    &fakeGateStore{gates: map[string]*models.Gate{}},
		configs:  &fakeConfigStore{rows: map[string]*models.AirportConfig{}},
		recs:     &fakeRecReader{},
		engine:   &fakeRecommender{},
		syncer:   &fakeSyncer{},
		audit:    &fakeAudit{},
		notifier: &fakeNotifier{},
		searcher: &fakeSearcher{},
	}

	cfg := &config.Config{}
	cfg.App.Name = "gate-advisor"
	cfg.App.Version = "test"
	cfg.Engine.MaxBatchSize = 50

	server := NewServer(cfg, logger.NewNoOpLogger(),
		h.flights, h.gates, h.configs, h.recs, h.engine,
		Options{
			Syncer:   h.syncer,
			Uploader: integration.NewUploader(&uploadCreator{h.flights}, logger.NewNoOpLogger()),
			History:  h.searcher,
			Audit:    h.audit,
			Notifier: h.notifier,
		})
	h.router = server.Router()
	return h
}

// uploadCreator adapts the flight store fake to the uploader.
type uploadCreator struct {
	store *fakeFlightStore
}

func (u *uploadCreator) Create(ctx context.Context, f *models.Flight) error {
	return u.store.Create(ctx, f)
}

func (h *harness) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) doJSON(method, path, body string) *httptest.ResponseRecorder {
	return h.do(method, path, strings.NewReader(body), "application/json")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ==========================
// Tests
// ==========================

func TestGenerateRecommendationsEndpoint(t *testing.T) {
	h := newHarness(t)
	h.engine.recs = []models.Recommendation{
		{FlightID: 1, GateNumber: "A1", TotalScore: 85.71, Status: models.RecommendationRecommended},
	}

	w := h.doJSON(http.MethodPost, "/api/recommendations", `{"flight_ids":[1,2]}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, []int64{1, 2}, h.engine.gotIDs)
	require.Len(t, h.audit.batches, 1, "generated batch must be audited")
}

func TestGenerateRecommendationsRejectsEmptyBody(t *testing.T) {
	h := newHarness(t)

	w := h.doJSON(http.MethodPost, "/api/recommendations", `{"flight_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, h.audit.batches)
}

func TestGenerateRecommendationsBatchLimit(t *testing.T) {
	h := newHarness(t)

	ids := make([]string, 51)
	for i := range ids {
		ids[i] = "1"
	}
	w := h.doJSON(http.MethodPost, "/api/recommendations",
		`{"flight_ids":[`+strings.Join(ids, ",")+`]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateRecommendationsEngineFailure(t *testing.T) {
	h := newHarness(t)
	h.engine.err = apperrors.NewPersistFailedError(errors.New("tx aborted"))

	w := h.doJSON(http.MethodPost, "/api/recommendations", `{"flight_ids":[1]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, h.audit.batches)
}

func TestListFlightsTriggersSyncWhenDateEmpty(t *testing.T) {
	h := newHarness(t)
	h.syncer.result = &integration.SyncResult{Created: 5}
	h.syncer.onSync = func() {
		h.flights.listed = []models.Flight{{ID: 1, FlightNumber: "AA123"}}
	}

	w := h.do(http.MethodGet, "/api/flights?date=2024-01-01", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, h.syncer.calls)
	assert.Equal(t, 2, h.flights.listCalls, "listing must be retried after sync")
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func TestListFlightsNoSyncWithoutDate(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/flights", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, h.syncer.calls)
}

func TestCreateFlightValidates(t *testing.T) {
	h := newHarness(t)

	w := h.doJSON(http.MethodPost, "/api/flights",
		`{"flight_number":"AA123","scheduled_date":"2024-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, h.flights.created)
}

func TestCreateFlightSuccess(t *testing.T) {
	h := newHarness(t)

	w := h.doJSON(http.MethodPost, "/api/flights", `{
		"flight_number":"AA123","scheduled_date":"2024-01-01","scheduled_time":"08:15:00",
		"aircraft_type":"narrow_body","flight_type":"arrival"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, h.flights.created, 1)
	assert.Equal(t, "AA123", h.flights.created[0].FlightNumber)
}

func TestCreateFlightDuplicateConflict(t *testing.T) {
	h := newHarness(t)
	h.flights.createErr = apperrors.NewDuplicateFlightError("AA123", "2024-01-01")

	w := h.doJSON(http.MethodPost, "/api/flights", `{
		"flight_number":"AA123","scheduled_date":"2024-01-01","scheduled_time":"08:15:00",
		"aircraft_type":"narrow_body","flight_type":"arrival"
	}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClearFlights(t *testing.T) {
	h := newHarness(t)
	h.flights.cleared = 42

	w := h.do(http.MethodDelete, "/api/flights", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(42), decodeBody(t, w)["deleted"])
}

func TestAssignGatesSuccess(t *testing.T) {
	h := newHarness(t)
	h.flights.flights[1] = &models.Flight{
		ID: 1, FlightNumber: "AA123", AssignedGate: "B2",
		ScheduledDate: "2024-01-01", ScheduledTime: "08:15:00",
	}
	h.gates.gates["A1"] = &models.Gate{ID: 1, GateNumber: "A1"}

	w := h.doJSON(http.MethodPost, "/api/assign",
		`{"assignments":[{"flight_id":1,"new_gate":"A1"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "A1", h.flights.assigned[1])
	assert.Equal(t, "A1", h.recs.accepted[1])
	assert.Equal(t, []string{"AA123->A1"}, h.notifier.events)
}

func TestAssignGatesPartialFailure(t *testing.T) {
	h := newHarness(t)
	h.flights.flights[1] = &models.Flight{ID: 1, FlightNumber: "AA123"}
	h.gates.gates["A1"] = &models.Gate{ID: 1, GateNumber: "A1"}

	w := h.doJSON(http.MethodPost, "/api/assign", `{"assignments":[
		{"flight_id":1,"new_gate":"A1"},
		{"flight_id":99,"new_gate":"A1"},
		{"flight_id":1,"new_gate":"Z9"}
	]}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["assigned"])
	outcomes := body["assignments"].([]interface{})
	require.Len(t, outcomes, 3)
	assert.Equal(t, true, outcomes[0].(map[string]interface{})["assigned"])
	assert.Equal(t, false, outcomes[1].(map[string]interface{})["assigned"])
	assert.Contains(t, outcomes[2].(map[string]interface{})["error"], "gate")
}

func TestAssignGatesAllFailed(t *testing.T) {
	h := newHarness(t)

	w := h.doJSON(http.MethodPost, "/api/assign",
		`{"assignments":[{"flight_id":99,"new_gate":"A1"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, h.notifier.events)
}

func TestUpdateWeightsViaConfig(t *testing.T) {
	h := newHarness(t)

	w := h.doJSON(http.MethodPost, "/api/config", `{
		"config_key":"optimization_weights",
		"config_value":"{\"compatibility\":0.4,\"turnaround\":0.4,\"distance\":0.2}"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 0.4, h.engine.weights[engine.DimCompatibility])
	assert.Equal(t, 0.2, h.configs.savedWeights[engine.DimDistance])
}

func TestUpdateWeightsRejectedKeepsEngineUntouched(t *testing.T) {
	h := newHarness(t)

	w := h.doJSON(http.MethodPost, "/api/config", `{
		"config_key":"optimization_weights",
		"config_value":"{\"compatibility\":0.6,\"turnaround\":0.3,\"distance\":0.2}"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, h.engine.weights, "engine must keep its previous weights")
	assert.Nil(t, h.configs.savedWeights, "nothing may be persisted")
}

func TestUpdateWeightsUnknownDimensionRejected(t *testing.T) {
	h := newHarness(t)

	w := h.doJSON(http.MethodPost, "/api/config", `{
		"config_key":"optimization_weights",
		"config_value":"{\"compatibility\":0.5,\"turnaround\":0.3,\"distance\":0.1,\"luck\":0.1}"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertPlainConfig(t *testing.T) {
	h := newHarness(t)

	w := h.doJSON(http.MethodPost, "/api/config", `{
		"config_key":"aodb_api","config_value":"{\"url\":\"http://aodb.local\"}","config_type":"json"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, h.configs.rows, "aodb_api")
}

func TestGetConfigByKeyNotFound(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/config?key=nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadCSV(t *testing.T) {
	h := newHarness(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "schedule.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(
		"flight_number,scheduled_date,scheduled_time,aircraft_type,flight_type\n" +
			"AA123,2024-01-01,08:15:00,narrow_body,arrival\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := h.do(http.MethodPost, "/api/upload", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, h.flights.created, 1)
	assert.Equal(t, "AA123", h.flights.created[0].FlightNumber)
}

func TestUploadRejectsExcel(t *testing.T) {
	h := newHarness(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "schedule.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("PK binary"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := h.do(http.MethodPost, "/api/upload", &buf, mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationHistoryQueryMapping(t *testing.T) {
	h := newHarness(t)
	h.searcher.docs = []search.AuditDocument{{GateNumber: "A1", TotalScore: 85.71}}

	w := h.do(http.MethodGet,
		"/api/recommendations/history?flight_id=7&gate=A1&size=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(7), h.searcher.got.FlightID)
	assert.Equal(t, "A1", h.searcher.got.GateNumber)
	assert.Equal(t, 5, h.searcher.got.Size)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
}

func TestHealthEndpoint(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "gate-advisor", body["app"])
}

func TestMetricsEndpointExposed(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
