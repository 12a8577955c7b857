package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/settings"
	"github.com/gridrivals/fantasy-motorsport/internal/infrastructure/repository/memory"
	idgen "github.com/gridrivals/fantasy-motorsport/internal/platform/id"
	"github.com/gridrivals/fantasy-motorsport/internal/platform/logging"
	"github.com/gridrivals/fantasy-motorsport/internal/usecase"
)

const testJobToken = "test-job-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	riderRepo := memory.NewRiderRepository(memory.SeedRiders())
	constructorRepo := memory.NewConstructorRepository(memory.SeedConstructors())
	raceRepo := memory.NewRaceRepository(memory.SeedRaces())
	participantRepo := memory.NewParticipantRepository(memory.SeedParticipants())
	snapshotRepo := memory.NewSnapshotRepository(nil)
	resultsRepo := memory.NewResultsRepository(nil)
	// Zero deadline keeps the market open regardless of the test clock.
	settingsRepo := memory.NewSettingsRepository(settings.LeagueSettings{})

	rules := roster.DefaultRules()
	logger := logging.NewNop()

	catalogService := usecase.NewCatalogService(riderRepo, constructorRepo, raceRepo, participantRepo, settingsRepo)
	teamService := usecase.NewTeamService(participantRepo, raceRepo, snapshotRepo, riderRepo, constructorRepo, settingsRepo, rules, idgen.NewRandomGenerator())
	scoringService := usecase.NewScoringService(participantRepo, raceRepo, snapshotRepo, riderRepo, constructorRepo, resultsRepo, rules, nil)
	statsService := usecase.NewStatsService(participantRepo, snapshotRepo, riderRepo, constructorRepo, resultsRepo)
	dreamTeamService := usecase.NewDreamTeamService(raceRepo, riderRepo, constructorRepo, resultsRepo, rules)
	marketService := usecase.NewMarketService(raceRepo, riderRepo, constructorRepo, participantRepo, snapshotRepo, rules, logger)
	resultsSyncService := usecase.NewResultsSyncService(raceRepo, riderRepo, resultsRepo, nil)

	handler := NewHandler(
		catalogService,
		teamService,
		scoringService,
		statsService,
		dreamTeamService,
		marketService,
		resultsSyncService,
		logger,
	)

	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_ListRiders(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/riders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected seeded riders in data, got %v", body["data"])
	}
}

func TestRouter_SaveAndGetTeam(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"riderIds":["rdr-09","rdr-10","rdr-19","rdr-20"],"constructorId":"` + memory.ConstructorIDHonda + `"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/participants/ppt-01/team", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("save team: expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/participants/ppt-01/team", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("get team: expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected roster object, got %v", body["data"])
	}
	riderIDs, _ := data["riderIds"].([]any)
	if len(riderIDs) != 4 {
		t.Fatalf("expected 4 rostered riders, got %v", data["riderIds"])
	}
	if got, _ := data["constructorId"].(string); got != memory.ConstructorIDHonda {
		t.Fatalf("constructor mismatch: got=%q", got)
	}
}

func TestRouter_SaveTeam_RejectsOverBudget(t *testing.T) {
	router := newTestRouter(t)

	// Four most expensive riders plus Ducati blow the 1000 cap.
	payload := `{"riderIds":["rdr-01","rdr-02","rdr-03","rdr-04"],"constructorId":"` + memory.ConstructorIDDucati + `"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/participants/ppt-01/team", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Standings(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 4 {
		t.Fatalf("expected 4 standings rows, got %v", body["data"])
	}
}

func TestRouter_Standings_UnknownRaceView(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/standings?view=rc-99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_InternalJobsRequireToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/market-adjust", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/market-adjust", nil)
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ResultsSyncWithoutFeedIsUnavailable(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/results-sync", strings.NewReader(`{}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without feed, got %d", rec.Code)
	}
}
