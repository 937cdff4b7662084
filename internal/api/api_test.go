package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/medsimlab/woundcare-agent/internal/api"
	"github.com/medsimlab/woundcare-agent/internal/coordinator"
	"github.com/medsimlab/woundcare-agent/internal/executor"
	"github.com/medsimlab/woundcare-agent/internal/feedback"
	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/policy"
	"github.com/medsimlab/woundcare-agent/internal/progression"
	"github.com/medsimlab/woundcare-agent/internal/readiness"
	"github.com/medsimlab/woundcare-agent/internal/scenario"
	"github.com/medsimlab/woundcare-agent/internal/session"
	"github.com/rs/zerolog"
)

// memScenarioStore is an in-memory stand-in for the Postgres repository.
type memScenarioStore struct {
	scenarios map[string]scenario.Metadata
}

func newMemScenarioStore() *memScenarioStore {
	return &memScenarioStore{scenarios: map[string]scenario.Metadata{}}
}

func (s *memScenarioStore) Create(ctx context.Context, meta *scenario.Metadata) error {
	if err := meta.Validate(); err != nil {
		return err
	}
	s.scenarios[meta.ScenarioID] = *meta
	return nil
}

func (s *memScenarioStore) Get(ctx context.Context, scenarioID string) (*scenario.Metadata, error) {
	meta, ok := s.scenarios[scenarioID]
	if !ok {
		return nil, scenario.ErrNotFound
	}
	return &meta, nil
}

func (s *memScenarioStore) List(ctx context.Context) ([]scenario.Metadata, error) {
	out := []scenario.Metadata{}
	for _, meta := range s.scenarios {
		out = append(out, meta)
	}
	return out, nil
}

func (s *memScenarioStore) Delete(ctx context.Context, scenarioID string) error {
	if _, ok := s.scenarios[scenarioID]; !ok {
		return scenario.ErrNotFound
	}
	delete(s.scenarios, scenarioID)
	return nil
}

func setupTestAPI(t *testing.T) *restful.Container {
	t.Helper()

	logger := zerolog.Nop()
	pol := policy.Default()

	coord := coordinator.New(
		readiness.NewEngine(pol, &logger),
		feedback.NewAggregator(pol, &logger),
		&logger,
	)

	repo := session.NewMemoryRepository()
	controller := progression.NewController(repo, &logger)

	store := newMemScenarioStore()
	store.Create(context.Background(), &scenario.Metadata{
		ScenarioID:     "scenario-1",
		Title:          "Diabetic foot ulcer",
		PatientHistory: "68-year-old with type 2 diabetes.",
		WoundDetails:   "2cm ulcer on the left heel.",
		AssessmentQuestions: []scenario.MCQQuestion{
			{ID: "q1", Question: "Preferred cleansing solution?", CorrectAnswer: "A"},
		},
	})

	exec := executor.NewStepExecutor(store, nil, nil, coord, controller, repo, &logger)

	handler := api.NewHandler(exec, coord, controller, repo, store, pol, &logger)

	container := restful.NewContainer()
	api.RegisterRoutes(container, handler)
	return container
}

func doJSON(t *testing.T, container *restful.Container, method string, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal request: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func startSession(t *testing.T, container *restful.Container) string {
	t.Helper()

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/sessions", api.StartSessionRequest{
		ScenarioID: "scenario-1",
		StudentID:  "student-1",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response api.StartSessionResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.CurrentStep != models.StepHistory {
		t.Fatalf("Expected session to start at HISTORY, got %s", response.CurrentStep)
	}
	return response.SessionID
}

func appropriateRecords() []models.EvaluationRecord {
	return []models.EvaluationRecord{
		{Category: models.CategoryCommunication, Verdict: models.VerdictAppropriate, Confidence: 0.9},
		{Category: models.CategoryKnowledge, Verdict: models.VerdictAppropriate, Confidence: 0.9},
		{Category: models.CategoryClinical, Verdict: models.VerdictAppropriate, Confidence: 0.9},
	}
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(t)

	recorder := doJSON(t, container, http.MethodGet, "/api/v1/health", nil)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got %q", response.Status)
	}
}

func TestAPI_StartSession_UnknownScenario(t *testing.T) {
	container := setupTestAPI(t)

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/sessions", api.StartSessionRequest{
		ScenarioID: "missing",
		StudentID:  "student-1",
	})

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", recorder.Code)
	}
}

func TestAPI_StartSession_MissingFields(t *testing.T) {
	container := setupTestAPI(t)

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/sessions", api.StartSessionRequest{
		ScenarioID: "scenario-1",
	})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", recorder.Code)
	}
}

func TestAPI_SessionStep_Advances(t *testing.T) {
	container := setupTestAPI(t)
	sessionID := startSession(t, container)

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/sessions/"+sessionID+"/step", executor.StepRequest{
		UserInput: "Can you walk me through your history?",
		Records:   appropriateRecords(),
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var decision models.Decision
	if err := json.Unmarshal(recorder.Body.Bytes(), &decision); err != nil {
		t.Fatalf("Failed to parse decision: %v", err)
	}
	if decision.Status != models.StatusAdvanced {
		t.Errorf("Expected ADVANCED, got %s", decision.Status)
	}
	if decision.CurrentStep != models.StepAssessment {
		t.Errorf("Expected ASSESSMENT, got %s", decision.CurrentStep)
	}
}

func TestAPI_SessionStep_LockAndUnlock(t *testing.T) {
	container := setupTestAPI(t)
	sessionID := startSession(t, container)

	// Three issues in the dominant HISTORY category trip the safety rules.
	blocked := []models.EvaluationRecord{
		{
			Category:   models.CategoryCommunication,
			Verdict:    models.VerdictInappropriate,
			Confidence: 0.9,
			IssuesDetected: []string{
				"interrupted the patient",
				"dismissed reported pain",
				"used dangerous reassurance",
			},
		},
	}

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/sessions/"+sessionID+"/step", executor.StepRequest{Records: blocked})
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var decision models.Decision
	json.Unmarshal(recorder.Body.Bytes(), &decision)
	if decision.Status != models.StatusLocked {
		t.Fatalf("Expected LOCKED, got %s", decision.Status)
	}

	recorder = doJSON(t, container, http.MethodPost, "/api/v1/sessions/"+sessionID+"/unlock", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200 on unlock, got %d", recorder.Code)
	}

	var state models.SessionState
	json.Unmarshal(recorder.Body.Bytes(), &state)
	if state.Locked {
		t.Error("Expected session unlocked")
	}
}

func TestAPI_SessionStep_UnknownSession(t *testing.T) {
	container := setupTestAPI(t)

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/sessions/missing/step", executor.StepRequest{Records: appropriateRecords()})

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", recorder.Code)
	}
}

func TestAPI_CompletedSessionConflicts(t *testing.T) {
	container := setupTestAPI(t)
	sessionID := startSession(t, container)

	// Pass all four steps.
	for i := 0; i < 4; i++ {
		recorder := doJSON(t, container, http.MethodPost, "/api/v1/sessions/"+sessionID+"/step", executor.StepRequest{Records: appropriateRecords()})
		if recorder.Code != http.StatusOK {
			t.Fatalf("Step %d: expected 200, got %d", i, recorder.Code)
		}
		if i == 3 {
			var decision models.Decision
			json.Unmarshal(recorder.Body.Bytes(), &decision)
			if decision.Status != models.StatusComplete {
				t.Errorf("Expected COMPLETE at final step, got %s", decision.Status)
			}
		}
	}

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/sessions/"+sessionID+"/step", executor.StepRequest{Records: appropriateRecords()})
	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected 409 after completion, got %d", recorder.Code)
	}
}

func TestAPI_Aggregate_Stateless(t *testing.T) {
	container := setupTestAPI(t)

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/aggregate", api.AggregateRequest{
		Step:    models.StepCleaning,
		Records: appropriateRecords(),
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var evaluation models.StepEvaluation
	if err := json.Unmarshal(recorder.Body.Bytes(), &evaluation); err != nil {
		t.Fatalf("Failed to parse evaluation: %v", err)
	}
	if !evaluation.Result.ReadyForNextStep {
		t.Errorf("Expected ready, composite %f", evaluation.Result.CompositeScore)
	}
	if evaluation.Result.ThresholdUsed != 0.7 {
		t.Errorf("Expected CLEANING threshold 0.7, got %f", evaluation.Result.ThresholdUsed)
	}
}

func TestAPI_GradeMCQ(t *testing.T) {
	container := setupTestAPI(t)
	sessionID := startSession(t, container)

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/sessions/"+sessionID+"/mcq", api.MCQRequest{
		Answers: map[string]string{"q1": "A"},
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response api.MCQResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Score != 1.0 {
		t.Errorf("Expected perfect score, got %f", response.Score)
	}
	if response.Contribution != 0.4 {
		t.Errorf("Expected knowledge contribution 0.4, got %f", response.Contribution)
	}
}

func TestAPI_ScenarioCRUD(t *testing.T) {
	container := setupTestAPI(t)

	meta := scenario.Metadata{
		ScenarioID:     "scenario-2",
		Title:          "Pressure injury",
		PatientHistory: "82-year-old, limited mobility.",
		WoundDetails:   "Stage 2 pressure injury on the sacrum.",
	}

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/scenarios", meta)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder = doJSON(t, container, http.MethodGet, "/api/v1/scenarios/scenario-2", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	recorder = doJSON(t, container, http.MethodDelete, "/api/v1/scenarios/scenario-2", nil)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", recorder.Code)
	}

	recorder = doJSON(t, container, http.MethodGet, "/api/v1/scenarios/scenario-2", nil)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", recorder.Code)
	}
}

func TestAPI_InvalidScenarioRejected(t *testing.T) {
	container := setupTestAPI(t)

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/scenarios", scenario.Metadata{ScenarioID: "incomplete"})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", recorder.Code)
	}
}

func TestAPI_ListSessions(t *testing.T) {
	container := setupTestAPI(t)
	startSession(t, container)
	startSession(t, container)

	recorder := doJSON(t, container, http.MethodGet, "/api/v1/sessions?student_id=student-1", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	var summaries []models.SessionSummary
	if err := json.Unmarshal(recorder.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("Failed to parse summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(summaries))
	}
}
