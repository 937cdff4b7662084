package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/medsimlab/woundcare-agent/internal/api/middleware"
	"github.com/medsimlab/woundcare-agent/internal/executor"
	"github.com/medsimlab/woundcare-agent/internal/mcq"
	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/policy"
	"github.com/medsimlab/woundcare-agent/internal/progression"
	"github.com/medsimlab/woundcare-agent/internal/scenario"
	"github.com/medsimlab/woundcare-agent/internal/session"
	"github.com/rs/zerolog"
)

// ScenarioStore is the scenario storage surface the API exposes.
type ScenarioStore interface {
	Create(ctx context.Context, meta *scenario.Metadata) error
	Get(ctx context.Context, scenarioID string) (*scenario.Metadata, error)
	List(ctx context.Context) ([]scenario.Metadata, error)
	Delete(ctx context.Context, scenarioID string) error
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// StartSessionRequest creates a new learner session against a scenario.
type StartSessionRequest struct {
	ScenarioID string `json:"scenario_id"`
	StudentID  string `json:"student_id"`
}

// StartSessionResponse returns the new session plus a scenario summary.
type StartSessionResponse struct {
	SessionID       string          `json:"session_id"`
	CurrentStep     models.Step     `json:"current_step"`
	ScenarioSummary ScenarioSummary `json:"scenario_summary"`
}

type ScenarioSummary struct {
	ScenarioID     string `json:"scenario_id"`
	Title          string `json:"title"`
	PatientHistory string `json:"patient_history"`
	WoundDetails   string `json:"wound_details"`
}

// AggregateRequest is the stateless aggregation input.
type AggregateRequest struct {
	Step    models.Step               `json:"step"`
	Records []models.EvaluationRecord `json:"evaluator_outputs"`
}

// MCQRequest carries a student's answers keyed by question id.
type MCQRequest struct {
	Answers map[string]string `json:"answers"`
}

// MCQResponse is the graded MCQ outcome plus its knowledge contribution.
type MCQResponse struct {
	mcq.Result
	Summary      string  `json:"summary"`
	Contribution float64 `json:"knowledge_contribution"`
}

type Handler struct {
	executor    *executor.StepExecutor
	coordinator executor.StepCoordinator
	controller  *progression.Controller
	sessions    session.Repository
	scenarios   ScenarioStore
	policy      *policy.Policy
	logger      *zerolog.Logger
}

func NewHandler(
	exec *executor.StepExecutor,
	coordinator executor.StepCoordinator,
	controller *progression.Controller,
	sessions session.Repository,
	scenarios ScenarioStore,
	pol *policy.Policy,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		executor:    exec,
		coordinator: coordinator,
		controller:  controller,
		sessions:    sessions,
		scenarios:   scenarios,
		policy:      pol,
		logger:      logger,
	}
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}

// POST /api/v1/sessions
func (h *Handler) StartSession(req *restful.Request, resp *restful.Response) {
	var startReq StartSessionRequest
	if err := req.ReadEntity(&startReq); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if startReq.ScenarioID == "" || startReq.StudentID == "" {
		middleware.HandleError(resp, errors.New("scenario_id and student_id are required"), http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()

	meta, err := h.scenarios.Get(ctx, startReq.ScenarioID)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	state, err := h.controller.CreateSession(ctx, startReq.ScenarioID, startReq.StudentID)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusCreated, StartSessionResponse{
		SessionID:   state.SessionID,
		CurrentStep: state.CurrentStep,
		ScenarioSummary: ScenarioSummary{
			ScenarioID:     meta.ScenarioID,
			Title:          meta.Title,
			PatientHistory: meta.PatientHistory,
			WoundDetails:   meta.WoundDetails,
		},
	})
}

// GET /api/v1/sessions/{session_id}
func (h *Handler) GetSession(req *restful.Request, resp *restful.Response) {
	state, err := h.sessions.Get(req.Request.Context(), req.PathParameter("session_id"))
	if err != nil {
		h.writeError(resp, err)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, state)
}

// GET /api/v1/sessions
func (h *Handler) ListSessions(req *restful.Request, resp *restful.Response) {
	summaries, err := h.sessions.List(req.Request.Context(), req.QueryParameter("student_id"))
	if err != nil {
		h.writeError(resp, err)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, summaries)
}

// DELETE /api/v1/sessions/{session_id}
func (h *Handler) DeleteSession(req *restful.Request, resp *restful.Response) {
	sessionID := req.PathParameter("session_id")
	if err := h.sessions.Delete(req.Request.Context(), sessionID); err != nil {
		h.writeError(resp, err)
		return
	}
	resp.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/sessions/{session_id}/unlock
func (h *Handler) UnlockSession(req *restful.Request, resp *restful.Response) {
	state, err := h.controller.Unlock(req.Request.Context(), req.PathParameter("session_id"))
	if err != nil {
		h.writeError(resp, err)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, state)
}

// POST /api/v1/sessions/{session_id}/step
func (h *Handler) SessionStep(req *restful.Request, resp *restful.Response) {
	sessionID := req.PathParameter("session_id")

	var stepReq executor.StepRequest
	if err := req.ReadEntity(&stepReq); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Int("records", len(stepReq.Records)).
		Msg("Start step evaluation")

	decision, err := h.executor.Execute(req.Request.Context(), sessionID, stepReq)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Str("status", string(decision.Status)).
		Str("current_step", string(decision.CurrentStep)).
		Msg("Step evaluation complete")

	resp.WriteHeaderAndEntity(http.StatusOK, decision)
}

// POST /api/v1/sessions/{session_id}/mcq
func (h *Handler) GradeMCQ(req *restful.Request, resp *restful.Response) {
	sessionID := req.PathParameter("session_id")

	var mcqReq MCQRequest
	if err := req.ReadEntity(&mcqReq); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result, err := h.executor.GradeMCQ(req.Request.Context(), sessionID, mcqReq.Answers)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, MCQResponse{
		Result:       *result,
		Summary:      mcq.Summary(*result),
		Contribution: mcq.Contribution(result.Score, h.policy.MCQWeight),
	})
}

// POST /api/v1/aggregate
func (h *Handler) Aggregate(req *restful.Request, resp *restful.Response) {
	var aggReq AggregateRequest
	if err := req.ReadEntity(&aggReq); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	evaluation := h.coordinator.Evaluate(aggReq.Records, aggReq.Step)
	resp.WriteHeaderAndEntity(http.StatusOK, evaluation)
}

// POST /api/v1/scenarios
func (h *Handler) CreateScenario(req *restful.Request, resp *restful.Response) {
	var meta scenario.Metadata
	if err := req.ReadEntity(&meta); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if err := h.scenarios.Create(req.Request.Context(), &meta); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusCreated, meta)
}

// GET /api/v1/scenarios/{scenario_id}
func (h *Handler) GetScenario(req *restful.Request, resp *restful.Response) {
	meta, err := h.scenarios.Get(req.Request.Context(), req.PathParameter("scenario_id"))
	if err != nil {
		h.writeError(resp, err)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, meta)
}

// GET /api/v1/scenarios
func (h *Handler) ListScenarios(req *restful.Request, resp *restful.Response) {
	scenarios, err := h.scenarios.List(req.Request.Context())
	if err != nil {
		h.writeError(resp, err)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, scenarios)
}

// DELETE /api/v1/scenarios/{scenario_id}
func (h *Handler) DeleteScenario(req *restful.Request, resp *restful.Response) {
	if err := h.scenarios.Delete(req.Request.Context(), req.PathParameter("scenario_id")); err != nil {
		h.writeError(resp, err)
		return
	}
	resp.WriteHeader(http.StatusNoContent)
}

// writeError maps the distinct domain conditions onto status codes.
func (h *Handler) writeError(resp *restful.Response, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, scenario.ErrNotFound):
		middleware.HandleError(resp, err, http.StatusNotFound)
	case errors.Is(err, progression.ErrSessionComplete):
		middleware.HandleError(resp, err, http.StatusConflict)
	default:
		h.logger.Error().Err(err).Msg("request failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
	}
}
