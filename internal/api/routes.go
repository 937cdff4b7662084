package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/medsimlab/woundcare-agent/internal/api/middleware"
	"github.com/medsimlab/woundcare-agent/internal/executor"
	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/scenario"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/sessions").
			To(handler.StartSession).
			Doc("Start a learner session against a scenario").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Reads(StartSessionRequest{}).
			Writes(StartSessionResponse{}).
			Returns(201, "Created", StartSessionResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Scenario Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/sessions").
			To(handler.ListSessions).
			Doc("List sessions").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Param(ws.QueryParameter("student_id", "Filter by student").DataType("string").Required(false)).
			Writes([]models.SessionSummary{}).
			Returns(200, "OK", []models.SessionSummary{}))

	ws.
		Route(ws.GET("/sessions/{session_id}").
			To(handler.GetSession).
			Doc("Get session state").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Param(ws.PathParameter("session_id", "Session identifier").DataType("string")).
			Writes(models.SessionState{}).
			Returns(200, "OK", models.SessionState{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.DELETE("/sessions/{session_id}").
			To(handler.DeleteSession).
			Doc("Delete a session").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Param(ws.PathParameter("session_id", "Session identifier").DataType("string")).
			Returns(204, "Deleted", nil).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/sessions/{session_id}/unlock").
			To(handler.UnlockSession).
			Doc("Clear the safety lock on a session").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Param(ws.PathParameter("session_id", "Session identifier").DataType("string")).
			Writes(models.SessionState{}).
			Returns(200, "OK", models.SessionState{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/sessions/{session_id}/step").
			To(handler.SessionStep).
			Doc("Evaluate one step attempt and apply the progression decision").
			Metadata(restfulspec.KeyOpenAPITags, []string{"evaluate"}).
			Param(ws.PathParameter("session_id", "Session identifier").DataType("string")).
			Reads(executor.StepRequest{}).
			Writes(models.Decision{}).
			Returns(200, "OK", models.Decision{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}).
			Returns(409, "Session Complete", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/sessions/{session_id}/mcq").
			To(handler.GradeMCQ).
			Doc("Grade a multiple-choice submission for the session's scenario").
			Metadata(restfulspec.KeyOpenAPITags, []string{"evaluate"}).
			Param(ws.PathParameter("session_id", "Session identifier").DataType("string")).
			Reads(MCQRequest{}).
			Writes(MCQResponse{}).
			Returns(200, "OK", MCQResponse{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/aggregate").
			To(handler.Aggregate).
			Doc("Aggregate evaluator records for a step without touching session state").
			Metadata(restfulspec.KeyOpenAPITags, []string{"evaluate"}).
			Reads(AggregateRequest{}).
			Writes(models.StepEvaluation{}).
			Returns(200, "OK", models.StepEvaluation{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/scenarios").
			To(handler.CreateScenario).
			Doc("Create or replace a scenario").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scenarios"}).
			Reads(scenario.Metadata{}).
			Writes(scenario.Metadata{}).
			Returns(201, "Created", scenario.Metadata{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/scenarios").
			To(handler.ListScenarios).
			Doc("List scenarios").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scenarios"}).
			Writes([]scenario.Metadata{}).
			Returns(200, "OK", []scenario.Metadata{}))

	ws.
		Route(ws.GET("/scenarios/{scenario_id}").
			To(handler.GetScenario).
			Doc("Get a scenario").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scenarios"}).
			Param(ws.PathParameter("scenario_id", "Scenario identifier").DataType("string")).
			Writes(scenario.Metadata{}).
			Returns(200, "OK", scenario.Metadata{}).
			Returns(404, "Scenario Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.DELETE("/scenarios/{scenario_id}").
			To(handler.DeleteScenario).
			Doc("Delete a scenario").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scenarios"}).
			Param(ws.PathParameter("scenario_id", "Scenario identifier").DataType("string")).
			Returns(204, "Deleted", nil).
			Returns(404, "Scenario Not Found", middleware.ErrorResponse{}))

	container.Add(ws)
}
