package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/teamscope-ai/teamscope/backend/internal/queue"
	"github.com/teamscope-ai/teamscope/backend/internal/server/middleware"
	"github.com/teamscope-ai/teamscope/backend/internal/util"
	"github.com/teamscope-ai/teamscope/backend/pkg/graph"
	"github.com/teamscope-ai/teamscope/backend/pkg/logger"
	"github.com/teamscope-ai/teamscope/backend/pkg/store"
	teamstore "github.com/teamscope-ai/teamscope/backend/pkg/store/pgx"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// AnalyzeTeamHandler queues a full analysis run for a team. The run
// itself happens in the worker; the response only confirms enqueueing.
func AnalyzeTeamHandler(c echo.Context) error {
	type analyzeTeamParams struct {
		TeamID string `param:"id" validate:"required"`
	}

	type analyzeTeamResponse struct {
		Message       string `json:"message"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}

	params := new(analyzeTeamParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeTeamResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeTeamResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, analyzeTeamResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	st := teamstore.NewTeamDBStorage(conn)

	if _, err := st.GetTeam(ctx, params.TeamID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, analyzeTeamResponse{
				Message: "Team not found",
			})
		}
		logger.Error("Failed to get team", "team_id", params.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeTeamResponse{
			Message: "Internal server error",
		})
	}

	correlationID, err := util.NewCorrelationID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, analyzeTeamResponse{
			Message: "Internal server error",
		})
	}

	queueData := queue.AnalyzeTeamMsg{
		Message:       "Team analysis requested",
		TeamID:        params.TeamID,
		CorrelationID: correlationID,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, analyzeTeamResponse{
			Message: "Internal server error",
		})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.AnalyzeQueue, msgBytes); err != nil {
		logger.Error("Failed to publish to analyze_queue", "team_id", params.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeTeamResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, analyzeTeamResponse{
		Message:       "Analysis queued",
		CorrelationID: correlationID,
	})
}

// ImportAnalysisHandler stores an externally produced analysis payload
// for a team. The payload goes through the same tolerant normalization
// as worker output, so malformed-but-repairable JSON is accepted.
func ImportAnalysisHandler(c echo.Context) error {
	type importAnalysisParams struct {
		TeamID string `param:"id" validate:"required"`
	}

	type importAnalysisResponse struct {
		Message       string `json:"message"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}

	params := new(importAnalysisParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, importAnalysisResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, importAnalysisResponse{
			Message: "Invalid request params",
		})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		return c.JSON(http.StatusBadRequest, importAnalysisResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, importAnalysisResponse{
			Message: "Unauthorized",
		})
	}

	parsed, err := graph.ParseAnalysis(string(body))
	if err != nil {
		return c.JSON(http.StatusBadRequest, importAnalysisResponse{
			Message: "Payload is not a valid analysis",
		})
	}

	correlationID, err := util.NewCorrelationID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, importAnalysisResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	st := teamstore.NewTeamDBStorage(conn)

	err = st.SaveAnalysis(ctx, store.AnalysisRecord{
		TeamID:        params.TeamID,
		CorrelationID: correlationID,
		Payload:       string(body),
		Analysis:      parsed,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, importAnalysisResponse{
				Message: "Team not found",
			})
		}
		logger.Error("Failed to import analysis", "team_id", params.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, importAnalysisResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, importAnalysisResponse{
		Message:       "Analysis imported",
		CorrelationID: correlationID,
	})
}
