package routes

import (
	"errors"
	"net/http"

	"github.com/teamscope-ai/teamscope/backend/internal/server/middleware"
	"github.com/teamscope-ai/teamscope/backend/pkg/common"
	"github.com/teamscope-ai/teamscope/backend/pkg/graph"
	"github.com/teamscope-ai/teamscope/backend/pkg/hierarchy"
	"github.com/teamscope-ai/teamscope/backend/pkg/logger"
	"github.com/teamscope-ai/teamscope/backend/pkg/store"
	teamstore "github.com/teamscope-ai/teamscope/backend/pkg/store/pgx"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetTeamGraphHandler assembles the relationship graph for a team from
// its contacts, profiles and the latest analysis. Without an analysis
// the graph still carries reporting edges; the response says so.
func GetTeamGraphHandler(c echo.Context) error {
	type getGraphParams struct {
		TeamID string `param:"id" validate:"required"`
	}

	type styledEdge struct {
		common.RelationshipEdge
		Style graph.EdgeStyle `json:"style"`
	}

	type getGraphResponse struct {
		Message       string                     `json:"message"`
		Nodes         []common.GraphNode         `json:"nodes"`
		Edges         []styledEdge               `json:"edges"`
		CohesionScore float64                    `json:"cohesion_score"`
		TensionLevel  string                     `json:"tension_level"`
		PowerCenters  []common.RankedPowerCenter `json:"power_centers"`
	}

	params := new(getGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	st := teamstore.NewTeamDBStorage(conn)

	if _, err := st.GetTeam(ctx, params.TeamID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Team not found"})
		}
		logger.Error("Failed to get team", "team_id", params.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	contacts, err := st.ListContacts(ctx, params.TeamID)
	if err != nil {
		logger.Error("Failed to list contacts", "team_id", params.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	profiles, err := st.ListProfiles(ctx, params.TeamID)
	if err != nil {
		logger.Error("Failed to list profiles", "team_id", params.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	message := "Team graph"
	var analysis common.TeamAnalysis
	record, err := st.GetLatestAnalysis(ctx, params.TeamID)
	switch {
	case err == nil:
		analysis = record.Analysis
	case errors.Is(err, store.ErrNotFound):
		message = "Team graph (no analysis yet)"
	default:
		logger.Error("Failed to load analysis", "team_id", params.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	g := graph.Build(contacts, profiles, analysis)

	edges := make([]styledEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, styledEdge{
			RelationshipEdge: e,
			Style:            graph.StyleForKind(e.Kind),
		})
	}

	return c.JSON(http.StatusOK, getGraphResponse{
		Message:       message,
		Nodes:         g.Nodes,
		Edges:         edges,
		CohesionScore: g.CohesionScore,
		TensionLevel:  g.TensionLevel,
		PowerCenters:  g.PowerCenters,
	})
}

// GetTeamHierarchyHandler returns each contact's reporting level.
func GetTeamHierarchyHandler(c echo.Context) error {
	type getHierarchyParams struct {
		TeamID string `param:"id" validate:"required"`
	}

	type hierarchyEntry struct {
		ContactID string `json:"contact_id"`
		Name      string `json:"name"`
		ReportsTo string `json:"reports_to,omitempty"`
		Level     int    `json:"level"`
	}

	params := new(getHierarchyParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	st := teamstore.NewTeamDBStorage(conn)

	contacts, err := st.ListContacts(ctx, params.TeamID)
	if err != nil {
		logger.Error("Failed to list contacts", "team_id", params.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	levels := hierarchy.Levels(contacts)
	entries := make([]hierarchyEntry, 0, len(contacts))
	for _, contact := range contacts {
		entries = append(entries, hierarchyEntry{
			ContactID: contact.ID,
			Name:      contact.Name,
			ReportsTo: contact.ReportsTo(),
			Level:     levels[contact.ID],
		})
	}

	return c.JSON(http.StatusOK, entries)
}
