package routes

import (
	"errors"
	"net/http"

	"github.com/teamscope-ai/teamscope/backend/internal/server/middleware"
	"github.com/teamscope-ai/teamscope/backend/pkg/logger"
	"github.com/teamscope-ai/teamscope/backend/pkg/store"
	teamstore "github.com/teamscope-ai/teamscope/backend/pkg/store/pgx"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func GetTeamsHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	st := teamstore.NewTeamDBStorage(conn)

	teams, err := st.ListTeams(ctx)
	if err != nil {
		logger.Error("Failed to list teams", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, teams)
}

func CreateTeamHandler(c echo.Context) error {
	type createTeamBody struct {
		Name string `json:"name" validate:"required"`
	}

	type createTeamResponse struct {
		Message string      `json:"message"`
		Team    *store.Team `json:"team,omitempty"`
	}

	data := new(createTeamBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createTeamResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createTeamResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, createTeamResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	st := teamstore.NewTeamDBStorage(conn)

	team, err := st.CreateTeam(ctx, data.Name)
	if err != nil {
		logger.Error("Failed to create team", "err", err)
		return c.JSON(http.StatusInternalServerError, createTeamResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, createTeamResponse{
		Message: "Team created successfully",
		Team:    &team,
	})
}

func DeleteTeamHandler(c echo.Context) error {
	type deleteTeamParams struct {
		TeamID string `param:"id" validate:"required"`
	}

	params := new(deleteTeamParams)
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

	if err := st.DeleteTeam(ctx, params.TeamID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Team not found"})
		}
		logger.Error("Failed to delete team", "team_id", params.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Team deleted successfully"})
}
