package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/teamscope-ai/teamscope/backend/internal/server/middleware"
	"github.com/teamscope-ai/teamscope/backend/pkg/availability"
	"github.com/teamscope-ai/teamscope/backend/pkg/common"
	"github.com/teamscope-ai/teamscope/backend/pkg/logger"
	teamstore "github.com/teamscope-ai/teamscope/backend/pkg/store/pgx"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetTeamAvailabilityHandler computes the golden meeting window for a
// stored team.
func GetTeamAvailabilityHandler(c echo.Context) error {
	type getAvailabilityParams struct {
		TeamID    string   `param:"id" validate:"required"`
		WorkStart *float64 `query:"work_start" validate:"omitempty,gte=0,lt=24"`
		WorkEnd   *float64 `query:"work_end" validate:"omitempty,gt=0,lte=24"`
	}

	params := new(getAvailabilityParams)
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

	avParams := availability.DefaultParams()
	if params.WorkStart != nil {
		avParams.WorkStart = *params.WorkStart
	}
	if params.WorkEnd != nil {
		avParams.WorkEnd = *params.WorkEnd
	}

	overlap := availability.Compute(contacts, time.Now(), avParams)
	return c.JSON(http.StatusOK, overlap)
}

// ComputeAvailabilityHandler computes overlap for an ad-hoc set of
// people, without requiring stored contacts.
func ComputeAvailabilityHandler(c echo.Context) error {
	type member struct {
		Name     string `json:"name" validate:"required"`
		Timezone string `json:"timezone"`
	}

	type computeAvailabilityBody struct {
		Members []member `json:"members" validate:"required,min=1,dive"`
	}

	data := new(computeAvailabilityBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	contacts := make([]common.Contact, 0, len(data.Members))
	for i, m := range data.Members {
		contacts = append(contacts, common.Contact{
			ID:       "adhoc_" + strconv.Itoa(i),
			Name:     m.Name,
			Timezone: m.Timezone,
		})
	}

	overlap := availability.ComputeGoldenHours(contacts, time.Now())
	return c.JSON(http.StatusOK, overlap)
}
