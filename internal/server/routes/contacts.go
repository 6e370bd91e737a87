package routes

import (
	"errors"
	"net/http"

	"github.com/teamscope-ai/teamscope/backend/internal/server/middleware"
	"github.com/teamscope-ai/teamscope/backend/internal/storage"
	"github.com/teamscope-ai/teamscope/backend/pkg/common"
	"github.com/teamscope-ai/teamscope/backend/pkg/logger"
	"github.com/teamscope-ai/teamscope/backend/pkg/store"
	teamstore "github.com/teamscope-ai/teamscope/backend/pkg/store/pgx"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func GetContactsHandler(c echo.Context) error {
	type getContactsParams struct {
		TeamID string `param:"id" validate:"required"`
	}

	params := new(getContactsParams)
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

	return c.JSON(http.StatusOK, contacts)
}

// CreateContactHandler creates a contact from multipart/form-data. An
// optional "avatar" file part is uploaded to object storage.
func CreateContactHandler(c echo.Context) error {
	type createContactBody struct {
		TeamID       string `param:"id" validate:"required"`
		Name         string `form:"name" validate:"required"`
		Role         string `form:"role"`
		Organization string `form:"organization"`
		Timezone     string `form:"timezone"`
		Aliases      string `form:"aliases"`
		ReportsTo    string `form:"reports_to"`
	}

	type createContactResponse struct {
		Message string          `json:"message"`
		Contact *common.Contact `json:"contact,omitempty"`
	}

	data := new(createContactBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createContactResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createContactResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, createContactResponse{
			Message: "Unauthorized",
		})
	}

	contact := common.Contact{
		Name:         data.Name,
		Role:         data.Role,
		Organization: data.Organization,
		Timezone:     data.Timezone,
		Aliases:      common.SplitNameList(data.Aliases),
	}
	if data.ReportsTo != "" {
		contact.Relationships = []common.ContactRelationship{{
			Type:      common.RelationReportsTo,
			ContactID: data.ReportsTo,
		}}
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	st := teamstore.NewTeamDBStorage(conn)

	created, err := st.CreateContact(ctx, data.TeamID, contact)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, createContactResponse{
				Message: "Team not found",
			})
		}
		logger.Error("Failed to create contact", "team_id", data.TeamID, "err", err)
		return c.JSON(http.StatusInternalServerError, createContactResponse{
			Message: "Internal server error",
		})
	}

	if avatar, err := c.FormFile("avatar"); err == nil {
		src, err := avatar.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, createContactResponse{
				Message: "Could not open avatar file",
			})
		}
		defer src.Close()

		s3Client := c.(*middleware.AppContext).App.S3
		key, err := storage.PutAvatar(ctx, s3Client, created.ID, avatar.Filename, src)
		if err != nil {
			logger.Error("Failed to upload avatar", "contact_id", created.ID, "err", err)
			return c.JSON(http.StatusInternalServerError, createContactResponse{
				Message: "Internal server error",
			})
		}

		created.AvatarKey = key
		created, err = st.UpdateContact(ctx, created)
		if err != nil {
			logger.Error("Failed to store avatar key", "contact_id", created.ID, "err", err)
			return c.JSON(http.StatusInternalServerError, createContactResponse{
				Message: "Internal server error",
			})
		}
	}

	return c.JSON(http.StatusOK, createContactResponse{
		Message: "Contact created successfully",
		Contact: &created,
	})
}

func EditContactHandler(c echo.Context) error {
	type editContactBody struct {
		ContactID    string   `param:"id" validate:"required"`
		Name         *string  `json:"name"`
		Role         *string  `json:"role"`
		Organization *string  `json:"organization"`
		Timezone     *string  `json:"timezone"`
		Aliases      []string `json:"aliases"`
		ReportsTo    *string  `json:"reports_to"`
	}

	type editContactResponse struct {
		Message string          `json:"message"`
		Contact *common.Contact `json:"contact,omitempty"`
	}

	data := new(editContactBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editContactResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editContactResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, editContactResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	st := teamstore.NewTeamDBStorage(conn)

	contact, err := st.GetContact(ctx, data.ContactID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, editContactResponse{
				Message: "Contact not found",
			})
		}
		logger.Error("Failed to get contact", "contact_id", data.ContactID, "err", err)
		return c.JSON(http.StatusInternalServerError, editContactResponse{
			Message: "Internal server error",
		})
	}

	if data.Name != nil {
		contact.Name = *data.Name
	}
	if data.Role != nil {
		contact.Role = *data.Role
	}
	if data.Organization != nil {
		contact.Organization = *data.Organization
	}
	if data.Timezone != nil {
		contact.Timezone = *data.Timezone
	}
	if data.Aliases != nil {
		contact.Aliases = data.Aliases
	}
	if data.ReportsTo != nil {
		rels := make([]common.ContactRelationship, 0, len(contact.Relationships))
		for _, r := range contact.Relationships {
			if r.Type != common.RelationReportsTo {
				rels = append(rels, r)
			}
		}
		if *data.ReportsTo != "" {
			rels = append(rels, common.ContactRelationship{
				Type:      common.RelationReportsTo,
				ContactID: *data.ReportsTo,
			})
		}
		contact.Relationships = rels
	}

	updated, err := st.UpdateContact(ctx, contact)
	if err != nil {
		logger.Error("Failed to update contact", "contact_id", data.ContactID, "err", err)
		return c.JSON(http.StatusInternalServerError, editContactResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, editContactResponse{
		Message: "Contact updated successfully",
		Contact: &updated,
	})
}

func DeleteContactHandler(c echo.Context) error {
	type deleteContactParams struct {
		ContactID string `param:"id" validate:"required"`
	}

	params := new(deleteContactParams)
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

	contact, err := st.GetContact(ctx, params.ContactID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Contact not found"})
		}
		logger.Error("Failed to get contact", "contact_id", params.ContactID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if contact.AvatarKey != "" {
		s3Client := c.(*middleware.AppContext).App.S3
		if err := storage.DeleteAvatar(ctx, s3Client, contact.AvatarKey); err != nil {
			logger.Warn("Failed to delete avatar", "contact_id", params.ContactID, "err", err)
		}
	}

	if err := st.DeleteContact(ctx, params.ContactID); err != nil {
		logger.Error("Failed to delete contact", "contact_id", params.ContactID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Contact deleted successfully"})
}

func GetContactAvatarHandler(c echo.Context) error {
	type getAvatarParams struct {
		ContactID string `param:"id" validate:"required"`
	}

	type getAvatarResponse struct {
		Message string `json:"message"`
	}

	params := new(getAvatarParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getAvatarResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getAvatarResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, getAvatarResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	st := teamstore.NewTeamDBStorage(conn)

	contact, err := st.GetContact(ctx, params.ContactID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getAvatarResponse{
				Message: "Contact not found",
			})
		}
		logger.Error("Failed to get contact", "contact_id", params.ContactID, "err", err)
		return c.JSON(http.StatusInternalServerError, getAvatarResponse{
			Message: "Internal server error",
		})
	}
	if contact.AvatarKey == "" {
		return c.JSON(http.StatusNotFound, getAvatarResponse{
			Message: "Contact has no avatar",
		})
	}

	s3Client := c.(*middleware.AppContext).App.S3
	url, err := storage.GenerateDownloadLink(ctx, s3Client, contact.AvatarKey)
	if err != nil {
		return c.JSON(http.StatusNotFound, getAvatarResponse{
			Message: "Avatar does not exist",
		})
	}

	return c.JSON(http.StatusOK, getAvatarResponse{
		Message: url,
	})
}
