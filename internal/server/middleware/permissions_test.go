package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func permContext(t *testing.T, user *AppUser) *AppContext {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	rec := httptest.NewRecorder()
	return &AppContext{e.NewContext(req, rec), &App{}, user}
}

func TestHasPermission(t *testing.T) {
	user := &AppUser{UserID: 1, Role: "user", Permissions: []string{"team.view:all", "contact.create"}}

	if !HasPermission(user, "contact.create") {
		t.Error("expected contact.create to be granted")
	}
	if HasPermission(user, "team.delete") {
		t.Error("team.delete granted without being listed")
	}
	if HasPermission(nil, "team.view:all") {
		t.Error("nil user must never hold permissions")
	}
}

func TestHasAnyPermission(t *testing.T) {
	user := &AppUser{UserID: 1, Permissions: []string{"team.analyze"}}

	if !HasAnyPermission(user, "team.delete", "team.analyze") {
		t.Error("expected team.analyze to satisfy the set")
	}
	if HasAnyPermission(user, "team.delete", "contact.delete") {
		t.Error("no listed permission should match")
	}
}

func TestRequirePermission(t *testing.T) {
	handler := RequirePermission("team.analyze")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	tests := []struct {
		name       string
		user       *AppUser
		wantStatus int
	}{
		{
			name:       "granted",
			user:       &AppUser{UserID: 1, Permissions: []string{"team.analyze"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing permission",
			user:       &AppUser{UserID: 1, Permissions: []string{"team.view:all"}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no user",
			user:       nil,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := permContext(t, tt.user)
			if err := handler(ctx); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if got := ctx.Response().Status; got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}
