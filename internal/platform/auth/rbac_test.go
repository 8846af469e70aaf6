package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func requestWithRoles(roles ...string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	ctx := context.WithValue(req.Context(), UserRolesKey, roles)
	return req.WithContext(ctx)
}

func roleServer(required ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("", RequireRole(required...))
	g.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func TestRequireRole_Allowed(t *testing.T) {
	e := roleServer("billing")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, requestWithRoles("billing"))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRole_AdminBypass(t *testing.T) {
	e := roleServer("billing")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, requestWithRoles("admin"))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for admin", rec.Code)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	e := roleServer("billing")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, requestWithRoles("doctor"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRole_NoRoles(t *testing.T) {
	e := roleServer("billing")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
