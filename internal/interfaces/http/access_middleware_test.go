package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fertipos-api/internal/domain/access"
	apphttp "github.com/jhoicas/fertipos-api/internal/interfaces/http"
)

type stubTenants struct {
	active map[string]bool
	err    error
}

func (s stubTenants) IsActive(_ context.Context, tenantID string) (bool, error) {
	return s.active[tenantID], s.err
}

func okHandler(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func TestRequirePermission(t *testing.T) {
	resolver := access.MustNewResolver(access.DefaultTable)
	app := fiber.New()
	auth := apphttp.AuthMiddleware(testJWTSecret)
	app.Get("/products", auth, apphttp.RequirePermission(resolver, access.ModuleProducts, access.ActionRead), okHandler)
	app.Get("/pos", auth, apphttp.RequirePermission(resolver, access.ModuleOrders, access.ActionCreate), okHandler)
	app.Get("/reports", auth, apphttp.RequirePermission(resolver, access.ModuleReports, access.ActionRead), okHandler)

	cases := []struct {
		path, role string
		want       int
	}{
		{"/products", "manager", http.StatusOK},
		{"/products", "admin", http.StatusOK},
		{"/products", "executive", http.StatusForbidden},
		{"/products", "customer", http.StatusForbidden},
		{"/pos", "executive", http.StatusOK},
		{"/pos", "customer", http.StatusOK},
		{"/reports", "executive", http.StatusOK},
		{"/reports", "customer", http.StatusForbidden},
		{"/products", "bodeguero", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.role+tc.path, func(t *testing.T) {
			resp := doRequest(t, app, tc.path, tokenForRole(t, tc.role))
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRequireLevel(t *testing.T) {
	resolver := access.MustNewResolver(access.DefaultTable)
	app := fiber.New()
	app.Get("/x", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireLevel(resolver, 80), okHandler)

	for role, want := range map[string]int{
		"admin": http.StatusOK, "manager": http.StatusOK, "executive": http.StatusOK, "customer": http.StatusForbidden,
	} {
		resp := doRequest(t, app, "/x", tokenForRole(t, role))
		assert.Equal(t, want, resp.StatusCode, role)
		resp.Body.Close()
	}
}

func TestRequireActiveTenant(t *testing.T) {
	build := func(checker stubTenants) *fiber.App {
		app := fiber.New()
		app.Get("/x", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireActiveTenant(checker), okHandler)
		return app
	}

	t.Run("tienda activa", func(t *testing.T) {
		resp := doRequest(t, build(stubTenants{active: map[string]bool{testTenantID: true}}), "/x", tokenForRole(t, "manager"))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("tienda suspendida", func(t *testing.T) {
		resp := doRequest(t, build(stubTenants{active: map[string]bool{}}), "/x", tokenForRole(t, "executive"))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "TENANT_SUSPENDED")
	})

	t.Run("admin pasa siempre", func(t *testing.T) {
		resp := doRequest(t, build(stubTenants{active: map[string]bool{}}), "/x", tokenForRole(t, "admin"))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("fallo de infraestructura", func(t *testing.T) {
		resp := doRequest(t, build(stubTenants{err: errors.New("db caída")}), "/x", tokenForRole(t, "manager"))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
