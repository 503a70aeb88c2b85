package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budget-ledger/internal/service"
	"budget-ledger/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func TestAuthMiddlewareStoresSession(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour, "budget-ledger")

	tests := []struct {
		name    string
		in      auth.TokenInput
		wantOrg string
	}{
		{"joint falls back to shared org", auth.TokenInput{UserID: "m-1", Role: "member", AccountType: "joint"}, "shared-org"},
		{"joint keeps its org", auth.TokenInput{UserID: "a-1", Role: "admin", AccountType: "joint", OrganizationID: "org-9"}, "org-9"},
		{"personal drops org", auth.TokenInput{UserID: "u-1", Role: "member", AccountType: "personal", OrganizationID: "org-9"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got service.Session
			var ok bool
			app := fiber.New()
			app.Use(AuthMiddleware(jwtManager, "shared-org", zap.NewNop()))
			app.Get("/", func(c *fiber.Ctx) error {
				got, ok = c.Locals(SessionKey).(service.Session)
				return c.SendStatus(fiber.StatusNoContent)
			})

			token, err := jwtManager.GenerateToken(tt.in)
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusNoContent {
				t.Fatalf("status = %d, want 204", resp.StatusCode)
			}
			if !ok {
				t.Fatal("session missing from locals")
			}
			if got.UserID != tt.in.UserID || got.OrganizationID != tt.wantOrg {
				t.Fatalf("session = %+v, want user %s org %q", got, tt.in.UserID, tt.wantOrg)
			}
		})
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	app.Use(AuthMiddleware(auth.NewJWTManager("secret", time.Hour, ""), "", zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
