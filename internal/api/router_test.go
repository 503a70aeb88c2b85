package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budget-ledger/internal/api/handlers"
	"budget-ledger/internal/repository"
	"budget-ledger/internal/service"
	"budget-ledger/pkg/auth"
	"budget-ledger/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const sharedOrg = "main_budget_org_1"

type testServer struct {
	app *fiber.App
	jwt *auth.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	ledger := service.NewLedgerService(repository.NewMemoryStore(logger), service.Options{}, logger)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, "budget-ledger")

	app := SetupRouter(Handlers{
		Budget:   handlers.NewBudgetHandler(ledger, logger),
		Spending: handlers.NewSpendingHandler(ledger, logger),
		Summary:  handlers.NewSummaryHandler(ledger, "₦", logger),
	}, jwtManager, sharedOrg, config.ServerConfig{}, logger)

	return &testServer{app: app, jwt: jwtManager}
}

func (s *testServer) token(t *testing.T, user, role, accountType string) string {
	t.Helper()
	token, err := s.jwt.GenerateToken(auth.TokenInput{
		UserID: user, Email: user + "@example.com", Role: role, AccountType: accountType,
	})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

// do sends a JSON request and decodes the JSON response into out when non-nil.
func (s *testServer) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func householdBody() map[string]any {
	return map[string]any{
		"title":        "Household",
		"total_amount": "150000",
		"allocations": []map[string]any{
			{"name": "House", "amount": 100000},
			{"name": "Transport", "amount": "50000"},
		},
	}
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)
	var body map[string]string
	if code := s.do(t, http.MethodGet, "/health", "", nil, &body); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health = %d %v", code, body)
	}
}

func TestRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	if code := s.do(t, http.MethodGet, "/api/v1/summary", "", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("no token = %d, want 401", code)
	}
	if code := s.do(t, http.MethodGet, "/api/v1/summary", "garbage", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("bad token = %d, want 401", code)
	}
}

func TestPersonalBudgetFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "user-1", "member", "personal")

	var created struct {
		Budget struct {
			ID       string `json:"id"`
			Accounts []struct {
				ID string `json:"id"`
			} `json:"accounts"`
		} `json:"budget"`
	}
	if code := s.do(t, http.MethodPost, "/api/v1/budgets", token, householdBody(), &created); code != http.StatusCreated {
		t.Fatalf("create = %d", code)
	}
	if len(created.Budget.Accounts) != 2 || created.Budget.Accounts[0].ID != "house" {
		t.Fatalf("created = %+v", created)
	}

	spend := map[string]any{
		"budget_id": created.Budget.ID, "account_id": "house", "amount": "25000", "description": "Rent",
	}
	if code := s.do(t, http.MethodPost, "/api/v1/spending", token, spend, nil); code != http.StatusCreated {
		t.Fatalf("spend = %d", code)
	}

	var summary struct {
		TotalRemaining string `json:"total_remaining"`
		Display        struct {
			TotalRemaining string `json:"total_remaining"`
		} `json:"display"`
		Accounts []struct {
			AccountID string `json:"account_id"`
			Remaining string `json:"remaining"`
			State     string `json:"state"`
		} `json:"accounts"`
	}
	if code := s.do(t, http.MethodGet, "/api/v1/summary", token, nil, &summary); code != http.StatusOK {
		t.Fatalf("summary = %d", code)
	}
	if summary.TotalRemaining != "125000" || summary.Display.TotalRemaining != "₦125,000.00" {
		t.Fatalf("summary totals = %+v", summary)
	}
	if summary.Accounts[0].Remaining != "75000" || summary.Accounts[0].State != "available" {
		t.Fatalf("house = %+v", summary.Accounts[0])
	}

	var history []map[string]any
	path := "/api/v1/budgets/" + created.Budget.ID + "/accounts/house/history"
	if code := s.do(t, http.MethodGet, path, token, nil, &history); code != http.StatusOK || len(history) != 1 {
		t.Fatalf("history = %d %v", code, history)
	}

	if code := s.do(t, http.MethodPost, "/api/v1/budgets/"+created.Budget.ID+"/archive", token, nil, nil); code != http.StatusOK {
		t.Fatalf("archive = %d", code)
	}
	if code := s.do(t, http.MethodPost, "/api/v1/budgets/"+created.Budget.ID+"/archive", token, nil, nil); code != http.StatusConflict {
		t.Fatalf("second archive = %d, want 409", code)
	}

	var archived []map[string]any
	if code := s.do(t, http.MethodGet, "/api/v1/budgets/archived", token, nil, &archived); code != http.StatusOK || len(archived) != 1 {
		t.Fatalf("archived = %d %v", code, archived)
	}
	var active []map[string]any
	if code := s.do(t, http.MethodGet, "/api/v1/budgets", token, nil, &active); code != http.StatusOK || len(active) != 0 {
		t.Fatalf("active = %d %v", code, active)
	}
}

func TestCreateBudgetErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "user-1", "member", "personal")

	var mismatch map[string]any
	body := map[string]any{
		"title": "Quarter", "total_amount": "100000",
		"allocations": []map[string]any{{"name": "Rent", "amount": "90000"}},
	}
	if code := s.do(t, http.MethodPost, "/api/v1/budgets", token, body, &mismatch); code != http.StatusUnprocessableEntity {
		t.Fatalf("mismatch = %d, want 422", code)
	}
	if mismatch["expected"] != "100000" || mismatch["actual"] != "90000" {
		t.Fatalf("mismatch body = %v", mismatch)
	}

	body["policy"] = "permissive"
	var created map[string]any
	if code := s.do(t, http.MethodPost, "/api/v1/budgets", token, body, &created); code != http.StatusCreated {
		t.Fatalf("permissive = %d", code)
	}
	if created["warning"] == nil {
		t.Fatalf("permissive create has no warning: %v", created)
	}

	dup := map[string]any{
		"title": "Dup", "total_amount": "2",
		"allocations": []map[string]any{{"name": "Food", "amount": "1"}, {"name": "food", "amount": "1"}},
	}
	var dupBody map[string]any
	if code := s.do(t, http.MethodPost, "/api/v1/budgets", token, dup, &dupBody); code != http.StatusBadRequest || dupBody["account_id"] != "food" {
		t.Fatalf("duplicate = %d %v", code, dupBody)
	}

	var invalid map[string]any
	if code := s.do(t, http.MethodPost, "/api/v1/budgets", token, map[string]any{"total_amount": "5"}, &invalid); code != http.StatusBadRequest || invalid["field"] != "title" {
		t.Fatalf("invalid = %d %v", code, invalid)
	}

	subCent := map[string]any{
		"title": "Cents", "total_amount": "10.001",
		"allocations": []map[string]any{{"name": "Rent", "amount": "10.001"}},
	}
	var subCentBody map[string]any
	if code := s.do(t, http.MethodPost, "/api/v1/budgets", token, subCent, &subCentBody); code != http.StatusBadRequest || subCentBody["field"] != "total_amount" {
		t.Fatalf("sub-cent total = %d %v", code, subCentBody)
	}
}

func TestPreviewAllocation(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "user-1", "member", "personal")

	var preview map[string]any
	body := map[string]any{
		"total_amount": "1000",
		"allocations":  []map[string]any{{"name": "A", "amount": "400"}},
	}
	if code := s.do(t, http.MethodPost, "/api/v1/budgets/preview", token, body, &preview); code != http.StatusOK {
		t.Fatalf("preview = %d", code)
	}
	if preview["remaining"] != "600" || preview["balanced"] != false {
		t.Fatalf("preview = %v", preview)
	}
}

func TestJointApprovalFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "admin-1", "admin", "joint")
	member := s.token(t, "member-1", "member", "joint")

	var created struct {
		Budget struct {
			ID string `json:"id"`
		} `json:"budget"`
	}
	if code := s.do(t, http.MethodPost, "/api/v1/budgets", member, householdBody(), nil); code != http.StatusForbidden {
		t.Fatalf("member create = %d, want 403", code)
	}
	if code := s.do(t, http.MethodPost, "/api/v1/budgets", admin, householdBody(), &created); code != http.StatusCreated {
		t.Fatalf("admin create = %d", code)
	}

	spend := map[string]any{
		"budget_id": created.Budget.ID, "account_id": "transport", "amount": "700", "description": "Taxi",
	}
	if code := s.do(t, http.MethodPost, "/api/v1/spending", member, spend, nil); code != http.StatusForbidden {
		t.Fatalf("member direct spend = %d, want 403", code)
	}

	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if code := s.do(t, http.MethodPost, "/api/v1/requests", member, spend, &req); code != http.StatusCreated || req.Status != "pending" {
		t.Fatalf("submit = %d %+v", code, req)
	}

	var pending struct {
		Count int `json:"count"`
	}
	if code := s.do(t, http.MethodGet, "/api/v1/requests/pending", admin, nil, &pending); code != http.StatusOK || pending.Count != 1 {
		t.Fatalf("pending = %d %+v", code, pending)
	}
	if code := s.do(t, http.MethodGet, "/api/v1/requests/pending", member, nil, nil); code != http.StatusForbidden {
		t.Fatalf("member pending = %d, want 403", code)
	}

	decision := "/api/v1/requests/" + req.ID + "/decision"
	if code := s.do(t, http.MethodPost, decision, admin, map[string]string{"decision": "maybe"}, nil); code != http.StatusBadRequest {
		t.Fatalf("bad decision = %d, want 400", code)
	}
	if code := s.do(t, http.MethodPost, decision, admin, map[string]string{"decision": "approve"}, nil); code != http.StatusOK {
		t.Fatalf("approve = %d", code)
	}
	if code := s.do(t, http.MethodPost, decision, admin, map[string]string{"decision": "reject"}, nil); code != http.StatusConflict {
		t.Fatalf("second decision = %d, want 409", code)
	}

	// both joint sessions share the organization's budget
	var summary struct {
		TotalSpent string `json:"total_spent"`
	}
	if code := s.do(t, http.MethodGet, "/api/v1/summary?budget_id="+created.Budget.ID, member, nil, &summary); code != http.StatusOK || summary.TotalSpent != "700" {
		t.Fatalf("member summary = %d %+v", code, summary)
	}

	var options []map[string]any
	if code := s.do(t, http.MethodGet, "/api/v1/accounts", member, nil, &options); code != http.StatusOK || len(options) != 2 {
		t.Fatalf("accounts = %d %v", code, options)
	}
}

func TestUnknownBudgetIsNotFound(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "user-1", "member", "personal")
	if code := s.do(t, http.MethodGet, "/api/v1/budgets/nope", token, nil, nil); code != http.StatusNotFound {
		t.Fatalf("get = %d, want 404", code)
	}
}
