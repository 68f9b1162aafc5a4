package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/pagination"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

type stubPolicyService struct {
	lastInput ports.PolicyPageInput
	page      *ports.PolicyPage
	err       error
}

func (s *stubPolicyService) ListPolicies(ctx context.Context, in ports.PolicyPageInput) (*ports.PolicyPage, error) {
	s.lastInput = in
	return s.page, s.err
}

func TestPolicyHandler_List_DefaultsApplied(t *testing.T) {
	e := echo.New()
	stub := &stubPolicyService{
		page: &ports.PolicyPage{
			Policies:   []domain.EscalationPolicy{},
			Pagination: pagination.BuildPage(0, 1, 10),
		},
	}
	h := NewPolicyHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/escalation-policies/list", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if stub.lastInput.Page != 1 || stub.lastInput.Size != 10 {
		t.Fatalf("expected defaults page=1 size=10, got %+v", stub.lastInput)
	}
}

func TestPolicyHandler_List_ForwardsParams(t *testing.T) {
	e := echo.New()
	stub := &stubPolicyService{
		page: &ports.PolicyPage{
			Policies: []domain.EscalationPolicy{
				{ID: "P1", Name: "Ops Escalation", Type: "escalation_policy"},
			},
			Pagination: pagination.BuildPage(21, 2, 5),
		},
	}
	h := NewPolicyHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/escalation-policies/list?page=2&size=5&query=ops", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if stub.lastInput.Page != 2 || stub.lastInput.Size != 5 || stub.lastInput.Query != "ops" {
		t.Fatalf("unexpected input: %+v", stub.lastInput)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success=true, got %+v", resp)
	}
	policies, ok := resp["escalationPolicies"].([]any)
	if !ok || len(policies) != 1 {
		t.Fatalf("expected one policy, got %+v", resp["escalationPolicies"])
	}
	page, ok := resp["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination in response")
	}
	if page["currentPage"] != float64(2) || page["totalPages"] != float64(5) || page["hasNext"] != true {
		t.Fatalf("unexpected pagination: %+v", page)
	}
}

func TestPolicyHandler_List_NonNumericPage(t *testing.T) {
	e := echo.New()
	h := NewPolicyHandler(&stubPolicyService{})

	req := httptest.NewRequest(http.MethodGet, "/api/escalation-policies/list?page=abc", nil)
	err := h.List(e.NewContext(req, httptest.NewRecorder()))

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestPolicyHandler_List_RangeErrorPassThrough(t *testing.T) {
	e := echo.New()
	stub := &stubPolicyService{
		err: &domain.ValidationError{Field: "page", Message: "Page number must be greater than 0"},
	}
	h := NewPolicyHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/escalation-policies/list?page=0", nil)
	err := h.List(e.NewContext(req, httptest.NewRecorder()))

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Message != "Page number must be greater than 0" {
		t.Fatalf("expected page validation error, got %v", err)
	}
	if stub.lastInput.Page != 0 {
		t.Fatalf("explicit page=0 must reach the service, got %d", stub.lastInput.Page)
	}
}
