package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

type stubPolicyClient struct {
	lastInput ports.FetchPoliciesInput
	result    *ports.FetchPoliciesResult
	err       error
}

func (c *stubPolicyClient) FetchPolicies(_ context.Context, in ports.FetchPoliciesInput) (*ports.FetchPoliciesResult, error) {
	c.lastInput = in
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

func intPtr(n int) *int { return &n }

func TestPolicyService_ListPolicies_Success(t *testing.T) {
	client := &stubPolicyClient{result: &ports.FetchPoliciesResult{
		Policies: []domain.EscalationPolicy{{ID: "P1", Name: "Primary"}, {ID: "P2", Name: "Secondary"}},
		Total:    intPtr(21),
	}}
	svc := NewPolicyService(client, zerolog.Nop())

	page, err := svc.ListPolicies(context.Background(), ports.PolicyPageInput{Page: 1, Size: 5})
	if err != nil {
		t.Fatalf("ListPolicies returned error: %v", err)
	}
	if len(page.Policies) != 2 {
		t.Fatalf("expected 2 policies, got %d", len(page.Policies))
	}
	if page.Pagination.TotalPages != 5 || !page.Pagination.HasNext || page.Pagination.HasPrevious {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
}

func TestPolicyService_ListPolicies_UpstreamParams(t *testing.T) {
	client := &stubPolicyClient{result: &ports.FetchPoliciesResult{Total: intPtr(0)}}
	svc := NewPolicyService(client, zerolog.Nop())

	if _, err := svc.ListPolicies(context.Background(), ports.PolicyPageInput{Page: 3, Size: 10, Query: " primary "}); err != nil {
		t.Fatalf("ListPolicies returned error: %v", err)
	}
	in := client.lastInput
	if in.Offset != 20 || in.Limit != 10 {
		t.Fatalf("expected offset=20 limit=10, got offset=%d limit=%d", in.Offset, in.Limit)
	}
	if !in.IncludeTotal {
		t.Fatalf("expected IncludeTotal to be set")
	}
	if in.Query != "primary" {
		t.Fatalf("expected trimmed query, got %q", in.Query)
	}
}

func TestPolicyService_ListPolicies_Validation(t *testing.T) {
	svc := NewPolicyService(&stubPolicyClient{}, zerolog.Nop())

	_, err := svc.ListPolicies(context.Background(), ports.PolicyPageInput{Page: 0, Size: 10})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Message != "Page number must be greater than 0" {
		t.Fatalf("expected page validation error, got %v", err)
	}

	_, err = svc.ListPolicies(context.Background(), ports.PolicyPageInput{Page: 1, Size: 101})
	if !errors.As(err, &ve) || ve.Message != "Page size must be between 1 and 100" {
		t.Fatalf("expected size validation error, got %v", err)
	}
}

func TestPolicyService_ListPolicies_UpstreamFailureAbsorbed(t *testing.T) {
	client := &stubPolicyClient{err: errors.New("upstream status 503")}
	svc := NewPolicyService(client, zerolog.Nop())

	page, err := svc.ListPolicies(context.Background(), ports.PolicyPageInput{Page: 2, Size: 10})
	if err != nil {
		t.Fatalf("failure must be absorbed, got error: %v", err)
	}
	if len(page.Policies) != 0 {
		t.Fatalf("expected empty policies, got %d", len(page.Policies))
	}
	p := page.Pagination
	if p.TotalRecords != 0 || p.TotalPages != 0 || p.HasNext {
		t.Fatalf("expected zeroed pagination, got %+v", p)
	}
	if p.CurrentPage != 2 || p.PageSize != 10 || p.Offset != 10 {
		t.Fatalf("expected echoed request parameters, got %+v", p)
	}
}

func TestPolicyService_ListPolicies_NilTotal(t *testing.T) {
	client := &stubPolicyClient{result: &ports.FetchPoliciesResult{
		Policies: []domain.EscalationPolicy{{ID: "P1", Name: "Primary"}},
	}}
	svc := NewPolicyService(client, zerolog.Nop())

	page, err := svc.ListPolicies(context.Background(), ports.PolicyPageInput{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("ListPolicies returned error: %v", err)
	}
	if page.Pagination.TotalRecords != 0 || page.Pagination.TotalPages != 0 {
		t.Fatalf("nil upstream total should count as zero, got %+v", page.Pagination)
	}
}
