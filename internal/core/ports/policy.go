package ports

import (
	"context"

	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/pagination"
)

// PolicyPageInput is the caller-facing read request for escalation policies.
type PolicyPageInput struct {
	Page  int
	Size  int
	Query string
}

// PolicyPage is one translated page of upstream policies.
type PolicyPage struct {
	Policies   []domain.EscalationPolicy
	Pagination pagination.Page
}

// PolicyService proxies the upstream policy directory as a best-effort read:
// upstream failures surface as an empty page, never as an error.
type PolicyService interface {
	ListPolicies(ctx context.Context, in PolicyPageInput) (*PolicyPage, error)
}

// FetchPoliciesInput is the upstream request in the upstream's own
// offset/limit contract.
type FetchPoliciesInput struct {
	Limit        int
	Offset       int
	IncludeTotal bool
	Query        string
}

// FetchPoliciesResult is the upstream response. Total is nil when the
// upstream omitted the count.
type FetchPoliciesResult struct {
	Policies []domain.EscalationPolicy
	Limit    int
	Offset   int
	More     bool
	Total    *int
}

// PolicyClient is the upstream transport boundary. Implementations return a
// typed error on any transport or non-2xx failure; they never panic or block
// past their configured timeout.
type PolicyClient interface {
	FetchPolicies(ctx context.Context, in FetchPoliciesInput) (*FetchPoliciesResult, error)
}
