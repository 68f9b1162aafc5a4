package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/pagination"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

// PolicyService proxies the upstream escalation-policy directory. Reads are
// best-effort: an upstream failure is logged and collapsed into an empty,
// well-formed page rather than surfaced to the caller. There is no retry.
type PolicyService struct {
	client ports.PolicyClient
	logger zerolog.Logger
}

func NewPolicyService(client ports.PolicyClient, logger zerolog.Logger) *PolicyService {
	return &PolicyService{client: client, logger: logger}
}

// ListPolicies validates the page request, issues a single upstream call with
// the translated offset/limit, and reconciles the upstream total into
// caller-facing pagination metadata.
func (s *PolicyService) ListPolicies(ctx context.Context, in ports.PolicyPageInput) (*ports.PolicyPage, error) {
	if err := pagination.ValidateRequest(in.Page, in.Size); err != nil {
		return nil, err
	}

	offset, limit := pagination.ToUpstream(in.Page, in.Size)

	result, err := s.client.FetchPolicies(ctx, ports.FetchPoliciesInput{
		Limit:        limit,
		Offset:       offset,
		IncludeTotal: true,
		Query:        strings.TrimSpace(in.Query),
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Int("page", in.Page).
			Int("size", in.Size).
			Msg("upstream policy fetch failed, returning empty page")
		return &ports.PolicyPage{
			Policies:   []domain.EscalationPolicy{},
			Pagination: pagination.BuildPage(0, in.Page, in.Size),
		}, nil
	}

	total := 0
	if result.Total != nil {
		total = *result.Total
	}
	policies := result.Policies
	if policies == nil {
		policies = []domain.EscalationPolicy{}
	}

	return &ports.PolicyPage{
		Policies:   policies,
		Pagination: pagination.BuildPage(total, in.Page, in.Size),
	}, nil
}
