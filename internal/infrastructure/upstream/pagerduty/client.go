// Package pagerduty implements the escalation-policy upstream client. It is a
// pure transport adapter: it reports failures as typed errors and leaves the
// empty-result policy to the gateway.
package pagerduty

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/oncallhq/user-directory/internal/api/metrics"
	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

const (
	defaultLimit   = 25
	defaultTimeout = 10 * time.Second
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Code)
}

// Config captures the upstream endpoint settings.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client implements ports.PolicyClient against a PagerDuty-style REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type listResponse struct {
	EscalationPolicies []domain.EscalationPolicy `json:"escalation_policies"`
	Limit              int                       `json:"limit"`
	Offset             int                       `json:"offset"`
	More               bool                      `json:"more"`
	Total              *int                      `json:"total"`
}

// FetchPolicies issues one GET /escalation_policies call. Cancellation and
// timeouts come from ctx and the client's own timeout; there is no retry.
func (c *Client) FetchPolicies(ctx context.Context, in ports.FetchPoliciesInput) (*ports.FetchPoliciesResult, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(in.Offset))
	params.Set("total", strconv.FormatBool(in.IncludeTotal))
	if in.Query != "" {
		params.Set("query", in.Query)
	}

	endpoint := c.baseURL + "/escalation_policies?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token token="+c.token)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues("status_error").Inc()
		c.logger.Warn().Int("status", resp.StatusCode).Msg("upstream returned error status")
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("success").Inc()
	return &ports.FetchPoliciesResult{
		Policies: body.EscalationPolicies,
		Limit:    body.Limit,
		Offset:   body.Offset,
		More:     body.More,
		Total:    body.Total,
	}, nil
}
