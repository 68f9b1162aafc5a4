package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/oncallhq/user-directory/internal/core/pagination"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

// PolicyHandler proxies escalation-policy reads to the upstream directory.
type PolicyHandler struct {
	service ports.PolicyService
}

func NewPolicyHandler(service ports.PolicyService) *PolicyHandler {
	return &PolicyHandler{service: service}
}

// List handles GET /api/escalation-policies/list and returns one translated
// page of upstream policies. Upstream trouble surfaces as an empty page, not
// an error.
//
// @Summary      List escalation policies
// @Tags         escalation-policies
// @Produce      json
// @Param        page   query     int     false  "Page number, 1-based"  default(1)
// @Param        size   query     int     false  "Page size, 1..100"     default(10)
// @Param        query  query     string  false  "Name filter forwarded upstream"
// @Success      200    {object}  listPoliciesResponse
// @Failure      400    {object}  errorResponse
// @Router       /escalation-policies/list [get]
func (h *PolicyHandler) List(c echo.Context) error {
	page, err := intQueryParam(c, "page", pagination.DefaultPage)
	if err != nil {
		return err
	}
	size, err := intQueryParam(c, "size", pagination.DefaultSize)
	if err != nil {
		return err
	}

	result, err := h.service.ListPolicies(c.Request().Context(), ports.PolicyPageInput{
		Page:  page,
		Size:  size,
		Query: c.QueryParam("query"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPoliciesResponse{
		Success:            true,
		EscalationPolicies: result.Policies,
		Pagination:         result.Pagination,
	})
}

// intQueryParam parses an integer query parameter, falling back to def when
// the parameter is absent. An explicit non-numeric value is a 400; an explicit
// out-of-range value is left for the pagination rules to reject.
func intQueryParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be an integer", name))
	}
	return v, nil
}
