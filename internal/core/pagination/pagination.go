// Package pagination translates the caller-facing 1-based page/size contract
// into the upstream 0-based offset/limit contract and back. Everything here is
// a pure computation.
package pagination

import (
	"github.com/oncallhq/user-directory/internal/core/domain"
)

const (
	// MaxPageSize caps the caller-facing page size.
	MaxPageSize = 100
	// DefaultPage and DefaultSize apply when the caller omits the parameters.
	DefaultPage = 1
	DefaultSize = 10
)

// Page is the caller-facing pagination metadata for one page of results. The
// raw offset/limit sent upstream are echoed back for transparency.
type Page struct {
	CurrentPage  int  `json:"currentPage"`
	PageSize     int  `json:"pageSize"`
	TotalRecords int  `json:"totalRecords"`
	TotalPages   int  `json:"totalPages"`
	HasNext      bool `json:"hasNext"`
	HasPrevious  bool `json:"hasPrevious"`
	Offset       int  `json:"offset"`
	Limit        int  `json:"limit"`
}

// ValidateRequest checks the caller-facing parameters. The translator itself
// never validates; this is invoked by the gateway at the boundary.
func ValidateRequest(page, size int) error {
	if page < 1 {
		return &domain.ValidationError{Field: "page", Message: "Page number must be greater than 0"}
	}
	if size < 1 || size > MaxPageSize {
		return &domain.ValidationError{Field: "size", Message: "Page size must be between 1 and 100"}
	}
	return nil
}

// ToUpstream maps a 1-based page and size onto the upstream 0-based offset and
// limit: offset = (page-1)*size, limit = size.
func ToUpstream(page, size int) (offset, limit int) {
	return (page - 1) * size, size
}

// BuildPage reconciles an upstream total into caller-facing metadata.
// totalPages = ceil(total/size), which is 0 when total is 0, so an absent or
// empty upstream result still yields a well-formed zeroed Page.
func BuildPage(total, page, size int) Page {
	totalPages := (total + size - 1) / size
	offset, limit := ToUpstream(page, size)
	return Page{
		CurrentPage:  page,
		PageSize:     size,
		TotalRecords: total,
		TotalPages:   totalPages,
		HasNext:      page < totalPages,
		HasPrevious:  page > 1,
		Offset:       offset,
		Limit:        limit,
	}
}
