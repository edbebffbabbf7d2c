package services

import (
	"errors"
	"math"

	"beerservice/internal/domain"
)

// ErrNotFound is returned when an operation references a missing related entity.
// Plain lookups return nil instead.
var ErrNotFound = errors.New("not found")

// BuildPageRequest turns optional 1-based query values into a 0-based page request.
// A missing or non-positive page number selects the first page; a missing or
// non-positive size uses defaultSize; any size is capped at limit. The page index
// is capped so the row offset stays within a 32-bit signed integer, the
// narrowest OFFSET the supported databases accept.
func BuildPageRequest(pageNumber, pageSize *int, defaultSize, limit int) domain.PageRequest {
	page := 0
	if pageNumber != nil && *pageNumber > 0 {
		page = *pageNumber - 1
	}
	size := defaultSize
	if pageSize != nil && *pageSize > 0 {
		size = min(*pageSize, limit)
	}
	if size > 0 {
		page = min(page, math.MaxInt32/size)
	}
	return domain.PageRequest{Page: page, Size: size}
}
