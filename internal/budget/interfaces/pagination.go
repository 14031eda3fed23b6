package interfaces

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// paginatedResponse is the fixed list wrapper of the API: the page rows live
// under "results", "count" is the size of the whole result set.
type paginatedResponse struct {
	Count   int         `json:"count"`
	Results interface{} `json:"results"`
}

// pageParams reads limit/offset query parameters, applying the defaults and
// the upper bound on page size.
func pageParams(r *http.Request) (int, int, error) {
	limit := defaultPageLimit
	offset := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, fmt.Errorf("invalid limit parameter")
		}
		limit = parsed
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter")
		}
		offset = parsed
	}

	return limit, offset, nil
}
