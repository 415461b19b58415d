package handler

import (
	"net/http"
	"strconv"
)

// Window limits for paged list endpoints (leads, call history, recordings).
// The console pages request DefaultLimit rows at a time; anything above
// MaxLimit only ever comes from a hand-built URL.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type PaginationParams struct {
	Limit  int
	Offset int
}

func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

// ParsePagination reads the limit/offset query parameters. Out-of-range
// values fall back to the defaults instead of erroring so a stale bookmark
// still renders a page.
func ParsePagination(r *http.Request) PaginationParams {
	p := PaginationParams{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if p.Limit <= 0 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
