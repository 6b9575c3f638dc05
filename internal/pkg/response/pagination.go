package response

import (
	"errors"
	"net/http"
	"strconv"
)

// MaxPage bounds the page query parameter so (page-1)*limit cannot overflow
const MaxPage = 10000

var ErrInvalidPage = errors.New("page must be a number between 1 and 10000")

// Pagination reads page and limit query parameters.
// A missing or non-positive limit falls back to def and is capped at max;
// a page that is not a number within 1..MaxPage is rejected.
func Pagination(r *http.Request, def, max int) (page, limit int, err error) {
	page = 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 || page > MaxPage {
			return 0, 0, ErrInvalidPage
		}
	}

	limit, convErr := strconv.Atoi(r.URL.Query().Get("limit"))
	if convErr != nil || limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return page, limit, nil
}

// Offset converts a 1-based page into a row offset
func Offset(page, limit int) int {
	return (page - 1) * limit
}
