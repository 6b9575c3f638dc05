package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name               string
		total, page, limit int
		pages              int
		hasNext, hasPrev   bool
	}{
		{"empty", 0, 1, 20, 0, false, false},
		{"single page", 5, 1, 20, 1, false, false},
		{"first of many", 45, 1, 20, 3, true, false},
		{"last page", 45, 3, 20, 3, false, true},
		{"zero limit", 10, 1, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.pages, m.Pages)
			assert.Equal(t, tt.hasNext, m.HasNext)
			assert.Equal(t, tt.hasPrev, m.HasPrev)
		})
	}
}

func TestErrorEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	Forbidden(rr, "Insufficient permissions")

	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var out Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.False(t, out.Success)
	require.NotNil(t, out.Error)
	assert.Equal(t, "FORBIDDEN", out.Error.Code)
	assert.Equal(t, "Insufficient permissions", out.Error.Message)
}

func TestOKWithMessageKeepsNullData(t *testing.T) {
	rr := httptest.NewRecorder()
	OKWithMessage(rr, nil, "Post deleted successfully")

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, true, out["success"])
	data, present := out["data"]
	assert.True(t, present)
	assert.Nil(t, data)
	assert.Equal(t, "Post deleted successfully", out["message"])
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		page, limit int
		wantErr     bool
	}{
		{"defaults", "", 1, 20, false},
		{"explicit", "?page=3&limit=5", 3, 5, false},
		{"limit capped", "?limit=1000", 1, 100, false},
		{"bad limit", "?limit=-4", 1, 20, false},
		{"last page", "?page=10000&limit=100", 10000, 100, false},
		{"page too large", "?page=9223372036854775807&limit=20", 0, 0, true},
		{"page zero", "?page=0", 0, 0, true},
		{"page not a number", "?page=two", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, err := Pagination(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil), 20, 100)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.limit, limit)
			assert.GreaterOrEqual(t, Offset(page, limit), 0)
		})
	}
}
