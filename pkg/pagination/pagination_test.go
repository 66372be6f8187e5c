package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return FromRequest(c)
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", DefaultLimit, 0},
		{"limit=10&offset=20", 10, 20},
		{"limit=9999", MaxLimit, 0},
		{"limit=-5", DefaultLimit, 0},
		{"limit=abc&offset=xyz", DefaultLimit, 0},
		{"offset=-1", DefaultLimit, 0},
	}
	for _, tt := range tests {
		p := paramsFor(t, tt.query)
		if p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
			t.Errorf("%q: got limit=%d offset=%d, want limit=%d offset=%d",
				tt.query, p.Limit, p.Offset, tt.wantLimit, tt.wantOffset)
		}
	}
}

func TestNewPage_NilItems(t *testing.T) {
	page := NewPage[string](nil, 0, Params{Limit: 50})
	if page.Items == nil {
		t.Error("nil items must serialize as empty list, not null")
	}
}
