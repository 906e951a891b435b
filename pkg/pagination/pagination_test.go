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
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit", "limit=50&offset=10", 50, 10},
		{"capped at max", "limit=1000", MaxLimit, 0},
		{"negative ignored", "limit=-5&offset=-2", DefaultLimit, 0},
		{"garbage ignored", "limit=abc", DefaultLimit, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := paramsFor(t, tc.query)
			if p.Limit != tc.wantLimit || p.Offset != tc.wantOffset {
				t.Errorf("got %+v, want limit=%d offset=%d", p, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

func TestNewResponseHasMore(t *testing.T) {
	r := NewResponse(nil, 45, 20, 20)
	if !r.HasMore {
		t.Error("expected has_more at offset 20 of 45")
	}
	r = NewResponse(nil, 45, 20, 40)
	if r.HasMore {
		t.Error("expected no more at offset 40 of 45")
	}
}
