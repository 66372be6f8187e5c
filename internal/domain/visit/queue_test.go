package visit

import (
	"testing"

	"github.com/veasna/clinic/internal/platform/apperr"
)

func TestNormalizeQueueToken(t *testing.T) {
	valid := []struct{ in, want string }{
		{"2a", "2A"},
		{" 2A ", "2A"},
		{"2A", "2A"},
		{"2", "2"},
		{"102b", "102B"},
		{"007", "007"},
	}
	for _, tt := range valid {
		got, err := NormalizeQueueToken(tt.in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}

	invalid := []string{"", "   ", "A2", "2-A", "A", "2 A", "2.5", "-2"}
	for _, in := range invalid {
		if _, err := NormalizeQueueToken(in); apperr.KindOf(err) != apperr.KindInvalid {
			t.Errorf("%q: expected invalid_argument, got %v", in, err)
		}
	}
}
