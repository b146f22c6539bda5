package meta

import (
	"strings"
	"testing"
)

func TestBanner(t *testing.T) {
	b := Banner()
	if !strings.HasPrefix(b, Name+" "+Version) {
		t.Errorf("Banner() = %q, want prefix %q", b, Name+" "+Version)
	}
}
