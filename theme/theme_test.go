package theme

import (
	"testing"

	"github.com/iw2rmb/marginalia/buffer"
)

func TestTheme_ColorFor(t *testing.T) {
	th := Default()
	cases := []struct {
		cat  buffer.Category
		want string
	}{
		{cat: buffer.CategoryError, want: string(th.Error)},
		{cat: buffer.CategoryWarning, want: string(th.Warning)},
		{cat: buffer.CategoryLive, want: string(th.Live)},
		{cat: buffer.CategoryInformational, want: string(th.Informational)},
	}
	for _, tc := range cases {
		if got := string(th.ColorFor(tc.cat)); got != tc.want {
			t.Fatalf("ColorFor(%v): got %q, want %q", tc.cat, got, tc.want)
		}
	}
}

func TestTheme_StylesCarryColours(t *testing.T) {
	th := Default()
	st := th.Styles()
	if got := st.Gutter.GetForeground(); got != th.Gutter {
		t.Fatalf("gutter foreground: got %v, want %v", got, th.Gutter)
	}
	if got := st.Badge(th.Error).GetForeground(); got != th.Error {
		t.Fatalf("badge foreground: got %v, want %v", got, th.Error)
	}
}
