package export

import (
	"strings"
	"testing"
	"time"

	"github.com/san-kum/colorfield/internal/palette"
	"github.com/san-kum/colorfield/internal/trace"
)

func TestStripEmpty(t *testing.T) {
	if Strip(nil, 100, 20) != "" {
		t.Error("no samples should render nothing")
	}
	one := []trace.Sample{{Color: palette.Baseline}}
	if Strip(one, 0, 20) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestStripStripes(t *testing.T) {
	t0 := time.Unix(1_792_143_000, 0).UTC()
	samples := []trace.Sample{
		{Time: t0, Color: palette.NearBlack, Label: "living"},
		{Time: t0.Add(time.Second), Color: palette.Baseline, Label: "living"},
		{Time: t0.Add(2 * time.Second), Color: palette.NearWhite, Label: "pinned-white"},
	}
	svg := Strip(samples, 300, 40)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not a complete document:\n%s", svg)
	}
	if got := strings.Count(svg, "<rect "); got != 3 {
		t.Errorf("stripes = %d, want 3", got)
	}
	for _, c := range []palette.Color{palette.NearBlack, palette.Baseline, palette.NearWhite} {
		if !strings.Contains(svg, `fill="`+c.Hex()+`"`) {
			t.Errorf("missing stripe %s", c.Hex())
		}
	}
	// Level 7 at x=0 sits near the bottom, 250 at the right edge near the top.
	if !strings.Contains(svg, `d="M0.0,38.9`) {
		t.Errorf("level path starts in the wrong place:\n%s", svg)
	}
	if !strings.Contains(svg, " L300.0,0.8") {
		t.Errorf("level path ends in the wrong place:\n%s", svg)
	}
}
