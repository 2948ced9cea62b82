package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestComputeColumnWidths(t *testing.T) {
	tests := []struct {
		width      int
		list       int
		detail     int
		showDetail bool
	}{
		{80, 80, 0, false},
		{100, 69, 30, true},
		{121, 80, 40, true},
	}
	for _, tt := range tests {
		list, detail, show := ComputeColumnWidths(tt.width)
		if list != tt.list || detail != tt.detail || show != tt.showDetail {
			t.Errorf("ComputeColumnWidths(%d) = %d, %d, %v; want %d, %d, %v",
				tt.width, list, detail, show, tt.list, tt.detail, tt.showDetail)
		}
	}
}

func TestContainerExactSize(t *testing.T) {
	out := Container{Width: 10, Height: 3}.Render("a\nb\nc\nd\ne")
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 10 {
			t.Errorf("line %d width = %d", i, w)
		}
	}
	if !strings.Contains(lines[2], "3 more") {
		t.Errorf("indicator = %q", lines[2])
	}
}

func TestTruncateWide(t *testing.T) {
	if got := Truncate("日本語のタイトル", 7); lipgloss.Width(got) > 7 || !strings.HasSuffix(got, "…") {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate = %q", got)
	}
}
