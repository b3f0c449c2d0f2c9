package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBoxWidthBounds(t *testing.T) {
	assert.Equal(t, 40, boxWidth(10))
	assert.Equal(t, 80, boxWidth(200))
	assert.Equal(t, 70, boxWidth(100))
}

func TestBoxNarrowTerminalClampsWidth(t *testing.T) {
	out := TitledBox("Leads", "line", 20)
	overflow := false
	for _, line := range strings.Split(out, "\n") {
		if lipgloss.Width(line) > 20 {
			overflow = true
			break
		}
	}
	assert.False(t, overflow)
}

func TestTitledBoxIncludesTitle(t *testing.T) {
	out := TitledBox("My Title", "Content", 80)
	assert.True(t, strings.Contains(out, "My Title"))
}

func TestTitledBoxEmptyTitleFallsBack(t *testing.T) {
	out := TitledBox("", "Content", 80)
	assert.True(t, strings.Contains(out, "Content"))
}

func TestErrorBoxIncludesMessage(t *testing.T) {
	out := ErrorBox("Error", "Something broke", 80)
	assert.True(t, strings.Contains(out, "Something broke"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("hello", 0))
	assert.Equal(t, "he", truncateRunes("hello", 2))
	assert.Equal(t, "你", truncateRunes("你好", 1))
}

func TestClampTextWidthFitsUnchanged(t *testing.T) {
	assert.Equal(t, "short", ClampTextWidth("short", 10))
	assert.Equal(t, "shor", ClampTextWidth("shorter", 4))
}

func TestClampTextWidthEllipsisMarksCut(t *testing.T) {
	assert.Equal(t, "short", ClampTextWidthEllipsis("short", 10))
	out := ClampTextWidthEllipsis("a much longer value", 8)
	assert.True(t, strings.HasSuffix(out, "…"))
	assert.LessOrEqual(t, lipgloss.Width(out), 8)
}

func TestIndentPreservesLineCountAndAddsPadding(t *testing.T) {
	out := Indent("a\nb", 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "  a", lines[0])
	assert.Equal(t, "  b", lines[1])
}
