package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBannerIncludesSubtitle(t *testing.T) {
	out := RenderBanner()
	assert.Contains(t, out, "Lead & Client Workspace")
}

func TestSplitLines(t *testing.T) {
	lines := splitLines("a\nb\nc")
	assert.Equal(t, []string{"a", "b", "c"}, lines)

	lines = splitLines("")
	assert.Empty(t, lines)

	lines = splitLines("solo")
	assert.Equal(t, []string{"solo"}, lines)

	// Banner art starts with a newline; the leading empty line is kept.
	lines = splitLines("\nx")
	assert.Equal(t, []string{"", "x"}, lines)
}
