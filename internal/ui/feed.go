package ui

import (
	"strings"
	"time"

	"github.com/aurelialabs/faro/internal/state"
	"github.com/aurelialabs/faro/internal/ui/components"
)

const feedPreviewMax = 6

func feedKindLabel(kind state.ItemKind) string {
	switch kind {
	case state.KindEmail:
		return "EMAIL"
	case state.KindCall:
		return "CALL"
	case state.KindNote:
		return "NOTE"
	}
	return "EVENT"
}

// feedTimestamp formats a history timestamp for display. Timestamps
// arrive as RFC 3339 strings; anything unparseable (including the
// in-flight placeholder) is shown verbatim.
func feedTimestamp(ts string) string {
	if ts == "" || ts == state.SendingPlaceholder {
		return ts
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Local().Format("01-02 15:04")
	}
	return components.SanitizeOneLine(ts)
}

// renderFeedLines renders up to max history items as preview lines of the
// given width. Unconfirmed items are dimmed.
func renderFeedLines(items []state.HistoryItem, width, max int) []string {
	if width <= 0 || len(items) == 0 {
		return nil
	}
	if max > 0 && len(items) > max {
		items = items[:max]
	}

	var lines []string
	for i, item := range items {
		if i > 0 {
			lines = append(lines, "")
		}
		head := feedKindLabel(item.Kind) + " · " + feedTimestamp(item.Timestamp)
		if item.Author.Name != "" {
			head += " · " + item.Author.Name
		}
		headStyle := MetaKeyStyle
		bodyStyle := NormalStyle
		if item.Pending() {
			headStyle = MutedStyle
			bodyStyle = MutedStyle
		}
		lines = append(lines, headStyle.Render(components.ClampTextWidthEllipsis(head, width)))
		body := item.Description
		if strings.TrimSpace(body) == "" {
			body = item.Title
		}
		for _, part := range wrapPreviewText(body, width) {
			lines = append(lines, bodyStyle.Render(part))
		}
	}
	return lines
}
