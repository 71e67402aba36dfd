package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
)

const (
	barFill   = "█"
	barCenter = "│"
)

// BarCells returns how many cells of a centred bar of the given width a
// score fills: |score|/(2*ScoreMax) of the width, clamped to one half.
// Negative scores fill to the left of the centre, positive to the right.
func BarCells(score, width int) (left, right int) {
	half := width / 2
	if half <= 0 || score == 0 {
		return 0, 0
	}
	ratio := math.Abs(float64(score)) / float64(2*catalog.ScoreMax)
	cells := int(math.Round(ratio * float64(width)))
	if cells > half {
		cells = half
	}
	if cells < 1 {
		cells = 1
	}
	if score < 0 {
		return cells, 0
	}
	return 0, cells
}

// ScoreBar renders a centred bar for a team total.
func (s Styles) ScoreBar(score, width int) string {
	half := width / 2
	left, right := BarCells(score, width)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", half-left))
	sb.WriteString(s.Negative.Render(strings.Repeat(barFill, left)))
	sb.WriteString(s.Divider.Render(barCenter))
	sb.WriteString(s.Positive.Render(strings.Repeat(barFill, right)))
	sb.WriteString(strings.Repeat(" ", half-right))
	return sb.String()
}

// FormatScore renders a score with an explicit sign for positives.
func FormatScore(score int) string {
	if score > 0 {
		return fmt.Sprintf("+%d", score)
	}
	return fmt.Sprintf("%d", score)
}

// ScoreStyle picks the style for a score's sign.
func (s Styles) ScoreStyle(score int) func(...string) string {
	switch {
	case score > 0:
		return s.Positive.Render
	case score < 0:
		return s.Negative.Render
	default:
		return s.Neutral.Render
	}
}
