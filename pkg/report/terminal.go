package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Terminal widths.
const (
	DefaultWidth = 80
	MinWidth     = 60
	MaxWidth     = 120
)

// Drawing characters.
const (
	boxHeavyHorizontal  = "━"
	boxHeavyVertical    = "┃"
	boxHeavyTopLeft     = "┏"
	boxHeavyTopRight    = "┓"
	boxHeavyBottomLeft  = "┗"
	boxHeavyBottomRight = "┛"
	boxHorizontal       = "─"

	progressFilled = "█"
	progressEmpty  = "░"

	headerPadding     = 1
	percentMultiplier = 100
)

// DetectWidth returns the terminal width from COLUMNS clamped to
// [MinWidth, MaxWidth], or DefaultWidth when unset or invalid.
func DetectWidth() int {
	width, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return min(max(width, MinWidth), MaxWidth)
}

// DrawHeader draws a heavy-bordered title box.
//
//	┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
//	┃ TITLE                   rightText ┃
//	┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
func DrawHeader(title, rightText string, width int) string {
	titleLen := displayLen(title)
	rightLen := displayLen(rightText)

	minRequired := titleLen + rightLen + 4 + headerPadding*2
	width = max(width, minRequired)

	inner := width - 2
	contentWidth := inner - headerPadding*2
	gap := max(contentWidth-titleLen-rightLen, 1)

	pad := strings.Repeat(" ", headerPadding)

	var b strings.Builder

	b.WriteString(boxHeavyTopLeft + strings.Repeat(boxHeavyHorizontal, inner) + boxHeavyTopRight + "\n")
	b.WriteString(boxHeavyVertical + pad + title + strings.Repeat(" ", gap) + rightText + pad + boxHeavyVertical + "\n")
	b.WriteString(boxHeavyBottomLeft + strings.Repeat(boxHeavyHorizontal, inner) + boxHeavyBottomRight)

	return b.String()
}

// DrawSeparator draws a thin horizontal rule.
func DrawSeparator(width int) string {
	if width <= 0 {
		return ""
	}

	return strings.Repeat(boxHorizontal, width)
}

// DrawProgressBar draws a bar of the given width; value is clamped to [0, 1].
func DrawProgressBar(value float64, width int) string {
	value = min(max(value, 0), 1)
	filled := int(value * float64(width))

	return strings.Repeat(progressFilled, filled) + strings.Repeat(progressEmpty, width-filled)
}

// DrawPercentBar draws a labelled percentage bar:
// "side/minor   ████████████░░░░░░░░  61%  (1,204)".
func DrawPercentBar(label string, fraction float64, count string, labelWidth, barWidth int) string {
	return fmt.Sprintf("%s %s %3d%%  (%s)",
		PadRight(label, labelWidth), DrawProgressBar(fraction, barWidth), int(fraction*percentMultiplier), count)
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	n := displayLen(s)
	if n >= width {
		return s
	}

	return s + strings.Repeat(" ", width-n)
}

// Truncate shortens s to width display cells, ending with "...".
func Truncate(s string, width int) string {
	const ellipsis = "..."

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	if width <= len(ellipsis) {
		return strings.Repeat(".", max(width, 0))
	}

	return string(runes[:width-len(ellipsis)]) + ellipsis
}

func displayLen(s string) int {
	return text.RuneWidthWithoutEscSequences(s)
}
