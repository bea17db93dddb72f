// Package report renders correlation matrices as styled HTML tables and
// assembles them into a single document.
package report

import (
	"fmt"
	"html"
	"math"
	"strings"

	"wifiviz/internal/colorscale"
	"wifiviz/internal/corr"
)

// MinPrecision and MaxPrecision bound the digits shown after the decimal
// point in numeric cells.
const (
	MinPrecision = 0
	MaxPrecision = 6
)

// nanCell is the placeholder for undefined coefficients. It must never be
// confusable with a formatted zero.
const nanCell = "&mdash;"

// nanBackground is the neutral fill for undefined cells, outside any scale.
const nanBackground = "#d9d9d9"

// InvalidPrecisionError indicates a display precision outside
// [MinPrecision, MaxPrecision].
type InvalidPrecisionError struct {
	Precision int
}

func (e *InvalidPrecisionError) Error() string {
	return fmt.Sprintf("invalid precision %d (must be in [%d, %d])", e.Precision, MinPrecision, MaxPrecision)
}

// ValidatePrecision checks the display precision up front, before any
// loading or computation is spent.
func ValidatePrecision(p int) error {
	if p < MinPrecision || p > MaxPrecision {
		return &InvalidPrecisionError{Precision: p}
	}
	return nil
}

// RenderTable formats one group's correlation matrix as a self-contained
// <table> fragment: bold "ROOM <key>" caption, channel names on both axes,
// values at the given precision, and cell backgrounds from the scale
// spanning the matrix's own finite min/max. NaN cells render as a dash on
// a neutral background.
func RenderTable(key string, m *corr.Matrix, precision int, scale *colorscale.Scale) (string, error) {
	if err := ValidatePrecision(precision); err != nil {
		return "", err
	}
	lo, hi := finiteRange(m)

	var b strings.Builder
	b.WriteString(`<table style="border-collapse: collapse;">`)
	fmt.Fprintf(&b, `<caption style="padding: 10px; font-weight: bold;">ROOM %s</caption>`, html.EscapeString(key))
	b.WriteString(`<thead><tr style="padding: 10px;"><th style="padding: 10px;"></th>`)
	for _, ch := range m.Channels {
		fmt.Fprintf(&b, `<th style="padding: 10px;">%s</th>`, html.EscapeString(ch))
	}
	b.WriteString(`</tr></thead><tbody>`)
	for i, ch := range m.Channels {
		b.WriteString(`<tr style="padding: 10px;">`)
		fmt.Fprintf(&b, `<th style="padding: 10px;">%s</th>`, html.EscapeString(ch))
		for j := range m.Channels {
			b.WriteString(cell(m.At(i, j), precision, lo, hi, scale))
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String(), nil
}

func cell(v float64, precision int, lo, hi float64, scale *colorscale.Scale) string {
	if math.IsNaN(v) {
		return fmt.Sprintf(`<td style="padding: 10px; background-color: %s;">%s</td>`, nanBackground, nanCell)
	}
	bg := scale.Color(v, lo, hi)
	fg := "#000000"
	if colorscale.Dark(bg) {
		fg = "#ffffff"
	}
	return fmt.Sprintf(`<td style="padding: 10px; background-color: %s; color: %s;">%.*f</td>`, bg, fg, precision, v)
}

// finiteRange returns the minimum and maximum finite entries of the matrix.
// An all-NaN matrix gets the degenerate domain (0, 0), which the scale maps
// to its low end.
func finiteRange(m *corr.Matrix) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range m.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// AssembleDocument wraps rendered tables into one HTML document. The head
// fragment, each table, and the closing fragment are joined with a visible
// <br><br> gap; an empty table list still yields valid head/body/heading
// markup.
func AssembleDocument(title string, tables []string) string {
	esc := html.EscapeString(title)
	parts := make([]string, 0, len(tables)+2)
	parts = append(parts, fmt.Sprintf(
		`<!DOCTYPE html><html lang="en"><head><title>%s</title></head><body style="background-color:#f2f2f2;"><article><h1>%s</h1>`,
		esc, esc))
	parts = append(parts, tables...)
	parts = append(parts, `</article></body></html>`)
	return strings.Join(parts, "<br><br>")
}
