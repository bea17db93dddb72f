// Package figure builds per-room histogram figures as abstract descriptors
// and renders them to PNG at a separate backend boundary, keeping layout
// logic independent of the raster library.
package figure

import (
	"fmt"

	"wifiviz/internal/dataset"
)

// Canvas size of every rendered figure, matching the upstream 10.24x7.68
// inch layout at 100 dpi.
const (
	CanvasWidth  = 1024
	CanvasHeight = 768
)

// FaceColor is the subplot background fill.
const FaceColor = "#f2f2f2"

// DefaultBins is the histogram bin count used when none is configured.
const DefaultBins = 20

// Bar colors follow the familiar matplotlib C0..C9 cycle, one per channel.
var colorCycle = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Cell is one grid slot: a single channel's binned distribution plus its
// legend label. Trailing slots beyond the channel count are hidden.
type Cell struct {
	Label  string
	Counts []int
	Color  string
	Hidden bool
}

// Figure describes one group's histogram grid. All cells share the x range
// [XMin, XMax] and the y range [0, YMax], so bars are comparable across
// channels within the group.
type Figure struct {
	GroupKey string
	Title    string
	GridRows int
	GridCols int
	Cells    []Cell
	XMin     float64
	XMax     float64
	YMax     int
	Bins     int
}

// Build bins one group's channel values into a grid descriptor: two columns,
// enough rows for every channel, shared axis ranges, legend labels
// "Device 1..N", and any unused trailing grid slot hidden.
func Build(key string, rows []dataset.Row, schema dataset.Schema, bins int) *Figure {
	if bins < 1 {
		bins = DefaultBins
	}
	n := len(schema.Channels)
	f := &Figure{
		GroupKey: key,
		Title:    fmt.Sprintf("Signal strength distribution for each location in Room %s", key),
		GridCols: 2,
		GridRows: (n + 1) / 2,
		Bins:     bins,
	}

	// Shared x range across every channel of the group.
	first := true
	for _, row := range rows {
		for _, v := range row.Values {
			if first || v < f.XMin {
				f.XMin = v
			}
			if first || v > f.XMax {
				f.XMax = v
			}
			first = false
		}
	}

	for i := range schema.Channels {
		counts := make([]int, bins)
		for _, row := range rows {
			counts[binIndex(row.Values[i], f.XMin, f.XMax, bins)]++
		}
		f.Cells = append(f.Cells, Cell{
			Label:  fmt.Sprintf("Device %d", i+1),
			Counts: counts,
			Color:  colorCycle[i%len(colorCycle)],
		})
		for _, c := range counts {
			if c > f.YMax {
				f.YMax = c
			}
		}
	}
	for len(f.Cells) < f.GridRows*f.GridCols {
		f.Cells = append(f.Cells, Cell{Hidden: true})
	}
	return f
}

// binIndex places v into one of bins equal-width buckets over [lo, hi].
// The upper bound lands in the last bucket; a degenerate range centers
// everything in one bucket.
func binIndex(v, lo, hi float64, bins int) int {
	if hi <= lo {
		return bins / 2
	}
	idx := int((v - lo) / (hi - lo) * float64(bins))
	if idx >= bins {
		idx = bins - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
