package figure

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
)

// Subplot layout in canvas pixels.
const (
	marginX   = 40.0
	topPad    = 48.0
	bottomPad = 28.0
	gapX      = 24.0
	gapY      = 20.0
)

// RenderPNG rasterizes a figure descriptor to PNG bytes. This is the only
// place the raster backend appears; everything above it works on the
// descriptor alone.
func RenderPNG(f *Figure) ([]byte, error) {
	dc := gg.NewContext(CanvasWidth, CanvasHeight)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	dc.SetHexColor("#000000")
	dc.DrawStringAnchored(f.Title, CanvasWidth/2, topPad/2, 0.5, 0.5)

	cellW := (CanvasWidth - 2*marginX - gapX*float64(f.GridCols-1)) / float64(f.GridCols)
	cellH := (CanvasHeight - topPad - bottomPad - gapY*float64(f.GridRows-1)) / float64(f.GridRows)

	for idx, c := range f.Cells {
		if c.Hidden {
			continue
		}
		row := idx / f.GridCols
		col := idx % f.GridCols
		x0 := marginX + float64(col)*(cellW+gapX)
		y0 := topPad + float64(row)*(cellH+gapY)

		dc.SetHexColor(FaceColor)
		dc.DrawRectangle(x0, y0, cellW, cellH)
		dc.Fill()

		if f.YMax > 0 {
			dc.SetHexColor(c.Color)
			bw := cellW / float64(len(c.Counts))
			for bi, cnt := range c.Counts {
				if cnt == 0 {
					continue
				}
				h := (cellH - 4) * float64(cnt) / float64(f.YMax)
				dc.DrawRectangle(x0+float64(bi)*bw, y0+cellH-h, bw, h)
				dc.Fill()
			}
		}

		dc.SetHexColor("#999999")
		dc.SetLineWidth(1)
		dc.DrawRectangle(x0, y0, cellW, cellH)
		dc.Stroke()

		dc.SetHexColor("#000000")
		dc.DrawString(c.Label, x0+6, y0+16)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
