// Package colorscale maps numeric values onto named color gradients for
// heat-map style cell backgrounds.
package colorscale

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// UnsupportedColormapError indicates a color-scale name with no registered
// gradient.
type UnsupportedColormapError struct {
	Name string
}

func (e *UnsupportedColormapError) Error() string {
	return fmt.Sprintf("unsupported colormap %q (supported: %s)", e.Name, strings.Join(Names(), ", "))
}

// Scale is a multi-stop gradient. Color lookups blend between adjacent
// stops in Lab space, which keeps perceived brightness monotonic along
// the gradient.
type Scale struct {
	Name  string
	stops []colorful.Color
}

// Gradient stops approximating the matplotlib colormaps of the same names.
var scales = map[string][]string{
	"Greens":  {"#f7fcf5", "#c7e9c0", "#74c476", "#238b45", "#00441b"},
	"Blues":   {"#f7fbff", "#c6dbef", "#6baed6", "#2171b5", "#08306b"},
	"Reds":    {"#fff5f0", "#fcbba1", "#fb6a4a", "#cb181d", "#67000d"},
	"Oranges": {"#fff5eb", "#fdd0a2", "#fd8d3c", "#d94801", "#7f2704"},
	"Purples": {"#fcfbfd", "#dadaeb", "#9e9ac8", "#6a51a3", "#3f007d"},
	"Greys":   {"#ffffff", "#d9d9d9", "#969696", "#525252", "#000000"},
	"RdBu":    {"#67001f", "#d6604d", "#f7f7f7", "#4393c3", "#053061"},
	"RdYlGn":  {"#a50026", "#f46d43", "#ffffbf", "#66bd63", "#006837"},
	"Viridis": {"#440154", "#3b528b", "#21908c", "#5dc963", "#fde725"},
}

// Names returns the supported scale names, sorted.
func Names() []string {
	out := make([]string, 0, len(scales))
	for name := range scales {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup resolves a scale by name. Unknown names yield
// *UnsupportedColormapError.
func Lookup(name string) (*Scale, error) {
	hexes, ok := scales[name]
	if !ok {
		return nil, &UnsupportedColormapError{Name: name}
	}
	s := &Scale{Name: name, stops: make([]colorful.Color, len(hexes))}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("parse gradient stop %q: %w", h, err)
		}
		s.stops[i] = c
	}
	return s, nil
}

// Color maps v within the domain [lo, hi] to a "#rrggbb" string. The domain
// is the caller's actual data range, so contrast stays informative for both
// signed and absolute matrices. A degenerate domain (lo == hi) maps to the
// low end of the gradient. Pure function: equal inputs give equal output.
func (s *Scale) Color(v, lo, hi float64) string {
	t := 0.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	pos := t * float64(len(s.stops)-1)
	i := int(pos)
	if i >= len(s.stops)-1 {
		return s.stops[len(s.stops)-1].Hex()
	}
	return s.stops[i].BlendLab(s.stops[i+1], pos-float64(i)).Clamped().Hex()
}

// Dark reports whether text on the given "#rrggbb" background needs a light
// foreground to stay legible.
func Dark(hex string) bool {
	c, err := colorful.Hex(hex)
	if err != nil {
		return false
	}
	return 0.299*c.R+0.587*c.G+0.114*c.B < 0.5
}
