// Package corr computes per-group Pearson correlation matrices over the
// dataset's channel columns.
package corr

import (
	"math"

	"wifiviz/internal/dataset"
)

// Matrix is a square, symmetric correlation matrix indexed by channel name
// on both axes. Diagonal entries are exactly 1. Undefined coefficients
// (zero variance or fewer than two samples) are NaN, never 0.
type Matrix struct {
	Channels []string
	Values   [][]float64
}

// At returns the coefficient for the channel pair (i, j).
func (m *Matrix) At(i, j int) float64 { return m.Values[i][j] }

// Abs returns a new matrix with every entry replaced by its absolute value.
// NaN entries stay NaN. Applying Abs twice equals applying it once.
func (m *Matrix) Abs() *Matrix {
	out := &Matrix{Channels: m.Channels, Values: make([][]float64, len(m.Values))}
	for i, row := range m.Values {
		out.Values[i] = make([]float64, len(row))
		for j, v := range row {
			out.Values[i][j] = math.Abs(v)
		}
	}
	return out
}

// Compute assembles the full pairwise Pearson matrix for one group's rows.
// Each row must carry one value per channel, in channel order.
//
// The coefficient uses the raw-moment form
// (n·Σxy − Σx·Σy) / sqrt((n·Σx² − (Σx)²)(n·Σy² − (Σy)²)),
// in which the sample-vs-population covariance scaling cancels, so the
// result is identical under either convention. A zero denominator or
// n < 2 yields NaN; finite results are clamped to [-1, 1].
func Compute(rows []dataset.Row, channels []string) *Matrix {
	n := len(channels)
	m := &Matrix{Channels: channels, Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pearson(rows, i, j)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pearson(rows []dataset.Row, i, j int) float64 {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for _, row := range rows {
		x, y := row.Values[i], row.Values[j]
		n++
		sumX += x
		sumY += y
		sumXX += x * x
		sumYY += y * y
		sumXY += x * y
	}
	if n < 2 {
		return math.NaN()
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return math.NaN()
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}
