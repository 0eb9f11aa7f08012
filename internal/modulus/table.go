package modulus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/curesim/internal/cure"
)

// Table is a read-only sequence of (cure fraction, modulus) samples.
// It is never modified after NewTable and may be shared between goroutines.
type Table struct {
	phi []float64
	e   []float64
}

// NewTable copies the samples and checks that phi is non-decreasing.
func NewTable(phi, e []float64) (*Table, error) {
	if len(phi) == 0 || len(phi) != len(e) {
		return nil, fmt.Errorf("%w: lookup table needs matching non-empty columns (phi=%d, E=%d)",
			cure.ErrConfiguration, len(phi), len(e))
	}
	for i := 1; i < len(phi); i++ {
		if phi[i] < phi[i-1] {
			return nil, fmt.Errorf("%w: lookup table phi must be non-decreasing (index %d)", cure.ErrConfiguration, i)
		}
	}
	t := &Table{
		phi: make([]float64, len(phi)),
		e:   make([]float64, len(e)),
	}
	copy(t.phi, phi)
	copy(t.e, e)
	return t, nil
}

func (t *Table) Len() int { return len(t.phi) }

// Samples returns copies of both columns.
func (t *Table) Samples() (phi, e []float64) {
	phi = append([]float64(nil), t.phi...)
	e = append([]float64(nil), t.e...)
	return phi, e
}

// String lists the samples as (phi, E) pairs.
func (t *Table) String() string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%g, %g)", t.phi[i], t.e[i])
	}
	b.WriteByte(']')
	return b.String()
}

// At interpolates linearly, holding the end values outside the table.
func (t *Table) At(phi float64) float64 {
	n := len(t.phi)
	if phi <= t.phi[0] {
		return t.e[0]
	}
	if phi >= t.phi[n-1] {
		return t.e[n-1]
	}

	// first sample strictly above phi
	i := sort.Search(n, func(i int) bool { return t.phi[i] > phi })
	x0, x1 := t.phi[i-1], t.phi[i]
	y0, y1 := t.e[i-1], t.e[i]
	return y0 + (y1-y0)*(phi-x0)/(x1-x0)
}
