// Package random implements ports.IndexPicker on a cryptographically strong source.
package random

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/jsamuelsen/quotes/internal/domain"
)

// Picker draws uniform indexes from an entropy source.
type Picker struct {
	source io.Reader
}

// New returns a Picker reading from crypto/rand.
func New() *Picker {
	return &Picker{source: rand.Reader}
}

// NewWithSource returns a Picker reading from r. Intended for tests.
func NewWithSource(r io.Reader) *Picker {
	return &Picker{source: r}
}

// Pick returns a uniformly distributed integer in [0, limit).
// Implements ports.IndexPicker.
func (p *Picker) Pick(limit int) (int, error) {
	if limit <= 0 {
		return 0, domain.NewValidationErrorWithValue("limit", "must be positive", limit)
	}

	n, err := rand.Int(p.source, big.NewInt(int64(limit)))
	if err != nil {
		return 0, fmt.Errorf("drawing random index: %w", err)
	}

	return int(n.Int64()), nil
}
