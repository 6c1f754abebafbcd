package random

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes/internal/domain"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestPicker_Pick_InRange(t *testing.T) {
	p := New()

	for _, limit := range []int{1, 2, 7, 10, 11, 101, 1000} {
		for range 200 {
			n, err := p.Pick(limit)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 0)
			assert.Less(t, n, limit)
		}
	}
}

func TestPicker_Pick_LimitOne(t *testing.T) {
	n, err := New().Pick(1)

	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPicker_Pick_CoversSmallRange(t *testing.T) {
	p := New()
	seen := make(map[int]bool)

	for range 1000 {
		n, err := p.Pick(3)
		require.NoError(t, err)
		seen[n] = true
	}

	assert.Len(t, seen, 3)
}

func TestPicker_Pick_InvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		_, err := New().Pick(limit)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	}
}

func TestPicker_Pick_DeterministicSource(t *testing.T) {
	p := NewWithSource(bytes.NewReader([]byte{0x05}))

	n, err := p.Pick(10)

	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPicker_Pick_SourceError(t *testing.T) {
	_, err := NewWithSource(failingReader{}).Pick(10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")
}
