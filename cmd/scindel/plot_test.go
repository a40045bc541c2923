package main

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestFinite(t *testing.T) {
	assert.Equal(t, []float64{1.5, 0, 0, 2}, finite([]float64{1.5, math.NaN(), math.Inf(1), 2}))
}

func TestCountPlot(t *testing.T) {
	p := countPlot([]string{"c1", "c2"}, []float64{3, 1}, []float64{3.75, 1.2})
	file := filepath.Join(t.TempDir(), "counts.svg")
	require.NoError(t, p.Save(100, 100, file))
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}
