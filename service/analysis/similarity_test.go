package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical strings", "2024-01-01", "2024-01-01", 1.0},
		{"identical ignoring case", "Pole ABC", "pole abc", 1.0},
		{"empty left", "", "something", 0},
		{"empty right", "something", "", 0},
		{"both empty", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"2024-01-01", "Installed 2024-01-01 Pole Name ABC123"},
		{"abc", "xyz"},
		{"a", "aaaaaaaaaaaaaaaaaaaa"},
		{"07/05/2023 14:22", "some unrelated detail text"},
	}
	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestGroupValid(t *testing.T) {
	// Inclusive bound: exactly 0.2 is valid.
	assert.True(t, GroupValid(true, true, true, 0.2))
	assert.True(t, GroupValid(true, true, true, 0.9))

	assert.False(t, GroupValid(false, true, true, 0.9))
	assert.False(t, GroupValid(true, false, true, 0.9))
	assert.False(t, GroupValid(true, true, false, 0.9))
	assert.False(t, GroupValid(true, true, true, 0.19))
}

func TestPageValid(t *testing.T) {
	// Exclusive bound: exactly 0.2 is invalid, unlike the group rule.
	assert.False(t, PageValid(0.2))
	assert.True(t, PageValid(0.21))
	assert.False(t, PageValid(0))
}

func TestPageAverage(t *testing.T) {
	assert.Equal(t, 0.0, PageAverage(nil))
	assert.Equal(t, 0.5, PageAverage([]float64{0.5}))
	assert.Equal(t, 0.33, PageAverage([]float64{0.2, 0.3, 0.5}))
	assert.Equal(t, 1.0, PageAverage([]float64{1, 1}))
}
