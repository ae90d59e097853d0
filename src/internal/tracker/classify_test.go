package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWallet(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{250000, "🐳 God Whale"},
		{100000, "🐳 God Whale"},
		{99999.99, "🐋 Whale"},
		{5000, "🐋 Whale"},
		{2000, "🦈 Shark"},
		{1500, "🐬 Dolphine"},
		{1000, "🐬 Dolphine"},
		{500, "🐟 Fish"},
		{100, "🦐 Shrimp"},
		{99.99, "🪱 Plankton"},
		{0, "🪱 Plankton"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyWallet(tt.value), "value %v", tt.value)
	}
}
