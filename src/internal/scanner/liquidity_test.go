package scanner

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLiquidity(t *testing.T) {
	pair := "0x1111111111111111111111111111111111111111"

	t.Run("normal pool", func(t *testing.T) {
		pos := ComputeLiquidity(pair, "PulseX V2",
			big.NewInt(1000), // LP total
			big.NewInt(900),  // LP burnt
			big.NewInt(500),  // token in pool
			big.NewInt(300),  // token at burn addresses
			big.NewInt(1000)) // token total

		assert.True(t, pos.Applicable)
		assert.Equal(t, 90.0, pos.PercentBurnt)
		assert.Equal(t, 50.0, pos.PercentInPool)
		assert.Equal(t, 30.0, pos.PercentSupplyBurnt)
		assert.Equal(t, "PulseX V2", pos.Source)
	})

	// 代币供应烧了三成而 LP 一点没烧：两个比例互相独立
	t.Run("supply burnt without LP burn", func(t *testing.T) {
		pos := ComputeLiquidity(pair, "PulseX V2",
			big.NewInt(1000), big.NewInt(0), big.NewInt(500),
			big.NewInt(300), big.NewInt(1000))
		assert.True(t, pos.Applicable)
		assert.Zero(t, pos.PercentBurnt)
		assert.Equal(t, 30.0, pos.PercentSupplyBurnt)
	})

	t.Run("zero LP supply never divides", func(t *testing.T) {
		pos := ComputeLiquidity(pair, "PulseX V2",
			big.NewInt(0), big.NewInt(0), big.NewInt(500),
			big.NewInt(0), big.NewInt(1000))
		assert.False(t, pos.Applicable)
		assert.Zero(t, pos.PercentBurnt)
		assert.Zero(t, pos.PercentInPool)
	})

	t.Run("zero token supply never divides", func(t *testing.T) {
		pos := ComputeLiquidity(pair, "PulseX V1",
			big.NewInt(1000), big.NewInt(100), big.NewInt(0),
			big.NewInt(0), big.NewInt(0))
		assert.False(t, pos.Applicable)
	})

	t.Run("nil inputs", func(t *testing.T) {
		pos := ComputeLiquidity(pair, "", nil, nil, nil, nil, nil)
		assert.False(t, pos.Applicable)
	})
}
