package scanner

import "math/big"

// ComputeLiquidity 计算 LP 燃烧比例与池内供应占比。
// LP 总量或代币总量为零时直接标记不适用，永不除零。
func ComputeLiquidity(pair, source string, lpTotal, lpBurnt, poolTokenBalance, tokenBurnt, tokenTotal *big.Int) LiquidityPosition {
	pos := LiquidityPosition{PairAddress: pair, Source: source}
	if lpTotal == nil || lpTotal.Sign() == 0 || tokenTotal == nil || tokenTotal.Sign() == 0 {
		return pos
	}
	pos.Applicable = true
	pos.PercentBurnt = ratioPercent(lpBurnt, lpTotal)
	pos.PercentInPool = ratioPercent(poolTokenBalance, tokenTotal)
	// 代币自身躺在烧毁地址里的供应占比，与 LP 燃烧无关
	pos.PercentSupplyBurnt = ratioPercent(tokenBurnt, tokenTotal)
	return pos
}

func ratioPercent(part, whole *big.Int) float64 {
	if part == nil {
		return 0
	}
	p, _ := new(big.Float).SetInt(part).Float64()
	w, _ := new(big.Float).SetInt(whole).Float64()
	return round2(p / w * 100)
}
