package scanner

import (
	"math"
	"math/big"

	"github.com/padicalls/padiscan/src/internal/chain"
)

// InterpretHoney 把模拟器的原始 7 元组换算成买卖税率。
// 税率公式对买卖独立求值：
//   - 预估>0 且 实收>0 → (预估-实收)/预估*100，保留两位小数
//   - 预估>0、实收==0 且对应 success 为真 → 100.0（全额吞掉）
//   - success 为假 → Fail 哨兵，不是百分比
func InterpretHoney(version string, raw *chain.HoneyRawResult) TaxSimulationResult {
	out := TaxSimulationResult{
		Version:     version,
		BuySuccess:  raw.Buy,
		SellSuccess: raw.Sell,
	}
	if raw.BlockNumber != nil {
		out.Block = raw.BlockNumber.Uint64()
	}
	out.BuyTax = taxPercent(raw.BuyEstimate, raw.BuyReal, raw.Buy)
	out.SellTax = taxPercent(raw.SellEstimate, raw.SellReal, raw.Sell)
	return out
}

func taxPercent(estimate, real *big.Int, success bool) TaxValue {
	if estimate == nil || real == nil {
		return TaxValue{}
	}
	est, _ := new(big.Float).SetInt(estimate).Float64()
	got, _ := new(big.Float).SetInt(real).Float64()
	switch {
	case est > 0 && got > 0:
		return TaxValue{Valid: true, Percent: round2((est - got) / est * 100)}
	case est > 0 && got == 0 && success:
		return TaxValue{Valid: true, Percent: 100.0}
	case !success:
		return TaxValue{}
	default:
		return TaxValue{Valid: true, Percent: 0.0}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CorrectSymmetric 对称税率修正：买税有效而卖税缺失、为负或
// 高得离谱（阈值可配）时，假定卖税等于买税。多数合约对两个
// 方向收同一费率，去中心化模拟器也验不了非对称卖出路径。
func CorrectSymmetric(r TaxSimulationResult, sellPlausibleMax float64) TaxSimulationResult {
	if !r.BuySuccess || !r.SellSuccess || !r.BuyTax.Valid {
		return r
	}
	if !r.SellTax.Valid || r.SellTax.Percent < 0 || r.SellTax.Percent > sellPlausibleMax {
		r.SellTax = r.BuyTax
	}
	return r
}

// ClassifyHoneypot 从修正后的结果推导蜜罐结论。
// 买卖都失败算 Unknown 而不是蜜罐：可能是模拟器坏了，不是代币的锅。
// 但也绝不因此判安全，无证据要偏向谨慎。
func ClassifyHoneypot(r TaxSimulationResult, fullTaxThreshold float64) HoneypotVerdict {
	if r.Err != "" {
		return HoneypotUnknown
	}
	switch {
	case r.BuySuccess && !r.SellSuccess:
		return HoneypotDetected
	case r.SellTax.Valid && r.SellTax.Percent >= fullTaxThreshold:
		return HoneypotFullTax
	case !r.BuySuccess && !r.SellSuccess:
		return HoneypotUnknown
	default:
		return HoneypotOK
	}
}
