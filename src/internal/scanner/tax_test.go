package scanner

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padicalls/padiscan/src/internal/chain"
)

func honeyResult(buyEst, buyReal, sellEst, sellReal int64, buy, sell bool) *chain.HoneyRawResult {
	return &chain.HoneyRawResult{
		BuyEstimate:  big.NewInt(buyEst),
		BuyReal:      big.NewInt(buyReal),
		SellEstimate: big.NewInt(sellEst),
		SellReal:     big.NewInt(sellReal),
		Buy:          buy,
		Sell:         sell,
		BlockNumber:  big.NewInt(12345),
	}
}

func TestInterpretHoney_TaxPercent(t *testing.T) {
	tests := []struct {
		name     string
		raw      *chain.HoneyRawResult
		wantBuy  TaxValue
		wantSell TaxValue
	}{
		{
			name:     "ten percent each way",
			raw:      honeyResult(100, 90, 100, 90, true, true),
			wantBuy:  TaxValue{Valid: true, Percent: 10.0},
			wantSell: TaxValue{Valid: true, Percent: 10.0},
		},
		{
			name:     "full tax buy",
			raw:      honeyResult(100, 0, 100, 95, true, true),
			wantBuy:  TaxValue{Valid: true, Percent: 100.0},
			wantSell: TaxValue{Valid: true, Percent: 5.0},
		},
		{
			name:     "buy failed with nothing received yields sentinel",
			raw:      honeyResult(100, 0, 100, 90, false, true),
			wantBuy:  TaxValue{},
			wantSell: TaxValue{Valid: true, Percent: 10.0},
		},
		{
			// 预估和实收都大于零时按数值算税，失败标志不抢先
			name:     "measured amounts win over failure flag",
			raw:      honeyResult(100, 90, 100, 90, false, true),
			wantBuy:  TaxValue{Valid: true, Percent: 10.0},
			wantSell: TaxValue{Valid: true, Percent: 10.0},
		},
		{
			name:     "fractional rounding",
			raw:      honeyResult(1000, 877, 1000, 877, true, true),
			wantBuy:  TaxValue{Valid: true, Percent: 12.3},
			wantSell: TaxValue{Valid: true, Percent: 12.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := InterpretHoney("V2", tt.raw)
			assert.Equal(t, tt.wantBuy, out.BuyTax)
			assert.Equal(t, tt.wantSell, out.SellTax)
			assert.Equal(t, uint64(12345), out.Block)
		})
	}
}

func TestCorrectSymmetric(t *testing.T) {
	base := TaxSimulationResult{
		Version:     "V2",
		BuySuccess:  true,
		SellSuccess: true,
		BuyTax:      TaxValue{Valid: true, Percent: 5.0},
	}

	tests := []struct {
		name     string
		sellTax  TaxValue
		wantSell TaxValue
	}{
		{"missing sell assumes buy", TaxValue{}, TaxValue{Valid: true, Percent: 5.0}},
		{"implausibly high assumes buy", TaxValue{Valid: true, Percent: 45.0}, TaxValue{Valid: true, Percent: 5.0}},
		{"negative assumes buy", TaxValue{Valid: true, Percent: -3.0}, TaxValue{Valid: true, Percent: 5.0}},
		{"plausible sell kept", TaxValue{Valid: true, Percent: 12.0}, TaxValue{Valid: true, Percent: 12.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			r.SellTax = tt.sellTax
			out := CorrectSymmetric(r, 20.0)
			assert.Equal(t, tt.wantSell, out.SellTax)
		})
	}

	t.Run("no correction when sell failed", func(t *testing.T) {
		r := base
		r.SellSuccess = false
		r.SellTax = TaxValue{}
		out := CorrectSymmetric(r, 20.0)
		assert.Equal(t, TaxValue{}, out.SellTax)
	})
}

func TestClassifyHoneypot(t *testing.T) {
	tests := []struct {
		name string
		r    TaxSimulationResult
		want HoneypotVerdict
	}{
		{
			name: "buy ok sell blocked",
			r:    TaxSimulationResult{BuySuccess: true, SellSuccess: false},
			want: HoneypotDetected,
		},
		{
			name: "full tax rug",
			r: TaxSimulationResult{
				BuySuccess: true, SellSuccess: true,
				SellTax: TaxValue{Valid: true, Percent: 99.5},
			},
			want: HoneypotFullTax,
		},
		{
			name: "both failed is unknown not honeypot",
			r:    TaxSimulationResult{BuySuccess: false, SellSuccess: false},
			want: HoneypotUnknown,
		},
		{
			name: "simulation error is unknown",
			r:    TaxSimulationResult{Err: "simulator not deployed", BuySuccess: true, SellSuccess: true},
			want: HoneypotUnknown,
		},
		{
			name: "normal token",
			r: TaxSimulationResult{
				BuySuccess: true, SellSuccess: true,
				SellTax: TaxValue{Valid: true, Percent: 3.0},
			},
			want: HoneypotOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyHoneypot(tt.r, 99.0))
		})
	}
}
