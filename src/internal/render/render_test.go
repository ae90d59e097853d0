package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padicalls/padiscan/src/internal/scanner"
	"github.com/padicalls/padiscan/src/internal/tracker"
)

func TestHumanFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1500, "1.50K"},
		{2_500_000, "2.50M"},
		{3_100_000_000, "3.10B"},
		// 万亿档先按千除一次，再走 K/M/B 循环
		{4_200_000_000_000, "4,200.00B"},
		{-1500, "-1.50K"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanFormat(tt.in, 2), "input %v", tt.in)
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `hello\.world`, EscapeMarkdownV2("hello.world"))
	assert.Equal(t, `\*bold\*`, EscapeMarkdownV2("*bold*"))
	assert.Equal(t, `a\\b`, EscapeMarkdownV2(`a\b`))
	assert.Equal(t, "plain", EscapeMarkdownV2("plain"))
}

func TestSeverityEmoji(t *testing.T) {
	assert.Equal(t, "🔴", SeverityEmoji(scanner.SeverityCritical))
	assert.Equal(t, "🟡", SeverityEmoji(scanner.SeverityCaution))
	assert.Equal(t, "🟢", SeverityEmoji(scanner.SeveritySafe))
}

func TestFindingLine_AdminAliasFlag(t *testing.T) {
	line := FindingLine(scanner.Finding{
		Message:  "Admin Variable Detected: `boss` assigned to multiple-ownership",
		Severity: scanner.SeverityCritical,
		Origin:   scanner.OriginAdminVar,
	})
	assert.Contains(t, line, "🚩")

	plain := FindingLine(scanner.Finding{
		Message:  "Setter-like: enableTrading",
		Severity: scanner.SeverityCaution,
		Origin:   scanner.OriginABI,
	})
	assert.Contains(t, plain, "🟡")
}

func TestVerdictLabel(t *testing.T) {
	assert.Equal(t, "✅ Ownership Renounced", VerdictLabel(scanner.VerdictRenounced))
	assert.Equal(t, "❌ Not Renounced", VerdictLabel(scanner.VerdictNotRenounced))
	assert.Equal(t, "❌ Unknown Ownership", VerdictLabel(scanner.VerdictUnknownOwnership))
}

func TestTaxLabel(t *testing.T) {
	assert.Equal(t, "Fail", TaxLabel(scanner.TaxValue{}, false))
	assert.Equal(t, "N/A", TaxLabel(scanner.TaxValue{}, true))
	assert.Equal(t, "12.50%", TaxLabel(scanner.TaxValue{Valid: true, Percent: 12.5}, true))
}

func TestScanText_Layout(t *testing.T) {
	report := &scanner.ScanReport{
		Address:      "0x1234567890123456789012345678901234567890",
		VerifyStatus: "✅ Verified (PulseScan)",
		Verified:     true,
		HasABI:       true,
		OwnerKnown:   true,
		Owner:        "0x000000000000000000000000000000000000dEaD",
		OwnerBurned:  true,
		Verdict:      scanner.VerdictRenounced,
		Honeypot:     scanner.HoneypotOK,
		Findings: []scanner.Finding{
			{Message: "Safe: no dangerous calls detected", Severity: scanner.SeveritySafe, Origin: scanner.OriginAggregator},
		},
		Liquidity: scanner.LiquidityPosition{
			PairAddress:   "0xabc",
			Source:        "PulseX V2",
			Applicable:    true,
			PercentBurnt:  95.5,
			PercentInPool: 40.0,
		},
	}
	report.Metadata.Name = "Test Token"
	report.Metadata.Symbol = "TST"

	out := ScanText(report)
	assert.Contains(t, out, "Test Token ($TST)")
	assert.Contains(t, out, "✅ Verified (PulseScan)")
	assert.Contains(t, out, "✅ Ownership Renounced")
	assert.Contains(t, out, "✅ Not a Honeypot")
	assert.Contains(t, out, "95.50% 🔥 | PulseX V2")
	assert.Contains(t, out, "🟢 Safe: no dangerous calls detected")
}

func TestScanText_NoLP(t *testing.T) {
	report := &scanner.ScanReport{
		Address:      "0x1234567890123456789012345678901234567890",
		VerifyStatus: "❌ Contract is Unverified",
		Honeypot:     scanner.HoneypotUnknown,
	}
	out := ScanText(report)
	assert.Contains(t, out, "LP Burn: N/A (LP Total Supply is 0)")
	assert.Contains(t, out, "❌ No LP or trading not enabled yet")
	assert.Contains(t, out, "N/A (Owner function not found)")
}

func TestWalletText_Layout(t *testing.T) {
	report := &tracker.WalletReport{
		Address:        "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		NativeBalance:  1234.5,
		NativePriceUSD: 0.0001,
		NativeValueUSD: 0.12345,
		TotalValueUSD:  150.12345,
		Tier:           "🦐 Shrimp",
		Holdings: []tracker.Holding{
			{Symbol: "PLSX", Group: "BASIC", Balance: 1000, ValueUSD: 150, HasPrice: true},
			{Symbol: "PHEN", Group: "PT", Balance: 42, HasPrice: false},
		},
	}
	out := WalletText(report)
	assert.Contains(t, out, "🦐 Shrimp - PulseChain")
	assert.Contains(t, out, "ERC 20 Tokens")
	assert.Contains(t, out, "Pump Tires Tokens")
	assert.Contains(t, out, "PLSX")
	assert.Contains(t, out, "N/A (No LP)")
}
