// Package render 把扫描/追踪结果排版成用户可读的报告文本。
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/padicalls/padiscan/src/internal/scanner"
	"github.com/padicalls/padiscan/src/internal/tracker"
)

const divider = "---------------------------------------"

// SeverityEmoji 严重度到颜色标记的映射
func SeverityEmoji(s scanner.Severity) string {
	switch s {
	case scanner.SeverityCritical:
		return "🔴"
	case scanner.SeverityCaution:
		return "🟡"
	case scanner.SeveritySafe:
		return "🟢"
	default:
		return "⚪"
	}
}

// FindingLine 管理员别名类用 🚩，其它按严重度着色
func FindingLine(f scanner.Finding) string {
	if f.Origin == scanner.OriginAdminVar {
		return "🚩 " + f.Message
	}
	return SeverityEmoji(f.Severity) + " " + f.Message
}

func VerdictLabel(v scanner.Verdict) string {
	switch v {
	case scanner.VerdictRenounced:
		return "✅ Ownership Renounced"
	case scanner.VerdictNotRenounced:
		return "❌ Not Renounced"
	case scanner.VerdictOwnerActiveNoABI:
		return "⚠️ Owner Active (Cannot verify features)"
	case scanner.VerdictRenouncedNoABI:
		return "✅ Ownership Renounced (No ABI check)"
	default:
		return "❌ Unknown Ownership"
	}
}

// HoneypotLabel 给报告头部的三态提示
func HoneypotLabel(v scanner.HoneypotVerdict) string {
	switch v {
	case scanner.HoneypotOK:
		return "✅ Not a Honeypot"
	case scanner.HoneypotDetected, scanner.HoneypotFullTax:
		return "❌ Honeypot"
	default:
		return "❌ No LP or trading not enabled yet"
	}
}

func TaxLabel(t scanner.TaxValue, success bool) string {
	if !success {
		return "Fail"
	}
	if !t.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", t.Percent)
}

// ScanText 按固定版式渲染扫描报告
func ScanText(r *scanner.ScanReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s ($%s)\n", r.Metadata.Name, r.Metadata.Symbol)
	fmt.Fprintf(&b, "%s\n", r.Address)

	owner := "N/A (Owner function not found)"
	if r.OwnerKnown {
		owner = r.Owner
	}
	fmt.Fprintf(&b, "Owner:\n%s\n\n", owner)

	lpSource := r.Liquidity.Source
	if lpSource == "" {
		lpSource = "Unknown DEX"
	}
	fmt.Fprintf(&b, "[PulseChain] - %s\n", lpSource)
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "%s\n", r.VerifyStatus)
	fmt.Fprintf(&b, "%s\n", VerdictLabel(r.Verdict))
	fmt.Fprintf(&b, "%s\n\n", HoneypotLabel(r.Honeypot))

	fmt.Fprintf(&b, "🅑 Buy Tax: %s\n", TaxLabel(r.BestTax.BuyTax, r.BestTax.BuySuccess))
	fmt.Fprintf(&b, "🅢 Sell Tax: %s\n", TaxLabel(r.BestTax.SellTax, r.BestTax.SellSuccess))
	b.WriteString(divider + "\n")

	if r.Liquidity.Applicable {
		fmt.Fprintf(&b, "LP Burn: %.2f%% 🔥 | %s\n", r.Liquidity.PercentBurnt, lpSource)
		fmt.Fprintf(&b, "Supply Left: %.2f%% in pool (%.2f%% of supply burnt-locked)\n",
			r.Liquidity.PercentInPool, r.Liquidity.PercentSupplyBurnt)
	} else {
		b.WriteString("LP Burn: N/A (LP Total Supply is 0)\n")
		b.WriteString("Supply Left: N/A\n")
	}
	b.WriteString(divider + "\n")

	if r.Market != nil {
		fmt.Fprintf(&b, "💰 Price: $%.10f\n", r.Market.PriceUSD)
		fmt.Fprintf(&b, "💧 Liquidity: $%s\n", commaFormat(r.Market.LiquidityUSD))
		fmt.Fprintf(&b, "🔄 Price Change (24h): %.2f%%\n", r.Market.PriceChange24h)
		fmt.Fprintf(&b, "🔊 Volume (24h): $%s\n", commaFormat(r.Market.Volume24h))
	} else {
		b.WriteString("💰 Price: N/A\n💧 Liquidity: N/A\n")
	}
	b.WriteString(divider + "\n")

	b.WriteString("Non-standard Functions:\n")
	for _, f := range r.Findings {
		b.WriteString(FindingLine(f) + "\n")
	}
	return b.String()
}

// WalletText 按固定版式渲染钱包估值报告
func WalletText(r *tracker.WalletReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total Value: $%s\n", HumanFormat(r.TotalValueUSD, 2))
	fmt.Fprintf(&b, "%s\n\n", r.Address)
	fmt.Fprintf(&b, "[%s - PulseChain]\n", r.Tier)
	b.WriteString(divider + "\n")
	b.WriteString("PLS Balance\n")
	fmt.Fprintf(&b, "Balance: %s PLS\n", commaFormat(r.NativeBalance))
	fmt.Fprintf(&b, "Value: $%s\n", HumanFormat(r.NativeValueUSD, 2))
	b.WriteString(divider + "\n")
	b.WriteString("Assets\n")
	fmt.Fprintf(&b, "Total Value: $%s\n\n", HumanFormat(r.TotalValueUSD-r.NativeValueUSD, 2))

	basic, pt := splitHoldings(r.Holdings)
	writeHoldingTable(&b, "ERC 20 Tokens", basic)
	writeHoldingTable(&b, "Pump Tires Tokens", pt)
	return b.String()
}

func splitHoldings(hs []tracker.Holding) (basic, pt []tracker.Holding) {
	for _, h := range hs {
		if h.Group == "PT" {
			pt = append(pt, h)
		} else {
			basic = append(basic, h)
		}
	}
	return
}

func writeHoldingTable(b *strings.Builder, title string, hs []tracker.Holding) {
	if len(hs) == 0 {
		return
	}
	b.WriteString(title + "\n")
	b.WriteString("TOKEN         BALANCE           VALUE (USD)\n")
	for _, h := range hs {
		value := "N/A (No LP)"
		if h.HasPrice {
			if h.ValueUSD >= 1 {
				value = fmt.Sprintf("≈ $%s", HumanFormat(h.ValueUSD, 2))
			} else {
				value = fmt.Sprintf("≈ $%.4f", h.ValueUSD)
			}
		}
		fmt.Fprintf(b, "%-12s %15s %12s\n", h.Symbol, HumanFormat(h.Balance, 2), value)
	}
	b.WriteString("\n")
}

// HumanFormat 把数值缩成 K/M/B/T 写法
func HumanFormat(num float64, decimals int) string {
	if num == 0 {
		return fmt.Sprintf("%.*f", decimals, 0.0)
	}
	magnitude := 0
	for math.Abs(num) >= 1_000_000_000_000 && magnitude < 4 {
		magnitude++
		num /= 1000.0
	}
	for math.Abs(num) >= 1000 && magnitude < 3 {
		magnitude++
		num /= 1000.0
	}
	suffixes := []string{"", "K", "M", "B", "T"}
	if magnitude == 0 {
		return commaDecimal(num, decimals)
	}
	return commaDecimal(num, decimals) + suffixes[magnitude]
}

func commaFormat(v float64) string {
	return commaDecimal(v, 2)
}

// commaDecimal 千分位分隔
func commaDecimal(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)
	dot := strings.IndexByte(s, '.')
	intPart := s
	frac := ""
	if dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)
	out := strings.Join(parts, ",") + frac
	if neg {
		out = "-" + out
	}
	return out
}

// EscapeMarkdownV2 转义 Telegram MarkdownV2 特殊字符
func EscapeMarkdownV2(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	for _, ch := range []string{"*", "_", "`", "[", "]", "(", ")", "~", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"} {
		text = strings.ReplaceAll(text, ch, `\`+ch)
	}
	return text
}
