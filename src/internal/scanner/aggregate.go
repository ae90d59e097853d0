package scanner

import "fmt"

// AggregateInput 汇总三个检测器的完整输出加所有权状态。
// 聚合器只看哨兵字段，从不处理原始错误。
type AggregateInput struct {
	Verified     bool
	HasABI       bool
	ABIClass     ABIClassification
	SourceFinds  []Finding
	AdminAliases []string
	OwnerKnown   bool
	OwnerBurned  bool
	MaxFeeTax    int
	MaxSetter    int
}

const (
	msgUnverified   = "Never buy unverified contracts, the owner is hiding something"
	msgNoABI        = "Contract verified but ABI unavailable, function analysis impossible"
	msgNoDangerous  = "Safe: no dangerous calls detected"
	msgNoSuspicious = "No suspicious non-ERC20 functions found"
)

// Aggregate 按固定决策表自上而下求值，第一条命中即定结论：
//
//	未验证 > 无 ABI > 管理员别名 > 所有权已放弃 > 所有者在位 > 所有者未知
//
// 管理员别名压过 owner 烧毁：次级管理通道存在时绝不宣布安全。
func Aggregate(in AggregateInput) (Verdict, []Finding) {
	if !in.Verified {
		findings := append([]Finding{{
			Message:  msgUnverified,
			Severity: SeverityCritical,
			Origin:   OriginAggregator,
		}}, in.SourceFinds...)
		return VerdictUnknownOwnership, dedupe(findings)
	}

	if !in.HasABI {
		verdict := VerdictUnknownOwnership
		switch {
		case in.OwnerKnown && in.OwnerBurned:
			verdict = VerdictRenouncedNoABI
		case in.OwnerKnown:
			verdict = VerdictOwnerActiveNoABI
		}
		return verdict, []Finding{{
			Message:  msgNoABI,
			Severity: SeverityCaution,
			Origin:   OriginAggregator,
		}}
	}

	if len(in.AdminAliases) > 0 {
		var out []Finding
		for _, f := range in.ABIClass.AddrPerm {
			f.Severity = SeverityCritical
			out = append(out, f)
		}
		out = append(out, in.ABIClass.Critical...)
		out = append(out, in.SourceFinds...)
		for _, alias := range in.AdminAliases {
			out = append(out, Finding{
				Message:  fmt.Sprintf("Admin Variable Detected: `%s` assigned to multiple-ownership", alias),
				Severity: SeverityCritical,
				Origin:   OriginAdminVar,
			})
		}
		// 分类计数只给摘要行，不逐条展示
		if in.ABIClass.FeeTaxCount > 0 {
			out = append(out, Finding{
				Message:  fmt.Sprintf("Fee/Tax related functions detected: %d (showing up to %d)", in.ABIClass.FeeTaxCount, in.MaxFeeTax),
				Severity: SeverityCaution,
				Origin:   OriginAggregator,
			})
		}
		if in.ABIClass.SetterCount > 0 {
			out = append(out, Finding{
				Message:  fmt.Sprintf("Setter-like functions detected: %d (showing up to %d)", in.ABIClass.SetterCount, in.MaxSetter),
				Severity: SeverityCaution,
				Origin:   OriginAggregator,
			})
		}
		return VerdictNotRenounced, dedupe(out)
	}

	combined := combineFindings(in)

	if in.OwnerKnown && in.OwnerBurned {
		// 原有的绿色行先丢弃，再把黄色降级为绿，红色保持
		recolored := make([]Finding, 0, len(combined))
		for _, f := range combined {
			if f.Severity == SeveritySafe {
				continue
			}
			if f.Severity != SeverityCritical {
				f.Severity = SeveritySafe
			}
			recolored = append(recolored, f)
		}
		if len(recolored) == 0 {
			recolored = []Finding{{
				Message:  msgNoDangerous,
				Severity: SeveritySafe,
				Origin:   OriginAggregator,
			}}
		}
		return VerdictRenounced, dedupe(recolored)
	}

	if len(combined) == 0 {
		combined = []Finding{{
			Message:  msgNoSuspicious,
			Severity: SeveritySafe,
			Origin:   OriginAggregator,
		}}
	}
	if in.OwnerKnown {
		return VerdictNotRenounced, dedupe(combined)
	}
	return VerdictUnknownOwnership, dedupe(combined)
}

// combineFindings 常规路径的完整条目：权限类、致命类、源码类、
// 收费/设置类（带上限），超额的加一行计数说明
func combineFindings(in AggregateInput) []Finding {
	var out []Finding
	out = append(out, in.ABIClass.AddrPerm...)
	out = append(out, in.ABIClass.Critical...)
	out = append(out, in.SourceFinds...)
	out = append(out, in.ABIClass.FeeTax...)
	if in.ABIClass.FeeTaxCount > in.MaxFeeTax {
		out = append(out, Finding{
			Message:  fmt.Sprintf("...and %d more fee/tax functions not listed", in.ABIClass.FeeTaxCount-in.MaxFeeTax),
			Severity: SeverityCaution,
			Origin:   OriginAggregator,
		})
	}
	out = append(out, in.ABIClass.Setter...)
	if in.ABIClass.SetterCount > in.MaxSetter {
		out = append(out, Finding{
			Message:  fmt.Sprintf("...and %d more setter-like functions not listed", in.ABIClass.SetterCount-in.MaxSetter),
			Severity: SeverityCaution,
			Origin:   OriginAggregator,
		})
	}
	return out
}

// dedupe 按消息去重，保留首次出现的顺序
func dedupe(findings []Finding) []Finding {
	seen := make(map[string]struct{}, len(findings))
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if _, dup := seen[f.Message]; dup {
			continue
		}
		seen[f.Message] = struct{}{}
		out = append(out, f)
	}
	return out
}
