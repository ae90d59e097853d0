package scanner

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/padicalls/padiscan/src/internal/chain"
)

// Severity 对应报告行的颜色标记（渲染层映射成 emoji）
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityCaution
	SeverityInfo
	SeveritySafe
)

// Origin 标记一条 Finding 出自哪个检测器
type Origin int

const (
	OriginABI Origin = iota
	OriginSource
	OriginAdminVar
	OriginAggregator
)

type Finding struct {
	Message  string
	Severity Severity
	Origin   Origin
}

// FunctionTag 的数值即优先级：越小越高。同名函数多规则命中时只保留最高优先级标签。
type FunctionTag int

const (
	TagCritical FunctionTag = iota
	TagAddressPermission
	TagFeeTax
	TagSetter
	TagOther
)

// ParamKind 是参数类型的语义归类，分类器只关心这四类
type ParamKind int

const (
	ParamAddress ParamKind = iota
	ParamBool
	ParamUint
	ParamOther
)

type FunctionSignature struct {
	Name      string
	Inputs    []ParamKind
	RawInputs []string // 原始 solidity 类型串，用于报告展示
}

// ParseFunctions 从 ABI JSON 数组提取函数签名；非函数条目忽略
func ParseFunctions(raw json.RawMessage) []FunctionSignature {
	if len(raw) == 0 {
		return nil
	}
	var entries []struct {
		Type   string `json:"type"`
		Name   string `json:"name"`
		Inputs []struct {
			Type string `json:"type"`
		} `json:"inputs"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	out := make([]FunctionSignature, 0, len(entries))
	for _, e := range entries {
		if e.Type != "function" || e.Name == "" {
			continue
		}
		sig := FunctionSignature{Name: e.Name}
		for _, in := range e.Inputs {
			sig.RawInputs = append(sig.RawInputs, in.Type)
			sig.Inputs = append(sig.Inputs, classifyParam(in.Type))
		}
		out = append(out, sig)
	}
	return out
}

func classifyParam(solType string) ParamKind {
	switch {
	case strings.HasPrefix(solType, "address"):
		return ParamAddress
	case solType == "bool":
		return ParamBool
	case strings.HasPrefix(solType, "uint"):
		return ParamUint
	default:
		return ParamOther
	}
}

// Verdict 是可升级性/所有权的最终结论
type Verdict int

const (
	VerdictUnknownOwnership Verdict = iota
	VerdictNotRenounced
	VerdictRenounced
	VerdictOwnerActiveNoABI
	VerdictRenouncedNoABI
)

// HoneypotVerdict 由买卖模拟结果推导
type HoneypotVerdict int

const (
	HoneypotUnknown HoneypotVerdict = iota
	HoneypotOK
	HoneypotDetected
	HoneypotFullTax
)

// TaxValue 区分有效百分比与 "Fail" 哨兵
type TaxValue struct {
	Valid   bool
	Percent float64
}

// TaxSimulationResult 是单个模拟器版本的解读结果。
// Err 非空表示模拟根本没跑成（模拟器缺失、调用 revert、超时）。
type TaxSimulationResult struct {
	Version     string
	BuyTax      TaxValue
	SellTax     TaxValue
	BuySuccess  bool
	SellSuccess bool
	Block       uint64
	Err         string
}

// LiquidityPosition 汇总 LP 燃烧与池内供应占比。
// Applicable=false 表示 LP 总量或代币总量为零，比例无意义。
type LiquidityPosition struct {
	PairAddress        string
	Source             string
	Applicable         bool
	PercentBurnt       float64
	PercentInPool      float64
	PercentSupplyBurnt float64
}

// ScanReport 每次扫描新建，构造后不再修改
type ScanReport struct {
	Address      string
	Metadata     chain.Metadata
	VerifyStatus string
	Verified     bool
	HasABI       bool
	Owner        string
	OwnerKnown   bool
	OwnerBurned  bool
	AdminAliases []string
	Verdict      Verdict
	Findings     []Finding
	TaxV2        TaxSimulationResult
	TaxV1        TaxSimulationResult
	BestTax      TaxSimulationResult
	Honeypot     HoneypotVerdict
	Liquidity    LiquidityPosition
	Market       *MarketStats
	TotalSupply  *big.Int
}

// MarketStats 来自行情聚合器，拿不到时整体为 nil
type MarketStats struct {
	PriceUSD       float64
	LiquidityUSD   float64
	PriceChange24h float64
	Volume24h      float64
}
