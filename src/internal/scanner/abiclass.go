package scanner

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// 标准代币接口函数不参与分类
var standardERC20Functions = map[string]struct{}{
	"totalSupply": {}, "balanceOf": {}, "transfer": {}, "transferFrom": {},
	"approve": {}, "allowance": {}, "name": {}, "symbol": {}, "decimals": {},
	"owner": {}, "increaseAllowance": {}, "decreaseAllowance": {},
	"getTokenHolders": {}, "burn": {}, "burnFrom": {},
}

// transferOwnership 虽然命中 setter 动词前缀，但属于正常所有权接口
var safeSetterExcludes = map[string]struct{}{
	"transferownership":  {},
	"_transferownership": {},
}

var feeTaxKeywords = []string{
	"fee", "tax", "settax", "setfee", "gettax", "getfee",
	"treasury", "marketing", "liquidity",
}

var setterVerbPattern = regexp.MustCompile(`(?i)^(set|enable|disable|update|grant|revoke|transfer|withdraw|mint|burn)`)

// ABIClassification 分桶保存分类结果；FeeTax/Setter 有展示上限，
// 超出的只计数不逐条列出
type ABIClassification struct {
	Critical    []Finding
	AddrPerm    []Finding
	FeeTax      []Finding
	Setter      []Finding
	FeeTaxCount int
	SetterCount int
}

// classifyFunction 跑全部规则，多条命中时取优先级最高的标签。
// 例如 setFeeExempt(address,bool) 同时命中收费关键词和权限形参，
// 权限类优先级更高胜出。
func classifyFunction(sig FunctionSignature) FunctionTag {
	lname := strings.ToLower(sig.Name)
	best := TagOther

	if strings.Contains(lname, "transfertoburn") {
		best = TagCritical
	}
	// (address, bool|uint, ...) 形参模式：典型的豁免/限制开关
	if len(sig.Inputs) >= 2 && sig.Inputs[0] == ParamAddress &&
		(sig.Inputs[1] == ParamBool || sig.Inputs[1] == ParamUint) {
		if TagAddressPermission < best {
			best = TagAddressPermission
		}
	}
	for _, kw := range feeTaxKeywords {
		if strings.Contains(lname, kw) {
			if TagFeeTax < best {
				best = TagFeeTax
			}
			break
		}
	}
	if setterVerbPattern.MatchString(sig.Name) {
		if _, excluded := safeSetterExcludes[lname]; !excluded {
			if TagSetter < best {
				best = TagSetter
			}
		}
	}
	return best
}

// ClassifyABI 遍历非标准函数并分桶。保证确定性：同名函数去重后
// 只保留最高优先级标签，输出按函数名排序，与 ABI 数组顺序无关。
func ClassifyABI(fns []FunctionSignature, maxFeeTax, maxSetter int) ABIClassification {
	type tagged struct {
		sig FunctionSignature
		tag FunctionTag
	}
	best := make(map[string]tagged)

	for _, sig := range fns {
		if _, std := standardERC20Functions[sig.Name]; std {
			continue
		}
		tag := classifyFunction(sig)
		if tag == TagOther {
			continue
		}
		prev, seen := best[sig.Name]
		if !seen || tag < prev.tag {
			best[sig.Name] = tagged{sig: sig, tag: tag}
		}
	}

	names := make([]string, 0, len(best))
	for name := range best {
		names = append(names, name)
	}
	sort.Strings(names)

	var out ABIClassification
	for _, name := range names {
		t := best[name]
		switch t.tag {
		case TagCritical:
			out.Critical = append(out.Critical, Finding{
				Message:  fmt.Sprintf("Critical Control Function: %s", name),
				Severity: SeverityCritical,
				Origin:   OriginABI,
			})
		case TagAddressPermission:
			t0, t1 := "address", "?"
			if len(t.sig.RawInputs) >= 1 {
				t0 = t.sig.RawInputs[0]
			}
			if len(t.sig.RawInputs) >= 2 {
				t1 = t.sig.RawInputs[1]
			}
			out.AddrPerm = append(out.AddrPerm, Finding{
				Message:  fmt.Sprintf("Address Permission Control: %s(%s,%s)", name, t0, t1),
				Severity: SeveritySafe,
				Origin:   OriginABI,
			})
		case TagFeeTax:
			out.FeeTaxCount++
			if out.FeeTaxCount <= maxFeeTax {
				out.FeeTax = append(out.FeeTax, Finding{
					Message:  fmt.Sprintf("Fee/Limit/Tax control: %s", name),
					Severity: SeverityCaution,
					Origin:   OriginABI,
				})
			}
		case TagSetter:
			out.SetterCount++
			if out.SetterCount <= maxSetter {
				out.Setter = append(out.Setter, Finding{
					Message:  fmt.Sprintf("Setter-like: %s", name),
					Severity: SeverityCaution,
					Origin:   OriginABI,
				})
			}
		}
	}
	return out
}
