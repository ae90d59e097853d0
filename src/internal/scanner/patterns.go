package scanner

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// 每个检测器都是 (源码文本) -> []Finding 的纯函数，互不影响、
// 不短路。源码为空时全部静默返回空集。
type sourceDetector func(s string) []Finding

var sourceDetectors = []sourceDetector{
	detectAdminAssignment,
	detectAdminCheck,
	detectXORZeroing,
	detectFullBalanceDeduct,
	detectHiddenMint,
	detectBlacklistMapping,
	detectShortRevert,
	detectHolderEnumeration,
	detectRenounceLike,
	detectOwnerMint,
	detectPunitiveTransfer,
	detectKillWindow,
	detectOwnerOnlyMint,
}

// ScanSource 跑完整个检测器目录。顺序固定，结果可重复。
func ScanSource(source string) []Finding {
	if source == "" {
		return nil
	}
	var out []Finding
	for _, det := range sourceDetectors {
		out = append(out, det(source)...)
	}
	return out
}

var (
	stateVarDeclPattern = regexp.MustCompile(`(?m)(?:^|\n)\s*(?:address|bool|uint\d*|mapping\s*\([^\)]*\))\s+(?:public|private|internal|external)?\s*([A-Za-z0-9_]{3,40})\s*(?:=|;)`)
	callerAssignPattern = regexp.MustCompile(`([A-Za-z0-9_]{3,40})\s*=\s*(_?msgSender\(\)|msg\.sender)\s*;`)
	callerCheckPattern  = regexp.MustCompile(`([A-Za-z0-9_]{3,40})\s*(!=|==)\s*msg\.sender`)
)

// stateVarNames 粗匹配合约级声明，如 `address private ops;`
func stateVarNames(s string) map[string]struct{} {
	vars := make(map[string]struct{})
	for _, m := range stateVarDeclPattern.FindAllStringSubmatch(s, -1) {
		vars[m[1]] = struct{}{}
	}
	return vars
}

func detectAdminAssignment(s string) []Finding {
	stateVars := stateVarNames(s)
	seen := make(map[string]struct{})
	for _, m := range callerAssignPattern.FindAllStringSubmatch(s, -1) {
		// 局部变量不算
		if _, ok := stateVars[m[1]]; ok {
			seen[m[1]] = struct{}{}
		}
	}
	names := sortedKeys(seen)
	out := make([]Finding, 0, len(names))
	for _, name := range names {
		out = append(out, Finding{
			Message:  fmt.Sprintf("Admin variable detected: `%s` assigned to msg.sender/_msgSender()", name),
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}
	return out
}

func detectAdminCheck(s string) []Finding {
	stateVars := stateVarNames(s)
	type check struct{ name, op string }
	seen := make(map[check]struct{})
	for _, m := range callerCheckPattern.FindAllStringSubmatch(s, -1) {
		name, op := m[1], m[2]
		if _, isState := stateVars[name]; !isState {
			// 非状态变量但全文引用超过 4 次也视为重要变量
			refs := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`).FindAllStringIndex(s, -1)
			if len(refs) <= 4 {
				continue
			}
		}
		seen[check{name, op}] = struct{}{}
	}
	checks := make([]check, 0, len(seen))
	for c := range seen {
		checks = append(checks, c)
	}
	sort.Slice(checks, func(i, j int) bool {
		if checks[i].name != checks[j].name {
			return checks[i].name < checks[j].name
		}
		return checks[i].op < checks[j].op
	})
	out := make([]Finding, 0, len(checks))
	for _, c := range checks {
		out = append(out, Finding{
			Message:  fmt.Sprintf("Access-check using custom admin var `%s` with operator `%s`", c.name, c.op),
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}
	return out
}

var xorPattern = regexp.MustCompile(`\b([A-Za-z0-9_]{2,40})\s*=\s*([A-Za-z0-9_]{2,40})\s*\^\s*([A-Za-z0-9_]{2,40})\b`)

// RE2 不支持反向引用，同变量异或靠比较捕获组实现
func detectXORZeroing(s string) []Finding {
	var out []Finding
	selfXOR, genericXOR := false, false
	for _, m := range xorPattern.FindAllStringSubmatch(s, -1) {
		genericXOR = true
		if m[1] == m[2] && m[2] == m[3] {
			selfXOR = true
		}
	}
	if selfXOR {
		out = append(out, Finding{
			Message:  "XOR-with-self pattern detected (likely zeroing balances via `x = x ^ x`)",
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}
	if genericXOR {
		out = append(out, Finding{
			Message:  "Potential bitwise-zeroing pattern found (var = var ^ var)",
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}
	return out
}

var fullDeductPattern = regexp.MustCompile(`deductAmount\s*=\s*balances\[[^\]]+\]\s*;|balances\[[^\]]+\]\s*-=\s*deductAmount`)

func detectFullBalanceDeduct(s string) []Finding {
	if !fullDeductPattern.MatchString(s) {
		return nil
	}
	return []Finding{{
		Message:  "Function that deducts entire balances[caller] detected (possible rug/burn user balances)",
		Severity: SeverityCritical,
		Origin:   OriginSource,
	}}
}

var hiddenMintPattern = regexp.MustCompile(`_totalSupply\s*[+\-*]?=|balances\[[^\]]+\]\s*\+=\s*[A-Za-z0-9_]+`)

func detectHiddenMint(s string) []Finding {
	if !hiddenMintPattern.MatchString(s) {
		return nil
	}
	return []Finding{{
		Message:  "Modifies _totalSupply or increases balances in code (possible hidden mint)",
		Severity: SeverityCritical,
		Origin:   OriginSource,
	}}
}

var (
	flagMappingPattern     = regexp.MustCompile(`(?i)\b(balancesto|balancesfrom|blacklist|blocklist|isBlocked|isBanned)\b`)
	transferFlagPattern    = regexp.MustCompile(`(?i)\b(ddsa|balancesto|balancesfrom|blacklist|isBlocked|isBanned)\b`)
	boolMappingDeclPattern = regexp.MustCompile(`(?i)mapping\s*\(\s*address\s*=>\s*bool\s*\)\s*(?:public|private|internal)?\s*([A-Za-z0-9_]{3,80})\s*;`)
)

func detectBlacklistMapping(s string) []Finding {
	var out []Finding
	if flagMappingPattern.MatchString(s) {
		out = append(out, Finding{
			Message:  "Mapping flags (balancesto/balancesfrom/blacklist) found, may be used to freeze or zero balances",
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}
	if transferFlagPattern.MatchString(s) {
		out = append(out, Finding{
			Message:  "Blacklist/flag mapping + custom transfer logic found (may lock/zero user balances)",
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}
	return out
}

var shortRevertPattern = regexp.MustCompile(`revert\(\s*"[^"]{1,6}"\s*\)`)

func detectShortRevert(s string) []Finding {
	if !shortRevertPattern.MatchString(s) {
		return nil
	}
	return []Finding{{
		Message:  "Short/obscure revert strings found (developer tried to hide reason)",
		Severity: SeverityCaution,
		Origin:   OriginSource,
	}}
}

var holdersPattern = regexp.MustCompile(`_Holders\s*\[|getTokenHolders\s*\(`)

func detectHolderEnumeration(s string) []Finding {
	if !holdersPattern.MatchString(s) {
		return nil
	}
	return []Finding{{
		Message:  "Contract collects token holder addresses (useful for targeted rug)",
		Severity: SeverityCaution,
		Origin:   OriginSource,
	}}
}

var (
	renounceLoosePattern = regexp.MustCompile(`(?i)function\s+[A-Za-z0-9_]*renounc[ei][A-Za-z0-9_]*\s*\(`)
	functionNamePattern  = regexp.MustCompile(`(?i)function\s+([A-Za-z0-9_]{3,80})\s*\(`)
)

const canonicalRenounce = "renounceownership"

// detectRenounceLike 两层检测：宽松的拼写变体命中一条总告警，
// 再对每个含 renounce 但缺 ownership 的函数名做编辑距离判定
func detectRenounceLike(s string) []Finding {
	var out []Finding
	if renounceLoosePattern.MatchString(s) {
		out = append(out, Finding{
			Message:  "Suspicious renounce-like function name found (possible obfuscated owner mint/privilege)",
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}
	for _, m := range functionNamePattern.FindAllStringSubmatch(s, -1) {
		fname := m[1]
		lower := strings.ToLower(fname)
		if !strings.Contains(lower, "renounce") || strings.Contains(lower, "ownership") {
			continue
		}
		if dist := levenshtein(lower, canonicalRenounce); dist <= 3 {
			out = append(out, Finding{
				Message:  fmt.Sprintf("Obfuscated renounce-like function name detected: %s (lev=%d)", fname, dist),
				Severity: SeverityCritical,
				Origin:   OriginSource,
			})
		} else {
			out = append(out, Finding{
				Message:  fmt.Sprintf("Renounce-like function name (unusual): %s", fname),
				Severity: SeverityCaution,
				Origin:   OriginSource,
			})
		}
	}
	return out
}

var (
	directMintPattern   = regexp.MustCompile(`(?i)_balances\s*\[\s*(?:_?msgSender\(\)|msg\.sender)\s*\]\s*\+=\s*totalSupply\s*\(\s*\)\s*\*\s*([0-9_]+)`)
	totalSupplyVarHint  = regexp.MustCompile(`([A-Za-z0-9_]{3,80})\s*=\s*totalSupply\s*\(\s*\)\s*;`)
	ownerMintMultiplier = 10
)

// detectOwnerMint 三条路径找 `balances[owner] += totalSupply() * N`：
// 直接写 msg.sender、写 owner 别名变量、先存 totalSupply 再乘
func detectOwnerMint(s string) []Finding {
	type hit struct {
		target string
		mult   int
		parsed bool
	}
	var hits []hit

	ownerVars := make(map[string]struct{})
	for _, m := range callerAssignPattern.FindAllStringSubmatch(s, -1) {
		ownerVars[m[1]] = struct{}{}
	}
	for _, name := range sortedKeys(ownerVars) {
		pat := regexp.MustCompile(`(?i)_balances\s*\[\s*` + regexp.QuoteMeta(name) + `\s*\]\s*\+=\s*totalSupply\s*\(\s*\)\s*\*\s*([0-9_]+)`)
		if m := pat.FindStringSubmatch(s); m != nil {
			mult, ok := parseMultiplier(m[1])
			hits = append(hits, hit{target: name, mult: mult, parsed: ok})
		}
	}
	if m := directMintPattern.FindStringSubmatch(s); m != nil {
		mult, ok := parseMultiplier(m[1])
		hits = append(hits, hit{target: "_msgSender/msg.sender", mult: mult, parsed: ok})
	}
	if m := totalSupplyVarHint.FindStringSubmatch(s); m != nil {
		pat := regexp.MustCompile(`(?i)_balances\s*\[\s*(?:_?msgSender\(\)|msg\.sender)\s*\]\s*\+=\s*` + regexp.QuoteMeta(m[1]) + `\s*\*\s*([0-9_]+)`)
		if m2 := pat.FindStringSubmatch(s); m2 != nil {
			mult, ok := parseMultiplier(m2[1])
			hits = append(hits, hit{target: m[1], mult: mult, parsed: ok})
		}
	}

	var out []Finding
	for _, h := range hits {
		switch {
		case !h.parsed:
			out = append(out, Finding{
				Message:  fmt.Sprintf("Owner-mint pattern detected targeting %s (multiplier unparsable)", h.target),
				Severity: SeverityCritical,
				Origin:   OriginSource,
			})
		case h.mult >= ownerMintMultiplier:
			out = append(out, Finding{
				Message:  fmt.Sprintf("Owner mint exploit detected targeting %s (multiplier=%d)", h.target, h.mult),
				Severity: SeverityCritical,
				Origin:   OriginSource,
			})
		default:
			out = append(out, Finding{
				Message:  fmt.Sprintf("Small owner-mint-like pattern found (multiplier=%d)", h.mult),
				Severity: SeverityCaution,
				Origin:   OriginSource,
			})
		}
	}
	return out
}

var (
	transferHeaderPattern = regexp.MustCompile(`(?i)function\s+(_?internaltransfer|_transfer|internalTransfer|transferFrom|transfer)[^\{]*\{`)
	punitiveAmount1       = regexp.MustCompile(`(?i)amount\s*=\s*amount\s*-\s*\(?\s*_?balances?\s*\[\s*[^\]]+\s*\]\s*\*\s*[0-9_]+`)
	punitiveAmount2       = regexp.MustCompile(`(?i)amount\s*=\s*_?balances?\s*\[[^\]]+\]\s*\*\s*[0-9_]+`)
	punitiveAmount3       = regexp.MustCompile(`(?i)amount\s*=\s*amount\s*-\s*\([^\)]*balance[^\)]*\)`)
	amountMutation        = regexp.MustCompile(`(?i)amount\s*=\s*amount|amount\s*-[=]?`)
	balancesLookup        = regexp.MustCompile(`_balances?\s*\[`)
)

// 邻近窗口：mapping 查询与 amount 改写相隔不超过这个字符数才算关联。
// 这是"同一代码块"的文本近似，不做 AST 解析。
const punitiveProximityWindow = 300

// 函数体窗口：头部 { 之后最多看这么多字符找闭括号。
// RE2 的重复上限是 1000，窗口用切片实现而不是量词。
const (
	transferBodyWindow = 4000
	mintBodyWindow     = 2000
)

// bodyAfterBrace 从 { 之后截到窗口内第一个 }，窗口里没有闭括号视为无函数体
func bodyAfterBrace(s string, braceEnd, window int) (string, bool) {
	end := braceEnd + window
	if end > len(s) {
		end = len(s)
	}
	rel := strings.IndexByte(s[braceEnd:end], '}')
	if rel < 0 {
		return "", false
	}
	return s[braceEnd : braceEnd+rel], true
}

func detectPunitiveTransfer(s string) []Finding {
	loc := transferHeaderPattern.FindStringIndex(s)
	if loc == nil {
		return nil
	}
	body, ok := bodyAfterBrace(s, loc[1], transferBodyWindow)
	if !ok {
		return nil
	}
	var out []Finding

	if punitiveAmount1.MatchString(body) || punitiveAmount2.MatchString(body) || punitiveAmount3.MatchString(body) {
		out = append(out, Finding{
			Message:  "Punitive transfer logic detected (amount reduced based on balance)",
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}

	mappings := make(map[string]struct{})
	for _, m := range boolMappingDeclPattern.FindAllStringSubmatch(s, -1) {
		mappings[m[1]] = struct{}{}
	}
	for _, name := range sortedKeys(mappings) {
		lookup := regexp.MustCompile(`(` + regexp.QuoteMeta(name) + `\s*\[[^\]]+\])`)
		flagged := false
		for _, loc := range lookup.FindAllStringIndex(body, -1) {
			end := loc[0] + punitiveProximityWindow
			if end > len(body) {
				end = len(body)
			}
			window := body[loc[0]:end]
			if amountMutation.MatchString(window) || balancesLookup.MatchString(window) {
				flagged = true
				break
			}
		}
		if flagged {
			out = append(out, Finding{
				Message:  fmt.Sprintf("Mapping '%s' used to conditionally modify amount/balances in transfer", name),
				Severity: SeverityCritical,
				Origin:   OriginSource,
			})
		}
	}
	return out
}

var (
	killNamePattern   = regexp.MustCompile(`_killEndTime|killEndTime`)
	killSimplePattern = regexp.MustCompile(`block\.timestamp\s*<=\s*_killEndTime`)
	killAssignPattern = regexp.MustCompile(`(?i)([A-Za-z0-9_]{3,80})\s*=\s*block\.timestamp\s*\+\s*([0-9_]+)`)
)

// detectKillWindow 要求时间变量既被赋值又参与比较，单独出现不算
func detectKillWindow(s string) []Finding {
	var out []Finding
	if killNamePattern.MatchString(s) && killSimplePattern.MatchString(s) {
		out = append(out, Finding{
			Message:  "Kill-window logic detected (temporary burn/zeroing of transfers during time window)",
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}
	found := false
	for _, m := range killAssignPattern.FindAllStringSubmatch(s, -1) {
		name := regexp.QuoteMeta(m[1])
		before := regexp.MustCompile(`block\.timestamp\s*(?:<=|<|>=|>)\s*` + name)
		after := regexp.MustCompile(name + `\s*(?:>=|>|<=|<)\s*block\.timestamp`)
		if before.MatchString(s) || after.MatchString(s) {
			found = true
			break
		}
	}
	if found {
		out = append(out, Finding{
			Message:  "Kill-window logic detected (time var set and used in conditional)",
			Severity: SeverityCritical,
			Origin:   OriginSource,
		})
	}
	return out
}

var (
	functionHeaderPattern = regexp.MustCompile(`(?i)function\s+([A-Za-z0-9_]{3,80})[^\{]*\{`)
	onlyOwnerPattern      = regexp.MustCompile(`(?i)\bonlyOwner\b`)
	ownerMintInBody1      = regexp.MustCompile(`(?i)_balances\s*\[\s*(?:_?msgSender\(\)|msg\.sender|[A-Za-z0-9_]{3,80})\s*\]\s*\+=\s*totalSupply\s*\(`)
	ownerMintInBody2      = regexp.MustCompile(`(?i)totalSupply\s*\(\s*\)\s*;[\s\S]{0,200}[+*0-9_]`)
)

func detectOwnerOnlyMint(s string) []Finding {
	var out []Finding
	for _, m := range functionHeaderPattern.FindAllStringSubmatchIndex(s, -1) {
		header := s[m[0]:m[1]]
		if !onlyOwnerPattern.MatchString(header) {
			continue
		}
		fbody, ok := bodyAfterBrace(s, m[1], mintBodyWindow)
		if !ok {
			continue
		}
		if ownerMintInBody1.MatchString(fbody) || ownerMintInBody2.MatchString(fbody) {
			out = append(out, Finding{
				Message:  fmt.Sprintf("Owner-only function '%s' mints/assigns large supply to owner", s[m[2]:m[3]]),
				Severity: SeverityCritical,
				Origin:   OriginSource,
			})
		}
	}
	return out
}

// levenshtein 经典 DP 编辑距离，无换位
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr := make([]int, len(b)+1)
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev = curr
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func parseMultiplier(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(raw, "_", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
