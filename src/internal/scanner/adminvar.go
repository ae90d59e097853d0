package scanner

import "regexp"

// 常见的良性名字，太泛不足以说明隐藏管理员
var ignoredAdminVars = map[string]struct{}{
	"owner": {}, "_owner": {}, "spender": {}, "msgSender": {},
	"burnAddress": {}, "recipient": {}, "to": {}, "from": {}, "getFees": {},
}

var adminCompareNamePattern = regexp.MustCompile(`([A-Za-z0-9_]{3,60})\s*(?:==|!=)\s*msg\.sender`)

// DetectAdminAliases 找隐藏管理员变量：必须同时满足
//  1. 合约级状态变量声明
//  2. 被赋值为 msg.sender/_msgSender()
//  3. 在 ==/!= 判断中与 msg.sender 比较
//
// 三者缺一不可，局部变量和一次性使用全部排除。结果按名字排序。
func DetectAdminAliases(source string) []string {
	if source == "" {
		return nil
	}
	stateVars := stateVarNames(source)

	compared := make(map[string]struct{})
	for _, m := range adminCompareNamePattern.FindAllStringSubmatch(source, -1) {
		compared[m[1]] = struct{}{}
	}

	aliases := make(map[string]struct{})
	for _, m := range callerAssignPattern.FindAllStringSubmatch(source, -1) {
		name := m[1]
		if _, ignored := ignoredAdminVars[name]; ignored {
			continue
		}
		if _, isState := stateVars[name]; !isState {
			continue
		}
		if _, isCompared := compared[name]; !isCompared {
			continue
		}
		aliases[name] = struct{}{}
	}
	return sortedKeys(aliases)
}
