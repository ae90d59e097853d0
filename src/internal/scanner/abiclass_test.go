package scanner

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sig(name string, inputs ...string) FunctionSignature {
	s := FunctionSignature{Name: name}
	for _, in := range inputs {
		s.RawInputs = append(s.RawInputs, in)
		s.Inputs = append(s.Inputs, classifyParam(in))
	}
	return s
}

func TestClassifyFunction(t *testing.T) {
	tests := []struct {
		name string
		sig  FunctionSignature
		want FunctionTag
	}{
		{"transfer to burn", sig("transferToBurn", "address"), TagCritical},
		{"fee keyword", sig("updateMarketingFee", "uint256"), TagFeeTax},
		{"treasury keyword", sig("setTreasuryWallet", "address"), TagFeeTax},
		{"addr perm bool", sig("setExcluded", "address", "bool"), TagAddressPermission},
		{"addr perm uint", sig("setLimit", "address", "uint256"), TagAddressPermission},
		// 同时命中收费关键词和权限形参时，权限类优先级更高
		{"addr perm wins over fee", sig("setFeeExempt", "address", "bool"), TagAddressPermission},
		{"setter verb", sig("enableTrading"), TagSetter},
		{"mint setter", sig("mintTokens", "uint256"), TagSetter},
		{"transferOwnership excluded", sig("transferOwnership", "address"), TagOther},
		{"unmatched", sig("getVersion"), TagOther},
		{"addr second param other", sig("doThing", "address", "string"), TagOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyFunction(tt.sig))
		})
	}
}

func TestClassifyABI_StandardFunctionsSkipped(t *testing.T) {
	fns := []FunctionSignature{
		sig("transfer", "address", "uint256"),
		sig("approve", "address", "uint256"),
		sig("balanceOf", "address"),
		sig("burn", "uint256"),
	}
	out := ClassifyABI(fns, 6, 8)
	assert.Empty(t, out.Critical)
	assert.Empty(t, out.AddrPerm)
	assert.Empty(t, out.FeeTax)
	assert.Empty(t, out.Setter)
}

func TestClassifyABI_OrderIndependent(t *testing.T) {
	fns := []FunctionSignature{
		sig("setTaxRate", "uint256"),
		sig("transferToBurn", "address"),
		sig("setBlacklisted", "address", "bool"),
		sig("enableTrading"),
	}
	reversed := make([]FunctionSignature, len(fns))
	for i := range fns {
		reversed[len(fns)-1-i] = fns[i]
	}

	a := ClassifyABI(fns, 6, 8)
	b := ClassifyABI(reversed, 6, 8)
	assert.Equal(t, a, b)
}

func TestClassifyABI_DuplicateNameKeepsHighestPrecedence(t *testing.T) {
	// 同名函数两个重载：一个普通 setter 形参，一个权限形参
	fns := []FunctionSignature{
		sig("setRule", "uint256"),
		sig("setRule", "address", "bool"),
	}
	out := ClassifyABI(fns, 6, 8)
	require.Len(t, out.AddrPerm, 1)
	assert.Empty(t, out.Setter)
	assert.Equal(t, 0, out.SetterCount)
}

func TestClassifyABI_Caps(t *testing.T) {
	var fns []FunctionSignature
	for i := 0; i < 10; i++ {
		fns = append(fns, sig(fmt.Sprintf("setTax%02d", i), "uint256"))
	}
	for i := 0; i < 12; i++ {
		fns = append(fns, sig(fmt.Sprintf("enableMode%02d", i)))
	}

	out := ClassifyABI(fns, 6, 8)
	assert.Len(t, out.FeeTax, 6)
	assert.Equal(t, 10, out.FeeTaxCount)
	assert.Len(t, out.Setter, 8)
	assert.Equal(t, 12, out.SetterCount)
}

func TestClassifyABI_Messages(t *testing.T) {
	out := ClassifyABI([]FunctionSignature{
		sig("transferToBurn", "address"),
		sig("setExempt", "address", "bool"),
	}, 6, 8)

	require.Len(t, out.Critical, 1)
	assert.Equal(t, "Critical Control Function: transferToBurn", out.Critical[0].Message)
	assert.Equal(t, SeverityCritical, out.Critical[0].Severity)

	require.Len(t, out.AddrPerm, 1)
	assert.Equal(t, "Address Permission Control: setExempt(address,bool)", out.AddrPerm[0].Message)
	// 权限类默认绿色，管理员别名出现时才被聚合器改红
	assert.Equal(t, SeveritySafe, out.AddrPerm[0].Severity)
}

func TestParseFunctions(t *testing.T) {
	raw := json.RawMessage(`[
		{"type":"function","name":"setExempt","inputs":[{"type":"address"},{"type":"bool"}]},
		{"type":"event","name":"Transfer","inputs":[]},
		{"type":"function","name":"decimals","inputs":[]},
		{"type":"constructor","inputs":[]}
	]`)
	fns := ParseFunctions(raw)
	require.Len(t, fns, 2)
	assert.Equal(t, "setExempt", fns[0].Name)
	assert.Equal(t, []ParamKind{ParamAddress, ParamBool}, fns[0].Inputs)
	assert.Equal(t, "decimals", fns[1].Name)

	assert.Nil(t, ParseFunctions(nil))
	assert.Nil(t, ParseFunctions(json.RawMessage(`not json`)))
}
