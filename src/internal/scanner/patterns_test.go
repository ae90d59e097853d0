package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSource_EmptyInput(t *testing.T) {
	assert.Nil(t, ScanSource(""))
}

func TestScanSource_Idempotent(t *testing.T) {
	src := `
contract Evil {
    address private hiddenBoss;
    mapping(address => bool) blacklist;
    constructor() { hiddenBoss = msg.sender; }
    function check() internal { require(hiddenBoss == msg.sender); revert("x"); }
}`
	first := ScanSource(src)
	second := ScanSource(src)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestDetectAdminAssignment(t *testing.T) {
	src := `
contract T {
    address private boss;
    function f() public {
        boss = msg.sender;
        tmp = msg.sender;
    }
}`
	// tmp 没有合约级声明，按局部变量跳过；boss 是状态变量
	out := detectAdminAssignment(src)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "`boss`")
	assert.Equal(t, SeverityCritical, out[0].Severity)
}

func TestDetectAdminCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		hits int
	}{
		{
			name: "state var compared",
			src: `
address private gate;
function g() { require(gate == msg.sender); }`,
			hits: 1,
		},
		{
			name: "widely used non-state var",
			src: `function g(address ctl) {
				require(ctl != msg.sender);
				f(ctl); h(ctl); i(ctl); j(ctl); k(ctl);
			}`,
			hits: 1,
		},
		{
			name: "rarely used local",
			src:  `function g(address tmpvar) { require(tmpvar == msg.sender); }`,
			hits: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, detectAdminCheck(tt.src), tt.hits)
		})
	}
}

func TestDetectXORZeroing(t *testing.T) {
	self := detectXORZeroing(`bal = bal ^ bal;`)
	require.Len(t, self, 2) // 同变量异或也命中泛化模式
	assert.Contains(t, self[0].Message, "XOR-with-self")

	generic := detectXORZeroing(`bal = foo ^ bar;`)
	require.Len(t, generic, 1)
	assert.Contains(t, generic[0].Message, "bitwise-zeroing")

	assert.Empty(t, detectXORZeroing(`bal = foo + bar;`))
}

func TestDetectFullBalanceDeduct(t *testing.T) {
	assert.Len(t, detectFullBalanceDeduct(`deductAmount = balances[user];`), 1)
	assert.Len(t, detectFullBalanceDeduct(`balances[user] -= deductAmount;`), 1)
	assert.Empty(t, detectFullBalanceDeduct(`balances[user] -= amount;`))
}

func TestDetectHiddenMint(t *testing.T) {
	assert.Len(t, detectHiddenMint(`_totalSupply += extra;`), 1)
	assert.Len(t, detectHiddenMint(`balances[owner] += bonus;`), 1)
	assert.Empty(t, detectHiddenMint(`balances[owner] = 0;`))
}

func TestDetectBlacklistMapping(t *testing.T) {
	out := detectBlacklistMapping(`mapping(address => bool) isBlocked;`)
	assert.Len(t, out, 2) // 冻结类与转账类两条告警都命中

	ddsa := detectBlacklistMapping(`mapping(address => bool) ddsa;`)
	assert.Len(t, ddsa, 1)

	assert.Empty(t, detectBlacklistMapping(`mapping(address => bool) allowed;`))
}

func TestDetectShortRevert(t *testing.T) {
	assert.Len(t, detectShortRevert(`revert("x1");`), 1)
	assert.Empty(t, detectShortRevert(`revert("insufficient balance");`))
}

func TestDetectHolderEnumeration(t *testing.T) {
	assert.Len(t, detectHolderEnumeration(`_Holders[idx] = account;`), 1)
	assert.Len(t, detectHolderEnumeration(`getTokenHolders();`), 1)
	assert.Empty(t, detectHolderEnumeration(`holders are cool`))
}

func TestDetectRenounceLike(t *testing.T) {
	// 拼错的 renounce：宽松模式 + 编辑距离都命中
	out := detectRenounceLike(`function renounceOwnersip() public {}`)
	require.Len(t, out, 2)
	assert.Contains(t, out[1].Message, "lev=1")
	assert.Equal(t, SeverityCritical, out[1].Severity)

	// 正常的 renounceOwnership 含 ownership，不做距离判定
	normal := detectRenounceLike(`function renounceOwnership() public onlyOwner {}`)
	require.Len(t, normal, 1) // 只剩宽松模式那条

	// 距离太远的 renounce 变体降为黄色
	far := detectRenounceLike(`function renounceAllTheThings() public {}`)
	require.Len(t, far, 2)
	assert.Equal(t, SeverityCaution, far[1].Severity)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"renounceownership", "renounceownership", 0},
		{"renounceownersip", "renounceownership", 1},
		{"renounceownershlp", "renounceownership", 1},
		{"abc", "xyz", 3},
		{"", "abc", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestDetectOwnerMint(t *testing.T) {
	big := detectOwnerMint(`_balances[_msgSender()] += totalSupply() * 75000;`)
	require.Len(t, big, 1)
	assert.Equal(t, SeverityCritical, big[0].Severity)
	assert.Contains(t, big[0].Message, "multiplier=75000")

	small := detectOwnerMint(`_balances[msg.sender] += totalSupply() * 2;`)
	require.Len(t, small, 1)
	assert.Equal(t, SeverityCaution, small[0].Severity)

	// 经由 owner 别名变量
	viaVar := detectOwnerMint(`
boss = msg.sender;
_balances[boss] += totalSupply() * 100;`)
	require.Len(t, viaVar, 1)
	assert.Contains(t, viaVar[0].Message, "boss")

	// 先存 totalSupply 再乘
	indirect := detectOwnerMint(`
supplyCache = totalSupply();
_balances[msg.sender] += supplyCache * 50;`)
	require.Len(t, indirect, 1)
	assert.Contains(t, indirect[0].Message, "supplyCache")

	assert.Empty(t, detectOwnerMint(`_balances[msg.sender] += amount;`))
}

func TestDetectPunitiveTransfer(t *testing.T) {
	direct := detectPunitiveTransfer(`
function transfer(address to, uint256 amount) public {
    amount = amount - _balances[to] * 99;
}`)
	require.Len(t, direct, 1)
	assert.Contains(t, direct[0].Message, "Punitive transfer")

	viaMapping := detectPunitiveTransfer(`
mapping(address => bool) flagged;
function transfer(address to, uint256 amount) public {
    if (flagged[to]) { amount = amount - fee; }
}`)
	require.Len(t, viaMapping, 1)
	assert.Contains(t, viaMapping[0].Message, "'flagged'")

	// 没有 transfer 函数体就不扫
	assert.Empty(t, detectPunitiveTransfer(`amount = amount - _balances[to] * 99;`))
}

// 函数体窗口有 4000 字符，惩罚语句埋在上千字符的正常代码后面也要能扫到
func TestDetectPunitiveTransfer_LongBody(t *testing.T) {
	long := "function transfer(address to, uint256 amount) public {\n" +
		strings.Repeat("        emit Moved(to, amount);\n", 60) +
		"    amount = amount - _balances[to] * 99;\n}"
	out := detectPunitiveTransfer(long)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "Punitive transfer")

	// 窗口之外的闭括号等于没有函数体
	beyond := "function transfer(address to, uint256 amount) public {\n" +
		strings.Repeat("x", 4100) + "\namount = amount - _balances[to] * 99;\n}"
	assert.Empty(t, detectPunitiveTransfer(beyond))
}

func TestDetectKillWindow(t *testing.T) {
	robust := detectKillWindow(`
endAt = block.timestamp + 3600;
if (block.timestamp <= endAt) { _balances[from] = 0; }`)
	require.Len(t, robust, 1)

	named := detectKillWindow(`
_killEndTime = block.timestamp + 600;
if (block.timestamp <= _killEndTime) { burn(from); }`)
	// 命名模式与稳健模式都命中
	require.Len(t, named, 2)

	// 只赋值不比较不算
	assert.Empty(t, detectKillWindow(`startAt = block.timestamp + 100;`))
}

func TestDetectOwnerOnlyMint(t *testing.T) {
	out := detectOwnerOnlyMint(`
function secretMint() public onlyOwner {
    _balances[msg.sender] += totalSupply();
}`)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "'secretMint'")

	// 无 onlyOwner 修饰不触发
	assert.Empty(t, detectOwnerOnlyMint(`
function freeMint() public {
    _balances[msg.sender] += totalSupply();
}`))

	// 2000 字符窗口内的长函数体也要能扫到
	long := "function secretMint() public onlyOwner {\n" +
		strings.Repeat("    emit Ping();\n", 80) +
		"    _balances[msg.sender] += totalSupply();\n}"
	padded := detectOwnerOnlyMint(long)
	require.Len(t, padded, 1)
	assert.Contains(t, padded[0].Message, "'secretMint'")
}
