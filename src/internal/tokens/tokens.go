// Package tokens 内置 PulseChain 主流代币与 PT 系列代币清单，
// 钱包估值时作为浏览器 tokenlist 的补充来源。
package tokens

import "strings"

type Entry struct {
	Symbol  string
	Address string
	Group   string // BASIC / PT
}

var Basic = []Entry{
	{"TEDDY", "0xd6c31bA0754C4383A41c0e9DF042C62b5e918f6d", "BASIC"},
	{"pTGC", "0x94534EeEe131840b1c0F61847c572228bdfDDE93", "BASIC"},
	{"INC", "0xf808bb6265e9ca27002c0a04562bf50d4fe37eaa", "BASIC"},
	{"PLSX", "0x95B303987A60C71504D99Aa1b13B4DA07b0790ab", "BASIC"},
	{"pHEX", "0x2b591e99afE9f32eAA6214f7B7629768c40Eeb39", "BASIC"},
	{"SOLIDX", "0x8Da17Db850315A34532108f0f5458fc0401525f6", "BASIC"},
	{"eDAI", "0xefD766cCb38EaF1dfd701853BFCe31359239F305", "BASIC"},
	{"USDC", "0x15D38573d2feeb82e7ad5187aB8c1D52810B1f07", "BASIC"},
	{"WETH", "0x02DcdD04e3F455D838cd1249292C58f3B79e3C3C", "BASIC"},
	{"pDAI", "0x6B175474E89094C44Da98b954EedeAC495271d0F", "BASIC"},
	{"DTO", "0xc438437218009EDD656d319689c902aE56b4b96F", "BASIC"},
	{"FIRE", "0xf330cb1d41052dbC74D3325376Cb82E99454e501", "BASIC"},
	{"AXIS", "0x8BDB63033b02C15f113De51EA1C3a96Af9e8ecb5", "BASIC"},
	{"eHEX", "0x57fde0a71132198BBeC939B98976993d8D89D225", "BASIC"},
	{"UFO", "0x456548A9B56eFBbD89Ca0309edd17a9E20b04018", "BASIC"},
	{"USDT", "0x0Cb6F5a34ad42ec934882A05265A7d5F59b51A2f", "BASIC"},
	{"WBNB", "0x518076CCE3729eF1a3877EA3647a26e278e764FE", "BASIC"},
	{"pWBTC", "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", "BASIC"},
	{"WBTC", "0xb17D901469B9208B17d916112988A3FeD19b5cA1", "BASIC"},
	{"pWETH", "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", "BASIC"},
	{"TRC", "0xe2892C876c5e52a4413Ba5f373D1a6E5f2e9116D", "BASIC"},
	{"ALIVE", "0xb0ebaf9378d6e7531ba09403a12636947cc2f84b", "BASIC"},
	{"GEL", "0x616cb6a245Ed4c11216Ec58D10B6A2E87271845d", "BASIC"},
	{"SCADA", "0x69e23263927Ae53E5FF3A898d082a83B7D6fB438", "BASIC"},
	{"🎭", "0x2401E09acE92C689570a802138D6213486407B24", "BASIC"},
	{"🖨", "0x770CFA2FB975E7bCAEDDe234D92c3858C517Adca", "BASIC"},
	{"BLSEYE🎯", "0xeAb7c22B8F5111559A2c2B1A3402d3FC713CAc27", "BASIC"},
	{"Finvesta", "0x1C81b4358246d3088Ab4361aB755F3D8D4dd62d2", "BASIC"},
	{"OOF", "0x9B334c49821d36D435e684e7CB9b564b328126e5", "BASIC"},
	{"X", "0xA6C4790cc7Aa22CA27327Cb83276F2aBD687B55b", "BASIC"},
}

var PT = []Entry{
	{"PHEN", "0xFDe3255Fb043eA55F9D8635C5e7FF18770A6a810", "PT"},
	{"PEPE", "0x2a8f6137ba7749560bb9e84b36cb2ac9536d9e88", "PT"},
	{"ZERO", "0xf6703DBff070F231eEd966D33B1B6D7eF5207d26", "PT"},
	{"MOST", "0xe33a5AE21F93aceC5CfC0b7b0FDBB65A0f0Be5cC", "PT"},
	{"DEVC", "0xA804b9E522A2D1645a19227514CFe856Ad8C2fbC", "PT"},
	{"PUMP", "0xec4252e62C6dE3D655cA9Ce3AfC12E553ebBA274", "PT"},
	{"PTIGER", "0xC2ACde27428d292C4E8e5A4A38148d6b7A2215f5", "PT"},
	{"PCOCK", "0xc10A4Ed9b4042222d69ff0B374eddd47ed90fC1F", "PT"},
	{"XGAME", "0x4Eb7C1c05087f98Ae617d006F48914eE73fF8D2A", "PT"},
	{"YOINK", "0xfc975B5Dee0Bf337030a2310D2b4545263694cd3", "PT"},
	{"TRUMP", "0x8cc6d99114edd628249fabc8a4d64f9a759a77bf", "PT"},
	{"BEST", "0x84601f4e914e00dc40296ac11cdd27926be319f2", "PT"},
	{"SOL", "0x873301f2b4b83feaff04121b68ec9231b29ce0df", "PT"},
	{"DOGE", "0xdde9164e7e0da7ae48b58f36b42c1c9f80e7245f", "PT"},
	{"BTC", "0xf7bf2a938f971d7e4811a1170c43d651d21a0f81", "PT"},
	{"PLS", "0x260e5da7ef6e30e0a647d1adf47628198dcb0709", "PT"},
	{"XRP", "0x35cf97ec047f93660c27c21fdd846dea72bc66d7", "PT"},
	{"MARS", "0x709e07230860fe0543dcbc359fdf1d1b5ed13305", "PT"},
	{"USDC", "0x080f7a005834c84240f25b2df4aed8236bd57812", "PT"},
	{"ADA", "0x4774e075c16989be68c26cc146fe707ef4393661", "PT"},
	{"TRX", "0x0392fbd58918e7ecbb2c68f4ebe4e2225c9a6468", "PT"},
	{"PLSX", "0xd73731bda87c3464e76268c094d959c1b35b9bf1", "PT"},
	{"ETH", "0xbfcfa52225baa5feec5fbb54e6458957d53ddd94", "PT"},
	{"PUPPERS", "0xbd59a88754902b80922dfebc15c7ea94a8c21ce2", "PT"},
	{"JOHN", "0x83a7722b431062a39154201f331344dccfa678fb", "PT"},
	{"urmom", "0xe43b3cee3554e120213b8b69caf690b6c04a7ec0", "PT"},
	{"LIBELOOR", "0xc1cb1bdd29bbed60594b3db3e8b3b7971b3fd71a", "PT"},
	{"Briah", "0xa80736067abdc215a3b6b66a57c6e608654d0c9a", "PT"},
	{"ZELDA", "0x01272a2B4B5A7918Bb4AAbD02f4A267329EDe345", "PT"},
	{"ZEN", "0xebeCbffA46Eaee7CB3B3305cCE9283cf05CfD1BB", "PT"},
	{"TEDDY", "0x91Ab48C4988aE5bbEB02aCB8b5cdBCd8225D7974", "PT"},
	{"p402", "0x32241F4EC021A759bAd1087bd72BB26D6fD7fC83", "PT"},
	{"VAULT", "0xeB52ac4D25067185f75bab4BcbfBaFA28c876A22", "PT"},
	{"SWRM", "0x1E2b066d068eb087CCf85620B8306a283ea70816", "PT"},
	{"FIREW", "0x03b4652C8565BC8c257Fbd9fA935AAE41160fc4C", "PT"},
	{"SOLIDX", "0x988aCabE384d80454995D6c9e105a4f67eA9947C", "PT"},
	{"PIKAJEW", "0x36fc7d749506caa3131fb0c5999d2d364c59498e", "PT"},
}

// All 返回完整清单（BASIC 在前）
func All() []Entry {
	out := make([]Entry, 0, len(Basic)+len(PT))
	out = append(out, Basic...)
	out = append(out, PT...)
	return out
}

// Lookup 按地址查条目，忽略大小写
func Lookup(address string) (Entry, bool) {
	addr := strings.ToLower(address)
	for _, e := range All() {
		if strings.ToLower(e.Address) == addr {
			return e, true
		}
	}
	return Entry{}, false
}
