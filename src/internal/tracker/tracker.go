package tracker

import (
	"context"
	"errors"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/padicalls/padiscan/src/internal/chain"
	"github.com/padicalls/padiscan/src/internal/config"
	"github.com/padicalls/padiscan/src/internal/explorer"
	"github.com/padicalls/padiscan/src/internal/logger"
	"github.com/padicalls/padiscan/src/internal/tokens"
)

var (
	ErrInvalidAddress = errors.New("invalid wallet address")
	ErrNotWallet      = errors.New("address is a contract, use scan for tokens")
)

// 单个钱包同时查的代币数量上限
const tokenFetchLimit = 8

// Holding 是钱包里一个有余额的代币仓位
type Holding struct {
	Symbol   string
	Address  string
	Group    string // BASIC / PT / API
	Balance  float64
	ValueUSD float64
	HasPrice bool // false 表示没有 LP，估不出美元价值
}

// WalletReport 对应一次余额追踪的完整输出
type WalletReport struct {
	Address        string
	NativeBalance  float64
	NativePriceUSD float64
	NativeValueUSD float64
	Holdings       []Holding
	TotalValueUSD  float64
	Tier           string
}

// Tracker 估值钱包：原生余额 + 浏览器 tokenlist 与内置清单的并集
type Tracker struct {
	cfg      *config.Config
	reader   *chain.Reader
	explorer *explorer.Client
}

func New(cfg *config.Config, reader *chain.Reader, exp *explorer.Client) *Tracker {
	return &Tracker{cfg: cfg, reader: reader, explorer: exp}
}

// Track 对一个钱包地址出估值报告。合约地址直接拒绝。
func (t *Tracker) Track(ctx context.Context, address string) (*WalletReport, error) {
	if !common.IsHexAddress(address) {
		return nil, ErrInvalidAddress
	}
	wallet := common.HexToAddress(address)

	isContract, err := t.reader.IsContract(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if isContract {
		return nil, ErrNotWallet
	}

	report := &WalletReport{Address: wallet.Hex()}

	raw, err := t.reader.NativeBalance(ctx, wallet)
	if err != nil {
		return nil, err
	}
	report.NativeBalance = fromWei(raw, 18)
	report.NativePriceUSD = t.nativePrice(ctx)
	report.NativeValueUSD = report.NativeBalance * report.NativePriceUSD

	report.Holdings = t.collectHoldings(ctx, wallet, report.NativePriceUSD)
	report.TotalValueUSD = report.NativeValueUSD
	for _, h := range report.Holdings {
		report.TotalValueUSD += h.ValueUSD
	}
	report.Tier = ClassifyWallet(report.TotalValueUSD)
	return report, nil
}

// nativePrice 价格回退链：浏览器 coinprice -> 链上 LP 换算 -> 配置兜底值
func (t *Tracker) nativePrice(ctx context.Context) float64 {
	if price, err := t.explorer.CoinPrice(ctx); err == nil {
		return price
	} else {
		logger.Debug("coinprice API: %v", err)
	}
	if price := t.priceFromLP(ctx); price > 0 {
		return price
	}
	return t.cfg.Tracker.NativeFallbackPrice
}

// priceFromLP 用 WPLS -> 稳定币的 getAmountsOut 推 PLS/USD
func (t *Tracker) priceFromLP(ctx context.Context) float64 {
	amountIn := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	path := []common.Address{
		common.HexToAddress(t.cfg.Chain.WPLS),
		common.HexToAddress(t.cfg.Chain.Stablecoin),
	}
	amounts, err := t.reader.GetAmountsOut(ctx, common.HexToAddress(t.cfg.Chain.RouterV2), amountIn, path)
	if err != nil || len(amounts) < 2 {
		logger.Debug("LP price calc: %v", err)
		return 0
	}
	return fromWei(amounts[1], t.cfg.Chain.StablecoinDecimals)
}

// tokenPriceUSD 代币先换 WPLS 再乘 PLS/USD
func (t *Tracker) tokenPriceUSD(ctx context.Context, token common.Address, decimals int, plsPrice float64) float64 {
	amountIn := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	path := []common.Address{token, common.HexToAddress(t.cfg.Chain.WPLS)}
	amounts, err := t.reader.GetAmountsOut(ctx, common.HexToAddress(t.cfg.Chain.RouterV2), amountIn, path)
	if err != nil || len(amounts) < 2 {
		return 0
	}
	return fromWei(amounts[1], 18) * plsPrice
}

type candidate struct {
	address string
	symbol  string
	group   string
}

// collectHoldings 把浏览器 tokenlist 和内置清单并起来逐个估值。
// tokenlist 拉不到不影响内置清单那部分。
func (t *Tracker) collectHoldings(ctx context.Context, wallet common.Address, plsPrice float64) []Holding {
	seen := make(map[string]struct{})
	var candidates []candidate

	add := func(addr, symbol, group string) {
		key := strings.ToLower(addr)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		candidates = append(candidates, candidate{address: addr, symbol: symbol, group: group})
	}

	for _, e := range tokens.All() {
		add(e.Address, e.Symbol, e.Group)
	}
	if entries, err := t.explorer.TokenList(ctx, wallet.Hex()); err == nil {
		for _, e := range entries {
			if common.IsHexAddress(e.ContractAddress) {
				add(e.ContractAddress, e.TokenSymbol, "API")
			}
		}
	} else {
		logger.Debug("tokenlist for %s: %v", wallet.Hex(), err)
	}

	results := make([]*Holding, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tokenFetchLimit)
	for i, c := range candidates {
		g.Go(func() error {
			results[i] = t.fetchHolding(gctx, wallet, c, plsPrice)
			return nil
		})
	}
	_ = g.Wait()

	var out []Holding
	for _, h := range results {
		if h != nil {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValueUSD > out[j].ValueUSD })
	return out
}

func (t *Tracker) fetchHolding(ctx context.Context, wallet common.Address, c candidate, plsPrice float64) *Holding {
	token := common.HexToAddress(c.address)

	raw, err := t.explorer.TokenBalance(ctx, c.address, wallet.Hex())
	if err != nil {
		// API 失败换 RPC 读
		raw, err = t.reader.BalanceOf(ctx, token, wallet)
		if err != nil || raw == nil {
			return nil
		}
	}
	if raw.Sign() == 0 {
		return nil
	}

	decimals, err := t.reader.Decimals(ctx, token)
	if err != nil {
		decimals = 18
	}
	balance := fromWei(raw, decimals)

	// 符号回退链：清单里的符号 -> 浏览器 getToken -> RPC 读
	symbol := c.symbol
	if symbol == "" {
		if info, err := t.explorer.GetToken(ctx, c.address); err == nil && info.Symbol != "" {
			symbol = info.Symbol
		} else {
			symbol = t.reader.TokenMetadata(ctx, token).Symbol
		}
	}

	h := &Holding{
		Symbol:  symbol,
		Address: token.Hex(),
		Group:   c.group,
		Balance: balance,
	}
	if price := t.tokenPriceUSD(ctx, token, decimals, plsPrice); price > 0 {
		h.ValueUSD = balance * price
		h.HasPrice = true
	}
	return h
}

// ClassifyWallet 按总美元价值给钱包定级
func ClassifyWallet(totalUSD float64) string {
	switch {
	case totalUSD >= 100000:
		return "🐳 God Whale"
	case totalUSD >= 5000:
		return "🐋 Whale"
	case totalUSD >= 2000:
		return "🦈 Shark"
	case totalUSD >= 1000:
		return "🐬 Dolphine"
	case totalUSD >= 500:
		return "🐟 Fish"
	case totalUSD >= 100:
		return "🦐 Shrimp"
	default:
		return "🪱 Plankton"
	}
}

func fromWei(raw *big.Int, decimals int) float64 {
	if raw == nil {
		return 0
	}
	f := new(big.Float).SetInt(raw)
	div := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	out, _ := new(big.Float).Quo(f, div).Float64()
	return out
}
