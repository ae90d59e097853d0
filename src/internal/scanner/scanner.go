package scanner

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/padicalls/padiscan/src/internal/chain"
	"github.com/padicalls/padiscan/src/internal/config"
	"github.com/padicalls/padiscan/src/internal/logger"
	"github.com/padicalls/padiscan/src/internal/market"
	"github.com/padicalls/padiscan/src/internal/verify"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrNotContract    = errors.New("address is not a contract, use track for wallets")
)

// Scanner 是扫描入口。远程子调用失败一律降级为哨兵值继续，
// 只有地址本身不合法才会整体拒绝。
type Scanner struct {
	cfg      *config.Config
	reader   *chain.Reader
	resolver *verify.Resolver
	market   *market.Client
	subgraph *market.SubgraphResolver
	sf       singleflight.Group
}

func New(cfg *config.Config, reader *chain.Reader, resolver *verify.Resolver, mkt *market.Client, subgraph *market.SubgraphResolver) *Scanner {
	return &Scanner{
		cfg:      cfg,
		reader:   reader,
		resolver: resolver,
		market:   mkt,
		subgraph: subgraph,
	}
}

// Scan 对一个代币合约出完整报告。并发扫描同一地址会合并成一次。
func (s *Scanner) Scan(ctx context.Context, address string) (*ScanReport, error) {
	if !common.IsHexAddress(address) {
		return nil, ErrInvalidAddress
	}
	token := common.HexToAddress(address)

	isContract, err := s.reader.IsContract(ctx, token)
	if err != nil {
		return nil, err
	}
	if !isContract {
		return nil, ErrNotContract
	}

	v, err, _ := s.sf.Do(strings.ToLower(token.Hex()), func() (interface{}, error) {
		return s.scan(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ScanReport), nil
}

func (s *Scanner) scan(ctx context.Context, token common.Address) (*ScanReport, error) {
	report := &ScanReport{Address: token.Hex()}

	// 第一阶段：验证状态、行情、元数据互不依赖，并发取
	var resolution verify.Resolution
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resolution = s.resolver.Resolve(gctx, token.Hex())
		return nil
	})
	g.Go(func() error {
		stats, err := s.market.TokenStats(gctx, token.Hex())
		if err != nil {
			logger.Debug("market stats for %s: %v", token.Hex(), err)
			return nil
		}
		report.Market = &MarketStats{
			PriceUSD:       stats.PriceUSD,
			LiquidityUSD:   stats.LiquidityUSD,
			PriceChange24h: stats.PriceChange24h,
			Volume24h:      stats.Volume24h,
		}
		return nil
	})
	g.Go(func() error {
		report.Metadata = s.reader.TokenMetadata(gctx, token)
		return nil
	})
	_ = g.Wait()

	report.VerifyStatus = resolution.Status
	report.Verified = resolution.Verified
	report.HasABI = len(resolution.ABI) > 0

	// 第二阶段：所有权、供应量、LP、两版税务模拟并发取。
	// 每条失败都只降级自己那份结果。
	var (
		lpPair   common.Address
		lpSource string
	)
	g2, gctx2 := errgroup.WithContext(ctx)
	g2.Go(func() error {
		owner, err := s.reader.Owner(gctx2, token)
		if err != nil {
			logger.Debug("owner() for %s: %v", token.Hex(), err)
			return nil
		}
		report.Owner = owner.Hex()
		report.OwnerKnown = true
		report.OwnerBurned = s.isBurnAddress(owner)
		return nil
	})
	g2.Go(func() error {
		supply, err := s.reader.TotalSupply(gctx2, token)
		if err != nil {
			logger.Debug("totalSupply() for %s: %v", token.Hex(), err)
			return nil
		}
		report.TotalSupply = supply
		return nil
	})
	g2.Go(func() error {
		lpPair, lpSource = s.resolvePair(gctx2, token)
		return nil
	})
	g2.Go(func() error {
		report.TaxV2 = s.simulateTax(gctx2, "V2", s.cfg.Chain.HoneyV2, token)
		return nil
	})
	g2.Go(func() error {
		report.TaxV1 = s.simulateTax(gctx2, "V1", s.cfg.Chain.HoneyV1, token)
		return nil
	})
	_ = g2.Wait()

	report.Liquidity = s.measureLiquidity(ctx, lpPair, lpSource, token, report.TotalSupply)

	// CPU 阶段：ABI 分类 + 源码扫描 + 管理员别名
	fns := ParseFunctions(resolution.ABI)
	class := ClassifyABI(fns, s.cfg.Scan.MaxFeeTaxLines, s.cfg.Scan.MaxSetterLines)
	sourceFinds := ScanSource(resolution.Source)
	report.AdminAliases = DetectAdminAliases(resolution.Source)

	report.Verdict, report.Findings = Aggregate(AggregateInput{
		Verified:     report.Verified,
		HasABI:       report.HasABI,
		ABIClass:     class,
		SourceFinds:  sourceFinds,
		AdminAliases: report.AdminAliases,
		OwnerKnown:   report.OwnerKnown,
		OwnerBurned:  report.OwnerBurned,
		MaxFeeTax:    s.cfg.Scan.MaxFeeTaxLines,
		MaxSetter:    s.cfg.Scan.MaxSetterLines,
	})

	// 与主流动性池同版本的模拟结果为准，另一版只做回退
	report.BestTax = s.pickBestTax(report.TaxV2, report.TaxV1, lpSource)
	report.Honeypot = ClassifyHoneypot(report.BestTax, s.cfg.Scan.FullTaxThreshold)

	return report, nil
}

func (s *Scanner) isBurnAddress(addr common.Address) bool {
	for _, b := range s.cfg.Chain.BurnAddresses {
		if addr == common.HexToAddress(b) {
			return true
		}
	}
	return false
}

// resolvePair 先问子图，失败再链上逐 router 排名：
// 两个版本各查 getPair，取 LP 燃烧比例更高的那个
func (s *Scanner) resolvePair(ctx context.Context, token common.Address) (common.Address, string) {
	if info, err := s.subgraph.BestPair(ctx, token.Hex()); err == nil {
		return common.HexToAddress(info.Address), info.Source
	}

	wpls := common.HexToAddress(s.cfg.Chain.WPLS)
	routers := []struct {
		label  string
		router string
	}{
		{"PulseX V2", s.cfg.Chain.RouterV2},
		{"PulseX V1", s.cfg.Chain.RouterV1},
	}

	var (
		bestPair   common.Address
		bestSource string
		bestBurnt  = -1.0
	)
	for _, r := range routers {
		if r.router == "" {
			continue
		}
		pair, err := s.reader.PairFor(ctx, common.HexToAddress(r.router), token, wpls)
		if err != nil {
			logger.Debug("getPair via %s: %v", r.label, err)
			continue
		}
		if pair == (common.Address{}) {
			continue
		}
		burnt := s.lpBurntPercent(ctx, pair)
		if burnt > bestBurnt {
			bestBurnt = burnt
			bestPair = pair
			bestSource = r.label
		}
	}
	return bestPair, bestSource
}

func (s *Scanner) lpBurntPercent(ctx context.Context, pair common.Address) float64 {
	total, err := s.reader.TotalSupply(ctx, pair)
	if err != nil || total.Sign() == 0 {
		return 0
	}
	burnt := s.burntBalanceSum(ctx, pair)
	return ratioPercent(burnt, total)
}

// burntBalanceSum 累加所有烧毁地址持有的余额，单个地址查询失败按零计
func (s *Scanner) burntBalanceSum(ctx context.Context, token common.Address) *big.Int {
	sum := new(big.Int)
	for _, b := range s.cfg.Chain.BurnAddresses {
		bal, err := s.reader.BalanceOf(ctx, token, common.HexToAddress(b))
		if err != nil {
			continue
		}
		sum.Add(sum, bal)
	}
	return sum
}

func (s *Scanner) measureLiquidity(ctx context.Context, pair common.Address, source string, token common.Address, tokenTotal *big.Int) LiquidityPosition {
	if pair == (common.Address{}) {
		return LiquidityPosition{}
	}
	lpTotal, err := s.reader.TotalSupply(ctx, pair)
	if err != nil {
		logger.Debug("LP totalSupply for %s: %v", pair.Hex(), err)
		return LiquidityPosition{PairAddress: pair.Hex(), Source: source}
	}
	lpBurnt := s.burntBalanceSum(ctx, pair)
	poolBalance, err := s.reader.BalanceOf(ctx, token, pair)
	if err != nil {
		poolBalance = new(big.Int)
	}
	tokenBurnt := s.burntBalanceSum(ctx, token)
	return ComputeLiquidity(pair.Hex(), source, lpTotal, lpBurnt, poolBalance, tokenBurnt, tokenTotal)
}

func (s *Scanner) simulateTax(ctx context.Context, version, simulator string, token common.Address) TaxSimulationResult {
	if simulator == "" || !common.IsHexAddress(simulator) {
		return TaxSimulationResult{Version: version, Err: "simulator not deployed"}
	}
	raw, err := s.reader.CheckHoney(ctx, common.HexToAddress(simulator), token)
	if err != nil {
		logger.Debug("tax simulation %s for %s: %v", version, token.Hex(), err)
		return TaxSimulationResult{Version: version, Err: err.Error()}
	}
	result := InterpretHoney(version, raw)
	return CorrectSymmetric(result, s.cfg.Scan.SellTaxPlausibleMax)
}

// pickBestTax 选 LP 来源版本的结果；该版本没跑成则换另一版
func (s *Scanner) pickBestTax(v2, v1 TaxSimulationResult, lpSource string) TaxSimulationResult {
	primary, fallback := v2, v1
	if strings.Contains(lpSource, "V1") {
		primary, fallback = v1, v2
	}
	if primary.Err != "" && fallback.Err == "" {
		return fallback
	}
	return primary
}
