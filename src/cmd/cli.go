package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/padicalls/padiscan/src/internal/chain"
	"github.com/padicalls/padiscan/src/internal/config"
	"github.com/padicalls/padiscan/src/internal/explorer"
	"github.com/padicalls/padiscan/src/internal/logger"
	"github.com/padicalls/padiscan/src/internal/market"
	"github.com/padicalls/padiscan/src/internal/render"
	"github.com/padicalls/padiscan/src/internal/scanner"
	"github.com/padicalls/padiscan/src/internal/store"
	"github.com/padicalls/padiscan/src/internal/tracker"
	"github.com/padicalls/padiscan/src/internal/verify"
)

type CLIConfig struct {
	ConfigPath string
	Timeout    time.Duration
	Limit      int
}

// App 持有所有装配好的组件，子命令共用
type App struct {
	cfg     *config.Config
	rpcs    *config.RPCManager
	scanner *scanner.Scanner
	tracker *tracker.Tracker
	store   *store.Store
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  padiscan scan <contract address>     风险扫描代币合约")
	fmt.Println("  padiscan track <wallet address>      估值钱包持仓")
	fmt.Println("  padiscan history <contract address>  查看历史扫描记录")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
}

// Run 是 CLI 入口，返回进程退出码
func Run() int {
	cli := CLIConfig{}
	flag.StringVar(&cli.ConfigPath, "config", "", "config.yaml path (default: PADISCAN_CONFIG or ./config.yaml)")
	flag.DurationVar(&cli.Timeout, "timeout", 60*time.Second, "overall timeout per command")
	flag.IntVar(&cli.Limit, "limit", 10, "history rows to show")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		usage()
		return 2
	}
	command, address := args[0], args[1]

	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cli.ConfigPath)
	if err != nil {
		color.Red("❌ 启动失败: %v", err)
		return 1
	}
	defer app.close()

	switch command {
	case "scan":
		return app.runScan(ctx, address)
	case "track":
		return app.runTrack(ctx, address)
	case "history":
		return app.runHistory(ctx, address, cli.Limit)
	default:
		usage()
		return 2
	}
}

func buildApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	rpcs, err := config.NewRPCManager(cfg.Chain.Name, cfg.Chain.RPCURLs, cfg.Chain.RPCTimeout)
	if err != nil {
		return nil, err
	}

	reader := chain.NewReader(rpcs, cfg.Scan.SimulatorGasCap)
	exp := explorer.NewClient(cfg.Explorer)
	resolver := verify.NewResolver(cfg.Explorer, cfg.Chain.ChainID, exp)
	mkt := market.NewClient(cfg.Market)
	subgraph := market.NewSubgraphResolver(cfg.Market)

	app := &App{
		cfg:     cfg,
		rpcs:    rpcs,
		scanner: scanner.New(cfg, reader, resolver, mkt, subgraph),
		tracker: tracker.New(cfg, reader, exp),
	}

	// 历史存储可选，连不上只降级不拦路
	if cfg.Database.DSN != "" {
		st, err := store.Open(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Warn("scan history store unavailable: %v", err)
		} else {
			app.store = st
		}
	}
	return app, nil
}

func (a *App) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.rpcs != nil {
		a.rpcs.Close()
	}
}

func (a *App) runScan(ctx context.Context, address string) int {
	color.Cyan("⏳ PADISCAN is scanning %s ...", address)

	report, err := a.scanner.Scan(ctx, address)
	switch {
	case errors.Is(err, scanner.ErrInvalidAddress):
		color.Red("❌ Invalid contract address.")
		return 2
	case errors.Is(err, scanner.ErrNotContract):
		color.Red("❌ That's not a contract address. Use `padiscan track` for wallets.")
		return 2
	case err != nil:
		color.Red("⚠️ Scan failed: %v", err)
		return 1
	}

	fmt.Println(render.ScanText(report))

	if a.store != nil {
		err := a.store.SaveScan(ctx, report,
			render.VerdictLabel(report.Verdict),
			render.HoneypotLabel(report.Honeypot),
			render.TaxLabel(report.BestTax.BuyTax, report.BestTax.BuySuccess),
			render.TaxLabel(report.BestTax.SellTax, report.BestTax.SellSuccess))
		if err != nil {
			logger.Warn("save scan history: %v", err)
		}
	}
	return 0
}

func (a *App) runTrack(ctx context.Context, address string) int {
	color.Cyan("⏳ PADISCAN is tracking wallet balance %s ...", address)

	report, err := a.tracker.Track(ctx, address)
	switch {
	case errors.Is(err, tracker.ErrInvalidAddress):
		color.Red("❌ Invalid wallet address.")
		return 2
	case errors.Is(err, tracker.ErrNotWallet):
		color.Red("❌ That's not a wallet address. Use `padiscan scan` for contracts.")
		return 2
	case err != nil:
		color.Red("⚠️ Track failed: %v", err)
		return 1
	}

	fmt.Println(render.WalletText(report))
	return 0
}

func (a *App) runHistory(ctx context.Context, address string, limit int) int {
	if a.store == nil {
		color.Yellow("⚠️ History disabled: PADISCAN_MYSQL_DSN not configured.")
		return 1
	}
	records, err := a.store.History(ctx, address, limit)
	if err != nil {
		color.Red("⚠️ History query failed: %v", err)
		return 1
	}
	if len(records) == 0 {
		fmt.Println("No scan history for this address.")
		return 0
	}
	for _, r := range records {
		fmt.Printf("%s  %s ($%s)  %s  %s  B:%s S:%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Name, r.Symbol, r.Verdict, r.Honeypot, r.BuyTax, r.SellTax)
	}
	return 0
}
