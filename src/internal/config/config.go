package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PulseChain 默认常量（可被 config.yaml / 环境变量覆盖）
const (
	DefaultChainID = 369

	DefaultExplorerBaseURL = "https://api.scan.pulsechain.com/api"
	DefaultSourcifyRepoURL = "https://repo.sourcify.dev/contracts"
	DefaultDexscreenerURL  = "https://api.dexscreener.com/latest/dex/tokens"
	DefaultChainSlug       = "pulsechain"

	DefaultRouterV2 = "0x165C3410fC91EF562C50559f7d2289fEbed552d9"
	DefaultRouterV1 = "0x98bf93ebf5c380C0e6Ae8e192A7e2AE08edAcc02"
	DefaultWPLS     = "0xA1077a294dDE1B09bB078844df40758a5D0f9a27"

	// WPLS -> 稳定币路径用于 PLS/USD 估价
	DefaultStablecoin         = "0xefD766cCb38EaF1dfd701853BFCe31359239F305"
	DefaultStablecoinDecimals = 18

	ZeroAddress      = "0x0000000000000000000000000000000000000000"
	DeadAddress      = "0x000000000000000000000000000000000000dEaD"
	PulseBurnAddress = "0x0000000000000000000000000000000000000369"
)

type ChainConfig struct {
	Name               string        `yaml:"name"`
	ChainID            int64         `yaml:"chain_id"`
	RPCURLs            []string      `yaml:"rpc_urls"`
	RPCTimeout         time.Duration `yaml:"rpc_timeout"`
	RouterV2           string        `yaml:"router_v2"`
	RouterV1           string        `yaml:"router_v1"`
	WPLS               string        `yaml:"wpls"`
	Stablecoin         string        `yaml:"stablecoin"`
	StablecoinDecimals int           `yaml:"stablecoin_decimals"`
	HoneyV2            string        `yaml:"honey_v2"`
	HoneyV1            string        `yaml:"honey_v1"`
	BurnAddresses      []string      `yaml:"burn_addresses"`
}

type ExplorerConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	SourcifyRepo string        `yaml:"sourcify_repo"`
	Timeout      time.Duration `yaml:"timeout"`
}

type MarketConfig struct {
	DexscreenerURL string        `yaml:"dexscreener_url"`
	ChainSlug      string        `yaml:"chain_slug"`
	SubgraphV2     string        `yaml:"subgraph_v2"`
	SubgraphV1     string        `yaml:"subgraph_v1"`
	Timeout        time.Duration `yaml:"timeout"`
}

// ScanConfig 为风险扫描器的可调阈值
type ScanConfig struct {
	// 卖税合理上限：超过则按对称税率假设回退到买税
	SellTaxPlausibleMax float64 `yaml:"sell_tax_plausible_max"`
	// 卖税达到该值判定为 FullTax/Rug
	FullTaxThreshold float64 `yaml:"full_tax_threshold"`
	MaxFeeTaxLines   int     `yaml:"max_fee_tax_lines"`
	MaxSetterLines   int     `yaml:"max_setter_lines"`
	SimulatorGasCap  uint64  `yaml:"simulator_gas_cap"`
}

type TrackerConfig struct {
	// RPC/API 全挂时的兜底价格
	NativeFallbackPrice float64 `yaml:"native_fallback_price"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type Config struct {
	Chain    ChainConfig    `yaml:"chain"`
	Explorer ExplorerConfig `yaml:"explorer"`
	Market   MarketConfig   `yaml:"market"`
	Scan     ScanConfig     `yaml:"scan"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	Database DatabaseConfig `yaml:"database"`
}

func defaultConfig() *Config {
	return &Config{
		Chain: ChainConfig{
			Name:               "pulsechain",
			ChainID:            DefaultChainID,
			RPCTimeout:         10 * time.Second,
			RouterV2:           DefaultRouterV2,
			RouterV1:           DefaultRouterV1,
			WPLS:               DefaultWPLS,
			Stablecoin:         DefaultStablecoin,
			StablecoinDecimals: DefaultStablecoinDecimals,
			BurnAddresses:      []string{ZeroAddress, DeadAddress, PulseBurnAddress},
		},
		Explorer: ExplorerConfig{
			BaseURL:      DefaultExplorerBaseURL,
			SourcifyRepo: DefaultSourcifyRepoURL,
			Timeout:      8 * time.Second,
		},
		Market: MarketConfig{
			DexscreenerURL: DefaultDexscreenerURL,
			ChainSlug:      DefaultChainSlug,
			Timeout:        10 * time.Second,
		},
		Scan: ScanConfig{
			SellTaxPlausibleMax: 20.0,
			FullTaxThreshold:    99.0,
			MaxFeeTaxLines:      6,
			MaxSetterLines:      8,
			SimulatorGasCap:     5_000_000,
		},
		Tracker: TrackerConfig{
			NativeFallbackPrice: 0.0000001,
		},
	}
}

// Load 构建配置：默认值 <- config.yaml（如果存在）<- 环境变量
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = getEnv("PADISCAN_CONFIG", "config.yaml")
	}
	if bs, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(bs, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PULSECHAIN_RPC_URL"); v != "" {
		urls := []string{}
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) > 0 {
			c.Chain.RPCURLs = urls
		}
	}
	c.Explorer.APIKey = getEnv("PULSESCAN_API_KEY", c.Explorer.APIKey)
	c.Chain.HoneyV2 = getEnv("HONEY_V2_ADDRESS", c.Chain.HoneyV2)
	c.Chain.HoneyV1 = getEnv("HONEY_V1_ADDRESS", c.Chain.HoneyV1)
	c.Database.DSN = getEnv("PADISCAN_MYSQL_DSN", c.Database.DSN)
	if v := getEnvAsFloat("SELL_TAX_PLAUSIBLE_MAX", 0); v > 0 {
		c.Scan.SellTaxPlausibleMax = v
	}
}

func (c *Config) validate() error {
	if len(c.Chain.RPCURLs) == 0 {
		return fmt.Errorf("PULSECHAIN_RPC_URL is required (comma-separated list allowed)")
	}
	if c.Scan.SellTaxPlausibleMax <= 0 || c.Scan.SellTaxPlausibleMax > 100 {
		return fmt.Errorf("scan.sell_tax_plausible_max must be in (0,100], got %v", c.Scan.SellTaxPlausibleMax)
	}
	if c.Scan.FullTaxThreshold <= 0 || c.Scan.FullTaxThreshold > 100 {
		return fmt.Errorf("scan.full_tax_threshold must be in (0,100], got %v", c.Scan.FullTaxThreshold)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
