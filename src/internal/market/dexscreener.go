package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/padicalls/padiscan/src/internal/config"
)

// TokenStats 行情聚合器返回的市场快照
type TokenStats struct {
	PriceUSD       float64
	LiquidityUSD   float64
	PriceChange24h float64
	Volume24h      float64
	DexID          string
	PairAddress    string
}

// Client 查询 Dexscreener 公共 API，不需要密钥
type Client struct {
	baseURL   string
	chainSlug string
	http      *resty.Client
}

func NewClient(cfg config.MarketConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.DexscreenerURL, "/"),
		chainSlug: cfg.ChainSlug,
		http:      resty.New().SetTimeout(cfg.Timeout),
	}
}

type dexscreenerPair struct {
	ChainID     string `json:"chainId"`
	DexID       string `json:"dexId"`
	PairAddress string `json:"pairAddress"`
	PriceUSD    string `json:"priceUsd"`
	Liquidity   struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	PriceChange struct {
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
}

// TokenStats 拉取代币的所有交易对，过滤本链后取流动性最大的一个
func (c *Client) TokenStats(ctx context.Context, token string) (*TokenStats, error) {
	var out struct {
		Pairs []dexscreenerPair `json:"pairs"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("%s/%s", c.baseURL, token))
	if err != nil {
		return nil, fmt.Errorf("dexscreener request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("dexscreener returned HTTP %d", resp.StatusCode())
	}

	var best *dexscreenerPair
	for i := range out.Pairs {
		p := &out.Pairs[i]
		if p.ChainID != c.chainSlug {
			continue
		}
		if best == nil || p.Liquidity.USD > best.Liquidity.USD {
			best = p
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no %s pairs found for %s", c.chainSlug, token)
	}

	return &TokenStats{
		PriceUSD:       parsePrice(best.PriceUSD),
		LiquidityUSD:   best.Liquidity.USD,
		PriceChange24h: best.PriceChange.H24,
		Volume24h:      best.Volume.H24,
		DexID:          best.DexID,
		PairAddress:    best.PairAddress,
	}, nil
}

func parsePrice(raw string) float64 {
	var v float64
	fmt.Sscanf(raw, "%f", &v)
	return v
}
