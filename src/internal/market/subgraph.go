package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/padicalls/padiscan/src/internal/config"
	"github.com/padicalls/padiscan/src/internal/logger"
)

// PairInfo 子图返回的交易对摘要
type PairInfo struct {
	Address    string
	Source     string // 协议版本标签，例如 "PulseX V2"
	ReserveUSD float64
}

// SubgraphResolver 在两个协议版本的子图里找代币的最深交易对。
// 子图没配或查询失败都不是硬错误，调用方回退到链上 factory 查询。
type SubgraphResolver struct {
	endpoints map[string]string // label -> url
	http      *resty.Client
}

func NewSubgraphResolver(cfg config.MarketConfig) *SubgraphResolver {
	endpoints := make(map[string]string)
	if cfg.SubgraphV2 != "" {
		endpoints["PulseX V2"] = cfg.SubgraphV2
	}
	if cfg.SubgraphV1 != "" {
		endpoints["PulseX V1"] = cfg.SubgraphV1
	}
	return &SubgraphResolver{
		endpoints: endpoints,
		http:      resty.New().SetTimeout(cfg.Timeout),
	}
}

const pairQuery = `query($token: String!) {
  pairs(first: 1, orderBy: reserveUSD, orderDirection: desc,
        where: {or: [{token0: $token}, {token1: $token}]}) {
    id
    reserveUSD
  }
}`

type pairQueryResult struct {
	Data struct {
		Pairs []struct {
			ID         string `json:"id"`
			ReserveUSD string `json:"reserveUSD"`
		} `json:"pairs"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// BestPair 跨 V2/V1 取 reserveUSD 最大的交易对
func (s *SubgraphResolver) BestPair(ctx context.Context, token string) (*PairInfo, error) {
	if len(s.endpoints) == 0 {
		return nil, fmt.Errorf("no subgraph endpoints configured")
	}

	var best *PairInfo
	for label, url := range s.endpoints {
		info, err := s.queryOne(ctx, url, label, token)
		if err != nil {
			logger.Debug("subgraph %s query failed: %v", label, err)
			continue
		}
		if best == nil || info.ReserveUSD > best.ReserveUSD {
			best = info
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no subgraph pair found for %s", token)
	}
	return best, nil
}

func (s *SubgraphResolver) queryOne(ctx context.Context, url, label, token string) (*PairInfo, error) {
	var out pairQueryResult
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"query":     pairQuery,
			"variables": map[string]string{"token": strings.ToLower(token)},
		}).
		SetResult(&out).
		Post(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("subgraph returned HTTP %d", resp.StatusCode())
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("subgraph error: %s", out.Errors[0].Message)
	}
	if len(out.Data.Pairs) == 0 {
		return nil, fmt.Errorf("no pairs")
	}

	p := out.Data.Pairs[0]
	var reserve float64
	fmt.Sscanf(p.ReserveUSD, "%f", &reserve)
	return &PairInfo{Address: p.ID, Source: label, ReserveUSD: reserve}, nil
}
