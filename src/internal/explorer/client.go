package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/padicalls/padiscan/src/internal/config"
)

// Client 访问 PulseScan（Etherscan 兼容 API）
type Client struct {
	baseURL string
	apiKey  string
	http    *resty.Client
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// ContractSource is one entry of the getsourcecode result array.
type ContractSource struct {
	SourceCode     string `json:"SourceCode"`
	ABI            string `json:"ABI"`
	ContractName   string `json:"ContractName"`
	Proxy          string `json:"Proxy"`
	Implementation string `json:"Implementation"`
}

type TokenInfo struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals string `json:"decimals"`
}

type TokenListEntry struct {
	ContractAddress string `json:"ContractAddress"`
	TokenSymbol     string `json:"TokenSymbol"`
}

func NewClient(cfg config.ExplorerConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    resty.New().SetTimeout(cfg.Timeout),
	}
}

func (c *Client) get(ctx context.Context, params map[string]string) (*apiResponse, error) {
	if c.apiKey != "" {
		params["apikey"] = c.apiKey
	}
	var out apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&out).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("explorer request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("explorer returned HTTP %d", resp.StatusCode())
	}
	if out.Status != "1" {
		return nil, fmt.Errorf("explorer API error: %s", out.Message)
	}
	return &out, nil
}

// GetSourceCode 获取验证源码与 ABI（module=contract&action=getsourcecode）
func (c *Client) GetSourceCode(ctx context.Context, address string) (*ContractSource, error) {
	out, err := c.get(ctx, map[string]string{
		"module":  "contract",
		"action":  "getsourcecode",
		"address": address,
	})
	if err != nil {
		return nil, err
	}
	var sources []ContractSource
	if err := json.Unmarshal(out.Result, &sources); err != nil {
		return nil, fmt.Errorf("decode getsourcecode result: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no contract source found for %s", address)
	}
	return &sources[0], nil
}

// CoinPrice 返回原生币 USD 价格（module=stats&action=coinprice）
func (c *Client) CoinPrice(ctx context.Context) (float64, error) {
	out, err := c.get(ctx, map[string]string{
		"module": "stats",
		"action": "coinprice",
	})
	if err != nil {
		return 0, err
	}
	var result struct {
		EthUSD string `json:"ethusd"`
	}
	if err := json.Unmarshal(out.Result, &result); err != nil {
		return 0, fmt.Errorf("decode coinprice result: %w", err)
	}
	price, err := strconv.ParseFloat(result.EthUSD, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("coinprice returned unusable value %q", result.EthUSD)
	}
	return price, nil
}

// GetToken 获取代币元数据（module=token&action=getToken）
func (c *Client) GetToken(ctx context.Context, contract string) (*TokenInfo, error) {
	out, err := c.get(ctx, map[string]string{
		"module":          "token",
		"action":          "getToken",
		"contractaddress": contract,
	})
	if err != nil {
		return nil, err
	}
	var info TokenInfo
	if err := json.Unmarshal(out.Result, &info); err != nil {
		return nil, fmt.Errorf("decode getToken result: %w", err)
	}
	return &info, nil
}

// TokenBalance 查询钱包持有某代币的原始余额
func (c *Client) TokenBalance(ctx context.Context, contract, wallet string) (*big.Int, error) {
	out, err := c.get(ctx, map[string]string{
		"module":          "account",
		"action":          "tokenbalance",
		"contractaddress": contract,
		"address":         wallet,
	})
	if err != nil {
		return nil, err
	}
	var raw string
	if err := json.Unmarshal(out.Result, &raw); err != nil {
		return nil, fmt.Errorf("decode tokenbalance result: %w", err)
	}
	bal, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("tokenbalance returned non-numeric value %q", raw)
	}
	return bal, nil
}

// TokenList 枚举钱包持有的 ERC-20 代币
func (c *Client) TokenList(ctx context.Context, wallet string) ([]TokenListEntry, error) {
	out, err := c.get(ctx, map[string]string{
		"module":  "account",
		"action":  "tokenlist",
		"address": wallet,
	})
	if err != nil {
		return nil, err
	}
	var entries []TokenListEntry
	if err := json.Unmarshal(out.Result, &entries); err != nil {
		return nil, fmt.Errorf("decode tokenlist result: %w", err)
	}
	return entries, nil
}
