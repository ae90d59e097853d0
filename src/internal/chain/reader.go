package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/padicalls/padiscan/src/internal/config"
	"github.com/padicalls/padiscan/src/internal/logger"
)

// Reader 提供所有链上只读访问。任何调用失败都以 error 返回，
// 调用方负责把 error 降级为 Unknown/N:A 哨兵值，扫描流程不中断。
type Reader struct {
	rpcs   *config.RPCManager
	gasCap uint64
}

// HoneyRawResult is the untouched 7-tuple returned by checkHoneyMain.
type HoneyRawResult struct {
	BuyEstimate  *big.Int
	BuyReal      *big.Int
	SellEstimate *big.Int
	SellReal     *big.Int
	Buy          bool
	Sell         bool
	BlockNumber  *big.Int
}

// Metadata 为代币基础元数据，任何字段读取失败使用回退值
type Metadata struct {
	Name     string
	Symbol   string
	Decimals int
}

func NewReader(rpcs *config.RPCManager, gasCap uint64) *Reader {
	return &Reader{rpcs: rpcs, gasCap: gasCap}
}

// IsContract 判定地址是否部署了字节码（区分合约地址与普通钱包）
func (r *Reader) IsContract(ctx context.Context, addr common.Address) (bool, error) {
	client, err := r.rpcs.GetClient()
	if err != nil {
		return false, err
	}
	code, err := client.CodeAt(ctx, addr, nil)
	if err != nil {
		return false, fmt.Errorf("eth_getCode %s: %w", addr.Hex(), err)
	}
	return len(code) > 0, nil
}

func (r *Reader) NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	client, err := r.rpcs.GetClient()
	if err != nil {
		return nil, err
	}
	bal, err := client.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance %s: %w", addr.Hex(), err)
	}
	return bal, nil
}

func (r *Reader) call(ctx context.Context, parsed abi.ABI, to common.Address, gas uint64, method string, args ...interface{}) ([]interface{}, error) {
	client, err := r.rpcs.GetClient()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data, Gas: gas}
	out, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}
	values, err := parsed.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func (r *Reader) Owner(ctx context.Context, token common.Address) (common.Address, error) {
	values, err := r.call(ctx, erc20ABI, token, 0, "owner")
	if err != nil {
		return common.Address{}, err
	}
	owner, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("owner() on %s: unexpected return type", token.Hex())
	}
	return owner, nil
}

func (r *Reader) TotalSupply(ctx context.Context, token common.Address) (*big.Int, error) {
	values, err := r.call(ctx, erc20ABI, token, 0, "totalSupply")
	if err != nil {
		return nil, err
	}
	supply, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("totalSupply() on %s: unexpected return type", token.Hex())
	}
	return supply, nil
}

func (r *Reader) BalanceOf(ctx context.Context, token, holder common.Address) (*big.Int, error) {
	values, err := r.call(ctx, erc20ABI, token, 0, "balanceOf", holder)
	if err != nil {
		return nil, err
	}
	bal, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf() on %s: unexpected return type", token.Hex())
	}
	return bal, nil
}

// TokenMetadata 逐字段容错读取；单字段失败用默认值填充
func (r *Reader) TokenMetadata(ctx context.Context, token common.Address) Metadata {
	meta := Metadata{Name: "Unknown Token", Symbol: "TOKEN", Decimals: 18}

	if values, err := r.call(ctx, erc20ABI, token, 0, "name"); err == nil {
		if name, ok := values[0].(string); ok && name != "" {
			meta.Name = strings.TrimRight(name, "\x00")
		}
	} else {
		logger.Debug("name() failed for %s: %v", token.Hex(), err)
	}

	if values, err := r.call(ctx, erc20ABI, token, 0, "symbol"); err == nil {
		if sym, ok := values[0].(string); ok && sym != "" {
			meta.Symbol = strings.TrimRight(sym, "\x00")
		}
	} else {
		logger.Debug("symbol() failed for %s: %v", token.Hex(), err)
	}

	if d, err := r.Decimals(ctx, token); err == nil {
		meta.Decimals = d
	}

	return meta
}

// Decimals 读取精度并做 0<d<=30 合理性检查，越界回退 18
func (r *Reader) Decimals(ctx context.Context, token common.Address) (int, error) {
	values, err := r.call(ctx, erc20ABI, token, 0, "decimals")
	if err != nil {
		return 18, err
	}
	d, ok := values[0].(uint8)
	if !ok {
		return 18, fmt.Errorf("decimals() on %s: unexpected return type", token.Hex())
	}
	if d == 0 || d > 30 {
		return 18, nil
	}
	return int(d), nil
}

func (r *Reader) GetAmountsOut(ctx context.Context, router common.Address, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	values, err := r.call(ctx, routerABI, router, 0, "getAmountsOut", amountIn, path)
	if err != nil {
		return nil, err
	}
	amounts, ok := values[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("getAmountsOut on %s: unexpected return type", router.Hex())
	}
	return amounts, nil
}

// PairFor 通过 router.factory() + factory.getPair() 查询交易对地址；
// 不存在时返回零地址和 nil error
func (r *Reader) PairFor(ctx context.Context, router, tokenA, tokenB common.Address) (common.Address, error) {
	values, err := r.call(ctx, routerABI, router, 0, "factory")
	if err != nil {
		return common.Address{}, err
	}
	factory, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("factory() on %s: unexpected return type", router.Hex())
	}

	values, err = r.call(ctx, factoryABI, factory, 0, "getPair", tokenA, tokenB)
	if err != nil {
		return common.Address{}, err
	}
	pair, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("getPair on %s: unexpected return type", factory.Hex())
	}
	return pair, nil
}

// CheckHoney 调用蜜罐模拟器合约的 checkHoneyMain（eth_call，带 gas 上限）
func (r *Reader) CheckHoney(ctx context.Context, simulator, token common.Address) (*HoneyRawResult, error) {
	values, err := r.call(ctx, honeyABI, simulator, r.gasCap, "checkHoneyMain", token)
	if err != nil {
		return nil, err
	}
	if len(values) < 7 {
		return nil, fmt.Errorf("checkHoneyMain on %s: short result (%d values)", simulator.Hex(), len(values))
	}

	res := &HoneyRawResult{}
	var ok bool
	if res.BuyEstimate, ok = values[0].(*big.Int); !ok {
		return nil, fmt.Errorf("checkHoneyMain: bad buyEstimate")
	}
	if res.BuyReal, ok = values[1].(*big.Int); !ok {
		return nil, fmt.Errorf("checkHoneyMain: bad buyReal")
	}
	if res.SellEstimate, ok = values[2].(*big.Int); !ok {
		return nil, fmt.Errorf("checkHoneyMain: bad sellEstimate")
	}
	if res.SellReal, ok = values[3].(*big.Int); !ok {
		return nil, fmt.Errorf("checkHoneyMain: bad sellReal")
	}
	if res.Buy, ok = values[4].(bool); !ok {
		return nil, fmt.Errorf("checkHoneyMain: bad buy flag")
	}
	if res.Sell, ok = values[5].(bool); !ok {
		return nil, fmt.Errorf("checkHoneyMain: bad sell flag")
	}
	if res.BlockNumber, ok = values[6].(*big.Int); !ok {
		return nil, fmt.Errorf("checkHoneyMain: bad blockNumber")
	}
	return res, nil
}
