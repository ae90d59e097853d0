package verify

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/padicalls/padiscan/src/internal/config"
	"github.com/padicalls/padiscan/src/internal/explorer"
	"github.com/padicalls/padiscan/src/internal/logger"
)

// Resolution 是验证查询的统一结果。Verified=false 时 ABI/Source 为空。
type Resolution struct {
	Status   string // 用户可见标签
	Verified bool
	ABI      json.RawMessage // ABI JSON 数组；验证了但拿不到 ABI 时为 nil
	Source   string
}

const StatusUnverified = "❌ Contract is Unverified"

// Resolver 按固定顺序询问验证登记处：链浏览器在前，Sourcify 兜底。
// 任何一处失败都不是错误，只是换下一家；全部失败 = 未验证。
type Resolver struct {
	explorer *explorer.Client
	sourcify *sourcifyClient
}

func NewResolver(cfg config.ExplorerConfig, chainID int64, exp *explorer.Client) *Resolver {
	return &Resolver{
		explorer: exp,
		sourcify: &sourcifyClient{
			repoURL: strings.TrimRight(cfg.SourcifyRepo, "/"),
			chainID: chainID,
			http:    resty.New().SetTimeout(cfg.Timeout),
		},
	}
}

func (r *Resolver) Resolve(ctx context.Context, address string) Resolution {
	// 1) PulseScan getsourcecode
	if src, err := r.explorer.GetSourceCode(ctx, address); err == nil {
		abi := normalizeABIString(src.ABI)
		if abi != nil {
			return Resolution{
				Status:   "✅ Verified (PulseScan)",
				Verified: true,
				ABI:      abi,
				Source:   src.SourceCode,
			}
		}
		// 源码在而 ABI 解析不出来：继续问 Sourcify
	} else {
		logger.Debug("explorer getsourcecode for %s: %v", address, err)
	}

	// 2) Sourcify repo
	if abi, source, err := r.sourcify.Resolve(ctx, address); err == nil {
		return Resolution{
			Status:   "✅ Verified (Sourcify Repo)",
			Verified: true,
			ABI:      abi,
			Source:   source,
		}
	} else {
		logger.Debug("sourcify resolve for %s: %v", address, err)
	}

	return Resolution{Status: StatusUnverified}
}

// normalizeABIString 处理链浏览器把 ABI 作为字符串返回的情况，
// 包括 "Contract source code not verified" 占位文本
func normalizeABIString(raw string) json.RawMessage {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "Contract source code not verified" {
		return nil
	}
	if !strings.HasPrefix(raw, "[") {
		return nil
	}
	var probe []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil || len(probe) == 0 {
		return nil
	}
	return json.RawMessage(raw)
}
