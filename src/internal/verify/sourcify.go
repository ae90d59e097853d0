package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// sourcifyClient 读取 repo.sourcify.dev 上的已验证合约元数据
type sourcifyClient struct {
	repoURL string
	chainID int64
	http    *resty.Client
}

// metadata.json 的 output.contracts 路径与各种退化形态都可能携带 ABI，
// 逐层尝试，和链浏览器返回的 stringified JSON 一并兼容
func extractABIFromMetadata(raw json.RawMessage) json.RawMessage {
	var meta map[string]json.RawMessage
	if err := json.Unmarshal(raw, &meta); err != nil {
		// stringified metadata
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return extractABIFromMetadata(json.RawMessage(s))
	}

	if abi, ok := meta["abi"]; ok && isJSONArray(abi) {
		return abi
	}

	output, ok := meta["output"]
	if !ok {
		return nil
	}
	var out struct {
		ABI       json.RawMessage            `json:"abi"`
		Contracts map[string]json.RawMessage `json:"contracts"`
	}
	if err := json.Unmarshal(output, &out); err != nil {
		return nil
	}
	for _, fileContracts := range out.Contracts {
		var perContract map[string]struct {
			ABI json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(fileContracts, &perContract); err != nil {
			continue
		}
		for _, info := range perContract {
			if isJSONArray(info.ABI) {
				return info.ABI
			}
		}
	}
	if isJSONArray(out.ABI) {
		return out.ABI
	}
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[") && trimmed != "[]"
}

// sourceTextFromMetadata 把 metadata.sources 里内嵌的源码拼成一段文本，
// 供正则检测器扫描；没有内嵌 content 的条目跳过
func sourceTextFromMetadata(raw json.RawMessage) string {
	var meta struct {
		Sources map[string]struct {
			Content string `json:"content"`
		} `json:"sources"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return ""
	}
	var sb strings.Builder
	for _, src := range meta.Sources {
		if src.Content != "" {
			sb.WriteString(src.Content)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// fetchMetadata 依次尝试 full_match / partial_match 路径
func (s *sourcifyClient) fetchMetadata(ctx context.Context, address string) (json.RawMessage, string, error) {
	addr := strings.ToLower(strings.TrimPrefix(address, "0x"))
	paths := []string{
		fmt.Sprintf("%s/full_match/%d/0x%s/metadata.json", s.repoURL, s.chainID, addr),
		fmt.Sprintf("%s/partial_match/%d/0x%s/metadata.json", s.repoURL, s.chainID, addr),
	}

	for i, url := range paths {
		resp, err := s.http.R().SetContext(ctx).Get(url)
		if err != nil {
			continue
		}
		if resp.StatusCode() != 200 {
			continue
		}
		kind := "full_match"
		if i == 1 {
			kind = "partial_match"
		}
		return json.RawMessage(resp.Body()), kind, nil
	}
	return nil, "", fmt.Errorf("sourcify: no metadata for %s on chain %d", address, s.chainID)
}

// Resolve 返回 (ABI, source)；两者都可能为空
func (s *sourcifyClient) Resolve(ctx context.Context, address string) (json.RawMessage, string, error) {
	meta, _, err := s.fetchMetadata(ctx, address)
	if err != nil {
		return nil, "", err
	}
	abi := extractABIFromMetadata(meta)
	if abi == nil {
		return nil, "", fmt.Errorf("sourcify: metadata for %s carries no ABI", address)
	}
	return abi, sourceTextFromMetadata(meta), nil
}
