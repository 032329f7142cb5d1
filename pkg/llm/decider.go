package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"axle/pkg/api"
)

// ErrDecisionUnavailable marks a failed decision gateway call: network,
// quota, or a malformed provider response. The execution loop treats it as
// fatal to the current run and never retries internally.
var ErrDecisionUnavailable = errors.New("decision gateway unavailable")

// Decider 通用決策閘道介面
type Decider interface {
	// Decide 送出完整對話紀錄與工具 schema，取得下一個 assistant 決策。
	// 非確定性、可能很慢（數秒）；相同輸入不保證相同輸出。
	// 回傳的訊息 Role 必為 assistant，Requests 可為零或多個。
	Decide(ctx context.Context, messages []api.Message, schemas []api.ToolSchema) (api.Message, error)

	// IsTransientError 判斷是否為暫時性錯誤 (如 503, Rate Limit)
	IsTransientError(err error) bool
}

// FallbackDecider 支援多個 Decider 分級嘗試。重試與降級是呼叫端策略，
// 刻意放在執行迴圈之外。
type FallbackDecider struct {
	Deciders   []Decider
	MaxRetries int
	RetryDelay time.Duration
}

func (f *FallbackDecider) Decide(ctx context.Context, messages []api.Message, schemas []api.ToolSchema) (api.Message, error) {
	var lastErr error
	for i, d := range f.Deciders {
		if i > 0 {
			slog.Warn("Previous provider failed, trying fallback", "provider_index", i+1)
		}

		maxRetries := f.MaxRetries
		if maxRetries <= 0 {
			maxRetries = 1
		}

		for retry := 1; retry <= maxRetries; retry++ {
			if retry > 1 {
				slog.Info("Retrying provider", "provider_index", i+1, "attempt", retry, "max", maxRetries)
				select {
				case <-ctx.Done():
					return api.Message{}, ctx.Err()
				case <-time.After(time.Duration(retry-1) * f.RetryDelay):
				}
			}

			decision, err := d.Decide(ctx, messages, schemas)
			if err == nil {
				return decision, nil
			}
			lastErr = err

			if d.IsTransientError(err) && retry < maxRetries {
				slog.Warn("Provider failed with transient error, retrying", "provider_index", i+1, "error", err)
				continue
			}

			slog.Error("Provider failed", "provider_index", i+1, "error", err)
			break
		}
	}
	return api.Message{}, fmt.Errorf("%w: all fallback providers failed: %v", ErrDecisionUnavailable, lastErr)
}

// IsTransientError 實作 Decider 介面。FallbackDecider 的錯誤代表所有
// child 都失敗了，視為非暫時性。
func (f *FallbackDecider) IsTransientError(err error) bool {
	return false
}

// FunctionMaps renders tool schemas in the generic
// {"type":"function","function":{...}} shape most provider SDKs accept,
// ready for a JSON round-trip into SDK-native types.
func FunctionMaps(schemas []api.ToolSchema) []map[string]any {
	out := make([]map[string]any, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        s.Name,
				"description": s.Description,
				"parameters":  s.JSONSchema(),
			},
		})
	}
	return out
}
