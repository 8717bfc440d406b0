// Package llm 提供基于 Eino 的 LLM 客户端封装
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"consultor-ai-api/internal/config"
	apperrors "consultor-ai-api/pkg/errors"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例。
// 凭证缺失在构造期即失败，不留到首次调用才暴露。
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂。默认提供商的凭证在此校验。
func NewEinoFactory(cfg *config.Config) (*EinoFactory, error) {
	llmCfg := &cfg.LLM

	providerCfg, ok := llmCfg.Providers[llmCfg.DefaultProvider]
	if !ok {
		return nil, apperrors.ErrConfiguration.WithDetail(
			fmt.Sprintf("default provider %s not found in LLM config", llmCfg.DefaultProvider))
	}
	if strings.TrimSpace(providerCfg.APIKey) == "" {
		return nil, apperrors.ErrConfiguration.WithDetail(
			fmt.Sprintf("api key for provider %s is required", llmCfg.DefaultProvider))
	}

	return &EinoFactory{
		config: llmCfg,
		models: make(map[string]model.BaseChatModel),
	}, nil
}

// Get 获取指定名称的 ChatModel，未指定时返回默认客户端
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if name == "" {
		name = f.config.DefaultProvider
	}

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, apperrors.ErrConfiguration.WithDetail(
			fmt.Sprintf("provider %s not found in LLM config", name))
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      providerCfg.APIKey,
		BaseURL:     providerCfg.BaseURL,
		Model:       providerCfg.Model,
		MaxTokens:   &providerCfg.MaxTokens,
		Temperature: ptrFloat32(float32(providerCfg.Temperature)),
		Timeout:     providerCfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[name] = chatModel
	return chatModel, nil
}

// Default 返回默认 ChatModel
func (f *EinoFactory) Default(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, "")
}

func ptrFloat32(f float32) *float32 {
	return &f
}
