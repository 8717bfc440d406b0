package llm

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel/attribute"

	"consultor-ai-api/internal/config"
	apperrors "consultor-ai-api/pkg/errors"
	"consultor-ai-api/pkg/logger"
	"consultor-ai-api/pkg/metrics"
	"consultor-ai-api/pkg/tracer"
)

const emptyCompletionFallback = "No se pudo generar una respuesta."

// Client 面向管线的生成客户端。
// 叙事生成使用提供商配置的温度，结构化抽取走单独的低温度。
type Client struct {
	factory *EinoFactory
	cfg     *config.LLMConfig
}

// NewClient 创建生成客户端
func NewClient(factory *EinoFactory, cfg *config.LLMConfig) *Client {
	return &Client{factory: factory, cfg: cfg}
}

// Generate 叙事生成。提供商失败统一映射为 LLMProviderError。
func (c *Client) Generate(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	return c.generate(ctx, userPrompt, systemPrompt, nil)
}

// Extract 结构化信息抽取，使用低温度保证输出稳定
func (c *Client) Extract(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	temperature := float32(c.cfg.ExtractionTemperature)
	return c.generate(ctx, userPrompt, systemPrompt, []model.Option{
		model.WithTemperature(temperature),
	})
}

func (c *Client) generate(ctx context.Context, userPrompt, systemPrompt string, opts []model.Option) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.Generate")
	defer span.End()

	provider := c.cfg.DefaultProvider
	providerCfg := c.cfg.Providers[provider]
	span.SetAttributes(
		attribute.String("provider", provider),
		attribute.String("model", providerCfg.Model),
	)

	chatModel, err := c.factory.Default(ctx)
	if err != nil {
		return "", err
	}

	messages := make([]*schema.Message, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, schema.SystemMessage(systemPrompt))
	}
	messages = append(messages, schema.UserMessage(userPrompt))

	start := time.Now()
	out, err := chatModel.Generate(ctx, messages, opts...)
	metrics.LLMCallDuration.WithLabelValues(provider, providerCfg.Model).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(provider, providerCfg.Model, "error").Inc()
		logger.Warn(ctx, "llm generate failed",
			"provider", provider,
			"model", providerCfg.Model,
			"error", err.Error(),
		)
		return "", apperrors.ErrProvider.WithError(err)
	}

	metrics.LLMCallTotal.WithLabelValues(provider, providerCfg.Model, "ok").Inc()
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		metrics.LLMTokensUsed.WithLabelValues(provider, providerCfg.Model, "prompt").Add(float64(out.ResponseMeta.Usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(provider, providerCfg.Model, "completion").Add(float64(out.ResponseMeta.Usage.CompletionTokens))
	}

	if out.Content == "" {
		return emptyCompletionFallback, nil
	}
	return out.Content, nil
}
