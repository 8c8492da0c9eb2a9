// Package llm provides a client for interacting with Large Language Models.
package llm

import (
	"context"
	"fmt"
	"strings"

	"ask-docs-go/internal/config"
	"ask-docs-go/pkg/log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client defines the interface for an LLM client.
type Client interface {
	// Generate 同步调用生成接口，返回模型输出的完整文本。
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

type geminiClient struct {
	cfg    config.LLMConfig
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a new Gemini generation client with pinned model and sampling params.
func NewClient(ctx context.Context, cfg config.LLMConfig, apiKey string) (Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("创建 Gemini 客户端失败: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	// 从配置注入生成参数（若非零值）
	if cfg.Generation.Temperature != 0 {
		model.SetTemperature(float32(cfg.Generation.Temperature))
	}
	if cfg.Generation.TopP != 0 {
		model.SetTopP(float32(cfg.Generation.TopP))
	}
	if cfg.Generation.MaxTokens != 0 {
		model.SetMaxOutputTokens(int32(cfg.Generation.MaxTokens))
	}

	return &geminiClient{
		cfg:    cfg,
		client: client,
		model:  model,
	}, nil
}

// Generate calls the Gemini API and concatenates all text parts of the first pass.
func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Errorf("[LLMClient] 调用生成接口失败, model: %s, error: %v", c.cfg.Model, err)
		return "", fmt.Errorf("failed to call generation api: %w", err)
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				parts = append(parts, string(text))
			}
		}
	}
	if len(parts) == 0 {
		log.Warnf("[LLMClient] 生成接口未返回任何文本内容")
		return "", fmt.Errorf("received empty response from generation api")
	}
	return strings.Join(parts, "\n"), nil
}

// Close releases the underlying API client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}
