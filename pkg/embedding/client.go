// Package embedding provides a client for interacting with embedding models.
package embedding

import (
	"context"
	"fmt"
	"math"

	"ask-docs-go/internal/config"
	"ask-docs-go/pkg/log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client defines the interface for an embedding client.
type Client interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
	Close() error
}

type geminiClient struct {
	cfg    config.EmbeddingConfig
	client *genai.Client
	model  *genai.EmbeddingModel
}

// NewClient creates a new Gemini embedding client with a pinned model.
func NewClient(ctx context.Context, cfg config.EmbeddingConfig, apiKey string) (Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("创建 Gemini 客户端失败: %w", err)
	}
	return &geminiClient{
		cfg:    cfg,
		client: client,
		model:  client.EmbeddingModel(cfg.Model),
	}, nil
}

// CreateEmbedding calls the Gemini API to get the vector for a given text.
// 返回的向量做了 L2 归一化，下游按余弦相似度比较。
func (c *geminiClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		log.Errorf("[EmbeddingClient] 调用 Embedding API 失败, model: %s, error: %v", c.cfg.Model, err)
		return nil, fmt.Errorf("failed to call embedding api: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		log.Warnf("[EmbeddingClient] Embedding API 返回了空的向量数据")
		return nil, fmt.Errorf("received empty embedding from api")
	}
	return normalize(resp.Embedding.Values), nil
}

// Close releases the underlying API client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

// normalize 对向量做 L2 归一化；零向量原样返回。
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
