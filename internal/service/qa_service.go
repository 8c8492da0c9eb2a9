// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"
	"strings"

	"ask-docs-go/internal/model"
	"ask-docs-go/internal/pipeline"
	"ask-docs-go/pkg/llm"
	"ask-docs-go/pkg/log"
)

// answerPromptTemplate 是固定的问答提示词模板。
// 明确要求模型在上下文不足时直接说明，而不是编造答案。
const answerPromptTemplate = `Answer the question as detailed as possible from the provided context, make sure to provide all the details, if the answer is not in the provided context just say, "answer is not available in the context", don't provide the wrong answer.

Context:
%s

Question:
%s

Answer:`

// retriever 返回与问题最相关的分块。
type retriever interface {
	Retrieve(ctx context.Context, docs []model.UploadedDocument, question string) ([]model.ChunkMatch, error)
}

// QAService 定义了文档问答操作的接口。
type QAService interface {
	Ask(ctx context.Context, question string, docs []model.UploadedDocument) (string, error)
}

type qaService struct {
	processor retriever
	llmClient llm.Client
}

// NewQAService 创建一个新的 QAService 实例。
func NewQAService(processor retriever, llmClient llm.Client) QAService {
	return &qaService{
		processor: processor,
		llmClient: llmClient,
	}
}

// Ask 协调检索管道并调用 LLM 生成最终答案。
func (s *qaService) Ask(ctx context.Context, question string, docs []model.UploadedDocument) (string, error) {
	matches, err := s.processor.Retrieve(ctx, docs, question)
	if err != nil {
		return "", err
	}

	prompt := buildPrompt(matches, question)
	log.Infof("[QAService] 检索完成, 命中 %d 个分块, 提示词长度: %d", len(matches), len(prompt))

	answer, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		return "", pipeline.NewStageError(pipeline.StageGeneration, err)
	}
	return answer, nil
}

// buildPrompt 将检索结果与问题代入固定模板。
func buildPrompt(matches []model.ChunkMatch, question string) string {
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m.Content)
	}
	contextText := strings.Join(parts, "\n\n")
	return fmt.Sprintf(answerPromptTemplate, contextText, question)
}
