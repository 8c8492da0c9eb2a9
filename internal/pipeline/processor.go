// Package pipeline 定义了单次问答请求的检索管道。
package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"ask-docs-go/internal/chunker"
	"ask-docs-go/internal/model"
	"ask-docs-go/pkg/embedding"
	"ask-docs-go/pkg/log"

	"github.com/google/uuid"
)

// TextExtractor 从单个文件内容中提取纯文本。
type TextExtractor interface {
	ExtractText(r io.Reader, fileName string) (string, error)
}

// VectorIndex 是请求级向量索引的读写接口。
type VectorIndex interface {
	CreateCollection(requestID string) error
	Add(ctx context.Context, requestID string, chunks []string, vectors [][]float32) error
	Query(ctx context.Context, requestID string, vector []float32, topK int) ([]model.ChunkMatch, error)
	Drop(requestID string) error
}

// Processor 封装了提取、分块、向量化、索引与检索的完整流程。
// 每次请求走一遍完整管道，索引只在本请求内可见。
type Processor struct {
	extractor TextExtractor
	splitter  *chunker.Splitter
	embedder  embedding.Client
	index     VectorIndex
	topK      int
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(
	extractor TextExtractor,
	splitter *chunker.Splitter,
	embedder embedding.Client,
	index VectorIndex,
	topK int,
) *Processor {
	return &Processor{
		extractor: extractor,
		splitter:  splitter,
		embedder:  embedder,
		index:     index,
		topK:      topK,
	}
}

// Retrieve 对上传文件执行 提取 → 分块 → 向量化 → 索引 → 检索，
// 返回与问题最相关的分块。
func (p *Processor) Retrieve(ctx context.Context, docs []model.UploadedDocument, question string) ([]model.ChunkMatch, error) {
	requestID := uuid.NewString()
	log.Infof("[Processor] 开始处理请求, requestID: %s, 文件数: %d", requestID, len(docs))

	// 1. 按上传顺序提取并拼接全部文本
	log.Info("[Processor] 步骤1: 提取 PDF 文本内容")
	var sb strings.Builder
	for _, doc := range docs {
		text, err := p.extractor.ExtractText(doc.Reader, doc.FileName)
		if err != nil {
			log.Errorf("[Processor] 提取文本失败, file: %s, error: %v", doc.FileName, err)
			return nil, NewStageError(StageExtraction, err)
		}
		sb.WriteString(text)
	}
	rawText := sb.String()
	log.Infof("[Processor] 步骤1: 文本提取完成, 内容长度: %d 字符", utf8.RuneCountInString(rawText))

	// 2. 文本切块
	log.Info("[Processor] 步骤2: 进行文本分块")
	chunks := p.splitter.Split(rawText)
	if len(chunks) == 0 {
		log.Warnf("[Processor] 未生成任何文本分块, 处理中止, requestID: %s", requestID)
		return nil, NewStageError(StageChunking, errors.New("未从上传文件中提取到任何文本"))
	}
	log.Infof("[Processor] 步骤2: 文本分块完成, 共生成 %d 个分块", len(chunks))

	// 3. 向量化所有分块
	log.Info("[Processor] 步骤3: 对分块进行向量化")
	vectors := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := p.embedder.CreateEmbedding(ctx, chunk)
		if err != nil {
			log.Errorf("[Processor] 分块 %d 向量化失败, error: %v", i, err)
			return nil, NewStageError(StageEmbedding, err)
		}
		vectors = append(vectors, vector)
	}

	// 4. 写入请求级索引，处理结束后删除
	log.Infof("[Processor] 步骤4: 写入向量索引, requestID: %s", requestID)
	if err := p.index.CreateCollection(requestID); err != nil {
		return nil, NewStageError(StageIndexing, err)
	}
	defer func() {
		if err := p.index.Drop(requestID); err != nil {
			log.Warnf("[Processor] 删除请求级索引失败, requestID: %s, error: %v", requestID, err)
		}
	}()
	if err := p.index.Add(ctx, requestID, chunks, vectors); err != nil {
		log.Errorf("[Processor] 写入向量索引失败, error: %v", err)
		return nil, NewStageError(StageIndexing, err)
	}

	// 5. 向量化问题并执行相似度检索
	log.Info("[Processor] 步骤5: 检索与问题最相关的分块")
	queryVector, err := p.embedder.CreateEmbedding(ctx, question)
	if err != nil {
		log.Errorf("[Processor] 问题向量化失败, error: %v", err)
		return nil, NewStageError(StageEmbedding, err)
	}
	matches, err := p.index.Query(ctx, requestID, queryVector, p.topK)
	if err != nil {
		log.Errorf("[Processor] 相似度检索失败, error: %v", err)
		return nil, NewStageError(StageRetrieval, err)
	}

	log.Infof("[Processor] 请求处理完成, requestID: %s, 命中 %d 个分块", requestID, len(matches))
	return matches, nil
}
