// Package vectorstore 封装了基于 chromem-go 的向量库读写。
package vectorstore

import (
	"context"
	"fmt"
	"strings"

	"ask-docs-go/internal/model"
	"ask-docs-go/pkg/log"

	"github.com/philippgille/chromem-go"
)

// collectionPrefix 是每个请求私有集合的名称前缀。
const collectionPrefix = "askdocs_"

// Store 持有向量库句柄。每个请求使用独立的集合，
// 请求之间互不可见，避免共享索引路径带来的并发读写冲突。
type Store struct {
	db *chromem.DB
}

// NewStore 在指定目录打开（或创建）持久化向量库。
// 上次进程异常退出遗留的请求级集合会在此处清理。
func NewStore(path string) (*Store, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("初始化向量库失败: %w", err)
	}
	s := &Store{db: db}
	s.dropOrphans()
	return s, nil
}

// NewMemoryStore 创建一个仅驻留内存的向量库，用于测试。
func NewMemoryStore() *Store {
	return &Store{db: chromem.NewDB()}
}

// dropOrphans 删除所有遗留的请求级集合。
func (s *Store) dropOrphans() {
	for name := range s.db.ListCollections() {
		if !strings.HasPrefix(name, collectionPrefix) {
			continue
		}
		if err := s.db.DeleteCollection(name); err != nil {
			log.Warnf("[VectorStore] 清理遗留集合失败, name: %s, error: %v", name, err)
			continue
		}
		log.Infof("[VectorStore] 已清理遗留集合: %s", name)
	}
}

// CreateCollection 为指定请求创建一个空集合。
// 同名集合已存在时先删除再重建（全量重建语义）。
func (s *Store) CreateCollection(requestID string) error {
	name := collectionPrefix + requestID
	if err := s.db.DeleteCollection(name); err != nil {
		return fmt.Errorf("删除旧集合失败: %w", err)
	}
	if _, err := s.db.CreateCollection(name, nil, nil); err != nil {
		return fmt.Errorf("创建集合失败: %w", err)
	}
	return nil
}

// Add 将分块文本及其向量批量写入指定请求的集合。
func (s *Store) Add(ctx context.Context, requestID string, chunks []string, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("分块数量 (%d) 与向量数量 (%d) 不一致", len(chunks), len(vectors))
	}
	collection := s.db.GetCollection(collectionPrefix+requestID, nil)
	if collection == nil {
		return fmt.Errorf("集合不存在: %s", requestID)
	}

	ids := make([]string, len(chunks))
	for i := range chunks {
		ids[i] = fmt.Sprintf("%s_%d", requestID, i)
	}
	if err := collection.Add(ctx, ids, vectors, nil, chunks); err != nil {
		return fmt.Errorf("写入向量失败: %w", err)
	}
	return nil
}

// Query 在指定请求的集合中按余弦相似度检索 topK 个最相近的分块。
// topK 大于集合内文档数时按文档数截断；空集合视为检索失败。
func (s *Store) Query(ctx context.Context, requestID string, vector []float32, topK int) ([]model.ChunkMatch, error) {
	collection := s.db.GetCollection(collectionPrefix+requestID, nil)
	if collection == nil {
		return nil, fmt.Errorf("集合不存在: %s", requestID)
	}

	count := collection.Count()
	if count == 0 {
		return nil, fmt.Errorf("集合为空，无法执行检索: %s", requestID)
	}
	if topK <= 0 || topK > count {
		topK = count
	}

	results, err := collection.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("相似度检索失败: %w", err)
	}

	matches := make([]model.ChunkMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, model.ChunkMatch{
			Content:    r.Content,
			Similarity: r.Similarity,
		})
	}
	return matches, nil
}

// Drop 删除指定请求的集合及其持久化数据。
func (s *Store) Drop(requestID string) error {
	if err := s.db.DeleteCollection(collectionPrefix + requestID); err != nil {
		return fmt.Errorf("删除集合失败: %w", err)
	}
	return nil
}
