package pipeline

import "fmt"

// Stage 标识请求处理管道中发生错误的阶段。
type Stage string

const (
	StageExtraction Stage = "extraction"
	StageChunking   Stage = "chunking"
	StageEmbedding  Stage = "embedding"
	StageIndexing   Stage = "indexing"
	StageRetrieval  Stage = "retrieval"
	StageGeneration Stage = "generation"
)

// StageError 将底层错误与所属阶段绑定，
// 接口层据此映射到不同的 HTTP 状态码。
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError 构造一个携带阶段信息的错误。
func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
