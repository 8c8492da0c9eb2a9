// Package model 定义了请求处理过程中流转的数据结构。
package model

import "io"

// UploadedDocument 表示一次请求中上传的单个 PDF 文件。
// 文件内容只在本次请求内有效，处理完即丢弃。
type UploadedDocument struct {
	FileName string
	Reader   io.Reader
}

// ChunkMatch 表示一次相似度检索命中的文本分块。
type ChunkMatch struct {
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

// AnswerResponse 是问答接口的成功响应体。
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// ErrorResponse 是问答接口的失败响应体。
type ErrorResponse struct {
	Detail string `json:"detail"`
}
