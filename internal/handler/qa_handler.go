// Package handler 包含了所有 HTTP 请求的处理器。
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ask-docs-go/internal/model"
	"ask-docs-go/internal/pipeline"
	"ask-docs-go/internal/service"
	"ask-docs-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// QAHandler 结构体定义了文档问答相关的处理器。
type QAHandler struct {
	qaService service.QAService
}

// NewQAHandler 创建一个新的 QAHandler 实例。
func NewQAHandler(qaService service.QAService) *QAHandler {
	return &QAHandler{
		qaService: qaService,
	}
}

// Root 是欢迎路由的处理函数。
func (h *QAHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Ask Docs API!"})
}

// AskQuestion 处理上传 PDF 并基于其内容回答问题的请求。
func (h *QAHandler) AskQuestion(c *gin.Context) {
	question := strings.TrimSpace(c.PostForm("user_question"))
	if question == "" {
		log.Warnf("[QAHandler] 请求缺少 user_question 字段")
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Detail: "Error processing question: user_question is required",
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Warnf("[QAHandler] 解析 multipart 表单失败: %v", err)
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Detail: fmt.Sprintf("Error processing question: %s", err.Error()),
		})
		return
	}
	fileHeaders := form.File["pdf_files"]
	if len(fileHeaders) == 0 {
		log.Warnf("[QAHandler] 请求缺少 pdf_files 文件")
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Detail: "Error processing question: at least one pdf_files part is required",
		})
		return
	}

	docs := make([]model.UploadedDocument, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			log.Errorf("[QAHandler] 打开上传文件失败, file: %s, error: %v", fh.Filename, err)
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Detail: fmt.Sprintf("Error processing question: %s", err.Error()),
			})
			return
		}
		defer f.Close()
		docs = append(docs, model.UploadedDocument{FileName: fh.Filename, Reader: f})
	}

	log.Infof("[QAHandler] 收到问答请求, question: %q, files: %d", question, len(docs))
	answer, err := h.qaService.Ask(c.Request.Context(), question, docs)
	if err != nil {
		status := statusForError(err)
		log.Errorf("[QAHandler] 问答处理失败, status: %d, error: %v", status, err)
		c.JSON(status, model.ErrorResponse{
			Detail: fmt.Sprintf("Error processing question: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, model.AnswerResponse{Answer: answer})
}

// statusForError 将管道各阶段的错误映射到 HTTP 状态码：
// 客户端输入问题（坏 PDF、无文本）→ 400，索引/检索内部失败 → 500，
// 上游模型服务失败 → 502。
func statusForError(err error) int {
	var se *pipeline.StageError
	if !errors.As(err, &se) {
		return http.StatusBadRequest
	}
	switch se.Stage {
	case pipeline.StageExtraction, pipeline.StageChunking:
		return http.StatusBadRequest
	case pipeline.StageIndexing, pipeline.StageRetrieval:
		return http.StatusInternalServerError
	case pipeline.StageEmbedding, pipeline.StageGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
