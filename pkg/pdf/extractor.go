// Package pdf 提供从 PDF 文件中提取纯文本的能力。
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"ask-docs-go/pkg/log"

	lpdf "github.com/ledongthuc/pdf"
)

// Extractor 从 PDF 字节流中提取文本。
type Extractor struct{}

// NewExtractor 创建一个新的 Extractor 实例。
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText 读取整个文件内容并按页序提取文本后拼接返回。
// 某一页没有可提取文本（或该页解码失败）时该页贡献空串；
// 文件本身无法解析时返回提取错误。
func (e *Extractor) ExtractText(r io.Reader, fileName string) (text string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("读取文件内容失败: %w", err)
	}

	// 底层解析器在个别畸形文件上会 panic，统一转换为错误返回
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("解析 PDF 失败 (%s): %v", fileName, p)
		}
	}()

	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析 PDF 失败 (%s): %w", fileName, err)
	}

	var sb strings.Builder
	fonts := make(map[string]*lpdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, pageErr := page.GetPlainText(fonts)
		if pageErr != nil {
			log.Warnf("[PDFExtractor] 第 %d 页文本提取失败, file: %s, error: %v", i, fileName, pageErr)
			continue
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}
