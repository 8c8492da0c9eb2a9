package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"ask-docs-go/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "")
	m.Run()
}

// buildSinglePagePDF 动态计算 xref 偏移，构造一个最小的单页 PDF。
func buildSinglePagePDF(text string) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 6)
	buf.WriteString("%PDF-1.4\n")

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	xrefPos := buf.Len()
	buf.WriteString("xref\n0 6\n")
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i < 6; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	return buf.Bytes()
}

func TestExtractTextSinglePage(t *testing.T) {
	const sentence = "The capital of France is Paris."
	data := buildSinglePagePDF(sentence)

	e := NewExtractor()
	text, err := e.ExtractText(bytes.NewReader(data), "paris.pdf")
	require.NoError(t, err)
	assert.Contains(t, strings.ReplaceAll(text, "\n", " "), "Paris")
}

func TestExtractTextMalformedFile(t *testing.T) {
	e := NewExtractor()
	_, err := e.ExtractText(strings.NewReader("this is definitely not a pdf"), "bad.pdf")
	assert.Error(t, err)
}

func TestExtractTextEmptyInput(t *testing.T) {
	e := NewExtractor()
	_, err := e.ExtractText(strings.NewReader(""), "empty.pdf")
	assert.Error(t, err)
}
