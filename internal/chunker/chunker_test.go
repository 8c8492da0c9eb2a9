package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyInput(t *testing.T) {
	s := New(10, 2)
	assert.Nil(t, s.Split(""))
}

func TestSplitShorterThanChunkSize(t *testing.T) {
	s := New(100, 10)
	chunks := s.Split("hello world")
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplitWindowSizeAndOverlap(t *testing.T) {
	// 25 个字符，size=10，overlap=2，step=8：[0,10) [8,18) [16,25)
	text := "abcdefghijklmnopqrstuvwxy"
	s := New(10, 2)
	chunks := s.Split(text)
	require.Len(t, chunks, 3)

	assert.Equal(t, "abcdefghij", chunks[0])
	assert.Equal(t, "ijklmnopqr", chunks[1])
	assert.Equal(t, "qrstuvwxy", chunks[2])

	// 除最后一块外每块恰好 chunkSize 个字符
	for i := 0; i < len(chunks)-1; i++ {
		assert.Len(t, chunks[i], 10)
	}
	// 相邻两块共享 overlap 个字符
	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i][len(chunks[i])-2:]
		head := chunks[i+1][:2]
		assert.Equal(t, tail, head, "chunk %d/%d overlap mismatch", i, i+1)
	}
}

func TestSplitChunkCount(t *testing.T) {
	// L=100, C=10, O=2, step=8: 窗口起点 0,8,...,96 => 13 块
	text := strings.Repeat("x", 100)
	s := New(10, 2)
	chunks := s.Split(text)
	assert.Len(t, chunks, 13)
}

func TestSplitUnicodeCountsRunes(t *testing.T) {
	// 多字节字符按 rune 计数，不会把字符切成半个
	text := strings.Repeat("中文分块测试", 4) // 24 runes
	s := New(10, 2)
	chunks := s.Split(text)
	require.NotEmpty(t, chunks)
	assert.Equal(t, 10, len([]rune(chunks[0])))
	var joined strings.Builder
	joined.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		joined.WriteString(string([]rune(chunks[i])[2:]))
	}
	assert.Equal(t, text, joined.String())
}

func TestSplitOverlapNotSmallerThanSizeFallsBack(t *testing.T) {
	text := "abcdefgh"
	s := New(4, 4)
	chunks := s.Split(text)
	require.Len(t, chunks, 2)
	assert.Equal(t, "abcd", chunks[0])
	assert.Equal(t, "efgh", chunks[1])
}
