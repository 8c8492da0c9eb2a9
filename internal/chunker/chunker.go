// Package chunker 提供按固定长度和重叠切分长文本的能力。
package chunker

// Splitter 按字符数（rune）将文本切分为带重叠的固定窗口。
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

// New 创建一个 Splitter。size 必须为正数；overlap 为负时按 0 处理。
func New(size, overlap int) *Splitter {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	return &Splitter{chunkSize: size, chunkOverlap: overlap}
}

// Split 将长文本按指定大小和重叠进行切分。
// 除最后一块外每块恰好 chunkSize 个字符，相邻两块共享 chunkOverlap 个字符。
// 空输入返回 nil。
func (s *Splitter) Split(text string) []string {
	if s.chunkSize <= s.chunkOverlap {
		// Fallback to simple split if overlap is invalid
		return s.simpleSplit(text)
	}

	var chunks []string
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := s.chunkSize - s.chunkOverlap
	for i := 0; i < len(runes); i += step {
		end := i + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

func (s *Splitter) simpleSplit(text string) []string {
	var chunks []string
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	for i := 0; i < len(runes); i += s.chunkSize {
		end := i + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
