package advisor

import (
	"fmt"
	"strings"
	"unicode"

	"consultor-ai-api/internal/domain/entity"
)

// 引用最多取前几个选段
const maxCitations = 4

// buildCitations 将选段格式化为引用列表。
// source 形如 "People - People Leadership"，timestamp 为 MM:SS。
func buildCitations(passages []entity.SearchResult) []entity.Citation {
	if len(passages) == 0 {
		return nil
	}
	n := len(passages)
	if n > maxCitations {
		n = maxCitations
	}

	citations := make([]entity.Citation, 0, n)
	for _, p := range passages[:n] {
		citations = append(citations, entity.Citation{
			Source:    fmt.Sprintf("%s - %s", p.Framework, titleizeDocID(p.DocID)),
			Timestamp: formatTimestamp(p.TStart),
			Relevance: p.SimilarityScore,
			Framework: string(p.Framework),
			Context:   p.RelevanceReason,
		})
	}
	return citations
}

// titleizeDocID doc_id 转标题：下划线换空格、去数字、逐词首字母大写
func titleizeDocID(docID string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		if r == '_' {
			return ' '
		}
		return r
	}, docID)

	words := strings.Fields(cleaned)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// formatTimestamp 秒数转 MM:SS
func formatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
