package textmeta

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// ContentStats is the output of AnalyzeContent.
type ContentStats struct {
	KeywordDensity     map[string]float64 `json:"keywordDensity"` // percent, top 10 by frequency
	SentenceCount      int                `json:"sentenceCount"`
	ParagraphCount     int                `json:"paragraphCount"`
	AvgSentenceLength  float64            `json:"avgSentenceLength"`
	ReadabilityScore   float64            `json:"readabilityScore"` // [0,100]
	WordCount          int                `json:"wordCount"`
	ReadingTimeMinutes int                `json:"readingTimeMinutes"`
}

// CountWords counts words treating every two CJK characters as one word
// alongside whitespace-separated Latin words.
func CountWords(text string) int {
	cjk := 0
	var latin strings.Builder
	for _, r := range text {
		if isCJK(r) {
			cjk++
			latin.WriteRune(' ')
		} else {
			latin.WriteRune(r)
		}
	}
	latinWords := len(strings.Fields(latin.String()))
	return int(math.Ceil(float64(cjk)/2)) + latinWords
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r)
}

// CalculateReadingTime estimates reading minutes at 200 words per minute,
// never less than one minute.
func CalculateReadingTime(wordCount int) int {
	minutes := int(math.Ceil(float64(wordCount) / 200))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// AnalyzeContent computes keyword density, sentence/paragraph counts and a
// readability heuristic over raw HTML/Markdown content.
func AnalyzeContent(content string) ContentStats {
	text := ExtractTextContent(content)
	words := tokenizeWords(text)
	wordCount := CountWords(text)

	stats := ContentStats{
		KeywordDensity:     keywordDensity(words),
		SentenceCount:      len(splitSentences(text)),
		ParagraphCount:     countParagraphs(content),
		WordCount:          wordCount,
		ReadingTimeMinutes: CalculateReadingTime(wordCount),
	}

	if stats.SentenceCount > 0 {
		stats.AvgSentenceLength = round2(float64(wordCount) / float64(stats.SentenceCount))
	}
	stats.ReadabilityScore = readability(stats.AvgSentenceLength, stats.SentenceCount)
	return stats
}

// keywordDensity maps the top 10 words by frequency to their share of all
// counted words, in percent rounded to two decimals.
func keywordDensity(words []string) map[string]float64 {
	density := make(map[string]float64)
	if len(words) == 0 {
		return density
	}

	freq := make(map[string]int)
	for _, w := range words {
		freq[w]++
	}
	ranked := make([]string, 0, len(freq))
	for w := range freq {
		ranked = append(ranked, w)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	total := float64(len(words))
	for _, w := range ranked {
		density[w] = round2(float64(freq[w]) / total * 100)
	}
	return density
}

func countParagraphs(content string) int {
	count := 0
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}

// readability starts at 100 and is penalized for average sentence length
// outside [5,20] words and for very short documents, clamped to [0,100].
func readability(avgSentenceLength float64, sentenceCount int) float64 {
	score := 100.0
	if avgSentenceLength > 20 {
		score -= (avgSentenceLength - 20) * 2
	} else if sentenceCount > 0 && avgSentenceLength < 5 {
		score -= (5 - avgSentenceLength) * 3
	}
	if sentenceCount < 3 {
		score -= 15
	}
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
