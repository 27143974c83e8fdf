package textmeta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 3, CountWords("three latin words"))
	// four Hangul characters count as two words
	assert.Equal(t, 2, CountWords("블로그글"))
	// mixed text adds both parts
	assert.Equal(t, 2+1, CountWords("two words 한글"))
}

func TestCalculateReadingTime(t *testing.T) {
	assert.Equal(t, 1, CalculateReadingTime(0))
	assert.Equal(t, 1, CalculateReadingTime(199))
	assert.Equal(t, 2, CalculateReadingTime(400))
}

func TestAnalyzeContent(t *testing.T) {
	content := "First sentence about testing. Second sentence about testing too. Third sentence closes the paragraph.\n\nA second paragraph with more testing words."
	stats := AnalyzeContent(content)

	assert.Equal(t, 2, stats.ParagraphCount)
	assert.GreaterOrEqual(t, stats.SentenceCount, 3)
	assert.Equal(t, 1, stats.ReadingTimeMinutes)
	assert.GreaterOrEqual(t, stats.ReadabilityScore, 0.0)
	assert.LessOrEqual(t, stats.ReadabilityScore, 100.0)
	assert.LessOrEqual(t, len(stats.KeywordDensity), 10)
	for _, pct := range stats.KeywordDensity {
		assert.Greater(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
	}
}

func TestReadabilityPenalties(t *testing.T) {
	// Two very long sentences: penalized for length and for sentence count.
	long := strings.Repeat("word ", 40) + ". " + strings.Repeat("word ", 40) + "."
	stats := AnalyzeContent(long)
	assert.Less(t, stats.ReadabilityScore, 100.0)
}
