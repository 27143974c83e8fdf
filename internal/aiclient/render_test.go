package aiclient

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrompt(t *testing.T) {
	t.Run("substitutes all placeholders", func(t *testing.T) {
		out, err := RenderPrompt("Title: {{TITLE}}, Type: {{CONTENT_TYPE}}", map[string]string{
			"TITLE":        "Hello",
			"CONTENT_TYPE": "markdown",
		})
		require.NoError(t, err)
		assert.Equal(t, "Title: Hello, Type: markdown", out)
	})

	t.Run("missing variable fails before any call", func(t *testing.T) {
		_, err := RenderPrompt("{{TITLE}} {{CONTENT}}", map[string]string{"TITLE": "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CONTENT")
	})
}

func TestTruncateContent(t *testing.T) {
	t.Run("short content untouched", func(t *testing.T) {
		assert.Equal(t, "short", TruncateContent("short", 100))
	})

	t.Run("result never exceeds limit plus ellipsis", func(t *testing.T) {
		content := strings.Repeat("a", 500)
		out := TruncateContent(content, 100)
		assert.LessOrEqual(t, len([]rune(out)), 103)
	})

	t.Run("prefers paragraph boundary in the last fifth", func(t *testing.T) {
		content := strings.Repeat("x", 90) + "\n\n" + strings.Repeat("y", 100)
		out := TruncateContent(content, 100)
		assert.Equal(t, strings.Repeat("x", 90), out)
	})

	t.Run("falls back to sentence boundary", func(t *testing.T) {
		content := strings.Repeat("x", 89) + ". " + strings.Repeat("y", 100)
		out := TruncateContent(content, 100)
		assert.Equal(t, strings.Repeat("x", 89)+".", out)
	})

	t.Run("hard cut appends ellipsis", func(t *testing.T) {
		content := strings.Repeat("z", 200)
		out := TruncateContent(content, 100)
		assert.Equal(t, strings.Repeat("z", 100)+"...", out)
	})
}

func TestExtractJSONBlock(t *testing.T) {
	t.Run("extracts first fenced block", func(t *testing.T) {
		reply := "Sure, here you go:\n```json\n{\"a\": 1}\n```\nAnything else?"
		block, err := ExtractJSONBlock(reply)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a": 1}`, block)
	})

	t.Run("no block is a hard failure", func(t *testing.T) {
		_, err := ExtractJSONBlock("no json here")
		assert.ErrorIs(t, err, ErrNoJSONBlock)
	})

	t.Run("empty block is a hard failure", func(t *testing.T) {
		_, err := ExtractJSONBlock("```json\n\n```")
		assert.ErrorIs(t, err, ErrNoJSONBlock)
	})
}

func TestIsTransientError(t *testing.T) {
	assert.False(t, IsTransientError(nil))
	assert.False(t, IsTransientError(errors.New("invalid api key")))
	assert.True(t, IsTransientError(errors.New("request Timeout exceeded")))
	assert.True(t, IsTransientError(errors.New("network unreachable")))
	assert.True(t, IsTransientError(errors.New("upstream returned 503")))
	assert.True(t, IsTransientError(errors.New("bad gateway: 502")))
}
