package aiclient

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSONBlock is returned when a model reply contains no parsable fenced
// JSON block. Callers treat this as a hard parse failure, never retried here.
var ErrNoJSONBlock = errors.New("no fenced json block in model reply")

var (
	placeholderRegex = regexp.MustCompile(`\{\{([A-Z_]+)\}\}`)
	jsonBlockRegex   = regexp.MustCompile("(?s)```json\\s*(.*?)```")
)

// RenderPrompt substitutes {{NAME}} placeholders in the template. Every
// placeholder referenced by the template must be present in vars; a missing
// variable fails before any network call.
func RenderPrompt(template string, vars map[string]string) (string, error) {
	var missing []string
	for _, m := range placeholderRegex.FindAllStringSubmatch(template, -1) {
		if _, ok := vars[m[1]]; !ok {
			missing = append(missing, m[1])
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt template is missing variables: %s", strings.Join(dedupe(missing), ", "))
	}

	rendered := placeholderRegex.ReplaceAllStringFunc(template, func(ph string) string {
		name := placeholderRegex.FindStringSubmatch(ph)[1]
		return vars[name]
	})
	return rendered, nil
}

func dedupe(items []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// TruncateContent cuts content to at most limit characters. It prefers the
// last paragraph boundary (\n\n) falling within the last 20% of the limit,
// then the last sentence-ending period in that window, else a hard cut with
// a trailing ellipsis. The result never exceeds limit+3 characters.
func TruncateContent(content string, limit int) string {
	runes := []rune(content)
	if limit <= 0 || len(runes) <= limit {
		return content
	}

	cut := string(runes[:limit])
	windowStart := limit - limit/5

	if idx := strings.LastIndex(cut, "\n\n"); idx >= 0 && runeLen(cut[:idx]) >= windowStart {
		return strings.TrimSpace(cut[:idx])
	}
	if idx := strings.LastIndex(cut, "."); idx >= 0 && runeLen(cut[:idx]) >= windowStart {
		return cut[:idx+1]
	}
	return cut + "..."
}

func runeLen(s string) int {
	return len([]rune(s))
}

// ExtractJSONBlock returns the contents of the first ```json fenced block
// in a model reply, or ErrNoJSONBlock.
func ExtractJSONBlock(reply string) (string, error) {
	m := jsonBlockRegex.FindStringSubmatch(reply)
	if m == nil {
		return "", ErrNoJSONBlock
	}
	block := strings.TrimSpace(m[1])
	if block == "" {
		return "", ErrNoJSONBlock
	}
	return block, nil
}

// transientMarkers are message fragments that mark an AI failure as
// retryable by the caller.
var transientMarkers = []string{"timeout", "network", "502", "503"}

// IsTransientError reports whether err looks like a transient transport
// failure (timeout/network/502/503 in the message chain).
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
