// Package textmeta provides pure text-analysis functions over raw HTML or
// Markdown blog content: titles, descriptions, keywords, headings, links and
// word/readability metrics. No I/O.
package textmeta

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/neurosnap/sentences/english"
	"golang.org/x/net/html"
)

// DefaultTitle is returned when no title can be extracted.
const DefaultTitle = "no title"

var (
	h1Regex       = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	hAnyRegex     = regexp.MustCompile(`(?is)<h([2-6])[^>]*>(.*?)</h[2-6]>`)
	htmlHeadRegex = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	mdTitleRegex  = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	mdHeadRegex   = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

	htmlTagRegex = regexp.MustCompile(`<[^>]+>`)

	imgTagRegex  = regexp.MustCompile(`(?is)<img[^>]*>`)
	srcAttrRegex = regexp.MustCompile(`(?is)src\s*=\s*["']([^"']+)["']`)
	altAttrRegex = regexp.MustCompile(`(?is)alt\s*=\s*["']([^"']*)["']`)
	mdImageRegex = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)[^)]*\)`)

	hrefRegex   = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*["']([^"']+)["']`)
	mdLinkRegex = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)[^)]*\)`)

	codeFenceRegex  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRegex = regexp.MustCompile("`[^`]*`")
	emphasisRegex   = regexp.MustCompile(`(\*\*|__|\*|_)`)
	blockquoteRegex = regexp.MustCompile(`(?m)^>\s?`)
	listMarkRegex   = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+`)
	hrRegex         = regexp.MustCompile(`(?m)^\s*(?:-\s*(?:-\s*){2,}|\*\s*(?:\*\s*){2,}|_\s*(?:_\s*){2,})$`)

	externalURLRegex = regexp.MustCompile(`^https?://`)
	wordCharRegex    = regexp.MustCompile(`[^a-z0-9\p{Hangul}\s]+`)
)

// Heading is a single document heading with its level (1-6).
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Image is an extracted image reference.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// LinkSet holds extracted links classified by destination.
type LinkSet struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
}

// ExtractTitle picks a document title: HTML <h1> first, then a Markdown
// level-1 heading, then any HTML <h2>-<h6>, else DefaultTitle.
func ExtractTitle(content string) string {
	if m := h1Regex.FindStringSubmatch(content); m != nil {
		if t := cleanInline(m[1]); t != "" {
			return t
		}
	}
	if m := mdTitleRegex.FindStringSubmatch(content); m != nil {
		if t := cleanInline(m[1]); t != "" {
			return t
		}
	}
	if m := hAnyRegex.FindStringSubmatch(content); m != nil {
		if t := cleanInline(m[2]); t != "" {
			return t
		}
	}
	return DefaultTitle
}

// ExtractDescription joins the first three sentences of the content; short
// results (<50 chars) are extended to five sentences, long ones (>160 chars)
// truncated to 157 plus "...".
func ExtractDescription(content string) string {
	text := ExtractTextContent(content)
	sents := splitSentences(text)

	desc := joinSentences(sents, 3)
	if len([]rune(desc)) < 50 {
		desc = joinSentences(sents, 5)
	}
	if runes := []rune(desc); len(runes) > 160 {
		desc = string(runes[:157]) + "..."
	}
	return desc
}

func joinSentences(sents []string, n int) string {
	if n > len(sents) {
		n = len(sents)
	}
	return strings.TrimSpace(strings.Join(sents[:n], " "))
}

// splitSentences tokenizes text into trimmed, non-empty sentences.
func splitSentences(text string) []string {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil
	}
	var out []string
	for _, s := range tokenizer.Tokenize(text) {
		t := strings.TrimSpace(s.Text)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ExtractKeywords ranks body words by frequency (lowercased, punctuation
// stripped, stop words and words of two characters or fewer dropped) and
// prepends title-derived keywords, deduplicated, capped at 8.
func ExtractKeywords(content, title string) []string {
	bodyWords := tokenizeWords(ExtractTextContent(content))

	freq := make(map[string]int)
	for _, w := range bodyWords {
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

	const maxKeywords = 8
	seen := make(map[string]bool)
	var keywords []string
	for _, w := range tokenizeWords(title) {
		if !seen[w] {
			seen[w] = true
			keywords = append(keywords, w)
		}
	}
	for _, w := range ranked {
		if len(keywords) >= maxKeywords {
			break
		}
		if !seen[w] {
			seen[w] = true
			keywords = append(keywords, w)
		}
	}
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// tokenizeWords lowercases, strips non-word/non-Hangul characters and drops
// stop words and words of two characters or fewer.
func tokenizeWords(text string) []string {
	cleaned := wordCharRegex.ReplaceAllString(strings.ToLower(text), " ")
	var words []string
	for _, w := range strings.Fields(cleaned) {
		if len([]rune(w)) <= 2 || stopWords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

// ExtractHeadings returns all HTML and Markdown headings in document order
// per syntax (HTML matches first, then Markdown).
func ExtractHeadings(content string) []Heading {
	var headings []Heading
	for _, m := range htmlHeadRegex.FindAllStringSubmatch(content, -1) {
		level, _ := strconv.Atoi(m[1])
		if t := cleanInline(m[2]); t != "" {
			headings = append(headings, Heading{Level: level, Text: t})
		}
	}
	// Markdown headings inside fenced code blocks are not headings.
	md := codeFenceRegex.ReplaceAllString(content, "")
	for _, m := range mdHeadRegex.FindAllStringSubmatch(md, -1) {
		if t := cleanInline(m[2]); t != "" {
			headings = append(headings, Heading{Level: len(m[1]), Text: t})
		}
	}
	return headings
}

// ExtractImages collects HTML <img> tags and Markdown image syntax.
func ExtractImages(content string) []Image {
	var images []Image
	for _, tag := range imgTagRegex.FindAllString(content, -1) {
		img := Image{}
		if m := srcAttrRegex.FindStringSubmatch(tag); m != nil {
			img.Src = m[1]
		}
		if m := altAttrRegex.FindStringSubmatch(tag); m != nil {
			img.Alt = m[1]
		}
		if img.Src != "" {
			images = append(images, img)
		}
	}
	for _, m := range mdImageRegex.FindAllStringSubmatch(content, -1) {
		images = append(images, Image{Src: m[2], Alt: m[1]})
	}
	return images
}

// ExtractLinks collects HTML and Markdown links, classifying absolute
// http(s) URLs as external and everything else as internal. Each list is
// deduplicated preserving first-seen order.
func ExtractLinks(content string) LinkSet {
	var urls []string
	for _, m := range hrefRegex.FindAllStringSubmatch(content, -1) {
		urls = append(urls, m[1])
	}
	// Strip image syntax first so ![alt](src) doesn't match as a link.
	md := mdImageRegex.ReplaceAllString(content, "")
	for _, m := range mdLinkRegex.FindAllStringSubmatch(md, -1) {
		urls = append(urls, m[2])
	}

	links := LinkSet{}
	seenInternal := make(map[string]bool)
	seenExternal := make(map[string]bool)
	for _, u := range urls {
		if externalURLRegex.MatchString(u) {
			if !seenExternal[u] {
				seenExternal[u] = true
				links.External = append(links.External, u)
			}
		} else if !seenInternal[u] {
			seenInternal[u] = true
			links.Internal = append(links.Internal, u)
		}
	}
	return links
}

// ExtractTextContent strips Markdown syntax and HTML tags, collapsing
// whitespace to single spaces.
func ExtractTextContent(content string) string {
	text := codeFenceRegex.ReplaceAllString(content, " ")
	text = mdImageRegex.ReplaceAllString(text, "$1")
	text = mdLinkRegex.ReplaceAllString(text, "$1")
	text = mdHeadRegex.ReplaceAllString(text, "$2")
	text = blockquoteRegex.ReplaceAllString(text, "")
	text = hrRegex.ReplaceAllString(text, " ")
	text = listMarkRegex.ReplaceAllString(text, "")
	text = inlineCodeRegex.ReplaceAllString(text, " ")
	text = emphasisRegex.ReplaceAllString(text, "")

	if strings.Contains(text, "<") {
		text = stripHTML(text)
	}
	return strings.Join(strings.Fields(text), " ")
}

// stripHTML walks the parsed node tree collecting text, skipping script and
// style content. Falls back to a tag-strip regex if parsing fails.
func stripHTML(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return htmlTagRegex.ReplaceAllString(content, " ")
	}

	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			traverse(child)
		}
	}
	traverse(doc)
	return sb.String()
}

// cleanInline strips nested tags and inline markup from heading/title text.
func cleanInline(s string) string {
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = emphasisRegex.ReplaceAllString(s, "")
	s = inlineCodeRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
