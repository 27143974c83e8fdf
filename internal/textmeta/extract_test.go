package textmeta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Hello", ExtractTitle("# Hello\n\nbody"))
	assert.Equal(t, "X", ExtractTitle("<h2>X</h2>"))
	assert.Equal(t, DefaultTitle, ExtractTitle("plain text"))

	// h1 wins over a Markdown heading
	assert.Equal(t, "HTML Title", ExtractTitle("<h1>HTML Title</h1>\n# MD Title"))

	// inline markup inside the heading is stripped
	assert.Equal(t, "Bold Title", ExtractTitle("# **Bold Title**"))
}

func TestExtractDescription(t *testing.T) {
	t.Run("short content is returned as-is", func(t *testing.T) {
		desc := ExtractDescription("One sentence here. Another follows. And a third one closes it.")
		assert.LessOrEqual(t, len([]rune(desc)), 160)
		assert.False(t, strings.HasSuffix(desc, "..."))
	})

	t.Run("long content is truncated with ellipsis", func(t *testing.T) {
		long := strings.Repeat("This is a fairly long sentence used to inflate the description. ", 10)
		desc := ExtractDescription(long)
		assert.LessOrEqual(t, len([]rune(desc)), 160)
		assert.True(t, strings.HasSuffix(desc, "..."))
	})
}

func TestExtractKeywords(t *testing.T) {
	content := "Docker containers make deployment simple. Docker images are layered. Containers share the kernel."
	keywords := ExtractKeywords(content, "Docker Deployment Guide")

	require.NotEmpty(t, keywords)
	assert.LessOrEqual(t, len(keywords), 8)
	// title keywords come first
	assert.Equal(t, "docker", keywords[0])
	assert.Contains(t, keywords, "containers")
	// stop words and short words never appear
	assert.NotContains(t, keywords, "the")
	assert.NotContains(t, keywords, "are")
}

func TestExtractHeadings(t *testing.T) {
	content := "<h1>Main</h1>\n## Section\n### Detail\n```\n# not a heading\n```"
	headings := ExtractHeadings(content)

	require.Len(t, headings, 3)
	assert.Equal(t, Heading{Level: 1, Text: "Main"}, headings[0])
	assert.Equal(t, Heading{Level: 2, Text: "Section"}, headings[1])
	assert.Equal(t, Heading{Level: 3, Text: "Detail"}, headings[2])
}

func TestExtractImages(t *testing.T) {
	content := `<img src="/a.png" alt="Alpha"> and ![Beta](/b.png)`
	images := ExtractImages(content)

	require.Len(t, images, 2)
	assert.Equal(t, Image{Src: "/a.png", Alt: "Alpha"}, images[0])
	assert.Equal(t, Image{Src: "/b.png", Alt: "Beta"}, images[1])
}

func TestExtractLinks(t *testing.T) {
	content := `<a href="https://x.com">ext</a> <a href="/local">int</a>
[again](https://x.com) [local again](/local) ![image](/img.png)`
	links := ExtractLinks(content)

	assert.Equal(t, []string{"https://x.com"}, links.External)
	assert.Equal(t, []string{"/local"}, links.Internal)
}

func TestExtractTextContent(t *testing.T) {
	content := "# Title\n\nSome **bold** text with [a link](/x) and `code`.\n\n```go\nfmt.Println()\n```\n\n<p>An HTML paragraph.</p>"
	text := ExtractTextContent(content)

	assert.Contains(t, text, "Some bold text with a link")
	assert.Contains(t, text, "An HTML paragraph.")
	assert.NotContains(t, text, "fmt.Println")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "<p>")
}
