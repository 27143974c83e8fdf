package textmeta

// Bilingual stop-word set used by keyword extraction and density analysis.
var stopWords = map[string]bool{
	// English
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "this": true, "that": true, "with": true,
	"they": true, "them": true, "then": true, "than": true, "from": true,
	"will": true, "would": true, "there": true, "their": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "who": true,
	"how": true, "why": true, "your": true, "about": true, "into": true,
	"over": true, "after": true, "before": true, "also": true, "just": true,
	"more": true, "most": true, "some": true, "such": true, "only": true,
	"very": true, "here": true, "been": true, "being": true, "both": true,
	"each": true, "other": true, "same": true, "does": true, "doing": true,
	// Korean particles and fillers
	"그리고": true, "그러나": true, "하지만": true, "그래서": true, "또한": true,
	"그런데": true, "따라서": true, "이것": true, "저것": true, "그것": true,
	"있는": true, "있다": true, "없다": true, "하는": true, "한다": true,
	"합니다": true, "입니다": true, "됩니다": true, "대한": true, "위한": true,
	"때문에": true, "통해": true, "여러": true, "우리": true, "모든": true,
}
