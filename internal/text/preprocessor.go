// Package text provides text cleaning and word counting utilities for
// speech synthesis.
//
// The cleaning pipeline strips markdown and wiki syntax from note bodies so
// the synthesized speech reads naturally. Rules are applied in a fixed order
// because later rules assume earlier ones already ran.
package text

import (
	"regexp"
	"strings"
)

// Regex patterns for speech cleaning, in application order.
const (
	headingRegexPattern      = `(?m)^#{1,6}\s+`
	boldStarRegexPattern     = `\*\*(.+?)\*\*`
	italicStarRegexPattern   = `\*(.+?)\*`
	boldUnderRegexPattern    = `__(.+?)__`
	italicUnderRegexPattern  = `_(.+?)_`
	codeBlockRegexPattern    = "(?s)```.*?```"
	inlineCodeRegexPattern   = "`([^`]+)`"
	markdownLinkRegexPattern = `\[([^\]]+)\]\([^)]+\)`
	urlRegexPattern          = `https?://\S+`
	wwwRegexPattern          = `www\.\S+`
	emailRegexPattern        = `[\w.-]+@[\w.-]+\.\w+`
	htmlTagRegexPattern      = `<[^>]+>`
	bulletMarkerRegexPattern = `(?m)^\s*[-*+]\s+`
	numberMarkerRegexPattern = `(?m)^\s*\d+\.\s+`
	bracketRegexPattern      = `[\[\]{}]`
	multiSpaceRegexPattern   = ` {2,}`
	multiNewlineRegexPattern = "\n{2,}"
	embedRegexPattern        = `!\[\[.*?\]\]`
	wikiLinkRegexPattern     = `\[\[([^\]|]+)\|?([^\]]*)\]\]`
	frontMatterRegexPattern  = `(?s)^---.*?---\n?`
	leftoverCharRegexPattern = `[|~^]`
)

// codeBlockPlaceholder is the spoken phrase substituted for fenced code
// blocks ("code example" in Korean).
const codeBlockPlaceholder = " 코드 예시 "

// Preprocessor cleans note text for speech synthesis. It is pure and
// deterministic, and re-applying it to already-cleaned text is a no-op.
type Preprocessor struct {
	heading      *regexp.Regexp
	boldStar     *regexp.Regexp
	italicStar   *regexp.Regexp
	boldUnder    *regexp.Regexp
	italicUnder  *regexp.Regexp
	codeBlock    *regexp.Regexp
	inlineCode   *regexp.Regexp
	markdownLink *regexp.Regexp
	url          *regexp.Regexp
	www          *regexp.Regexp
	email        *regexp.Regexp
	htmlTag      *regexp.Regexp
	bulletMarker *regexp.Regexp
	numberMarker *regexp.Regexp
	bracket      *regexp.Regexp
	multiSpace   *regexp.Regexp
	multiNewline *regexp.Regexp
	embed        *regexp.Regexp
	wikiLink     *regexp.Regexp
	frontMatter  *regexp.Regexp
	leftoverChar *regexp.Regexp
}

// NewPreprocessor creates a preprocessor with all patterns compiled upfront.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		heading:      regexp.MustCompile(headingRegexPattern),
		boldStar:     regexp.MustCompile(boldStarRegexPattern),
		italicStar:   regexp.MustCompile(italicStarRegexPattern),
		boldUnder:    regexp.MustCompile(boldUnderRegexPattern),
		italicUnder:  regexp.MustCompile(italicUnderRegexPattern),
		codeBlock:    regexp.MustCompile(codeBlockRegexPattern),
		inlineCode:   regexp.MustCompile(inlineCodeRegexPattern),
		markdownLink: regexp.MustCompile(markdownLinkRegexPattern),
		url:          regexp.MustCompile(urlRegexPattern),
		www:          regexp.MustCompile(wwwRegexPattern),
		email:        regexp.MustCompile(emailRegexPattern),
		htmlTag:      regexp.MustCompile(htmlTagRegexPattern),
		bulletMarker: regexp.MustCompile(bulletMarkerRegexPattern),
		numberMarker: regexp.MustCompile(numberMarkerRegexPattern),
		bracket:      regexp.MustCompile(bracketRegexPattern),
		multiSpace:   regexp.MustCompile(multiSpaceRegexPattern),
		multiNewline: regexp.MustCompile(multiNewlineRegexPattern),
		embed:        regexp.MustCompile(embedRegexPattern),
		wikiLink:     regexp.MustCompile(wikiLinkRegexPattern),
		frontMatter:  regexp.MustCompile(frontMatterRegexPattern),
		leftoverChar: regexp.MustCompile(leftoverCharRegexPattern),
	}
}

// CleanForSpeech strips markdown, links, URLs and decorative characters from
// text so it can be spoken. The transformation order is load-bearing; do not
// reorder the steps.
func (p *Preprocessor) CleanForSpeech(text string) string {
	// 1. Heading markers.
	processed := p.heading.ReplaceAllString(text, "")

	// 2. Bold and italic emphasis, unwrapped to their inner text.
	processed = p.boldStar.ReplaceAllString(processed, "$1")
	processed = p.italicStar.ReplaceAllString(processed, "$1")
	processed = p.boldUnder.ReplaceAllString(processed, "$1")
	processed = p.italicUnder.ReplaceAllString(processed, "$1")

	// 3. Fenced code blocks become a spoken placeholder; inline code is
	// unwrapped.
	processed = p.codeBlock.ReplaceAllString(processed, codeBlockPlaceholder)
	processed = p.inlineCode.ReplaceAllString(processed, "$1")

	// 4. Markdown links keep only their label.
	processed = p.markdownLink.ReplaceAllString(processed, "$1")

	// 5. Bare URLs and emails are dropped entirely.
	processed = p.url.ReplaceAllString(processed, "")
	processed = p.www.ReplaceAllString(processed, "")
	processed = p.email.ReplaceAllString(processed, "")

	// 6. HTML tags.
	processed = p.htmlTag.ReplaceAllString(processed, "")

	// 7. List-item markers at line start.
	processed = p.bulletMarker.ReplaceAllString(processed, "")
	processed = p.numberMarker.ReplaceAllString(processed, "")

	// 8. Bracket characters, keeping the enclosed text.
	processed = p.bracket.ReplaceAllString(processed, "")

	// 9. Collapse space and newline runs.
	processed = p.multiSpace.ReplaceAllString(processed, " ")
	processed = p.multiNewline.ReplaceAllString(processed, "\n")

	// 10. Embed and wiki-link syntax. The wiki-link rewrite emits
	// label+target in that order, matching the captions of previously
	// generated audio.
	processed = p.embed.ReplaceAllString(processed, "")
	processed = p.wikiLink.ReplaceAllString(processed, "${2}${1}")

	// 11. A leading metadata block, normally already removed upstream.
	processed = p.frontMatter.ReplaceAllString(processed, "")

	// 12. Leftover decorative characters.
	processed = p.leftoverChar.ReplaceAllString(processed, "")

	// 13. Trim.
	return strings.TrimSpace(processed)
}
