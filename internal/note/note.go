// Package note parses vault documents into metadata and body, and mutates
// them with the generated audio section.
//
// The metadata block is the minimal front-matter subset the pipeline needs:
// a leading block delimited by "---" lines holding one key:value pair per
// line, with a single level of sequence values ("key:" followed by "- item"
// lines). Anything outside that subset passes through unparsed in the body.
package note

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/heomin86/obsidian-audio-generator/internal/text"
)

// Metadata keys the pipeline reads or writes.
const (
	// KeyAudioFile names the generated audio artifact. Its presence
	// signals that audio was already generated for the note.
	KeyAudioFile = "audio_file"
	// KeyType is the note category used for prompt selection.
	KeyType = "type"
	// KeyLastModified is rewritten whenever the note is mutated.
	KeyLastModified = "last_modified"
)

const (
	blockDelimiter = "---"

	// timestampLayout is the fixed ISO-8601-with-offset form used for
	// last_modified values.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"

	// timestampZoneOffsetSeconds pins last_modified to KST.
	timestampZoneOffsetSeconds = 9 * 60 * 60
)

// audioSectionFormat is the section inserted above the note body: a heading,
// an embedded audio player, and a caption with the word count and estimated
// listening time. The trailing separator keeps it visually apart from the
// body.
const audioSectionFormat = `## 🎙️ 오디오 버전 듣기

<audio controls style="width: 100%%; margin: 15px 0 20px 0;">
  <source src="%s" type="audio/mpeg">
  Your browser does not support the audio element.
</audio>

**이 노트의 요약을 음성으로 들을 수 있습니다** (%d단어, 약 %d분 소요)

---

`

var (
	frontMatterPattern  = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?`)
	lastModifiedPattern = regexp.MustCompile(`last_modified:.*\n`)
)

// timestampZone is the fixed zone last_modified values are rendered in.
var timestampZone = time.FixedZone("+09:00", timestampZoneOffsetSeconds)

// Metadata is the parsed key-value block of a document. Values are either
// string or []string.
type Metadata map[string]any

// StringValue returns the string value for key, or "" when the key is absent
// or holds a sequence.
func (m Metadata) StringValue(key string) string {
	value, ok := m[key].(string)
	if !ok {
		return ""
	}

	return value
}

// Document is a parsed vault document. RawContent is the verbatim original;
// Metadata and Body are derived from it.
type Document struct {
	RawContent string
	Metadata   Metadata
	Body       string
}

// Parse splits raw content into a metadata block and body. An absent or
// unparseable block yields empty metadata and the full content as body;
// parsing never fails.
func Parse(rawContent string) *Document {
	document := &Document{
		RawContent: rawContent,
		Metadata:   Metadata{},
		Body:       rawContent,
	}

	match := frontMatterPattern.FindStringSubmatch(rawContent)
	if match == nil {
		return document
	}

	document.Metadata = parseBlock(match[1])
	document.Body = rawContent[len(match[0]):]

	return document
}

// parseBlock parses the inner lines of a metadata block.
func parseBlock(block string) Metadata {
	metadata := Metadata{}

	lines := strings.Split(block, "\n")
	for lineIndex, line := range lines {
		colonIndex := strings.Index(line, ":")
		if colonIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:colonIndex])
		value := unquote(strings.TrimSpace(line[colonIndex+1:]))

		if value == "" {
			items := collectSequence(lines, lineIndex+1)
			if len(items) > 0 {
				metadata[key] = items

				continue
			}
		}

		metadata[key] = value
	}

	return metadata
}

// collectSequence gathers "- item" lines following an empty-valued key until
// a non-indented, non-empty line ends the sequence.
func collectSequence(lines []string, start int) []string {
	var items []string

	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") {
			items = append(items, strings.TrimPrefix(trimmed, "- "))

			continue
		}

		if trimmed != "" && !strings.HasPrefix(line, " ") {
			break
		}
	}

	return items
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}

	doubleQuoted := strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)
	singleQuoted := strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")

	if doubleQuoted || singleQuoted {
		return value[1 : len(value)-1]
	}

	return value
}

// WithAudio produces the full document text with the audio section inserted
// above the body and the metadata block updated: audio_file is added only
// when absent (an existing value is never overwritten), and last_modified is
// rewritten to now when the key exists.
//
// WithAudio does not check for a pre-existing audio section; calling it
// twice inserts a duplicate. Skipping notes that already have audio is the
// caller's responsibility.
func (d *Document) WithAudio(audioPath string, wordCount int, now time.Time) string {
	audioSection := fmt.Sprintf(
		audioSectionFormat,
		audioPath,
		wordCount,
		text.EstimateMinutes(wordCount),
	)

	if !strings.HasPrefix(d.RawContent, blockDelimiter) {
		return audioSection + d.RawContent
	}

	closingIndex := strings.Index(d.RawContent[len(blockDelimiter):], blockDelimiter)
	if closingIndex < 0 {
		return d.RawContent + "\n\n" + audioSection
	}

	blockEnd := closingIndex + 2*len(blockDelimiter)
	block := d.RawContent[:blockEnd]
	body := strings.TrimLeft(d.RawContent[blockEnd:], " \t\r\n")

	block = insertAudioFileKey(block, audioPath)
	block = refreshLastModified(block, now)

	return block + "\n\n" + audioSection + body
}

// insertAudioFileKey adds the audio_file key just before the closing
// delimiter, unless the block already carries one.
func insertAudioFileKey(block, audioPath string) string {
	if strings.Contains(block, KeyAudioFile+":") {
		return block
	}

	return block[:len(block)-len(blockDelimiter)] +
		fmt.Sprintf("%s: %q\n", KeyAudioFile, audioPath) +
		blockDelimiter
}

// refreshLastModified rewrites an existing last_modified value; a block
// without the key is left untouched.
func refreshLastModified(block string, now time.Time) string {
	timestamp := now.In(timestampZone).Format(timestampLayout)

	return lastModifiedPattern.ReplaceAllString(
		block,
		fmt.Sprintf("%s: %q\n", KeyLastModified, timestamp),
	)
}
