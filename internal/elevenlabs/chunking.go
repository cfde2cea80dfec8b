package elevenlabs

import (
	"strings"
	"unicode/utf8"
)

// Sentence-terminal runes used as chunk boundaries. The East-Asian full
// stop is included because note bodies mix Korean and Latin punctuation.
const sentenceTerminals = ".!?。"

// SplitIntoChunks splits text into ordered chunks of at most limit
// characters. Sentences are kept whole where possible: sentence-like
// segments are accumulated greedily until the next one would overflow the
// chunk. A single sentence longer than the limit is split further on
// whitespace-delimited tokens with the same greedy packing.
func SplitIntoChunks(text string, limit int) []string {
	var chunks []string

	var current strings.Builder

	currentLen := 0

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()

			currentLen = 0
		}
	}

	for _, sentence := range splitSentences(text) {
		sentenceLen := utf8.RuneCountInString(sentence)

		if sentenceLen > limit {
			flush()

			chunks = append(chunks, splitByWords(sentence, limit)...)

			continue
		}

		if currentLen > 0 && currentLen+sentenceLen > limit {
			flush()
		}

		current.WriteString(sentence)

		currentLen += sentenceLen
	}

	flush()

	return chunks
}

// splitSentences cuts text after each sentence-terminal rune. Whitespace
// following a terminal stays attached to the next segment.
func splitSentences(text string) []string {
	var sentences []string

	var current strings.Builder

	for _, char := range text {
		current.WriteRune(char)

		if strings.ContainsRune(sentenceTerminals, char) {
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}

	if remainder := current.String(); strings.TrimSpace(remainder) != "" {
		sentences = append(sentences, remainder)
	}

	return sentences
}

// splitByWords greedily packs whitespace-delimited tokens into chunks of at
// most limit characters. A single token longer than the limit becomes its
// own chunk.
func splitByWords(sentence string, limit int) []string {
	var chunks []string

	var current strings.Builder

	currentLen := 0

	for _, word := range strings.Fields(sentence) {
		wordLen := utf8.RuneCountInString(word)

		if currentLen > 0 && currentLen+1+wordLen > limit {
			chunks = append(chunks, current.String())
			current.Reset()

			currentLen = 0
		}

		if currentLen > 0 {
			current.WriteRune(' ')

			currentLen++
		}

		current.WriteString(word)

		currentLen += wordLen
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
