package text

import (
	"math"
	"strings"
)

// Korean syllable block range (Hangul Syllables).
const (
	hangulSyllableStart = 0xAC00
	hangulSyllableEnd   = 0xD7AF
)

// Speech estimation constants.
const (
	// syllablesPerKoreanWord is the average syllable count of a spoken
	// Korean word.
	syllablesPerKoreanWord = 2
	// wordsPerMinute is the average speaking rate used for duration
	// estimates.
	wordsPerMinute = 150
)

// CountWords estimates the spoken word count of mixed Korean/Latin text.
// Korean syllable blocks count as half a word each (rounded to nearest);
// everything else is counted as whitespace-delimited tokens after the Korean
// characters are replaced by spaces.
func CountWords(text string) int {
	koreanChars := 0

	var latinBuilder strings.Builder

	for _, char := range text {
		if char >= hangulSyllableStart && char <= hangulSyllableEnd {
			koreanChars++

			latinBuilder.WriteRune(' ')

			continue
		}

		latinBuilder.WriteRune(char)
	}

	latinWords := len(strings.Fields(latinBuilder.String()))

	koreanWords := int(math.Round(float64(koreanChars) / syllablesPerKoreanWord))

	return koreanWords + latinWords
}

// EstimateMinutes returns the estimated listening time in minutes for the
// given word count, never less than one minute.
func EstimateMinutes(wordCount int) int {
	minutes := int(math.Round(float64(wordCount) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}

	return minutes
}
