package text_test

import (
	"testing"

	"github.com/heomin86/obsidian-audio-generator/internal/text"
)

func TestCountWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "empty text",
			input:    "",
			expected: 0,
		},
		{
			name:     "korean syllables divided by two and rounded",
			input:    "안녕하세요",
			expected: 3,
		},
		{
			name:     "latin words counted by whitespace tokens",
			input:    "hello world",
			expected: 2,
		},
		{
			name:     "mixed korean and latin",
			input:    "안녕 world",
			expected: 2,
		},
		{
			name:     "korean even syllable count",
			input:    "네글자다",
			expected: 2,
		},
		{
			name:     "whitespace only",
			input:    "   \n\t  ",
			expected: 0,
		},
		{
			name:     "punctuation attaches to latin tokens",
			input:    "hello, world!",
			expected: 2,
		},
		{
			name:     "korean splits an adjacent latin token",
			input:    "go언어로 coding",
			expected: 4,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := text.CountWords(testCase.input)
			if result != testCase.expected {
				t.Errorf("Expected %d, got %d", testCase.expected, result)
			}
		})
	}
}

func TestEstimateMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		wordCount int
		expected  int
	}{
		{name: "zero words still one minute", wordCount: 0, expected: 1},
		{name: "short text rounds up to one", wordCount: 40, expected: 1},
		{name: "one minute exactly", wordCount: 150, expected: 1},
		{name: "rounds to nearest", wordCount: 400, expected: 3},
		{name: "long text", wordCount: 1500, expected: 10},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := text.EstimateMinutes(testCase.wordCount)
			if result != testCase.expected {
				t.Errorf("Expected %d, got %d", testCase.expected, result)
			}
		})
	}
}
