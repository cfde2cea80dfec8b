package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heomin86/obsidian-audio-generator/internal/prompt"
)

func TestBuild_SystemInstructionFixedAcrossCategories(t *testing.T) {
	t.Parallel()

	categories := []string{
		prompt.CategoryGuide,
		prompt.CategoryResource,
		prompt.CategoryYoutubeNotes,
		prompt.CategoryRetro,
		prompt.CategoryDefault,
		"없는분류",
		"",
	}

	reference := prompt.Build("내용", prompt.CategoryGuide).System
	require.Contains(t, reference, "500-1000 words")

	for _, category := range categories {
		instructions := prompt.Build("내용", category)
		require.Equal(t, reference, instructions.System, category)
	}
}

func TestBuild_ContentAppendedVerbatim(t *testing.T) {
	t.Parallel()

	content := "원래 **마크다운** 내용\n그대로 전달됩니다."

	for _, category := range []string{prompt.CategoryGuide, "", "기타"} {
		instructions := prompt.Build(content, category)
		require.True(
			t,
			strings.HasSuffix(instructions.User, content),
			"content must end the user instruction for category %q",
			category,
		)
	}
}

func TestBuild_CategorySelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		marker   string
	}{
		{
			name:     "guide",
			category: prompt.CategoryGuide,
			marker:   "기술 가이드 문서",
		},
		{
			name:     "resource shares the guide template",
			category: prompt.CategoryResource,
			marker:   "기술 가이드 문서",
		},
		{
			name:     "youtube notes",
			category: prompt.CategoryYoutubeNotes,
			marker:   "유튜브 학습 노트",
		},
		{
			name:     "retro",
			category: prompt.CategoryRetro,
			marker:   "회고 노트",
		},
		{
			name:     "unknown category falls back to default",
			category: "일기",
			marker:   "다음 문서를",
		},
		{
			name:     "empty category falls back to default",
			category: "",
			marker:   "다음 문서를",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			instructions := prompt.Build("본문", testCase.category)
			require.Contains(t, instructions.User, testCase.marker)
		})
	}
}
