package note_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heomin86/obsidian-audio-generator/internal/note"
)

func fixedNow(t *testing.T) time.Time {
	t.Helper()

	now, err := time.Parse(time.RFC3339, "2026-01-15T03:00:00Z")
	require.NoError(t, err)

	return now
}

func TestParse_NoMetadataBlock(t *testing.T) {
	t.Parallel()

	raw := "그냥 본문입니다.\n두 번째 줄."
	document := note.Parse(raw)

	require.Equal(t, raw, document.RawContent)
	require.Equal(t, raw, document.Body)
	require.Empty(t, document.Metadata)
}

func TestParse_MetadataBlock(t *testing.T) {
	t.Parallel()

	raw := "---\n" +
		"type: 가이드\n" +
		"title: \"Docker 입문\"\n" +
		"last_modified: '2025-10-01T09:00:00.000+09:00'\n" +
		"---\n" +
		"본문입니다."

	document := note.Parse(raw)

	require.Equal(t, "가이드", document.Metadata.StringValue(note.KeyType))
	require.Equal(t, "Docker 입문", document.Metadata.StringValue("title"))
	require.Equal(
		t,
		"2025-10-01T09:00:00.000+09:00",
		document.Metadata.StringValue(note.KeyLastModified),
	)
	require.Equal(t, "본문입니다.", document.Body)
	require.Equal(t, raw, document.RawContent)
}

func TestParse_SequenceValue(t *testing.T) {
	t.Parallel()

	raw := "---\n" +
		"tags:\n" +
		"  - docker\n" +
		"  - 컨테이너\n" +
		"type: 리소스\n" +
		"---\n" +
		"body"

	document := note.Parse(raw)

	require.Equal(t, []string{"docker", "컨테이너"}, document.Metadata["tags"])
	require.Equal(t, "리소스", document.Metadata.StringValue(note.KeyType))
}

func TestParse_UnclosedBlockFallsBackToBody(t *testing.T) {
	t.Parallel()

	raw := "---\ntype: 가이드\nno closing marker"
	document := note.Parse(raw)

	require.Empty(t, document.Metadata)
	require.Equal(t, raw, document.Body)
}

func TestDocument_WithAudio_NoMetadataBlock(t *testing.T) {
	t.Parallel()

	raw := "본문만 있는 노트입니다."
	document := note.Parse(raw)

	result := document.WithAudio("Audio/Note.mp3", 300, fixedNow(t))

	// The original content must follow the audio section byte-identical.
	require.True(t, strings.HasSuffix(result, raw))
	require.True(t, strings.HasPrefix(result, "## 🎙️ 오디오 버전 듣기"))
	require.Contains(t, result, `<source src="Audio/Note.mp3" type="audio/mpeg">`)
	require.Contains(t, result, "(300단어, 약 2분 소요)")
}

func TestDocument_WithAudio_InsertsAudioFileKey(t *testing.T) {
	t.Parallel()

	raw := "---\ntype: 회고\n---\n본문"
	document := note.Parse(raw)

	result := document.WithAudio("Audio/Note.mp3", 150, fixedNow(t))

	parsed := note.Parse(result)
	require.Equal(t, "Audio/Note.mp3", parsed.Metadata.StringValue(note.KeyAudioFile))
	require.Equal(t, "회고", parsed.Metadata.StringValue(note.KeyType))
	require.Contains(t, parsed.Body, "본문")
	require.Contains(t, parsed.Body, "(150단어, 약 1분 소요)")
}

func TestDocument_WithAudio_NeverOverwritesAudioFile(t *testing.T) {
	t.Parallel()

	raw := "---\ntype: 회고\n---\n본문"
	first := note.Parse(raw).WithAudio("Audio/First.mp3", 150, fixedNow(t))

	second := note.Parse(first).WithAudio("Audio/Second.mp3", 150, fixedNow(t))

	parsed := note.Parse(second)
	require.Equal(t, "Audio/First.mp3", parsed.Metadata.StringValue(note.KeyAudioFile))
	require.NotContains(t, second, "Audio/Second.mp3")
}

func TestDocument_WithAudio_RefreshesLastModified(t *testing.T) {
	t.Parallel()

	raw := "---\n" +
		"type: 가이드\n" +
		"last_modified: \"2024-01-01T00:00:00.000+09:00\"\n" +
		"---\n" +
		"본문"
	document := note.Parse(raw)

	result := document.WithAudio("Audio/Note.mp3", 150, fixedNow(t))

	parsed := note.Parse(result)
	// 2026-01-15T03:00:00Z rendered in the fixed +09:00 zone.
	require.Equal(
		t,
		"2026-01-15T12:00:00.000+09:00",
		parsed.Metadata.StringValue(note.KeyLastModified),
	)
	require.NotContains(t, result, "2024-01-01")
}

func TestDocument_WithAudio_LeavesOtherKeysUntouched(t *testing.T) {
	t.Parallel()

	raw := "---\n" +
		"type: 유튜브학습노트\n" +
		"source: \"강의 3편\"\n" +
		"---\n" +
		"본문"
	document := note.Parse(raw)

	result := document.WithAudio("Audio/Note.mp3", 150, fixedNow(t))

	parsed := note.Parse(result)
	require.Equal(t, "유튜브학습노트", parsed.Metadata.StringValue(note.KeyType))
	require.Equal(t, "강의 3편", parsed.Metadata.StringValue("source"))
}
