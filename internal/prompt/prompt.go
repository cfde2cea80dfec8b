// Package prompt builds the (system, user) instruction pairs used for note
// summarization.
//
// The system instruction is fixed; the user instruction is selected by exact
// match on the note category, with a default template for anything
// unrecognized. Templates embed the category's expected outline and append
// the raw content verbatim. This is a pure mapping with no I/O.
package prompt

// Note categories with dedicated summarization templates.
const (
	CategoryGuide        = "가이드"
	CategoryResource     = "리소스"
	CategoryYoutubeNotes = "유튜브학습노트"
	CategoryRetro        = "회고"

	// CategoryDefault labels notes without a recognized category.
	CategoryDefault = "기본"
)

// systemInstruction positions the model as a spoken-audio summarizer.
const systemInstruction = `You are an expert content summarizer. Create beginner-friendly summaries optimized for audio listening.
Write in Korean using natural spoken language. Remove all markdown formatting, code blocks, and URLs.
Focus on key concepts and practical insights. Target 500-1000 words.`

const guideTemplate = `다음 기술 가이드 문서를 초보자가 이해하기 쉽도록 500-1000단어로 요약해주세요.
음성으로 듣기에 적합한 형태로 작성하되, 다음 요소를 포함해주세요:

1. 이 가이드가 다루는 핵심 개념 설명
2. 주요 기능이나 단계를 순서대로 설명
3. 초보자가 알아야 할 중요한 포인트 강조
4. 실용적인 활용 예시나 팁

주의사항:
- 마크다운 문법 제거 (##, **, - 등)
- 코드 블록은 "코드 예시"로 간단히 언급
- 구어체로 자연스럽게 작성
- 기술 용어는 한국어로 설명 추가

원문:
`

const youtubeNotesTemplate = `다음 유튜브 학습 노트를 초보자가 이해하기 쉽도록 500-1000단어로 요약해주세요.
음성으로 듣기에 적합한 형태로 작성하되, 다음 요소를 포함해주세요:

1. 영상의 주제와 전체적인 내용 소개
2. 핵심 학습 내용을 3-5개 포인트로 정리
3. 실습이나 예제가 있다면 간단히 설명
4. 이 내용을 학습하면 무엇을 할 수 있는지 설명

주의사항:
- 마크다운 문법 제거
- 타임스탬프나 URL은 생략
- 구어체로 자연스럽게 작성
- 학습 순서를 논리적으로 재구성

원문:
`

const retroTemplate = `다음 회고 노트를 초보자가 이해하기 쉽도록 500-1000단어로 요약해주세요.
음성으로 듣기에 적합한 형태로 작성하되, 다음 요소를 포함해주세요:

1. 회고의 주요 주제와 배경
2. 핵심 발견사항 3-5개 포인트
3. 중요한 인사이트나 교훈
4. 실무 적용 계획이나 다음 액션

주의사항:
- 마크다운 문법 제거
- 구어체로 자연스럽게 작성
- 개인적인 통찰을 중심으로 정리
- 긍정적이고 건설적인 톤 유지

원문:
`

const defaultTemplate = `다음 문서를 초보자가 이해하기 쉽도록 500-1000단어로 요약해주세요.
음성으로 듣기에 적합한 형태로 작성해주세요:

1. 문서의 주제와 목적
2. 핵심 내용을 3-5개 포인트로 정리
3. 중요한 개념이나 용어 설명
4. 실용적인 활용 방법

주의사항:
- 마크다운 문법 제거
- 구어체로 자연스럽게 작성
- 한국어로 작성

원문:
`

// Instructions is a (system, user) pair ready for a text-generation backend.
type Instructions struct {
	System string
	User   string
}

// Build constructs the summarization instructions for a note body and its
// category. Unrecognized or absent categories use the default template.
func Build(content, category string) Instructions {
	return Instructions{
		System: systemInstruction,
		User:   userTemplate(category) + content,
	}
}

func userTemplate(category string) string {
	switch category {
	case CategoryGuide, CategoryResource:
		return guideTemplate
	case CategoryYoutubeNotes:
		return youtubeNotesTemplate
	case CategoryRetro:
		return retroTemplate
	default:
		return defaultTemplate
	}
}
