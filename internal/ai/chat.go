package ai

// Chat-completions envelope shared by the OpenAI and xAI backends.

const (
	chatRoleSystem = "system"
	chatRoleUser   = "user"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func chatMessages(userPrompt, systemPrompt string) []chatMessage {
	return []chatMessage{
		{Role: chatRoleSystem, Content: systemPrompt},
		{Role: chatRoleUser, Content: userPrompt},
	}
}

// firstChoiceContent extracts the generated text from a chat-completions
// response, or "" when the response carries none.
func firstChoiceContent(parsed chatResponse) string {
	if len(parsed.Choices) == 0 {
		return ""
	}

	return parsed.Choices[0].Message.Content
}
