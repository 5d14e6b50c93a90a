package explain

import "fmt"

// systemPrompt frames the model as a code explainer for a general
// audience. Kept short so the snippet dominates the token budget.
const systemPrompt = "You are an expert programmer. Explain the given code snippet in clear, plain language. Describe what it does, how it works, and call out anything surprising or error-prone. Answer in markdown."

// buildMessages assembles the chat messages for one explanation request.
func buildMessages(code, language string) []chatMessage {
	user := fmt.Sprintf("Explain this code:\n\n```\n%s\n```", code)
	if language != "" {
		user = fmt.Sprintf("Explain this %s code:\n\n```%s\n%s\n```", language, language, code)
	}
	return []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}
