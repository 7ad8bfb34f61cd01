package summarizer

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a news summarization expert."

const promptTemplate = `You are an AI expert in summarization. Generate a structured and precise summary of the given text, adhering to these guidelines:

1. **Content**: Cover key details: Who, What, When, Where, Why, and How. Include essential events, dates, and entities. Exclude irrelevant or redundant information.
2. **Structure**:
- **Introduction**: Brief topic overview.
- **Key Points**: Major events or findings.
- **Implications**: Broader impacts.
- **Conclusion**: Final wrap-up.
3. **Tone**: Neutral, factual, and professional. Use any provided quotes, stats, or references accurately.
4. **Length**: Keep summaries between 300-800 words for long texts or proportionally shorter for brief inputs.
%s
### Input Text:
%s

### Output Guidelines
- Begin each section with a bolded heading on its own line, like **Introduction**.
- Use "* " bullet points for concise details where appropriate.
- Write everything else as plain paragraphs.
- Ensure the summary is logically structured, easy to read, and complete.`

// buildPrompt renders the user prompt for one article.
func buildPrompt(req Request) string {
	title := ""
	if t := strings.TrimSpace(req.Title); t != "" {
		title = fmt.Sprintf("\n### Article Title:\n%s\n", t)
	}
	return fmt.Sprintf(promptTemplate, title, strings.TrimSpace(req.Text))
}
