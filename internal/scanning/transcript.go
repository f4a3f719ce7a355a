package scanning

import "strings"

// transcribePrompt is shared by the LLM providers, which are asked to act as
// a plain OCR engine so the rule-based parser sees the same kind of text as
// it would from Cloud Vision.
const transcribePrompt = `You are an OCR engine. Transcribe every piece of text printed on this receipt or invoice exactly as it appears.

Rules:
- Keep the original reading order, top to bottom, one printed line per output line.
- Keep numbers, currency symbols, dates and punctuation exactly as printed.
- Keep the columns of a row on the same line, separated by spaces.
- Do not translate, summarize, correct or explain anything.
- Output plain text only. Do not use Markdown or code blocks.
- If there is no readable text, output nothing.`

// cleanTranscript removes Markdown code fences some models wrap their
// answer in, and surrounding whitespace.
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence line, which may carry a language tag.
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
