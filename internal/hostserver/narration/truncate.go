// Package narration truncates the llm_context trait/description bundles
// HandleMessage replies carry down to a token budget, using the same
// tiktoken-go encoder the teacher budgets prompts with, before a reply
// is handed to an external LLM narrator.
package narration

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName matches the teacher's default encoding for its chat
// models; this package never calls out to a model, it only needs the
// same tokenizer so truncation lines up with what the narrator's own
// token accounting expects.
const encodingName = "cl100k_base"

// Truncator wraps one tiktoken encoder so callers don't re-load it per
// reply (GetEncoding parses a sizeable rank table).
type Truncator struct {
	enc *tiktoken.Tiktoken
}

// New loads the cl100k_base encoding. A failure here means the tiktoken
// rank table couldn't be fetched/parsed; callers should fail startup
// rather than silently skip truncation.
func New() (*Truncator, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return &Truncator{enc: enc}, nil
}

// TruncateText shortens text to at most maxTokens tokens, preserving
// whole leading tokens (never cutting mid-token).
func (t *Truncator) TruncateText(text string, maxTokens int) string {
	if maxTokens <= 0 || t.enc == nil {
		return text
	}
	tokens := t.enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return t.enc.Decode(tokens[:maxTokens])
}

// TruncateTraits drops trailing traits from a §4.8 llm_context traits list
// once their combined text would exceed maxTokens, so a reply's
// perspective narration stays within an external narrator's budget.
func (t *Truncator) TruncateTraits(traits []string, maxTokens int) []string {
	if maxTokens <= 0 || t.enc == nil {
		return traits
	}
	out := make([]string, 0, len(traits))
	used := 0
	for _, trait := range traits {
		used += len(t.enc.Encode(trait, nil, nil))
		if used > maxTokens {
			break
		}
		out = append(out, trait)
	}
	return out
}

// TruncateReplyMessage truncates the "message" field of a HandleMessage
// reply map in place and returns it, the narrow case most callers need:
// a single narration string rather than a full llm_context bundle.
func TruncateReplyMessage(reply map[string]any, t *Truncator, maxTokens int) map[string]any {
	msg, ok := reply["message"].(string)
	if !ok || strings.TrimSpace(msg) == "" {
		return reply
	}
	reply["message"] = t.TruncateText(msg, maxTokens)
	return reply
}
