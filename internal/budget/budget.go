// Package budget holds the character and token arithmetic applied to the
// combined document before it is sent to the model.
package budget

import (
	"math"
	"strings"
	"unicode/utf8"
)

// DefaultMaxInputChars is how many characters of the combined document are
// included in the completion prompt.
const DefaultMaxInputChars = 3000

// TruncateChars returns the first max characters (runes) of s. The cut is a
// hard cutoff and may split a word. max <= 0 returns "".
func TruncateChars(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		// byte length bounds rune count
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// CharCount is the number of characters (runes) in s.
func CharCount(s string) int { return utf8.RuneCountInString(s) }

// EstimateTokensFromChars converts a character count into an estimated token
// count using a conservative heuristic (~4 chars per token in English). The
// result is always at least 1 when chars > 0.
func EstimateTokensFromChars(charCount int) int {
	if charCount <= 0 {
		return 0
	}
	return int(math.Ceil(float64(charCount) / 4.0))
}

// EstimateTokens returns the estimated token count of a string.
func EstimateTokens(s string) int {
	return EstimateTokensFromChars(CharCount(s))
}

// EstimatePromptTokens estimates the total tokens of a chat prompt made of the
// given message contents.
func EstimatePromptTokens(messages ...string) int {
	total := 0
	for _, m := range messages {
		total += EstimateTokens(m)
	}
	return total
}

// ModelContextTokens returns an estimated maximum context window for a given
// model name. Unknown models fall back to a conservative default.
func ModelContextTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	for _, p := range modelPrefixes {
		if strings.HasPrefix(name, p.prefix) {
			return p.tokens
		}
	}
	switch {
	case strings.HasSuffix(name, "128k"):
		return 128_000
	case strings.HasSuffix(name, "32k"):
		return 32_768
	}
	return 4096
}

// RemainingContext computes the tokens left after the prompt and the output
// reservation. The result is never negative.
func RemainingContext(modelName string, reservedForOutput int, promptTokens int) int {
	if reservedForOutput < 0 {
		reservedForOutput = 0
	}
	remaining := ModelContextTokens(modelName) - reservedForOutput - promptTokens
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FitsInContext reports whether the prompt plus output reservation fits the
// model's context window.
func FitsInContext(modelName string, reservedForOutput int, promptTokens int) bool {
	return RemainingContext(modelName, reservedForOutput, promptTokens) > 0
}

// knownModelMax contains rough context sizes for models commonly served by
// local OpenAI-compatible runtimes.
var knownModelMax = map[string]int{
	"mistral-7b-instruct-v0.1": 8_192,
	"mistral-7b-instruct-v0.2": 32_768,
	"mistral-7b-instruct-v0.3": 32_768,
	"llama-2-7b-chat":          4_096,
	"llama-3":                  8_192,
	"llama-3.1":                128_000,
	"phi-3-mini-4k-instruct":   4_096,
	"phi-3-mini-128k-instruct": 128_000,
	"gpt-oss-20b":              4_096,
}

var modelPrefixes = []struct {
	prefix string
	tokens int
}{
	{"meta-llama-3.1", 128_000},
	{"llama-3.1", 128_000},
	{"qwen2.5", 32_768},
	{"gemma-2", 8_192},
	{"mixtral", 32_768},
}
