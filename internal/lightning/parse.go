package lightning

import (
	"strings"
)

// extractJSONObject locates the JSON object embedded in the wallet's output.
// The CLI interleaves log lines with a single JSON object, so the whole
// output cannot be unmarshalled directly; instead the substring bounded by
// the first '{' and the last '}' is taken.
func extractJSONObject(output string) (string, bool) {
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return output[start : end+1], true
}

// isSentinelInvoice reports whether the invoice string is a development
// placeholder rather than a real payment request. Creation must fail closed
// on these instead of handing them to the user.
func isSentinelInvoice(invoice string) bool {
	lower := strings.ToLower(invoice)
	return strings.Contains(lower, "placeholder") || strings.Contains(lower, "mock")
}
