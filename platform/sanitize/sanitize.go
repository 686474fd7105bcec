// Package sanitize provides text sanitization for stored text and for user
// content forwarded to the LLM gateway.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	userDataBegin = "<<<USER_DATA_BEGIN>>>"
	userDataEnd   = "<<<USER_DATA_END>>>"
	truncatedTag  = "... [truncated]"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes a user-provided string for storage.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr is a helper for optional string pointers
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}

// ForPrompt prepares user input for inclusion in a prompt: control characters
// other than newline and tab are dropped, the data markers are removed, and
// the result is cut to maxRunes.
func ForPrompt(s string, maxRunes int) string {
	s = strings.ReplaceAll(s, userDataBegin, "")
	s = strings.ReplaceAll(s, userDataEnd, "")

	var sb strings.Builder
	count := 0
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		if maxRunes > 0 && count == maxRunes {
			sb.WriteString(truncatedTag)
			break
		}
		sb.WriteRune(r)
		count++
	}
	return strings.TrimSpace(sb.String())
}

// WrapUserData fences user content so instructions inside it are treated as data.
func WrapUserData(content string) string {
	return fmt.Sprintf("%s\n%s\n%s", userDataBegin, content, userDataEnd)
}
