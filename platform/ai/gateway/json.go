package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a reply holds no parseable JSON object.
var ErrNoJSON = errors.New("no valid JSON found in response")

var (
	thinkTagPattern    = regexp.MustCompile(`(?s)^\s*<think>.*?</think>\s*`)
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*\\n?(.*?)```")
)

// ExtractJSON finds the structured object in a generated reply. A fenced
// code block wins; otherwise the first balanced {...} substring is used.
func ExtractJSON(response string) (string, error) {
	cleaned := thinkTagPattern.ReplaceAllString(response, "")

	for _, match := range fencedBlockPattern.FindAllStringSubmatch(cleaned, -1) {
		candidate := strings.TrimSpace(match[1])
		if obj, ok := extractBalancedObject(candidate); ok && json.Valid([]byte(obj)) {
			return obj, nil
		}
	}

	rest := cleaned
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			return "", ErrNoJSON
		}
		obj, ok := extractBalancedObject(rest[start:])
		if !ok {
			return "", ErrNoJSON
		}
		if json.Valid([]byte(obj)) {
			return obj, nil
		}
		rest = rest[start+1:]
	}
}

// ParseJSON extracts the JSON object from response and unmarshals it into T.
func ParseJSON[T any](response string) (T, error) {
	var result T

	raw, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return result, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return result, nil
}

// extractBalancedObject returns the first balanced {...} in s, skipping
// braces that appear inside string literals.
func extractBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
