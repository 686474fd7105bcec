package gateway

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     string
		wantErr  bool
	}{
		{
			name:     "fenced block",
			response: "Here is the analysis:\n```json\n{\"score\": 42}\n```\nThanks!",
			want:     `{"score": 42}`,
		},
		{
			name:     "fenced block wins over earlier brace",
			response: "Use {braces} carefully.\n```json\n{\"score\": 7}\n```",
			want:     `{"score": 7}`,
		},
		{
			name:     "bare object with nested braces in strings",
			response: `Result: {"summary": "a {nested} note", "items": {"a": 1}} trailing`,
			want:     `{"summary": "a {nested} note", "items": {"a": 1}}`,
		},
		{
			name:     "think tags stripped",
			response: "<think>{not json}</think>{\"ok\": true}",
			want:     `{"ok": true}`,
		},
		{
			name:     "skips invalid leading object",
			response: `{oops} then {"score": 3}`,
			want:     `{"score": 3}`,
		},
		{name: "plain prose", response: "I could not assess this.", wantErr: true},
		{name: "unbalanced", response: `{"score": 4`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.response)
			if tc.wantErr {
				if !errors.Is(err, ErrNoJSON) {
					t.Fatalf("expected ErrNoJSON, got %q, %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseJSONTypeMismatch(t *testing.T) {
	type result struct {
		Score int `json:"score"`
	}
	if _, err := ParseJSON[result](`{"score": "high"}`); err == nil {
		t.Fatal("expected unmarshal error for string score")
	}
	got, err := ParseJSON[result]("```json\n{\"score\": 81}\n```")
	if err != nil || got.Score != 81 {
		t.Fatalf("expected score 81, got %+v (%v)", got, err)
	}
}
