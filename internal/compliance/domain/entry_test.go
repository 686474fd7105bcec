package domain

import "testing"

func TestNormalizeFilter(t *testing.T) {
	tests := []struct {
		name                  string
		search, status, agent string
		want                  Filter
		ok                    bool
	}{
		{name: "all sentinels", status: "all", agent: "all", want: Filter{}, ok: true},
		{name: "empty", want: Filter{}, ok: true},
		{name: "trims search", search: "  consent ", want: Filter{Search: "consent"}, ok: true},
		{name: "status", status: "review-required", want: Filter{Status: StatusReviewRequired}, ok: true},
		{name: "agent", agent: "Lead Intelligence Assistant", want: Filter{Agent: "Lead Intelligence Assistant"}, ok: true},
		{name: "unknown status", status: "pending", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeFilter(tt.search, tt.status, tt.agent)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestMatchesTextIsCaseInsensitive(t *testing.T) {
	f := Filter{Search: "POPIA"}
	if !f.MatchesText("Assessment data", "Bot", "collected under popia consent") {
		t.Error("expected match on notes")
	}
	if f.MatchesText("Assessment data", "Bot", "") {
		t.Error("expected no match")
	}
	if !(Filter{}).MatchesText() {
		t.Error("empty search matches everything")
	}
}
