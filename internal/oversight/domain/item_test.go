package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusApproved, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("%s -> %s: expected %v, got %v", c.from, c.to, c.want, got)
		}
	}
}

func TestParseStatusFilter(t *testing.T) {
	for raw, want := range map[string]Status{"": "", "all": "", "pending": StatusPending, "approved": StatusApproved, "rejected": StatusRejected} {
		got, ok := ParseStatusFilter(raw)
		if !ok || got != want {
			t.Errorf("%q: expected %q, got %q (ok=%v)", raw, want, got, ok)
		}
	}
	if _, ok := ParseStatusFilter("archived"); ok {
		t.Error("expected unknown status to be rejected")
	}
}
