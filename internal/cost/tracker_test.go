package cost

import "testing"

func TestTracker_LocalRequestsAreFree(t *testing.T) {
	tr := NewTracker()
	cost := tr.Record("functiongemma", true, 500)
	if cost != 0 {
		t.Fatalf("expected local cost 0, got %v", cost)
	}
	if tr.daily.LocalTokens != 500 {
		t.Fatalf("expected 500 local tokens recorded, got %d", tr.daily.LocalTokens)
	}
}

func TestTracker_CloudUsesDefaultRate(t *testing.T) {
	tr := NewTracker()
	cost := tr.Record("claude-3.5-sonnet", false, 1_000_000)
	if cost != defaultCloudRatePerMillion {
		t.Fatalf("expected cost %v, got %v", defaultCloudRatePerMillion, cost)
	}
	if tr.daily.CloudCost != defaultCloudRatePerMillion {
		t.Fatalf("expected daily cloud cost %v, got %v", defaultCloudRatePerMillion, tr.daily.CloudCost)
	}
}

func TestTracker_SetRateOverridesDefault(t *testing.T) {
	tr := NewTracker()
	tr.SetRate("gpt-4o", 2.50)

	cost := tr.Record("gpt-4o", false, 1_000_000)
	if cost != 2.50 {
		t.Fatalf("expected overridden rate 2.50, got %v", cost)
	}
}

func TestTracker_SavingsReflectsLocalVsCloudSplit(t *testing.T) {
	tr := NewTracker()
	tr.Record("functiongemma", true, 1_000_000)
	tr.Record("claude-3.5-sonnet", false, 1_000_000)

	// Total 2M tokens, only 1M billed: savings is the cost of the free
	// 1M tokens at the default rate.
	want := defaultCloudRatePerMillion
	if got := tr.Savings(); got != want {
		t.Fatalf("expected savings %v, got %v", want, got)
	}
}

func TestTracker_LocalRate(t *testing.T) {
	tr := NewTracker()
	tr.Record("functiongemma", true, 300)
	tr.Record("claude-3.5-sonnet", false, 100)

	if got := tr.LocalRate(); got != 75 {
		t.Fatalf("expected local rate 75%%, got %v", got)
	}
}
