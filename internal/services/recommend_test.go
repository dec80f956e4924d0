package services

import (
	"reflect"
	"testing"
)

func TestScoreTierBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  RiskTier
	}{
		{0, TierLow},
		{40, TierLow},
		{41, TierModerate},
		{70, TierModerate},
		{71, TierHigh},
		{100, TierHigh},
	}
	for _, c := range cases {
		if got := ScoreTier(c.score); got != c.want {
			t.Fatalf("ScoreTier(%d)=%s, want %s", c.score, got, c.want)
		}
	}
}

func TestDeriveRecommendationsFixedText(t *testing.T) {
	high := DeriveRecommendations(85)
	wantHigh := []string{
		"Schedule video consultation",
		"Contact crisis hotline if needed",
		"Try daily meditation",
	}
	if !reflect.DeepEqual(high, wantHigh) {
		t.Fatalf("high recs=%v", high)
	}
	moderate := DeriveRecommendations(55)
	wantModerate := []string{
		"Book appointment with healthcare provider",
		"Start meditation practice",
		"Monitor symptoms",
	}
	if !reflect.DeepEqual(moderate, wantModerate) {
		t.Fatalf("moderate recs=%v", moderate)
	}
	low := DeriveRecommendations(10)
	wantLow := []string{
		"Continue healthy habits",
		"Regular check-ins",
		"Maintain wellness routine",
	}
	if !reflect.DeepEqual(low, wantLow) {
		t.Fatalf("low recs=%v", low)
	}
}

func TestDeriveRecommendationsReturnsCopy(t *testing.T) {
	first := DeriveRecommendations(10)
	first[0] = "mutated"
	second := DeriveRecommendations(10)
	if second[0] != "Continue healthy habits" {
		t.Fatalf("caller mutation leaked into shared recommendations: %v", second)
	}
}

func TestCrisisCheck(t *testing.T) {
	catalog := DefaultCatalog()

	if n := CrisisCheck(catalog, "selfHarmThoughts", Answer{Value: "yes"}); n == nil {
		t.Fatal("expected crisis notice for affirmative safety answer")
	} else if len(n.Hotlines) == 0 || n.Message == "" {
		t.Fatalf("crisis notice missing content: %+v", n)
	}
	if n := CrisisCheck(catalog, "selfHarmThoughts", Answer{Value: "no"}); n != nil {
		t.Fatalf("unexpected notice for negative safety answer: %+v", n)
	}
	// non-safety questions never fire, no matter how bad the answer
	if n := CrisisCheck(catalog, "mood1", Answer{Value: "mostly_low"}); n != nil {
		t.Fatalf("unexpected notice for non-safety question: %+v", n)
	}
	if n := CrisisCheck(catalog, "unknown", Answer{Value: "yes"}); n != nil {
		t.Fatalf("unexpected notice for unknown question: %+v", n)
	}
}

// A safety answer alone scores 5, which stays in the low tier. The notice
// has to fire anyway: escalation is decoupled from the aggregate score.
func TestCrisisIndependentOfTier(t *testing.T) {
	catalog := DefaultCatalog()
	responses := map[string]Answer{"selfHarmThoughts": {Value: "yes"}}
	score := ComputeRiskScore(responses, catalog)
	if tier := ScoreTier(score); tier != TierLow {
		t.Fatalf("tier=%s, want low", tier)
	}
	if CrisisCheck(catalog, "selfHarmThoughts", responses["selfHarmThoughts"]) == nil {
		t.Fatal("crisis notice suppressed by low tier")
	}
}
