package services

// RiskTier buckets a risk score for recommendation purposes.
type RiskTier string

const (
	TierLow      RiskTier = "low"
	TierModerate RiskTier = "moderate"
	TierHigh     RiskTier = "high"
)

// Tier thresholds are upper-inclusive: 70 is still moderate, 40 is still low.
const (
	highRiskAbove     = 70
	moderateRiskAbove = 40
)

var tierRecommendations = map[RiskTier][]string{
	TierHigh: {
		"Schedule video consultation",
		"Contact crisis hotline if needed",
		"Try daily meditation",
	},
	TierModerate: {
		"Book appointment with healthcare provider",
		"Start meditation practice",
		"Monitor symptoms",
	},
	TierLow: {
		"Continue healthy habits",
		"Regular check-ins",
		"Maintain wellness routine",
	},
}

// ScoreTier maps a risk score to its tier.
func ScoreTier(score int) RiskTier {
	switch {
	case score > highRiskAbove:
		return TierHigh
	case score > moderateRiskAbove:
		return TierModerate
	default:
		return TierLow
	}
}

// DeriveRecommendations returns the fixed, ordered recommendation list for a
// score. Callers get a fresh copy; the underlying wording is configuration,
// not computed text.
func DeriveRecommendations(score int) []string {
	recs := tierRecommendations[ScoreTier(score)]
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}

// CrisisNotice is the immediate safety disclosure shown when an answer
// indicates self-harm risk. It is surfaced at answer time, before and
// independent of the aggregate score.
type CrisisNotice struct {
	Message  string   `json:"message"`
	Hotlines []string `json:"hotlines"`
}

func crisisNotice() *CrisisNotice {
	return &CrisisNotice{
		Message: "If you're experiencing thoughts of self-harm, please contact " +
			"emergency services or a crisis hotline immediately. You are not alone.",
		Hotlines: []string{
			"988 Suicide & Crisis Lifeline: call or text 988",
			"Crisis Text Line: text HOME to 741741",
			"Emergency services: 911",
		},
	}
}

// CrisisCheck fires when a safety-category question is answered in a way
// that carries any risk contribution. It must run as each answer arrives;
// it is never deferred to submission and never folded into the score.
func CrisisCheck(catalog []QuestionDefinition, questionID string, ans Answer) *CrisisNotice {
	q := FindQuestion(catalog, questionID)
	if q == nil || q.Category != "safety" {
		return nil
	}
	if questionScore(q, ans) > 0 {
		return crisisNotice()
	}
	return nil
}
