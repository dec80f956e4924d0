package services

import "strconv"

const (
	minRiskScore = 0
	maxRiskScore = 100
)

// ComputeRiskScore sums the contribution of every answered catalog question
// and clamps the total to [0, 100]. Answers for IDs not in the catalog are
// ignored, as are catalog questions without an answer; neither is an error.
func ComputeRiskScore(responses map[string]Answer, catalog []QuestionDefinition) int {
	total := 0
	for i := range catalog {
		q := &catalog[i]
		ans, ok := responses[q.ID]
		if !ok {
			continue
		}
		total += questionScore(q, ans)
	}
	return ClampScore(total)
}

// questionScore maps one answer to its integer contribution per the
// question's kind. Unmatched choice values contribute zero.
func questionScore(q *QuestionDefinition, ans Answer) int {
	switch q.Kind {
	case KindSingleChoice:
		if c := q.Choice(singleValue(ans)); c != nil {
			return c.Score
		}
		return 0
	case KindMultiChoice:
		sum := 0
		for _, v := range multiValues(ans) {
			if c := q.Choice(v); c != nil {
				sum += c.Score
			}
		}
		return sum
	case KindNumeric:
		n, ok := numericValue(ans)
		if !ok {
			return 0
		}
		for _, band := range q.NumericBands {
			if n <= band.Max {
				return band.Score
			}
		}
		return 0
	default:
		// free-text carries no scoring signal
		return 0
	}
}

// ClampScore bounds a raw total to the valid risk-score range.
func ClampScore(raw int) int {
	if raw < minRiskScore {
		return minRiskScore
	}
	if raw > maxRiskScore {
		return maxRiskScore
	}
	return raw
}

func singleValue(ans Answer) string {
	if ans.Value != "" {
		return ans.Value
	}
	if len(ans.Values) == 1 {
		return ans.Values[0]
	}
	return ""
}

func multiValues(ans Answer) []string {
	if len(ans.Values) > 0 {
		return ans.Values
	}
	if ans.Value != "" {
		return []string{ans.Value}
	}
	return nil
}

func numericValue(ans Answer) (float64, bool) {
	if ans.Number != nil {
		return *ans.Number, true
	}
	if ans.Value != "" {
		if n, err := strconv.ParseFloat(ans.Value, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// answerLabel resolves the display label captured in the stored snapshot.
// Choice answers use the choice label; everything else echoes the raw input.
func answerLabel(q *QuestionDefinition, ans Answer) string {
	switch q.Kind {
	case KindSingleChoice:
		if c := q.Choice(singleValue(ans)); c != nil {
			return c.Label
		}
		return singleValue(ans)
	case KindMultiChoice:
		label := ""
		for _, v := range multiValues(ans) {
			part := v
			if c := q.Choice(v); c != nil {
				part = c.Label
			}
			if label != "" {
				label += ", "
			}
			label += part
		}
		return label
	case KindNumeric:
		if n, ok := numericValue(ans); ok {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		return ""
	default:
		if ans.Text != "" {
			return ans.Text
		}
		return ans.Value
	}
}
