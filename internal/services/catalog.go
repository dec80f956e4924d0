package services

import (
	"encoding/json"
	"strings"
)

// QuestionKind determines how an answer is interpreted and scored.
type QuestionKind string

const (
	KindSingleChoice QuestionKind = "single-choice"
	KindMultiChoice  QuestionKind = "multi-choice"
	KindFreeText     QuestionKind = "free-text"
	KindNumeric      QuestionKind = "numeric"
)

// Choice is one selectable option of a choice question. Score is the
// integer contribution the option adds to the risk total.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

// NumericBand scores a numeric answer: the first band whose Max is >= the
// answered value wins. Values above every band contribute zero.
type NumericBand struct {
	Max   float64 `json:"max"`
	Score int     `json:"score"`
}

// QuestionDefinition is one entry of the assessment catalog. Choice scores
// and numeric bands live here so that scoring stays data-driven; nothing in
// the engine special-cases individual question IDs.
type QuestionDefinition struct {
	ID           string        `json:"id"`
	Category     string        `json:"category"`
	Prompt       string        `json:"prompt"`
	Kind         QuestionKind  `json:"kind"`
	Choices      []Choice      `json:"choices,omitempty"`
	NumericBands []NumericBand `json:"numeric_bands,omitempty"`
}

// Choice returns the choice matching value, or nil.
func (q *QuestionDefinition) Choice(value string) *Choice {
	for i := range q.Choices {
		if q.Choices[i].Value == value {
			return &q.Choices[i]
		}
	}
	return nil
}

// Answer is one respondent answer, keyed externally by question ID. The
// client may send a bare string, an array of strings, a number, or the
// explicit object form; UnmarshalJSON accepts all four.
type Answer struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
	Text   string   `json:"text,omitempty"`
	Number *float64 `json:"number,omitempty"`
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Value = s
		return nil
	case '[':
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return err
		}
		a.Values = vs
		return nil
	case '{':
		type plain Answer
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*a = Answer(p)
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		a.Number = &n
		return nil
	}
}

// DefaultCatalog returns the standard wellness check-in questionnaire. The
// caller owns the slice; engines receive the catalog explicitly so tests can
// swap in synthetic ones.
func DefaultCatalog() []QuestionDefinition {
	return []QuestionDefinition{
		{
			ID:       "sleep1",
			Category: "sleep",
			Prompt:   "How has your sleep been over the past week?",
			Kind:     KindSingleChoice,
			Choices: []Choice{
				{Value: "excellent", Label: "Excellent - I sleep well most nights", Score: 0},
				{Value: "good", Label: "Good - Generally sleep well", Score: 1},
				{Value: "fair", Label: "Fair - Some difficulty sleeping", Score: 2},
				{Value: "poor", Label: "Poor - Frequent sleep problems", Score: 3},
			},
		},
		{
			ID:       "mood1",
			Category: "mood",
			Prompt:   "How would you describe your mood over the past two weeks?",
			Kind:     KindSingleChoice,
			Choices: []Choice{
				{Value: "very_positive", Label: "Very positive and happy", Score: 0},
				{Value: "mostly_positive", Label: "Mostly positive", Score: 1},
				{Value: "mixed", Label: "Mixed - some good days, some bad", Score: 2},
				{Value: "mostly_low", Label: "Mostly low or sad", Score: 3},
			},
		},
		{
			ID:       "currentMood",
			Category: "mood",
			Prompt:   "Rate your mood right now on a scale of 0 to 10.",
			Kind:     KindNumeric,
			NumericBands: []NumericBand{
				{Max: 3, Score: 5},
				{Max: 6, Score: 3},
			},
		},
		{
			ID:       "stress1",
			Category: "stress",
			Prompt:   "How often do you feel overwhelmed or stressed?",
			Kind:     KindSingleChoice,
			Choices: []Choice{
				{Value: "rarely", Label: "Rarely or never", Score: 0},
				{Value: "sometimes", Label: "Sometimes", Score: 1},
				{Value: "often", Label: "Often", Score: 2},
				{Value: "constantly", Label: "Almost constantly", Score: 3},
			},
		},
		{
			ID:       "energy1",
			Category: "energy",
			Prompt:   "How are your energy levels throughout the day?",
			Kind:     KindSingleChoice,
			Choices: []Choice{
				{Value: "high", Label: "High energy most of the day", Score: 0},
				{Value: "moderate", Label: "Moderate energy", Score: 1},
				{Value: "low", Label: "Low energy but manageable", Score: 2},
				{Value: "very_low", Label: "Very low energy, hard to function", Score: 3},
			},
		},
		{
			ID:       "social1",
			Category: "social",
			Prompt:   "How do you feel about your relationships and social connections?",
			Kind:     KindSingleChoice,
			Choices: []Choice{
				{Value: "strong", Label: "Strong and supportive", Score: 0},
				{Value: "good", Label: "Generally good", Score: 1},
				{Value: "mixed", Label: "Some good, some challenging", Score: 2},
				{Value: "isolated", Label: "Feel isolated or disconnected", Score: 3},
			},
		},
		{
			ID:       "anxiety1",
			Category: "anxiety",
			Prompt:   "How often do you experience anxiety or worry?",
			Kind:     KindSingleChoice,
			Choices: []Choice{
				{Value: "rarely", Label: "Rarely", Score: 0},
				{Value: "occasionally", Label: "Occasionally", Score: 1},
				{Value: "frequently", Label: "Frequently", Score: 2},
				{Value: "constantly", Label: "Almost constantly", Score: 3},
			},
		},
		{
			ID:       "coping1",
			Category: "coping",
			Prompt:   "How well do you feel you're coping with daily challenges?",
			Kind:     KindSingleChoice,
			Choices: []Choice{
				{Value: "very_well", Label: "Very well - I handle things easily", Score: 0},
				{Value: "well", Label: "Well - I manage most things", Score: 1},
				{Value: "struggling", Label: "Struggling but getting by", Score: 2},
				{Value: "overwhelmed", Label: "Feeling overwhelmed and unable to cope", Score: 3},
			},
		},
		{
			ID:       "hope1",
			Category: "mood",
			Prompt:   "How hopeful do you feel about the future?",
			Kind:     KindSingleChoice,
			Choices: []Choice{
				{Value: "very_hopeful", Label: "Very hopeful and optimistic", Score: 0},
				{Value: "hopeful", Label: "Generally hopeful", Score: 1},
				{Value: "uncertain", Label: "Uncertain about the future", Score: 2},
				{Value: "hopeless", Label: "Feeling hopeless or pessimistic", Score: 3},
			},
		},
		{
			ID:       "selfHarmThoughts",
			Category: "safety",
			Prompt:   "Have you had thoughts of harming yourself recently?",
			Kind:     KindSingleChoice,
			Choices: []Choice{
				{Value: "no", Label: "No", Score: 0},
				{Value: "yes", Label: "Yes", Score: 5},
			},
		},
	}
}

// FindQuestion returns the catalog entry for id, or nil.
func FindQuestion(catalog []QuestionDefinition, id string) *QuestionDefinition {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
