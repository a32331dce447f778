package moderation

import "strings"

// Fixed label keys merged into the scorer's mapping before the decision
// policy runs.
const (
	LabelKeywordHeuristic  = "keyword_heuristic"
	LabelNegativeSentiment = "sentiment_negative"
)

// Decision policy thresholds. Comparisons are inclusive (>=).
const (
	rejectThreshold      = 0.85
	humanReviewThreshold = 0.55
	sentimentThreshold   = 0.80
)

// toxicLabels are the classifier outputs that feed the toxicity signal.
var toxicLabels = []string{
	"toxic",
	"severe_toxic",
	"obscene",
	"threat",
	"insult",
	"identity_hate",
}

// toxicKeywords catch obvious abusive phrasing without depending on the
// remote model.
var toxicKeywords = map[string]float64{
	"hate":   0.7,
	"idiot":  0.9,
	"stupid": 0.75,
	"kill":   0.95,
	"spam":   0.8,
	"trash":  0.6,
}

// keywordScore returns the highest keyword weight found in the text.
func keywordScore(text string) float64 {
	lowered := strings.ToLower(text)
	score := 0.0
	for token, weight := range toxicKeywords {
		if strings.Contains(lowered, token) && weight > score {
			score = weight
		}
	}
	return score
}

// decide applies the decision policy to a merged score mapping. The toxicity
// signal is the max over the toxic labels including the keyword heuristic;
// the negative sentiment score is a secondary trigger for human review.
func decide(scores map[string]float64) (Decision, float64) {
	toxicitySignal := scores[LabelKeywordHeuristic]
	for _, label := range toxicLabels {
		if v := scores[label]; v > toxicitySignal {
			toxicitySignal = v
		}
	}
	sentiment := scores[LabelNegativeSentiment]

	switch {
	case toxicitySignal >= rejectThreshold:
		return DecisionRejected, toxicitySignal
	case toxicitySignal >= humanReviewThreshold:
		return DecisionHumanReview, toxicitySignal
	case sentiment >= sentimentThreshold:
		return DecisionHumanReview, sentiment
	default:
		confidence := toxicitySignal
		if sentiment > confidence {
			confidence = sentiment
		}
		return DecisionApproved, confidence
	}
}
