package classifier

import (
	"encoding/json"
	"fmt"
	"math"
)

// PRIOR_DIVISOR scales the aggregate word total into the prior estimate.
const PRIOR_DIVISOR = 100.0

type Score struct {
	Label  string  `json:"label"`
	Chance float64 `json:"chance"`
}

// MarshalJSON writes an undefined chance (untrained label) as null.
func (s Score) MarshalJSON() ([]byte, error) {
	var chance *float64
	if !math.IsNaN(s.Chance) && !math.IsInf(s.Chance, 0) {
		chance = &s.Chance
	}
	return json.Marshal(struct {
		Label  string   `json:"label"`
		Chance *float64 `json:"chance"`
	}{s.Label, chance})
}

// Classify returns the label with the strictly greatest chance. ok is false
// when no label could be selected, which is not an error.
func (c *Classifier) Classify(description string) (label string, ok bool, err error) {
	scores, err := c.Scores(description)
	if err != nil {
		return "", false, err
	}
	label, ok = Best(scores)
	return label, ok, nil
}

// Best picks the winner of scores the way Classify does.
func Best(scores []Score) (label string, ok bool) {
	best := -1.0
	for _, s := range scores {
		// NaN never wins; equal chances keep the earlier label
		if s.Chance > best {
			best = s.Chance
			label = s.Label
			ok = true
		}
	}
	return label, ok
}

// Scores computes the chance of every registered label, in registration order.
func (c *Classifier) Scores(description string) ([]Score, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: expected a non-empty string", ErrInvalidDescription)
	}
	words := new([]string)
	if err := c.tp.Tokenise(description, words); err != nil {
		return nil, err
	}

	scores := make([]Score, 0, len(c.labels))
	for _, l := range c.labels {
		scores = append(scores, Score{Label: l, Chance: c.typeChance(c.entries[l], *words)})
	}
	return scores, nil
}

// typeChance multiplies the per-word chances of words belonging to entry and
// weights the product by how often entry was trained.
func (c *Classifier) typeChance(entry *Entry, words []string) float64 {
	total := c.entries[TOTAL]
	typeEvents := float64(entry.EventCount)
	totalEvents := float64(total.EventCount)

	chance := 0.0
	for _, w := range words {
		typeWordCount := c.wordCount(entry, w)
		totalWordCount := c.wordCount(total, w)

		p1 := (typeWordCount / float64(entry.TokenTotal)) * (typeEvents / totalEvents)
		// only the divided term is subtracted from totalWordCount
		p2 := (totalWordCount - typeWordCount/float64(total.TokenTotal-entry.TokenTotal)) * ((totalEvents - typeEvents) / totalEvents)
		wordChance := p1 / (p1 + p2)

		if chance <= 0 {
			chance = wordChance
		} else {
			chance *= wordChance
		}
	}
	return chance * (typeEvents / totalEvents)
}

func (c *Classifier) wordCount(e *Entry, word string) float64 {
	if n, ok := e.Tokens[word]; ok {
		return float64(n)
	}
	return c.priorEstimate()
}

// priorEstimate is a small non-zero count used for unseen words.
func (c *Classifier) priorEstimate() float64 {
	return 1 / (float64(c.entries[TOTAL].TokenTotal) * PRIOR_DIVISOR)
}
