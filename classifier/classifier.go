// Package classifier learns per-label word frequencies from labeled
// descriptions and predicts the most probable label for new text.
//
// A Classifier is not safe for concurrent use; callers sharing one must
// serialize access themselves.
package classifier

import (
	"fmt"
	"strings"

	"whichx/textprocessor"
)

// Label keys that would shadow a member of a generic key-value object in
// consumers of the exported snapshot.
var structuralKeys = map[string]struct{}{
	"constructor":          {},
	"__proto__":            {},
	"hasownproperty":       {},
	"isprototypeof":        {},
	"propertyisenumerable": {},
	"tolocalestring":       {},
	"tostring":             {},
	"valueof":              {},
	"__definegetter__":     {},
	"__definesetter__":     {},
	"__lookupgetter__":     {},
	"__lookupsetter__":     {},
}

type Classifier struct {
	tp *textprocessor.TextProcessor

	// registered labels in insertion order, "total" excluded
	labels  []string
	entries map[string]*Entry
}

type config struct {
	stopWords []string
}

type Option func(*config)

// WithStopWords replaces the default stop-word list. A nil list keeps the
// defaults, an empty one disables everything but the structural keys.
func WithStopWords(words []string) Option {
	return func(c *config) {
		if words == nil {
			return
		}
		c.stopWords = append(make([]string, 0, len(words)), words...)
	}
}

func New(opts ...Option) *Classifier {
	cfg := new(config)
	for _, o := range opts {
		o(cfg)
	}
	c := &Classifier{tp: textprocessor.New(cfg.stopWords)}
	c.reset()
	return c
}

func (c *Classifier) reset() {
	c.labels = nil
	// total starts at one word so the first estimate never divides by zero
	c.entries = map[string]*Entry{TOTAL: newEntry(1)}
}

// Labels returns the registered labels in registration order.
func (c *Classifier) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// AddLabels registers labels one at a time. The first invalid label stops
// the call; labels before it stay registered.
func (c *Classifier) AddLabels(labels ...string) error {
	for _, l := range labels {
		if err := c.addLabel(l); err != nil {
			return err
		}
	}
	return nil
}

func (c *Classifier) addLabel(label string) error {
	key := strings.ToLower(label)
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("%w: label strings must be non-empty", ErrInvalidLabel)
	}
	if key == TOTAL {
		return fmt.Errorf("%w: '%s' is a reserved keyword", ErrReservedLabel, TOTAL)
	}
	if _, ok := structuralKeys[key]; ok {
		return fmt.Errorf("%w: '%s'", ErrStructuralCollision, key)
	}
	if _, ok := c.entries[key]; ok {
		return fmt.Errorf("%w: '%s'", ErrDuplicateLabel, label)
	}
	c.entries[key] = newEntry(0)
	c.labels = append(c.labels, key)
	return nil
}

// AddData counts the tokens of description against label and the aggregate.
func (c *Classifier) AddData(label, description string) error {
	key := strings.ToLower(label)
	entry, ok := c.entries[key]
	if !ok || key == TOTAL {
		return fmt.Errorf("%w: '%s' is not an existing label in %v", ErrUnknownLabel, label, c.labels)
	}
	if description == "" {
		return fmt.Errorf("%w: expected a non-empty string", ErrInvalidDescription)
	}

	words := new([]string)
	if err := c.tp.Tokenise(description, words); err != nil {
		return err
	}

	total := c.entries[TOTAL]
	entry.EventCount++
	total.EventCount++
	for _, w := range *words {
		entry.add(w)
		total.add(w)
	}
	return nil
}

// Export returns a deep copy of the learned statistics.
func (c *Classifier) Export() *Snapshot {
	s := NewSnapshot()
	s.Put(TOTAL, *c.entries[TOTAL])
	for _, l := range c.labels {
		s.Put(l, *c.entries[l])
	}
	return s
}

// Import replaces everything this classifier has learned with a copy of s.
func (c *Classifier) Import(s *Snapshot) error {
	if s == nil || !s.valid() {
		return fmt.Errorf("%w: this doesn't look like it was exported from a prior model", ErrInvalidImport)
	}
	labels := make([]string, 0, s.Len())
	entries := make(map[string]*Entry, s.Len())
	for _, name := range s.order {
		entries[name] = s.entries[name].clone()
		if name != TOTAL {
			labels = append(labels, name)
		}
	}
	c.labels = labels
	c.entries = entries
	return nil
}
