package classifier

import (
	"encoding/json"
	"fmt"
	"sort"
)

const TOTAL = "total"

// keys used by the flattened JSON form of an Entry
const (
	eventCountKey = "tcount"
	tokenTotalKey = "wordTotal"
)

// Entry holds the evidence accumulated for one label or for the aggregate.
type Entry struct {
	EventCount int
	TokenTotal int
	Tokens     map[string]int

	// set when a decoded entry lacked one of the count fields
	incomplete bool
}

func newEntry(tokenTotal int) *Entry {
	return &Entry{TokenTotal: tokenTotal, Tokens: make(map[string]int)}
}

func (e *Entry) add(token string) {
	e.Tokens[token]++
	e.TokenTotal++
}

func (e *Entry) clone() *Entry {
	c := &Entry{
		EventCount: e.EventCount,
		TokenTotal: e.TokenTotal,
		Tokens:     make(map[string]int, len(e.Tokens)),
		incomplete: e.incomplete,
	}
	for k, v := range e.Tokens {
		c.Tokens[k] = v
	}
	return c
}

// MarshalJSON writes the counters and the token counts side by side:
// {"tcount":2,"wordTotal":3,"ete":2}
func (e Entry) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(e.Tokens))
	for k := range e.Tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := []byte(fmt.Sprintf(`{"%s":%d,"%s":%d`, eventCountKey, e.EventCount, tokenTotalKey, e.TokenTotal))
	for _, k := range keys {
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, ',')
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, fmt.Sprintf("%d", e.Tokens[k])...)
	}
	return append(buf, '}'), nil
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	raw := make(map[string]int)
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	ec, hasEC := raw[eventCountKey]
	tt, hasTT := raw[tokenTotalKey]
	delete(raw, eventCountKey)
	delete(raw, tokenTotalKey)

	e.EventCount = ec
	e.TokenTotal = tt
	e.Tokens = raw
	e.incomplete = !hasEC || !hasTT
	return nil
}
