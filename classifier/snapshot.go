package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Snapshot is a detached copy of the statistics store. Entries keep their
// insertion order, the aggregate first and labels in registration order,
// so ties resolve the same way after a round trip.
type Snapshot struct {
	order   []string
	entries map[string]*Entry
}

func NewSnapshot() *Snapshot {
	return &Snapshot{entries: make(map[string]*Entry)}
}

// Put stores a copy of e under name, appending name to the order on first use.
func (s *Snapshot) Put(name string, e Entry) {
	if e.Tokens == nil {
		e.Tokens = map[string]int{}
	}
	if _, ok := s.entries[name]; !ok {
		s.order = append(s.order, name)
	}
	s.entries[name] = e.clone()
}

// Entry returns a copy of the named entry.
func (s *Snapshot) Entry(name string) (Entry, bool) {
	e, ok := s.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e.clone(), true
}

// Names lists every entry, "total" included, in snapshot order.
func (s *Snapshot) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Snapshot) Len() int {
	return len(s.order)
}

func (s *Snapshot) valid() bool {
	total, ok := s.entries[TOTAL]
	return ok && !total.incomplete
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		eb, err := json.Marshal(s.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(eb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object token by token to keep key order.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("snapshot: expected object, got %v", tok)
	}

	s.order = nil
	s.entries = make(map[string]*Entry)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("snapshot: expected key, got %v", tok)
		}
		e := new(Entry)
		if err := dec.Decode(e); err != nil {
			return fmt.Errorf("snapshot: entry %q: %w", name, err)
		}
		if _, dup := s.entries[name]; !dup {
			s.order = append(s.order, name)
		}
		s.entries[name] = e
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
