package store

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"whichx/classifier"
)

// bump when payload changes shape
const payloadSchema uint16 = 1

type payloadEntry struct {
	Name       string         `msgpack:"name"`
	EventCount int            `msgpack:"tcount"`
	TokenTotal int            `msgpack:"wordTotal"`
	Tokens     map[string]int `msgpack:"tokens"`
}

// payload keeps entries in a list so label order survives encoding.
type payload struct {
	Schema  uint16         `msgpack:"schema"`
	Entries []payloadEntry `msgpack:"entries"`
}

func encodeSnapshot(s *classifier.Snapshot) ([]byte, error) {
	p := payload{Schema: payloadSchema}
	for _, name := range s.Names() {
		e, _ := s.Entry(name)
		p.Entries = append(p.Entries, payloadEntry{
			Name:       name,
			EventCount: e.EventCount,
			TokenTotal: e.TokenTotal,
			Tokens:     e.Tokens,
		})
	}
	buf := new(bytes.Buffer)
	if err := msgpack.NewEncoder(buf).Encode(&p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSnapshot(b []byte) (*classifier.Snapshot, error) {
	p := new(payload)
	if err := msgpack.NewDecoder(bytes.NewReader(b)).Decode(p); err != nil {
		return nil, err
	}
	s := classifier.NewSnapshot()
	for _, e := range p.Entries {
		s.Put(e.Name, classifier.Entry{
			EventCount: e.EventCount,
			TokenTotal: e.TokenTotal,
			Tokens:     e.Tokens,
		})
	}
	return s, nil
}
