package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whichx/classifier"
	"whichx/store"
)

func TestProcessExamplesMatchesSequentialTraining(t *testing.T) {
	var examples []*Example
	for i := 0; i < 40; i++ {
		examples = append(examples,
			&Example{Label: "cat", Description: "meow purr sits on lap"},
			&Example{Label: "dog", Description: fmt.Sprintf("bark woof %c", 'a'+rune(i%26))},
		)
	}

	want := classifier.New()
	require.NoError(t, want.AddLabels("cat", "dog"))
	for _, e := range examples {
		require.NoError(t, want.AddData(e.Label, e.Description))
	}
	wantJSON, err := json.Marshal(want.Export())
	require.NoError(t, err)

	for round := 0; round < 5; round++ {
		m := petModel(t, store.NewMemoryStore())
		assert.Equal(t, len(examples), processExamples(m, examples))

		got, err := json.Marshal(m.Export())
		require.NoError(t, err)
		assert.JSONEq(t, string(wantJSON), string(got))
	}
}

func TestDrainWithConcurrentTraining(t *testing.T) {
	s := store.NewMemoryStore()
	m := petModel(t, s)
	q := NewQueue(m, time.Hour)
	for i := 0; i < MAX_PARALLEL; i++ {
		q.Push(&Example{Label: "cat", Description: "meow"})
	}

	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			assert.NoError(t, m.AddData("dog", "bark"))
		}
	}()
	assert.Equal(t, MAX_PARALLEL, q.Drain(context.Background()))
	wg.Wait()
	require.NoError(t, m.Sync(context.Background()))

	snap, err := s.Load(context.Background(), "pets")
	require.NoError(t, err)
	total, _ := snap.Entry(classifier.TOTAL)
	assert.Equal(t, MAX_PARALLEL+20, total.EventCount)
}
