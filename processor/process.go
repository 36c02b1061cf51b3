package processor

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"whichx/model"
)

// processExamples trains m on every example concurrently; the model
// serializes the writes. Returns how many were learned.
func processExamples(m *model.Model, q []*Example) int {
	var learned int
	mu := new(sync.Mutex)
	wg := new(sync.WaitGroup)
	wg.Add(len(q))
	for _, x := range q {
		go func(e *Example) {
			defer wg.Done()
			// invalid examples are never retried
			if err := m.AddData(e.Label, e.Description); err != nil {
				log.WithField("label", e.Label).Warnf("Dropping example: %s", err.Error())
				return
			}
			mu.Lock()
			learned++
			mu.Unlock()
		}(x)
	}
	wg.Wait()
	return learned
}
