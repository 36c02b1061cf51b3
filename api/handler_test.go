package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whichx/model"
	"whichx/processor"
	"whichx/store"
)

func testApp(t *testing.T) (*fiber.App, *model.Model, *processor.Queue) {
	m := model.New("pets", store.NewMemoryStore(), nil)
	q := processor.NewQueue(m, time.Hour)
	app := fiber.New()
	apiGroup := app.Group("/api")
	Routes(&apiGroup, m, q)
	return app, m, q
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(b, &out), string(b))
	return resp.StatusCode, out
}

func train(t *testing.T, app *fiber.App) {
	code, _ := do(t, app, http.MethodPost, "/api/labels", `{"labels":["cat","dog"]}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, app, http.MethodPost, "/api/data", `{"label":"cat","description":"meow purr sits on lap"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, app, http.MethodPost, "/api/data", `{"label":"dog","description":"bark woof wag fetch"}`)
	require.Equal(t, http.StatusOK, code)
}

func TestClassify(t *testing.T) {
	app, _, _ := testApp(t)
	train(t, app)

	code, res := do(t, app, http.MethodPost, "/api/classify", `{"description":"sits"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cat", res["label"])
	assert.Nil(t, res["scores"])

	code, res = do(t, app, http.MethodPost, "/api/classify", `{"description":"bark","explain":true}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "dog", res["label"])
	assert.Len(t, res["scores"], 2)
}

// bestOf picks the winner out of the scores a classify response carries.
func bestOf(t *testing.T, res map[string]interface{}) interface{} {
	scores, ok := res["scores"].([]interface{})
	require.True(t, ok, res)
	var label interface{}
	best := -1.0
	for _, s := range scores {
		score := s.(map[string]interface{})
		chance, ok := score["chance"].(float64)
		if ok && chance > best {
			best = chance
			label = score["label"]
		}
	}
	return label
}

func TestClassifyExplainMatchesLabel(t *testing.T) {
	app, m, _ := testApp(t)
	train(t, app)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			assert.NoError(t, m.AddData("dog", "sits sits"))
		}
	}()
	for i := 0; i < 50; i++ {
		code, res := do(t, app, http.MethodPost, "/api/classify", `{"description":"sits","explain":true}`)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, bestOf(t, res), res["label"])
	}
	<-done
}

func TestClassifyWithoutLabels(t *testing.T) {
	app, _, _ := testApp(t)
	code, res := do(t, app, http.MethodPost, "/api/classify", `{"description":"sits"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, res, "label")
	assert.Nil(t, res["label"])
}

func TestClassifyRejectsInvalidDescription(t *testing.T) {
	app, _, _ := testApp(t)
	for _, body := range []string{`{"description":""}`, `{"description":1}`, `{"description":{}}`, `{}`} {
		code, res := do(t, app, http.MethodPost, "/api/classify", body)
		assert.Equal(t, http.StatusBadRequest, code, body)
		assert.Equal(t, false, res["ok"])
	}
}

func TestAddLabels(t *testing.T) {
	app, m, _ := testApp(t)

	code, res := do(t, app, http.MethodPost, "/api/labels", `{"labels":"cat"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []interface{}{"cat"}, res["labels"])

	code, _ = do(t, app, http.MethodPost, "/api/labels", `{"labels":"Cat"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, app, http.MethodPost, "/api/labels", `{"labels":"TOTAL"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, app, http.MethodPost, "/api/labels", `{"labels":1}`)
	assert.Equal(t, http.StatusBadRequest, code)

	// dog is kept, nothing after the bad element is attempted
	code, _ = do(t, app, http.MethodPost, "/api/labels", `{"labels":["dog",{},"horse"]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"cat", "dog"}, m.Labels())

	code, res = do(t, app, http.MethodGet, "/api/labels", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []interface{}{"cat", "dog"}, res["labels"])
}

func TestAddDataRejectsInvalid(t *testing.T) {
	app, _, _ := testApp(t)
	train(t, app)

	code, _ := do(t, app, http.MethodPost, "/api/data", `{"label":"horse","description":"neigh"}`)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, app, http.MethodPost, "/api/data", `{"label":"cat","description":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, app, http.MethodPost, "/api/data", `{"label":"cat","description":["meow"]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, app, http.MethodPost, "/api/data", `{"label":2,"description":"meow"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestInsertData(t *testing.T) {
	app, m, q := testApp(t)
	train(t, app)

	code, res := do(t, app, http.MethodPost, "/api/data/insert",
		`[{"label":"dog","description":"sits sits"},{"label":"dog","description":"test"}]`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), res["queued"])
	assert.Equal(t, 2, q.Len())

	code, _ = do(t, app, http.MethodPost, "/api/data/insert", `[{"label":"dog","description":5}]`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 2, q.Len())

	q.Drain(t.Context())
	label, ok, err := m.Classify("sits")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dog", label)
}

func TestExportImport(t *testing.T) {
	app, _, _ := testApp(t)
	train(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/model/export", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, strings.HasPrefix(string(exported), `{"total":{"tcount":2,"wordTotal":9,`), string(exported))

	fresh, m, _ := testApp(t)
	code, res := do(t, fresh, http.MethodPost, "/api/model/import", string(exported))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []interface{}{"cat", "dog"}, res["labels"])
	assert.Equal(t, []string{"cat", "dog"}, m.Labels())

	code, res = do(t, fresh, http.MethodPost, "/api/classify", `{"description":"meow unknown"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cat", res["label"])

	code, _ = do(t, fresh, http.MethodPost, "/api/model/import", `{"cat":{"tcount":1,"wordTotal":1}}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, fresh, http.MethodPost, "/api/model/import", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"cat", "dog"}, m.Labels())
}

func TestSyncAndReset(t *testing.T) {
	app, m, _ := testApp(t)
	train(t, app)

	code, _ := do(t, app, http.MethodGet, "/api/data/sync", "")
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, m.Dirty())

	code, _ = do(t, app, http.MethodDelete, "/api/data/reset", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, m.Labels())

	require.NoError(t, m.Load(t.Context()))
	assert.Empty(t, m.Labels())
}
