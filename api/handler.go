package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"whichx/classifier"
	"whichx/model"
	"whichx/processor"
)

type handler struct {
	m *model.Model
	q *processor.Queue
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"ok":    false,
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, classifier.ErrUnknownLabel):
		return fiber.StatusNotFound
	case errors.Is(err, classifier.ErrDuplicateLabel):
		return fiber.StatusConflict
	case errors.Is(err, classifier.ErrInvalidLabel),
		errors.Is(err, classifier.ErrReservedLabel),
		errors.Is(err, classifier.ErrStructuralCollision),
		errors.Is(err, classifier.ErrInvalidDescription),
		errors.Is(err, classifier.ErrInvalidImport):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// addLabels accepts a single label or a list of labels. Elements are
// registered one by one so a bad element leaves earlier ones registered.
func (h *handler) addLabels(c *fiber.Ctx) error {
	type inp struct {
		Labels interface{} `json:"labels"`
	}
	input := new(inp)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.ErrBadRequest.Code).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}

	var labels []interface{}
	switch v := input.Labels.(type) {
	case string:
		labels = []interface{}{v}
	case []interface{}:
		labels = v
	default:
		return fail(c, fmt.Errorf("%w '%v' of type '%T': expected a list or a string", classifier.ErrInvalidLabel, v, v))
	}
	for _, l := range labels {
		s, ok := l.(string)
		if !ok {
			return fail(c, fmt.Errorf("%w of type '%T': expected string", classifier.ErrInvalidLabel, l))
		}
		if err := h.m.AddLabels(s); err != nil {
			return fail(c, err)
		}
	}

	// all done
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":     true,
		"labels": h.m.Labels(),
	})
}

func (h *handler) labels(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":     true,
		"labels": h.m.Labels(),
	})
}

type dataInput struct {
	Label       interface{} `json:"label"`
	Description interface{} `json:"description"`
}

func (d *dataInput) example() (*processor.Example, error) {
	label, ok := d.Label.(string)
	if !ok {
		return nil, fmt.Errorf("%w of type '%T': expected string", classifier.ErrInvalidLabel, d.Label)
	}
	description, ok := d.Description.(string)
	if !ok {
		return nil, fmt.Errorf("%w of type '%T': expected a non-empty string", classifier.ErrInvalidDescription, d.Description)
	}
	return &processor.Example{Label: label, Description: description}, nil
}

func (h *handler) addData(c *fiber.Ctx) error {
	input := new(dataInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.ErrBadRequest.Code).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}
	e, err := input.example()
	if err != nil {
		return fail(c, err)
	}
	if err := h.m.AddData(e.Label, e.Description); err != nil {
		return fail(c, err)
	}

	// all done
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok": true,
	})
}

// insertData queues a batch of examples for background training.
func (h *handler) insertData(c *fiber.Ctx) error {
	inputs := new([]dataInput)
	if err := c.BodyParser(inputs); err != nil {
		return c.Status(fiber.ErrBadRequest.Code).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}

	examples := make([]*processor.Example, 0, len(*inputs))
	for i := range *inputs {
		e, err := (*inputs)[i].example()
		if err != nil {
			return fail(c, fmt.Errorf("example %d: %w", i, err))
		}
		examples = append(examples, e)
	}
	h.q.Push(examples...)

	// all done
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":     true,
		"queued": len(examples),
	})
}

func (h *handler) classify(c *fiber.Ctx) error {
	type inp struct {
		Description interface{} `json:"description"`
		Explain     bool        `json:"explain"`
	}
	input := new(inp)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.ErrBadRequest.Code).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}
	description, ok := input.Description.(string)
	if !ok {
		return fail(c, fmt.Errorf("%w of type '%T': expected a non-empty string", classifier.ErrInvalidDescription, input.Description))
	}

	// label and scores come from the same read of the model
	scores, err := h.m.Scores(description)
	if err != nil {
		return fail(c, err)
	}
	res := fiber.Map{"ok": true, "label": nil}
	if label, found := classifier.Best(scores); found {
		res["label"] = label
	}
	if input.Explain {
		res["scores"] = scores
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *handler) export(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.m.Export())
}

func (h *handler) importModel(c *fiber.Ctx) error {
	snap := classifier.NewSnapshot()
	if err := json.Unmarshal(c.Body(), snap); err != nil {
		return fail(c, fmt.Errorf("%w: %s", classifier.ErrInvalidImport, err.Error()))
	}
	if err := h.m.Import(snap); err != nil {
		return fail(c, err)
	}

	// all done
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":     true,
		"labels": h.m.Labels(),
	})
}

func (h *handler) sync(c *fiber.Ctx) error {
	if err := h.m.Sync(c.UserContext()); err != nil {
		return fail(c, err)
	}

	// all done
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok": true,
	})
}

func (h *handler) reset(c *fiber.Ctx) error {
	if err := h.m.Reset(c.UserContext()); err != nil {
		return fail(c, err)
	}

	// all done
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok": true,
	})
}
