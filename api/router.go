package api

import (
	"whichx/model"
	"whichx/processor"

	"github.com/gofiber/fiber/v2"
)

func Routes(router *fiber.Router, m *model.Model, q *processor.Queue) {
	h := &handler{m, q}
	(*router).Post("/labels", h.addLabels)
	(*router).Get("/labels", h.labels)
	(*router).Post("/data", h.addData)
	(*router).Post("/data/insert", h.insertData)
	(*router).Get("/data/sync", h.sync)
	(*router).Delete("/data/reset", h.reset)
	(*router).Post("/classify", h.classify)
	(*router).Get("/model/export", h.export)
	(*router).Post("/model/import", h.importModel)
}
