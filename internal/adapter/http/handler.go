package http

import (
	"context"
	"errors"
	"log/slog"

	"portfolio-generator/internal/adapter/repository"
	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/section"
	"portfolio-generator/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type Generator interface {
	Process(ctx context.Context, snap usecase.Snapshot) (usecase.Result, error)
}

type CardBuilder interface {
	Build(entries []domain.Portfolio) []usecase.Card
}

type GenerationHistory interface {
	Recent(ctx context.Context, email string, limit int) ([]domain.GenerationJob, error)
}

type Handler struct {
	session   *usecase.Session
	runner    *usecase.Runner
	generator Generator
	cards     CardBuilder
	history   GenerationHistory
	log       *slog.Logger
}

func NewHandler(s *usecase.Session, r *usecase.Runner, g Generator, cards CardBuilder, history GenerationHistory, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{session: s, runner: r, generator: g, cards: cards, history: history, log: logger}
}

// NewApp returns a fiber app with every route registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	h.Register(app)
	return app
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.Health)

	app.Get("/draft", h.GetDraft)
	app.Put("/draft", h.UpdateDraft)
	app.Post("/draft/advance", h.Advance)

	app.Post("/sections/:kind/entries", h.AddEntry)
	app.Patch("/sections/:kind/entries/:id", h.UpdateEntry)
	app.Delete("/sections/:kind/entries/:id", h.RemoveEntry)

	app.Get("/design", h.GetDesign)
	app.Put("/design", h.UpdateDesign)
	app.Post("/finalize", h.Finalize)

	app.Post("/generate", h.Generate)
	app.Get("/tasks/:id", h.GetTask)

	app.Get("/portfolios", h.ListPortfolios)
	app.Post("/portfolios/load", h.LoadPortfolio)
	app.Get("/portfolios/generations", h.Generations)

	app.Get("/artifacts/pdf", h.PDF)
	app.Get("/artifacts/preview", h.Preview)
}

var errInvalidPayload = fiber.NewError(fiber.StatusBadRequest, "invalid payload")

// ErrorHandler maps domain errors to status codes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, usecase.ErrBusy):
		code = fiber.StatusConflict
	case errors.Is(err, usecase.ErrUnknownSection),
		errors.Is(err, usecase.ErrUnknownTask),
		errors.Is(err, section.ErrUnknownEntry),
		errors.Is(err, repository.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, section.ErrUnknownField),
		errors.Is(err, domain.ErrUnknownProfileField),
		errors.Is(err, usecase.ErrInvalidColor):
		code = fiber.StatusBadRequest
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) GetDraft(c *fiber.Ctx) error {
	return c.JSON(h.session.Draft())
}

type draftReq struct {
	Fields    map[string]string `json:"fields"`
	PhotoPath *string           `json:"photo_path"`
}

// UpdateDraft sets profile fields. A photo that is not a readable image is
// ignored, which the response reports as photoAccepted=false.
func (h *Handler) UpdateDraft(c *fiber.Ctx) error {
	var req draftReq
	if err := c.BodyParser(&req); err != nil {
		return errInvalidPayload
	}
	if err := h.session.SetFields(req.Fields); err != nil {
		return err
	}

	resp := fiber.Map{"draft": nil}
	if req.PhotoPath != nil {
		if *req.PhotoPath == "" {
			h.session.ClearPhoto()
		} else {
			_, ok := h.session.SetPhoto(*req.PhotoPath)
			resp["photoAccepted"] = ok
		}
	}
	resp["draft"] = h.session.Draft()
	return c.JSON(resp)
}

func (h *Handler) Advance(c *fiber.Ctx) error {
	if err := h.session.Advance(); err != nil {
		return err
	}
	return c.JSON(h.session.Draft())
}

func (h *Handler) AddEntry(c *fiber.Ctx) error {
	id, err := h.session.AddEntry(c.Params("kind"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *Handler) UpdateEntry(c *fiber.Ctx) error {
	var values map[string]string
	if err := c.BodyParser(&values); err != nil {
		return errInvalidPayload
	}
	kind, id := c.Params("kind"), section.ID(c.Params("id"))
	if err := h.session.SetEntryFields(kind, id, values); err != nil {
		return err
	}
	entries, err := h.session.Entries(kind)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (h *Handler) RemoveEntry(c *fiber.Ctx) error {
	if err := h.session.RemoveEntry(c.Params("kind"), section.ID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetDesign(c *fiber.Ctx) error {
	return c.JSON(h.session.Design())
}

func (h *Handler) UpdateDesign(c *fiber.Ctx) error {
	var req domain.Design
	if err := c.BodyParser(&req); err != nil {
		return errInvalidPayload
	}
	if err := h.session.SetDesign(req.Primary, req.Secondary); err != nil {
		return err
	}
	return c.JSON(h.session.Design())
}

func (h *Handler) Finalize(c *fiber.Ctx) error {
	entry, err := h.session.Finalize()
	if err != nil {
		return err
	}
	return c.JSON(entry)
}

// Generate starts a background generation from the current draft.
func (h *Handler) Generate(c *fiber.Ctx) error {
	snap := h.session.Snapshot()
	task, err := h.runner.Submit(context.Background(), func(ctx context.Context) (usecase.Result, error) {
		res, err := h.generator.Process(ctx, snap)
		if err != nil {
			h.log.Error("generation failed", "email", snap.Profile.Email, "error", err)
			return res, err
		}
		h.session.SetLastResult(res)
		return res, nil
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"taskId": task.ID, "status": task.Status()})
}

func (h *Handler) GetTask(c *fiber.Ctx) error {
	task, err := h.runner.Get(c.Params("id"))
	if err != nil {
		return err
	}
	resp := fiber.Map{"taskId": task.ID, "status": task.Status()}
	select {
	case <-task.Done():
		res, err := task.Result()
		resp["result"] = res
		if err != nil {
			resp["error"] = err.Error()
		}
	default:
	}
	return c.JSON(resp)
}

func (h *Handler) ListPortfolios(c *fiber.Ctx) error {
	return c.JSON(h.cards.Build(h.session.Portfolios()))
}

type loadReq struct {
	Email string `json:"email"`
}

func (h *Handler) LoadPortfolio(c *fiber.Ctx) error {
	var req loadReq
	if err := c.BodyParser(&req); err != nil {
		return errInvalidPayload
	}
	if _, err := h.session.LoadPortfolio(req.Email); err != nil {
		return err
	}
	return c.JSON(h.session.Draft())
}

// Generations lists recent runs for ?email=, newest first. Without a
// database the list is empty.
func (h *Handler) Generations(c *fiber.Ctx) error {
	jobs, err := h.history.Recent(c.UserContext(), c.Query("email"), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []domain.GenerationJob{}
	}
	return c.JSON(jobs)
}

func (h *Handler) PDF(c *fiber.Ctx) error {
	res, ok := h.session.LastResult()
	if !ok || res.PDFPath == "" {
		return fiber.NewError(fiber.StatusNotFound, "no portfolio generated yet")
	}
	return c.SendFile(res.PDFPath)
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	res, ok := h.session.LastResult()
	if !ok || res.PreviewPath == "" {
		return fiber.NewError(fiber.StatusNotFound, "no preview available")
	}
	return c.SendFile(res.PreviewPath)
}
