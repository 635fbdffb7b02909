package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/ai"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/models"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/services"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/utils"
)

// Gallery is the photo surface the handlers call.
type Gallery interface {
	Upload(ctx context.Context, filename, contentType string, data []byte, title, description, category string) (*models.Photo, error)
	List(ctx context.Context) ([]models.Photo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Content is the award/ticker/event surface.
type Content interface {
	ListAwards(ctx context.Context) ([]models.Award, error)
	AddAward(ctx context.Context, year, title, description string) (*models.Award, error)
	DeleteAward(ctx context.Context, id primitive.ObjectID) error
	ListTicker(ctx context.Context) ([]models.Ticker, error)
	AddTicker(ctx context.Context, text string) (*models.Ticker, error)
	DeleteTicker(ctx context.Context, id primitive.ObjectID) error
	ListEvents(ctx context.Context) ([]models.Event, error)
	AddEvent(ctx context.Context, title, date, location, description string) (*models.Event, error)
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
}

// Assistant is the AI gateway surface. Errors from it never reach clients;
// the handlers substitute the fixed fallback text.
type Assistant interface {
	Chat(ctx context.Context, message string, history []ai.Message) (string, error)
	GenerateStory(ctx context.Context, topic, background string) (string, error)
}

type Handler struct {
	gallery Gallery
	content Content
	ai      Assistant
	log     *zap.SugaredLogger
}

func NewHandler(gallery Gallery, content Content, assistant Assistant, log *zap.SugaredLogger) *Handler {
	return &Handler{gallery: gallery, content: content, ai: assistant, log: log}
}

// Register mounts every route on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("NSS Backend is running! AI features are active.")
	})
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	api := app.Group("/api")
	api.Post("/upload", h.UploadPhoto)
	api.Get("/photos", h.ListPhotos)
	api.Delete("/photos/:id", h.DeletePhoto)

	api.Get("/awards", h.ListAwards)
	api.Post("/awards", h.AddAward)
	api.Delete("/awards/:id", h.DeleteAward)

	api.Get("/ticker", h.ListTicker)
	api.Post("/ticker", h.AddTicker)
	api.Delete("/ticker/:id", h.DeleteTicker)

	api.Get("/events", h.ListEvents)
	api.Post("/events", h.AddEvent)
	api.Delete("/events/:id", h.DeleteEvent)

	api.Post("/ai-chat", h.AIChat)
	api.Post("/generate-story", h.GenerateStory)
}

// POST /api/upload (multipart: file "photo", fields title/description/category)
func (h *Handler) UploadPhoto(c *fiber.Ctx) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		return utils.JSONFail(c, fiber.StatusBadRequest, "No file uploaded")
	}
	f, err := fh.Open()
	if err != nil {
		h.log.Errorw("upload open failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Upload failed")
	}
	defer f.Close()
	data := make([]byte, fh.Size)
	if _, err := io.ReadFull(f, data); err != nil {
		h.log.Errorw("upload read failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Upload failed")
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	photo, err := h.gallery.Upload(c.UserContext(), fh.Filename, ct, data,
		c.FormValue("title"), c.FormValue("description"), c.FormValue("category"))
	if err != nil {
		h.log.Errorw("upload failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Upload failed")
	}
	return utils.JSONOK(c, fiber.Map{"photo": photo})
}

// GET /api/photos
func (h *Handler) ListPhotos(c *fiber.Ctx) error {
	photos, err := h.gallery.List(c.UserContext())
	if err != nil {
		h.log.Errorw("list photos failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to load photos")
	}
	return c.JSON(photos)
}

// DELETE /api/photos/:id
func (h *Handler) DeletePhoto(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.JSONFail(c, fiber.StatusBadRequest, "Invalid id")
	}
	switch err := h.gallery.Delete(c.UserContext(), id); err {
	case nil:
		return utils.JSONOK(c, nil)
	case services.ErrNotFound:
		return utils.JSONFail(c, fiber.StatusNotFound, "Not found")
	default:
		h.log.Errorw("delete photo failed", "id", id.Hex(), "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Delete failed")
	}
}

func (h *Handler) ListAwards(c *fiber.Ctx) error {
	awards, err := h.content.ListAwards(c.UserContext())
	if err != nil {
		h.log.Errorw("list awards failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to load awards")
	}
	return c.JSON(awards)
}

func (h *Handler) AddAward(c *fiber.Ctx) error {
	var req struct {
		Year        string `json:"year"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	_ = c.BodyParser(&req) // absent fields stay empty
	award, err := h.content.AddAward(c.UserContext(), req.Year, req.Title, req.Description)
	if err != nil {
		h.log.Errorw("add award failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to add award")
	}
	return utils.JSONOK(c, fiber.Map{"award": award})
}

func (h *Handler) DeleteAward(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.JSONFail(c, fiber.StatusBadRequest, "Invalid id")
	}
	switch err := h.content.DeleteAward(c.UserContext(), id); err {
	case nil:
		return utils.JSONOK(c, nil)
	case services.ErrNotFound:
		return utils.JSONFail(c, fiber.StatusNotFound, "Not found")
	default:
		h.log.Errorw("delete award failed", "id", id.Hex(), "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to delete award")
	}
}

func (h *Handler) ListTicker(c *fiber.Ctx) error {
	items, err := h.content.ListTicker(c.UserContext())
	if err != nil {
		h.log.Errorw("list ticker failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to load ticker")
	}
	return c.JSON(items)
}

func (h *Handler) AddTicker(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	_ = c.BodyParser(&req)
	item, err := h.content.AddTicker(c.UserContext(), req.Text)
	if err != nil {
		h.log.Errorw("add ticker failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to add ticker item")
	}
	return utils.JSONOK(c, fiber.Map{"item": item})
}

func (h *Handler) DeleteTicker(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.JSONFail(c, fiber.StatusBadRequest, "Invalid id")
	}
	switch err := h.content.DeleteTicker(c.UserContext(), id); err {
	case nil:
		return utils.JSONOK(c, nil)
	case services.ErrNotFound:
		return utils.JSONFail(c, fiber.StatusNotFound, "Not found")
	default:
		h.log.Errorw("delete ticker failed", "id", id.Hex(), "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to delete ticker item")
	}
}

func (h *Handler) ListEvents(c *fiber.Ctx) error {
	events, err := h.content.ListEvents(c.UserContext())
	if err != nil {
		h.log.Errorw("list events failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to load events")
	}
	return c.JSON(events)
}

func (h *Handler) AddEvent(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Date        string `json:"date"`
		Location    string `json:"location"`
		Description string `json:"description"`
	}
	_ = c.BodyParser(&req)
	event, err := h.content.AddEvent(c.UserContext(), req.Title, req.Date, req.Location, req.Description)
	if err != nil {
		h.log.Errorw("add event failed", "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to add event")
	}
	return utils.JSONOK(c, fiber.Map{"event": event})
}

func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.JSONFail(c, fiber.StatusBadRequest, "Invalid id")
	}
	switch err := h.content.DeleteEvent(c.UserContext(), id); err {
	case nil:
		return utils.JSONOK(c, nil)
	case services.ErrNotFound:
		return utils.JSONFail(c, fiber.StatusNotFound, "Not found")
	default:
		h.log.Errorw("delete event failed", "id", id.Hex(), "error", err)
		return utils.JSONFail(c, fiber.StatusInternalServerError, "Failed to delete event")
	}
}

// POST /api/ai-chat. Always answers 200: a broken gateway degrades to the
// fallback text, never to an error envelope.
func (h *Handler) AIChat(c *fiber.Ctx) error {
	var req struct {
		Message string       `json:"message"`
		History []ai.Message `json:"history"`
	}
	_ = c.BodyParser(&req)

	answer, err := h.ai.Chat(c.UserContext(), req.Message, req.History)
	if err != nil {
		h.log.Warnw("ai chat unavailable", "error", err)
		answer = ai.FallbackAnswer
	} else if strings.TrimSpace(answer) == "" {
		answer = ai.EmptyAnswer
	}
	return utils.JSONOK(c, fiber.Map{"answer": answer})
}

// POST /api/generate-story. Same policy as AIChat.
func (h *Handler) GenerateStory(c *fiber.Ctx) error {
	var req struct {
		Topic   string `json:"topic"`
		Context string `json:"context"`
	}
	_ = c.BodyParser(&req)

	story, err := h.ai.GenerateStory(c.UserContext(), req.Topic, req.Context)
	if err != nil {
		h.log.Warnw("story generation unavailable", "error", err)
		story = ai.FallbackStory
	}
	return utils.JSONOK(c, fiber.Map{"story": story})
}
