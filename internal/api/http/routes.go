package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/sabia-weather/internal/chat"
	"github.com/i474232898/sabia-weather/internal/i18n"
	"github.com/i474232898/sabia-weather/internal/maps"
	"github.com/i474232898/sabia-weather/internal/observability"
	"github.com/i474232898/sabia-weather/internal/store"
	"github.com/i474232898/sabia-weather/internal/weather"
)

var validate = validator.New()

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	Service      *weather.Service
	Preferences  *store.Preferences
	Chat         *chat.Session
	Metrics      *observability.Metrics
	Logger       *slog.Logger
	MapAPIKey    string
	Default      weather.Location
	LocationName string
	Timezone     *time.Location
	LoadTimeout  time.Duration
	// MaxDate rejects dashboard dates after it. Nil disables the check.
	MaxDate *time.Time
}

type handler struct {
	Dependencies
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	if deps.Timezone == nil {
		deps.Timezone = time.UTC
	}
	if deps.LoadTimeout <= 0 {
		deps.LoadTimeout = 10 * time.Second
	}
	h := &handler{deps}

	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", h.getDashboard)
	v1.Post("/dashboard/refresh", h.refreshDashboard)

	v1.Get("/language", h.getLanguage)
	v1.Put("/language", h.putLanguage)

	v1.Get("/chat", h.getChat)
	v1.Post("/chat", h.postChat)

	v1.Get("/map/layers", h.getMapLayers)
}

// dashboardQuery holds query parameters for the dashboard endpoint.
type dashboardQuery struct {
	City string `validate:"omitempty,max=100"`
	Date string `validate:"omitempty,datetime=2006-01-02"`
	Lang string `validate:"omitempty,oneof=pt en es"`
}

func (h *handler) getDashboard(c *fiber.Ctx) error {
	q := dashboardQuery{
		City: strings.TrimSpace(c.Query("city")),
		Date: strings.TrimSpace(c.Query("date")),
		Lang: strings.ToLower(strings.TrimSpace(c.Query("lang"))),
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	lang := h.language(c.UserContext(), q.Lang)

	st, ok := h.Service.Current()
	if !ok || q.City != "" || q.Date != "" {
		req := weather.LoadRequest{City: q.City}
		if q.Date != "" {
			d, err := time.ParseInLocation(time.DateOnly, q.Date, h.Timezone)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid date; use YYYY-MM-DD")
			}
			if h.MaxDate != nil && d.After(*h.MaxDate) {
				return fiber.NewError(fiber.StatusBadRequest, "date must not be after "+h.MaxDate.Format(time.DateOnly))
			}
			req.Date = &d
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), h.LoadTimeout)
		defer cancel()

		var err error
		st, err = h.Service.Load(ctx, req)
		if err != nil {
			return loadError(err, lang)
		}
	}

	return c.JSON(renderDashboard(st, lang, h.LocationName))
}

func (h *handler) refreshDashboard(c *fiber.Ctx) error {
	lang := h.language(c.UserContext(), strings.ToLower(c.Query("lang")))

	ctx, cancel := context.WithTimeout(c.UserContext(), h.LoadTimeout)
	defer cancel()

	st, err := h.Service.Refresh(ctx)
	if err != nil {
		return loadError(err, lang)
	}
	return c.JSON(renderDashboard(st, lang, h.LocationName))
}

type languageRequest struct {
	Language string `json:"language" validate:"required,oneof=pt en es"`
}

func (h *handler) getLanguage(c *fiber.Ctx) error {
	lang := h.language(c.UserContext(), "")
	return c.JSON(fiber.Map{
		"language":  lang,
		"supported": i18n.Supported,
	})
}

// putLanguage stores the preference and re-renders the cached state in the
// new language without refetching.
func (h *handler) putLanguage(c *fiber.Ctx) error {
	var req languageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Language = strings.ToLower(strings.TrimSpace(req.Language))
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	lang, err := h.Preferences.SetLanguage(c.UserContext(), req.Language)
	if err != nil {
		if errors.Is(err, store.ErrUnsupportedLanguage) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		h.Logger.Error("failed to save language preference", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save language preference")
	}

	resp := fiber.Map{"language": lang}
	if st, ok := h.Service.Current(); ok {
		resp["dashboard"] = renderDashboard(st, lang, h.LocationName)
	}
	return c.JSON(resp)
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}

func (h *handler) getChat(c *fiber.Ctx) error {
	lang := h.language(c.UserContext(), strings.ToLower(c.Query("lang")))
	return c.JSON(fiber.Map{
		"title":    i18n.T(lang, i18n.KeyChatTitle),
		"welcome":  chat.Welcome(lang),
		"messages": h.Chat.Messages(),
	})
}

func (h *handler) postChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	lang := h.language(c.UserContext(), strings.ToLower(c.Query("lang")))

	var reading *weather.CanonicalReading
	if st, ok := h.Service.Current(); ok {
		reading = &st.Reading
	}

	reply, ok := h.Chat.Send(req.Message, lang, reading)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "message must not be blank")
	}
	h.Metrics.ChatMessages.WithLabelValues(string(reply.Topic)).Inc()

	return c.JSON(reply)
}

type mapQuery struct {
	Layer string `validate:"omitempty,oneof=precipitation_new clouds_new temp_new"`
}

func (h *handler) getMapLayers(c *fiber.Ctx) error {
	q := mapQuery{Layer: c.Query("layer")}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	active := maps.LayerPrecipitation
	if q.Layer != "" {
		active, _ = maps.ParseLayer(q.Layer)
	}

	lang := h.language(c.UserContext(), strings.ToLower(c.Query("lang")))

	center := h.Default
	if st, ok := h.Service.Current(); ok && st.Location.Lat != nil && st.Location.Lon != nil {
		center = st.Location
	}

	return c.JSON(renderMap(center, active, lang, h.MapAPIKey))
}

// language resolves the request language: an explicit query value wins,
// then the stored preference, then the default.
func (h *handler) language(ctx context.Context, explicit string) i18n.Language {
	if l, ok := i18n.Parse(explicit); ok {
		return l
	}
	l, err := h.Preferences.Language(ctx)
	if err != nil {
		h.Logger.Warn("failed to read language preference", "error", err)
	}
	return l
}

// loadError maps a failed load onto a single generic, localized message.
func loadError(err error, lang i18n.Language) error {
	msg := i18n.T(lang, i18n.KeyLoadError)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, msg)
	case errors.Is(err, weather.ErrTransport),
		errors.Is(err, weather.ErrMalformedPayload),
		errors.Is(err, weather.ErrEmptyDataset):
		return fiber.NewError(fiber.StatusBadGateway, msg)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, msg)
	}
}

// ErrorHandler renders every handler error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
