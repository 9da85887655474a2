package handler

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aiverse/aiverse-api/internal/client"
	"github.com/aiverse/aiverse-api/internal/queue"
)

// CaptionService is the outbound contract to the caption generation backend,
// which also serves the music suggestions.
type CaptionService interface {
	GenerateCaptions(ctx context.Context, vibe, language, image string) ([]string, error)
	SuggestMusic(ctx context.Context, vibe, language string) ([]client.MusicSuggestion, error)
}

// VoiceService is the outbound contract to the voice synthesis backend.
type VoiceService interface {
	Synthesize(ctx context.Context, text, language, voiceName string, voice io.Reader) ([]byte, string, error)
}

// GenerationEvents publishes completion events for usage accounting.
type GenerationEvents interface {
	PublishGenerationCompleted(ctx context.Context, ev queue.GenerationCompletedEvent) error
}

// GenerationHandler fronts the AI tool endpoints.  It validates input,
// forwards to the external backend and records a completion event; it never
// touches the usage counter itself.
type GenerationHandler struct {
	Captions CaptionService
	Voices   VoiceService
	Events   GenerationEvents
}

func NewGenerationHandler(captions CaptionService, voices VoiceService, events GenerationEvents) *GenerationHandler {
	return &GenerationHandler{Captions: captions, Voices: voices, Events: events}
}

type captionReq struct {
	Vibe     string `json:"vibe" validate:"required"`
	Language string `json:"language"`
	Image    string `json:"imageData" validate:"required"` // base64 data URL
}

type musicReq struct {
	Vibe     string `json:"vibe" validate:"required"`
	Language string `json:"language"`
}

// Caption generates Instagram captions for an uploaded image.
func (h *GenerationHandler) Caption(c echo.Context) error {
	var req captionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}

	// No short server-side timeout here: generation legitimately takes tens
	// of seconds and the backend client enforces its own deadline.
	captions, err := h.Captions.GenerateCaptions(c.Request().Context(), req.Vibe, req.Language, req.Image)
	if err != nil {
		log.Printf("caption generation failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "caption service unavailable"})
	}

	h.recordGeneration(c, queue.ToolCaption)
	return c.JSON(http.StatusOK, echo.Map{"captions": captions})
}

// Music suggests tracks matching a vibe.  Suggestions accompany a caption
// generation on the client, so they do not count as a generation of their
// own.
func (h *GenerationHandler) Music(c echo.Context) error {
	var req musicReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}

	tracks, err := h.Captions.SuggestMusic(c.Request().Context(), req.Vibe, req.Language)
	if err != nil {
		log.Printf("music suggestions failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "music service unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"musicSuggestions": tracks})
}

// Voice clones the speaker from an uploaded sample and synthesizes speech
// from text.  The request is multipart: "text" and "language" form fields
// plus a "voice" audio file.
func (h *GenerationHandler) Voice(c echo.Context) error {
	text := c.FormValue("text")
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}
	language := c.FormValue("language")
	if language == "" {
		language = "en"
	}

	fh, err := c.FormFile("voice")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing voice sample"})
	}
	sample, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing voice sample"})
	}
	defer sample.Close()

	audio, contentType, err := h.Voices.Synthesize(c.Request().Context(), text, language, fh.Filename, sample)
	if err != nil {
		log.Printf("voice synthesis failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "voice service unavailable"})
	}

	h.recordGeneration(c, queue.ToolVoice)
	return c.Blob(http.StatusOK, contentType, audio)
}

// recordGeneration publishes a completion event.  Delivery is best effort:
// a lost event costs one usage tick, not the response.
func (h *GenerationHandler) recordGeneration(c echo.Context, tool string) {
	_ = h.Events.PublishGenerationCompleted(c.Request().Context(), queue.GenerationCompletedEvent{
		AccountID:   contextString(c, "user_id"),
		Tool:        tool,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
