// Package client holds thin HTTP clients for the external AI generation
// services.  Each client exposes only the narrow request/response contract
// the handlers need; the services themselves are opaque collaborators.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// CaptionAPI calls the caption generation service.
type CaptionAPI struct {
	BaseURL string
	HTTP    *http.Client
}

func NewCaptionAPI(baseURL string) *CaptionAPI {
	return &CaptionAPI{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type captionRequest struct {
	Vibe     string `json:"vibe"`
	Language string `json:"language"`
	Image    string `json:"imageData"` // base64 data URL of the image
}

type captionResponse struct {
	Captions []string `json:"captions"`
	Error    string   `json:"error"`
}

// MusicSuggestion is one track recommendation from the caption service.
type MusicSuggestion struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
}

type musicRequest struct {
	Vibe     string `json:"vibe"`
	Language string `json:"language"`
}

type musicResponse struct {
	Suggestions []MusicSuggestion `json:"musicSuggestions"`
	Error       string            `json:"error"`
}

// GenerateCaptions posts an image and a vibe to the caption service and
// returns the generated caption texts.
func (c *CaptionAPI) GenerateCaptions(ctx context.Context, vibe, language, image string) ([]string, error) {
	body, err := json.Marshal(captionRequest{Vibe: vibe, Language: language, Image: image})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/generate-captions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out captionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("caption service: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return nil, fmt.Errorf("caption service: %s", out.Error)
		}
		return nil, fmt.Errorf("caption service: %s", resp.Status)
	}
	if len(out.Captions) == 0 {
		return nil, errors.New("caption service returned no captions")
	}
	return out.Captions, nil
}

// SuggestMusic asks the caption service for tracks matching a vibe.
func (c *CaptionAPI) SuggestMusic(ctx context.Context, vibe, language string) ([]MusicSuggestion, error) {
	body, err := json.Marshal(musicRequest{Vibe: vibe, Language: language})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/music-suggestions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out musicResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("music suggestions: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return nil, fmt.Errorf("music suggestions: %s", out.Error)
		}
		return nil, fmt.Errorf("music suggestions: %s", resp.Status)
	}
	if len(out.Suggestions) == 0 {
		return nil, errors.New("music suggestions: empty result")
	}
	return out.Suggestions, nil
}

// VoiceAPI calls the voice synthesis service.
type VoiceAPI struct {
	BaseURL string
	HTTP    *http.Client
}

func NewVoiceAPI(baseURL string) *VoiceAPI {
	return &VoiceAPI{
		BaseURL: strings.TrimRight(baseURL, "/"),
		// Synthesis is slow; the model renders audio in roughly real time.
		HTTP: &http.Client{Timeout: 120 * time.Second},
	}
}

// Synthesize posts text plus a reference voice sample to the voice service
// and returns the rendered audio bytes along with their content type.  The
// service clones the speaker from the sample, so the request is multipart:
// form fields "text" and "language" and a file part named "voice".
func (v *VoiceAPI) Synthesize(ctx context.Context, text, language, voiceName string, voice io.Reader) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("text", text); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("language", language); err != nil {
		return nil, "", err
	}
	part, err := mw.CreateFormFile("voice", voiceName)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, voice); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.BaseURL+"/generate", &buf)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := v.HTTP.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("voice service: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "audio/wav"
	}
	return data, ct, nil
}
