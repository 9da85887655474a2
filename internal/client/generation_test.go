package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// The server side decodes into a plain map so the assertions pin the wire
// keys the backend actually reads, not the client's own struct tags.
func TestCaptionAPI_GenerateCaptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate-captions" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["vibe"] != "Funny" || req["imageData"] != "data:image/jpeg;base64,aW1n" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Missing vibe or image data"})
			return
		}
		json.NewEncoder(w).Encode(captionResponse{Captions: []string{"one", "two"}})
	}))
	defer srv.Close()

	api := NewCaptionAPI(srv.URL)
	captions, err := api.GenerateCaptions(context.Background(), "Funny", "English", "data:image/jpeg;base64,aW1n")
	if err != nil {
		t.Fatalf("GenerateCaptions error: %v", err)
	}
	if len(captions) != 2 || captions[0] != "one" {
		t.Fatalf("unexpected captions %v", captions)
	}
}

func TestCaptionAPI_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(captionResponse{Error: "model overloaded"})
	}))
	defer srv.Close()

	api := NewCaptionAPI(srv.URL)
	_, err := api.GenerateCaptions(context.Background(), "Funny", "English", "data:image/jpeg;base64,aW1n")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("expected service message in error, got %v", err)
	}
}

func TestCaptionAPI_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(captionResponse{})
	}))
	defer srv.Close()

	api := NewCaptionAPI(srv.URL)
	if _, err := api.GenerateCaptions(context.Background(), "Funny", "English", "data:image/jpeg;base64,aW1n"); err == nil {
		t.Fatal("expected an error for an empty caption list")
	}
}

func TestCaptionAPI_SuggestMusic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/music-suggestions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["vibe"] != "Romantic" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Missing vibe"})
			return
		}
		json.NewEncoder(w).Encode(musicResponse{Suggestions: []MusicSuggestion{
			{Title: "Song 1", Artist: "Artist 1", Genre: "Pop"},
		}})
	}))
	defer srv.Close()

	api := NewCaptionAPI(srv.URL)
	tracks, err := api.SuggestMusic(context.Background(), "Romantic", "English")
	if err != nil {
		t.Fatalf("SuggestMusic error: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Title != "Song 1" || tracks[0].Genre != "Pop" {
		t.Fatalf("unexpected suggestions %+v", tracks)
	}
}

func TestCaptionAPI_SuggestMusic_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(musicResponse{})
	}))
	defer srv.Close()

	api := NewCaptionAPI(srv.URL)
	if _, err := api.SuggestMusic(context.Background(), "Romantic", "English"); err == nil {
		t.Fatal("expected an error for an empty suggestion list")
	}
}

// The voice backend 400s unless the request is multipart with a "voice"
// file part alongside the text and language fields.
func TestVoiceAPI_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "expected multipart form"})
			return
		}
		if r.FormValue("text") != "hello" || r.FormValue("language") != "en" {
			t.Fatalf("unexpected form values %v", r.MultipartForm.Value)
		}
		file, header, err := r.FormFile("voice")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Missing voice file"})
			return
		}
		defer file.Close()
		if header.Filename != "sample.wav" {
			t.Fatalf("unexpected sample filename %q", header.Filename)
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Write([]byte("RIFFcloned"))
	}))
	defer srv.Close()

	api := NewVoiceAPI(srv.URL)
	audio, ct, err := api.Synthesize(context.Background(), "hello", "en",
		"sample.wav", strings.NewReader("RIFFsample"))
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}
	if string(audio) != "RIFFcloned" {
		t.Fatalf("unexpected audio %q", audio)
	}
	if ct != "audio/wav" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestVoiceAPI_DefaultsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.Write([]byte("RIFFaudio"))
	}))
	defer srv.Close()

	api := NewVoiceAPI(srv.URL)
	_, ct, err := api.Synthesize(context.Background(), "hello", "en",
		"sample.wav", strings.NewReader("RIFFsample"))
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}
	if ct != "audio/wav" {
		t.Fatalf("expected audio/wav fallback, got %q", ct)
	}
}

func TestVoiceAPI_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "synthesis failed", http.StatusBadGateway)
	}))
	defer srv.Close()

	api := NewVoiceAPI(srv.URL)
	_, _, err := api.Synthesize(context.Background(), "hello", "en",
		"sample.wav", strings.NewReader("RIFFsample"))
	if err == nil {
		t.Fatal("expected an error")
	}
}
