package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aiverse/aiverse-api/internal/utils"
)

func sessionRequest(cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionAuth_ValidToken(t *testing.T) {
	tok, err := utils.NewSessionToken("secret", "acc-1", "a@x.com", "Ana", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken error: %v", err)
	}

	c, rec := sessionRequest(tok.Token)
	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	if err := SessionAuth("secret")(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !called {
		t.Fatal("expected handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := c.Get("user_id"); got != "acc-1" {
		t.Fatalf("user_id = %v, want acc-1", got)
	}
	if got := c.Get("email"); got != "a@x.com" {
		t.Fatalf("email = %v, want a@x.com", got)
	}
	if got := c.Get("name"); got != "Ana" {
		t.Fatalf("name = %v, want Ana", got)
	}
}

// Missing cookie, garbage token, expired token and wrong-key token must all
// produce the same response body and status.
func TestSessionAuth_UniformRejection(t *testing.T) {
	expired, _ := utils.NewSessionToken("secret", "acc-1", "a@x.com", "Ana", -time.Minute)
	foreign, _ := utils.NewSessionToken("other-secret", "acc-1", "a@x.com", "Ana", time.Hour)

	next := func(c echo.Context) error {
		t.Fatal("handler must not run for a rejected session")
		return nil
	}
	mw := SessionAuth("secret")(next)

	var bodies []string
	for _, cookie := range []string{"", "garbage", expired.Token, foreign.Token} {
		c, rec := sessionRequest(cookie)
		if err := mw(c); err != nil {
			t.Fatalf("cookie %q: middleware error: %v", cookie, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("cookie %q: expected 401, got %d", cookie, rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}
	for _, b := range bodies[1:] {
		if b != bodies[0] {
			t.Fatalf("rejection bodies differ: %q vs %q", bodies[0], b)
		}
	}
}
