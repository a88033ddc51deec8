package affliora

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newsletterRequestContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleNewsletter(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v3/forms/123/subscribe") {
			t.Errorf("unexpected upstream path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"subscription":{"subscriber":{"id":42}}}`))
	}))
	defer upstream.Close()

	a := &App{
		Config: SiteConfig{
			ConvertKitAPIKey: "test-key",
			ConvertKitFormID: "123",
		},
		Store:          s,
		Echo:           echo.New(),
		httpClient:     upstream.Client(),
		convertKitBase: upstream.URL,
	}

	c, rec := newsletterRequestContext(a.Echo, `{"email":"reader@example.com"}`)
	if err := a.handleNewsletter(c); err != nil {
		t.Fatalf("handleNewsletter failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("body = %s, want success", rec.Body)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	// The subscriber is recorded locally regardless of the relay.
	n, err := s.CountSubscribers()
	if err != nil {
		t.Fatalf("CountSubscribers failed: %v", err)
	}
	if n != 1 {
		t.Errorf("subscribers = %d, want 1", n)
	}
}

// Blank tags from the form never reach the relay payload.
func TestHandleNewsletterFiltersEmptyTags(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	var payload map[string]any
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode upstream payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"subscription":{"subscriber":{"id":1}}}`))
	}))
	defer upstream.Close()

	a := &App{
		Config: SiteConfig{
			ConvertKitAPIKey: "test-key",
			ConvertKitFormID: "123",
		},
		Store:          s,
		Echo:           echo.New(),
		httpClient:     upstream.Client(),
		convertKitBase: upstream.URL,
	}

	c, rec := newsletterRequestContext(a.Echo, `{"email":"reader@example.com","tags":["deals","  ",""]}`)
	if err := a.handleNewsletter(c); err != nil {
		t.Fatalf("handleNewsletter failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	tags, ok := payload["tags"].([]any)
	if !ok {
		t.Fatalf("tags missing from relay payload: %v", payload)
	}
	if len(tags) != 1 || tags[0] != "deals" {
		t.Errorf("relay tags = %v, want [deals]", tags)
	}
}

func TestHandleNewsletterRejectsBadEmail(t *testing.T) {
	a := &App{Echo: echo.New()}

	for _, body := range []string{
		`{"email":""}`,
		`{"email":"not-an-email"}`,
		`{"email":"no space@example.com"}`,
		`{}`,
	} {
		c, rec := newsletterRequestContext(a.Echo, body)
		if err := a.handleNewsletter(c); err != nil {
			t.Fatalf("handleNewsletter failed: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestHandleNewsletterMissingCredentials(t *testing.T) {
	a := &App{Echo: echo.New()}

	c, rec := newsletterRequestContext(a.Echo, `{"email":"reader@example.com"}`)
	if err := a.handleNewsletter(c); err != nil {
		t.Fatalf("handleNewsletter failed: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 when credentials missing", rec.Code)
	}
}
