package affliora

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const defaultConvertKitBase = "https://api.convertkit.com"

type newsletterRequest struct {
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	Tags      []string `json:"tags"`
}

// handleNewsletter validates the address, records the subscriber locally and
// relays it to ConvertKit. The API key never reaches the browser.
func (a *App) handleNewsletter(c echo.Context) error {
	setCORSHeaders(c)

	var req newsletterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid email is required"})
	}
	email := strings.TrimSpace(req.Email)
	if !emailPattern.MatchString(email) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid email is required"})
	}

	if a.Config.ConvertKitAPIKey == "" || a.Config.ConvertKitFormID == "" {
		c.Logger().Error("affliora: newsletter: ConvertKit credentials are not configured")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Newsletter service not configured"})
	}

	if err := a.Store.AddSubscriber(email, req.FirstName, "website"); err != nil {
		c.Logger().Errorf("affliora: newsletter: save subscriber: %v", err)
	}

	fields := map[string]any{
		"api_key":    a.Config.ConvertKitAPIKey,
		"email":      email,
		"first_name": req.FirstName,
	}
	if tags := FilterEmpty(req.Tags); len(tags) > 0 {
		fields["tags"] = tags
	}
	payload, _ := json.Marshal(fields)
	url := fmt.Sprintf("%s/v3/forms/%s/subscribe", a.convertKitBase, a.Config.ConvertKitFormID)
	resp, err := a.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		c.Logger().Errorf("affliora: newsletter: relay: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Subscription failed"})
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Logger().Errorf("affliora: newsletter: upstream %d: %s", resp.StatusCode, body)
		return c.JSON(resp.StatusCode, map[string]any{
			"error":   "Subscription failed",
			"details": json.RawMessage(normalizeJSON(body)),
		})
	}

	var upstream struct {
		Subscription struct {
			Subscriber json.RawMessage `json:"subscriber"`
		} `json:"subscription"`
	}
	_ = json.Unmarshal(body, &upstream)

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"subscriber": json.RawMessage(normalizeJSON(upstream.Subscription.Subscriber)),
	})
}

// handleNewsletterPreflight answers CORS preflight for the public endpoint.
func (a *App) handleNewsletterPreflight(c echo.Context) error {
	setCORSHeaders(c)
	return c.NoContent(http.StatusNoContent)
}

func setCORSHeaders(c echo.Context) {
	h := c.Response().Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// normalizeJSON guards against non-JSON upstream bodies ending up inside a
// JSON response.
func normalizeJSON(b []byte) []byte {
	if json.Valid(b) && len(b) > 0 {
		return b
	}
	return []byte("null")
}
