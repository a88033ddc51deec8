package affliora

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// ProductForm is the admin product editor payload. Checkbox inputs must
// submit value="true"; gorilla/schema parses bools strictly and rejects the
// browser default "on".
type ProductForm struct {
	ID          string `schema:"id"`
	Name        string `schema:"name" validate:"required,max=200"`
	Image       string `schema:"image" validate:"required"`
	Description string `schema:"description" validate:"required"`
	Link        string `schema:"link" validate:"required,url"`
	Category    string `schema:"category" validate:"required"`
	Visible     bool   `schema:"visible"`
	Featured    bool   `schema:"featured"`
	Slug        string `schema:"slug"`
}

// ArticleForm is the admin article editor payload.
type ArticleForm struct {
	ID        string `schema:"id"`
	Title     string `schema:"title" validate:"required,max=200"`
	Content   string `schema:"content" validate:"required"`
	Excerpt   string `schema:"excerpt" validate:"required,max=500"`
	Image     string `schema:"image"`
	Category  string `schema:"category" validate:"required"`
	Published bool   `schema:"published"`
	Slug      string `schema:"slug"`
	Author    string `schema:"author"`
}

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// decodeAndValidate binds form values onto dst and runs struct validation.
// Returns a user-facing message on failure, empty on success.
func (a *App) decodeAndValidate(values url.Values, dst any) (string, error) {
	if err := a.formDecoder.Decode(dst, values); err != nil {
		return "Invalid form data", nil
	}
	if err := a.validate.Struct(dst); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return "", err
		}
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, strings.ToLower(e.Field())+": "+validationMessage(e))
		}
		return strings.Join(msgs, "; "), nil
	}
	return "", nil
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "url":
		return "invalid URL format"
	case "max":
		return "must be at most " + e.Param() + " characters"
	default:
		return "invalid value"
	}
}

func (f ProductForm) product() Product {
	return Product{
		ID:          f.ID,
		Name:        strings.TrimSpace(f.Name),
		Image:       strings.TrimSpace(f.Image),
		Description: strings.TrimSpace(f.Description),
		Link:        strings.TrimSpace(f.Link),
		Category:    f.Category,
		Visible:     f.Visible,
		Featured:    f.Featured,
		Slug:        strings.TrimSpace(f.Slug),
	}
}

func (f ArticleForm) article() Article {
	return Article{
		ID:        f.ID,
		Title:     strings.TrimSpace(f.Title),
		Content:   f.Content,
		Excerpt:   strings.TrimSpace(f.Excerpt),
		Image:     strings.TrimSpace(f.Image),
		Category:  f.Category,
		Published: f.Published,
		Slug:      strings.TrimSpace(f.Slug),
		Author:    strings.TrimSpace(f.Author),
	}
}
