package affliora

import (
	"net/url"
	"path"
	"strings"
	"unicode"
)

// MaxSlugLen is the cap applied to slugs written to the store.
const MaxSlugLen = 60

// Slugify converts a name or title to a URL-safe slug: lowercased, trimmed,
// characters outside [a-z0-9 -] stripped, whitespace runs collapsed to a
// single hyphen. Empty input yields an empty string. Slugs are not unique;
// callers must tolerate collisions.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	pending := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			if pending {
				b.WriteByte('-')
				pending = false
			}
			b.WriteRune(r)
		default:
			if unicode.IsSpace(r) && b.Len() > 0 {
				pending = true
			}
		}
	}
	return b.String()
}

// SlugifyMax slugifies s and truncates the result to MaxSlugLen, cutting at a
// hyphen boundary where possible. Used for slugs persisted to the store.
func SlugifyMax(s string) string {
	slug := Slugify(s)
	if len(slug) <= MaxSlugLen {
		return slug
	}
	slug = slug[:MaxSlugLen]
	if i := strings.LastIndexByte(slug, '-'); i > 0 {
		slug = slug[:i]
	}
	return strings.TrimRight(slug, "-")
}

// BuildURL joins a base URL with path segments. Canonical URLs carry no
// trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
