// Command affliora runs the storefront server. All site branding and
// credentials come from environment variables.
package main

import (
	"log"
	"strings"

	"github.com/affliora/affliora"
	"github.com/affliora/affliora/views"
)

func main() {
	cfg := affliora.SiteConfig{
		Name:        affliora.EnvOr("SITE_NAME", "Affliora"),
		URL:         strings.TrimSuffix(affliora.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: affliora.EnvOr("SITE_DESCRIPTION", ""),
		Author:      affliora.EnvOr("SITE_AUTHOR", ""),

		Addr:         affliora.EnvOr("ADDR", ":3000"),
		DatabasePath: affliora.EnvOr("DATABASE_PATH", "data/affliora.db"),

		AnalyticsEnabled:      !strings.EqualFold(affliora.EnvOr("ANALYTICS_ENABLED", "true"), "false"),
		AnalyticsDatabasePath: affliora.EnvOr("ANALYTICS_DATABASE_PATH", "data/analytics.db"),

		AdminEmail:    affliora.MustEnv("ADMIN_EMAIL"),
		AdminPassword: affliora.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: affliora.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(affliora.EnvOr("COOKIE_SECURE", ""), "true"),

		ConvertKitAPIKey: affliora.EnvOr("CONVERTKIT_API_KEY", ""),
		ConvertKitFormID: affliora.EnvOr("CONVERTKIT_FORM_ID", ""),

		CloudinaryURL:    affliora.EnvOr("CLOUDINARY_URL", ""),
		CloudinaryFolder: affliora.EnvOr("CLOUDINARY_FOLDER", "affliora"),
	}

	app := affliora.New(cfg, affliora.ViewFuncs{
		Home:           views.Home,
		ProductDetail:  views.ProductDetail,
		ArticleDetail:  views.ArticleDetail,
		ArticlesIndex:  views.ArticlesIndex,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		AdminImages:    views.AdminImages,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	})
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
