// Command affliora-sitemap regenerates the sitemap offline from a running
// instance's public API and writes it into the static directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/affliora/affliora"
)

func main() {
	server := flag.String("server", "http://localhost:3000", "base URL of the running instance")
	base := flag.String("base", "", "canonical site URL for the generated entries (defaults to -server)")
	out := flag.String("out", "public/sitemap.xml", "output file path")
	flag.Parse()

	siteURL := *base
	if siteURL == "" {
		siteURL = *server
	}
	siteURL = strings.TrimSuffix(siteURL, "/")

	client := &http.Client{Timeout: 15 * time.Second}

	var products []affliora.Product
	if err := fetchJSON(client, *server+"/api/products", &products); err != nil {
		fatal("fetch products: %v", err)
	}
	var articles []affliora.Article
	if err := fetchJSON(client, *server+"/api/articles", &articles); err != nil {
		fatal("fetch articles: %v", err)
	}

	set := affliora.BuildSitemap(siteURL, time.Now(), products, articles)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fatal("create output dir: %v", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		fatal("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := affliora.WriteSitemap(f, set); err != nil {
		fatal("write sitemap: %v", err)
	}

	fmt.Printf("wrote %s (%d products, %d articles)\n", *out, len(products), len(articles))
}

func fetchJSON(client *http.Client, url string, dst any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "affliora-sitemap: "+format+"\n", args...)
	os.Exit(1)
}
