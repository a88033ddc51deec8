package affliora

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// CatalogCache is an in-memory read cache of the product and article
// collections with TTL. It is never the system of record: all mutations go
// through the Store, followed by Invalidate.
type CatalogCache struct {
	mu       sync.RWMutex
	products []Product
	articles []Article
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

// NewCatalogCache creates a CatalogCache backed by the given Store.
func NewCatalogCache(s *Store, ttl time.Duration) *CatalogCache {
	return &CatalogCache{store: s, ttl: ttl}
}

func (c *CatalogCache) valid() bool {
	return c.products != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.products = nil
	c.articles = nil
	c.mu.Unlock()
}

func (c *CatalogCache) load() error {
	if c.valid() {
		return nil
	}
	products, err := c.store.ListProducts()
	if err != nil {
		return err
	}
	articles, err := c.store.ListArticles()
	if err != nil {
		return err
	}
	if products == nil {
		products = []Product{}
	}
	c.products = products
	c.articles = articles
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached collections after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *CatalogCache) ensureLoaded() ([]Product, []Article, error) {
	c.mu.RLock()
	if c.valid() {
		products, articles := c.products, c.articles
		c.mu.RUnlock()
		return products, articles, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.products, c.articles, nil
}

// ListProducts returns all products in store delivery order (creation time
// descending).
func (c *CatalogCache) ListProducts() ([]Product, error) {
	products, _, err := c.ensureLoaded()
	return products, err
}

// ListArticles returns all articles in store delivery order.
func (c *CatalogCache) ListArticles() ([]Article, error) {
	_, articles, err := c.ensureLoaded()
	return articles, err
}

// FindProduct looks a product up by slug first, then by id, so both
// canonical paths and legacy hash identifiers resolve.
func (c *CatalogCache) FindProduct(key string) (Product, error) {
	products, _, err := c.ensureLoaded()
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.Slug == key {
			return p, nil
		}
	}
	for _, p := range products {
		if p.ID == key {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// FindArticle looks an article up by slug first, then by id.
func (c *CatalogCache) FindArticle(key string) (Article, error) {
	_, articles, err := c.ensureLoaded()
	if err != nil {
		return Article{}, err
	}
	for _, a := range articles {
		if a.Slug == key {
			return a, nil
		}
	}
	for _, a := range articles {
		if a.ID == key {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}
