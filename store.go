package affliora

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store wraps a SQLite database and provides CRUD operations for the catalog
// collections: products, articles, newsletter subscribers, activity logs and
// uploaded image metadata. It is the single system of record; in-memory
// caches never write back.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL,
    link TEXT NOT NULL,
    category TEXT NOT NULL,
    visible INTEGER NOT NULL DEFAULT 1,
    featured INTEGER NOT NULL DEFAULT 0,
    slug TEXT NOT NULL DEFAULT '',
    clicks INTEGER NOT NULL DEFAULT 0,
    last_clicked TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1,
    slug TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS newsletter (
    email TEXT PRIMARY KEY,
    first_name TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT 'website',
    subscribed_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activity_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action TEXT NOT NULL,
    details TEXT NOT NULL,
    user TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    url TEXT NOT NULL DEFAULT '',
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);
CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug);
CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at);
CREATE INDEX IF NOT EXISTS idx_articles_slug ON articles(slug);
`)
	return err
}

const productColumns = `id, name, image, description, link, category, visible, featured, slug, clicks, last_clicked, created_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	var visible, featured int
	err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Description, &p.Link, &p.Category,
		&visible, &featured, &p.Slug, &p.Clicks, &p.LastClicked, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	p.Visible = visible == 1
	p.Featured = featured == 1
	return p, nil
}

// ListProducts returns every product, visible or not, ordered by creation
// time descending. Visibility filtering belongs to the catalog engine.
func (s *Store) ListProducts() ([]Product, error) {
	rows, err := s.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct returns a single product by id.
func (s *Store) GetProduct(id string) (Product, error) {
	return scanProduct(s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = ?`, id))
}

// GetProductBySlug returns the most recent product carrying the slug. Slugs
// are not unique in the store, so newest wins.
func (s *Store) GetProductBySlug(slug string) (Product, error) {
	return scanProduct(s.db.QueryRow(
		`SELECT `+productColumns+` FROM products WHERE slug = ? ORDER BY created_at DESC LIMIT 1`, slug))
}

// SaveProduct upserts a product. A missing id means a new record: the store
// assigns a UUID and stamps the creation time. A missing slug is derived
// from the name.
func (s *Store) SaveProduct(p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = SlugifyMax(p.Name)
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Image, p.Description, p.Link, p.Category,
		boolInt(p.Visible), boolInt(p.Featured), p.Slug, p.Clicks, p.LastClicked, p.CreatedAt)
	return p, err
}

// DeleteProduct removes a product permanently. There is no soft delete.
func (s *Store) DeleteProduct(id string) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// IncrementClicks atomically bumps the click counter and stamps the last
// click time. This is the only permitted write path for the counter.
func (s *Store) IncrementClicks(id string) error {
	_, err := s.db.Exec(`UPDATE products SET clicks = clicks + 1, last_clicked = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	return err
}

const articleColumns = `id, title, content, excerpt, image, category, published, slug, author, created_at`

func scanArticle(row interface{ Scan(...any) error }) (Article, error) {
	var a Article
	var published int
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.Image, &a.Category,
		&published, &a.Slug, &a.Author, &a.CreatedAt)
	if err != nil {
		return Article{}, err
	}
	a.Published = published == 1
	return a, nil
}

// ListArticles returns every article, drafts included, ordered by creation
// time descending.
func (s *Store) ListArticles() ([]Article, error) {
	rows, err := s.db.Query(`SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// GetArticle returns a single article by id.
func (s *Store) GetArticle(id string) (Article, error) {
	return scanArticle(s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id))
}

// GetArticleBySlug returns the most recent article carrying the slug.
func (s *Store) GetArticleBySlug(slug string) (Article, error) {
	return scanArticle(s.db.QueryRow(
		`SELECT `+articleColumns+` FROM articles WHERE slug = ? ORDER BY created_at DESC LIMIT 1`, slug))
}

// SaveArticle upserts an article, assigning id, creation time and slug the
// same way SaveProduct does.
func (s *Store) SaveArticle(a Article) (Article, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt == "" {
		a.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if strings.TrimSpace(a.Slug) == "" {
		a.Slug = SlugifyMax(a.Title)
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO articles (`+articleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Content, a.Excerpt, a.Image, a.Category,
		boolInt(a.Published), a.Slug, a.Author, a.CreatedAt)
	return a, err
}

// DeleteArticle removes an article permanently.
func (s *Store) DeleteArticle(id string) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = ?`, id)
	return err
}

// AddSubscriber records a newsletter signup. Re-subscribing an existing
// address updates the row instead of failing.
func (s *Store) AddSubscriber(email, firstName, source string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO newsletter (email, first_name, source, subscribed_at) VALUES (?, ?, ?, ?)`,
		strings.ToLower(strings.TrimSpace(email)), firstName, source, time.Now().UTC().Format(time.RFC3339))
	return err
}

// CountSubscribers returns the number of newsletter subscribers.
func (s *Store) CountSubscribers() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM newsletter`).Scan(&n)
	return n, err
}

// LogActivity appends one row to the admin audit trail.
func (s *Store) LogActivity(action, details, user string) error {
	_, err := s.db.Exec(`INSERT INTO activity_logs (action, details, user, created_at) VALUES (?, ?, ?, ?)`,
		action, details, user, time.Now().UTC().Format(time.RFC3339))
	return err
}

// RecentActivity returns the latest n audit entries, newest first.
func (s *Store) RecentActivity(n int) ([]ActivityEntry, error) {
	rows, err := s.db.Query(`SELECT action, details, user, created_at FROM activity_logs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.Action, &e.Details, &e.User, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveImage stores metadata for an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, url, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.URL, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded image metadata, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, url, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.URL, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
