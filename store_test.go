package affliora

import (
	"os"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	path := "data/test_affliora.db"
	os.Remove(path)

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		s.Close()
		os.Remove(path)
	}

	return s, cleanup
}

func TestSaveAndGetProduct(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	saved, err := s.SaveProduct(Product{
		Name:        "Learn Go Course",
		Image:       "https://example.com/course.jpg",
		Description: "A complete Go course.",
		Link:        "https://example.com/buy",
		Category:    "Courses",
		Visible:     true,
	})
	if err != nil {
		t.Fatalf("SaveProduct failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveProduct should assign an id")
	}
	if saved.CreatedAt == "" {
		t.Error("SaveProduct should stamp CreatedAt")
	}
	if saved.Slug != "learn-go-course" {
		t.Errorf("Slug = %q, want %q", saved.Slug, "learn-go-course")
	}

	got, err := s.GetProduct(saved.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.Name != saved.Name {
		t.Errorf("Name = %q, want %q", got.Name, saved.Name)
	}
	if !got.Visible {
		t.Error("Visible should round-trip")
	}

	bySlug, err := s.GetProductBySlug("learn-go-course")
	if err != nil {
		t.Fatalf("GetProductBySlug failed: %v", err)
	}
	if bySlug.ID != saved.ID {
		t.Errorf("GetProductBySlug returned %q, want %q", bySlug.ID, saved.ID)
	}
}

func TestListProductsOrder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	for i, created := range []string{"2024-01-01T00:00:00Z", "2024-03-01T00:00:00Z", "2024-02-01T00:00:00Z"} {
		if _, err := s.SaveProduct(Product{
			Name:        "p" + string(rune('a'+i)),
			Description: "d",
			Link:        "https://example.com",
			Category:    "Tools",
			Visible:     true,
			CreatedAt:   created,
		}); err != nil {
			t.Fatalf("SaveProduct failed: %v", err)
		}
	}

	products, err := s.ListProducts()
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("got %d products, want 3", len(products))
	}
	for i := 1; i < len(products); i++ {
		if products[i-1].CreatedAt < products[i].CreatedAt {
			t.Errorf("products not ordered newest first: %q before %q",
				products[i-1].CreatedAt, products[i].CreatedAt)
		}
	}
}

func TestIncrementClicks(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	saved, err := s.SaveProduct(Product{
		Name: "Clicky", Description: "d", Link: "https://example.com", Category: "Tools", Visible: true,
	})
	if err != nil {
		t.Fatalf("SaveProduct failed: %v", err)
	}

	if err := s.IncrementClicks(saved.ID); err != nil {
		t.Fatalf("IncrementClicks failed: %v", err)
	}
	if err := s.IncrementClicks(saved.ID); err != nil {
		t.Fatalf("IncrementClicks failed: %v", err)
	}

	got, err := s.GetProduct(saved.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.Clicks != 2 {
		t.Errorf("Clicks = %d, want 2", got.Clicks)
	}
	if got.LastClicked == "" {
		t.Error("LastClicked should be stamped")
	}
}

func TestDeleteProduct(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	saved, err := s.SaveProduct(Product{
		Name: "Gone", Description: "d", Link: "https://example.com", Category: "Tools",
	})
	if err != nil {
		t.Fatalf("SaveProduct failed: %v", err)
	}

	if err := s.DeleteProduct(saved.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if _, err := s.GetProduct(saved.ID); err != ErrNotFound {
		t.Errorf("GetProduct after delete: err = %v, want ErrNotFound", err)
	}
}

func TestSaveAndGetArticle(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	saved, err := s.SaveArticle(Article{
		Title:     "Ten Tips for Remote Work",
		Content:   "Some **bold** advice.",
		Excerpt:   "Advice for working remotely.",
		Category:  "Tips & Guides",
		Published: true,
	})
	if err != nil {
		t.Fatalf("SaveArticle failed: %v", err)
	}
	if saved.Slug != "ten-tips-for-remote-work" {
		t.Errorf("Slug = %q, want %q", saved.Slug, "ten-tips-for-remote-work")
	}

	got, err := s.GetArticleBySlug(saved.Slug)
	if err != nil {
		t.Fatalf("GetArticleBySlug failed: %v", err)
	}
	if got.Title != saved.Title {
		t.Errorf("Title = %q, want %q", got.Title, saved.Title)
	}
	if !got.Published {
		t.Error("Published should round-trip")
	}
}

func TestSubscribers(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.AddSubscriber("Reader@Example.com", "Reader", "website"); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}
	// Same address again, different case: still one subscriber.
	if err := s.AddSubscriber("reader@example.com", "", "website"); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}

	n, err := s.CountSubscribers()
	if err != nil {
		t.Fatalf("CountSubscribers failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountSubscribers = %d, want 1", n)
	}
}

func TestActivityLog(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	for _, action := range []string{"login", "product_created", "product_deleted"} {
		if err := s.LogActivity(action, "details", "admin@example.com"); err != nil {
			t.Fatalf("LogActivity failed: %v", err)
		}
	}

	entries, err := s.RecentActivity(2)
	if err != nil {
		t.Fatalf("RecentActivity failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Action != "product_deleted" {
		t.Errorf("newest entry = %q, want %q", entries[0].Action, "product_deleted")
	}
}

func TestImageMetadata(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	img := Image{
		Filename:     "hero.jpg",
		OriginalName: "Hero Shot.png",
		URL:          "/public/uploads/hero.jpg",
		Width:        800,
		Height:       600,
		Size:         12345,
		UploadedAt:   "2024-06-01T00:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0].Filename != "hero.jpg" {
		t.Fatalf("ListImages = %+v, want one hero.jpg", images)
	}

	if err := s.DeleteImage("hero.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, err = s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("got %d images after delete, want 0", len(images))
	}
}
