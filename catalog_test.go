package affliora

import (
	"fmt"
	"testing"
)

func sampleProducts() []Product {
	return []Product{
		{ID: "1", Name: "Go Course", Description: "Learn Go fast", Category: "Courses", Visible: true},
		{ID: "2", Name: "Hidden Gem", Description: "Not listed", Category: "Tools", Visible: false},
		{ID: "3", Name: "Notion Template", Description: "Plan your week", Category: "Templates", Visible: true},
		{ID: "4", Name: "SEO Toolkit", Description: "go further with search", Category: "Tools", Visible: true, Featured: true},
	}
}

func TestFilterProductsVisibility(t *testing.T) {
	got := FilterProducts(sampleProducts(), "", "")
	if len(got) != 3 {
		t.Fatalf("got %d products, want 3", len(got))
	}
	for _, p := range got {
		if !p.Visible {
			t.Errorf("hidden product %q leaked through", p.Name)
		}
	}
}

func TestFilterProductsCategory(t *testing.T) {
	products := sampleProducts()

	got := FilterProducts(products, "Tools", "")
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("Tools filter = %+v, want only product 4", got)
	}

	// The "All" sentinel matches everything.
	if got := FilterProducts(products, "All", ""); len(got) != 3 {
		t.Errorf("All filter returned %d, want 3", len(got))
	}

	// Category match is case-sensitive.
	if got := FilterProducts(products, "tools", ""); len(got) != 0 {
		t.Errorf("lowercase category matched %d products, want 0", len(got))
	}
}

func TestFilterProductsSearch(t *testing.T) {
	products := sampleProducts()

	// Case-insensitive, matches name or description.
	got := FilterProducts(products, "", "GO")
	if len(got) != 2 {
		t.Fatalf("search GO returned %d, want 2", len(got))
	}

	if got := FilterProducts(products, "", "zzz"); len(got) != 0 {
		t.Errorf("search zzz returned %d, want 0", len(got))
	}

	// Filtering preserves input order.
	got = FilterProducts(products, "", "")
	if got[0].ID != "1" || got[1].ID != "3" || got[2].ID != "4" {
		t.Errorf("order not preserved: %v", got)
	}
}

func TestFilterProductsIdempotent(t *testing.T) {
	once := FilterProducts(sampleProducts(), "Tools", "seo")
	twice := FilterProducts(once, "Tools", "seo")
	if len(once) != len(twice) {
		t.Errorf("second filter changed result: %d vs %d", len(once), len(twice))
	}
}

func TestFilterArticles(t *testing.T) {
	articles := []Article{
		{ID: "1", Title: "Remote Work Tips", Excerpt: "Work from anywhere", Category: "Tips & Guides", Published: true},
		{ID: "2", Title: "Draft Post", Excerpt: "Unfinished", Category: "News", Published: false},
		{ID: "3", Title: "Gear Review", Excerpt: "The best desk", Category: "Reviews", Published: true},
	}

	got := FilterArticles(articles, "", "")
	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2 published", len(got))
	}

	got = FilterArticles(articles, "Reviews", "desk")
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("Reviews+desk = %+v, want only article 3", got)
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		page, size int
		wantLen    int
		wantFirst  int
	}{
		{1, 20, 20, 0},
		{2, 20, 5, 20},
		{3, 20, 0, 0},
		{0, 20, 20, 0}, // below 1 clamps to first page
		{-5, 20, 20, 0},
		{1, 9, 9, 0},
		{3, 9, 7, 18},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d size=%d", tt.page, tt.size), func(t *testing.T) {
			got := Paginate(items, tt.page, tt.size)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0] != tt.wantFirst {
				t.Errorf("first = %d, want %d", got[0], tt.wantFirst)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{25, 20, 2},
		{20, 20, 1},
		{21, 20, 2},
		{0, 20, 1},
		{5, 9, 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestFeaturedProduct(t *testing.T) {
	if got := FeaturedProduct(sampleProducts()); got == nil || got.ID != "4" {
		t.Errorf("FeaturedProduct = %+v, want product 4", got)
	}

	// A hidden featured product never surfaces.
	hidden := []Product{{ID: "1", Featured: true, Visible: false}}
	if got := FeaturedProduct(hidden); got != nil {
		t.Errorf("FeaturedProduct returned hidden product %+v", got)
	}

	if got := FeaturedProduct(nil); got != nil {
		t.Errorf("FeaturedProduct(nil) = %+v, want nil", got)
	}
}

func TestTopProducts(t *testing.T) {
	products := []Product{
		{ID: "1", Clicks: 3},
		{ID: "2", Clicks: 10},
		{ID: "3", Clicks: 7},
	}
	got := TopProducts(products, 2)
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "3" {
		t.Errorf("TopProducts = %+v, want [2 3]", got)
	}

	// Input order is untouched.
	if products[0].ID != "1" {
		t.Error("TopProducts mutated its input")
	}

	if total := TotalClicks(products); total != 20 {
		t.Errorf("TotalClicks = %d, want 20", total)
	}
}
