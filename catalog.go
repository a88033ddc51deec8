package affliora

import (
	"sort"
	"strings"
)

// Page sizes for the public catalog and the articles grid.
const (
	ProductPageSize = 20
	ArticlePageSize = 9
)

// FilterProducts returns the products passing all three predicates, in the
// input order: visible (the visibility flag defaults to true and only an
// explicit false hides a record), category (the "All" sentinel or the empty
// string matches everything, otherwise case-sensitive equality), and a
// case-insensitive substring search over name and description. It never
// re-sorts: store delivery order is preserved.
func FilterProducts(products []Product, category, search string) []Product {
	q := strings.ToLower(strings.TrimSpace(search))
	var out []Product
	for _, p := range products {
		if !p.Visible {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterArticles is the article counterpart of FilterProducts: published
// flag, category, and search over title and excerpt.
func FilterArticles(articles []Article, category, search string) []Article {
	q := strings.ToLower(strings.TrimSpace(search))
	var out []Article
	for _, a := range articles {
		if !a.Published {
			continue
		}
		if category != "" && category != CategoryAll && a.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Excerpt), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Paginate windows items to the half-open range
// [(page-1)*size, page*size). A page beyond the end yields an empty slice,
// never an error; pages below 1 are treated as the first page.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns the page count for total items at the given page size,
// at least 1 so pagination controls always have a denominator.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// FeaturedProduct returns the first visible product flagged as featured, or
// nil. The featured flag is not enforced unique; first in delivery order
// wins.
func FeaturedProduct(products []Product) *Product {
	for i := range products {
		if products[i].Featured && products[i].Visible {
			return &products[i]
		}
	}
	return nil
}

// TopProducts returns the n most-clicked products. Counters live on the
// product records themselves, not on the analytics logs.
func TopProducts(products []Product, n int) []Product {
	top := make([]Product, len(products))
	copy(top, products)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Clicks > top[j].Clicks
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// TotalClicks sums the click counters across the collection.
func TotalClicks(products []Product) int {
	sum := 0
	for _, p := range products {
		sum += p.Clicks
	}
	return sum
}
