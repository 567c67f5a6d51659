package domain

import "fmt"

// Kind distinguishes the three catalogs
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
	KindBook  Kind = "book"
)

// ItemKey is the composite identity of a catalog item. Provider ids are only
// unique within a catalog (a TMDB movie id can collide numerically with a
// book's fallback id), so every dedup or membership check keys on the pair.
type ItemKey struct {
	Kind Kind
	ID   string
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.ID)
}

// CatalogItem is the unified entity every provider normalizes into.
// For movies and shows the ID is the provider's numeric id; for books it is
// the ISBN-13 when one exists, else the provider's opaque volume id.
type CatalogItem struct {
	Kind        Kind    `json:"kind"`
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Popularity  float64 `json:"popularity,omitempty"` // absent/zero for books
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Image       string  `json:"image,omitempty"`
	Extra       Extra   `json:"extra"`
}

// Extra carries kind-specific metadata the aggregation core passes through
// untouched.
type Extra struct {
	Author       string   `json:"author,omitempty"` // books: comma-joined, "Unknown Author" when absent
	Description  string   `json:"description,omitempty"`
	Genres       []string `json:"genres"` // never nil for books; rendering assumes an iterable
	GenreIDs     []int    `json:"genreIds,omitempty"`
	Rating       float64  `json:"rating,omitempty"`
	RatingsCount int      `json:"ratingsCount,omitempty"`
	PurchaseLink string   `json:"purchaseLink,omitempty"`
}

// Key returns the composite identity of the item.
func (c CatalogItem) Key() ItemKey {
	return ItemKey{Kind: c.Kind, ID: c.ID}
}

// Valid reports whether the item carries the mandatory identity fields.
// Adapters drop invalid items rather than propagate them.
func (c CatalogItem) Valid() bool {
	return c.Kind != "" && c.ID != ""
}

// PrimaryAuthor returns the first author of a book item (the portion before
// the first comma), or "" when no usable author exists.
func (c CatalogItem) PrimaryAuthor() string {
	author := c.Extra.Author
	if author == "" || author == UnknownAuthor {
		return ""
	}
	for i := 0; i < len(author); i++ {
		if author[i] == ',' {
			return author[:i]
		}
	}
	return author
}

// UnknownAuthor is the placeholder used when a book provider supplies no
// author list.
const UnknownAuthor = "Unknown Author"

// Genre is a provider genre taxonomy entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
