package recommend

import (
	"testing"

	"github.com/mmcdole/shelf/internal/domain"
)

func TestFilterByGenre(t *testing.T) {
	items := []domain.CatalogItem{
		{Kind: domain.KindMovie, ID: "m1", Extra: domain.Extra{GenreIDs: []int{28, 12}}},
		{Kind: domain.KindMovie, ID: "m2", Extra: domain.Extra{GenreIDs: []int{18}}},
		{Kind: domain.KindBook, ID: "b1"},
	}

	got := FilterByGenre(items, 28)
	if len(got) != 2 {
		t.Fatalf("expected matching movie plus book passthrough, got %v", recIDs(got))
	}
	if got[0].ID != "m1" || got[1].ID != "b1" {
		t.Errorf("unexpected order: %v", recIDs(got))
	}
}

func TestFilterByGenreZeroMeansNoFilter(t *testing.T) {
	items := []domain.CatalogItem{{Kind: domain.KindMovie, ID: "m1"}}

	got := FilterByGenre(items, 0)
	if len(got) != 1 {
		t.Fatalf("expected passthrough, got %v", recIDs(got))
	}
}
