package domain

import "testing"

func TestPrimaryAuthor(t *testing.T) {
	cases := []struct {
		name   string
		author string
		want   string
	}{
		{"single author", "Frank Herbert", "Frank Herbert"},
		{"multiple authors", "Terry Pratchett, Neil Gaiman", "Terry Pratchett"},
		{"placeholder", UnknownAuthor, ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := CatalogItem{Kind: KindBook, ID: "b1", Extra: Extra{Author: tc.author}}
			if got := item.PrimaryAuthor(); got != tc.want {
				t.Errorf("PrimaryAuthor() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if (CatalogItem{Kind: KindMovie}).Valid() {
		t.Error("item without id should be invalid")
	}
	if (CatalogItem{ID: "1"}).Valid() {
		t.Error("item without kind should be invalid")
	}
	if !(CatalogItem{Kind: KindMovie, ID: "1"}).Valid() {
		t.Error("item with kind and id should be valid")
	}
}

func TestKeyDistinguishesKinds(t *testing.T) {
	movieKey := CatalogItem{Kind: KindMovie, ID: "7"}.Key()
	bookKey := CatalogItem{Kind: KindBook, ID: "7"}.Key()
	if movieKey == bookKey {
		t.Fatal("keys with equal ids but different kinds must differ")
	}
	if movieKey.String() != "movie:7" {
		t.Errorf("String() = %q", movieKey.String())
	}
}
