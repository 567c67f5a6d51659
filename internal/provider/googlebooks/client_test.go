package googlebooks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/log"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("", log.NullLogger())
	client.SetBaseURL(server.URL)
	return client
}

func TestSearchBooksGeneralQueryForm(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("maxResults") != "40" {
			t.Errorf("maxResults = %q", r.URL.Query().Get("maxResults"))
		}
		w.Write([]byte(`{"totalItems": 0, "items": []}`))
	})

	if _, err := client.SearchBooks(context.Background(), "dune", domain.BookSearchGeneral); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "dune OR inauthor:dune" {
		t.Errorf("general query = %q", gotQuery)
	}
}

func TestSearchBooksAuthorQueryForm(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"totalItems": 0}`))
	})

	if _, err := client.SearchBooks(context.Background(), "le guin", domain.BookSearchAuthor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != `inauthor:"le guin"` {
		t.Errorf("author query = %q", gotQuery)
	}
}

func TestSearchBooksMapsVolumes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"totalItems": 2,
			"items": [
				{
					"id": "vol1",
					"volumeInfo": {
						"title": "Dune",
						"authors": ["Frank Herbert"],
						"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9780441013593"}]
					}
				},
				{"volumeInfo": {"title": "no identity"}}
			]
		}`))
	})

	items, err := client.SearchBooks(context.Background(), "dune", domain.BookSearchGeneral)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "9780441013593" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestBookByISBN(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "isbn:9780441013593" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		w.Write([]byte(`{
			"totalItems": 1,
			"items": [{"id": "vol1", "volumeInfo": {"title": "Dune"}}]
		}`))
	})

	item, ok, err := client.BookByISBN(context.Background(), "9780441013593")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || item.Title != "Dune" {
		t.Fatalf("ok=%v item=%+v", ok, item)
	}
}

func TestBookByISBNNoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	})

	_, ok, err := client.BookByISBN(context.Background(), "0000000000000")
	if err != nil {
		t.Fatalf("a miss is not an error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for no match")
	}
}

func TestForbiddenMapsToAuthFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.SearchBooks(context.Background(), "dune", domain.BookSearchGeneral)
	if !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}
