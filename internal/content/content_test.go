package content

import "testing"

func TestLoadKnowledgeBase(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	entries := store.List("")
	if len(entries) == 0 {
		t.Fatal("knowledge base is empty")
	}

	for _, entry := range entries {
		if entry.Slug == "" || entry.Title == "" || entry.Body == "" {
			t.Errorf("entry %+v is missing required fields", entry)
		}
	}
}

func TestGetBySlug(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	first := store.List("")[0]
	entry, ok := store.Get(first.Slug)
	if !ok {
		t.Fatalf("Get(%q) reported missing", first.Slug)
	}
	if entry.Title != first.Title {
		t.Errorf("Get(%q).Title = %q; want %q", first.Slug, entry.Title, first.Title)
	}

	if _, ok := store.Get("no-such-article"); ok {
		t.Error("Get on an unknown slug should report missing")
	}
}

func TestListFilterByCategory(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	all := store.List("")
	category := all[0].Category

	filtered := store.List(category)
	if len(filtered) == 0 {
		t.Fatalf("List(%q) returned nothing", category)
	}
	for _, entry := range filtered {
		if entry.Category != category {
			t.Errorf("entry %q has category %q; want %q", entry.Slug, entry.Category, category)
		}
	}

	if got := store.List("no-such-category"); len(got) != 0 {
		t.Errorf("List on an unknown category returned %d entries; want 0", len(got))
	}
}
