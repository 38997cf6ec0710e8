package rest

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util/apperr"
)

func TestFeedCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	id := uuid.New()

	cursor := encodeFeedCursor(createdAt, id)
	gotAt, gotID, err := decodeFeedCursor(cursor)
	if err != nil {
		t.Fatalf("decodeFeedCursor returned error: %v", err)
	}
	if !gotAt.Equal(createdAt) {
		t.Errorf("decoded time = %v; want %v", gotAt, createdAt)
	}
	if gotID != id {
		t.Errorf("decoded id = %v; want %v", gotID, id)
	}
}

func TestDecodeFeedCursorRejectsGarbage(t *testing.T) {
	testCases := []struct {
		name   string
		cursor string
	}{
		{"Not Base64", "!!!"},
		{"No Separator", "MTIzNDU"},
		{"Bad Timestamp", "bm9wZXwxMjM0"},
		{"Bad UUID", "MTcwMDAwMDAwMDAwMDAwMDAwMHxub3QtYS11dWlk"},
		{"Empty", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := decodeFeedCursor(tc.cursor)
			if err == nil {
				t.Fatalf("decodeFeedCursor(%q) succeeded; want error", tc.cursor)
			}
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("error kind = %v; want %v", apperr.KindOf(err), apperr.KindValidation)
			}
		})
	}
}

func TestFeedCategoryPredicate(t *testing.T) {
	testCases := []struct {
		name         string
		category     string
		wantEmpty    bool
		wantContains []string
	}{
		{"All Tab", "all", true, nil},
		{"Unknown Falls Back", "whatever", true, nil},
		{"Prestations", "prestations", false, []string{"service_request", "'offer'"}},
		{"Annonces", "annonces", false, []string{"service_request", "'demand'"}},
		{"Events", "events", false, []string{"'event'"}},
		{"Messages", "messages", false, []string{"'text'", "'music'"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			predicate := feedCategoryPredicate(tc.category)
			if tc.wantEmpty {
				if predicate != "" {
					t.Fatalf("predicate = %q; want empty", predicate)
				}
				return
			}
			if predicate == "" {
				t.Fatal("predicate is empty; want a filter")
			}
			for _, fragment := range tc.wantContains {
				if !strings.Contains(predicate, fragment) {
					t.Errorf("predicate %q missing fragment %q", predicate, fragment)
				}
			}
		})
	}
}

func TestDedupeFeedItems(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	items := []model.FeedItem{
		{Post: model.Post{ID: a}},
		{Post: model.Post{ID: b}},
		{Post: model.Post{ID: a}},
		{Post: model.Post{ID: c}},
		{Post: model.Post{ID: b}},
	}

	out := dedupeFeedItems(items)
	if len(out) != 3 {
		t.Fatalf("got %d items; want 3", len(out))
	}
	want := []uuid.UUID{a, b, c}
	for i, item := range out {
		if item.ID != want[i] {
			t.Errorf("item %d = %v; want %v (order must be preserved)", i, item.ID, want[i])
		}
	}
}

func TestDedupeFeedItemsNoDuplicates(t *testing.T) {
	items := []model.FeedItem{
		{Post: model.Post{ID: uuid.New()}},
		{Post: model.Post{ID: uuid.New()}},
	}
	out := dedupeFeedItems(items)
	if len(out) != 2 {
		t.Errorf("got %d items; want 2", len(out))
	}
}

func TestValidFeedCategory(t *testing.T) {
	valid := []string{"all", "prestations", "events", "annonces", "messages"}
	for _, category := range valid {
		if !validFeedCategory(category) {
			t.Errorf("validFeedCategory(%q) = false; want true", category)
		}
	}
	for _, category := range []string{"", "ALL", "unknown", "feed"} {
		if validFeedCategory(category) {
			t.Errorf("validFeedCategory(%q) = true; want false", category)
		}
	}
}

func TestAttachListingCards(t *testing.T) {
	listingID := uuid.New()
	orphanID := uuid.New()
	listing := model.ServiceRequest{
		ID:          listingID,
		RequestType: "demand",
		Category:    "dj",
		Description: "resident DJ for friday nights",
		Status:      "open",
	}

	newItem := func(postType string, relatedID *uuid.UUID) model.FeedItem {
		item := model.FeedItem{CardType: "post"}
		item.ID = uuid.New()
		item.PostType = postType
		item.RelatedID = relatedID
		return item
	}

	tests := []struct {
		name        string
		item        model.FeedItem
		wantCard    string
		wantListing bool
	}{
		{
			name:        "listing post with a matching row becomes a listing card",
			item:        newItem("service_request", &listingID),
			wantCard:    "service_request",
			wantListing: true,
		},
		{
			name:     "listing post with no matching row stays a plain post card",
			item:     newItem("service_request", &orphanID),
			wantCard: "post",
		},
		{
			name:     "listing post with no related id stays a plain post card",
			item:     newItem("service_request", nil),
			wantCard: "post",
		},
		{
			name:     "text post is untouched",
			item:     newItem("text", nil),
			wantCard: "post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []model.FeedItem{tt.item}
			attachListingCards(items, []model.ServiceRequest{listing})

			if items[0].CardType != tt.wantCard {
				t.Errorf("card_type = %q; want %q", items[0].CardType, tt.wantCard)
			}
			if tt.wantListing {
				if items[0].ServiceRequest == nil {
					t.Fatal("expected the listing payload to be attached")
				}
				if items[0].ServiceRequest.ID != listingID {
					t.Errorf("listing id = %v; want %v", items[0].ServiceRequest.ID, listingID)
				}
			} else if items[0].ServiceRequest != nil {
				t.Errorf("listing payload = %+v; want none", items[0].ServiceRequest)
			}
		})
	}
}
