package rest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util/apperr"
)

// encodeFeedCursor packs the keyset position (created_at, id) of the last
// delivered item into an opaque token.
func encodeFeedCursor(createdAt time.Time, id uuid.UUID) string {
	raw := fmt.Sprintf("%d|%s", createdAt.UnixNano(), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeFeedCursor(cursor string) (time.Time, uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, apperr.Wrap(apperr.KindValidation, "malformed cursor", err)
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, uuid.Nil, apperr.Validation("malformed cursor")
	}

	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, apperr.Wrap(apperr.KindValidation, "malformed cursor", err)
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, uuid.Nil, apperr.Wrap(apperr.KindValidation, "malformed cursor", err)
	}

	return time.Unix(0, nanos).UTC(), id, nil
}

// feedCategoryPredicate translates a feed tab into its SQL filter. Returns
// an empty string for the "all" tab.
func feedCategoryPredicate(category string) string {
	switch category {
	case "prestations":
		return `p.post_type = 'service_request' AND EXISTS (
            SELECT 1 FROM service_requests sr WHERE sr.id = p.related_id AND sr.request_type = 'offer')`
	case "annonces":
		return `p.post_type = 'service_request' AND EXISTS (
            SELECT 1 FROM service_requests sr WHERE sr.id = p.related_id AND sr.request_type = 'demand')`
	case "events":
		return `p.post_type = 'event'`
	case "messages":
		return `p.post_type IN ('text', 'image', 'video', 'music')`
	default:
		return ""
	}
}

// dedupeFeedItems drops repeated post ids while preserving order. The keyset
// cursor already prevents duplicates across pages; this guards a single page
// against join fan-out.
func dedupeFeedItems(items []model.FeedItem) []model.FeedItem {
	seen := make(map[uuid.UUID]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}

func (api *API) LoadFeedPageRepo(ctx context.Context, viewerProfileID uuid.UUID, category, cursor string, limit int) (model.FeedPage, error) {
	baseQuery := `
        SELECT
            p.id, p.author_profile_id, p.content, p.post_type, p.visibility,
            p.related_id, COALESCE(p.media, '[]'::jsonb), p.likes_count,
            p.comments_count, p.created_at, p.updated_at,
            pr.id, pr.display_name, pr.avatar_url, pr.profile_type,
            EXISTS (
                SELECT 1 FROM post_likes pl
                WHERE pl.post_id = p.id AND pl.profile_id = $1
            ) AS viewer_has_liked
        FROM posts p
        JOIN profiles pr ON pr.id = p.author_profile_id
        WHERE p.visibility = 'public'
    `

	args := []interface{}{viewerProfileID}
	argCount := 1

	whereClause := ""
	if predicate := feedCategoryPredicate(category); predicate != "" {
		whereClause += " AND " + predicate
	}

	if cursor != "" {
		cursorAt, cursorID, err := decodeFeedCursor(cursor)
		if err != nil {
			return model.FeedPage{}, err
		}
		whereClause += fmt.Sprintf(" AND (p.created_at, p.id) < ($%d, $%d)", argCount+1, argCount+2)
		args = append(args, cursorAt, cursorID)
		argCount += 2
	}

	// limit+1 probe: the extra row's presence is the has_more flag
	query := fmt.Sprintf(`
        %s %s
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT $%d
    `, baseQuery, whereClause, argCount+1)
	args = append(args, limit+1)

	rows, err := api.DB.Query(ctx, query, args...)
	if err != nil {
		return model.FeedPage{}, fmt.Errorf("querying feed page: %w", err)
	}
	defer rows.Close()

	var items []model.FeedItem
	for rows.Next() {
		var item model.FeedItem
		var author model.ProfileSummary
		var mediaRaw []byte

		err := rows.Scan(
			&item.ID, &item.AuthorID, &item.Content, &item.PostType, &item.Visibility,
			&item.RelatedID, &mediaRaw, &item.LikesCount,
			&item.CommentsCount, &item.CreatedAt, &item.UpdatedAt,
			&author.ID, &author.DisplayName, &author.AvatarURL, &author.ProfileType,
			&item.ViewerHasLiked,
		)
		if err != nil {
			return model.FeedPage{}, fmt.Errorf("scanning feed item: %w", err)
		}

		if err := json.Unmarshal(mediaRaw, &item.Media); err != nil {
			return model.FeedPage{}, fmt.Errorf("decoding media attachments: %w", err)
		}

		item.Author = &author
		item.CardType = "post"
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return model.FeedPage{}, fmt.Errorf("reading feed rows: %w", err)
	}

	page := model.FeedPage{}
	if len(items) > limit {
		last := items[limit-1]
		page.HasMore = true
		page.NextCursor = encodeFeedCursor(last.CreatedAt, last.ID)
		items = items[:limit]
	}

	items = dedupeFeedItems(items)

	if err := api.attachServiceRequests(ctx, items); err != nil {
		return model.FeedPage{}, err
	}

	page.Items = items
	return page, nil
}

// attachServiceRequests resolves the listing payload for service-request
// posts so they render as service-request cards, never generic post cards.
func (api *API) attachServiceRequests(ctx context.Context, items []model.FeedItem) error {
	var relatedIDs []uuid.UUID
	for _, item := range items {
		if item.PostType == "service_request" && item.RelatedID != nil {
			relatedIDs = append(relatedIDs, *item.RelatedID)
		}
	}
	if len(relatedIDs) == 0 {
		return nil
	}

	requests, err := api.GetServiceRequestsByIDs(ctx, relatedIDs)
	if err != nil {
		return err
	}

	attachListingCards(items, requests)
	return nil
}

// attachListingCards maps listings onto their posts in place. A
// service-request post with a matching listing becomes a service-request
// card; a post whose listing is missing keeps the plain post card rather
// than rendering an empty one.
func attachListingCards(items []model.FeedItem, requests []model.ServiceRequest) {
	byID := make(map[uuid.UUID]model.ServiceRequest, len(requests))
	for _, sr := range requests {
		byID[sr.ID] = sr
	}

	for i := range items {
		if items[i].PostType != "service_request" || items[i].RelatedID == nil {
			continue
		}
		if sr, ok := byID[*items[i].RelatedID]; ok {
			items[i].CardType = "service_request"
			items[i].ServiceRequest = &sr
		}
	}
}
