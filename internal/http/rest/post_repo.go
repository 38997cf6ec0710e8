package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util/apperr"
)

func (api *API) CreatePostRepo(ctx context.Context, req model.CreatePostRequest) (model.Post, error) {
	mediaRaw, err := json.Marshal(req.Media)
	if err != nil {
		return model.Post{}, apperr.Wrap(apperr.KindValidation, "invalid media attachments", err)
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = "public"
	}

	query := `
        INSERT INTO posts (
            id, author_profile_id, content, post_type, visibility, related_id,
            media, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, author_profile_id, content, post_type, visibility,
                  related_id, likes_count, comments_count, created_at, updated_at
    `

	var post model.Post
	err = api.DB.QueryRow(ctx, query,
		uuid.New(), req.AuthorID, req.Content, req.PostType, visibility,
		req.RelatedID, mediaRaw,
	).Scan(
		&post.ID, &post.AuthorID, &post.Content, &post.PostType, &post.Visibility,
		&post.RelatedID, &post.LikesCount, &post.CommentsCount, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		log.Println("error creating post", err)
		return model.Post{}, apperr.Wrap(apperr.KindInternal, "creating post", err)
	}

	post.Media = req.Media
	return post, nil
}

func (api *API) GetPostByIDRepo(ctx context.Context, postID, viewerProfileID uuid.UUID) (model.FeedItem, error) {
	query := `
        SELECT
            p.id, p.author_profile_id, p.content, p.post_type, p.visibility,
            p.related_id, COALESCE(p.media, '[]'::jsonb), p.likes_count,
            p.comments_count, p.created_at, p.updated_at,
            pr.id, pr.display_name, pr.avatar_url, pr.profile_type,
            EXISTS (
                SELECT 1 FROM post_likes pl
                WHERE pl.post_id = p.id AND pl.profile_id = $2
            ) AS viewer_has_liked
        FROM posts p
        JOIN profiles pr ON pr.id = p.author_profile_id
        WHERE p.id = $1
    `

	var item model.FeedItem
	var author model.ProfileSummary
	var mediaRaw []byte

	err := api.DB.QueryRow(ctx, query, postID, viewerProfileID).Scan(
		&item.ID, &item.AuthorID, &item.Content, &item.PostType, &item.Visibility,
		&item.RelatedID, &mediaRaw, &item.LikesCount,
		&item.CommentsCount, &item.CreatedAt, &item.UpdatedAt,
		&author.ID, &author.DisplayName, &author.AvatarURL, &author.ProfileType,
		&item.ViewerHasLiked,
	)
	if err == pgx.ErrNoRows {
		return model.FeedItem{}, apperr.NotFound("post not found")
	}
	if err != nil {
		return model.FeedItem{}, apperr.Wrap(apperr.KindInternal, "fetching post", err)
	}

	if err := json.Unmarshal(mediaRaw, &item.Media); err != nil {
		return model.FeedItem{}, apperr.Wrap(apperr.KindInternal, "decoding media attachments", err)
	}

	item.Author = &author
	item.CardType = "post"

	items := []model.FeedItem{item}
	if err := api.attachServiceRequests(ctx, items); err != nil {
		return model.FeedItem{}, err
	}
	return items[0], nil
}

// ToggleLikeRepo flips the like row and its counter in one transaction, so a
// failed mutation leaves both untouched. No half-applied state exists for the
// caller to roll back.
func (api *API) ToggleLikeRepo(ctx context.Context, postID, profileID uuid.UUID) (model.ToggleLikeResult, error) {
	result := model.ToggleLikeResult{PostID: postID}

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            DELETE FROM post_likes WHERE post_id = $1 AND profile_id = $2
        `, postID, profileID)
		if err != nil {
			return fmt.Errorf("removing like: %w", err)
		}

		delta := -1
		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, `
                INSERT INTO post_likes (post_id, profile_id, created_at)
                VALUES ($1, $2, NOW())
                ON CONFLICT (post_id, profile_id) DO NOTHING
            `, postID, profileID); err != nil {
				return fmt.Errorf("adding like: %w", err)
			}
			delta = 1
			result.Liked = true
		}

		err = tx.QueryRow(ctx, `
            UPDATE posts
            SET likes_count = GREATEST(likes_count + $2, 0), updated_at = NOW()
            WHERE id = $1
            RETURNING likes_count
        `, postID, delta).Scan(&result.LikesCount)
		if err == pgx.ErrNoRows {
			return apperr.NotFound("post not found")
		}
		return err
	})
	if err != nil {
		log.Println("error toggling like", err)
		return model.ToggleLikeResult{}, err
	}

	api.Deps.Cache.IncrCounter(ctx, "post_likes:"+postID.String(), boolDelta(result.Liked))
	return result, nil
}

func boolDelta(liked bool) int64 {
	if liked {
		return 1
	}
	return -1
}

func (api *API) AddCommentRepo(ctx context.Context, postID, profileID uuid.UUID, text string) (model.Comment, error) {
	var comment model.Comment

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            INSERT INTO post_comments (id, post_id, author_profile_id, comment, created_at)
            VALUES ($1, $2, $3, $4, NOW())
            RETURNING id, post_id, author_profile_id, comment, created_at
        `, uuid.New(), postID, profileID, text).Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Comment, &comment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting comment: %w", err)
		}

		tag, err := tx.Exec(ctx, `
            UPDATE posts SET comments_count = comments_count + 1, updated_at = NOW()
            WHERE id = $1
        `, postID)
		if err != nil {
			return fmt.Errorf("bumping comment counter: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("post not found")
		}
		return nil
	})
	if err != nil {
		log.Println("error adding comment", err)
		return model.Comment{}, err
	}

	api.Deps.Cache.IncrCounter(ctx, "post_comments:"+postID.String(), 1)
	return comment, nil
}

func (api *API) GetCommentsRepo(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	query := `
        SELECT c.id, c.post_id, c.author_profile_id, c.comment, c.created_at,
               pr.id, pr.display_name, pr.avatar_url, pr.profile_type
        FROM post_comments c
        JOIN profiles pr ON pr.id = c.author_profile_id
        WHERE c.post_id = $1
        ORDER BY c.created_at ASC
    `

	rows, err := api.DB.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var comment model.Comment
		var author model.ProfileSummary

		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Comment, &comment.CreatedAt,
			&author.ID, &author.DisplayName, &author.AvatarURL, &author.ProfileType,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}

		comment.Author = &author
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
