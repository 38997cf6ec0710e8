package rest

import (
	"context"

	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/values"
)

func (api *API) CreatePostHelper(ctx context.Context, req model.CreatePostRequest) (model.Post, string, string, error) {
	post, err := api.CreatePostRepo(ctx, req)
	if err != nil {
		return model.Post{}, util.StatusFromError(err), "Failed to create post", err
	}
	return post, values.Created, "Post created successfully", nil
}

func (api *API) GetPostByIDHelper(ctx context.Context, postID, viewerProfileID uuid.UUID) (model.FeedItem, string, string, error) {
	item, err := api.GetPostByIDRepo(ctx, postID, viewerProfileID)
	if err != nil {
		return model.FeedItem{}, util.StatusFromError(err), "Failed to fetch post", err
	}
	return item, values.Success, "Post fetched successfully", nil
}

func (api *API) ToggleLikeHelper(ctx context.Context, postID, profileID uuid.UUID) (model.ToggleLikeResult, string, string, error) {
	if profileID == uuid.Nil {
		err := apperr.Forbidden("complete your profile before liking posts")
		return model.ToggleLikeResult{}, util.StatusFromError(err), "complete your profile before liking posts", err
	}

	result, err := api.ToggleLikeRepo(ctx, postID, profileID)
	if err != nil {
		return model.ToggleLikeResult{}, util.StatusFromError(err), "Failed to toggle like", err
	}
	return result, values.Success, "Like toggled successfully", nil
}

func (api *API) AddCommentHelper(ctx context.Context, postID, profileID uuid.UUID, text string) (model.Comment, string, string, error) {
	if profileID == uuid.Nil {
		err := apperr.Forbidden("complete your profile before commenting")
		return model.Comment{}, util.StatusFromError(err), "complete your profile before commenting", err
	}

	comment, err := api.AddCommentRepo(ctx, postID, profileID, text)
	if err != nil {
		return model.Comment{}, util.StatusFromError(err), "Failed to add comment", err
	}
	return comment, values.Created, "Comment added successfully", nil
}

func (api *API) GetCommentsHelper(ctx context.Context, postID uuid.UUID) ([]model.Comment, string, string, error) {
	comments, err := api.GetCommentsRepo(ctx, postID)
	if err != nil {
		return nil, values.Error, "Failed to fetch comments", err
	}
	return comments, values.Success, "Comments fetched successfully", nil
}
