package rest

import (
	"context"

	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/values"
)

func (api *API) LoadFeedPageHelper(ctx context.Context, viewerID uuid.UUID, category, cursor string, limit int) (model.FeedPage, string, string, error) {
	page, err := api.LoadFeedPageRepo(ctx, viewerID, category, cursor, limit)
	if err != nil {
		return model.FeedPage{}, util.StatusFromError(err), "Failed to load feed", err
	}
	return page, values.Success, "Feed loaded successfully", nil
}
