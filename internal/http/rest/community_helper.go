package rest

import (
	"context"

	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/values"
)

func (api *API) CreateCommunityHelper(ctx context.Context, creatorID uuid.UUID, req model.CreateCommunityRequest) (model.CommunityScreen, string, string, error) {
	screen, err := api.CreateCommunityRepo(ctx, creatorID, req)
	if err != nil {
		return model.CommunityScreen{}, util.StatusFromError(err), "Failed to create community", err
	}
	return screen, values.Created, "Community created successfully", nil
}

func (api *API) ListCommunitiesHelper(ctx context.Context, userID uuid.UUID) ([]model.Community, string, string, error) {
	communities, err := api.ListCommunitiesRepo(ctx, userID)
	if err != nil {
		return nil, util.StatusFromError(err), "Failed to fetch communities", err
	}
	return communities, values.Success, "Communities fetched successfully", nil
}

func (api *API) GetCommunityScreenHelper(ctx context.Context, communityID, userID uuid.UUID) (model.CommunityScreen, string, string, error) {
	screen, err := api.GetCommunityScreenRepo(ctx, communityID, userID)
	if err != nil {
		return model.CommunityScreen{}, util.StatusFromError(err), "Failed to open community", err
	}
	return screen, values.Success, "Community fetched successfully", nil
}

func (api *API) JoinCommunityHelper(ctx context.Context, communityID, userID uuid.UUID) (model.Membership, string, string, error) {
	membership, err := api.JoinCommunityRepo(ctx, communityID, userID)
	if err != nil {
		return model.Membership{}, util.StatusFromError(err), "Failed to join community", err
	}
	return membership, values.Success, "Joined community successfully", nil
}

func (api *API) LeaveCommunityHelper(ctx context.Context, communityID, userID uuid.UUID) (string, string, error) {
	if err := api.LeaveCommunityRepo(ctx, communityID, userID); err != nil {
		return util.StatusFromError(err), "Failed to leave community", err
	}
	return values.Success, "Left community successfully", nil
}

func (api *API) GetChannelMessagesHelper(ctx context.Context, communityID, channelID, userID uuid.UUID) ([]model.Message, string, string, error) {
	if err := api.requireMembership(ctx, communityID, userID); err != nil {
		return nil, util.StatusFromError(err), "membership required", err
	}

	messages, err := api.GetChannelMessagesRepo(ctx, channelID)
	if err != nil {
		return nil, util.StatusFromError(err), "Failed to fetch messages", err
	}
	return messages, values.Success, "Messages fetched successfully", nil
}

// SendMessageHelper persists the message, then pushes it to live subscribers.
// Delivery to the websocket layer happens only after the row is committed.
func (api *API) SendMessageHelper(ctx context.Context, communityID, channelID uuid.UUID, session model.Session, content string) (model.Message, string, string, error) {
	if err := api.requireMembership(ctx, communityID, session.UserID); err != nil {
		return model.Message{}, util.StatusFromError(err), "membership required", err
	}

	msg, err := api.InsertMessageRepo(ctx, channelID, session.ProfileID, content)
	if err != nil {
		return model.Message{}, util.StatusFromError(err), "Failed to send message", err
	}

	api.Deps.Hub.PublishMessage(ctx, msg)
	return msg, values.Created, "Message sent successfully", nil
}

func (api *API) DeleteMessageHelper(ctx context.Context, communityID, messageID uuid.UUID, session model.Session) (string, string, error) {
	role, err := api.GetMembershipRole(ctx, communityID, session.UserID)
	if err != nil {
		return util.StatusFromError(err), "membership required", err
	}

	if err := api.SoftDeleteMessageRepo(ctx, messageID, session.ProfileID, role); err != nil {
		return util.StatusFromError(err), "Failed to delete message", err
	}
	return values.Success, "Message deleted successfully", nil
}

func (api *API) requireMembership(ctx context.Context, communityID, userID uuid.UUID) error {
	_, err := api.GetMembershipRole(ctx, communityID, userID)
	return err
}

var errNotMember = apperr.Forbidden("you are not a member of this community")
