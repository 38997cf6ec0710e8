package rest

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util/apperr"
)

// channelMessageWindow caps how many messages a channel open loads. Older
// history stays in the database.
const channelMessageWindow = 100

// CreateCommunityRepo creates the community, its default "general" channel and
// the creator's admin membership in one transaction.
func (api *API) CreateCommunityRepo(ctx context.Context, creatorID uuid.UUID, req model.CreateCommunityRequest) (model.CommunityScreen, error) {
	var screen model.CommunityScreen

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            INSERT INTO communities (id, name, description, creator_id, member_count, created_at, updated_at)
            VALUES ($1, $2, $3, $4, 1, NOW(), NOW())
            RETURNING id, name, description, icon_url, creator_id, member_count,
                      last_message_at, is_deleted, created_at, updated_at
        `, uuid.New(), req.Name, req.Description, creatorID).Scan(
			&screen.Community.ID, &screen.Community.Name, &screen.Community.Description,
			&screen.Community.IconURL, &screen.Community.CreatorID, &screen.Community.MemberCount,
			&screen.Community.LastMessageAt, &screen.Community.IsDeleted,
			&screen.Community.CreatedAt, &screen.Community.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting community: %w", err)
		}

		var channel model.Channel
		err = tx.QueryRow(ctx, `
            INSERT INTO community_channels (id, community_id, name, position, created_at)
            VALUES ($1, $2, 'general', 0, NOW())
            RETURNING id, community_id, name, position, created_at
        `, uuid.New(), screen.Community.ID).Scan(
			&channel.ID, &channel.CommunityID, &channel.Name, &channel.Position, &channel.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting default channel: %w", err)
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO community_members (community_id, user_id, role, joined_at)
            VALUES ($1, $2, 'admin', NOW())
        `, screen.Community.ID, creatorID)
		if err != nil {
			return fmt.Errorf("inserting creator membership: %w", err)
		}

		screen.Channels = []model.Channel{channel}
		screen.SelectedChannel = &channel
		screen.Role = "admin"
		return nil
	})
	if err != nil {
		log.Println("error creating community", err)
		return model.CommunityScreen{}, apperr.Wrap(apperr.KindInternal, "creating community", err)
	}

	return screen, nil
}

// ListCommunitiesRepo returns the viewer's communities, most recently active
// first.
func (api *API) ListCommunitiesRepo(ctx context.Context, userID uuid.UUID) ([]model.Community, error) {
	rows, err := api.DB.Query(ctx, `
        SELECT c.id, c.name, c.description, c.icon_url, c.creator_id, c.member_count,
               c.last_message_at, c.is_deleted, c.created_at, c.updated_at
        FROM communities c
        JOIN community_members cm ON cm.community_id = c.id
        WHERE cm.user_id = $1 AND c.is_deleted = FALSE
        ORDER BY c.last_message_at DESC NULLS LAST, c.created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("querying communities: %w", err)
	}
	defer rows.Close()

	var communities []model.Community
	for rows.Next() {
		var c model.Community
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.IconURL, &c.CreatorID, &c.MemberCount,
			&c.LastMessageAt, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning community: %w", err)
		}
		communities = append(communities, c)
	}
	return communities, rows.Err()
}

func (api *API) GetCommunityScreenRepo(ctx context.Context, communityID, userID uuid.UUID) (model.CommunityScreen, error) {
	var screen model.CommunityScreen

	err := api.DB.QueryRow(ctx, `
        SELECT id, name, description, icon_url, creator_id, member_count,
               last_message_at, is_deleted, created_at, updated_at
        FROM communities
        WHERE id = $1 AND is_deleted = FALSE
    `, communityID).Scan(
		&screen.Community.ID, &screen.Community.Name, &screen.Community.Description,
		&screen.Community.IconURL, &screen.Community.CreatorID, &screen.Community.MemberCount,
		&screen.Community.LastMessageAt, &screen.Community.IsDeleted,
		&screen.Community.CreatedAt, &screen.Community.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return model.CommunityScreen{}, apperr.NotFound("community not found")
	}
	if err != nil {
		return model.CommunityScreen{}, apperr.Wrap(apperr.KindInternal, "fetching community", err)
	}

	role, err := api.GetMembershipRole(ctx, communityID, userID)
	if err != nil {
		return model.CommunityScreen{}, err
	}
	screen.Role = role

	rows, err := api.DB.Query(ctx, `
        SELECT id, community_id, name, position, created_at
        FROM community_channels
        WHERE community_id = $1
        ORDER BY position ASC, created_at ASC
    `, communityID)
	if err != nil {
		return model.CommunityScreen{}, fmt.Errorf("querying channels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var channel model.Channel
		err := rows.Scan(&channel.ID, &channel.CommunityID, &channel.Name, &channel.Position, &channel.CreatedAt)
		if err != nil {
			return model.CommunityScreen{}, fmt.Errorf("scanning channel: %w", err)
		}
		screen.Channels = append(screen.Channels, channel)
	}
	if err := rows.Err(); err != nil {
		return model.CommunityScreen{}, fmt.Errorf("reading channel rows: %w", err)
	}

	// default selection is the first channel
	if len(screen.Channels) > 0 {
		screen.SelectedChannel = &screen.Channels[0]
	}
	return screen, nil
}

// GetMembershipRole returns the viewer's role, or a forbidden error for
// non-members.
func (api *API) GetMembershipRole(ctx context.Context, communityID, userID uuid.UUID) (string, error) {
	var role string
	err := api.DB.QueryRow(ctx, `
        SELECT role FROM community_members
        WHERE community_id = $1 AND user_id = $2
    `, communityID, userID).Scan(&role)
	if err == pgx.ErrNoRows {
		return "", errNotMember
	}
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "checking membership", err)
	}
	return role, nil
}

// UserCanAccessChannel backs the realtime subscribe gate: live delivery obeys
// the same membership rule as the HTTP read path.
func (api *API) UserCanAccessChannel(ctx context.Context, userID, channelID string) (bool, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return false, apperr.Validation("invalid user id")
	}
	cid, err := uuid.Parse(channelID)
	if err != nil {
		return false, apperr.Validation("invalid channel id")
	}

	var member bool
	err = api.DB.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1
            FROM community_channels cc
            JOIN community_members cm ON cm.community_id = cc.community_id
            WHERE cc.id = $1 AND cm.user_id = $2
        )
    `, cid, uid).Scan(&member)
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "checking channel access", err)
	}
	return member, nil
}

func (api *API) JoinCommunityRepo(ctx context.Context, communityID, userID uuid.UUID) (model.Membership, error) {
	membership := model.Membership{}

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            INSERT INTO community_members (community_id, user_id, role, joined_at)
            VALUES ($1, $2, 'member', NOW())
            ON CONFLICT (community_id, user_id) DO UPDATE SET role = community_members.role
            RETURNING community_id, user_id, role, joined_at
        `, communityID, userID).Scan(
			&membership.CommunityID, &membership.UserID, &membership.Role, &membership.JoinedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting membership: %w", err)
		}

		tag, err := tx.Exec(ctx, `
            UPDATE communities
            SET member_count = (SELECT COUNT(*) FROM community_members WHERE community_id = $1),
                updated_at = NOW()
            WHERE id = $1 AND is_deleted = FALSE
        `, communityID)
		if err != nil {
			return fmt.Errorf("refreshing member count: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("community not found")
		}
		return nil
	})
	if err != nil {
		log.Println("error joining community", err)
		return model.Membership{}, err
	}
	return membership, nil
}

func (api *API) LeaveCommunityRepo(ctx context.Context, communityID, userID uuid.UUID) error {
	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            DELETE FROM community_members WHERE community_id = $1 AND user_id = $2
        `, communityID, userID)
		if err != nil {
			return fmt.Errorf("removing membership: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return errNotMember
		}

		_, err = tx.Exec(ctx, `
            UPDATE communities
            SET member_count = (SELECT COUNT(*) FROM community_members WHERE community_id = $1),
                updated_at = NOW()
            WHERE id = $1
        `, communityID)
		return err
	})
	if err != nil {
		log.Println("error leaving community", err)
	}
	return err
}

// GetChannelMessagesRepo loads the latest window and returns it oldest-first,
// the order the chat screen renders in. Soft-deleted messages are skipped.
func (api *API) GetChannelMessagesRepo(ctx context.Context, channelID uuid.UUID) ([]model.Message, error) {
	rows, err := api.DB.Query(ctx, `
        SELECT m.id, m.channel_id, m.sender_profile_id, m.content, m.is_deleted, m.created_at,
               pr.id, pr.display_name, pr.avatar_url, pr.profile_type
        FROM (
            SELECT id, channel_id, sender_profile_id, content, is_deleted, created_at
            FROM community_messages
            WHERE channel_id = $1 AND is_deleted = FALSE
            ORDER BY created_at DESC, id DESC
            LIMIT $2
        ) m
        JOIN profiles pr ON pr.id = m.sender_profile_id
        ORDER BY m.created_at ASC, m.id ASC
    `, channelID, channelMessageWindow)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var sender model.ProfileSummary

		err := rows.Scan(
			&msg.ID, &msg.ChannelID, &msg.SenderID, &msg.Content, &msg.IsDeleted, &msg.CreatedAt,
			&sender.ID, &sender.DisplayName, &sender.AvatarURL, &sender.ProfileType,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}

		msg.Sender = &sender
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// InsertMessageRepo writes the message and bumps the community's activity
// timestamp. Creation order is the database's, not the client's.
func (api *API) InsertMessageRepo(ctx context.Context, channelID, senderProfileID uuid.UUID, content string) (model.Message, error) {
	var msg model.Message

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            INSERT INTO community_messages (id, channel_id, sender_profile_id, content, created_at)
            VALUES ($1, $2, $3, $4, NOW())
            RETURNING id, channel_id, sender_profile_id, content, is_deleted, created_at
        `, uuid.New(), channelID, senderProfileID, content).Scan(
			&msg.ID, &msg.ChannelID, &msg.SenderID, &msg.Content, &msg.IsDeleted, &msg.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting message: %w", err)
		}

		_, err = tx.Exec(ctx, `
            UPDATE communities SET last_message_at = NOW(), updated_at = NOW()
            WHERE id = (SELECT community_id FROM community_channels WHERE id = $1)
        `, channelID)
		return err
	})
	if err != nil {
		log.Println("error inserting message", err)
		return model.Message{}, apperr.Wrap(apperr.KindInternal, "sending message", err)
	}

	return msg, nil
}

// SoftDeleteMessageRepo hides a message. Senders can delete their own;
// admins can delete anything in their community.
func (api *API) SoftDeleteMessageRepo(ctx context.Context, messageID, profileID uuid.UUID, role string) error {
	query := `
        UPDATE community_messages SET is_deleted = TRUE
        WHERE id = $1 AND sender_profile_id = $2 AND is_deleted = FALSE
    `
	args := []interface{}{messageID, profileID}

	if role == "admin" {
		query = `
            UPDATE community_messages SET is_deleted = TRUE
            WHERE id = $1 AND is_deleted = FALSE
        `
		args = []interface{}{messageID}
	}

	tag, err := api.DB.Exec(ctx, query, args...)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "deleting message", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("message not found")
	}
	return nil
}
