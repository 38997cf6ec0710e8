package rest

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
)

const serviceRequestColumns = `
    sr.id, sr.author_profile_id, sr.request_type, sr.category, sr.location,
    sr.budget_min, sr.budget_max, sr.event_date, sr.deadline, sr.description,
    COALESCE(sr.requirements, '{}'), sr.status, sr.created_at, sr.updated_at
`

// CreateServiceRequestRepo inserts the listing and its feed post together.
// The post carries related_id back to the listing so feed loads can hydrate
// the card.
func (api *API) CreateServiceRequestRepo(ctx context.Context, req model.CreateServiceRequestRequest) (model.ServiceRequest, error) {
	request := model.ServiceRequest{}

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            INSERT INTO service_requests (
                id, author_profile_id, request_type, category, location,
                budget_min, budget_max, event_date, deadline, description,
                requirements, status, created_at, updated_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'open', NOW(), NOW())
            RETURNING id, author_profile_id, request_type, category, location,
                      budget_min, budget_max, event_date, deadline, description,
                      COALESCE(requirements, '{}'), status, created_at, updated_at
        `, uuid.New(), req.AuthorID, req.RequestType, req.Category, req.Location,
			req.BudgetMin, req.BudgetMax, req.EventDate, req.Deadline,
			req.Description, req.Requirements,
		).Scan(
			&request.ID, &request.AuthorID, &request.RequestType, &request.Category,
			&request.Location, &request.BudgetMin, &request.BudgetMax,
			&request.EventDate, &request.Deadline, &request.Description,
			&request.Requirements, &request.Status, &request.CreatedAt, &request.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting service request: %w", err)
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO posts (
                id, author_profile_id, content, post_type, visibility, related_id,
                media, created_at, updated_at
            ) VALUES ($1, $2, $3, 'service_request', 'public', $4, '[]'::jsonb, NOW(), NOW())
        `, uuid.New(), req.AuthorID, util.TruncateContent(req.Description, 280), request.ID)
		if err != nil {
			return fmt.Errorf("inserting linked post: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Println("error creating service request", err)
		return model.ServiceRequest{}, apperr.Wrap(apperr.KindInternal, "creating service request", err)
	}

	return request, nil
}

func (api *API) GetServiceRequestRepo(ctx context.Context, requestID uuid.UUID) (model.ServiceRequest, error) {
	query := fmt.Sprintf(`
        SELECT %s,
               pr.id, pr.display_name, pr.avatar_url, pr.profile_type
        FROM service_requests sr
        JOIN profiles pr ON pr.id = sr.author_profile_id
        WHERE sr.id = $1
    `, serviceRequestColumns)

	var request model.ServiceRequest
	var author model.ProfileSummary

	err := api.DB.QueryRow(ctx, query, requestID).Scan(
		&request.ID, &request.AuthorID, &request.RequestType, &request.Category,
		&request.Location, &request.BudgetMin, &request.BudgetMax,
		&request.EventDate, &request.Deadline, &request.Description,
		&request.Requirements, &request.Status, &request.CreatedAt, &request.UpdatedAt,
		&author.ID, &author.DisplayName, &author.AvatarURL, &author.ProfileType,
	)
	if err == pgx.ErrNoRows {
		return model.ServiceRequest{}, apperr.NotFound("service request not found")
	}
	if err != nil {
		return model.ServiceRequest{}, apperr.Wrap(apperr.KindInternal, "fetching service request", err)
	}

	request.Author = &author
	return request, nil
}

// GetServiceRequestsByIDs batch-loads listings for feed hydration.
func (api *API) GetServiceRequestsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ServiceRequest, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM service_requests sr
        WHERE sr.id = ANY($1)
    `, serviceRequestColumns)

	rows, err := api.DB.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("querying service requests: %w", err)
	}
	defer rows.Close()

	var requests []model.ServiceRequest
	for rows.Next() {
		var request model.ServiceRequest
		err := rows.Scan(
			&request.ID, &request.AuthorID, &request.RequestType, &request.Category,
			&request.Location, &request.BudgetMin, &request.BudgetMax,
			&request.EventDate, &request.Deadline, &request.Description,
			&request.Requirements, &request.Status, &request.CreatedAt, &request.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning service request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// announcementBudgetPredicate maps a budget tier onto the listing's declared
// ceiling. Rows without a ceiling only surface on the uncapped tier.
func announcementBudgetPredicate(filter string) string {
	switch filter {
	case "low":
		return "sr.budget_max IS NOT NULL AND sr.budget_max <= 1000"
	case "medium":
		return "sr.budget_max IS NOT NULL AND sr.budget_max <= 5000"
	default:
		return ""
	}
}

func (api *API) ListAnnouncementsRepo(ctx context.Context, params model.AnnouncementsParams) ([]model.ServiceRequest, error) {
	query := fmt.Sprintf(`
        SELECT %s,
               pr.id, pr.display_name, pr.avatar_url, pr.profile_type
        FROM service_requests sr
        JOIN profiles pr ON pr.id = sr.author_profile_id
        WHERE sr.status = 'open'
    `, serviceRequestColumns)

	var args []interface{}
	argCount := 0

	if params.Category != "" {
		argCount++
		query += fmt.Sprintf(" AND sr.category = $%d", argCount)
		args = append(args, params.Category)
	}
	if params.RequestType != "" {
		argCount++
		query += fmt.Sprintf(" AND sr.request_type = $%d", argCount)
		args = append(args, params.RequestType)
	}
	if predicate := announcementBudgetPredicate(params.BudgetFilter); predicate != "" {
		query += " AND " + predicate
	}

	query += fmt.Sprintf(`
        ORDER BY sr.created_at DESC
        LIMIT $%d OFFSET $%d
    `, argCount+1, argCount+2)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	rows, err := api.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying announcements: %w", err)
	}
	defer rows.Close()

	var requests []model.ServiceRequest
	for rows.Next() {
		var request model.ServiceRequest
		var author model.ProfileSummary

		err := rows.Scan(
			&request.ID, &request.AuthorID, &request.RequestType, &request.Category,
			&request.Location, &request.BudgetMin, &request.BudgetMax,
			&request.EventDate, &request.Deadline, &request.Description,
			&request.Requirements, &request.Status, &request.CreatedAt, &request.UpdatedAt,
			&author.ID, &author.DisplayName, &author.AvatarURL, &author.ProfileType,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning announcement: %w", err)
		}

		request.Author = &author
		requests = append(requests, request)
	}
	return requests, rows.Err()
}
