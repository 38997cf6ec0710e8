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

func (api *API) CreateAffiliateLinkRepo(ctx context.Context, profileID uuid.UUID, commissionRate float64) (model.AffiliateLink, error) {
	var link model.AffiliateLink

	err := api.DB.QueryRow(ctx, `
        INSERT INTO affiliate_links (id, profile_id, code, commission_rate, is_active, created_at)
        VALUES ($1, $2, $3, $4, TRUE, NOW())
        RETURNING id, profile_id, code, commission_rate, clicks_count, conversions_count, is_active, created_at
    `, uuid.New(), profileID, util.GenerateShortCode(8), commissionRate).Scan(
		&link.ID, &link.ProfileID, &link.Code, &link.CommissionRate,
		&link.ClicksCount, &link.ConversionsCount, &link.IsActive, &link.CreatedAt,
	)
	if err != nil {
		log.Println("error creating affiliate link", err)
		return model.AffiliateLink{}, apperr.Wrap(apperr.KindInternal, "creating affiliate link", err)
	}
	return link, nil
}

func (api *API) ListAffiliateLinksRepo(ctx context.Context, profileID uuid.UUID) ([]model.AffiliateLink, error) {
	rows, err := api.DB.Query(ctx, `
        SELECT id, profile_id, code, commission_rate, clicks_count, conversions_count, is_active, created_at
        FROM affiliate_links
        WHERE profile_id = $1
        ORDER BY created_at DESC
    `, profileID)
	if err != nil {
		return nil, fmt.Errorf("querying affiliate links: %w", err)
	}
	defer rows.Close()

	var links []model.AffiliateLink
	for rows.Next() {
		var link model.AffiliateLink
		err := rows.Scan(
			&link.ID, &link.ProfileID, &link.Code, &link.CommissionRate,
			&link.ClicksCount, &link.ConversionsCount, &link.IsActive, &link.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning affiliate link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (api *API) RecordClickRepo(ctx context.Context, code string) error {
	tag, err := api.DB.Exec(ctx, `
        UPDATE affiliate_links SET clicks_count = clicks_count + 1
        WHERE code = $1 AND is_active = TRUE
    `, code)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "recording click", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("affiliate link not found")
	}

	api.Deps.Cache.IncrCounter(ctx, "affiliate_clicks:"+code, 1)
	return nil
}

// RecordConversionRepo writes the conversion with commission = amount * rate
// and bumps the link's counter in the same transaction.
func (api *API) RecordConversionRepo(ctx context.Context, code string, amount float64) (model.AffiliateConversion, error) {
	var conversion model.AffiliateConversion

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		var linkID uuid.UUID
		var rate float64

		err := tx.QueryRow(ctx, `
            SELECT id, commission_rate FROM affiliate_links
            WHERE code = $1 AND is_active = TRUE
            FOR UPDATE
        `, code).Scan(&linkID, &rate)
		if err == pgx.ErrNoRows {
			return apperr.NotFound("affiliate link not found")
		}
		if err != nil {
			return fmt.Errorf("locking affiliate link: %w", err)
		}

		err = tx.QueryRow(ctx, `
            INSERT INTO affiliate_conversions (id, link_id, amount, commission, created_at)
            VALUES ($1, $2, $3, $4, NOW())
            RETURNING id, link_id, amount, commission, created_at
        `, uuid.New(), linkID, amount, amount*rate).Scan(
			&conversion.ID, &conversion.LinkID, &conversion.Amount,
			&conversion.Commission, &conversion.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting conversion: %w", err)
		}

		_, err = tx.Exec(ctx, `
            UPDATE affiliate_links SET conversions_count = conversions_count + 1
            WHERE id = $1
        `, linkID)
		return err
	})
	if err != nil {
		log.Println("error recording conversion", err)
		return model.AffiliateConversion{}, err
	}
	return conversion, nil
}

// GetAffiliateStatsRepo aggregates one link's revenue. Only the link's owner
// can read it.
func (api *API) GetAffiliateStatsRepo(ctx context.Context, linkID, profileID uuid.UUID) (model.AffiliateStats, error) {
	var stats model.AffiliateStats

	err := api.DB.QueryRow(ctx, `
        SELECT al.id, al.profile_id, al.code, al.commission_rate, al.clicks_count,
               al.conversions_count, al.is_active, al.created_at,
               COALESCE(SUM(ac.amount), 0), COALESCE(SUM(ac.commission), 0)
        FROM affiliate_links al
        LEFT JOIN affiliate_conversions ac ON ac.link_id = al.id
        WHERE al.id = $1 AND al.profile_id = $2
        GROUP BY al.id
    `, linkID, profileID).Scan(
		&stats.Link.ID, &stats.Link.ProfileID, &stats.Link.Code, &stats.Link.CommissionRate,
		&stats.Link.ClicksCount, &stats.Link.ConversionsCount, &stats.Link.IsActive, &stats.Link.CreatedAt,
		&stats.TotalRevenue, &stats.TotalCommission,
	)
	if err == pgx.ErrNoRows {
		return model.AffiliateStats{}, apperr.NotFound("affiliate link not found")
	}
	if err != nil {
		return model.AffiliateStats{}, apperr.Wrap(apperr.KindInternal, "fetching affiliate stats", err)
	}
	return stats, nil
}
