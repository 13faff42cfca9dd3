package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
)

type subscriptionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSubscriptionRepository(db *DB, logger *logger.Logger) SubscriptionRepository {
	logger.Debug().Msg("creating subscription repository")
	return &subscriptionRepository{DB: db, logger: logger}
}

// SaveSubscription upserts sub; saving the same id twice is a no-op.
func (r *subscriptionRepository) SaveSubscription(ctx context.Context, userID int64, sub models.SubscriptionRequest) error {
	query, args, err := buildUpsertSubscriptionQuery(userID, sub)
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*subscriptionRepository.SaveSubscription").
			Int64("user_id", userID).Msg("failed to save subscription")
		return r.wrapError(ErrExecutingStatement, err)
	}

	return nil
}

func (r *subscriptionRepository) ListSubscriptions(ctx context.Context, userID int64) ([]models.SubscriptionRequest, error) {
	query, args, err := buildListSubscriptionsQuery(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var subs []models.SubscriptionRequest
	for rows.Next() {
		var sub models.SubscriptionRequest
		if err := rows.Scan(&sub.SubscriptionID, &sub.RecordType); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}
