package payments

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/kurier-app/kurier/internal/authz"
	"github.com/kurier-app/kurier/internal/shared"
)

// User-facing outcome strings. These are API contract, not log text.
const (
	msgRestaurantNotFound = "Restaurant not found"
	msgNotAllowed         = "You are not allowed to do this."
	msgCreateFailed       = "Could not create payment"
	msgLoadFailed         = "Could not load payments"
)

// ListingInvalidator drops cached restaurant listings after a promotion
// change. Implemented by restaurants.Cache.
type ListingInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service implements promotion activation and ledger listing.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	listings ListingInvalidator
	now      func() time.Time
}

// NewService constructs a Service. listings may be nil.
func NewService(repo Repository, logger *slog.Logger, listings ListingInvalidator) *Service {
	return &Service{
		repo:     repo,
		logger:   logger,
		listings: listings,
		now:      time.Now,
	}
}

// Create activates (or extends) a restaurant's promotion on behalf of a
// successful payment. Checks run in order and stop at the first failure:
// restaurant must exist, then caller must own it. The promotion update and
// the ledger insert commit in one transaction.
//
// The outcome is always a structured result; this method never returns an
// error to the transport layer.
func (s *Service) Create(ctx context.Context, caller *authz.Principal, req CreatePaymentRequest) CreatePaymentResult {
	target, err := s.repo.GetPromotionTarget(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return CreatePaymentResult{OK: false, Error: strptr(msgRestaurantNotFound)}
		}
		s.logf("load restaurant", err, req.RestaurantID)
		return CreatePaymentResult{OK: false, Error: strptr(msgCreateFailed)}
	}
	if target.OwnerID != caller.ID {
		return CreatePaymentResult{OK: false, Error: strptr(msgNotAllowed)}
	}

	until := s.now().Add(PromotionWindow)
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.SetPromotion(ctx, target.ID, until); err != nil {
			return err
		}
		_, err := repo.Insert(ctx, Payment{
			Reference:     uuid.NewString(),
			TransactionID: req.TransactionID,
			UserID:        caller.ID,
			RestaurantID:  target.ID,
		})
		return err
	})
	if err != nil {
		s.logf("activate promotion", err, req.RestaurantID)
		return CreatePaymentResult{OK: false, Error: strptr(msgCreateFailed)}
	}

	if s.listings != nil {
		_ = s.listings.Invalidate(ctx)
	}
	return CreatePaymentResult{OK: true}
}

// List returns the caller's payment records in storage order. An empty
// ledger is a success, not an error.
func (s *Service) List(ctx context.Context, caller *authz.Principal) ListPaymentsResult {
	records, err := s.repo.ListByUser(ctx, caller.ID)
	if err != nil {
		s.logf("list payments", err, 0)
		return ListPaymentsResult{OK: false, Error: strptr(msgLoadFailed)}
	}
	if records == nil {
		records = []Payment{}
	}
	return ListPaymentsResult{OK: true, Payments: records}
}

func (s *Service) logf(msg string, err error, restaurantID int64) {
	if s.logger == nil {
		return
	}
	attrs := []any{slog.Any("error", err)}
	if restaurantID != 0 {
		attrs = append(attrs, slog.Int64("restaurant_id", restaurantID))
	}
	s.logger.Error(msg, attrs...)
}

func strptr(v string) *string {
	return &v
}
