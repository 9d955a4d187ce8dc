// Package payments owns the promotion ledger: payment records, the
// activation that grants a promotion window, and the expiry sweep that
// revokes it. Activation is the only grant path; the sweep is the only
// revoke path.
package payments

import "time"

// PromotionWindow is how long a single payment promotes a restaurant.
// Re-activating before expiry restarts the window from the new payment.
const PromotionWindow = 7 * 24 * time.Hour

// Payment is one successful promotion purchase. Rows are append-only:
// nothing in this module updates or deletes them.
type Payment struct {
	ID            int64     `json:"id" db:"id"`
	Reference     string    `json:"reference" db:"reference"`
	TransactionID string    `json:"transaction_id" db:"transaction_id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	RestaurantID  int64     `json:"restaurant_id" db:"restaurant_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// PromotionTarget is the slice of a restaurant row that activation and the
// sweep read and write.
type PromotionTarget struct {
	ID            int64      `db:"id"`
	OwnerID       int64      `db:"owner_id"`
	IsPromoted    bool       `db:"is_promoted"`
	PromotedUntil *time.Time `db:"promoted_until"`
}
