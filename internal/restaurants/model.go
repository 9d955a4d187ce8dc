package restaurants

import "time"

// Restaurant is a listing on the platform. IsPromoted and PromotedUntil are
// owned by the payments module: activation is the only grant path and the
// expiry sweep the only revoke path. Nothing else writes those two fields.
type Restaurant struct {
	ID            int64      `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Address       string     `json:"address" db:"address"`
	CategoryName  string     `json:"category_name" db:"category_name"`
	CoverImg      *string    `json:"cover_img,omitempty" db:"cover_img"`
	OwnerID       int64      `json:"owner_id" db:"owner_id"`
	IsPromoted    bool       `json:"is_promoted" db:"is_promoted"`
	PromotedUntil *time.Time `json:"promoted_until,omitempty" db:"promoted_until"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
