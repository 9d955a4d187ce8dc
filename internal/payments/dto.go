package payments

// CreatePaymentRequest is the payload for promoting a restaurant.
type CreatePaymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	RestaurantID  int64  `json:"restaurant_id" validate:"required,gt=0"`
}

// CreatePaymentResult is the structured outcome of an activation. Domain
// failures are carried here, never as transport errors.
type CreatePaymentResult struct {
	OK    bool    `json:"ok"`
	Error *string `json:"error"`
}

// ListPaymentsResult is the structured outcome of a ledger listing.
type ListPaymentsResult struct {
	OK       bool      `json:"ok"`
	Error    *string   `json:"error"`
	Payments []Payment `json:"payments"`
}
