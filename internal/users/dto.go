package users

// CreateAccountRequest is the payload for account registration.
type CreateAccountRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=CLIENT OWNER DELIVERY"`
}

// CreateAccountResponse reports the outcome of registration.
type CreateAccountResponse struct {
	OK    bool    `json:"ok"`
	Error *string `json:"error"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse reports the outcome of login.
type LoginResponse struct {
	OK    bool    `json:"ok"`
	Error *string `json:"error"`
	Token string  `json:"token,omitempty"`
}
