package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"uuid"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse either carries a session token (2FA off) or signals that a
// one-time code was dispatched and must be exchanged via the 2FA endpoint.
type LoginResponse struct {
	UserID        string `json:"uuid"`
	TwoFactorOn   bool   `json:"isTwoFactorEnabled"`
	AcceptedTerms bool   `json:"acceptedTerms,omitempty"`
	AwaitingCode  bool   `json:"awaitingCode,omitempty"`
	Token         string `json:"token,omitempty"`
}

type TwoFactorRequest struct {
	UserID string `json:"uuid"`
	Code   string `json:"code"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Password string `json:"password"`
}
