package dto

type TokenResponse struct {
	AccessToken string `json:"token"`
	ExpiresIn   int64  `json:"expiresIn"`
}
