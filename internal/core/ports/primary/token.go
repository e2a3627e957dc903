package primary

import "context"

// TokenService issues and verifies the HMAC bearer tokens guarding the API
type TokenService interface {
	GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error)
	VerifyTokenHMAC(ctx context.Context, token string) (bool, error)
}
