package service

// TokenService defines the interface for generating and validating the JWT
// pair issued by the stub backend. This abstracts the details of token
// creation from the handlers.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID int64) (accessToken string, refreshToken string, err error)

	// ValidateAccess checks an access token and returns the user id it carries.
	ValidateAccess(tokenString string) (int64, error)

	// ValidateRefresh checks a refresh token and returns the user id it carries.
	ValidateRefresh(tokenString string) (int64, error)
}
