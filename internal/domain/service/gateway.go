package service

import (
	"context"

	"gachigage/internal/domain/entity"
)

// SignupInput is the account-creation payload assembled by the signup wizard.
type SignupInput struct {
	Identifier     string
	Password       string
	Username       string
	Sido           string
	Gugun          string
	MarketingAgree *bool
}

// LoginOutput is the credential triple issued by the backend on login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	UserID       int64
}

// BackendGateway is the typed client for the remote 가치가게 REST API. All
// methods except Signup, CheckIdentifier and Login require a persisted
// session; the implementation attaches the bearer token and transparently
// performs at most one token refresh on a 401 before failing with
// ErrSessionExpired.
type BackendGateway interface {
	Signup(ctx context.Context, input SignupInput) error
	CheckIdentifier(ctx context.Context, identifier string) (available bool, err error)
	Login(ctx context.Context, identifier, password string) (*LoginOutput, error)

	FetchUser(ctx context.Context) (*entity.User, error)
	UpdateNickname(ctx context.Context, nickname string) error
	UpdateRegion(ctx context.Context, sido, gugun string) error

	RecommendationHome(ctx context.Context) (*entity.RecommendationHome, error)
	RequestRecommendation(ctx context.Context, req entity.RecommendationRequest, withWeather bool) (*entity.RecommendationResult, error)
	SaveRecommendation(ctx context.Context, result entity.RecommendationResult) error

	MissionBoard(ctx context.Context) (*entity.MissionBoard, error)
	VerifyReceipt(ctx context.Context, missionID int64, fields entity.ReceiptFields) error

	CreateReview(ctx context.Context, missionID int64, tags []int, content *string) error
	Reviews(ctx context.Context) ([]*entity.Review, error)
	DeleteReview(ctx context.Context, reviewID int64) error

	Coupons(ctx context.Context) ([]*entity.Coupon, error)
}
