package impl

import (
	"context"
	"io"
	"log/slog"

	"gachigage/internal/domain/entity"
	"gachigage/internal/domain/repository"
	"gachigage/internal/domain/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGateway implements service.BackendGateway with overridable funcs.
type fakeGateway struct {
	signupFn                func(ctx context.Context, input service.SignupInput) error
	checkIdentifierFn       func(ctx context.Context, identifier string) (bool, error)
	loginFn                 func(ctx context.Context, identifier, password string) (*service.LoginOutput, error)
	fetchUserFn             func(ctx context.Context) (*entity.User, error)
	updateNicknameFn        func(ctx context.Context, nickname string) error
	updateRegionFn          func(ctx context.Context, sido, gugun string) error
	recommendationHomeFn    func(ctx context.Context) (*entity.RecommendationHome, error)
	requestRecommendationFn func(ctx context.Context, req entity.RecommendationRequest, withWeather bool) (*entity.RecommendationResult, error)
	saveRecommendationFn    func(ctx context.Context, result entity.RecommendationResult) error
	missionBoardFn          func(ctx context.Context) (*entity.MissionBoard, error)
	verifyReceiptFn         func(ctx context.Context, missionID int64, fields entity.ReceiptFields) error
	createReviewFn          func(ctx context.Context, missionID int64, tags []int, content *string) error
	reviewsFn               func(ctx context.Context) ([]*entity.Review, error)
	deleteReviewFn          func(ctx context.Context, reviewID int64) error
	couponsFn               func(ctx context.Context) ([]*entity.Coupon, error)
}

func (f *fakeGateway) Signup(ctx context.Context, input service.SignupInput) error {
	return f.signupFn(ctx, input)
}

func (f *fakeGateway) CheckIdentifier(ctx context.Context, identifier string) (bool, error) {
	return f.checkIdentifierFn(ctx, identifier)
}

func (f *fakeGateway) Login(ctx context.Context, identifier, password string) (*service.LoginOutput, error) {
	return f.loginFn(ctx, identifier, password)
}

func (f *fakeGateway) FetchUser(ctx context.Context) (*entity.User, error) {
	return f.fetchUserFn(ctx)
}

func (f *fakeGateway) UpdateNickname(ctx context.Context, nickname string) error {
	return f.updateNicknameFn(ctx, nickname)
}

func (f *fakeGateway) UpdateRegion(ctx context.Context, sido, gugun string) error {
	return f.updateRegionFn(ctx, sido, gugun)
}

func (f *fakeGateway) RecommendationHome(ctx context.Context) (*entity.RecommendationHome, error) {
	return f.recommendationHomeFn(ctx)
}

func (f *fakeGateway) RequestRecommendation(ctx context.Context, req entity.RecommendationRequest, withWeather bool) (*entity.RecommendationResult, error) {
	return f.requestRecommendationFn(ctx, req, withWeather)
}

func (f *fakeGateway) SaveRecommendation(ctx context.Context, result entity.RecommendationResult) error {
	return f.saveRecommendationFn(ctx, result)
}

func (f *fakeGateway) MissionBoard(ctx context.Context) (*entity.MissionBoard, error) {
	return f.missionBoardFn(ctx)
}

func (f *fakeGateway) VerifyReceipt(ctx context.Context, missionID int64, fields entity.ReceiptFields) error {
	return f.verifyReceiptFn(ctx, missionID, fields)
}

func (f *fakeGateway) CreateReview(ctx context.Context, missionID int64, tags []int, content *string) error {
	return f.createReviewFn(ctx, missionID, tags, content)
}

func (f *fakeGateway) Reviews(ctx context.Context) ([]*entity.Review, error) {
	return f.reviewsFn(ctx)
}

func (f *fakeGateway) DeleteReview(ctx context.Context, reviewID int64) error {
	return f.deleteReviewFn(ctx, reviewID)
}

func (f *fakeGateway) Coupons(ctx context.Context) ([]*entity.Coupon, error) {
	return f.couponsFn(ctx)
}

// memorySessionRepo is an in-memory session store for tests.
type memorySessionRepo struct {
	session *entity.Session
}

func (r *memorySessionRepo) Find(_ context.Context) (*entity.Session, error) {
	if r.session == nil {
		return nil, repository.ErrSessionNotFound
	}
	copied := *r.session
	return &copied, nil
}

func (r *memorySessionRepo) Save(_ context.Context, session *entity.Session) error {
	copied := *session
	r.session = &copied
	return nil
}

func (r *memorySessionRepo) Clear(_ context.Context) error {
	r.session = nil
	return nil
}

// memoryCacheRepo is an in-memory recommendation cache for tests.
type memoryCacheRepo struct {
	cache *entity.RecommendationCache
}

func (r *memoryCacheRepo) FindLatest(_ context.Context) (*entity.RecommendationCache, error) {
	if r.cache == nil {
		return nil, repository.ErrRecommendationCacheNotFound
	}
	copied := *r.cache
	return &copied, nil
}

func (r *memoryCacheRepo) Save(_ context.Context, cache *entity.RecommendationCache) error {
	copied := *cache
	r.cache = &copied
	return nil
}

func (r *memoryCacheRepo) Clear(_ context.Context) error {
	r.cache = nil
	return nil
}

// memoryDraftRepo is an in-memory receipt draft store for tests.
type memoryDraftRepo struct {
	drafts map[int64]*entity.ReceiptDraft
}

func newMemoryDraftRepo() *memoryDraftRepo {
	return &memoryDraftRepo{drafts: make(map[int64]*entity.ReceiptDraft)}
}

func (r *memoryDraftRepo) FindByMission(_ context.Context, missionID int64) (*entity.ReceiptDraft, error) {
	draft, ok := r.drafts[missionID]
	if !ok {
		return nil, repository.ErrReceiptDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (r *memoryDraftRepo) Save(_ context.Context, draft *entity.ReceiptDraft) error {
	copied := *draft
	r.drafts[draft.MissionID] = &copied
	return nil
}

func (r *memoryDraftRepo) Delete(_ context.Context, missionID int64) error {
	delete(r.drafts, missionID)
	return nil
}

// memoryPreferenceRepo is an in-memory preference store for tests.
type memoryPreferenceRepo struct {
	couponRead bool
}

func (r *memoryPreferenceRepo) CouponRead(_ context.Context) (bool, error) {
	return r.couponRead, nil
}

func (r *memoryPreferenceRepo) SetCouponRead(_ context.Context, read bool) error {
	r.couponRead = read
	return nil
}

// fakeRecognizer returns a fixed text or error.
type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) Recognize(_ context.Context, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakeExtractor returns fixed fields.
type fakeExtractor struct {
	fields entity.ReceiptFields
}

func (f *fakeExtractor) ExtractFields(_ string) entity.ReceiptFields {
	return f.fields
}

// fakeQRCode records generated coupon ids.
type fakeQRCode struct {
	generated []int64
}

func (f *fakeQRCode) GenerateCouponQR(couponID int64) ([]byte, error) {
	f.generated = append(f.generated, couponID)
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (f *fakeQRCode) ParseCouponQR(_ string) (int64, error) {
	return 0, nil
}
