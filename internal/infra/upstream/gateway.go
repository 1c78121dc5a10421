package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/service"
	"gachigage/internal/errors"
)

// --- Wire payloads ---

type signupRequest struct {
	Identify       string `json:"identify"`
	Password       string `json:"password"`
	Username       string `json:"username"`
	Sido           string `json:"sido"`
	Gugun          string `json:"gugun"`
	MarketingAgree *bool  `json:"marketing_agree,omitempty"`
}

type checkIdentifierRequest struct {
	Identify string `json:"identify"`
}

type checkIdentifierResponse struct {
	IsDuplicate bool `json:"isDuplicate"`
}

type loginRequest struct {
	Identify string `json:"identify"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       int64  `json:"user_id"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type userResponse struct {
	UserID   int64                 `json:"user_id"`
	Username string                `json:"username"`
	Sido     string                `json:"sido"`
	Gugun    string                `json:"gugun"`
	Type     *string               `json:"type"`
	Monthly  []monthlyScorePayload `json:"monthly"`
}

type monthlyScorePayload struct {
	Month string `json:"month"`
	Score int    `json:"score"`
}

type updateNicknameRequest struct {
	Username string `json:"username"`
}

type updateRegionRequest struct {
	Sido  string `json:"sido"`
	Gugun string `json:"gugun"`
}

type recommendationHomeResponse struct {
	Username       string         `json:"username"`
	Gugun          string         `json:"gugun"`
	TodayRecommend storesPayload  `json:"today_recommend"`
	PastRecommend  []storePayload `json:"past_recommend"`
}

type storesPayload struct {
	Stores []storePayload `json:"stores"`
}

type storePayload struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	URL      string `json:"url"`
}

type recommendationRequest struct {
	Region        []string `json:"region"`
	PlaceCategory string   `json:"place_category"`
	PlaceMood     []string `json:"place_mood"`
	Duplicate     bool     `json:"duplicate"`
}

type recommendationResponse struct {
	PlaceMood []string                  `json:"place_mood"`
	Category  string                    `json:"category"`
	Stores    []recommendedStorePayload `json:"stores"`
}

type recommendedStorePayload struct {
	Name        string `json:"name"`
	AddressRoad string `json:"address_road"`
	AddressEx   string `json:"address_ex"`
	Phone       string `json:"phone"`
	URL         string `json:"url"`
}

type missionBoardResponse struct {
	Gugun    string           `json:"gugun"`
	Region   rankingPayload   `json:"region"`
	My       rankingPayload   `json:"my"`
	Missions []missionPayload `json:"missions"`
}

type rankingPayload struct {
	Rank  int `json:"rank"`
	Score int `json:"score"`
}

type missionPayload struct {
	MissionID int64  `json:"mission_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Score     int    `json:"score"`
	Special   bool   `json:"special"`
	Verified  bool   `json:"verified"`
}

type verifyReceiptRequest struct {
	MissionID  int64  `json:"mission_id"`
	Address    string `json:"address"`
	Name       string `json:"name"`
	VisitedAt  string `json:"visited_at"`
	PhoneNum   string `json:"phone_num"`
	TotalPrice int    `json:"total_price"`
}

type createReviewRequest struct {
	MissionID int64   `json:"missionId"`
	Tags      []int   `json:"tags"`
	Content   *string `json:"content"`
}

type reviewPayload struct {
	ReviewID  int64     `json:"review_id"`
	MissionID int64     `json:"missionId"`
	StoreName string    `json:"store_name"`
	Tags      []int     `json:"tags"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type couponPayload struct {
	CouponID       int64     `json:"coupon_id"`
	StoreName      string    `json:"store_name"`
	DiscountAmount int       `json:"discount_amount"`
	ExpiresAt      time.Time `json:"expires_at"`
	ImageURL       string    `json:"image_url"`
}

// --- BackendGateway implementation ---

// Signup registers a new account. No session is required or created.
func (c *client) Signup(ctx context.Context, input service.SignupInput) error {
	req := signupRequest{
		Identify:       input.Identifier,
		Password:       input.Password,
		Username:       input.Username,
		Sido:           input.Sido,
		Gugun:          input.Gugun,
		MarketingAgree: input.MarketingAgree,
	}

	err := c.doJSON(ctx, http.MethodPost, "/user/signup", req, nil, callOptions{})
	var upstreamErr *domainerrors.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.HTTPCode() == http.StatusConflict {
		return domainerrors.ErrIdentifierTaken
	}

	return err
}

// CheckIdentifier asks the backend whether an identifier is still available.
func (c *client) CheckIdentifier(ctx context.Context, identifier string) (bool, error) {
	var resp checkIdentifierResponse
	err := c.doJSON(ctx, http.MethodPost, "/user/check", checkIdentifierRequest{Identify: identifier}, &resp, callOptions{})
	if err != nil {
		return false, err
	}

	return !resp.IsDuplicate, nil
}

// Login exchanges credentials for a token pair.
func (c *client) Login(ctx context.Context, identifier, password string) (*service.LoginOutput, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/user/login", loginRequest{Identify: identifier, Password: password}, &resp, callOptions{})
	if err != nil {
		var upstreamErr *domainerrors.UpstreamError
		if errors.As(err, &upstreamErr) &&
			(upstreamErr.HTTPCode() == http.StatusUnauthorized || upstreamErr.HTTPCode() == http.StatusBadRequest) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, err
	}

	return &service.LoginOutput{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UserID:       resp.UserID,
	}, nil
}

// FetchUser loads the profile of the logged-in user.
func (c *client) FetchUser(ctx context.Context) (*entity.User, error) {
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user", nil, &resp, callOptions{authenticated: true}); err != nil {
		return nil, err
	}

	monthly := make([]entity.MonthlyScore, 0, len(resp.Monthly))
	for _, m := range resp.Monthly {
		monthly = append(monthly, entity.MonthlyScore{Month: m.Month, Score: m.Score})
	}

	return &entity.User{
		ID:       resp.UserID,
		Username: resp.Username,
		Sido:     resp.Sido,
		Gugun:    resp.Gugun,
		Type:     resp.Type,
		Monthly:  monthly,
	}, nil
}

// UpdateNickname changes the display name.
func (c *client) UpdateNickname(ctx context.Context, nickname string) error {
	return c.doJSON(ctx, http.MethodPatch, "/user/update/nick",
		updateNicknameRequest{Username: nickname}, nil, callOptions{authenticated: true})
}

// UpdateRegion changes the registered district. The backend enforces the
// two-month cooldown and signals it through its message text, which
// responseError already maps to ErrRegionChangeCooldown.
func (c *client) UpdateRegion(ctx context.Context, sido, gugun string) error {
	return c.doJSON(ctx, http.MethodPatch, "/user/update/region",
		updateRegionRequest{Sido: sido, Gugun: gugun}, nil, callOptions{authenticated: true})
}

// RecommendationHome loads the recommendation tab payload.
func (c *client) RecommendationHome(ctx context.Context) (*entity.RecommendationHome, error) {
	var resp recommendationHomeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/recommend", nil, &resp, callOptions{authenticated: true}); err != nil {
		return nil, err
	}

	home := entity.RecommendationHome{
		Username:       resp.Username,
		Gugun:          resp.Gugun,
		TodayStores:    make([]entity.Store, 0, len(resp.TodayRecommend.Stores)),
		PastRecommends: make([]entity.Store, 0, len(resp.PastRecommend)),
	}
	for _, s := range resp.TodayRecommend.Stores {
		home.TodayStores = append(home.TodayStores, toStore(s))
	}
	for _, s := range resp.PastRecommend {
		home.PastRecommends = append(home.PastRecommends, toStore(s))
	}

	return &home, nil
}

// RequestRecommendation submits the assembled wizard request. An answer
// without stores means nothing matched the filters.
func (c *client) RequestRecommendation(ctx context.Context, req entity.RecommendationRequest, withWeather bool) (*entity.RecommendationResult, error) {
	opts := callOptions{authenticated: true}
	if withWeather {
		opts.query = url.Values{"weather": []string{"true"}}
	}

	var resp recommendationResponse
	err := c.doJSON(ctx, http.MethodPost, "/recommend/today", recommendationRequest{
		Region:        req.Region,
		PlaceCategory: req.PlaceCategory,
		PlaceMood:     req.PlaceMood,
		Duplicate:     req.Duplicate,
	}, &resp, opts)
	if err != nil {
		var upstreamErr *domainerrors.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.HTTPCode() == http.StatusNotFound {
			return nil, domainerrors.ErrRecommendationEmpty
		}

		return nil, err
	}
	if len(resp.Stores) == 0 {
		return nil, domainerrors.ErrRecommendationEmpty
	}

	result := entity.RecommendationResult{
		Category:  resp.Category,
		PlaceMood: resp.PlaceMood,
		Stores:    make([]entity.RecommendedStore, 0, len(resp.Stores)),
	}
	for _, s := range resp.Stores {
		result.Stores = append(result.Stores, entity.RecommendedStore{
			Name:        s.Name,
			AddressRoad: s.AddressRoad,
			AddressEx:   s.AddressEx,
			Phone:       s.Phone,
			URL:         s.URL,
		})
	}

	return &result, nil
}

// SaveRecommendation confirms the presented result as today's pick.
func (c *client) SaveRecommendation(ctx context.Context, result entity.RecommendationResult) error {
	req := recommendationResponse{
		PlaceMood: result.PlaceMood,
		Category:  result.Category,
		Stores:    make([]recommendedStorePayload, 0, len(result.Stores)),
	}
	for _, s := range result.Stores {
		req.Stores = append(req.Stores, recommendedStorePayload{
			Name:        s.Name,
			AddressRoad: s.AddressRoad,
			AddressEx:   s.AddressEx,
			Phone:       s.Phone,
			URL:         s.URL,
		})
	}

	return c.doJSON(ctx, http.MethodPost, "/recommend/save", req, nil, callOptions{authenticated: true})
}

// MissionBoard loads the mission tab payload.
func (c *client) MissionBoard(ctx context.Context) (*entity.MissionBoard, error) {
	var resp missionBoardResponse
	if err := c.doJSON(ctx, http.MethodGet, "/mission", nil, &resp, callOptions{authenticated: true}); err != nil {
		return nil, err
	}

	board := entity.MissionBoard{
		Gugun:    resp.Gugun,
		Region:   entity.Ranking{Rank: resp.Region.Rank, Score: resp.Region.Score},
		Me:       entity.Ranking{Rank: resp.My.Rank, Score: resp.My.Score},
		Missions: make([]entity.Mission, 0, len(resp.Missions)),
	}
	for _, m := range resp.Missions {
		board.Missions = append(board.Missions, entity.Mission{
			ID:       m.MissionID,
			Title:    m.Title,
			Body:     m.Body,
			Score:    m.Score,
			Special:  m.Special,
			Verified: m.Verified,
		})
	}

	return &board, nil
}

// VerifyReceipt submits the corrected receipt fields for a mission. The
// backend cross-checks the receipt against the mission's store, which can take
// a while, so this call runs on the long-timeout client.
func (c *client) VerifyReceipt(ctx context.Context, missionID int64, fields entity.ReceiptFields) error {
	req := verifyReceiptRequest{
		MissionID:  missionID,
		Address:    fields.Address,
		Name:       fields.StoreName,
		VisitedAt:  fields.VisitedAt,
		PhoneNum:   fields.Phone,
		TotalPrice: fields.TotalPriceNumber(),
	}

	return c.doJSON(ctx, http.MethodPost, "/mission/check", req, nil,
		callOptions{authenticated: true, httpClient: c.receiptHTTP})
}

// CreateReview posts a review for a verified mission.
func (c *client) CreateReview(ctx context.Context, missionID int64, tags []int, content *string) error {
	return c.doJSON(ctx, http.MethodPost, "/mission/review",
		createReviewRequest{MissionID: missionID, Tags: tags, Content: content},
		nil, callOptions{authenticated: true})
}

// Reviews lists the user's reviews.
func (c *client) Reviews(ctx context.Context) ([]*entity.Review, error) {
	var resp []reviewPayload
	if err := c.doJSON(ctx, http.MethodGet, "/mission/review", nil, &resp, callOptions{authenticated: true}); err != nil {
		return nil, err
	}

	reviews := make([]*entity.Review, 0, len(resp))
	for _, r := range resp {
		reviews = append(reviews, &entity.Review{
			ID:        r.ReviewID,
			MissionID: r.MissionID,
			StoreName: r.StoreName,
			Tags:      r.Tags,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
		})
	}

	return reviews, nil
}

// DeleteReview removes one of the user's reviews.
func (c *client) DeleteReview(ctx context.Context, reviewID int64) error {
	err := c.doJSON(ctx, http.MethodDelete, "/mission/review/delete/"+strconv.FormatInt(reviewID, 10),
		nil, nil, callOptions{authenticated: true})
	var upstreamErr *domainerrors.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.HTTPCode() == http.StatusNotFound {
		return domainerrors.ErrReviewNotFound
	}

	return err
}

// Coupons lists the coupon wallet.
func (c *client) Coupons(ctx context.Context) ([]*entity.Coupon, error) {
	var resp []couponPayload
	if err := c.doJSON(ctx, http.MethodGet, "/coupon", nil, &resp, callOptions{authenticated: true}); err != nil {
		return nil, err
	}

	coupons := make([]*entity.Coupon, 0, len(resp))
	for _, cp := range resp {
		coupons = append(coupons, &entity.Coupon{
			ID:             cp.CouponID,
			StoreName:      cp.StoreName,
			DiscountAmount: cp.DiscountAmount,
			ExpiresAt:      cp.ExpiresAt,
			ImageURL:       cp.ImageURL,
		})
	}

	return coupons, nil
}

func toStore(s storePayload) entity.Store {
	return entity.Store{
		Category: s.Category,
		Name:     s.Name,
		Address:  s.Address,
		URL:      s.URL,
	}
}
