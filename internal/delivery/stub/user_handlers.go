package stub

import (
	"log/slog"
	"net/http"
	"time"

	"gachigage/config"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/service"
	"gachigage/internal/infra/persistence/model"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// regionChangeCooldown is how long a user must wait between region changes.
const regionChangeCooldown = 2 * 30 * 24 * time.Hour

type handlers struct {
	db     *gorm.DB
	tokens service.TokenService
	hasher service.PasswordHasher
	cfg    *config.Config
	logger *slog.Logger
}

type signupPayload struct {
	Identify       string `json:"identify"`
	Password       string `json:"password"`
	Username       string `json:"username"`
	Sido           string `json:"sido"`
	Gugun          string `json:"gugun"`
	MarketingAgree *bool  `json:"marketing_agree"`
}

func (h *handlers) signup(c echo.Context) error {
	var input signupPayload
	if err := c.Bind(&input); err != nil {
		return newAPIError(http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if input.Identify == "" || input.Password == "" || input.Username == "" {
		return newAPIError(http.StatusBadRequest, "필수 항목이 누락되었습니다.")
	}

	var count int64
	if err := h.db.WithContext(c.Request().Context()).
		Model(&model.StubUserModel{}).
		Where("identify = ?", input.Identify).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check identifier")
	}
	if count > 0 {
		return newAPIError(http.StatusConflict, "이미 사용 중인 아이디입니다.")
	}

	hash, err := h.hasher.Hash(input.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	user := model.StubUserModel{
		Identify:       input.Identify,
		PasswordHash:   hash,
		Username:       input.Username,
		Sido:           input.Sido,
		Gugun:          input.Gugun,
		MarketingAgree: input.MarketingAgree,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&user).Error; err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	// Every new account starts with a welcome coupon in the wallet.
	welcome := model.StubCouponModel{
		UserID:         user.ID,
		StoreName:      "슈니만두",
		DiscountAmount: 3000,
		ExpiresAt:      time.Now().AddDate(0, 1, 0),
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&welcome).Error; err != nil {
		h.logger.Warn("Failed to grant welcome coupon", slog.Any("error", err))
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "가입이 완료되었습니다."})
}

type checkPayload struct {
	Identify string `json:"identify"`
}

func (h *handlers) checkIdentifier(c echo.Context) error {
	var input checkPayload
	if err := c.Bind(&input); err != nil {
		return newAPIError(http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}

	if h.cfg.Stub.IdentifierAlwaysAvailable {
		return c.JSON(http.StatusOK, map[string]bool{"isDuplicate": false})
	}

	var count int64
	if err := h.db.WithContext(c.Request().Context()).
		Model(&model.StubUserModel{}).
		Where("identify = ?", input.Identify).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check identifier")
	}

	return c.JSON(http.StatusOK, map[string]bool{"isDuplicate": count > 0})
}

type loginPayload struct {
	Identify string `json:"identify"`
	Password string `json:"password"`
}

func (h *handlers) login(c echo.Context) error {
	var input loginPayload
	if err := c.Bind(&input); err != nil {
		return newAPIError(http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}

	var user model.StubUserModel
	err := h.db.WithContext(c.Request().Context()).
		Where("identify = ?", input.Identify).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAPIError(http.StatusUnauthorized, "아이디 또는 비밀번호가 올바르지 않습니다.")
		}

		return errors.Wrap(err, "failed to load user")
	}
	if !h.hasher.Check(input.Password, user.PasswordHash) {
		return newAPIError(http.StatusUnauthorized, "아이디 또는 비밀번호가 올바르지 않습니다.")
	}

	access, refresh, err := h.tokens.GenerateTokens(user.ID)
	if err != nil {
		return errors.Wrap(err, "failed to generate tokens")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
		"user_id":       user.ID,
	})
}

// refresh validates the refresh token sent as a bearer credential and issues
// a new access token. The refresh token itself does not rotate.
func (h *handlers) refresh(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	token := ""
	if len(header) > len("Bearer ") {
		token = header[len("Bearer "):]
	}
	if token == "" {
		return newAPIError(http.StatusUnauthorized, "인증 토큰이 필요합니다.")
	}

	userID, err := h.tokens.ValidateRefresh(token)
	if err != nil {
		return newAPIError(http.StatusUnauthorized, "인증 토큰이 유효하지 않습니다.")
	}

	access, _, err := h.tokens.GenerateTokens(userID)
	if err != nil {
		return errors.Wrap(err, "failed to generate access token")
	}

	return c.JSON(http.StatusOK, map[string]string{"accessToken": access})
}

func (h *handlers) loadUser(c echo.Context) (*model.StubUserModel, error) {
	var user model.StubUserModel
	err := h.db.WithContext(c.Request().Context()).First(&user, currentUserID(c)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newAPIError(http.StatusUnauthorized, "사용자를 찾을 수 없습니다.")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return &user, nil
}

func (h *handlers) user(c echo.Context) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	monthly, err := h.monthlyScores(c, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"sido":     user.Sido,
		"gugun":    user.Gugun,
		"type":     h.tasteType(c, user.ID),
		"monthly":  monthly,
	})
}

type monthlyEntry struct {
	Month string `json:"month"`
	Score int    `json:"score"`
}

func (h *handlers) monthlyScores(c echo.Context, userID int64) ([]monthlyEntry, error) {
	var verifications []model.StubVerificationModel
	if err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&verifications).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load verifications")
	}

	totals := make(map[string]int)
	order := make([]string, 0)
	for _, v := range verifications {
		month := v.CreatedAt.Format("2006-01")
		if _, seen := totals[month]; !seen {
			order = append(order, month)
		}
		totals[month] += v.Score
	}

	monthly := make([]monthlyEntry, 0, len(order))
	for _, month := range order {
		monthly = append(monthly, monthlyEntry{Month: month, Score: totals[month]})
	}

	return monthly, nil
}

// tasteType unlocks a profile label once enough recommendations were
// confirmed; before that it stays null.
func (h *handlers) tasteType(c echo.Context, userID int64) *string {
	var confirmed int64
	if err := h.db.WithContext(c.Request().Context()).
		Model(&model.StubRecommendationModel{}).
		Where("user_id = ? AND confirmed = ?", userID, true).
		Count(&confirmed).Error; err != nil {
		return nil
	}
	if confirmed < 5 {
		return nil
	}

	label := "동네 미식가"

	return &label
}

type updateNickPayload struct {
	Username string `json:"username"`
}

func (h *handlers) updateNickname(c echo.Context) error {
	var input updateNickPayload
	if err := c.Bind(&input); err != nil || input.Username == "" {
		return newAPIError(http.StatusBadRequest, "닉네임이 올바르지 않습니다.")
	}

	if err := h.db.WithContext(c.Request().Context()).
		Model(&model.StubUserModel{}).
		Where("id = ?", currentUserID(c)).
		Update("username", input.Username).Error; err != nil {
		return errors.Wrap(err, "failed to update nickname")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "닉네임이 변경되었습니다."})
}

type updateRegionPayload struct {
	Sido  string `json:"sido"`
	Gugun string `json:"gugun"`
}

func (h *handlers) updateRegion(c echo.Context) error {
	var input updateRegionPayload
	if err := c.Bind(&input); err != nil || input.Sido == "" || input.Gugun == "" {
		return newAPIError(http.StatusBadRequest, "지역이 올바르지 않습니다.")
	}

	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	if user.RegionChangedAt != nil && time.Since(*user.RegionChangedAt) < regionChangeCooldown {
		return newAPIError(http.StatusConflict, domainerrors.RegionChangeCooldownMessage)
	}

	now := time.Now()
	if err := h.db.WithContext(c.Request().Context()).
		Model(&model.StubUserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"sido":              input.Sido,
			"gugun":             input.Gugun,
			"region_changed_at": &now,
		}).Error; err != nil {
		return errors.Wrap(err, "failed to update region")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "지역이 변경되었습니다."})
}
