package stub

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"gachigage/internal/infra/persistence/model"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (h *handlers) missionBoard(c echo.Context) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var missions []model.StubMissionModel
	if err := h.db.WithContext(ctx).Order("id").Find(&missions).Error; err != nil {
		return errors.Wrap(err, "failed to load missions")
	}

	var verifiedIDs []int64
	if err := h.db.WithContext(ctx).
		Model(&model.StubVerificationModel{}).
		Where("user_id = ?", user.ID).
		Pluck("mission_id", &verifiedIDs).Error; err != nil {
		return errors.Wrap(err, "failed to load verifications")
	}
	verified := make(map[int64]bool, len(verifiedIDs))
	for _, id := range verifiedIDs {
		verified[id] = true
	}

	missionList := make([]map[string]any, 0, len(missions))
	for _, mission := range missions {
		missionList = append(missionList, map[string]any{
			"mission_id": mission.ID,
			"title":      mission.Title,
			"body":       mission.Body,
			"score":      mission.Score,
			"special":    mission.Special,
			"verified":   verified[mission.ID],
		})
	}

	myScore, myRank, err := h.weeklyRanking(c, user.ID)
	if err != nil {
		return err
	}

	var regionScore int64
	if err := h.db.WithContext(ctx).
		Model(&model.StubVerificationModel{}).
		Select("COALESCE(SUM(score), 0)").
		Scan(&regionScore).Error; err != nil {
		return errors.Wrap(err, "failed to total region score")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"gugun":    user.Gugun,
		"region":   map[string]any{"rank": 2, "score": regionScore},
		"my":       map[string]any{"rank": myRank, "score": myScore},
		"missions": missionList,
	})
}

// weeklyRanking totals the user's verification scores and ranks them against
// every other user's total.
func (h *handlers) weeklyRanking(c echo.Context, userID int64) (score int64, rank int, err error) {
	ctx := c.Request().Context()

	if err := h.db.WithContext(ctx).
		Model(&model.StubVerificationModel{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&score).Error; err != nil {
		return 0, 0, errors.Wrap(err, "failed to total user score")
	}

	var higher int64
	if err := h.db.WithContext(ctx).
		Table("(SELECT user_id, SUM(score) AS total FROM stub_verifications GROUP BY user_id) AS totals").
		Where("totals.total > ?", score).
		Count(&higher).Error; err != nil {
		return 0, 0, errors.Wrap(err, "failed to rank user score")
	}

	return score, int(higher) + 1, nil
}

type missionCheckPayload struct {
	MissionID  int64  `json:"mission_id"`
	Address    string `json:"address"`
	Name       string `json:"name"`
	VisitedAt  string `json:"visited_at"`
	PhoneNum   string `json:"phone_num"`
	TotalPrice int    `json:"total_price"`
}

func (h *handlers) missionCheck(c echo.Context) error {
	var input missionCheckPayload
	if err := c.Bind(&input); err != nil {
		return newAPIError(http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if input.Name == "" || strings.Contains(input.Name, "정보 없음") {
		return newAPIError(http.StatusBadRequest, "영수증 정보가 올바르지 않습니다.")
	}
	userID := currentUserID(c)
	ctx := c.Request().Context()

	var mission model.StubMissionModel
	if err := h.db.WithContext(ctx).First(&mission, input.MissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAPIError(http.StatusNotFound, "해당 미션을 찾을 수 없습니다.")
		}

		return errors.Wrap(err, "failed to load mission")
	}

	var count int64
	if err := h.db.WithContext(ctx).
		Model(&model.StubVerificationModel{}).
		Where("user_id = ? AND mission_id = ?", userID, mission.ID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check verification")
	}
	if count > 0 {
		return newAPIError(http.StatusConflict, "이미 인증한 미션입니다.")
	}

	verification := model.StubVerificationModel{
		UserID:    userID,
		MissionID: mission.ID,
		StoreName: input.Name,
		Score:     mission.Score,
	}
	if err := h.db.WithContext(ctx).Create(&verification).Error; err != nil {
		return errors.Wrap(err, "failed to record verification")
	}

	// Special missions come with a coupon reward.
	if mission.Special {
		coupon := model.StubCouponModel{
			UserID:         userID,
			StoreName:      input.Name,
			DiscountAmount: 3000,
			ExpiresAt:      time.Now().AddDate(0, 1, 0),
		}
		if err := h.db.WithContext(ctx).Create(&coupon).Error; err != nil {
			return errors.Wrap(err, "failed to grant coupon")
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "영수증 인증이 완료되었습니다."})
}

type reviewPayload struct {
	MissionID int64   `json:"missionId"`
	Tags      []int   `json:"tags"`
	Content   *string `json:"content"`
}

func (h *handlers) createReview(c echo.Context) error {
	var input reviewPayload
	if err := c.Bind(&input); err != nil {
		return newAPIError(http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if len(input.Tags) == 0 {
		return newAPIError(http.StatusBadRequest, "태그를 선택해 주세요.")
	}
	userID := currentUserID(c)
	ctx := c.Request().Context()

	// Reviews are only allowed on verified missions.
	var verification model.StubVerificationModel
	err := h.db.WithContext(ctx).
		Where("user_id = ? AND mission_id = ?", userID, input.MissionID).
		First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAPIError(http.StatusBadRequest, "인증한 미션에만 리뷰를 남길 수 있습니다.")
		}

		return errors.Wrap(err, "failed to load verification")
	}

	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		tags = append(tags, strconv.Itoa(tag))
	}

	review := model.StubReviewModel{
		UserID:    userID,
		MissionID: input.MissionID,
		StoreName: verification.StoreName,
		Tags:      strings.Join(tags, ","),
		Content:   input.Content,
	}
	if err := h.db.WithContext(ctx).Create(&review).Error; err != nil {
		return errors.Wrap(err, "failed to create review")
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "리뷰가 등록되었습니다."})
}

func (h *handlers) listReviews(c echo.Context) error {
	var reviews []model.StubReviewModel
	if err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ?", currentUserID(c)).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return errors.Wrap(err, "failed to load reviews")
	}

	out := make([]map[string]any, 0, len(reviews))
	for _, review := range reviews {
		tags := make([]int, 0)
		for _, raw := range strings.Split(review.Tags, ",") {
			if tag, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				tags = append(tags, tag)
			}
		}

		out = append(out, map[string]any{
			"review_id":  review.ID,
			"missionId":  review.MissionID,
			"store_name": review.StoreName,
			"tags":       tags,
			"content":    review.Content,
			"created_at": review.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, out)
}

func (h *handlers) deleteReview(c echo.Context) error {
	reviewID, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil {
		return newAPIError(http.StatusBadRequest, "리뷰 ID가 올바르지 않습니다.")
	}

	result := h.db.WithContext(c.Request().Context()).
		Where("id = ? AND user_id = ?", reviewID, currentUserID(c)).
		Delete(&model.StubReviewModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return newAPIError(http.StatusNotFound, "해당 리뷰를 찾을 수 없습니다.")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "리뷰가 삭제되었습니다."})
}

func (h *handlers) coupons(c echo.Context) error {
	var coupons []model.StubCouponModel
	if err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ?", currentUserID(c)).
		Order("expires_at").
		Find(&coupons).Error; err != nil {
		return errors.Wrap(err, "failed to load coupons")
	}

	out := make([]map[string]any, 0, len(coupons))
	for _, coupon := range coupons {
		out = append(out, map[string]any{
			"coupon_id":       coupon.ID,
			"store_name":      coupon.StoreName,
			"discount_amount": coupon.DiscountAmount,
			"expires_at":      coupon.ExpiresAt,
			"image_url":       coupon.ImageURL,
		})
	}

	return c.JSON(http.StatusOK, out)
}
