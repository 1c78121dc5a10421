package stub

import (
	"net/http"
	"strings"
	"time"

	"gachigage/internal/infra/persistence/model"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// recommendationLimit caps how many stores one submission returns.
const recommendationLimit = 3

type storeEntry struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	URL      string `json:"url"`
}

func (h *handlers) recommendationHome(c echo.Context) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	var confirmed []model.StubRecommendationModel
	if err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ? AND confirmed = ?", user.ID, true).
		Order("created_at desc").
		Find(&confirmed).Error; err != nil {
		return errors.Wrap(err, "failed to load recommendations")
	}

	today := make([]storeEntry, 0)
	past := make([]storeEntry, 0)
	startOfDay := time.Now().Truncate(24 * time.Hour)
	for _, rec := range confirmed {
		entry := storeEntry{
			Category: rec.Category,
			Name:     rec.Name,
			Address:  rec.Address,
			URL:      rec.URL,
		}
		if rec.CreatedAt.After(startOfDay) {
			today = append(today, entry)
		} else {
			past = append(past, entry)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"username":        user.Username,
		"gugun":           user.Gugun,
		"today_recommend": map[string]any{"stores": today},
		"past_recommend":  past,
	})
}

type recommendTodayPayload struct {
	Region        []string `json:"region"`
	PlaceCategory string   `json:"place_category"`
	PlaceMood     []string `json:"place_mood"`
	Duplicate     bool     `json:"duplicate"`
}

func (h *handlers) recommendToday(c echo.Context) error {
	var input recommendTodayPayload
	if err := c.Bind(&input); err != nil {
		return newAPIError(http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if len(input.Region) == 0 || input.PlaceCategory == "" {
		return newAPIError(http.StatusBadRequest, "지역과 카테고리를 선택해 주세요.")
	}
	userID := currentUserID(c)

	query := h.db.WithContext(c.Request().Context()).
		Where("neighborhood IN ?", input.Region).
		Where("category = ?", input.PlaceCategory)

	if !input.Duplicate {
		var seenIDs []int64
		if err := h.db.WithContext(c.Request().Context()).
			Model(&model.StubRecommendationModel{}).
			Where("user_id = ?", userID).
			Pluck("store_id", &seenIDs).Error; err != nil {
			return errors.Wrap(err, "failed to load recommendation history")
		}
		if len(seenIDs) > 0 {
			query = query.Where("id NOT IN ?", seenIDs)
		}
	}

	var candidates []model.StubStoreModel
	if err := query.Find(&candidates).Error; err != nil {
		return errors.Wrap(err, "failed to query stores")
	}

	picked := pickByMood(candidates, input.PlaceMood)
	if len(picked) == 0 {
		return newAPIError(http.StatusNotFound, "조건에 맞는 가게를 찾지 못했습니다.")
	}
	if len(picked) > recommendationLimit {
		picked = picked[:recommendationLimit]
	}

	stores := make([]map[string]string, 0, len(picked))
	for _, store := range picked {
		record := model.StubRecommendationModel{
			UserID:   userID,
			StoreID:  store.ID,
			Category: store.Category,
			Name:     store.Name,
			Address:  store.AddressRoad,
			URL:      store.URL,
		}
		if err := h.db.WithContext(c.Request().Context()).Create(&record).Error; err != nil {
			return errors.Wrap(err, "failed to record recommendation")
		}

		stores = append(stores, map[string]string{
			"name":         store.Name,
			"address_road": store.AddressRoad,
			"address_ex":   store.AddressEx,
			"phone":        store.Phone,
			"url":          store.URL,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"place_mood": input.PlaceMood,
		"category":   input.PlaceCategory,
		"stores":     stores,
	})
}

// pickByMood prefers stores sharing at least one requested mood tag; when
// nothing matches, the mood filter is dropped rather than answering empty.
func pickByMood(candidates []model.StubStoreModel, moods []string) []model.StubStoreModel {
	if len(moods) == 0 {
		return candidates
	}

	matched := make([]model.StubStoreModel, 0, len(candidates))
	for _, store := range candidates {
		storeMoods := strings.Split(store.Moods, ",")
		for _, want := range moods {
			found := false
			for _, have := range storeMoods {
				if strings.TrimSpace(have) == want {
					found = true

					break
				}
			}
			if found {
				matched = append(matched, store)

				break
			}
		}
	}
	if len(matched) == 0 {
		return candidates
	}

	return matched
}

type recommendSavePayload struct {
	PlaceMood []string `json:"place_mood"`
	Category  string   `json:"category"`
	Stores    []struct {
		Name        string `json:"name"`
		AddressRoad string `json:"address_road"`
		AddressEx   string `json:"address_ex"`
		Phone       string `json:"phone"`
		URL         string `json:"url"`
	} `json:"stores"`
}

func (h *handlers) recommendSave(c echo.Context) error {
	var input recommendSavePayload
	if err := c.Bind(&input); err != nil {
		return newAPIError(http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if len(input.Stores) == 0 {
		return newAPIError(http.StatusBadRequest, "저장할 추천이 없습니다.")
	}
	userID := currentUserID(c)

	names := make([]string, 0, len(input.Stores))
	for _, store := range input.Stores {
		names = append(names, store.Name)
	}

	if err := h.db.WithContext(c.Request().Context()).
		Model(&model.StubRecommendationModel{}).
		Where("user_id = ? AND name IN ? AND confirmed = ?", userID, names, false).
		Update("confirmed", true).Error; err != nil {
		return errors.Wrap(err, "failed to confirm recommendations")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "오늘의 추천이 저장되었습니다."})
}
