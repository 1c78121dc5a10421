package handler

import (
	"log/slog"
	"net/http"

	"gachigage/internal/delivery/http/response"
	"gachigage/internal/domain/entity"
	"gachigage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RecommendationHandler holds dependencies for the recommendation wizard and
// the recommendation home tab.
type RecommendationHandler struct {
	uc     usecase.RecommendationUsecase
	logger *slog.Logger
}

// NewRecommendationHandler is the constructor for RecommendationHandler, injected by Fx.
func NewRecommendationHandler(uc usecase.RecommendationUsecase, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{uc: uc, logger: logger}
}

type wizardDraftResponse struct {
	Step            string   `json:"step"`
	Neighborhoods   []string `json:"neighborhoods"`
	Category        string   `json:"category,omitempty"`
	Moods           []string `json:"moods"`
	AllowDuplicates *bool    `json:"allow_duplicates,omitempty"`
}

func toWizardDraftResponse(draft *entity.RecommendationDraft) wizardDraftResponse {
	return wizardDraftResponse{
		Step:            string(draft.Step),
		Neighborhoods:   draft.Neighborhoods,
		Category:        draft.Category,
		Moods:           draft.Moods,
		AllowDuplicates: draft.AllowDuplicates,
	}
}

type recommendedStoreResponse struct {
	Name        string `json:"name"`
	AddressRoad string `json:"address_road"`
	AddressEx   string `json:"address_ex,omitempty"`
	Phone       string `json:"phone,omitempty"`
	URL         string `json:"url,omitempty"`
}

type recommendationResultResponse struct {
	Category  string                     `json:"category"`
	PlaceMood []string                   `json:"place_mood"`
	Stores    []recommendedStoreResponse `json:"stores"`
}

func toRecommendationResultResponse(result *entity.RecommendationResult) recommendationResultResponse {
	stores := make([]recommendedStoreResponse, 0, len(result.Stores))
	for _, store := range result.Stores {
		stores = append(stores, recommendedStoreResponse{
			Name:        store.Name,
			AddressRoad: store.AddressRoad,
			AddressEx:   store.AddressEx,
			Phone:       store.Phone,
			URL:         store.URL,
		})
	}

	return recommendationResultResponse{
		Category:  result.Category,
		PlaceMood: result.PlaceMood,
		Stores:    stores,
	}
}

type storeResponse struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	URL      string `json:"url,omitempty"`
}

func toStoreResponses(stores []entity.Store) []storeResponse {
	out := make([]storeResponse, 0, len(stores))
	for _, store := range stores {
		out = append(out, storeResponse{
			Category: store.Category,
			Name:     store.Name,
			Address:  store.Address,
			URL:      store.URL,
		})
	}

	return out
}

// Home returns today's confirmed stores and the past history.
func (h *RecommendationHandler) Home(c echo.Context) error {
	home, err := h.uc.Home(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"username":        home.Username,
		"gugun":           home.Gugun,
		"today_stores":    toStoreResponses(home.TodayStores),
		"past_recommends": toStoreResponses(home.PastRecommends),
	})
}

// StartWizard opens a fresh draft, discarding any in-flight one.
func (h *RecommendationHandler) StartWizard(c echo.Context) error {
	draft, err := h.uc.StartWizard(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toWizardDraftResponse(draft))
}

// Draft returns the in-flight wizard draft.
func (h *RecommendationHandler) Draft(c echo.Context) error {
	draft, err := h.uc.Draft(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toWizardDraftResponse(draft))
}

type selectRegionRequest struct {
	Neighborhood string `json:"neighborhood" validate:"required"`
}

// SelectRegion records the neighborhood choice.
func (h *RecommendationHandler) SelectRegion(c echo.Context) error {
	var input selectRegionRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid region input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	draft, err := h.uc.SelectRegion(c.Request().Context(), input.Neighborhood)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toWizardDraftResponse(draft))
}

type selectCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

// SelectCategory records the category choice.
func (h *RecommendationHandler) SelectCategory(c echo.Context) error {
	var input selectCategoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid category input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	draft, err := h.uc.SelectCategory(c.Request().Context(), input.Category)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toWizardDraftResponse(draft))
}

type toggleMoodRequest struct {
	Mood string `json:"mood" validate:"required"`
}

// ToggleMood adds or removes a mood tag.
func (h *RecommendationHandler) ToggleMood(c echo.Context) error {
	var input toggleMoodRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid mood input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	draft, err := h.uc.ToggleMood(c.Request().Context(), input.Mood)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toWizardDraftResponse(draft))
}

// ConfirmMoods closes the mood step.
func (h *RecommendationHandler) ConfirmMoods(c echo.Context) error {
	draft, err := h.uc.ConfirmMoods(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toWizardDraftResponse(draft))
}

type submitWizardRequest struct {
	AllowDuplicates bool `json:"allow_duplicates"`
	WithWeather     bool `json:"with_weather"`
}

// Submit completes the duplicate step and requests a recommendation.
func (h *RecommendationHandler) Submit(c echo.Context) error {
	var input submitWizardRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid submit input")
	}

	result, err := h.uc.Submit(c.Request().Context(), input.AllowDuplicates, input.WithWeather)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRecommendationResultResponse(result))
}

// Redo resubmits the cached request verbatim.
func (h *RecommendationHandler) Redo(c echo.Context) error {
	result, err := h.uc.Redo(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRecommendationResultResponse(result))
}

// Confirm saves the cached result as today's pick.
func (h *RecommendationHandler) Confirm(c echo.Context) error {
	if err := h.uc.Confirm(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// Neighborhoods lists the selectable neighborhoods of the user's district.
func (h *RecommendationHandler) Neighborhoods(c echo.Context) error {
	neighborhoods, err := h.uc.Neighborhoods(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string][]string{"neighborhoods": neighborhoods})
}

// Categories exposes the fixed category catalogue.
func (h *RecommendationHandler) Categories(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string][]string{"categories": h.uc.Categories(c.Request().Context())})
}

// Moods exposes the fixed mood catalogue.
func (h *RecommendationHandler) Moods(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string][]string{"moods": h.uc.Moods(c.Request().Context())})
}
