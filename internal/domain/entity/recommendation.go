package entity

import (
	"time"

	domainerrors "gachigage/internal/domain/errors"
)

// MoodSelectionLimit caps the number of mood tags per recommendation request.
const MoodSelectionLimit = 3

// StoreCategories is the fixed category catalogue of the category step.
var StoreCategories = []string{
	"한식당",
	"일식당",
	"중식당",
	"양식집",
	"분식집",
	"커피 전문점",
	"호프집",
	"일본식 주점",
	"제과점·베이커리",
	"아이스크림 가게",
	"소품샵",
}

// MoodTags is the fixed mood/atmosphere catalogue of the mood step. Review
// tags reference the same catalogue by 1-based index.
var MoodTags = []string{
	"혼밥 하기 편해요",
	"데이트하기 좋아요",
	"가족과 가기 좋아요",
	"메뉴가 다양해요",
	"음악 선정이 좋아요",
	"책 읽기 좋아요",
	"사진찍기 좋아요",
	"활기찬 공간이에요",
	"반려동물과 함께",
	"조용해요",
	"해외같아요",
	"아늑해요",
	"집중하기 좋아요",
	"뷰가 좋아요",
	"매장이 넓어요",
	"식물이 많아요",
	"오래 머물기 좋아요",
	"트렌디해요",
	"시끌벅적해요",
}

// ValidCategory reports whether the category is in the catalogue.
func ValidCategory(category string) bool {
	for _, c := range StoreCategories {
		if c == category {
			return true
		}
	}

	return false
}

// ValidMood reports whether the mood tag is in the catalogue.
func ValidMood(mood string) bool {
	for _, m := range MoodTags {
		if m == mood {
			return true
		}
	}

	return false
}

// DraftStep is the current step of the recommendation wizard.
type DraftStep string

const (
	StepRegion    DraftStep = "region"
	StepCategory  DraftStep = "category"
	StepMood      DraftStep = "mood"
	StepDuplicate DraftStep = "duplicate"
	StepSubmitted DraftStep = "submitted"
)

// RecommendationDraft is the wizard state machine. Each step stores its own
// selection and advances the step pointer; operations issued out of order are
// rejected instead of silently reordering the flow. Only completing the
// duplicate step produces a request; no network call happens before that.
type RecommendationDraft struct {
	Step            DraftStep
	Neighborhoods   []string
	Category        string
	Moods           []string
	AllowDuplicates *bool
}

// NewRecommendationDraft starts a fresh wizard at the region step.
func NewRecommendationDraft() *RecommendationDraft {
	return &RecommendationDraft{Step: StepRegion}
}

// SelectRegion records exactly one neighborhood and advances to the category step.
func (d *RecommendationDraft) SelectRegion(neighborhood string) error {
	if d.Step != StepRegion {
		return domainerrors.ErrWizardStateInvalid.WithDetails("region step already passed")
	}
	if neighborhood == "" {
		return domainerrors.ErrValidationFailed.WithDetails("neighborhood is required")
	}

	d.Neighborhoods = []string{neighborhood}
	d.Step = StepCategory

	return nil
}

// SelectCategory records exactly one catalogue category and advances to the mood step.
func (d *RecommendationDraft) SelectCategory(category string) error {
	if d.Step != StepCategory {
		return domainerrors.ErrWizardStateInvalid.WithDetails("category step not active")
	}
	if !ValidCategory(category) {
		return domainerrors.ErrValidationFailed.WithDetails("unknown category: " + category)
	}

	d.Category = category
	d.Step = StepMood

	return nil
}

// ToggleMood adds or removes a mood tag. Selecting a tag beyond the limit is
// rejected; deselecting is always allowed. The mood step stays active until
// ConfirmMoods advances the wizard, mirroring the multi-select screen.
func (d *RecommendationDraft) ToggleMood(mood string) error {
	if d.Step != StepMood {
		return domainerrors.ErrWizardStateInvalid.WithDetails("mood step not active")
	}
	if !ValidMood(mood) {
		return domainerrors.ErrValidationFailed.WithDetails("unknown mood: " + mood)
	}

	for i, m := range d.Moods {
		if m == mood {
			d.Moods = append(d.Moods[:i], d.Moods[i+1:]...)

			return nil
		}
	}

	if len(d.Moods) >= MoodSelectionLimit {
		return domainerrors.ErrMoodLimitExceeded
	}
	d.Moods = append(d.Moods, mood)

	return nil
}

// ConfirmMoods closes the mood step. At least one tag must be selected.
func (d *RecommendationDraft) ConfirmMoods() error {
	if d.Step != StepMood {
		return domainerrors.ErrWizardStateInvalid.WithDetails("mood step not active")
	}
	if len(d.Moods) == 0 {
		return domainerrors.ErrValidationFailed.WithDetails("select at least one mood")
	}

	d.Step = StepDuplicate

	return nil
}

// SetDuplicatePolicy records whether previously recommended stores may appear
// again and completes the wizard, producing the assembled request.
func (d *RecommendationDraft) SetDuplicatePolicy(allow bool) (*RecommendationRequest, error) {
	if d.Step != StepDuplicate {
		return nil, domainerrors.ErrWizardStateInvalid.WithDetails("duplicate step not active")
	}

	d.AllowDuplicates = &allow
	d.Step = StepSubmitted

	return &RecommendationRequest{
		Region:        d.Neighborhoods,
		PlaceCategory: d.Category,
		PlaceMood:     d.Moods,
		Duplicate:     allow,
	}, nil
}

// RecommendationRequest is the assembled wizard output sent to the backend.
type RecommendationRequest struct {
	Region        []string
	PlaceCategory string
	PlaceMood     []string
	Duplicate     bool
}

// RecommendedStore is one store of a fresh recommendation result.
type RecommendedStore struct {
	Name        string
	AddressRoad string
	AddressEx   string
	Phone       string
	URL         string
}

// RecommendationResult is the backend's answer to a wizard submission.
type RecommendationResult struct {
	Category  string
	PlaceMood []string
	Stores    []RecommendedStore
}

// RecommendationCache is the locally persisted last wizard submission. The
// request part feeds "redo"; the result part is what "confirm" saves upstream.
type RecommendationCache struct {
	Request   RecommendationRequest
	Result    RecommendationResult
	CreatedAt time.Time
}

// Store is a confirmed store entry on the recommendation home tab.
type Store struct {
	Category string
	Name     string
	Address  string
	URL      string
}

// RecommendationHome is the recommendation tab payload: today's confirmed
// stores plus the past history.
type RecommendationHome struct {
	Username       string
	Gugun          string
	TodayStores    []Store
	PastRecommends []Store
}
