package entity

import (
	"time"

	domainerrors "gachigage/internal/domain/errors"
)

// ReviewTagLimit caps the number of tags per review.
const ReviewTagLimit = 4

// Review is a user-authored review for a verified mission store. Tags are
// 1-based indices into the MoodTags catalogue; Content is nil when the user
// wrote no free text.
type Review struct {
	ID        int64
	MissionID int64
	StoreName string
	Tags      []int
	Content   *string
	CreatedAt time.Time
}

// ValidateReviewTags checks the tag index list against the catalogue bounds
// and the per-review limit.
func ValidateReviewTags(tags []int) error {
	if len(tags) == 0 {
		return domainerrors.ErrValidationFailed.WithDetails("select at least one tag")
	}
	if len(tags) > ReviewTagLimit {
		return domainerrors.ErrReviewTagLimit
	}
	seen := make(map[int]struct{}, len(tags))
	for _, tag := range tags {
		if tag < 1 || tag > len(MoodTags) {
			return domainerrors.ErrValidationFailed.WithDetails("unknown tag index")
		}
		if _, dup := seen[tag]; dup {
			return domainerrors.ErrValidationFailed.WithDetails("duplicate tag index")
		}
		seen[tag] = struct{}{}
	}

	return nil
}

// TagLabels resolves 1-based tag indices to their catalogue labels.
func TagLabels(tags []int) []string {
	labels := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag >= 1 && tag <= len(MoodTags) {
			labels = append(labels, MoodTags[tag-1])
		}
	}

	return labels
}
