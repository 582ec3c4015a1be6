package driver

import (
	"dispatch/internal/pkg/errs"
)

const (
	// RatingHistoryCapacity is how many recent ratings a driver keeps.
	RatingHistoryCapacity = 10
	MinRating             = 1
	MaxRating             = 5
)

// RatingHistory keeps the most recent ratings in arrival order. When full,
// adding a rating evicts the oldest one.
type RatingHistory struct {
	ratings []int
}

// NewRatingHistory restores a history from stored values, keeping only the
// newest RatingHistoryCapacity of them.
func NewRatingHistory(ratings ...int) (RatingHistory, error) {
	var h RatingHistory
	for _, r := range ratings {
		if err := h.Add(r); err != nil {
			return RatingHistory{}, err
		}
	}
	return h, nil
}

// Add appends a rating in [MinRating, MaxRating].
func (h *RatingHistory) Add(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	if len(h.ratings) == RatingHistoryCapacity {
		h.ratings = append(h.ratings[:0], h.ratings[1:]...)
	}
	h.ratings = append(h.ratings, rating)
	return nil
}

// Average returns the mean of the kept ratings; ok is false when there are none.
func (h RatingHistory) Average() (avg float64, ok bool) {
	if len(h.ratings) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range h.ratings {
		sum += r
	}
	return float64(sum) / float64(len(h.ratings)), true
}

func (h RatingHistory) Len() int {
	return len(h.ratings)
}

// Values returns the kept ratings, oldest first.
func (h RatingHistory) Values() []int {
	return append([]int(nil), h.ratings...)
}

func (h RatingHistory) clone() RatingHistory {
	return RatingHistory{ratings: h.Values()}
}
