package domain

import "time"

type Review struct {
	ID                 string    `json:"id"`
	ProductID          string    `json:"product"`
	User               User      `json:"user"`
	Rating             int       `json:"rating"` // 1-5
	Title              string    `json:"title"`
	Comment            string    `json:"comment"`
	Images             []string  `json:"images"`
	IsApproved         bool      `json:"isApproved"`
	IsRejected         bool      `json:"isRejected"`
	RejectionReason    string    `json:"rejectionReason,omitempty"`
	Likes              int       `json:"likes"`
	UsersLiked         []string  `json:"usersLiked"`
	IsVerifiedPurchase bool      `json:"isVerifiedPurchase"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// LikedBy reports whether the given user already liked this review.
func (r *Review) LikedBy(userID string) bool {
	for _, id := range r.UsersLiked {
		if id == userID {
			return true
		}
	}
	return false
}

// RatingSummary aggregates ratings for display next to a product.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Stars   [5]int  `json:"stars"` // Stars[0] = 1-star count
}

// SummarizeRatings computes the display aggregation over a review list.
// Out-of-range ratings are skipped rather than clamped.
func SummarizeRatings(reviews []Review) RatingSummary {
	var s RatingSummary
	var sum int
	for i := range reviews {
		r := reviews[i].Rating
		if r < 1 || r > 5 {
			continue
		}
		s.Stars[r-1]++
		s.Count++
		sum += r
	}
	if s.Count > 0 {
		s.Average = Round2(float64(sum) / float64(s.Count))
	}
	return s
}
