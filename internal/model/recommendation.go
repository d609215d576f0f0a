package model

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is a one-way suggestion of a tracked entry to
// another user. The target is always a resolved user.
type Recommendation struct {
	ID             uuid.UUID
	TrackedEntryID uuid.UUID
	FromUserID     uuid.UUID
	ToUserID       uuid.UUID
}

type RecommendResult struct {
	Recommendation     Recommendation
	AlreadyRecommended bool
}

// ReceivedRecommendation is a recommendation addressed to the caller,
// joined with the movie and the sender.
type ReceivedRecommendation struct {
	ID        uuid.UUID
	Title     string
	ImgURL    string
	FromLogin string
	FromName  string
	CreatedAt time.Time
}
