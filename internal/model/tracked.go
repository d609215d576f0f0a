package model

import "github.com/google/uuid"

// TrackedEntry links a user to a movie with per-user metadata.
// One entry per (user, movie) pair.
type TrackedEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MovieID   uuid.UUID
	Genre     string
	Favorited bool
	Watched   bool
}

// TrackedEntryView is a TrackedEntry joined with its movie.
type TrackedEntryView struct {
	ID        uuid.UUID
	APIID     int64
	Title     string
	ImgURL    string
	Genre     string
	Favorited bool
	Watched   bool
}

type TrackResult struct {
	Entry          TrackedEntry
	AlreadyTracked bool
}

// TrackedList is the listing view model: the caller's tracked movies
// plus every other user as a recommendation target.
type TrackedList struct {
	Entries    []TrackedEntryView
	OtherUsers []User
}
