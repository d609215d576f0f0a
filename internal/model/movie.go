package model

import "github.com/google/uuid"

// Movie is catalog metadata captured the first time any user tracks
// a given external catalog id. One row per distinct APIID.
type Movie struct {
	ID     uuid.UUID
	APIID  int64
	Title  string
	ImgURL string
}
