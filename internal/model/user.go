package model

import "github.com/google/uuid"

type User struct {
	ID       uuid.UUID
	Login    string
	Name     string
	Password []byte
}

// Zero reports whether the user was never resolved. Usecases reject
// zero users instead of operating as an anonymous one.
func (u User) Zero() bool {
	return u.ID == uuid.Nil
}
