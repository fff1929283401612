package models

import "time"

// Event is a community recycling event. The owner is fixed at creation and
// is not an implicit participant.
type Event struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Caption      string        `json:"caption"`
	EventDate    string        `json:"eventDate"`
	Location     string        `json:"location"`
	UserID       string        `json:"-"`
	User         *UserSummary  `json:"user,omitempty"`
	Participants []UserSummary `json:"participants"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// UserSummary is the trimmed-down user shape embedded in event payloads.
type UserSummary struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

// EventSummary is the compact listing used on profile pages.
type EventSummary struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	EventDate string       `json:"eventDate"`
	Location  string       `json:"location"`
	User      *UserSummary `json:"user,omitempty"`
}
