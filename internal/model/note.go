package model

import "time"

type Note struct {
	ID         string    `json:"note_id"`
	Title      string    `json:"note_title"`
	Content    string    `json:"note_content"`
	OwnerID    string    `json:"owner_id"`
	CreatedOn  time.Time `json:"created_on"`
	LastUpdate time.Time `json:"last_update"`
}
