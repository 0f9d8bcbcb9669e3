package model

import "time"

type User struct {
	ID           string    `json:"user_id"`
	Name         string    `json:"user_name"`
	Email        string    `json:"user_email"`
	PasswordHash string    `json:"-"`
	CreatedOn    time.Time `json:"created_on"`
	LastUpdate   time.Time `json:"last_update"`
}
