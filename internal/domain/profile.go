package domain

import "time"

type Profile struct {
	ID           int64     `json:"-"`
	Username     string    `json:"-"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Avatar       Image     `json:"avatar"`
	RegisteredAt time.Time `json:"-"`
}

type Review struct {
	ID        int64     `json:"-"`
	ProductID int64     `json:"-"`
	AuthorID  int64     `json:"-"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Text      string    `json:"text"`
	Rate      int       `json:"rate"`
	CreatedAt time.Time `json:"date"`
}
