package model

import "time"

// Festival is an externally managed event users can like or keep as a memory.
// NbLikes holds the tokens of the users who liked it.
type Festival struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	City        *string    `json:"city,omitempty"`
	Picture     *string    `json:"picture,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Styles      []string   `json:"styles"`
	NbLikes     []string   `json:"nbLikes"`
}

// Style is a music style reference
type Style struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Artist is an artist reference
type Artist struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Picture *string `json:"picture,omitempty"`
}
