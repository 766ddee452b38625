package domain

import "time"

// Deal is a time-boxed discount on a product or category.
type Deal struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	ProductID string    `json:"product,omitempty"`
	Category  string    `json:"category,omitempty"`
	Discount  int       `json:"discount"` // percent off list price
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
}

// Active returns true if the deal is running at the given instant.
func (d Deal) Active(now time.Time) bool {
	return !now.Before(d.StartsAt) && now.Before(d.EndsAt)
}
