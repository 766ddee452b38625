package domain

import "time"

// Blog is a storefront blog post. List endpoints omit Body.
type Blog struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event is a community or sales event announced on the storefront.
type Event struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
}

// Slide is one entry in the storefront's home carousel.
type Slide struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Link      string `json:"link,omitempty"`
	SortOrder int    `json:"sortOrder"`
}
