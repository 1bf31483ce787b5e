// model/image.go
package model

import "time"

type Image struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing_id"`
	URL       string    `json:"url"`
	Name      string    `json:"name,omitempty"`
	Size      int64     `json:"size,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
