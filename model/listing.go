// model/listing.go
package model

import "time"

type ListingStatus string

const (
	ListingAvailable   ListingStatus = "available"
	ListingUnavailable ListingStatus = "unavailable"
	ListingPendingSale ListingStatus = "pending_sale"
	ListingRented      ListingStatus = "rented"
)

// Listing is one rentable property. AvailableUnits and Status are owned
// by the ledger: nothing outside it writes those two columns.
type Listing struct {
	ID             int64         `json:"id"`
	OwnerID        int64         `json:"owner_id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Price          float64       `json:"price"`
	Deposit        float64       `json:"deposit"`
	Address        string        `json:"address"`
	City           string        `json:"city"`
	Category       string        `json:"category"`
	Bedrooms       int           `json:"bedrooms"`
	Bathrooms      int           `json:"bathrooms"`
	AreaSqft       float64       `json:"area_sqft"`
	Furnished      string        `json:"furnished"`
	Verified       bool          `json:"verified"`
	TotalUnits     int           `json:"total_units"`
	AvailableUnits int           `json:"available_units"`
	Status         ListingStatus `json:"status"`
	Latitude       *float64      `json:"latitude,omitempty"`
	Longitude      *float64      `json:"longitude,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      *time.Time    `json:"updated_at,omitempty"`
}
