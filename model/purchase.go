// model/purchase.go
package model

import "time"

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

// Purchase reserves one unit of a Listing while pending or completed. A
// pending purchase that is cancelled or deleted returns its unit, once.
type Purchase struct {
	ID        int64          `json:"id"`
	ListingID int64          `json:"listing_id"`
	BuyerID   int64          `json:"buyer_id"`
	Notes     string         `json:"notes"`
	Status    PurchaseStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
