// model/request.go
package model

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// PropertyRequest is a non-reserving inquiry from a prospective renter to
// a listing's owner. At most one pending request per (user, listing).
type PropertyRequest struct {
	ID        int64         `json:"id"`
	ListingID int64         `json:"listing_id"`
	UserID    int64         `json:"user_id"`
	Message   string        `json:"message"`
	Response  string        `json:"response"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
