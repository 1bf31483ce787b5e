package purchase

type CreatePurchaseReq struct {
	ListingID int64  `json:"listing_id" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

type UpdateStatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}
