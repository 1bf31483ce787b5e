package listing

type CreateListingReq struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Deposit     float64  `json:"deposit" validate:"gte=0"`
	Address     string   `json:"address" validate:"required"`
	City        string   `json:"city"`
	Category    string   `json:"category"`
	Bedrooms    int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int      `json:"bathrooms" validate:"gte=0"`
	AreaSqft    float64  `json:"area_sqft" validate:"gte=0"`
	Furnished   string   `json:"furnished" validate:"omitempty,oneof=Furnished Semi-furnished Unfurnished"`
	TotalUnits  int      `json:"total_units" validate:"omitempty,gte=1"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ImageURLs   []string `json:"image_urls"`
}

type UpdateListingReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Deposit     *float64 `json:"deposit"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Category    *string  `json:"category"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	AreaSqft    *float64 `json:"area_sqft"`
	Furnished   *string  `json:"furnished"`
	Verified    *bool    `json:"verified"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}
