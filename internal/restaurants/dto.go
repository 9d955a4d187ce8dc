package restaurants

// CreateRestaurantRequest is the payload for creating a listing.
type CreateRestaurantRequest struct {
	Name         string  `json:"name" validate:"required,min=5"`
	Address      string  `json:"address" validate:"required"`
	CategoryName string  `json:"category_name" validate:"required,min=5"`
	CoverImg     *string `json:"cover_img,omitempty" validate:"omitempty,url"`
}

// ListRestaurantsRequest carries paging for the public listing.
type ListRestaurantsRequest struct {
	Limit  int `json:"limit" validate:"gte=0,lte=100"`
	Offset int `json:"offset" validate:"gte=0"`
}

// ListRestaurantsResponse is the public listing payload.
type ListRestaurantsResponse struct {
	Restaurants []Restaurant `json:"restaurants"`
	Total       int          `json:"total"`
}
