package favorite

import "time"

// DefaultList is permanent: it always appears in a user's lists and can be
// neither renamed nor deleted.
const DefaultList = "Favorites"

type Favorite struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	ListName     string    `json:"list_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Entry is a favorite joined with its restaurant summary for display.
type Entry struct {
	Favorite
	RestaurantName string `json:"restaurant_name"`
	CuisineType    string `json:"cuisine_type"`
	PriceRange     string `json:"price_range"`
	HalalStatus    string `json:"halal_status"`
}
