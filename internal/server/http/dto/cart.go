package dto

// CartItemResponse is a single cart line in the snapshot.
type CartItemResponse struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

// CartUpdateRequest sets the quantity for a product; zero removes it.
type CartUpdateRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int64  `json:"quantity"`
}
