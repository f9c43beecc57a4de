package dto

type AddCartItemDTO struct {
	BookID   uint `json:"book_id"`
	Quantity uint `json:"quantity"`
}

type UpdateCartItemDTO struct {
	Quantity uint `json:"quantity"`
}

type PlaceOrderDTO struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}

type CreateReviewDTO struct {
	BookID  uint   `json:"book_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type UpdateReviewDTO struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
