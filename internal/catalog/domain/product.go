package domain

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Stock       int32  `json:"stock"`
}
