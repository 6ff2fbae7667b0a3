package models

// Product is the catalogue entry referenced by an order line.
type Product struct {
	Name string `json:"name"`
}

// ProductLine is a single product within a vendor's portion of an order.
// TotalAmount is computed server-side.
type ProductLine struct {
	Product     Product `json:"product"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	TotalAmount float64 `json:"totalAmount"`
}
