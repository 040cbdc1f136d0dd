package entities

// Service is a catalog entry that can be billed on invoices and job cards.
//
// Invoices and job cards copy Price when they are written, so changing a
// service never rewrites existing documents.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
