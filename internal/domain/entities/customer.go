package entities

// Customer is a garage client. Vehicles and invoices reference it by ID,
// but nothing enforces those references.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
