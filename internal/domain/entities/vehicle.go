package entities

type Vehicle struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plateNumber"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	FuelType    string `json:"fuelType"`
	CustomerID  string `json:"customerId"`
}
