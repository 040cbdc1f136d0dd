package request

import (
	"garage_admin/internal/domain/entities"
)

type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

func (r CustomerRequest) ToEntity() entities.Customer {
	return entities.Customer{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

type VehicleRequest struct {
	PlateNumber string `json:"plateNumber" binding:"required"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	FuelType    string `json:"fuelType"`
	CustomerID  string `json:"customerId"`
}

func (r VehicleRequest) ToEntity() entities.Vehicle {
	return entities.Vehicle{
		PlateNumber: r.PlateNumber,
		Brand:       r.Brand,
		Model:       r.Model,
		FuelType:    r.FuelType,
		CustomerID:  r.CustomerID,
	}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}

func (r ServiceRequest) ToEntity() entities.Service {
	return entities.Service{Name: r.Name, Description: r.Description, Price: r.Price}
}

type JobItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Qty         float64 `json:"qty" binding:"gt=0"`
	Rate        float64 `json:"rate" binding:"gte=0"`
}

func (r JobItemRequest) ToEntity() entities.JobItem {
	return entities.JobItem{Description: r.Description, Qty: r.Qty, Rate: r.Rate}
}

// JobCardRequest carries no estimatedCost: it is always taken from the
// service price.
type JobCardRequest struct {
	CustomerID  string        `json:"customerId" binding:"required"`
	VehicleID   string        `json:"vehicleId" binding:"required"`
	ServiceID   string        `json:"serviceId" binding:"required"`
	CreatedDate entities.Date `json:"createdDate"`
	Status      string        `json:"status" binding:"omitempty,jobcard_status"`
}

func (r JobCardRequest) ToEntity() entities.JobCard {
	return entities.JobCard{
		CustomerID:  r.CustomerID,
		VehicleID:   r.VehicleID,
		ServiceID:   r.ServiceID,
		CreatedDate: r.CreatedDate,
		Status:      entities.JobCardStatus(r.Status),
	}
}

type PaymentRequest struct {
	InvoiceID   string        `json:"invoiceId" binding:"required"`
	Amount      float64       `json:"amount" binding:"gte=0"`
	Method      string        `json:"method" binding:"required,payment_method"`
	PaymentDate entities.Date `json:"paymentDate"`
}

func (r PaymentRequest) ToEntity() entities.Payment {
	return entities.Payment{
		InvoiceID:   r.InvoiceID,
		Amount:      r.Amount,
		Method:      entities.PaymentMethod(r.Method),
		PaymentDate: r.PaymentDate,
	}
}
