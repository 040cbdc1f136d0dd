package repository

import (
	"encoding/json"

	"garage_admin/internal/domain/entities"

	"gorm.io/datatypes"
)

// record is a storage row. Field names are shared by the DynamoDB
// attribute and the SQL column so both stores can address them by name.
type record interface {
	key() string
}

type customerRecord struct {
	ID    string `dynamodbav:"id" gorm:"column:id;primaryKey"`
	Name  string `dynamodbav:"name" gorm:"column:name"`
	Email string `dynamodbav:"email" gorm:"column:email"`
	Phone string `dynamodbav:"phone" gorm:"column:phone"`
}

func (customerRecord) TableName() string { return "customers" }
func (r customerRecord) key() string     { return r.ID }

type vehicleRecord struct {
	ID          string `dynamodbav:"id" gorm:"column:id;primaryKey"`
	PlateNumber string `dynamodbav:"plate_number" gorm:"column:plate_number"`
	Brand       string `dynamodbav:"brand" gorm:"column:brand"`
	Model       string `dynamodbav:"model" gorm:"column:model"`
	FuelType    string `dynamodbav:"fuel_type" gorm:"column:fuel_type"`
	CustomerID  string `dynamodbav:"customer_id" gorm:"column:customer_id;index"`
}

func (vehicleRecord) TableName() string { return "vehicles" }
func (r vehicleRecord) key() string     { return r.ID }

type serviceRecord struct {
	ID          string  `dynamodbav:"id" gorm:"column:id;primaryKey"`
	Name        string  `dynamodbav:"name" gorm:"column:name"`
	Description string  `dynamodbav:"description" gorm:"column:description"`
	Price       float64 `dynamodbav:"price" gorm:"column:price"`
}

func (serviceRecord) TableName() string { return "services" }
func (r serviceRecord) key() string     { return r.ID }

type jobItemRecord struct {
	ID          string  `dynamodbav:"id" gorm:"column:id;primaryKey"`
	Description string  `dynamodbav:"description" gorm:"column:description"`
	Qty         float64 `dynamodbav:"qty" gorm:"column:qty"`
	Rate        float64 `dynamodbav:"rate" gorm:"column:rate"`
}

func (jobItemRecord) TableName() string { return "job_items" }
func (r jobItemRecord) key() string     { return r.ID }

type jobCardRecord struct {
	ID            string  `dynamodbav:"id" gorm:"column:id;primaryKey"`
	CustomerID    string  `dynamodbav:"customer_id" gorm:"column:customer_id;index"`
	VehicleID     string  `dynamodbav:"vehicle_id" gorm:"column:vehicle_id;index"`
	ServiceID     string  `dynamodbav:"service_id" gorm:"column:service_id"`
	CreatedDate   string  `dynamodbav:"created_date" gorm:"column:created_date"`
	Status        string  `dynamodbav:"status" gorm:"column:status;index"`
	EstimatedCost float64 `dynamodbav:"estimated_cost" gorm:"column:estimated_cost"`
}

func (jobCardRecord) TableName() string { return "job_cards" }
func (r jobCardRecord) key() string     { return r.ID }

type invoiceLineRecord struct {
	ServiceID string  `dynamodbav:"service_id" json:"service_id"`
	Name      string  `dynamodbav:"name" json:"name"`
	Price     float64 `dynamodbav:"price" json:"price"`
}

type invoiceRecord struct {
	ID          string                                 `dynamodbav:"id" gorm:"column:id;primaryKey"`
	CustomerID  string                                 `dynamodbav:"customer_id" gorm:"column:customer_id;index"`
	VehicleID   string                                 `dynamodbav:"vehicle_id" gorm:"column:vehicle_id;index"`
	Services    string                                 `dynamodbav:"services" gorm:"column:services"`
	Lines       datatypes.JSONSlice[invoiceLineRecord] `dynamodbav:"lines,omitempty" gorm:"column:lines"`
	Status      string                                 `dynamodbav:"status" gorm:"column:status;index"`
	TotalAmount float64                                `dynamodbav:"total_amount" gorm:"column:total_amount"`
	InvoiceDate string                                 `dynamodbav:"invoice_date" gorm:"column:invoice_date"`
}

func (invoiceRecord) TableName() string { return "invoices" }
func (r invoiceRecord) key() string     { return r.ID }

type paymentRecord struct {
	ID                string  `dynamodbav:"id" gorm:"column:id;primaryKey"`
	InvoiceID         string  `dynamodbav:"invoice_id" gorm:"column:invoice_id;index"`
	Amount            float64 `dynamodbav:"amount" gorm:"column:amount"`
	Method            string  `dynamodbav:"method" gorm:"column:method"`
	PaymentDate       string  `dynamodbav:"payment_date" gorm:"column:payment_date"`
	ProviderPaymentID string  `dynamodbav:"provider_payment_id,omitempty" gorm:"column:provider_payment_id"`
	ProviderStatus    string  `dynamodbav:"provider_status,omitempty" gorm:"column:provider_status"`
	ProviderResponse  string  `dynamodbav:"provider_response,omitempty" gorm:"column:provider_response;type:text"`
}

func (paymentRecord) TableName() string { return "payments" }
func (r paymentRecord) key() string     { return r.ID }

func toCustomerRecord(c entities.Customer) customerRecord {
	return customerRecord(c)
}

func fromCustomerRecord(r customerRecord) entities.Customer {
	return entities.Customer(r)
}

func toVehicleRecord(v entities.Vehicle) vehicleRecord {
	return vehicleRecord(v)
}

func fromVehicleRecord(r vehicleRecord) entities.Vehicle {
	return entities.Vehicle(r)
}

func toServiceRecord(s entities.Service) serviceRecord {
	return serviceRecord(s)
}

func fromServiceRecord(r serviceRecord) entities.Service {
	return entities.Service(r)
}

func toJobItemRecord(j entities.JobItem) jobItemRecord {
	return jobItemRecord(j)
}

func fromJobItemRecord(r jobItemRecord) entities.JobItem {
	return entities.JobItem(r)
}

func toJobCardRecord(j entities.JobCard) jobCardRecord {
	return jobCardRecord{
		ID:            j.ID,
		CustomerID:    j.CustomerID,
		VehicleID:     j.VehicleID,
		ServiceID:     j.ServiceID,
		CreatedDate:   j.CreatedDate.String(),
		Status:        string(j.Status),
		EstimatedCost: j.EstimatedCost,
	}
}

func fromJobCardRecord(r jobCardRecord) entities.JobCard {
	created, _ := entities.ParseDate(r.CreatedDate)
	return entities.JobCard{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		VehicleID:     r.VehicleID,
		ServiceID:     r.ServiceID,
		CreatedDate:   created,
		Status:        entities.JobCardStatus(r.Status),
		EstimatedCost: r.EstimatedCost,
	}
}

func toInvoiceRecord(inv entities.Invoice) invoiceRecord {
	var lines datatypes.JSONSlice[invoiceLineRecord]
	for _, l := range inv.Lines {
		lines = append(lines, invoiceLineRecord{ServiceID: l.ServiceID, Name: l.Name, Price: l.Price})
	}
	return invoiceRecord{
		ID:          inv.ID,
		CustomerID:  inv.CustomerID,
		VehicleID:   inv.VehicleID,
		Services:    inv.Services,
		Lines:       lines,
		Status:      string(inv.Status),
		TotalAmount: inv.TotalAmount,
		InvoiceDate: inv.InvoiceDate.String(),
	}
}

func fromInvoiceRecord(r invoiceRecord) entities.Invoice {
	date, _ := entities.ParseDate(r.InvoiceDate)
	var lines []entities.InvoiceLine
	for _, l := range r.Lines {
		lines = append(lines, entities.InvoiceLine{ServiceID: l.ServiceID, Name: l.Name, Price: l.Price})
	}
	return entities.Invoice{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		VehicleID:   r.VehicleID,
		Services:    r.Services,
		Lines:       lines,
		Status:      entities.InvoiceStatus(r.Status),
		TotalAmount: r.TotalAmount,
		InvoiceDate: date,
	}
}

func toPaymentRecord(p entities.Payment) paymentRecord {
	return paymentRecord{
		ID:                p.ID,
		InvoiceID:         p.InvoiceID,
		Amount:            p.Amount,
		Method:            string(p.Method),
		PaymentDate:       p.PaymentDate.String(),
		ProviderPaymentID: p.ProviderPaymentID,
		ProviderStatus:    p.ProviderStatus,
		ProviderResponse:  string(p.ProviderResponse),
	}
}

func fromPaymentRecord(r paymentRecord) entities.Payment {
	date, _ := entities.ParseDate(r.PaymentDate)
	var raw json.RawMessage
	if r.ProviderResponse != "" {
		raw = json.RawMessage(r.ProviderResponse)
	}
	return entities.Payment{
		ID:                r.ID,
		InvoiceID:         r.InvoiceID,
		Amount:            r.Amount,
		Method:            entities.PaymentMethod(r.Method),
		PaymentDate:       date,
		ProviderPaymentID: r.ProviderPaymentID,
		ProviderStatus:    r.ProviderStatus,
		ProviderResponse:  raw,
	}
}
