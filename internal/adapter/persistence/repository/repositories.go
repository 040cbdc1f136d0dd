package repository

import (
	"garage_admin/internal/domain/entities"
	"garage_admin/internal/infrastructure/config"
	"garage_admin/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// Repositories groups the repository of every garage resource.
type Repositories struct {
	Customers interfaces.ICustomerRepository
	Vehicles  interfaces.IVehicleRepository
	Services  interfaces.IServiceRepository
	JobItems  interfaces.IJobItemRepository
	JobCards  interfaces.IJobCardRepository
	Invoices  interfaces.IInvoiceRepository
	Payments  interfaces.IPaymentRepository
}

// storeFactory holds one store per record type for a single backend.
type storeFactory struct {
	customers recordStore[customerRecord]
	vehicles  recordStore[vehicleRecord]
	services  recordStore[serviceRecord]
	jobItems  recordStore[jobItemRecord]
	jobCards  recordStore[jobCardRecord]
	invoices  recordStore[invoiceRecord]
	payments  recordStore[paymentRecord]
}

func (f storeFactory) repositories() *Repositories {
	return &Repositories{
		Customers: newEntityRepository(f.customers, toCustomerRecord, fromCustomerRecord),
		Vehicles:  newEntityRepository(f.vehicles, toVehicleRecord, fromVehicleRecord),
		Services:  newEntityRepository(f.services, toServiceRecord, fromServiceRecord),
		JobItems:  newEntityRepository(f.jobItems, toJobItemRecord, fromJobItemRecord),
		JobCards:  newEntityRepository(f.jobCards, toJobCardRecord, fromJobCardRecord),
		Invoices: &invoiceRepository{
			entityRepository: newEntityRepository[entities.Invoice](f.invoices, toInvoiceRecord, fromInvoiceRecord),
		},
		Payments: &paymentRepository{
			entityRepository: newEntityRepository[entities.Payment](f.payments, toPaymentRecord, fromPaymentRecord),
		},
	}
}

// NewDynamoRepositories keeps each resource in its own DynamoDB table.
func NewDynamoRepositories(ddb DynamoAPI, tables config.Tables) *Repositories {
	return storeFactory{
		customers: newDynamoStore[customerRecord](ddb, tables.Customers),
		vehicles:  newDynamoStore[vehicleRecord](ddb, tables.Vehicles),
		services:  newDynamoStore[serviceRecord](ddb, tables.Services),
		jobItems:  newDynamoStore[jobItemRecord](ddb, tables.JobItems),
		jobCards:  newDynamoStore[jobCardRecord](ddb, tables.JobCards),
		invoices:  newDynamoStore[invoiceRecord](ddb, tables.Invoices),
		payments:  newDynamoStore[paymentRecord](ddb, tables.Payments),
	}.repositories()
}

// NewGormRepositories migrates the schema and returns SQL-backed repositories.
func NewGormRepositories(db *gorm.DB) (*Repositories, error) {
	err := db.AutoMigrate(
		&customerRecord{},
		&vehicleRecord{},
		&serviceRecord{},
		&jobItemRecord{},
		&jobCardRecord{},
		&invoiceRecord{},
		&paymentRecord{},
	)
	if err != nil {
		return nil, err
	}

	return storeFactory{
		customers: newGormStore[customerRecord](db),
		vehicles:  newGormStore[vehicleRecord](db),
		services:  newGormStore[serviceRecord](db),
		jobItems:  newGormStore[jobItemRecord](db),
		jobCards:  newGormStore[jobCardRecord](db),
		invoices:  newGormStore[invoiceRecord](db),
		payments:  newGormStore[paymentRecord](db),
	}.repositories(), nil
}
