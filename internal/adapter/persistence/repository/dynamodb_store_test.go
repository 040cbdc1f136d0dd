package repository

import (
	"context"
	"strings"
	"testing"

	"garage_admin/internal/domain/entities"
	"garage_admin/internal/infrastructure/config"
	"garage_admin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo is an in-memory table set that understands the condition
// expressions the stores issue.
type fakeDynamo struct {
	tables map[string]map[string]map[string]types.AttributeValue
	scans  int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) table(name *string) map[string]map[string]types.AttributeValue {
	t, ok := f.tables[aws.ToString(name)]
	if !ok {
		t = map[string]map[string]types.AttributeValue{}
		f.tables[aws.ToString(name)] = t
	}
	return t
}

func keyOf(key map[string]types.AttributeValue) string {
	return key["id"].(*types.AttributeValueMemberS).Value
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.table(in.TableName)[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	t := f.table(in.TableName)
	id := keyOf(in.Item)
	_, exists := t[id]
	switch aws.ToString(in.ConditionExpression) {
	case "attribute_not_exists(#id)":
		if exists {
			return nil, conditionFailed()
		}
	case "attribute_exists(#id)":
		if !exists {
			return nil, conditionFailed()
		}
	}
	t[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	t := f.table(in.TableName)
	item, ok := t[keyOf(in.Key)]
	field := in.ExpressionAttributeNames["#f"]
	if !ok || stringAttr(item, field) != stringAttr(in.ExpressionAttributeValues, ":from") {
		return nil, conditionFailed()
	}
	item[field] = in.ExpressionAttributeValues[":to"]
	return &dynamodb.UpdateItemOutput{Attributes: item}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	t := f.table(in.TableName)
	id := keyOf(in.Key)
	if _, ok := t[id]; !ok {
		return nil, conditionFailed()
	}
	delete(t, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans++
	var items []map[string]types.AttributeValue
	for _, item := range f.table(in.TableName) {
		if strings.Contains(aws.ToString(in.FilterExpression), "#f = :v") {
			if stringAttr(item, in.ExpressionAttributeNames["#f"]) != stringAttr(in.ExpressionAttributeValues, ":v") {
				continue
			}
		}
		items = append(items, item)
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func newDynamoTestRepositories() (*Repositories, *fakeDynamo) {
	fake := newFakeDynamo()
	cfg := config.Config{Tables: config.Tables{
		Customers: "customers", Vehicles: "vehicles", Services: "services", JobItems: "jobitems",
		JobCards: "jobcards", Invoices: "invoices", Payments: "payments",
	}}
	return NewDynamoRepositories(fake, cfg.Tables), fake
}

func TestDynamoRepositories_ConditionalWrites(t *testing.T) {
	ctx := context.Background()
	repos, fake := newDynamoTestRepositories()

	v := entities.Vehicle{ID: "v-1", PlateNumber: "KA01AB1234", Brand: "Tata", Model: "Nexon", FuelType: "EV", CustomerID: "c-1"}
	_, err := repos.Vehicles.Create(ctx, v)
	require.NoError(t, err)
	_, err = repos.Vehicles.Create(ctx, v)
	assert.ErrorIs(t, err, interfaces.ErrAlreadyExists)

	stored := fake.tables["vehicles"]["v-1"]
	assert.Equal(t, "KA01AB1234", stringAttr(stored, "plate_number"))

	got, err := repos.Vehicles.GetByID(ctx, "v-1")
	require.NoError(t, err)
	assert.Equal(t, v, got)

	ghost, err := repos.Vehicles.Update(ctx, entities.Vehicle{ID: "v-9"})
	require.NoError(t, err)
	assert.Empty(t, ghost.ID)
	assert.NotContains(t, fake.tables["vehicles"], "v-9", "update must not upsert")

	ok, err := repos.Vehicles.Delete(ctx, "v-9")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = repos.Vehicles.Delete(ctx, "v-1")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := repos.Vehicles.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDynamoRepositories_InvoiceAndPayments(t *testing.T) {
	ctx := context.Background()
	repos, _ := newDynamoTestRepositories()
	date, _ := entities.ParseDate("2025-06-01")

	inv := entities.Invoice{
		ID:          "inv-1",
		CustomerID:  "c-1",
		VehicleID:   "v-1",
		Services:    "Oil Change",
		Lines:       []entities.InvoiceLine{{ServiceID: "s-1", Name: "Oil Change", Price: 1500}},
		Status:      entities.InvoiceStatusPending,
		TotalAmount: 1500,
		InvoiceDate: date,
	}
	_, err := repos.Invoices.Create(ctx, inv)
	require.NoError(t, err)

	got, err := repos.Invoices.GetByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, inv, got)

	done, err := repos.Invoices.CompareAndSetStatus(ctx, "inv-1", entities.InvoiceStatusPending, entities.InvoiceStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusCompleted, done.Status)
	assert.Equal(t, inv.Lines, done.Lines)

	stale, err := repos.Invoices.CompareAndSetStatus(ctx, "inv-1", entities.InvoiceStatusPending, entities.InvoiceStatusCancelled)
	require.NoError(t, err)
	assert.Empty(t, stale.ID)

	for _, p := range []entities.Payment{
		{ID: "p-1", InvoiceID: "inv-1", Amount: 1500, Method: entities.PaymentMethodUPI, PaymentDate: date},
		{ID: "p-2", InvoiceID: "inv-2", Amount: 10, Method: entities.PaymentMethodCash, PaymentDate: date},
	} {
		_, err := repos.Payments.Create(ctx, p)
		require.NoError(t, err)
	}
	byInvoice, err := repos.Payments.ListByInvoiceID(ctx, "inv-1")
	require.NoError(t, err)
	require.Len(t, byInvoice, 1)
	assert.Equal(t, "p-1", byInvoice[0].ID)
	assert.Equal(t, "2025-06-01", byInvoice[0].PaymentDate.String())
}
