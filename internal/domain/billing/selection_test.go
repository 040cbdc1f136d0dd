package billing

import (
	"errors"
	"testing"

	"garage_admin/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	oilChange    = entities.Service{ID: "1", Name: "Oil Change", Price: 500}
	tireRotation = entities.Service{ID: "2", Name: "Tire Rotation", Price: 300}
	wash         = entities.Service{ID: "3", Name: "Wash"}
)

func TestSelection_TotalsAndNames(t *testing.T) {
	s := NewSelection(oilChange, tireRotation)

	assert.Equal(t, "Oil Change, Tire Rotation", s.ServicesString())
	assert.Equal(t, 800.0, s.Total())
}

func TestSelection_MissingPriceCountsAsZero(t *testing.T) {
	s := NewSelection(oilChange, wash)
	assert.Equal(t, 500.0, s.Total())

	s.AddLine(entities.InvoiceLine{ServiceID: "neg", Name: "Bad", Price: -20})
	assert.Equal(t, 500.0, s.Total())
}

func TestSelection_InsertionOrderIsKept(t *testing.T) {
	s := NewSelection(tireRotation, wash, oilChange)
	assert.Equal(t, "Tire Rotation, Wash, Oil Change", s.ServicesString())
}

func TestSelection_AddIsIdempotent(t *testing.T) {
	s := NewSelection(oilChange)
	before := s.Lines()

	assert.False(t, s.Add(oilChange))
	assert.False(t, s.Add(entities.Service{ID: "1", Name: "Renamed", Price: 1}))
	assert.Equal(t, before, s.Lines())
}

func TestSelection_RemoveAbsentIsNoop(t *testing.T) {
	s := NewSelection(oilChange, tireRotation)
	before := s.Lines()

	assert.False(t, s.Remove("404"))
	assert.Equal(t, before, s.Lines())

	assert.True(t, s.Remove("1"))
	assert.Equal(t, "Tire Rotation", s.ServicesString())
	assert.Equal(t, 300.0, s.Total())
}

func TestSelection_LinesIsACopy(t *testing.T) {
	s := NewSelection(oilChange)
	lines := s.Lines()
	lines[0].Name = "changed"
	assert.Equal(t, "Oil Change", s.Lines()[0].Name)
}

func TestSelection_Apply(t *testing.T) {
	inv := entities.Invoice{ID: "inv-1"}
	NewSelection(oilChange, tireRotation).Apply(&inv)

	assert.Equal(t, "Oil Change, Tire Rotation", inv.Services)
	assert.Equal(t, 800.0, inv.TotalAmount)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "1", inv.Lines[0].ServiceID)
}

func TestSelectionFromInvoice(t *testing.T) {
	catalog := []entities.Service{oilChange, tireRotation, wash}

	t.Run("round trip through lines", func(t *testing.T) {
		inv := entities.Invoice{}
		NewSelection(tireRotation, oilChange).Apply(&inv)

		got := SelectionFromInvoice(inv, nil)
		assert.Equal(t, inv.Services, got.ServicesString())
		assert.Equal(t, inv.TotalAmount, got.Total())
	})

	t.Run("legacy string resolved by name", func(t *testing.T) {
		inv := entities.Invoice{Services: "Oil Change,  Wash"}
		got := SelectionFromInvoice(inv, catalog)
		assert.Equal(t, "Oil Change, Wash", got.ServicesString())
	})

	t.Run("unknown names dropped", func(t *testing.T) {
		inv := entities.Invoice{Services: "Oil Change, Detailing"}
		got := SelectionFromInvoice(inv, catalog)
		assert.Equal(t, "Oil Change", got.ServicesString())
	})

	t.Run("duplicate names resolve to first", func(t *testing.T) {
		dup := entities.Service{ID: "9", Name: "Oil Change", Price: 999}
		inv := entities.Invoice{Services: "Oil Change"}
		got := SelectionFromInvoice(inv, []entities.Service{oilChange, dup})
		assert.Equal(t, 500.0, got.Total())
	})

	t.Run("empty", func(t *testing.T) {
		got := SelectionFromInvoice(entities.Invoice{}, catalog)
		assert.Equal(t, 0, got.Len())
	})
}

func TestDraft_Validate(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		ok    bool
	}{
		{name: "complete", draft: Draft{CustomerID: "c", VehicleID: "v", Selection: NewSelection(oilChange)}, ok: true},
		{name: "no customer", draft: Draft{VehicleID: "v", Selection: NewSelection(oilChange)}},
		{name: "no vehicle", draft: Draft{CustomerID: "c", Selection: NewSelection(oilChange)}},
		{name: "nil selection", draft: Draft{CustomerID: "c", VehicleID: "v"}},
		{name: "empty selection", draft: Draft{CustomerID: "c", VehicleID: "v", Selection: NewSelection()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrIncompleteDraft))
		})
	}
}

func TestDraft_ServiceIDs(t *testing.T) {
	d := Draft{Selection: NewSelection(tireRotation, oilChange)}
	assert.Equal(t, []string{"2", "1"}, d.ServiceIDs())
	assert.Nil(t, Draft{}.ServiceIDs())
}
