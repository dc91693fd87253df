package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testOrders() []ProductionOrder {
	return []ProductionOrder{
		{OrderCode: "168343", ExpectedBarcode: "7899600724613", ExpectedQuantity: 2, ProductID: 42, Species: "CALCADOS", SubSpecies: "SANDALIA"},
		{OrderCode: "168344", ExpectedBarcode: "7899600724620", ExpectedQuantity: 10, ProductID: 43, Species: "CALCADOS", SubSpecies: "TENIS"},
		{OrderCode: "168345", ExpectedBarcode: "", ExpectedQuantity: 5, ProductID: 44, Species: "BOLSAS", SubSpecies: "COURO"},
	}
}

func TestSnapshot_Resolve(t *testing.T) {
	s := NewSnapshot(testOrders())

	order, ok := s.Resolve("168343")
	assert.True(t, ok)
	assert.Equal(t, "7899600724613", order.ExpectedBarcode)
	assert.Equal(t, 2, order.ExpectedQuantity)

	_, ok = s.Resolve("999999")
	assert.False(t, ok)
}

func TestSnapshot_DropsDuplicateCodes(t *testing.T) {
	orders := testOrders()
	orders = append(orders, ProductionOrder{OrderCode: "168343", ExpectedQuantity: 99})
	s := NewSnapshot(orders)

	assert.Equal(t, 3, s.Len())
	order, ok := s.Resolve("168343")
	assert.True(t, ok)
	assert.Equal(t, 2, order.ExpectedQuantity)
}

func TestSnapshot_Filter(t *testing.T) {
	s := NewSnapshot(testOrders())

	tests := []struct {
		name       string
		species    string
		subSpecies string
		want       int
	}{
		{"No filter", "", "", 3},
		{"Species only", "CALCADOS", "", 2},
		{"Species and sub-species", "CALCADOS", "SANDALIA", 1},
		{"Unknown species", "MOVEIS", "", 0},
		{"Sub-species only", "", "COURO", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, s.Filter(tt.species, tt.subSpecies), tt.want)
		})
	}
}

func TestSnapshot_SpeciesEnumeration(t *testing.T) {
	s := NewSnapshot(testOrders())

	assert.Equal(t, []string{"BOLSAS", "CALCADOS"}, s.Species())
	assert.Equal(t, []string{"SANDALIA", "TENIS"}, s.SubSpecies("CALCADOS"))
	assert.Equal(t, []string{"COURO"}, s.SubSpecies("BOLSAS"))
}

func TestOpRow_ToNormalized(t *testing.T) {
	row := opRow{
		OrderCode:    " 168343 ",
		Species:      "PRODUTO ACABADO - CALCADOS",
		SubSpecies:   "SANDALIA",
		ProductID:    42,
		ProductName:  "SANDALIA VERAO ",
		PlannedQty:   2,
		BarcodeValue: "7899600724613",
	}

	order := row.ToNormalized()
	assert.Equal(t, "168343", order.OrderCode)
	assert.Equal(t, "CALCADOS", order.Species)
	assert.Equal(t, "SANDALIA VERAO", order.ProductName)
	assert.Equal(t, 2, order.ExpectedQuantity)
}

func TestOpRow_ToNormalized_NegativeQuantityClamped(t *testing.T) {
	order := opRow{OrderCode: "1", PlannedQty: -3}.ToNormalized()
	assert.Equal(t, 0, order.ExpectedQuantity)
}
