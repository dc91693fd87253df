package catalog

import "strings"

// ProductionOrder is one scheduled unit of manufacturing work ("OP"). It is
// immutable once loaded; the reconciliation core only reads it.
type ProductionOrder struct {
	// OrderCode is unique within a snapshot.
	OrderCode string `json:"order_code"`

	// ExpectedBarcode is the product barcode the ERP associates with the
	// order. It may be empty when the catalog carries no barcode data.
	ExpectedBarcode string `json:"expected_barcode"`

	// ExpectedQuantity is the planned number of units, never negative.
	ExpectedQuantity int `json:"expected_quantity"`

	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Species     string `json:"species"`
	SubSpecies  string `json:"sub_species"`
}

// opRow is the joined ERP row the order query produces.
type opRow struct {
	OrderCode    string `gorm:"column:cod_op"`
	Species      string `gorm:"column:especie"`
	SubSpecies   string `gorm:"column:sub_especie"`
	ProductID    int    `gorm:"column:id_produto"`
	ProductName  string `gorm:"column:nome_produto"`
	PlannedQty   int    `gorm:"column:qtd_prevista"`
	BarcodeValue string `gorm:"column:codigo_barras"`
}

// ToNormalized converts the raw ERP row into a ProductionOrder.
func (r opRow) ToNormalized() ProductionOrder {
	qty := r.PlannedQty
	if qty < 0 {
		qty = 0
	}
	return ProductionOrder{
		OrderCode:        strings.TrimSpace(r.OrderCode),
		ExpectedBarcode:  strings.TrimSpace(r.BarcodeValue),
		ExpectedQuantity: qty,
		ProductID:        r.ProductID,
		ProductName:      strings.TrimSpace(r.ProductName),
		Species:          cleanSpecies(r.Species),
		SubSpecies:       strings.TrimSpace(r.SubSpecies),
	}
}

// cleanSpecies strips the finished-goods prefix the ERP prepends to species names.
func cleanSpecies(name string) string {
	name = strings.ReplaceAll(name, "PRODUTO ACABADO -", "")
	return strings.TrimSpace(name)
}
