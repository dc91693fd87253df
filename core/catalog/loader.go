package catalog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Loader reads production orders from the ERP database.
type Loader struct {
	db *gorm.DB
}

// NewLoader creates a catalog loader over an ERP database connection.
func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// LoadOrders returns every production order scheduled inside [from, to).
// An empty result is not an error; connectivity failures are.
func (l *Loader) LoadOrders(ctx context.Context, from, to time.Time) ([]ProductionOrder, error) {
	var rows []opRow
	err := l.db.WithContext(ctx).
		Table("os_producao_linha_prod opp").
		Select(`sopp.codigo_barras AS cod_op,
			e.nome AS especie,
			se.nome AS sub_especie,
			p.id_produto AS id_produto,
			p.nome AS nome_produto,
			opp.quantidade_ref_prev_prod AS qtd_prevista,
			cb.codigo_barras AS codigo_barras`).
		Joins("LEFT JOIN grade_cor gc ON gc.id_grade_cor = opp.id_grade_cor").
		Joins("LEFT JOIN produto_grade pg ON pg.id_produto_grade = gc.id_produto_grade").
		Joins("LEFT JOIN produto p ON p.id_produto = pg.id_produto").
		Joins("LEFT JOIN codigo_barras cb ON cb.id_produto = p.id_produto").
		Joins("LEFT JOIN subdivisao_os_prod_linha_prod sopp ON sopp.id_ordem_serv_prod_linha = opp.id_os_producao_linha_prod").
		Joins("LEFT JOIN especie e ON e.id_especie = p.id_especie").
		Joins("LEFT JOIN sub_especie se ON se.id_sub_especie = p.id_sub_especie").
		Where("opp.data_prev_inicio >= ? AND opp.data_prev_inicio < ?", from, to).
		Order("opp.id_os_producao_linha_prod DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load production orders: %w", err)
	}

	orders := make([]ProductionOrder, 0, len(rows))
	for _, row := range rows {
		order := row.ToNormalized()
		if order.OrderCode == "" {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// LoadDay returns the orders scheduled for a single calendar day.
func (l *Loader) LoadDay(ctx context.Context, day time.Time) ([]ProductionOrder, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return l.LoadOrders(ctx, from, from.AddDate(0, 0, 1))
}
