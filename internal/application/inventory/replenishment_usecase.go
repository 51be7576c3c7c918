package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// statsLowStockLimit cantidad de repuestos con stock bajo que acompaña a las estadísticas.
const statsLowStockLimit = 10

// ReplenishmentUseCase estadísticas de inventario y alertas de reposición.
type ReplenishmentUseCase struct {
	stats repository.StatsRepository
}

// NewReplenishmentUseCase construye el caso de uso.
func NewReplenishmentUseCase(stats repository.StatsRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{stats: stats}
}

// Stats conteos de inventario y los primeros repuestos con stock bajo.
func (uc *ReplenishmentUseCase) Stats(ctx context.Context, actor entity.Actor) (*dto.InventoryStatsResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	s, err := uc.stats.InventoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: estadísticas: %w", err)
	}
	low, err := uc.stats.LowStockItems(ctx, statsLowStockLimit)
	if err != nil {
		return nil, fmt.Errorf("inventory: stock bajo: %w", err)
	}
	byCategory := make([]dto.LabelCountDTO, 0, len(s.ByCategory))
	for _, c := range s.ByCategory {
		byCategory = append(byCategory, dto.LabelCountDTO{Label: c.Label, Count: c.Count})
	}
	return &dto.InventoryStatsResponse{
		TotalParts:      s.TotalParts,
		LowStockParts:   s.LowStockParts,
		OutOfStockParts: s.OutOfStockParts,
		TotalSuppliers:  s.ActiveSuppliers,
		PartsByCategory: byCategory,
		LowStockItems:   toLowStockDTOs(low),
	}, nil
}

// LowStockAlerts todos los repuestos activos en o por debajo del mínimo, con la marca de reorden.
func (uc *ReplenishmentUseCase) LowStockAlerts(ctx context.Context, actor entity.Actor) (*dto.LowStockAlertsResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	low, err := uc.stats.LowStockItems(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("inventory: alertas de stock: %w", err)
	}
	alerts := toLowStockDTOs(low)
	return &dto.LowStockAlertsResponse{Alerts: alerts, Count: len(alerts)}, nil
}

func toLowStockDTOs(rows []repository.LowStockItem) []dto.LowStockItemDTO {
	out := make([]dto.LowStockItemDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockItemDTO{
			PartID:       r.PartID,
			PartName:     r.Name,
			SKU:          r.SKU,
			CurrentStock: r.CurrentStock,
			MinimumStock: r.MinimumStock,
			Category:     r.Category,
			Supplier:     r.Supplier,
			NeedsReorder: r.CurrentStock.LessThanOrEqual(r.ReorderPoint),
		})
	}
	return out
}
