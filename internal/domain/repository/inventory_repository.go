package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyActive bool) ([]*entity.Category, error)
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search string, p Page) ([]*entity.Supplier, error)
}

// PartFilter filtros de repuestos.
type PartFilter struct {
	CategoryID string
	SupplierID string
	Search     string // sku, nombre, marca o número de parte
	IsActive   *bool
	LowStock   bool
	Page
}

// PartRepository define el puerto de persistencia para Part.
// Update no toca current_stock; el stock solo cambia con UpdateStock desde el libro de movimientos.
type PartRepository interface {
	Create(ctx context.Context, p *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Part, error)
	// GetForUpdate bloquea la fila del repuesto hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Part, error)
	Update(ctx context.Context, p *entity.Part) error
	UpdateStock(ctx context.Context, p *entity.Part) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PartFilter) ([]*entity.Part, error)
}

// StockMovementFilter filtros del libro de movimientos.
type StockMovementFilter struct {
	PartID       string
	MovementType string
	Page
}

// StockMovementRepository libro de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	List(ctx context.Context, f StockMovementFilter) ([]*entity.StockMovement, error)
}

// PurchaseOrderFilter filtros de órdenes de compra.
type PurchaseOrderFilter struct {
	SupplierID string
	Status     string
	Page
}

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder y sus líneas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PurchaseOrderFilter) ([]*entity.PurchaseOrder, error)

	CreateItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	UpdateItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error)
}
