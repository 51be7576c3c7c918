package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Categorías y proveedores ──────────────────────────────────────────────────

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse categoría de repuestos.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ParentID    *string   `json:"parent_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// SupplierRequest alta o edición de proveedor.
type SupplierRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	ContactPerson string           `json:"contact_person" validate:"omitempty,max=100"`
	Email         string           `json:"email" validate:"omitempty,email"`
	Phone         string           `json:"phone" validate:"omitempty,max=20"`
	AddressLine1  string           `json:"address_line1" validate:"omitempty,max=255"`
	AddressLine2  string           `json:"address_line2" validate:"omitempty,max=255"`
	City          string           `json:"city" validate:"omitempty,max=100"`
	State         string           `json:"state" validate:"omitempty,max=100"`
	PostalCode    string           `json:"postal_code" validate:"omitempty,max=20"`
	Country       string           `json:"country" validate:"omitempty,max=100"`
	TaxID         string           `json:"tax_id" validate:"omitempty,max=50"`
	Website       string           `json:"website" validate:"omitempty,url"`
	PaymentTerms  string           `json:"payment_terms" validate:"omitempty,max=100"`
	CreditLimit   *decimal.Decimal `json:"credit_limit"`
	Notes         string           `json:"notes"`
	IsActive      *bool            `json:"is_active"`
}

// SupplierResponse proveedor.
type SupplierResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	ContactPerson string           `json:"contact_person,omitempty"`
	Email         string           `json:"email,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	AddressLine1  string           `json:"address_line1,omitempty"`
	AddressLine2  string           `json:"address_line2,omitempty"`
	City          string           `json:"city,omitempty"`
	State         string           `json:"state,omitempty"`
	PostalCode    string           `json:"postal_code,omitempty"`
	Country       string           `json:"country"`
	TaxID         string           `json:"tax_id,omitempty"`
	Website       string           `json:"website,omitempty"`
	PaymentTerms  string           `json:"payment_terms,omitempty"`
	CreditLimit   *decimal.Decimal `json:"credit_limit"`
	Notes         string           `json:"notes,omitempty"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ── Repuestos ─────────────────────────────────────────────────────────────────

// CreatePartRequest body para POST /api/parts. initial_stock se registra como movimiento adjustment.
type CreatePartRequest struct {
	SKU             string           `json:"sku" validate:"required,max=100"`
	Name            string           `json:"name" validate:"required,max=200"`
	Description     string           `json:"description"`
	Brand           string           `json:"brand" validate:"omitempty,max=100"`
	Model           string           `json:"model" validate:"omitempty,max=100"`
	PartNumber      string           `json:"part_number" validate:"omitempty,max=100"`
	CategoryID      *string          `json:"category_id"`
	SupplierID      *string          `json:"supplier_id"`
	CostPrice       decimal.Decimal  `json:"cost_price"`
	SellingPrice    decimal.Decimal  `json:"selling_price"`
	InitialStock    decimal.Decimal  `json:"initial_stock"`
	MinimumStock    decimal.Decimal  `json:"minimum_stock"`
	MaximumStock    *decimal.Decimal `json:"maximum_stock"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	Unit            string           `json:"unit" validate:"omitempty,oneof=piece kg liter meter box set other"`
	Location        string           `json:"location" validate:"omitempty,max=100"`
	Notes           string           `json:"notes"`
}

// UpdatePartRequest actualización parcial (sin current_stock: el stock se mueve con movimientos).
type UpdatePartRequest struct {
	SKU             *string          `json:"sku" validate:"omitempty,max=100"`
	Name            *string          `json:"name" validate:"omitempty,max=200"`
	Description     *string          `json:"description"`
	Brand           *string          `json:"brand" validate:"omitempty,max=100"`
	Model           *string          `json:"model" validate:"omitempty,max=100"`
	PartNumber      *string          `json:"part_number" validate:"omitempty,max=100"`
	CategoryID      *string          `json:"category_id"`
	SupplierID      *string          `json:"supplier_id"`
	CostPrice       *decimal.Decimal `json:"cost_price"`
	SellingPrice    *decimal.Decimal `json:"selling_price"`
	MinimumStock    *decimal.Decimal `json:"minimum_stock"`
	MaximumStock    *decimal.Decimal `json:"maximum_stock"`
	ReorderPoint    *decimal.Decimal `json:"reorder_point"`
	ReorderQuantity *decimal.Decimal `json:"reorder_quantity"`
	Unit            *string          `json:"unit" validate:"omitempty,oneof=piece kg liter meter box set other"`
	Location        *string          `json:"location" validate:"omitempty,max=100"`
	Notes           *string          `json:"notes"`
	IsActive        *bool            `json:"is_active"`
}

// PartListRequest filtros de GET /api/parts.
type PartListRequest struct {
	PageRequest
	CategoryID string `query:"category_id"`
	SupplierID string `query:"supplier_id"`
	Search     string `query:"search"`
	Active     string `query:"is_active"`
	LowStock   bool   `query:"low_stock"`
}

// PartResponse repuesto con sus predicados calculados en cada lectura.
type PartResponse struct {
	ID              string           `json:"id"`
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Brand           string           `json:"brand,omitempty"`
	Model           string           `json:"model,omitempty"`
	PartNumber      string           `json:"part_number,omitempty"`
	CategoryID      *string          `json:"category_id"`
	SupplierID      *string          `json:"supplier_id"`
	CostPrice       decimal.Decimal  `json:"cost_price"`
	SellingPrice    decimal.Decimal  `json:"selling_price"`
	CurrentStock    decimal.Decimal  `json:"current_stock"`
	MinimumStock    decimal.Decimal  `json:"minimum_stock"`
	MaximumStock    *decimal.Decimal `json:"maximum_stock"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	Unit            string           `json:"unit"`
	Location        string           `json:"location,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	IsActive        bool             `json:"is_active"`
	IsLowStock      bool             `json:"is_low_stock"`
	NeedsReorder    bool             `json:"needs_reorder"`
	ProfitMargin    decimal.Decimal  `json:"profit_margin"`
	CreatedBy       *string          `json:"created_by"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// RecordMovementRequest body para POST /api/stock-movements.
type RecordMovementRequest struct {
	PartID        string          `json:"part_id" validate:"required"`
	MovementType  string          `json:"movement_type" validate:"required,oneof=purchase sale return adjustment damage transfer other"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType string          `json:"reference_type" validate:"omitempty,max=50"`
	ReferenceID   *string         `json:"reference_id"`
	Notes         string          `json:"notes"`
}

// StockMovementListRequest filtros de GET /api/stock-movements.
type StockMovementListRequest struct {
	PageRequest
	PartID       string `query:"part_id"`
	MovementType string `query:"movement_type"`
}

// StockMovementResponse movimiento del libro.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	PartID        string          `json:"part_id"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   *string         `json:"reference_id"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     *string         `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ── Órdenes de compra ─────────────────────────────────────────────────────────

// PurchaseOrderItemRequest línea del pedido.
type PurchaseOrderItemRequest struct {
	PartID          string          `json:"part_id" validate:"required"`
	QuantityOrdered decimal.Decimal `json:"quantity_ordered"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// UpdatePurchaseOrderItemRequest edición parcial de una línea del pedido.
type UpdatePurchaseOrderItemRequest struct {
	QuantityOrdered *decimal.Decimal `json:"quantity_ordered"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID       string                     `json:"supplier_id" validate:"required"`
	Status           string                     `json:"status" validate:"omitempty,oneof=draft sent confirmed"`
	OrderDate        *time.Time                 `json:"order_date"`
	ExpectedDelivery *time.Time                 `json:"expected_delivery"`
	TaxAmount        decimal.Decimal            `json:"tax_amount"`
	ShippingCost     decimal.Decimal            `json:"shipping_cost"`
	Notes            string                     `json:"notes"`
	TermsConditions  string                     `json:"terms_conditions"`
	Items            []PurchaseOrderItemRequest `json:"items" validate:"dive"`
}

// UpdatePurchaseOrderRequest actualización parcial de la cabecera.
type UpdatePurchaseOrderRequest struct {
	Status           *string          `json:"status" validate:"omitempty,oneof=draft sent confirmed cancelled"`
	ExpectedDelivery *time.Time       `json:"expected_delivery"`
	TaxAmount        *decimal.Decimal `json:"tax_amount"`
	ShippingCost     *decimal.Decimal `json:"shipping_cost"`
	Notes            *string          `json:"notes"`
	TermsConditions  *string          `json:"terms_conditions"`
}

// ReceiveItemRequest cantidad recibida para una línea.
type ReceiveItemRequest struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceivePurchaseOrderRequest body para POST /api/purchase-orders/:id/receive.
// Sin items se recibe el saldo pendiente de cada línea.
type ReceivePurchaseOrderRequest struct {
	Items []ReceiveItemRequest `json:"items" validate:"dive"`
	Notes string               `json:"notes"`
}

// PurchaseOrderListRequest filtros de GET /api/purchase-orders.
type PurchaseOrderListRequest struct {
	PageRequest
	SupplierID string `query:"supplier_id"`
	Status     string `query:"status"`
}

// PurchaseOrderItemResponse línea del pedido.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	PartID           string          `json:"part_id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
}

// PurchaseOrderResponse orden de compra.
type PurchaseOrderResponse struct {
	ID               string                      `json:"id"`
	PONumber         string                      `json:"po_number"`
	SupplierID       string                      `json:"supplier_id"`
	Status           string                      `json:"status"`
	OrderDate        time.Time                   `json:"order_date"`
	ExpectedDelivery *time.Time                  `json:"expected_delivery"`
	ActualDelivery   *time.Time                  `json:"actual_delivery"`
	Subtotal         decimal.Decimal             `json:"subtotal"`
	TaxAmount        decimal.Decimal             `json:"tax_amount"`
	ShippingCost     decimal.Decimal             `json:"shipping_cost"`
	TotalAmount      decimal.Decimal             `json:"total_amount"`
	Notes            string                      `json:"notes,omitempty"`
	TermsConditions  string                      `json:"terms_conditions,omitempty"`
	CreatedBy        *string                     `json:"created_by"`
	UpdatedAt        time.Time                   `json:"updated_at"`
	Items            []PurchaseOrderItemResponse `json:"items,omitempty"`
}

// ── Estadísticas ──────────────────────────────────────────────────────────────

// LowStockItemDTO repuesto en o por debajo del mínimo.
type LowStockItemDTO struct {
	PartID       string          `json:"part_id"`
	PartName     string          `json:"part_name"`
	SKU          string          `json:"sku"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Category     string          `json:"category,omitempty"`
	Supplier     string          `json:"supplier,omitempty"`
	NeedsReorder bool            `json:"needs_reorder"`
}

// InventoryStatsResponse salida de GET /api/parts/stats.
type InventoryStatsResponse struct {
	TotalParts      int               `json:"total_parts"`
	LowStockParts   int               `json:"low_stock_parts"`
	OutOfStockParts int               `json:"out_of_stock_parts"`
	TotalSuppliers  int               `json:"total_suppliers"`
	PartsByCategory []LabelCountDTO   `json:"parts_by_category"`
	LowStockItems   []LowStockItemDTO `json:"low_stock_items"`
}

// LowStockAlertsResponse salida de GET /api/parts/low-stock-alerts.
type LowStockAlertsResponse struct {
	Alerts []LowStockItemDTO `json:"alerts"`
	Count  int               `json:"count"`
}
