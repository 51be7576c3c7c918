package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
)

// InventoryHandler catálogo (categorías, proveedores, repuestos), libro de stock y alertas.
type InventoryHandler struct {
	catalog       *inventory.CatalogUseCase
	stock         *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(catalog *inventory.CatalogUseCase, stock *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{catalog: catalog, stock: stock, replenishment: replenishment}
}

// ── Categorías ────────────────────────────────────────────────────────────────

// ListCategories GET /api/categories?is_active=true
func (h *InventoryHandler) ListCategories(c *fiber.Ctx) error {
	active := dto.ParseActive(c.Query("is_active"))
	out, err := h.catalog.ListCategories(c.Context(), actorFrom(c), active != nil && *active)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory POST /api/categories
func (h *InventoryHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.CreateCategory(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory PUT /api/categories/:id
func (h *InventoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CategoryRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.UpdateCategory(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory DELETE /api/categories/:id
func (h *InventoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.catalog.DeleteCategory(c.Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

type supplierQuery struct {
	dto.PageRequest
	Search string `query:"search"`
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "nombre, contacto o email"
// @Param        limit   query  int     false  "máx. resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.SupplierResponse]
// @Router       /api/suppliers [get]
func (h *InventoryHandler) ListSuppliers(c *fiber.Ctx) error {
	var q supplierQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.ListSuppliers(c.Context(), actorFrom(c), q.Search, q.PageRequest)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSupplier POST /api/suppliers
func (h *InventoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.CreateSupplier(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSupplier GET /api/suppliers/:id
func (h *InventoryHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.GetSupplier(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSupplier PUT /api/suppliers/:id
func (h *InventoryHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SupplierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.UpdateSupplier(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier DELETE /api/suppliers/:id
func (h *InventoryHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.catalog.DeleteSupplier(c.Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Repuestos ─────────────────────────────────────────────────────────────────

// ListParts godoc
// @Summary      Listar repuestos
// @Description  is_low_stock, needs_reorder y profit_margin se calculan en cada lectura.
// @Tags         parts
// @Produce      json
// @Security     BearerAuth
// @Param        category_id  query  string  false  "categoría"
// @Param        supplier_id  query  string  false  "proveedor"
// @Param        search       query  string  false  "SKU, nombre, marca o número de parte"
// @Param        is_active    query  string  false  "true | false"
// @Param        low_stock    query  bool    false  "solo stock bajo"
// @Param        limit        query  int     false  "máx. resultados"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.PartResponse]
// @Router       /api/parts [get]
func (h *InventoryHandler) ListParts(c *fiber.Ctx) error {
	var in dto.PartListRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.ListParts(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePart godoc
// @Summary      Crear repuesto
// @Description  initial_stock mayor que cero queda registrado como movimiento de ajuste.
// @Tags         parts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePartRequest  true  "repuesto"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "SKU repetido"
// @Router       /api/parts [post]
func (h *InventoryHandler) CreatePart(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.CreatePart(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPart GET /api/parts/:id
func (h *InventoryHandler) GetPart(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.GetPart(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePart PUT /api/parts/:id. current_stock no se edita aquí.
func (h *InventoryHandler) UpdatePart(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdatePartRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.catalog.UpdatePart(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeletePart DELETE /api/parts/:id
func (h *InventoryHandler) DeletePart(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.catalog.DeletePart(c.Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// ListMovements GET /api/stock-movements
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.StockMovementListRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.stock.ListMovements(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  purchase, return y adjustment suman; sale y damage restan; transfer y other no mueven stock.
// @Tags         stock-movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RecordMovementRequest  true  "movimiento"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.stock.RecordMovement(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── Indicadores ───────────────────────────────────────────────────────────────

// Stats godoc
// @Summary      Estadísticas de inventario
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.InventoryStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	out, err := h.replenishment.Stats(c.Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStockAlerts godoc
// @Summary      Alertas de stock bajo
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock-alerts [get]
func (h *InventoryHandler) LowStockAlerts(c *fiber.Ctx) error {
	out, err := h.replenishment.LowStockAlerts(c.Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
