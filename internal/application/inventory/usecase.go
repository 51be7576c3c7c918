// Package inventory casos de uso de catálogo (categorías, proveedores, repuestos),
// libro de movimientos de stock y órdenes de compra.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	domaininv "github.com/jhoicas/taller-api/internal/domain/inventory"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// InitialStockNote nota del movimiento que registra el stock inicial de un repuesto.
const InitialStockNote = "Initial stock"

// CatalogUseCase categorías, proveedores y repuestos.
// CurrentStock no se edita aquí: solo cambia con movimientos del libro.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	parts      repository.PartRepository
	tx         ports.TxRunner
	phones     PhoneNormalizer
}

// NewCatalogUseCase construye el caso de uso. phones puede ser nil.
func NewCatalogUseCase(
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	parts repository.PartRepository,
	tx ports.TxRunner,
	phones PhoneNormalizer,
) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, suppliers: suppliers, parts: parts, tx: tx, phones: phones}
}

// ── Categorías ────────────────────────────────────────────────────────────────

// ListCategories categorías; vacío sin acceso a inventario.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, actor entity.Actor, onlyActive bool) ([]dto.CategoryResponse, error) {
	out := []dto.CategoryResponse{}
	if !access.Can(actor.Role, access.Inventory) {
		return out, nil
	}
	rows, err := uc.categories.List(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("inventory: listar categorías: %w", err)
	}
	for _, c := range rows {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// CreateCategory alta de categoría. Nombre repetido: ErrDuplicate.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, actor entity.Actor, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	if err := uc.ensureParent(ctx, "", in.ParentID); err != nil {
		return nil, err
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ParentID:    emptyToNil(in.ParentID),
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   time.Now(),
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("inventory: crear categoría: %w", err)
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// UpdateCategory reemplaza nombre, descripción, padre y estado.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, actor entity.Actor, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventory: obtener categoría: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.ensureParent(ctx, id, in.ParentID); err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.ParentID = emptyToNil(in.ParentID)
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("inventory: actualizar categoría: %w", err)
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// DeleteCategory elimina la categoría; los repuestos quedan sin categoría.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return err
	}
	return uc.categories.Delete(ctx, id)
}

func (uc *CatalogUseCase) ensureParent(ctx context.Context, selfID string, parentID *string) error {
	if parentID == nil || *parentID == "" {
		return nil
	}
	if *parentID == selfID {
		return domain.NewValidationError("parent_id", "una categoría no puede ser su propio padre")
	}
	p, err := uc.categories.GetByID(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("inventory: obtener categoría padre: %w", err)
	}
	if p == nil {
		return domain.NewValidationError("parent_id", "categoría inexistente")
	}
	return nil
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// ListSuppliers proveedores con búsqueda por nombre, contacto o email.
func (uc *CatalogUseCase) ListSuppliers(ctx context.Context, actor entity.Actor, search string, page dto.PageRequest) (dto.ListResponse[dto.SupplierResponse], error) {
	page.DefaultPage()
	if !access.Can(actor.Role, access.Inventory) {
		return dto.NewList[dto.SupplierResponse](nil, page), nil
	}
	rows, err := uc.suppliers.List(ctx, strings.TrimSpace(search), repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return dto.ListResponse[dto.SupplierResponse]{}, fmt.Errorf("inventory: listar proveedores: %w", err)
	}
	items := make([]dto.SupplierResponse, 0, len(rows))
	for _, s := range rows {
		items = append(items, toSupplierResponse(s))
	}
	return dto.NewList(items, page), nil
}

// CreateSupplier alta de proveedor con teléfono normalizado.
func (uc *CatalogUseCase) CreateSupplier(ctx context.Context, actor entity.Actor, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Supplier{ID: uuid.New().String(), IsActive: true, CreatedBy: actor.Ref(), CreatedAt: now}
	if err := uc.applySupplier(s, in, now); err != nil {
		return nil, err
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("inventory: crear proveedor: %w", err)
	}
	out := toSupplierResponse(s)
	return &out, nil
}

// GetSupplier detalle del proveedor.
func (uc *CatalogUseCase) GetSupplier(ctx context.Context, actor entity.Actor, id string) (*dto.SupplierResponse, error) {
	s, err := uc.loadSupplier(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toSupplierResponse(s)
	return &out, nil
}

// UpdateSupplier reemplaza los datos del proveedor.
func (uc *CatalogUseCase) UpdateSupplier(ctx context.Context, actor entity.Actor, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	s, err := uc.loadSupplier(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := uc.applySupplier(s, in, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.suppliers.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("inventory: actualizar proveedor: %w", err)
	}
	out := toSupplierResponse(s)
	return &out, nil
}

// DeleteSupplier elimina el proveedor.
func (uc *CatalogUseCase) DeleteSupplier(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return err
	}
	if _, err := uc.loadSupplier(ctx, actor, id); err != nil {
		return err
	}
	return uc.suppliers.Delete(ctx, id)
}

func (uc *CatalogUseCase) applySupplier(s *entity.Supplier, in dto.SupplierRequest, now time.Time) error {
	phone := in.Phone
	if uc.phones != nil && phone != "" {
		normalized, err := uc.phones.Normalize(phone)
		if err != nil {
			return domain.NewValidationError("phone", "teléfono inválido")
		}
		phone = normalized
	}
	if in.CreditLimit != nil && in.CreditLimit.IsNegative() {
		return domain.NewValidationError("credit_limit", "no puede ser negativo")
	}
	country := in.Country
	if country == "" {
		country = "USA"
	}
	s.Name = strings.TrimSpace(in.Name)
	s.ContactPerson = in.ContactPerson
	s.Email = strings.ToLower(strings.TrimSpace(in.Email))
	s.Phone = phone
	s.AddressLine1 = in.AddressLine1
	s.AddressLine2 = in.AddressLine2
	s.City = in.City
	s.State = in.State
	s.PostalCode = in.PostalCode
	s.Country = country
	s.TaxID = in.TaxID
	s.Website = in.Website
	s.PaymentTerms = in.PaymentTerms
	s.CreditLimit = in.CreditLimit
	s.Notes = in.Notes
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	s.UpdatedAt = now
	return nil
}

func (uc *CatalogUseCase) loadSupplier(ctx context.Context, actor entity.Actor, id string) (*entity.Supplier, error) {
	if !access.Can(actor.Role, access.Inventory) {
		return nil, domain.ErrNotFound
	}
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventory: obtener proveedor: %w", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// ── Repuestos ─────────────────────────────────────────────────────────────────

// ListParts repuestos filtrados; vacío sin acceso.
func (uc *CatalogUseCase) ListParts(ctx context.Context, actor entity.Actor, in dto.PartListRequest) (dto.ListResponse[dto.PartResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Inventory) {
		return dto.NewList[dto.PartResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.parts.List(ctx, repository.PartFilter{
		CategoryID: in.CategoryID,
		SupplierID: in.SupplierID,
		Search:     strings.TrimSpace(in.Search),
		IsActive:   dto.ParseActive(in.Active),
		LowStock:   in.LowStock,
		Page:       repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.PartResponse]{}, fmt.Errorf("inventory: listar repuestos: %w", err)
	}
	items := make([]dto.PartResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, toPartResponse(p))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// CreatePart alta del repuesto con stock cero; initial_stock > 0 entra como movimiento adjustment
// en la misma transacción.
func (uc *CatalogUseCase) CreatePart(ctx context.Context, actor entity.Actor, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	if err := validatePrices(in.CostPrice, in.SellingPrice); err != nil {
		return nil, err
	}
	if in.InitialStock.IsNegative() {
		return nil, domain.NewValidationError("initial_stock", "no puede ser negativo")
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitPiece
	}
	now := time.Now()
	part := &entity.Part{
		ID:              uuid.New().String(),
		SKU:             strings.TrimSpace(in.SKU),
		Name:            in.Name,
		Description:     in.Description,
		Brand:           in.Brand,
		Model:           in.Model,
		PartNumber:      in.PartNumber,
		CategoryID:      emptyToNil(in.CategoryID),
		SupplierID:      emptyToNil(in.SupplierID),
		CostPrice:       in.CostPrice,
		SellingPrice:    in.SellingPrice,
		MinimumStock:    in.MinimumStock,
		MaximumStock:    in.MaximumStock,
		ReorderPoint:    in.ReorderPoint,
		ReorderQuantity: in.ReorderQuantity,
		Unit:            unit,
		Location:        in.Location,
		Notes:           in.Notes,
		IsActive:        true,
		CreatedBy:       actor.Ref(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Parts.Create(ctx, part); err != nil {
			return err
		}
		if !in.InitialStock.IsPositive() {
			return nil
		}
		mov, err := domaininv.Apply(part, domaininv.MovementInput{
			MovementType:  entity.MovementAdjustment,
			Quantity:      in.InitialStock,
			ReferenceType: "manual",
			Notes:         InitialStockNote,
			CreatedBy:     actor.Ref(),
		}, uuid.New().String(), now)
		if err != nil {
			return err
		}
		if err := r.Parts.UpdateStock(ctx, part); err != nil {
			return err
		}
		return r.StockMovements.Create(ctx, mov)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("inventory: sku %s: %w", part.SKU, err)
		}
		return nil, fmt.Errorf("inventory: crear repuesto: %w", err)
	}
	log.Info().Str("part_id", part.ID).Str("sku", part.SKU).Str("stock", part.CurrentStock.String()).Msg("repuesto creado")
	out := toPartResponse(part)
	return &out, nil
}

// GetPart detalle con predicados calculados.
func (uc *CatalogUseCase) GetPart(ctx context.Context, actor entity.Actor, id string) (*dto.PartResponse, error) {
	p, err := uc.loadPart(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toPartResponse(p)
	return &out, nil
}

// UpdatePart edita los datos del repuesto. El stock no se toca.
func (uc *CatalogUseCase) UpdatePart(ctx context.Context, actor entity.Actor, id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	p, err := uc.loadPart(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	setString(&p.Name, in.Name)
	setString(&p.Description, in.Description)
	setString(&p.Brand, in.Brand)
	setString(&p.Model, in.Model)
	setString(&p.PartNumber, in.PartNumber)
	if in.CategoryID != nil {
		p.CategoryID = emptyToNil(in.CategoryID)
	}
	if in.SupplierID != nil {
		p.SupplierID = emptyToNil(in.SupplierID)
	}
	if in.CostPrice != nil {
		p.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	if err := validatePrices(p.CostPrice, p.SellingPrice); err != nil {
		return nil, err
	}
	if in.MinimumStock != nil {
		p.MinimumStock = *in.MinimumStock
	}
	if in.MaximumStock != nil {
		p.MaximumStock = in.MaximumStock
	}
	if in.ReorderPoint != nil {
		p.ReorderPoint = *in.ReorderPoint
	}
	if in.ReorderQuantity != nil {
		p.ReorderQuantity = *in.ReorderQuantity
	}
	setString(&p.Unit, in.Unit)
	setString(&p.Location, in.Location)
	setString(&p.Notes, in.Notes)
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now()
	if err := uc.parts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("inventory: actualizar repuesto: %w", err)
	}
	// releer: Update no persiste current_stock
	return uc.GetPart(ctx, actor, id)
}

// DeletePart elimina el repuesto.
func (uc *CatalogUseCase) DeletePart(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return err
	}
	if _, err := uc.loadPart(ctx, actor, id); err != nil {
		return err
	}
	return uc.parts.Delete(ctx, id)
}

func (uc *CatalogUseCase) loadPart(ctx context.Context, actor entity.Actor, id string) (*entity.Part, error) {
	if !access.Can(actor.Role, access.Inventory) {
		return nil, domain.ErrNotFound
	}
	p, err := uc.parts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventory: obtener repuesto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
