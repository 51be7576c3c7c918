package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.PartRepository     = (*PartRepo)(nil)
)

// ── Categorías ────────────────────────────────────────────────────────────────

const categoryColumns = `id, name, description, parent_id, is_active, created_at`

// CategoryRepo categorías de repuestos.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(s scanner) (*entity.Category, error) {
	var c entity.Category
	err := s.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.IsActive, &c.CreatedAt)
	return &c, err
}

// Create inserta una categoría. Nombre repetido: ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Description, c.ParentID, c.IsActive, c.CreatedAt)
	return writeErr("insert category", err)
}

// GetByID obtiene una categoría.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id), "get category", scanCategory)
}

// GetByName búsqueda exacta por nombre.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name), "get category by name", scanCategory)
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3, parent_id = $4, is_active = $5 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.ParentID, c.IsActive)
	return mustAffect(tag, "update category", err)
}

// Delete elimina la categoría; subcategorías en cascada y repuestos quedan sin categoría.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return mustAffect(tag, "delete category", err)
}

// List por nombre.
func (r *CategoryRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if onlyActive {
		query += ` WHERE is_active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name`)
	return many(rows, err, "list categories", scanCategory)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

const supplierColumns = `id, name, contact_person, email, phone, address_line1, address_line2, city, state,
	postal_code, country, tax_id, website, payment_terms, credit_limit, notes, is_active, created_by,
	created_at, updated_at`

// SupplierRepo proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(s scanner) (*entity.Supplier, error) {
	var sp entity.Supplier
	err := s.Scan(&sp.ID, &sp.Name, &sp.ContactPerson, &sp.Email, &sp.Phone, &sp.AddressLine1, &sp.AddressLine2,
		&sp.City, &sp.State, &sp.PostalCode, &sp.Country, &sp.TaxID, &sp.Website, &sp.PaymentTerms,
		&sp.CreditLimit, &sp.Notes, &sp.IsActive, &sp.CreatedBy, &sp.CreatedAt, &sp.UpdatedAt)
	return &sp, err
}

// Create inserta un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.AddressLine1, s.AddressLine2, s.City, s.State,
		s.PostalCode, s.Country, s.TaxID, s.Website, s.PaymentTerms, s.CreditLimit, s.Notes, s.IsActive,
		s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	return writeErr("insert supplier", err)
}

// GetByID obtiene un proveedor.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id), "get supplier", scanSupplier)
}

// GetByName clave natural usada por el seed.
func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE name = $1 LIMIT 1`, name), "get supplier by name", scanSupplier)
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, contact_person = $3, email = $4, phone = $5, address_line1 = $6,
		       address_line2 = $7, city = $8, state = $9, postal_code = $10, country = $11, tax_id = $12,
		       website = $13, payment_terms = $14, credit_limit = $15, notes = $16, is_active = $17, updated_at = $18
		WHERE id = $1`,
		s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.AddressLine1, s.AddressLine2, s.City, s.State,
		s.PostalCode, s.Country, s.TaxID, s.Website, s.PaymentTerms, s.CreditLimit, s.Notes, s.IsActive, s.UpdatedAt,
	)
	return mustAffect(tag, "update supplier", err)
}

// Delete elimina un proveedor.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	return mustAffect(tag, "delete supplier", err)
}

// List busca por nombre, contacto o email.
func (r *SupplierRepo) List(ctx context.Context, search string, p repository.Page) ([]*entity.Supplier, error) {
	var w where
	w.search("(name ILIKE ? OR contact_person ILIKE ? OR email ILIKE ?)", search)
	query := `SELECT ` + supplierColumns + ` FROM suppliers` + w.sql() + ` ORDER BY name` + w.page(p)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list suppliers", scanSupplier)
}

// ── Repuestos ─────────────────────────────────────────────────────────────────

const partColumns = `id, sku, name, description, brand, model, part_number, category_id, supplier_id, cost_price,
	selling_price, current_stock, minimum_stock, maximum_stock, reorder_point, reorder_quantity, unit, location,
	notes, is_active, created_by, created_at, updated_at`

// PartRepo repuestos. Update no escribe current_stock; solo UpdateStock lo hace.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

func scanPart(s scanner) (*entity.Part, error) {
	var p entity.Part
	err := s.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Brand, &p.Model, &p.PartNumber, &p.CategoryID,
		&p.SupplierID, &p.CostPrice, &p.SellingPrice, &p.CurrentStock, &p.MinimumStock, &p.MaximumStock,
		&p.ReorderPoint, &p.ReorderQuantity, &p.Unit, &p.Location, &p.Notes, &p.IsActive, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// Create inserta un repuesto con su stock inicial.
func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO parts (`+partColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		p.ID, p.SKU, p.Name, p.Description, p.Brand, p.Model, p.PartNumber, p.CategoryID, p.SupplierID,
		p.CostPrice, p.SellingPrice, p.CurrentStock, p.MinimumStock, p.MaximumStock, p.ReorderPoint,
		p.ReorderQuantity, p.Unit, p.Location, p.Notes, p.IsActive, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	return writeErr("insert part", err)
}

// GetByID obtiene un repuesto.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id), "get part", scanPart)
}

// GetBySKU búsqueda exacta por SKU.
func (r *PartRepo) GetBySKU(ctx context.Context, sku string) (*entity.Part, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE sku = $1`, sku), "get part by sku", scanPart)
}

// GetForUpdate obtiene el repuesto y bloquea la fila (SELECT FOR UPDATE).
func (r *PartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Part, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1 FOR UPDATE`, id), "get part for update", scanPart)
}

// Update actualiza todo menos current_stock.
func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE parts SET sku = $2, name = $3, description = $4, brand = $5, model = $6, part_number = $7,
		       category_id = $8, supplier_id = $9, cost_price = $10, selling_price = $11, minimum_stock = $12,
		       maximum_stock = $13, reorder_point = $14, reorder_quantity = $15, unit = $16, location = $17,
		       notes = $18, is_active = $19, updated_at = $20
		WHERE id = $1`,
		p.ID, p.SKU, p.Name, p.Description, p.Brand, p.Model, p.PartNumber, p.CategoryID, p.SupplierID,
		p.CostPrice, p.SellingPrice, p.MinimumStock, p.MaximumStock, p.ReorderPoint, p.ReorderQuantity,
		p.Unit, p.Location, p.Notes, p.IsActive, p.UpdatedAt,
	)
	return mustAffect(tag, "update part", err)
}

// UpdateStock escribe current_stock; lo llama únicamente el libro de movimientos.
func (r *PartRepo) UpdateStock(ctx context.Context, p *entity.Part) error {
	tag, err := r.q.Exec(ctx, `UPDATE parts SET current_stock = $2, updated_at = $3 WHERE id = $1`,
		p.ID, p.CurrentStock, p.UpdatedAt)
	return mustAffect(tag, "update part stock", err)
}

// Delete elimina un repuesto.
func (r *PartRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	return mustAffect(tag, "delete part", err)
}

// List por categoría, proveedor, estado, stock bajo y texto libre.
func (r *PartRepo) List(ctx context.Context, f repository.PartFilter) ([]*entity.Part, error) {
	var w where
	w.addIf("category_id = ?", f.CategoryID)
	w.addIf("supplier_id = ?", f.SupplierID)
	if f.IsActive != nil {
		w.add("is_active = ?", *f.IsActive)
	}
	if f.LowStock {
		w.conds = append(w.conds, "current_stock <= minimum_stock")
	}
	w.search("(sku ILIKE ? OR name ILIKE ? OR brand ILIKE ? OR part_number ILIKE ?)", f.Search)
	query := `SELECT ` + partColumns + ` FROM parts` + w.sql() + ` ORDER BY name` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list parts", scanPart)
}
