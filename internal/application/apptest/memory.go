// Package apptest provee repositorios en memoria para probar los casos de uso sin base de datos.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// table mapa protegido por mutex con orden de inserción.
type table[T any] struct {
	mu    sync.Mutex
	rows  map[string]*T
	order []string
}

func newTable[T any]() *table[T] { return &table[T]{rows: map[string]*T{}} }

func (t *table[T]) put(id string, v *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	cp := *v
	t.rows[id] = &cp
}

func (t *table[T]) insert(id string, v *T) error {
	t.mu.Lock()
	_, exists := t.rows[id]
	t.mu.Unlock()
	if exists {
		return domain.ErrDuplicate
	}
	t.put(id, v)
	return nil
}

func (t *table[T]) update(id string, v *T) error {
	t.mu.Lock()
	_, exists := t.rows[id]
	t.mu.Unlock()
	if !exists {
		return domain.ErrNotFound
	}
	t.put(id, v)
	return nil
}

func (t *table[T]) get(id string) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	cp := *v
	return &cp
}

func (t *table[T]) delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *table[T]) filter(keep func(*T) bool) []*T {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []*T
	for _, id := range t.order {
		v := t.rows[id]
		if keep == nil || keep(v) {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out
}

// Len cantidad de filas.
func (t *table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

func page[T any](rows []*T, p repository.Page) []*T {
	if p.Offset >= len(rows) {
		return nil
	}
	rows = rows[p.Offset:]
	if p.Limit > 0 && p.Limit < len(rows) {
		rows = rows[:p.Limit]
	}
	return rows
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Store agrupa todas las tablas en memoria. Implementa ports.TxRunner sin rollback.
type Store struct {
	Users            *UserRepo
	Customers        *CustomerRepo
	Communications   *CommunicationRepo
	Appointments     *AppointmentRepo
	Vehicles         *VehicleRepo
	VehicleHistory   *VehicleHistoryRepo
	JobOrders        *JobOrderRepo
	JobOrderItems    *JobOrderItemRepo
	TechnicianTimes  *TechnicianTimeRepo
	StatusHistory    *StatusHistoryRepo
	Categories       *CategoryRepo
	Suppliers        *SupplierRepo
	Parts            *PartRepo
	StockMovements   *StockMovementRepo
	PurchaseOrders   *PurchaseOrderRepo
	Invoices         *InvoiceRepo
	Payments         *PaymentRepo
	SupplierPayments *SupplierPaymentRepo
	Expenses         *ExpenseRepo
	Receivables      *ReceivableRepo
	Payables         *PayableRepo
	Reports          *ReportRepo
	Sequences        *SequenceRepo
	Stats            *StatsRepo
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	s := &Store{
		Users:            &UserRepo{t: newTable[entity.User]()},
		Customers:        &CustomerRepo{t: newTable[entity.Customer]()},
		Communications:   &CommunicationRepo{t: newTable[entity.Communication]()},
		Appointments:     &AppointmentRepo{t: newTable[entity.Appointment]()},
		Vehicles:         &VehicleRepo{t: newTable[entity.Vehicle]()},
		VehicleHistory:   &VehicleHistoryRepo{t: newTable[entity.VehicleHistory]()},
		JobOrders:        &JobOrderRepo{t: newTable[entity.JobOrder]()},
		JobOrderItems:    &JobOrderItemRepo{t: newTable[entity.JobOrderItem]()},
		TechnicianTimes:  &TechnicianTimeRepo{t: newTable[entity.TechnicianTime]()},
		StatusHistory:    &StatusHistoryRepo{t: newTable[entity.StatusHistory]()},
		Categories:       &CategoryRepo{t: newTable[entity.Category]()},
		Suppliers:        &SupplierRepo{t: newTable[entity.Supplier]()},
		Parts:            &PartRepo{t: newTable[entity.Part]()},
		StockMovements:   &StockMovementRepo{t: newTable[entity.StockMovement]()},
		PurchaseOrders:   &PurchaseOrderRepo{t: newTable[entity.PurchaseOrder](), items: newTable[entity.PurchaseOrderItem]()},
		Invoices:         &InvoiceRepo{t: newTable[entity.Invoice](), items: newTable[entity.InvoiceItem]()},
		Payments:         &PaymentRepo{t: newTable[entity.Payment]()},
		SupplierPayments: &SupplierPaymentRepo{t: newTable[entity.SupplierPayment]()},
		Expenses:         &ExpenseRepo{t: newTable[entity.Expense]()},
		Receivables:      &ReceivableRepo{t: newTable[entity.AccountReceivable]()},
		Payables:         &PayableRepo{t: newTable[entity.AccountPayable]()},
		Reports:          &ReportRepo{t: newTable[entity.Report]()},
		Stats:            &StatsRepo{},
	}
	s.Sequences = &SequenceRepo{store: s}
	return s
}

// Repos repositorios "transaccionales".
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Sequences:        s.Sequences,
		JobOrders:        s.JobOrders,
		StatusHistory:    s.StatusHistory,
		Parts:            s.Parts,
		StockMovements:   s.StockMovements,
		PurchaseOrders:   s.PurchaseOrders,
		Invoices:         s.Invoices,
		Payments:         s.Payments,
		SupplierPayments: s.SupplierPayments,
		Expenses:         s.Expenses,
		Receivables:      s.Receivables,
		Payables:         s.Payables,
	}
}

// Run ejecuta fn con los repositorios en memoria. No hay rollback.
func (s *Store) Run(_ context.Context, fn func(r ports.Repos) error) error {
	return fn(s.Repos())
}

// ── Secuencias ────────────────────────────────────────────────────────────────

// SequenceRepo lee los números existentes en las tablas del Store.
type SequenceRepo struct {
	store  *Store
	Locked []string
}

func (r *SequenceRepo) LockScope(_ context.Context, scope string) error {
	r.Locked = append(r.Locked, scope)
	return nil
}

func (r *SequenceRepo) LastNumber(_ context.Context, prefix numbering.Prefix, scope string) (string, error) {
	var numbers []string
	s := r.store
	switch prefix {
	case numbering.JobOrder:
		for _, v := range s.JobOrders.t.filter(nil) {
			numbers = append(numbers, v.JobNumber)
		}
	case numbering.Invoice:
		for _, v := range s.Invoices.t.filter(nil) {
			numbers = append(numbers, v.InvoiceNumber)
		}
	case numbering.Payment:
		for _, v := range s.Payments.t.filter(nil) {
			numbers = append(numbers, v.PaymentNumber)
		}
	case numbering.SupplierPayment:
		for _, v := range s.SupplierPayments.t.filter(nil) {
			numbers = append(numbers, v.PaymentNumber)
		}
	case numbering.Expense:
		for _, v := range s.Expenses.t.filter(nil) {
			numbers = append(numbers, v.ExpenseNumber)
		}
	case numbering.PurchaseOrder:
		for _, v := range s.PurchaseOrders.t.filter(nil) {
			numbers = append(numbers, v.PONumber)
		}
	}
	last := ""
	for _, n := range numbers {
		if strings.HasPrefix(n, scope) && n > last {
			last = n
		}
	}
	return last, nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type UserRepo struct{ t *table[entity.User] }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	if existing, _ := r.GetByEmail(context.Background(), u.Email); existing != nil {
		return domain.ErrDuplicate
	}
	return r.t.insert(u.ID, u)
}
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) { return r.t.get(id), nil }
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	rows := r.t.filter(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
func (r *UserRepo) Update(_ context.Context, u *entity.User) error { return r.t.update(u.ID, u) }
func (r *UserRepo) Delete(_ context.Context, id string) error      { return r.t.delete(id) }
func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	rows := r.t.filter(func(u *entity.User) bool {
		return (f.Role == "" || u.Role == f.Role) &&
			(f.IsActive == nil || u.IsActive == *f.IsActive) &&
			(f.Search == "" || contains(u.Email+" "+u.FirstName+" "+u.LastName, f.Search))
	})
	return page(rows, f.Page), nil
}

// ── CRM ───────────────────────────────────────────────────────────────────────

type CustomerRepo struct{ t *table[entity.Customer] }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error { return r.t.insert(c.ID, c) }
func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.t.get(id), nil
}
func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error { return r.t.update(c.ID, c) }
func (r *CustomerRepo) Delete(_ context.Context, id string) error          { return r.t.delete(id) }
func (r *CustomerRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	rows := r.t.filter(func(c *entity.Customer) bool {
		return (f.IsActive == nil || c.IsActive == *f.IsActive) &&
			(f.Search == "" || contains(c.FirstName+" "+c.LastName+" "+c.Email+" "+c.Phone, f.Search))
	})
	return page(rows, f.Page), nil
}

type CommunicationRepo struct{ t *table[entity.Communication] }

func (r *CommunicationRepo) Create(_ context.Context, c *entity.Communication) error {
	return r.t.insert(c.ID, c)
}
func (r *CommunicationRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Communication, error) {
	return r.t.filter(func(c *entity.Communication) bool { return c.CustomerID == customerID }), nil
}

type AppointmentRepo struct{ t *table[entity.Appointment] }

func (r *AppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	return r.t.insert(a.ID, a)
}
func (r *AppointmentRepo) GetByID(_ context.Context, id string) (*entity.Appointment, error) {
	return r.t.get(id), nil
}
func (r *AppointmentRepo) Update(_ context.Context, a *entity.Appointment) error {
	return r.t.update(a.ID, a)
}
func (r *AppointmentRepo) Delete(_ context.Context, id string) error { return r.t.delete(id) }
func (r *AppointmentRepo) List(_ context.Context, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	rows := r.t.filter(func(a *entity.Appointment) bool {
		return (f.CustomerID == "" || a.CustomerID == f.CustomerID) &&
			(f.Status == "" || a.Status == f.Status) &&
			(f.From == nil || !a.AppointmentDate.Before(*f.From)) &&
			(f.To == nil || a.AppointmentDate.Before(*f.To))
	})
	return page(rows, f.Page), nil
}

type VehicleRepo struct{ t *table[entity.Vehicle] }

func (r *VehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	dup := r.t.filter(func(o *entity.Vehicle) bool { return o.VIN == v.VIN || o.LicensePlate == v.LicensePlate })
	if len(dup) > 0 {
		return domain.ErrDuplicate
	}
	return r.t.insert(v.ID, v)
}
func (r *VehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	return r.t.get(id), nil
}
func (r *VehicleRepo) Update(_ context.Context, v *entity.Vehicle) error { return r.t.update(v.ID, v) }
func (r *VehicleRepo) Delete(_ context.Context, id string) error         { return r.t.delete(id) }
func (r *VehicleRepo) List(_ context.Context, f repository.VehicleFilter) ([]*entity.Vehicle, error) {
	rows := r.t.filter(func(v *entity.Vehicle) bool {
		return (f.CustomerID == "" || v.CustomerID == f.CustomerID) &&
			(f.Make == "" || strings.EqualFold(v.Make, f.Make)) &&
			(f.IsActive == nil || v.IsActive == *f.IsActive) &&
			(f.Search == "" || contains(v.LicensePlate+" "+v.VIN+" "+v.Make+" "+v.Model, f.Search))
	})
	return page(rows, f.Page), nil
}

type VehicleHistoryRepo struct{ t *table[entity.VehicleHistory] }

func (r *VehicleHistoryRepo) Create(_ context.Context, h *entity.VehicleHistory) error {
	return r.t.insert(h.ID, h)
}
func (r *VehicleHistoryRepo) ListByVehicle(_ context.Context, vehicleID string) ([]*entity.VehicleHistory, error) {
	return r.t.filter(func(h *entity.VehicleHistory) bool { return h.VehicleID == vehicleID }), nil
}

// ── Taller ────────────────────────────────────────────────────────────────────

type JobOrderRepo struct{ t *table[entity.JobOrder] }

func (r *JobOrderRepo) Create(_ context.Context, jo *entity.JobOrder) error {
	if dup := r.t.filter(func(o *entity.JobOrder) bool { return o.JobNumber == jo.JobNumber }); len(dup) > 0 {
		return domain.ErrDuplicate
	}
	return r.t.insert(jo.ID, jo)
}
func (r *JobOrderRepo) GetByID(_ context.Context, id string) (*entity.JobOrder, error) {
	return r.t.get(id), nil
}
func (r *JobOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.JobOrder, error) {
	return r.GetByID(ctx, id)
}
func (r *JobOrderRepo) Update(_ context.Context, jo *entity.JobOrder) error {
	return r.t.update(jo.ID, jo)
}
func (r *JobOrderRepo) Delete(_ context.Context, id string) error { return r.t.delete(id) }
func (r *JobOrderRepo) List(_ context.Context, f repository.JobOrderFilter) ([]*entity.JobOrder, error) {
	rows := r.t.filter(func(jo *entity.JobOrder) bool {
		tech := ""
		if jo.AssignedTechnicianID != nil {
			tech = *jo.AssignedTechnicianID
		}
		return (f.Status == "" || jo.Status == f.Status) &&
			(f.Priority == "" || jo.Priority == f.Priority) &&
			(f.TechnicianID == "" || tech == f.TechnicianID) &&
			(f.CustomerID == "" || jo.CustomerID == f.CustomerID) &&
			(f.VehicleID == "" || jo.VehicleID == f.VehicleID) &&
			(f.Search == "" || contains(jo.JobNumber+" "+jo.ServiceType+" "+jo.Description, f.Search))
	})
	return page(rows, f.Page), nil
}

type JobOrderItemRepo struct{ t *table[entity.JobOrderItem] }

func (r *JobOrderItemRepo) Create(_ context.Context, it *entity.JobOrderItem) error {
	return r.t.insert(it.ID, it)
}
func (r *JobOrderItemRepo) GetByID(_ context.Context, id string) (*entity.JobOrderItem, error) {
	return r.t.get(id), nil
}
func (r *JobOrderItemRepo) Update(_ context.Context, it *entity.JobOrderItem) error {
	return r.t.update(it.ID, it)
}
func (r *JobOrderItemRepo) Delete(_ context.Context, id string) error { return r.t.delete(id) }
func (r *JobOrderItemRepo) ListByJobOrder(_ context.Context, jobOrderID string) ([]*entity.JobOrderItem, error) {
	return r.t.filter(func(it *entity.JobOrderItem) bool { return it.JobOrderID == jobOrderID }), nil
}

type TechnicianTimeRepo struct{ t *table[entity.TechnicianTime] }

func (r *TechnicianTimeRepo) Create(_ context.Context, tt *entity.TechnicianTime) error {
	return r.t.insert(tt.ID, tt)
}
func (r *TechnicianTimeRepo) GetByID(_ context.Context, id string) (*entity.TechnicianTime, error) {
	return r.t.get(id), nil
}
func (r *TechnicianTimeRepo) Update(_ context.Context, tt *entity.TechnicianTime) error {
	return r.t.update(tt.ID, tt)
}
func (r *TechnicianTimeRepo) Delete(_ context.Context, id string) error { return r.t.delete(id) }
func (r *TechnicianTimeRepo) ListByJobOrder(_ context.Context, jobOrderID string) ([]*entity.TechnicianTime, error) {
	return r.t.filter(func(tt *entity.TechnicianTime) bool { return tt.JobOrderID == jobOrderID }), nil
}

type StatusHistoryRepo struct{ t *table[entity.StatusHistory] }

func (r *StatusHistoryRepo) Create(_ context.Context, h *entity.StatusHistory) error {
	return r.t.insert(h.ID, h)
}
func (r *StatusHistoryRepo) ListByJobOrder(_ context.Context, jobOrderID string) ([]*entity.StatusHistory, error) {
	return r.t.filter(func(h *entity.StatusHistory) bool { return h.JobOrderID == jobOrderID }), nil
}

// ── Inventario ────────────────────────────────────────────────────────────────

type CategoryRepo struct{ t *table[entity.Category] }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if existing, _ := r.GetByName(ctx, c.Name); existing != nil {
		return domain.ErrDuplicate
	}
	return r.t.insert(c.ID, c)
}
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	return r.t.get(id), nil
}
func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	rows := r.t.filter(func(c *entity.Category) bool { return c.Name == name })
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error { return r.t.update(c.ID, c) }
func (r *CategoryRepo) Delete(_ context.Context, id string) error          { return r.t.delete(id) }
func (r *CategoryRepo) List(_ context.Context, onlyActive bool) ([]*entity.Category, error) {
	return r.t.filter(func(c *entity.Category) bool { return !onlyActive || c.IsActive }), nil
}

type SupplierRepo struct{ t *table[entity.Supplier] }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error { return r.t.insert(s.ID, s) }
func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return r.t.get(id), nil
}
func (r *SupplierRepo) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	rows := r.t.filter(func(s *entity.Supplier) bool { return s.Name == name })
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error { return r.t.update(s.ID, s) }
func (r *SupplierRepo) Delete(_ context.Context, id string) error          { return r.t.delete(id) }
func (r *SupplierRepo) List(_ context.Context, search string, p repository.Page) ([]*entity.Supplier, error) {
	rows := r.t.filter(func(s *entity.Supplier) bool {
		return search == "" || contains(s.Name+" "+s.ContactPerson+" "+s.Email, search)
	})
	return page(rows, p), nil
}

// PartRepo Update conserva el stock guardado, igual que el repositorio de Postgres.
type PartRepo struct {
	t            *table[entity.Part]
	StockUpdates int
}

func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	if existing, _ := r.GetBySKU(ctx, p.SKU); existing != nil {
		return domain.ErrDuplicate
	}
	return r.t.insert(p.ID, p)
}
func (r *PartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) { return r.t.get(id), nil }
func (r *PartRepo) GetBySKU(_ context.Context, sku string) (*entity.Part, error) {
	rows := r.t.filter(func(p *entity.Part) bool { return p.SKU == sku })
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
func (r *PartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Part, error) {
	return r.GetByID(ctx, id)
}
func (r *PartRepo) Update(_ context.Context, p *entity.Part) error {
	current := r.t.get(p.ID)
	if current == nil {
		return domain.ErrNotFound
	}
	cp := *p
	cp.CurrentStock = current.CurrentStock
	return r.t.update(p.ID, &cp)
}
func (r *PartRepo) UpdateStock(_ context.Context, p *entity.Part) error {
	current := r.t.get(p.ID)
	if current == nil {
		return domain.ErrNotFound
	}
	current.CurrentStock = p.CurrentStock
	current.UpdatedAt = p.UpdatedAt
	r.StockUpdates++
	return r.t.update(p.ID, current)
}
func (r *PartRepo) Delete(_ context.Context, id string) error { return r.t.delete(id) }
func (r *PartRepo) List(_ context.Context, f repository.PartFilter) ([]*entity.Part, error) {
	rows := r.t.filter(func(p *entity.Part) bool {
		cat, sup := "", ""
		if p.CategoryID != nil {
			cat = *p.CategoryID
		}
		if p.SupplierID != nil {
			sup = *p.SupplierID
		}
		return (f.CategoryID == "" || cat == f.CategoryID) &&
			(f.SupplierID == "" || sup == f.SupplierID) &&
			(f.IsActive == nil || p.IsActive == *f.IsActive) &&
			(!f.LowStock || p.IsLowStock()) &&
			(f.Search == "" || contains(p.SKU+" "+p.Name+" "+p.Brand+" "+p.PartNumber, f.Search))
	})
	return page(rows, f.Page), nil
}

type StockMovementRepo struct{ t *table[entity.StockMovement] }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.t.insert(m.ID, m)
}
func (r *StockMovementRepo) List(_ context.Context, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	rows := r.t.filter(func(m *entity.StockMovement) bool {
		return (f.PartID == "" || m.PartID == f.PartID) && (f.MovementType == "" || m.MovementType == f.MovementType)
	})
	return page(rows, f.Page), nil
}

type PurchaseOrderRepo struct {
	t     *table[entity.PurchaseOrder]
	items *table[entity.PurchaseOrderItem]
}

func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	return r.t.insert(po.ID, po)
}
func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.t.get(id), nil
}
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}
func (r *PurchaseOrderRepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	return r.t.update(po.ID, po)
}
func (r *PurchaseOrderRepo) Delete(_ context.Context, id string) error { return r.t.delete(id) }
func (r *PurchaseOrderRepo) List(_ context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	rows := r.t.filter(func(po *entity.PurchaseOrder) bool {
		return (f.SupplierID == "" || po.SupplierID == f.SupplierID) && (f.Status == "" || po.Status == f.Status)
	})
	return page(rows, f.Page), nil
}
func (r *PurchaseOrderRepo) CreateItem(_ context.Context, it *entity.PurchaseOrderItem) error {
	return r.items.insert(it.ID, it)
}
func (r *PurchaseOrderRepo) UpdateItem(_ context.Context, it *entity.PurchaseOrderItem) error {
	return r.items.update(it.ID, it)
}
func (r *PurchaseOrderRepo) DeleteItem(_ context.Context, id string) error {
	return r.items.delete(id)
}
func (r *PurchaseOrderRepo) ListItems(_ context.Context, poID string) ([]*entity.PurchaseOrderItem, error) {
	return r.items.filter(func(it *entity.PurchaseOrderItem) bool { return it.PurchaseOrderID == poID }), nil
}

// ── Contabilidad ──────────────────────────────────────────────────────────────

type InvoiceRepo struct {
	t     *table[entity.Invoice]
	items *table[entity.InvoiceItem]
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if dup := r.t.filter(func(o *entity.Invoice) bool { return o.InvoiceNumber == inv.InvoiceNumber }); len(dup) > 0 {
		return domain.ErrDuplicate
	}
	return r.t.insert(inv.ID, inv)
}
func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	return r.t.get(id), nil
}
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}
func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	return r.t.update(inv.ID, inv)
}
func (r *InvoiceRepo) Delete(_ context.Context, id string) error { return r.t.delete(id) }
func (r *InvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	rows := r.t.filter(func(inv *entity.Invoice) bool {
		return (f.CustomerID == "" || inv.CustomerID == f.CustomerID) &&
			(f.Status == "" || inv.Status == f.Status) &&
			(f.Search == "" || contains(inv.InvoiceNumber, f.Search))
	})
	return page(rows, f.Page), nil
}
func (r *InvoiceRepo) CreateItem(_ context.Context, it *entity.InvoiceItem) error {
	return r.items.insert(it.ID, it)
}
func (r *InvoiceRepo) UpdateItem(_ context.Context, it *entity.InvoiceItem) error {
	return r.items.update(it.ID, it)
}
func (r *InvoiceRepo) DeleteItem(_ context.Context, id string) error { return r.items.delete(id) }
func (r *InvoiceRepo) ListItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.items.filter(func(it *entity.InvoiceItem) bool { return it.InvoiceID == invoiceID }), nil
}

type PaymentRepo struct{ t *table[entity.Payment] }

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error { return r.t.insert(p.ID, p) }
func (r *PaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	return r.t.get(id), nil
}
func (r *PaymentRepo) Update(_ context.Context, p *entity.Payment) error { return r.t.update(p.ID, p) }
func (r *PaymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	rows := r.t.filter(func(p *entity.Payment) bool {
		return (f.InvoiceID == "" || p.InvoiceID == f.InvoiceID) &&
			(f.CustomerID == "" || p.CustomerID == f.CustomerID) &&
			(f.PaymentMethod == "" || p.PaymentMethod == f.PaymentMethod) &&
			(f.Status == "" || p.Status == f.Status)
	})
	return page(rows, f.Page), nil
}

type SupplierPaymentRepo struct{ t *table[entity.SupplierPayment] }

func (r *SupplierPaymentRepo) Create(_ context.Context, p *entity.SupplierPayment) error {
	return r.t.insert(p.ID, p)
}
func (r *SupplierPaymentRepo) GetByID(_ context.Context, id string) (*entity.SupplierPayment, error) {
	return r.t.get(id), nil
}
func (r *SupplierPaymentRepo) List(_ context.Context, f repository.SupplierPaymentFilter) ([]*entity.SupplierPayment, error) {
	rows := r.t.filter(func(p *entity.SupplierPayment) bool {
		po := ""
		if p.PurchaseOrderID != nil {
			po = *p.PurchaseOrderID
		}
		return (f.SupplierID == "" || p.SupplierID == f.SupplierID) &&
			(f.PurchaseOrderID == "" || po == f.PurchaseOrderID) &&
			(f.Status == "" || p.Status == f.Status)
	})
	return page(rows, f.Page), nil
}

type ExpenseRepo struct{ t *table[entity.Expense] }

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error { return r.t.insert(e.ID, e) }
func (r *ExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	return r.t.get(id), nil
}
func (r *ExpenseRepo) Update(_ context.Context, e *entity.Expense) error { return r.t.update(e.ID, e) }
func (r *ExpenseRepo) List(_ context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	rows := r.t.filter(func(e *entity.Expense) bool {
		return (f.Category == "" || e.Category == f.Category) && (f.Status == "" || e.Status == f.Status)
	})
	return page(rows, f.Page), nil
}

type ReceivableRepo struct{ t *table[entity.AccountReceivable] }

func (r *ReceivableRepo) Create(_ context.Context, ar *entity.AccountReceivable) error {
	return r.t.insert(ar.ID, ar)
}
func (r *ReceivableRepo) GetByInvoice(_ context.Context, invoiceID string) (*entity.AccountReceivable, error) {
	rows := r.t.filter(func(ar *entity.AccountReceivable) bool { return ar.InvoiceID == invoiceID })
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
func (r *ReceivableRepo) Update(_ context.Context, ar *entity.AccountReceivable) error {
	return r.t.update(ar.ID, ar)
}
func (r *ReceivableRepo) List(_ context.Context, customerID string, p repository.Page) ([]*entity.AccountReceivable, error) {
	rows := r.t.filter(func(ar *entity.AccountReceivable) bool {
		return customerID == "" || ar.CustomerID == customerID
	})
	return page(rows, p), nil
}

type PayableRepo struct{ t *table[entity.AccountPayable] }

func (r *PayableRepo) Create(_ context.Context, ap *entity.AccountPayable) error {
	return r.t.insert(ap.ID, ap)
}
func (r *PayableRepo) GetByPurchaseOrder(_ context.Context, poID string) (*entity.AccountPayable, error) {
	rows := r.t.filter(func(ap *entity.AccountPayable) bool { return ap.PurchaseOrderID == poID })
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
func (r *PayableRepo) Update(_ context.Context, ap *entity.AccountPayable) error {
	return r.t.update(ap.ID, ap)
}
func (r *PayableRepo) List(_ context.Context, supplierID string, p repository.Page) ([]*entity.AccountPayable, error) {
	rows := r.t.filter(func(ap *entity.AccountPayable) bool {
		return supplierID == "" || ap.SupplierID == supplierID
	})
	return page(rows, p), nil
}

// ── Reportes ──────────────────────────────────────────────────────────────────

type ReportRepo struct{ t *table[entity.Report] }

func (r *ReportRepo) Create(_ context.Context, rep *entity.Report) error {
	return r.t.insert(rep.ID, rep)
}
func (r *ReportRepo) GetByID(_ context.Context, id string) (*entity.Report, error) {
	return r.t.get(id), nil
}
func (r *ReportRepo) Update(_ context.Context, rep *entity.Report) error {
	return r.t.update(rep.ID, rep)
}
func (r *ReportRepo) List(_ context.Context, reportType string, p repository.Page) ([]*entity.Report, error) {
	rows := r.t.filter(func(rep *entity.Report) bool { return reportType == "" || rep.ReportType == reportType })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return page(rows, p), nil
}

// Len atajos para aserciones en tests.
func (r *StatusHistoryRepo) Len() int { return r.t.Len() }
func (r *StockMovementRepo) Len() int { return r.t.Len() }
func (r *ReceivableRepo) Len() int    { return r.t.Len() }
func (r *PayableRepo) Len() int       { return r.t.Len() }

var (
	_ repository.UserRepository            = (*UserRepo)(nil)
	_ repository.CustomerRepository        = (*CustomerRepo)(nil)
	_ repository.CommunicationRepository   = (*CommunicationRepo)(nil)
	_ repository.AppointmentRepository     = (*AppointmentRepo)(nil)
	_ repository.VehicleRepository         = (*VehicleRepo)(nil)
	_ repository.VehicleHistoryRepository  = (*VehicleHistoryRepo)(nil)
	_ repository.JobOrderRepository        = (*JobOrderRepo)(nil)
	_ repository.JobOrderItemRepository    = (*JobOrderItemRepo)(nil)
	_ repository.TechnicianTimeRepository  = (*TechnicianTimeRepo)(nil)
	_ repository.StatusHistoryRepository   = (*StatusHistoryRepo)(nil)
	_ repository.CategoryRepository        = (*CategoryRepo)(nil)
	_ repository.SupplierRepository        = (*SupplierRepo)(nil)
	_ repository.PartRepository            = (*PartRepo)(nil)
	_ repository.StockMovementRepository   = (*StockMovementRepo)(nil)
	_ repository.PurchaseOrderRepository   = (*PurchaseOrderRepo)(nil)
	_ repository.InvoiceRepository         = (*InvoiceRepo)(nil)
	_ repository.PaymentRepository         = (*PaymentRepo)(nil)
	_ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)
	_ repository.ExpenseRepository         = (*ExpenseRepo)(nil)
	_ repository.ReceivableRepository      = (*ReceivableRepo)(nil)
	_ repository.PayableRepository         = (*PayableRepo)(nil)
	_ repository.ReportRepository          = (*ReportRepo)(nil)
	_ repository.SequenceRepository        = (*SequenceRepo)(nil)
	_ ports.TxRunner                       = (*Store)(nil)
)
