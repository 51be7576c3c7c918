package apptest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// StatsRepo devuelve los valores preconfigurados. Err, si no es nil, lo devuelven todas las consultas.
type StatsRepo struct {
	Customer    repository.CustomerStats
	Vehicle     repository.VehicleStats
	JobOrder    repository.JobOrderStats
	Inventory   repository.InventoryStats
	Accounting  repository.AccountingStats
	Revenue     repository.RevenueStats
	Daily       []repository.DailySales
	Top         []repository.CustomerSpend
	Methods     []repository.MethodTotal
	ByCategory  []repository.CategoryValue
	LowStock    []repository.LowStockItem
	MostUsed    []repository.PartUsage
	BySupplier  []repository.SupplierValue
	Technicians []repository.TechnicianJobs
	Hours       []repository.TechnicianHours
	Err         error
	LastFrom    time.Time
	LastTo      time.Time
	LastSince   time.Time
	Calls       atomic.Int32
}

func (s *StatsRepo) hit() error {
	s.Calls.Add(1)
	return s.Err
}

func (s *StatsRepo) CustomerStats(_ context.Context, since time.Time) (repository.CustomerStats, error) {
	s.LastSince = since
	return s.Customer, s.hit()
}
func (s *StatsRepo) VehicleStats(context.Context) (repository.VehicleStats, error) {
	return s.Vehicle, s.hit()
}
func (s *StatsRepo) JobOrderStats(context.Context) (repository.JobOrderStats, error) {
	return s.JobOrder, s.hit()
}
func (s *StatsRepo) InventoryStats(context.Context) (repository.InventoryStats, error) {
	return s.Inventory, s.hit()
}
func (s *StatsRepo) AccountingStats(context.Context) (repository.AccountingStats, error) {
	return s.Accounting, s.hit()
}
func (s *StatsRepo) RevenueStats(_ context.Context, _ time.Time) (repository.RevenueStats, error) {
	return s.Revenue, s.hit()
}
func (s *StatsRepo) SalesByDay(_ context.Context, from, to time.Time) ([]repository.DailySales, error) {
	s.LastFrom, s.LastTo = from, to
	return s.Daily, s.hit()
}
func (s *StatsRepo) TopCustomers(_ context.Context, _, _ time.Time, _ int) ([]repository.CustomerSpend, error) {
	return s.Top, s.hit()
}
func (s *StatsRepo) PaymentMethods(_ context.Context, _, _ time.Time) ([]repository.MethodTotal, error) {
	return s.Methods, s.hit()
}
func (s *StatsRepo) PartsByCategory(context.Context) ([]repository.CategoryValue, error) {
	return s.ByCategory, s.hit()
}
func (s *StatsRepo) LowStockItems(_ context.Context, limit int) ([]repository.LowStockItem, error) {
	items := s.LowStock
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, s.hit()
}
func (s *StatsRepo) MostUsedParts(_ context.Context, _ int) ([]repository.PartUsage, error) {
	return s.MostUsed, s.hit()
}
func (s *StatsRepo) SupplierPerformance(context.Context) ([]repository.SupplierValue, error) {
	return s.BySupplier, s.hit()
}
func (s *StatsRepo) TechnicianJobStats(context.Context) ([]repository.TechnicianJobs, error) {
	return s.Technicians, s.hit()
}
func (s *StatsRepo) TimeTracking(context.Context) ([]repository.TechnicianHours, error) {
	return s.Hours, s.hit()
}

// Compile-time checks.
var _ repository.StatsRepository = (*StatsRepo)(nil)
