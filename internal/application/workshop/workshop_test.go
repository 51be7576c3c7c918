package workshop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/apptest"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/sequence"
	"github.com/jhoicas/taller-api/internal/application/workshop"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	technician = entity.Actor{UserID: "tec-1", Role: entity.RoleTechnician}
	accountant = entity.Actor{UserID: "acc-1", Role: entity.RoleAccountant}
)

type fixture struct {
	store *apptest.Store
	jobs  *workshop.JobOrderUseCase
	items *workshop.ItemUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := apptest.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Customers.Create(ctx, &entity.Customer{ID: "c-1", FirstName: "Ana", LastName: "Soto", IsActive: true}))
	require.NoError(t, store.Vehicles.Create(ctx, &entity.Vehicle{ID: "v-1", VIN: "1HGCM82633A004352", LicensePlate: "ABC123", CustomerID: "c-1"}))

	repos := workshop.Repositories{
		JobOrders:       store.JobOrders,
		Items:           store.JobOrderItems,
		TechnicianTimes: store.TechnicianTimes,
		StatusHistory:   store.StatusHistory,
		Customers:       store.Customers,
		Vehicles:        store.Vehicles,
		Stats:           store.Stats,
	}
	gen := sequence.NewGenerator(store, nil).WithClock(func() time.Time {
		return time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
	})
	return &fixture{
		store: store,
		jobs:  workshop.NewJobOrderUseCase(repos, store, gen),
		items: workshop.NewItemUseCase(repos),
	}
}

func (f *fixture) createJob(t *testing.T) *dto.JobOrderResponse {
	t.Helper()
	out, err := f.jobs.Create(context.Background(), technician, dto.CreateJobOrderRequest{
		CustomerID: "c-1", VehicleID: "v-1", ServiceType: "Frenos", Description: "Ruido al frenar",
	})
	require.NoError(t, err)
	return out
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de trabajo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NumeroEHistorialInicial(t *testing.T) {
	f := newFixture(t)
	first := f.createJob(t)
	second := f.createJob(t)

	assert.Equal(t, "JO2024060001", first.JobNumber)
	assert.Equal(t, "JO2024060002", second.JobNumber)
	assert.Equal(t, entity.JobStatusReceived, first.Status)
	assert.Equal(t, entity.PriorityNormal, first.Priority)
	assert.False(t, first.ReceivedDate.IsZero())

	history, err := f.jobs.History(context.Background(), technician, first.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].OldStatus)
	assert.Equal(t, entity.JobStatusReceived, history[0].NewStatus)
	assert.Equal(t, workshop.CreatedNote, history[0].Notes)
}

func TestCreate_VehiculoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.jobs.Create(context.Background(), technician, dto.CreateJobOrderRequest{CustomerID: "c-1", VehicleID: "v-9", ServiceType: "x", Description: "y"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Zero(t, f.store.StatusHistory.Len())
}

func TestUpdateStatus_AgregaUnRegistro(t *testing.T) {
	f := newFixture(t)
	jo := f.createJob(t)

	out, err := f.jobs.UpdateStatus(context.Background(), technician, jo.ID, dto.UpdateStatusRequest{Status: entity.JobStatusInRepair, Notes: "Desarmado"})
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusInRepair, out.Status)

	history, err := f.jobs.History(context.Background(), technician, jo.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.NotNil(t, history[1].OldStatus)
	assert.Equal(t, entity.JobStatusReceived, *history[1].OldStatus)
	assert.Equal(t, entity.JobStatusInRepair, history[1].NewStatus)
	require.NotNil(t, history[1].ChangedBy)
	assert.Equal(t, "tec-1", *history[1].ChangedBy)
}

func TestUpdate_MismoEstadoNoAgregaHistorial(t *testing.T) {
	f := newFixture(t)
	jo := f.createJob(t)

	same, notes := entity.JobStatusReceived, "Cliente llamó"
	out, err := f.jobs.Update(context.Background(), technician, jo.ID, dto.UpdateJobOrderRequest{Status: &same, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "Cliente llamó", out.Notes)
	assert.Equal(t, 1, f.store.StatusHistory.Len())
}

func TestUpdate_CualquierTransicionEsValida(t *testing.T) {
	f := newFixture(t)
	jo := f.createJob(t)
	for _, s := range []string{entity.JobStatusDelivered, entity.JobStatusReceived, entity.JobStatusCancelled} {
		status := s
		_, err := f.jobs.Update(context.Background(), technician, jo.ID, dto.UpdateJobOrderRequest{Status: &status})
		require.NoError(t, err)
	}
	assert.Equal(t, 4, f.store.StatusHistory.Len())

	unknown := "perdido"
	_, err := f.jobs.Update(context.Background(), technician, jo.ID, dto.UpdateJobOrderRequest{Status: &unknown})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestJobOrders_SinAccesoAlTaller(t *testing.T) {
	f := newFixture(t)
	jo := f.createJob(t)

	list, err := f.jobs.List(context.Background(), accountant, dto.JobOrderListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	list, err = f.jobs.List(context.Background(), technician, dto.JobOrderListRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	_, err = f.jobs.GetByID(context.Background(), accountant, jo.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.jobs.UpdateStatus(context.Background(), accountant, jo.ID, dto.UpdateStatusRequest{Status: entity.JobStatusReady})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = f.jobs.Stats(context.Background(), accountant)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestStats_Conteos(t *testing.T) {
	f := newFixture(t)
	f.store.Stats.JobOrder = repository.JobOrderStats{
		Total: 5, Pending: 2, InRepair: 1, Ready: 1,
		ByStatus: []repository.LabelCount{{Label: entity.JobStatusReceived, Count: 2}},
	}
	out, err := f.jobs.Stats(context.Background(), technician)
	require.NoError(t, err)
	assert.Equal(t, 5, out.TotalJobOrders)
	assert.Equal(t, 2, out.PendingJobOrders)
	assert.Len(t, out.JobOrdersByStatus, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ítems y tiempos
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_ManoDeObraUsaHorasPorTarifa(t *testing.T) {
	f := newFixture(t)
	jo := f.createJob(t)

	out, err := f.items.AddItem(context.Background(), technician, jo.ID, dto.JobOrderItemRequest{
		ItemType: entity.ItemTypeLabor, Name: "Cambio de pastillas",
		Quantity: dec("7"), UnitPrice: dec("3"), HoursWorked: decPtr("2"), HourlyRate: decPtr("50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "100.00", out.TotalPrice.StringFixed(2))

	out, err = f.items.UpdateItem(context.Background(), technician, jo.ID, out.ID, dto.JobOrderItemRequest{
		ItemType: entity.ItemTypePart, Name: "Pastillas", Quantity: dec("2"), UnitPrice: dec("45.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "91.00", out.TotalPrice.StringFixed(2))

	detail, err := f.jobs.GetByID(context.Background(), technician, jo.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	require.Len(t, detail.StatusHistory, 1)
}

func TestItems_DeOtraOrdenNoEncontrado(t *testing.T) {
	f := newFixture(t)
	a := f.createJob(t)
	b := f.createJob(t)
	it, err := f.items.AddItem(context.Background(), technician, a.ID, dto.JobOrderItemRequest{ItemType: entity.ItemTypeOther, Name: "x", Quantity: dec("1"), UnitPrice: dec("1")})
	require.NoError(t, err)

	err = f.items.DeleteItem(context.Background(), technician, b.ID, it.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	require.NoError(t, f.items.DeleteItem(context.Background(), technician, a.ID, it.ID))
}

func TestTimes_TecnicoPorDefectoYHoras(t *testing.T) {
	f := newFixture(t)
	jo := f.createJob(t)
	start := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)

	open, err := f.items.AddTime(context.Background(), technician, jo.ID, dto.TechnicianTimeRequest{StartTime: start, WorkDescription: "Diagnóstico"})
	require.NoError(t, err)
	assert.Equal(t, "tec-1", open.TechnicianID)
	assert.Nil(t, open.HoursWorked, "sin hora de fin no hay horas")

	end := start.Add(90 * time.Minute)
	closed, err := f.items.UpdateTime(context.Background(), technician, jo.ID, open.ID, dto.TechnicianTimeRequest{StartTime: start, EndTime: &end, WorkDescription: "Diagnóstico"})
	require.NoError(t, err)
	require.NotNil(t, closed.HoursWorked)
	assert.Equal(t, "1.50", closed.HoursWorked.StringFixed(2))
	assert.Equal(t, "tec-1", closed.TechnicianID)

	before := start.Add(-time.Hour)
	_, err = f.items.AddTime(context.Background(), technician, jo.ID, dto.TechnicianTimeRequest{StartTime: start, EndTime: &before, WorkDescription: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
