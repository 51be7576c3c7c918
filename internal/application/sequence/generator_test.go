package sequence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/apptest"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/application/sequence"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
)

type fakeLock struct{ l *fakeLocker }

func (f fakeLock) Release(context.Context) error {
	f.l.released++
	return nil
}

type fakeLocker struct {
	keys     []string
	released int
	err      error
}

func (l *fakeLocker) Obtain(_ context.Context, key string, _ time.Duration) (ports.Lock, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	return fakeLock{l: l}, nil
}

func fixedClock() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }

func TestIssue_NumerosConsecutivosPorAlcance(t *testing.T) {
	store := apptest.NewStore()
	gen := sequence.NewGenerator(store, nil).WithClock(fixedClock)
	ctx := context.Background()

	var got []string
	for i := 0; i < 2; i++ {
		err := gen.Issue(ctx, numbering.Invoice, func(number string, r ports.Repos) error {
			got = append(got, number)
			return r.Invoices.Create(ctx, &entity.Invoice{ID: number, InvoiceNumber: number})
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"INV2024060001", "INV2024060002"}, got)
	assert.Equal(t, []string{"INV202406", "INV202406"}, store.Sequences.Locked)
}

func TestIssue_FallaSinConsumirNumero(t *testing.T) {
	store := apptest.NewStore()
	gen := sequence.NewGenerator(store, nil).WithClock(fixedClock)
	ctx := context.Background()
	boom := errors.New("insert falló")

	err := gen.Issue(ctx, numbering.Expense, func(string, ports.Repos) error { return boom })
	require.ErrorIs(t, err, boom)

	err = gen.Issue(ctx, numbering.Expense, func(number string, _ ports.Repos) error {
		assert.Equal(t, "EXP2024060001", number)
		return nil
	})
	require.NoError(t, err)
}

func TestIssue_UsaCandadoDistribuido(t *testing.T) {
	store := apptest.NewStore()
	locker := &fakeLocker{}
	gen := sequence.NewGenerator(store, locker).WithClock(fixedClock)

	err := gen.Issue(context.Background(), numbering.SupplierPayment, func(string, ports.Repos) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"seq:SPAY202406"}, locker.keys)
	assert.Equal(t, 1, locker.released)
}

func TestIssue_CandadoNoDisponible(t *testing.T) {
	store := apptest.NewStore()
	locker := &fakeLocker{err: errors.New("timeout")}
	gen := sequence.NewGenerator(store, locker).WithClock(fixedClock)

	called := false
	err := gen.Issue(context.Background(), numbering.JobOrder, func(string, ports.Repos) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
