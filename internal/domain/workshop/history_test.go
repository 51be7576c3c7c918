package workshop_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/workshop"
)

func TestInitialHistory_OldStatusNulo(t *testing.T) {
	jo := &entity.JobOrder{ID: "jo-1", Status: entity.JobStatusReceived}
	h := workshop.InitialHistory(jo, "h-1", "Job order created", nil, time.Now())
	assert.Nil(t, h.OldStatus)
	assert.Equal(t, entity.JobStatusReceived, h.NewStatus)
}

func TestChangeStatus_RegistraViejoYNuevo(t *testing.T) {
	jo := &entity.JobOrder{ID: "jo-1", Status: entity.JobStatusReceived}
	user := "u-1"
	h, err := workshop.ChangeStatus(jo, entity.JobStatusInRepair, "h-2", "", &user, time.Now())
	require.NoError(t, err)
	require.NotNil(t, h)
	require.NotNil(t, h.OldStatus)
	assert.Equal(t, entity.JobStatusReceived, *h.OldStatus)
	assert.Equal(t, entity.JobStatusInRepair, h.NewStatus)
	assert.Equal(t, entity.JobStatusInRepair, jo.Status)
}

func TestChangeStatus_MismoEstadoSinHistorial(t *testing.T) {
	jo := &entity.JobOrder{ID: "jo-1", Status: entity.JobStatusReady}
	h, err := workshop.ChangeStatus(jo, entity.JobStatusReady, "h", "", nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, h)
}

// No hay tabla de transiciones: delivered → received es legal.
func TestChangeStatus_CualquierTransicion(t *testing.T) {
	for _, from := range entity.JobStatuses {
		for _, to := range entity.JobStatuses {
			if from == to {
				continue
			}
			jo := &entity.JobOrder{Status: from}
			h, err := workshop.ChangeStatus(jo, to, "h", "", nil, time.Now())
			require.NoError(t, err, "%s → %s", from, to)
			require.NotNil(t, h)
		}
	}
}

func TestChangeStatus_EstadoDesconocido(t *testing.T) {
	jo := &entity.JobOrder{Status: entity.JobStatusReceived}
	_, err := workshop.ChangeStatus(jo, "lost", "h", "", nil, time.Now())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, entity.JobStatusReceived, jo.Status)
}
