package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
)

// ReportRepository registros de reportes generados.
type ReportRepository interface {
	Create(ctx context.Context, r *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	Update(ctx context.Context, r *entity.Report) error
	List(ctx context.Context, reportType string, p Page) ([]*entity.Report, error)
}

// SequenceRepository lectura del último identificador emitido dentro de un alcance.
type SequenceRepository interface {
	// LockScope serializa la emisión dentro del alcance hasta el fin de la transacción.
	LockScope(ctx context.Context, scope string) error
	// LastNumber devuelve el identificador que ordena más alto entre los que empiezan
	// por scope en la tabla del prefijo; cadena vacía si no hay ninguno.
	LastNumber(ctx context.Context, prefix numbering.Prefix, scope string) (string, error)
}
