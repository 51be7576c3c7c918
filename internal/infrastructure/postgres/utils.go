package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation referencia a una fila inexistente o borrado con dependientes (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// isInvalidText identificador con formato inválido para la columna (22P02), p. ej. un UUID mal formado.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02"
	}
	return false
}

// writeErr traduce errores de escritura a los sentinelas del dominio.
func writeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case isInvalidText(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mustAffect ErrNotFound si el UPDATE/DELETE no tocó ninguna fila.
func mustAffect(tag pgconn.CommandTag, op string, err error) error {
	if isInvalidText(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return writeErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner lo comparten pgx.Row y pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// one ejecuta una consulta de una fila; sin filas o con un id mal formado devuelve (nil, nil).
func one[T any](row pgx.Row, op string, scan func(scanner) (*T, error)) (*T, error) {
	v, err := scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// many recorre rows con scan y cierra el cursor.
func many[T any](rows pgx.Rows, err error, op string, scan func(scanner) (*T, error)) ([]*T, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// where arma condiciones con parámetros numerados. En cond, cada "?" se reemplaza por el
// número del argumento agregado.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

// addIf agrega la condición solo si value no está vacío.
func (w *where) addIf(cond, value string) {
	if value != "" {
		w.add(cond, value)
	}
}

func (w *where) search(cond, term string) {
	if term != "" {
		w.add(cond, "%"+term+"%")
	}
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page LIMIT/OFFSET; Limit <= 0 no limita.
func (w *where) page(p repository.Page) string {
	var b strings.Builder
	if p.Limit > 0 {
		w.args = append(w.args, p.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(w.args))
	}
	if p.Offset > 0 {
		w.args = append(w.args, p.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(w.args))
	}
	return b.String()
}
