package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// código SQLSTATE de violação de constraint de exclusão
const pgExclusionViolation = "23P01"

// IsExclusionConflict detecta a violação da constraint de exclusão de
// horários no Postgres. A checagem otimista em memória pode passar com
// snapshot velho; o banco é quem fecha a corrida de duas reservas
// simultâneas no mesmo slot.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}
