package postgres

import (
	"database/sql"

	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/lib/pq"
)

// allowed sort columns shared by the list queries
var sortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"issue_date": true,
}

// sanitizeSortColumn guards against injecting arbitrary SQL through the sort
// query parameter.
func sanitizeSortColumn(col string) string {
	if sortColumns[col] {
		return col
	}
	return "created_at"
}

func sanitizeSortOrder(order string) string {
	if order == "asc" {
		return "ASC"
	}
	return "DESC"
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

// requireRowAffected turns a zero-row update into a not found error
func requireRowAffected(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("no rows affected").
			WithHintf("Record with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
