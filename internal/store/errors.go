package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/mattn/go-sqlite3"
)

// translateError maps driver errors onto the league error taxonomy.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, league.ErrNotFound)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s: %w (%v)", what, league.Conflictf("that record already exists"), err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s: %w (%v)", what, league.Conflictf("the record is still in use"), err)
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%s: %w (%v)", what, league.Invalidf("the values were rejected"), err)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

func checkAffectedRows(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", what, league.ErrNotFound)
	}
	return nil
}
