package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// nowFunc is swappable so tests can pin the clock.
var nowFunc = func() time.Time { return time.Now() }

// applySort orders by the sort column with id as a stable tiebreak, so
// pages stay deterministic when sort values collide.
func applySort(tx *gorm.DB, column string, desc bool) *gorm.DB {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return tx.Order(fmt.Sprintf("%s %s, id %s", column, dir, dir))
}

// seekAfter constrains tx to rows strictly after the cursor row in
// (column, id) order. The cursor is a bare record id; its sort value is
// looked up under the same team scope. A cursor that no longer exists in
// scope is ignored and the page starts from the beginning.
func (r *Repo) seekAfter(ctx context.Context, tx *gorm.DB, table, column string, desc bool, teamID, cursorID string) *gorm.DB {
	var val any
	row := r.DB.WithContext(ctx).Table(table).
		Select(column).
		Where("id = ? AND team_id = ?", cursorID, teamID).
		Row()
	if err := row.Scan(&val); err != nil {
		return tx
	}

	cmp := ">"
	if desc {
		cmp = "<"
	}
	if val == nil {
		// NULL sort values cannot anchor a (column, id) bound; fall back
		// to the id tiebreak alone.
		return tx.Where("id "+cmp+" ?", cursorID)
	}
	return tx.Where(
		fmt.Sprintf("(%s %s ?) OR (%s = ? AND id %s ?)", column, cmp, column, cmp),
		val, val, cursorID,
	)
}
