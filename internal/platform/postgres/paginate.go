package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"taskapi/internal/store"
)

// maxPreallocRows bounds how many rows paginate reserves up front for one
// page, independent of the requested limit.
const maxPreallocRows = 128

// paginate runs a counted, paginated fetch against a single table: one COUNT
// of every row matching the filter, then one page SELECT with the supplied
// ordering and LIMIT/OFFSET. The two reads are issued independently without a
// transaction; under concurrent writes the total may be off by the few rows
// that changed between them, which callers tolerate.
//
// Store errors propagate unmodified; no retry is attempted here.
func paginate[T any](
	ctx context.Context,
	db store.DBTX,
	table string,
	columns string,
	filter *Filter,
	orderBy string,
	req store.PageRequest,
	scan func(*sql.Rows) (T, error),
) (*store.Page[T], error) {
	req = req.Normalize()
	where, args := filter.Where()

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, where)
	if err := db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", table, err)
	}

	pageQuery := fmt.Sprintf(
		"SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		columns, table, where, orderBy, len(args)+1, len(args)+2,
	)
	rows, err := db.QueryContext(ctx, pageQuery, append(args, req.Limit, req.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	// The limit is caller-supplied and unbounded; cap only the
	// pre-allocation so an enormous page request cannot make the slice
	// constructor fail. Append grows past the cap as rows actually arrive.
	capacity := req.Limit
	if capacity > maxPreallocRows {
		capacity = maxPreallocRows
	}
	items := make([]T, 0, capacity)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", table, err)
	}

	return store.NewPage(items, total, req), nil
}
