package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ledger/internal/services"
	"ledger/internal/shipment"
)

// ListOptions filters List results. Zero values select everything.
type ListOptions struct {
	Statuses []shipment.Status
	Search   string
	Limit    int
}

// Add inserts a single record and returns it with its generated ID and timestamps.
func (s *Store) Add(ctx context.Context, rec shipment.Record) (*shipment.Record, error) {
	ids, err := s.AddMany(ctx, []shipment.Record{rec})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, ids[0])
}

// AddMany inserts records in one transaction and returns their IDs in input
// order. Either every record is stored or none is.
func (s *Store) AddMany(ctx context.Context, recs []shipment.Record) ([]string, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	ctx = ensureContext(ctx)
	recs = append([]shipment.Record(nil), recs...)
	for i := range recs {
		recs[i].Normalize()
		if recs[i].HouseBillNumber == "" {
			return nil, services.Wrap(services.ErrValidation, "store", "add", fmt.Sprintf("record %d has no house bill number", i+1), nil)
		}
	}

	base := time.Now().UTC()
	ids := make([]string, len(recs))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertSQL)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i := range recs {
			id := uuid.NewString()
			// Offset timestamps so newest-first listing keeps batch order stable.
			stamp := formatTime(base.Add(time.Duration(i) * time.Microsecond))
			args := append([]any{id}, recordArgs(&recs[i])...)
			args = append(args, stamp, stamp)
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return err
			}
			ids[i] = id
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert shipments: %w", err)
	}
	return ids, nil
}

// Get fetches a record by identifier. It returns nil, nil when no record matches.
func (s *Store) Get(ctx context.Context, id string) (*shipment.Record, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+recordColumns+` FROM shipments WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return rec, nil
}

// GetMany fetches records in the order their IDs were given. Any unknown ID
// fails the whole call with services.ErrNotFound.
func (s *Store) GetMany(ctx context.Context, ids []string) ([]shipment.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+recordColumns+` FROM shipments WHERE id IN (`+makePlaceholders(len(ids))+`)`,
		stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query shipments: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*shipment.Record, len(ids))
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]shipment.Record, 0, len(ids))
	var missing []string
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, *rec)
	}
	if len(missing) > 0 {
		return nil, services.Wrap(services.ErrNotFound, "store", "get", "unknown shipment ids: "+strings.Join(missing, ", "), nil)
	}
	return out, nil
}

// List returns records newest first, filtered by status set and a free-text
// search over house bill, consignee name, container number and status.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]shipment.Record, error) {
	var (
		clauses []string
		args    []any
	)
	if len(opts.Statuses) > 0 {
		clauses = append(clauses, `status IN (`+makePlaceholders(len(opts.Statuses))+`)`)
		for _, status := range opts.Statuses {
			args = append(args, string(status))
		}
	}
	if term := strings.ToLower(strings.TrimSpace(opts.Search)); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		clauses = append(clauses, `(LOWER(house_bill_number) LIKE ? ESCAPE '\'
            OR LOWER(COALESCE(consignee_name, '')) LIKE ? ESCAPE '\'
            OR LOWER(COALESCE(container_number, '')) LIKE ? ESCAPE '\'
            OR LOWER(status) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query := `SELECT ` + recordColumns + ` FROM shipments`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if opts.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, opts.Limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var out []shipment.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Update persists every field of an existing record.
func (s *Store) Update(ctx context.Context, rec *shipment.Record) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	rec.Normalize()
	if rec.HouseBillNumber == "" {
		return services.Wrap(services.ErrValidation, "store", "update", "house bill number is required", nil)
	}
	rec.UpdatedAt = time.Now().UTC()
	args := append(recordArgs(rec), formatTime(rec.UpdatedAt), rec.ID)
	res, err := s.execWithRetry(ctx, updateSQL, args...)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.Wrap(services.ErrNotFound, "store", "update", "shipment "+rec.ID, nil)
	}
	return nil
}

// ApplyPatch applies patch to every listed record in one transaction and
// returns how many records changed. Unknown IDs are skipped.
func (s *Store) ApplyPatch(ctx context.Context, ids []string, patch shipment.Patch) (int, error) {
	if patch.IsEmpty() {
		return 0, services.Wrap(services.ErrValidation, "store", "patch", "no fields to update", nil)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	ctx = ensureContext(ctx)
	updated := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		updated = 0
		now := formatTime(time.Now().UTC())
		for _, id := range ids {
			rec, err := scanRecord(tx.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM shipments WHERE id = ?`, id))
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				return err
			}
			patch.Apply(rec)
			args := append(recordArgs(rec), now, rec.ID)
			if _, err := tx.ExecContext(ctx, updateSQL, args...); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("patch shipments: %w", err)
	}
	return updated, nil
}

// UpdateStatusByPrefix sets status on every record whose house bill number
// starts with prefix (case-sensitive) and returns the number changed.
func (s *Store) UpdateStatusByPrefix(ctx context.Context, prefix string, status shipment.Status) (int64, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return 0, services.Wrap(services.ErrValidation, "store", "status", "prefix is required", nil)
	}
	parsed, ok := shipment.ParseStatus(string(status))
	if !ok {
		return 0, services.Wrap(services.ErrValidation, "store", "status", fmt.Sprintf("unknown status %q", status), nil)
	}
	res, err := s.execWithRetry(ctx,
		`UPDATE shipments SET status = ?, updated_at = ?
         WHERE substr(house_bill_number, 1, length(?)) = ?`,
		string(parsed), formatTime(time.Now().UTC()), prefix, prefix)
	if err != nil {
		return 0, fmt.Errorf("update status by prefix: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes a record. It reports whether a record was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM shipments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete shipment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteMany removes every listed record and returns how many were removed.
func (s *Store) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.execWithRetry(ctx,
		`DELETE FROM shipments WHERE id IN (`+makePlaceholders(len(ids))+`)`,
		stringArgs(ids)...)
	if err != nil {
		return 0, fmt.Errorf("delete shipments: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns a count of records grouped by status.
func (s *Store) Stats(ctx context.Context) (map[shipment.Status]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT status, COUNT(1) FROM shipments GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("shipment stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[shipment.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[shipment.Status(status)] = count
	}
	return stats, rows.Err()
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
