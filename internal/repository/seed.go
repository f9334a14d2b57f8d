package repository

import (
	"context"
)

// SeedResult counts what Seed wrote
type SeedResult struct {
	ItemsInserted int
	ItemsUpdated  int
	WorkingHours  int
}

// Seed writes the dataset's items and facility into the database. Items are
// upserted by id, so running it twice leaves one copy of each.
func (r *PersistedBackend) Seed(ctx context.Context, ds Dataset) (SeedResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var res SeedResult

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return res, unavailable("seed: begin", err)
	}
	defer tx.Rollback()

	for _, item := range ds.Items {
		exists := true
		if err := r.requireRow(ctx, tx, itemsTable, item.ItemID); err != nil {
			if !isNoRows(err) {
				return res, unavailable("seed item "+item.ItemID, err)
			}
			exists = false
		}

		if !exists {
			if err := r.insertItem(ctx, tx, item); err != nil {
				return res, unavailable("seed item "+item.ItemID, err)
			}
			res.ItemsInserted++
			continue
		}

		if err := r.writeItem(ctx, tx, item); err != nil {
			return res, unavailable("seed item "+item.ItemID, err)
		}
		res.ItemsUpdated++
	}

	if f := ds.Facility; f.FacilityID != "" {
		if _, err := tx.ExecContext(ctx, r.dialect.rebind("DELETE FROM working_hours WHERE facility_id = ?"), f.FacilityID); err != nil {
			return res, unavailable("seed facility", err)
		}
		if _, err := tx.ExecContext(ctx, r.dialect.rebind("DELETE FROM facilities WHERE id = ?"), f.FacilityID); err != nil {
			return res, unavailable("seed facility", err)
		}
		_, err := tx.ExecContext(ctx,
			r.dialect.rebind("INSERT INTO facilities (id, name, address, phone, email, created_at) VALUES (?, ?, ?, ?, ?, ?)"),
			f.FacilityID, f.Name, f.Address, f.Phone, f.Email, r.now())
		if err != nil {
			return res, unavailable("seed facility", err)
		}
		for i, wh := range f.WorkingHours {
			_, err := tx.ExecContext(ctx,
				r.dialect.rebind(`INSERT INTO working_hours (facility_id, position, day_of_week, open_time, close_time, is_open)
					VALUES (?, ?, ?, ?, ?, ?)`),
				f.FacilityID, i, wh.DayOfWeek, wh.OpenTime, wh.CloseTime, wh.IsOpen)
			if err != nil {
				return res, unavailable("seed working hours", err)
			}
			res.WorkingHours++
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, unavailable("seed: commit", err)
	}
	return res, nil
}
