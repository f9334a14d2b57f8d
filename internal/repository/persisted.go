package repository

import (
	"catalog-engine/internal/catalogerrors"
	"catalog-engine/internal/models"
	"catalog-engine/internal/query"
	"catalog-engine/utils"
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

//go:embed schema.sql
var schemaSQL string

const itemsTable = "items"

var itemColumns = []string{
	"id", "make", "model", "year", "body_type", "fuel_type", "transmission", "color",
	"price", "mileage", "images", "description", "status", "featured", "created_at",
}

// writeColumns are itemColumns followed by the folded copies of the text fields
var writeColumns = func() []string {
	cols := append([]string{}, itemColumns...)
	for _, f := range query.FoldedFields {
		cols = append(cols, f.Folded())
	}
	return cols
}()

// reservation states that count as the viewer's current booking
var activeReservationStates = []string{"PENDING", "CONFIRMED", "COMPLETED"}

// Options configures a PersistedBackend
type Options struct {
	Driver       string
	DSN          string
	QueryTimeout time.Duration
}

// PersistedBackend implements CatalogBackend over a relational database.
// Every call runs under QueryTimeout; driver and connection failures are
// reported as catalogerrors.ErrBackendUnavailable.
type PersistedBackend struct {
	db      *sql.DB
	dialect dialect
	timeout time.Duration
	now     func() time.Time
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Open connects to the database, applies driver settings and the schema
func Open(ctx context.Context, opts Options) (*PersistedBackend, error) {
	d, err := newDialect(opts.Driver)
	if err != nil {
		return nil, err
	}

	dsn := opts.DSN
	if d == DriverMySQL {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		dsn = cfg.FormatDSN()
	}

	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	r := &PersistedBackend{db: db, dialect: d, timeout: opts.QueryTimeout, now: func() time.Time { return time.Now().UTC() }}

	pingCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, unavailable("connect to database", err)
	}

	if d == DriverSQLite {
		// SQLite only supports one writer at a time
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"} {
			if _, err := db.ExecContext(pingCtx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("apply %q: %w", pragma, err)
			}
		}
	}

	if err := r.ApplySchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

// ApplySchema creates missing tables. It is idempotent.
func (r *PersistedBackend) ApplySchema(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	for _, stmt := range splitStatements(schemaSQL) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (r *PersistedBackend) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// DB returns the underlying handle, for seeding and tests
func (r *PersistedBackend) DB() *sql.DB {
	return r.db
}

// Mode reports ModePersisted
func (r *PersistedBackend) Mode() Mode { return ModePersisted }

// Facets computes the facet summary over AVAILABLE items
func (r *PersistedBackend) Facets(ctx context.Context) (models.FacetSummary, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	fields := []query.Field{query.FieldMake, query.FieldBodyType, query.FieldFuelType, query.FieldTransmission}
	values := make([][]string, len(fields))
	for i, f := range fields {
		vals, err := r.distinct(ctx, f)
		if err != nil {
			return models.FacetSummary{}, err
		}
		values[i] = vals
	}

	var lo, hi decimal.NullDecimal
	row := r.db.QueryRowContext(ctx,
		r.dialect.rebind("SELECT MIN(price), MAX(price) FROM items WHERE status = ?"),
		string(models.StatusAvailable))
	if err := row.Scan(&lo, &hi); err != nil {
		return models.FacetSummary{}, unavailable("facets: price range", err)
	}

	return models.FacetSummary{
		Makes:         sortedDistinct(values[0]),
		BodyTypes:     sortedDistinct(values[1]),
		FuelTypes:     sortedDistinct(values[2]),
		Transmissions: sortedDistinct(values[3]),
		PriceRange:    priceRange(lo, hi),
	}, nil
}

func (r *PersistedBackend) distinct(ctx context.Context, f query.Field) ([]string, error) {
	q := fmt.Sprintf("SELECT DISTINCT %s FROM items WHERE status = ?", f)
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(q), string(models.StatusAvailable))
	if err != nil {
		return nil, unavailable("facets: "+string(f), err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, unavailable("facets: "+string(f), err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("facets: "+string(f), err)
	}
	return out, nil
}

// ListItems runs the compiled plan and returns one page plus the unpaged total
func (r *PersistedBackend) ListItems(ctx context.Context, plan query.Plan) ([]models.Item, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	stmt := query.Compile(plan)

	countSQL, countArgs := stmt.CountSQL(itemsTable)
	var total int
	if err := r.db.QueryRowContext(ctx, r.dialect.rebind(countSQL), countArgs...).Scan(&total); err != nil {
		return nil, 0, unavailable("list items: count", err)
	}
	if _, _, ok := plan.Window(total); !ok {
		return []models.Item{}, total, nil
	}

	selectSQL, args := stmt.SelectSQL(itemsTable, strings.Join(itemColumns, ", "))
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(selectSQL), args...)
	if err != nil {
		return nil, 0, unavailable("list items", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, unavailable("list items", err)
	}
	return items, total, nil
}

// GetItem returns an item of any status
func (r *PersistedBackend) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.getItem(ctx, r.db, itemID)
}

func (r *PersistedBackend) getItem(ctx context.Context, q querier, itemID string) (models.Item, error) {
	sqlText := fmt.Sprintf("SELECT %s FROM items WHERE id = ?", strings.Join(itemColumns, ", "))
	item, err := scanItem(q.QueryRowContext(ctx, r.dialect.rebind(sqlText), itemID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, fmt.Errorf("get item %s: %w", itemID, catalogerrors.ErrItemNotFound)
	}
	if err != nil {
		return models.Item{}, unavailable("get item "+itemID, err)
	}
	return item, nil
}

// ViewerBySubject returns the viewer registered for an identity-provider subject
func (r *PersistedBackend) ViewerBySubject(ctx context.Context, subject string) (models.Viewer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.viewerBySubject(ctx, subject)
}

func (r *PersistedBackend) viewerBySubject(ctx context.Context, subject string) (models.Viewer, error) {
	var v models.Viewer
	var role string
	err := r.db.QueryRowContext(ctx,
		r.dialect.rebind("SELECT id, subject, name, role, created_at FROM viewers WHERE subject = ?"),
		subject).Scan(&v.ViewerID, &v.Subject, &v.Name, &role, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Viewer{}, fmt.Errorf("get viewer %s: %w", subject, catalogerrors.ErrViewerNotFound)
	}
	if err != nil {
		return models.Viewer{}, unavailable("get viewer "+subject, err)
	}
	v.Role = models.Role(role)
	v.CreatedAt = v.CreatedAt.UTC()
	return v, nil
}

// EnsureViewer returns the viewer for subject, creating it on first use
func (r *PersistedBackend) EnsureViewer(ctx context.Context, subject, name string) (models.Viewer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	v, err := r.viewerBySubject(ctx, subject)
	if err == nil || !errors.Is(err, catalogerrors.ErrViewerNotFound) {
		return v, err
	}

	v = models.Viewer{
		ViewerID:  utils.GenerateID(),
		Subject:   subject,
		Name:      name,
		Role:      models.RoleUser,
		CreatedAt: r.now(),
	}
	_, err = r.db.ExecContext(ctx,
		r.dialect.rebind("INSERT INTO viewers (id, subject, name, role, created_at) VALUES (?, ?, ?, ?, ?)"),
		v.ViewerID, v.Subject, v.Name, string(v.Role), v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// onboarded concurrently by another request
			return r.viewerBySubject(ctx, subject)
		}
		return models.Viewer{}, unavailable("create viewer "+subject, err)
	}
	return v, nil
}

// PromoteViewer grants the ADMIN role to subject, registering it first when
// it has never signed in
func (r *PersistedBackend) PromoteViewer(ctx context.Context, subject, name string) (models.Viewer, error) {
	v, err := r.EnsureViewer(ctx, subject, name)
	if err != nil {
		return models.Viewer{}, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx,
		r.dialect.rebind("UPDATE viewers SET role = ? WHERE id = ?"),
		string(models.RoleAdmin), v.ViewerID); err != nil {
		return models.Viewer{}, unavailable("promote viewer "+subject, err)
	}
	v.Role = models.RoleAdmin
	return v, nil
}

// SavedItemIDs reports which of itemIDs the viewer has saved, in a single query
func (r *PersistedBackend) SavedItemIDs(ctx context.Context, viewerID string, itemIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := fmt.Sprintf("SELECT item_id FROM saved_items WHERE viewer_id = ? AND item_id IN (%s)", placeholders(len(itemIDs)))
	args := make([]any, 0, len(itemIDs)+1)
	args = append(args, viewerID)
	for _, id := range itemIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(q), args...)
	if err != nil {
		return nil, unavailable("saved lookup", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, unavailable("saved lookup", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("saved lookup", err)
	}
	return out, nil
}

// ToggleSaved inverts the saved state of (viewer, item) in one transaction.
// A concurrent toggle that wins the insert race surfaces as ErrConflict.
func (r *PersistedBackend) ToggleSaved(ctx context.Context, viewerID, itemID string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, unavailable("toggle saved: begin", err)
	}
	defer tx.Rollback()

	if err := r.requireRow(ctx, tx, "viewers", viewerID); err != nil {
		if isNoRows(err) {
			return false, fmt.Errorf("toggle saved for viewer %s: %w", viewerID, catalogerrors.ErrViewerNotFound)
		}
		return false, unavailable("toggle saved", err)
	}
	if err := r.requireRow(ctx, tx, itemsTable, itemID); err != nil {
		if isNoRows(err) {
			return false, fmt.Errorf("toggle saved item %s: %w", itemID, catalogerrors.ErrItemNotFound)
		}
		return false, unavailable("toggle saved", err)
	}

	res, err := tx.ExecContext(ctx,
		r.dialect.rebind("DELETE FROM saved_items WHERE viewer_id = ? AND item_id = ?"),
		viewerID, itemID)
	if err != nil {
		return false, toggleFailed("delete", itemID, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, unavailable("toggle saved: delete", err)
	}

	saved := false
	if removed == 0 {
		_, err = tx.ExecContext(ctx,
			r.dialect.rebind("INSERT INTO saved_items (id, viewer_id, item_id, saved_at) VALUES (?, ?, ?, ?)"),
			utils.GenerateSortableID(), viewerID, itemID, r.now())
		if err != nil {
			return false, toggleFailed("insert", itemID, err)
		}
		saved = true
	}

	if err := tx.Commit(); err != nil {
		return false, toggleFailed("commit", itemID, err)
	}
	return saved, nil
}

// toggleFailed maps a toggle write error: a lost race with a concurrent
// writer is ErrConflict, anything else means the database is unavailable
func toggleFailed(stage, itemID string, err error) error {
	if isRetryableConflict(err) {
		return fmt.Errorf("toggle saved item %s: %w: %w", itemID, catalogerrors.ErrConflict, err)
	}
	return unavailable("toggle saved: "+stage, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// requireRow returns sql.ErrNoRows when table has no row with id
func (r *PersistedBackend) requireRow(ctx context.Context, q querier, table, id string) error {
	var found string
	return q.QueryRowContext(ctx, r.dialect.rebind("SELECT id FROM "+table+" WHERE id = ?"), id).Scan(&found)
}

// ListSavedItems returns the viewer's saved items, most recently saved first
func (r *PersistedBackend) ListSavedItems(ctx context.Context, viewerID string) ([]models.Item, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cols := make([]string, len(itemColumns))
	for i, c := range itemColumns {
		cols[i] = "i." + c
	}
	q := fmt.Sprintf(`SELECT %s FROM saved_items s JOIN items i ON i.id = s.item_id
		WHERE s.viewer_id = ? ORDER BY s.saved_at DESC, s.id DESC`, strings.Join(cols, ", "))

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(q), viewerID)
	if err != nil {
		return nil, unavailable("list saved items", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, unavailable("list saved items", err)
	}
	for i := range items {
		items[i].Saved = true
	}
	return items, nil
}

// CountSaved returns the number of items the viewer has saved
func (r *PersistedBackend) CountSaved(ctx context.Context, viewerID string) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	err := r.db.QueryRowContext(ctx,
		r.dialect.rebind("SELECT COUNT(*) FROM saved_items WHERE viewer_id = ?"), viewerID).Scan(&n)
	if err != nil {
		return 0, unavailable("count saved", err)
	}
	return n, nil
}

// ActiveReservation returns the viewer's newest pending, confirmed or completed
// reservation on the item, or nil when there is none
func (r *PersistedBackend) ActiveReservation(ctx context.Context, viewerID, itemID string) (*models.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := fmt.Sprintf(`SELECT id, status, booking_date, start_time, end_time FROM reservations
		WHERE item_id = ? AND viewer_id = ? AND status IN (%s)
		ORDER BY created_at DESC, id DESC LIMIT 1`, placeholders(len(activeReservationStates)))
	args := []any{itemID, viewerID}
	for _, s := range activeReservationStates {
		args = append(args, s)
	}

	var res models.Reservation
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(q), args...).
		Scan(&res.ReservationID, &res.Status, &res.BookingDate, &res.StartTime, &res.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("active reservation", err)
	}
	res.BookingDate = res.BookingDate.UTC()
	return &res, nil
}

// Facility returns the first registered facility with its working hours, or nil
func (r *PersistedBackend) Facility(ctx context.Context) (*models.Facility, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var f models.Facility
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, address, phone, email FROM facilities ORDER BY created_at, id LIMIT 1").
		Scan(&f.FacilityID, &f.Name, &f.Address, &f.Phone, &f.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("facility", err)
	}

	rows, err := r.db.QueryContext(ctx,
		r.dialect.rebind(`SELECT day_of_week, open_time, close_time, is_open FROM working_hours
			WHERE facility_id = ? ORDER BY position`), f.FacilityID)
	if err != nil {
		return nil, unavailable("facility working hours", err)
	}
	defer rows.Close()

	f.WorkingHours = []models.WorkingHour{}
	for rows.Next() {
		var wh models.WorkingHour
		if err := rows.Scan(&wh.DayOfWeek, &wh.OpenTime, &wh.CloseTime, &wh.IsOpen); err != nil {
			return nil, unavailable("facility working hours", err)
		}
		f.WorkingHours = append(f.WorkingHours, wh)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("facility working hours", err)
	}
	return &f, nil
}

// CreateItem inserts a fully populated item
func (r *PersistedBackend) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.insertItem(ctx, r.db, item); err != nil {
		if isUniqueViolation(err) {
			return models.Item{}, fmt.Errorf("create item %s: %w", item.ItemID, catalogerrors.ErrConflict)
		}
		return models.Item{}, unavailable("create item "+item.ItemID, err)
	}
	item.Saved = false
	return item, nil
}

func (r *PersistedBackend) insertItem(ctx context.Context, q querier, item models.Item) error {
	values, err := itemValues(item)
	if err != nil {
		return err
	}
	sqlText := fmt.Sprintf("INSERT INTO items (%s) VALUES (%s)",
		strings.Join(writeColumns, ", "), placeholders(len(writeColumns)))
	_, err = q.ExecContext(ctx, r.dialect.rebind(sqlText), values...)
	return err
}

// writeItem overwrites every column of an existing item
func (r *PersistedBackend) writeItem(ctx context.Context, q querier, item models.Item) error {
	values, err := itemValues(item)
	if err != nil {
		return err
	}
	sets := make([]string, 0, len(writeColumns)-1)
	for _, c := range writeColumns[1:] {
		sets = append(sets, c+" = ?")
	}
	sqlText := fmt.Sprintf("UPDATE items SET %s WHERE id = ?", strings.Join(sets, ", "))
	args := append(values[1:], item.ItemID)
	_, err = q.ExecContext(ctx, r.dialect.rebind(sqlText), args...)
	return err
}

// itemValues returns the values of writeColumns for item
func itemValues(item models.Item) ([]any, error) {
	images, err := json.Marshal(nonNil(item.Images))
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	values := []any{
		item.ItemID, item.Make, item.Model, item.Year, item.BodyType, item.FuelType, item.Transmission, item.Color,
		item.Price, item.Mileage, string(images), item.Description, string(item.Status), item.Featured, item.CreatedAt.UTC(),
	}
	for _, f := range query.FoldedFields {
		values = append(values, query.Fold(query.FieldText(item, f)))
	}
	return values, nil
}

// UpdateItem applies a partial update to an item
func (r *PersistedBackend) UpdateItem(ctx context.Context, itemID string, update models.ItemUpdate) (models.Item, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Item{}, unavailable("update item: begin", err)
	}
	defer tx.Rollback()

	item, err := r.getItem(ctx, tx, itemID)
	if err != nil {
		return models.Item{}, err
	}
	item = update.Apply(item)

	if err := r.writeItem(ctx, tx, item); err != nil {
		return models.Item{}, unavailable("update item "+itemID, err)
	}
	if err := tx.Commit(); err != nil {
		return models.Item{}, unavailable("update item: commit", err)
	}
	return item, nil
}

// DeleteItem removes an item together with its saved relations and reservations
func (r *PersistedBackend) DeleteItem(ctx context.Context, itemID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("delete item: begin", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM saved_items WHERE item_id = ?",
		"DELETE FROM reservations WHERE item_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, r.dialect.rebind(q), itemID); err != nil {
			return unavailable("delete item "+itemID, err)
		}
	}

	res, err := tx.ExecContext(ctx, r.dialect.rebind("DELETE FROM items WHERE id = ?"), itemID)
	if err != nil {
		return unavailable("delete item "+itemID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("delete item "+itemID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete item %s: %w", itemID, catalogerrors.ErrItemNotFound)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("delete item: commit", err)
	}
	return nil
}

func (r *PersistedBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	items := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanItem(s rowScanner) (models.Item, error) {
	var it models.Item
	var images, status string
	err := s.Scan(&it.ItemID, &it.Make, &it.Model, &it.Year, &it.BodyType, &it.FuelType, &it.Transmission,
		&it.Color, &it.Price, &it.Mileage, &images, &it.Description, &status, &it.Featured, &it.CreatedAt)
	if err != nil {
		return models.Item{}, err
	}
	if err := json.Unmarshal([]byte(images), &it.Images); err != nil {
		return models.Item{}, fmt.Errorf("decode images of %s: %w", it.ItemID, err)
	}
	it.Images = nonNil(it.Images)
	it.Status = models.ItemStatus(status)
	it.CreatedAt = it.CreatedAt.UTC()
	return it, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// unavailable marks err as a backend failure while keeping the driver error in the chain
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, catalogerrors.ErrBackendUnavailable, err)
}
