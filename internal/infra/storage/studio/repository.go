package studio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/pkg/dbmetrics"
	"github.com/studiokita/booking-service/pkg/psqlbuilder"
)

var studioColumns = []string{
	"id",
	"name",
	"contact_email",
	"contact_phone",
	"open_time",
	"close_time",
	"break_start",
	"break_end",
	"slot_gap_minutes",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"tier",
	"owner_user_id",
	"calendar_id",
	"created_at",
	"updated_at",
}

var layoutColumns = []string{
	"id",
	"studio_id",
	"name",
	"description",
	"capacity",
	"price",
	"minute_package",
	"photos",
	"amenities",
	"addons",
	"active",
	"created_at",
	"updated_at",
}

// Repository persists studios, their layouts and their staff lists.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a studio with its staff list.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(studioColumns...).
		From("studios").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	studio, err := scanStudio(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStudioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan studio: %v", ErrScanRow, err)
	}

	staff, err := r.getStaffIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	studio.StaffIDs = staff

	return studio, nil
}

// UpdateConfig writes the studio's booking configuration. Fields passed as
// nil pointers are left untouched.
func (r *Repository) UpdateConfig(ctx context.Context, id int64, update domain.StudioConfigUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("studios").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.OpenTime != nil {
		updateBuilder = updateBuilder.Set("open_time", *update.OpenTime)
	}
	if update.CloseTime != nil {
		updateBuilder = updateBuilder.Set("close_time", *update.CloseTime)
	}
	if update.SetBreak {
		updateBuilder = updateBuilder.
			Set("break_start", update.BreakStart).
			Set("break_end", update.BreakEnd)
	}
	if update.SlotGapMinutes != nil {
		updateBuilder = updateBuilder.Set("slot_gap_minutes", *update.SlotGapMinutes)
	}
	if update.MinBookingNoticeMinutes != nil {
		updateBuilder = updateBuilder.Set("min_booking_notice_minutes", *update.MinBookingNoticeMinutes)
	}
	if update.AdvanceBookingDays != nil {
		updateBuilder = updateBuilder.Set("advance_booking_days", *update.AdvanceBookingDays)
	}
	if update.CalendarID != nil {
		updateBuilder = updateBuilder.Set("calendar_id", *update.CalendarID)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStudioNotFound
	}

	return nil
}

// GetLayoutByID fetches a single layout.
func (r *Repository) GetLayoutByID(ctx context.Context, id int64) (*domain.StudioLayout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(layoutColumns...).
		From("studio_layouts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLayoutByID - build select query: %v", ErrBuildQuery, err)
	}

	layout, err := scanLayout(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLayoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLayoutByID - scan layout: %v", ErrScanRow, err)
	}

	return layout, nil
}

// GetLayoutsByStudioID lists a studio's layouts. Inactive layouts are
// excluded unless includeInactive is set.
func (r *Repository) GetLayoutsByStudioID(ctx context.Context, studioID int64, includeInactive bool) ([]*domain.StudioLayout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(layoutColumns...).
		From("studio_layouts").
		Where(squirrel.Eq{"studio_id": studioID}).
		OrderBy("name ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLayoutsByStudioID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLayoutsByStudioID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	layouts := make([]*domain.StudioLayout, 0)
	for rows.Next() {
		layout, err := scanLayout(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetLayoutsByStudioID - scan layout row: %v", ErrScanRow, err)
		}
		layouts = append(layouts, layout)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLayoutsByStudioID - rows error: %v", ErrScanRow, err)
	}

	return layouts, nil
}

// CreateLayout inserts a layout.
func (r *Repository) CreateLayout(ctx context.Context, layout *domain.StudioLayout) (*domain.StudioLayout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("studio_layouts").
		Columns(
			"studio_id",
			"name",
			"description",
			"capacity",
			"price",
			"minute_package",
			"photos",
			"amenities",
			"addons",
			"active",
		).
		Values(
			layout.StudioID,
			layout.Name,
			layout.Description,
			layout.Capacity,
			layout.Price,
			layout.MinutePackage,
			layout.Photos,
			layout.Amenities,
			layout.Addons,
			layout.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateLayout - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&layout.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLayout - execute insert: %v", ErrExecQuery, err)
	}

	layout.CreatedAt = createdAt.Time
	layout.UpdatedAt = updatedAt.Time

	return layout, nil
}

// UpdateLayout rewrites a layout's editable fields.
func (r *Repository) UpdateLayout(ctx context.Context, layout *domain.StudioLayout) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("studio_layouts").
		Set("name", layout.Name).
		Set("description", layout.Description).
		Set("capacity", layout.Capacity).
		Set("price", layout.Price).
		Set("minute_package", layout.MinutePackage).
		Set("photos", layout.Photos).
		Set("amenities", layout.Amenities).
		Set("addons", layout.Addons).
		Set("active", layout.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": layout.ID, "studio_id": layout.StudioID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLayout - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLayout - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLayout - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLayoutNotFound
	}

	return nil
}

// AddStaff links a user to the studio as a sub-account.
func (r *Repository) AddStaff(ctx context.Context, studioID, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("studio_staff").
		Columns("studio_id", "user_id").
		Values(studioID, userID).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddStaff - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrStaffExists
		}
		return fmt.Errorf("%w: AddStaff - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveStaff unlinks a staff sub-account.
func (r *Repository) RemoveStaff(ctx context.Context, studioID, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("studio_staff").
		Where(squirrel.Eq{"studio_id": studioID, "user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveStaff - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveStaff - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveStaff - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

// CountStaff returns how many sub-accounts the studio currently has. Called
// inside the add-staff transaction so the tier quota check and the insert
// see the same state.
func (r *Repository) CountStaff(ctx context.Context, studioID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("studio_staff").
		Where(squirrel.Eq{"studio_id": studioID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountStaff - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountStaff - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) getStaffIDs(ctx context.Context, studioID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id").
		From("studio_staff").
		Where(squirrel.Eq{"studio_id": studioID}).
		OrderBy("user_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getStaffIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getStaffIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: getStaffIDs - scan user_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getStaffIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudio(row rowScanner) (*domain.Studio, error) {
	var studio domain.Studio
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&studio.ID,
		&studio.Name,
		&studio.ContactEmail,
		&studio.ContactPhone,
		&studio.OpenTime,
		&studio.CloseTime,
		&studio.BreakStart,
		&studio.BreakEnd,
		&studio.SlotGapMinutes,
		&studio.MinBookingNoticeMinutes,
		&studio.AdvanceBookingDays,
		&studio.Tier,
		&studio.OwnerUserID,
		&studio.CalendarID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	studio.CreatedAt = createdAt.Time
	studio.UpdatedAt = updatedAt.Time

	return &studio, nil
}

func scanLayout(row rowScanner) (*domain.StudioLayout, error) {
	var layout domain.StudioLayout
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&layout.ID,
		&layout.StudioID,
		&layout.Name,
		&layout.Description,
		&layout.Capacity,
		&layout.Price,
		&layout.MinutePackage,
		&layout.Photos,
		&layout.Amenities,
		&layout.Addons,
		&layout.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	layout.CreatedAt = createdAt.Time
	layout.UpdatedAt = updatedAt.Time

	return &layout, nil
}
