package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	"github.com/m04kA/SMC-AgendaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AgendaService/pkg/psqlbuilder"
)

const table = "appointments"

// Коды ошибок PostgreSQL
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

var columns = []string{
	"id",
	"provider_id",
	"product_id",
	"start_datetime",
	"end_datetime",
	"status",
	"client_name",
	"client_email",
	"client_phone",
	"join_token",
	"video_provider",
	"video_join_url",
	"video_room_id",
	"settlement_ref",
	"confirmation_email_sent_at",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func occupyingStatuses() pq.StringArray {
	statuses := make(pq.StringArray, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// CreatePendingIfFree атомарно создает запись в статусе pending, только если интервал
// не пересекается с активной записью или блокировкой того же провайдера.
// Вставка и проверка выполняются одним INSERT ... SELECT ... WHERE NOT EXISTS.
// Одновременные вставки, прошедшие проверку, отсекает exclusion constraint (23P01).
func (r *Repository) CreatePendingIfFree(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.Status = domain.StatusPending
	if appointment.VideoProvider == "" {
		appointment.VideoProvider = domain.VideoNone
	}

	source := psqlbuilder.Select().
		Column("?::uuid", appointment.ID).
		Column("?::uuid", appointment.ProviderID).
		Column("?::uuid", appointment.ServiceID).
		Column("?::timestamptz", appointment.StartAt).
		Column("?::timestamptz", appointment.EndAt).
		Column("?::text", string(appointment.Status)).
		Column("?::text", appointment.ClientName).
		Column("?::text", appointment.ClientEmail).
		Column("?::text", appointment.ClientPhone).
		Column("?::text", string(appointment.VideoProvider)).
		Column("?::text", appointment.VideoJoinURL).
		Column("?::text", appointment.VideoRoomID).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM appointments a WHERE a.provider_id = ? AND a.status = ANY(?) AND a.start_datetime < ? AND a.end_datetime > ?)",
			appointment.ProviderID, occupyingStatuses(), appointment.EndAt, appointment.StartAt,
		)).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM provider_blocks b WHERE b.provider_id = ? AND b.start_datetime < ? AND b.end_datetime > ?)",
			appointment.ProviderID, appointment.EndAt, appointment.StartAt,
		))

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"provider_id",
			"product_id",
			"start_datetime",
			"end_datetime",
			"status",
			"client_name",
			"client_email",
			"client_phone",
			"video_provider",
			"video_join_url",
			"video_room_id",
		).
		Select(source).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePendingIfFree - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)

	// Ни одной строки не вставлено: интервал занят на момент вставки
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotTaken
	}
	if isPgError(err, pgExclusionViolation) {
		return nil, fmt.Errorf("%w: CreatePendingIfFree - exclusion constraint", ErrSlotTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePendingIfFree - execute insert: %v", ErrExecQuery, err)
	}

	return appointment, nil
}

// GetByID получает запись по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// GetByJoinToken получает запись по токену подключения
func (r *Repository) GetByJoinToken(ctx context.Context, token string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"join_token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByJoinToken - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByJoinToken - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// ListOccupying возвращает активные записи провайдера, пересекающиеся с [from, to)
func (r *Repository) ListOccupying(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Expr("status = ANY(?)", occupyingStatuses())).
		Where(squirrel.Lt{"start_datetime": to}).
		Where(squirrel.Gt{"end_datetime": from}).
		OrderBy("start_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListWithFilter получает записи провайдера с фильтрацией по периоду и статусу.
// Без статуса и IncludeInactive возвращаются только активные записи.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_datetime": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_datetime": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Expr("status = ANY(?)", occupyingStatuses()))
	}

	query, args, err := selectBuilder.OrderBy("start_datetime ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Confirm переводит запись из pending в confirmed
func (r *Repository) Confirm(ctx context.Context, id uuid.UUID, settlementRef *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusConfirmed)).
		Set("settlement_ref", settlementRef).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, "Confirm", query, args)
}

// Cancel отменяет активную запись со стороны провайдера. Строка не удаляется.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusCancelledByProvider)).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("status = ANY(?)", occupyingStatuses())).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, "Cancel", query, args)
}

func (r *Repository) execTransition(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// SetJoinTokenIfEmpty сохраняет токен подключения, только если он еще не выдан.
// Возвращает false, если токен уже был установлен ранее.
func (r *Repository) SetJoinTokenIfEmpty(ctx context.Context, id uuid.UUID, token string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("join_token", token).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"join_token": nil}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: SetJoinTokenIfEmpty - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isPgError(err, pgUniqueViolation) {
		return false, ErrJoinTokenCollision
	}
	if err != nil {
		return false, fmt.Errorf("%w: SetJoinTokenIfEmpty - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: SetJoinTokenIfEmpty - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// MarkConfirmationEmailSent ставит отметку об отправке письма-подтверждения.
// Отметка ставится один раз и только для подтвержденной записи; false, если она уже стоит.
func (r *Repository) MarkConfirmationEmailSent(ctx context.Context, id uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("confirmation_email_sent_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Where(squirrel.Eq{"confirmation_email_sent_at": nil}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkConfirmationEmailSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkConfirmationEmailSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkConfirmationEmailSent - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// ExpirePending переводит в expired записи pending, созданные раньше createdBefore.
// Возвращает количество освобожденных слотов.
func (r *Repository) ExpirePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusExpired)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		Where(squirrel.Lt{"created_at": createdBefore}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.ProviderID,
		&appointment.ServiceID,
		&appointment.StartAt,
		&appointment.EndAt,
		&appointment.Status,
		&appointment.ClientName,
		&appointment.ClientEmail,
		&appointment.ClientPhone,
		&appointment.JoinToken,
		&appointment.VideoProvider,
		&appointment.VideoJoinURL,
		&appointment.VideoRoomID,
		&appointment.SettlementRef,
		&appointment.ConfirmationEmailSentAt,
		&appointment.CancellationReason,
		&appointment.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func isPgError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
