package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	"github.com/m04kA/SMC-AgendaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AgendaService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания, хранящегося в profiles.availability (JSONB)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает расписание провайдера.
// Документы старой схемы приводятся к текущей версии при чтении.
func (r *Repository) Get(ctx context.Context, providerID uuid.UUID) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("availability").
		From("profiles").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan availability: %v", ErrScanRow, err)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrAvailabilityNotFound
	}

	availability, err := domain.ParseWeeklyAvailability(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - provider %s: %v", ErrCorruptedDocument, providerID, err)
	}

	return availability, nil
}

// Update сохраняет расписание провайдера в формате текущей версии
func (r *Repository) Update(ctx context.Context, providerID uuid.UUID, availability *domain.WeeklyAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	document, err := availability.Marshal()
	if err != nil {
		return fmt.Errorf("%w: Update - marshal availability: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("profiles").
		Set("availability", squirrel.Expr("?::jsonb", string(document))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}
