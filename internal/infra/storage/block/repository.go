package block

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	"github.com/m04kA/SMC-AgendaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AgendaService/pkg/psqlbuilder"
)

const table = "provider_blocks"

// Repository репозиторий разовых блокировок времени провайдера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет блокировку
func (r *Repository) Create(ctx context.Context, block *domain.Block) (*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "provider_id", "start_datetime", "end_datetime", "reason").
		Values(block.ID, block.ProviderID, block.StartAt, block.EndAt, block.Reason).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return block, nil
}

// Delete удаляет блокировку провайдера. Чужая или несуществующая блокировка - ErrBlockNotFound.
func (r *Repository) Delete(ctx context.Context, providerID, blockID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": blockID, "provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// List возвращает блокировки провайдера, пересекающиеся с периодом фильтра, по возрастанию начала
func (r *Repository) List(ctx context.Context, filter domain.BlocksFilter) ([]*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "provider_id", "start_datetime", "end_datetime", "reason", "created_at").
		From(table).
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_datetime": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_datetime": *filter.To})
	}

	selectBuilder = selectBuilder.OrderBy("start_datetime ASC")
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

func scanBlocks(rows *sql.Rows) ([]*domain.Block, error) {
	blocks := make([]*domain.Block, 0)

	for rows.Next() {
		var block domain.Block
		if err := rows.Scan(
			&block.ID,
			&block.ProviderID,
			&block.StartAt,
			&block.EndAt,
			&block.Reason,
			&block.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
