package loyalty

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/pkg/dbmetrics"
	"github.com/avlebedev/carservice-admin/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникальности
const uniqueViolationCode = "23505"

var transactionColumns = []string{
	"id",
	"client_id",
	"delta",
	"reason",
	"booking_id",
	"comment",
	"created_at",
}

// Repository репозиторий для работы с движениями баллов лояльности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лояльности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает движение баллов
// ID выдается вызывающей стороной; повтор с тем же ID возвращает
// ErrDuplicateTransaction, что делает начисления идемпотентными
func (r *Repository) Create(ctx context.Context, tx *domain.LoyaltyTransaction) (*domain.LoyaltyTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("loyalty_transactions").
		Columns("id", "client_id", "delta", "reason", "booking_id", "comment").
		Values(tx.ID, tx.ClientID, tx.Delta, tx.Reason, tx.BookingID, tx.Comment).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("%w: id=%s", ErrDuplicateTransaction, tx.ID)
		}
		return nil, fmt.Errorf("%w: Create - execute query: %v", ErrExecQuery, err)
	}

	tx.CreatedAt = createdAt.Time

	return tx, nil
}

// GetByClient получает историю движений баллов клиента, новые первыми
func (r *Repository) GetByClient(ctx context.Context, clientID int64, limit int) ([]domain.LoyaltyTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(transactionColumns...).
		From("loyalty_transactions").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	transactions := make([]domain.LoyaltyTransaction, 0)
	for rows.Next() {
		var tx domain.LoyaltyTransaction
		var createdAt sql.NullTime

		err := rows.Scan(
			&tx.ID,
			&tx.ClientID,
			&tx.Delta,
			&tx.Reason,
			&tx.BookingID,
			&tx.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %v", ErrScanRow, err)
		}

		tx.CreatedAt = createdAt.Time
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %v", ErrScanRow, err)
	}

	return transactions, nil
}

// ExistsForBooking проверяет, было ли уже начисление по бронированию
// Защита от двойного начисления фоновым процессом
func (r *Repository) ExistsForBooking(ctx context.Context, bookingID int64, reason domain.LoyaltyReason) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("loyalty_transactions").
		Where(squirrel.Eq{"booking_id": bookingID, "reason": reason}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - execute query: %v", ErrExecQuery, err)
	}

	return count > 0, nil
}
