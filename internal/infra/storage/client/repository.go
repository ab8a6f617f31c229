package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/pkg/dbmetrics"
	"github.com/avlebedev/carservice-admin/pkg/psqlbuilder"
)

var clientColumns = []string{
	"id",
	"company_id",
	"name",
	"phone",
	"email",
	"loyalty_points",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиентами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("company_id", "name", "phone", "email").
		Values(client.CompanyID, client.Name, client.Phone, client.Email).
		Suffix("RETURNING id, loyalty_points, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&client.ID,
		&client.LoyaltyPoints,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute query: %v", ErrExecQuery, err)
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return client, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку, чтобы баланс баллов
	// не менялся конкурентно между чтением и обновлением
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	client, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%d", ErrClientNotFound, id)
		}
		return nil, err
	}

	return client, nil
}

// GetByCompanyWithFilter получает клиентов компании с поиском и пагинацией
func (r *Repository) GetByCompanyWithFilter(ctx context.Context, filter domain.ClientsFilter) ([]domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := applyFilter(psqlbuilder.Select(clientColumns...).From("clients"), filter).
		OrderBy("name ASC").
		Limit(uint64(filter.PageLimit())).
		Offset(uint64(filter.Offset()))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// CountByCompanyWithFilter считает клиентов компании под фильтром
func (r *Repository) CountByCompanyWithFilter(ctx context.Context, filter domain.ClientsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("clients"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByCompanyWithFilter - build query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountByCompanyWithFilter - execute query: %v", ErrExecQuery, err)
	}

	return total, nil
}

// Update обновляет данные клиента
func (r *Repository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("name", client.Name).
		Set("phone", client.Phone).
		Set("email", client.Email).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": client.ID, "company_id": client.CompanyID}).
		Suffix("RETURNING loyalty_points, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&client.LoyaltyPoints, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%d", ErrClientNotFound, client.ID)
		}
		return nil, fmt.Errorf("%w: Update - execute query: %v", ErrExecQuery, err)
	}

	client.UpdatedAt = updatedAt.Time

	return client, nil
}

// UpdateLoyaltyPoints изменяет баланс баллов клиента на delta
// Возвращает новый баланс; отрицательный итог отклоняется ограничением БД
func (r *Repository) UpdateLoyaltyPoints(ctx context.Context, clientID int64, delta int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("loyalty_points", squirrel.Expr("loyalty_points + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": clientID}).
		Suffix("RETURNING loyalty_points").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateLoyaltyPoints - build query: %v", ErrBuildQuery, err)
	}

	var balance int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: id=%d", ErrClientNotFound, clientID)
		}
		return 0, fmt.Errorf("%w: UpdateLoyaltyPoints - execute query: %v", ErrExecQuery, err)
	}

	return balance, nil
}

// Delete удаляет клиента компании
func (r *Repository) Delete(ctx context.Context, companyID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("clients").
		Where(squirrel.Eq{"id": id, "company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute query: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", ErrClientNotFound, id)
	}

	return nil
}

func applyFilter(builder squirrel.SelectBuilder, filter domain.ClientsFilter) squirrel.SelectBuilder {
	builder = builder.Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"phone": pattern},
		})
	}

	return builder
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var client domain.Client
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&client.ID,
		&client.CompanyID,
		&client.Name,
		&client.Phone,
		&client.Email,
		&client.LoyaltyPoints,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan client: %v", ErrScanRow, err)
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return &client, nil
}

func scanClients(rows *sql.Rows) ([]domain.Client, error) {
	clients := make([]domain.Client, 0)

	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate clients: %v", ErrScanRow, err)
	}

	return clients, nil
}
