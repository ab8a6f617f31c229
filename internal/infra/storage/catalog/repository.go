package catalog

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

var serviceColumns = []string{
	"id",
	"company_id",
	"name",
	"duration_minutes",
	"price",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с каталогом услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет услугу в каталог
func (r *Repository) Create(ctx context.Context, service *domain.CatalogService) (*domain.CatalogService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("company_id", "name", "duration_minutes", "price", "active").
		Values(service.CompanyID, service.Name, service.DurationMinutes, service.Price, service.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute query: %v", ErrExecQuery, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return service, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CatalogService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		return nil, err
	}

	return service, nil
}

// GetByIDs получает несколько услуг компании по списку ID
func (r *Repository) GetByIDs(ctx context.Context, companyID int64, ids []int64) ([]domain.CatalogService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"company_id": companyID, "id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// GetByCompany получает услуги компании
// При onlyActive отдаются только доступные для записи услуги
func (r *Repository) GetByCompany(ctx context.Context, companyID int64, onlyActive bool) ([]domain.CatalogService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name ASC")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// Update обновляет услугу каталога
func (r *Repository) Update(ctx context.Context, service *domain.CatalogService) (*domain.CatalogService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", service.Name).
		Set("duration_minutes", service.DurationMinutes).
		Set("price", service.Price).
		Set("active", service.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": service.ID, "company_id": service.CompanyID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, service.ID)
		}
		return nil, fmt.Errorf("%w: Update - execute query: %v", ErrExecQuery, err)
	}

	service.UpdatedAt = updatedAt.Time

	return service, nil
}

// Deactivate скрывает услугу из каталога, не трогая историю бронирований
func (r *Repository) Deactivate(ctx context.Context, companyID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute query: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanService(row rowScanner) (*domain.CatalogService, error) {
	var service domain.CatalogService
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&service.ID,
		&service.CompanyID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

func scanServices(rows *sql.Rows) ([]domain.CatalogService, error) {
	services := make([]domain.CatalogService, 0)

	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate services: %v", ErrScanRow, err)
	}

	return services, nil
}
