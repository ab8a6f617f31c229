package vehicle

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

var vehicleColumns = []string{
	"id",
	"company_id",
	"client_id",
	"plate",
	"brand",
	"model",
	"year",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с автомобилями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый автомобиль клиента
func (r *Repository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("company_id", "client_id", "plate", "brand", "model", "year").
		Values(vehicle.CompanyID, vehicle.ClientID, vehicle.Plate, vehicle.Brand, vehicle.Model, vehicle.Year).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vehicle.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute query: %v", ErrExecQuery, err)
	}

	vehicle.CreatedAt = createdAt.Time
	vehicle.UpdatedAt = updatedAt.Time

	return vehicle, nil
}

// GetByID получает автомобиль по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	vehicle, err := scanVehicle(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%d", ErrVehicleNotFound, id)
		}
		return nil, err
	}

	return vehicle, nil
}

// GetByClient получает все автомобили клиента
func (r *Repository) GetByClient(ctx context.Context, clientID int64) ([]domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("plate ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanVehicles(rows)
}

// SearchForBooking ищет автомобили по госномеру вместе с данными владельца
// Один запрос отдает все, что нужно форме создания бронирования
func (r *Repository) SearchForBooking(ctx context.Context, companyID int64, plateQuery string, limit int) ([]domain.VehicleSearchResult, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"v.id",
		"v.company_id",
		"v.client_id",
		"v.plate",
		"v.brand",
		"v.model",
		"v.year",
		"v.created_at",
		"v.updated_at",
		"c.name",
		"c.phone",
	).
		From("vehicles v").
		Join("clients c ON c.id = v.client_id").
		Where(squirrel.Eq{"v.company_id": companyID}).
		Where(squirrel.ILike{"v.plate": "%" + plateQuery + "%"}).
		OrderBy("v.plate ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SearchForBooking - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SearchForBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	results := make([]domain.VehicleSearchResult, 0)
	for rows.Next() {
		var res domain.VehicleSearchResult
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.Vehicle.ID,
			&res.Vehicle.CompanyID,
			&res.Vehicle.ClientID,
			&res.Vehicle.Plate,
			&res.Vehicle.Brand,
			&res.Vehicle.Model,
			&res.Vehicle.Year,
			&createdAt,
			&updatedAt,
			&res.ClientName,
			&res.ClientPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan search result: %v", ErrScanRow, err)
		}

		res.Vehicle.CreatedAt = createdAt.Time
		res.Vehicle.UpdatedAt = updatedAt.Time
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate search results: %v", ErrScanRow, err)
	}

	return results, nil
}

// Update обновляет данные автомобиля
func (r *Repository) Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vehicles").
		Set("plate", vehicle.Plate).
		Set("brand", vehicle.Brand).
		Set("model", vehicle.Model).
		Set("year", vehicle.Year).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": vehicle.ID, "company_id": vehicle.CompanyID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%d", ErrVehicleNotFound, vehicle.ID)
		}
		return nil, fmt.Errorf("%w: Update - execute query: %v", ErrExecQuery, err)
	}

	vehicle.UpdatedAt = updatedAt.Time

	return vehicle, nil
}

// Delete удаляет автомобиль компании
func (r *Repository) Delete(ctx context.Context, companyID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("vehicles").
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
		return fmt.Errorf("%w: id=%d", ErrVehicleNotFound, id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&vehicle.ID,
		&vehicle.CompanyID,
		&vehicle.ClientID,
		&vehicle.Plate,
		&vehicle.Brand,
		&vehicle.Model,
		&vehicle.Year,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan vehicle: %v", ErrScanRow, err)
	}

	vehicle.CreatedAt = createdAt.Time
	vehicle.UpdatedAt = updatedAt.Time

	return &vehicle, nil
}

func scanVehicles(rows *sql.Rows) ([]domain.Vehicle, error) {
	vehicles := make([]domain.Vehicle, 0)

	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate vehicles: %v", ErrScanRow, err)
	}

	return vehicles, nil
}
