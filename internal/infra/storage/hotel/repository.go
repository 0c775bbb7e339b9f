package hotel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

var hotelColumns = []string{"id", "owner_id", "name", "address", "city", "contact", "created_at"}

// Repository репозиторий отелей
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает отель по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Hotel, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByOwnerID получает отель, которым владеет пользователь.
// Владелец регистрирует один отель, как и в клиентском приложении.
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Hotel, error) {
	return r.getOne(ctx, "GetByOwnerID", squirrel.Eq{"owner_id": ownerID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Hotel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hotelColumns...).
		From("hotels").
		Where(where).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var hotel domain.Hotel
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hotel.ID,
		&hotel.OwnerID,
		&hotel.Name,
		&hotel.Address,
		&hotel.City,
		&hotel.Contact,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan hotel: %w", ErrScanRow, op, err)
	}

	hotel.CreatedAt = createdAt.Time
	return &hotel, nil
}
