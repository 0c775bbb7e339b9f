package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

// Repository репозиторий номеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория номеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает номер вместе с названием и владельцем отеля.
// Внутри транзакции строка номера блокируется (FOR UPDATE OF r), так что
// конкурентные бронирования одного номера выполняются по очереди.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"r.id",
		"r.hotel_id",
		"r.room_type",
		"r.price_per_night",
		"r.is_available",
		"r.amenities",
		"r.images",
		"h.name",
		"h.owner_id",
		"r.created_at",
		"r.updated_at",
	).
		From("rooms r").
		Join("hotels h ON h.id = r.hotel_id").
		Where(squirrel.Eq{"r.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var room domain.Room
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.HotelID,
		&room.RoomType,
		&room.PricePerNight,
		&room.IsAvailable,
		pq.Array(&room.Amenities),
		pq.Array(&room.Images),
		&room.HotelName,
		&room.HotelOwnerID,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return &room, nil
}

// ToggleAvailability инвертирует флаг доступности одним запросом и возвращает новое значение
func (r *Repository) ToggleAvailability(ctx context.Context, id uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("is_available", squirrel.Expr("NOT is_available")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING is_available").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ToggleAvailability - build update query: %w", ErrBuildQuery, err)
	}

	var isAvailable bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&isAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrRoomNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%w: ToggleAvailability - execute update: %w", ErrExecQuery, err)
	}

	return isAvailable, nil
}
