package room

import "errors"

var (
	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("room.repository: room not found")

	ErrBuildQuery = errors.New("room.repository: failed to build query")
	ErrExecQuery  = errors.New("room.repository: failed to execute query")
	ErrScanRow    = errors.New("room.repository: failed to scan row")
)
