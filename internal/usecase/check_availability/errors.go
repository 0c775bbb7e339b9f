package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("check_availability: room not found")

	// ErrStore возвращается при сбое или таймауте хранилища
	ErrStore = errors.New("check_availability: store unavailable")

	// ErrInternal возвращается при некорректных данных номера в хранилище
	ErrInternal = errors.New("check_availability: internal error")
)
