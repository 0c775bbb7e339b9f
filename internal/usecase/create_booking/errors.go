package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных. Повтор не поможет.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomNotAvailable возвращается, когда номер занят на выбранные даты или выключен владельцем
	ErrRoomNotAvailable = errors.New("create_booking: room not available")

	// ErrStore возвращается при сбое или таймауте хранилища. Запрос можно повторить.
	ErrStore = errors.New("create_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
