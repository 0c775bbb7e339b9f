package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("rooms: room not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет отелем номера
	ErrAccessDenied = errors.New("rooms: access denied")

	// ErrStore возвращается при сбое или таймауте хранилища
	ErrStore = errors.New("rooms: store unavailable")
)
