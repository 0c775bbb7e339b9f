package roomlock

import "errors"

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить до дедлайна контекста
	ErrLockTimeout = errors.New("roomlock: lock wait timeout")

	// ErrLockBackend возвращается при ошибке хранилища блокировок
	ErrLockBackend = errors.New("roomlock: lock backend failure")
)
