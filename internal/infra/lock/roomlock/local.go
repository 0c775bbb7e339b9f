package roomlock

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type localEntry struct {
	sem  chan struct{}
	refs int
}

// Local блокировка номеров внутри процесса.
// Запись в таблице живет, пока на номер есть хотя бы один владелец или ожидающий.
type Local struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*localEntry
}

// NewLocal создает пустую таблицу блокировок
func NewLocal() *Local {
	return &Local{rooms: make(map[uuid.UUID]*localEntry)}
}

// Acquire блокирует номер или ждет его освобождения до отмены ctx
func (l *Local) Acquire(ctx context.Context, roomID uuid.UUID) (func(), error) {
	entry := l.ref(roomID)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.unref(roomID, entry)
		return nil, fmt.Errorf("%w: room %s: %w", ErrLockTimeout, roomID, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.unref(roomID, entry)
		})
	}, nil
}

// size количество номеров в таблице
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rooms)
}

func (l *Local) ref(roomID uuid.UUID) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.rooms[roomID]
	if !ok {
		entry = &localEntry{sem: make(chan struct{}, 1)}
		l.rooms[roomID] = entry
	}
	entry.refs++
	return entry
}

func (l *Local) unref(roomID uuid.UUID, entry *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.rooms, roomID)
	}
}
