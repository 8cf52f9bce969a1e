package lock

import (
	"context"
	"sync"
)

// LocalLocker сериализует принятие бронирований по корту внутри одного процесса
type LocalLocker struct {
	mu     sync.Mutex
	courts map[int64]*courtLock
}

type courtLock struct {
	ch   chan struct{}
	refs int
}

// NewLocalLocker создаёт локальный locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		courts: make(map[int64]*courtLock),
	}
}

// Lock захватывает блокировку корта и возвращает функцию освобождения
func (l *LocalLocker) Lock(ctx context.Context, courtID int64) (func(), error) {
	l.mu.Lock()
	cl, exists := l.courts[courtID]
	if !exists {
		cl = &courtLock{ch: make(chan struct{}, 1)}
		l.courts[courtID] = cl
	}
	cl.refs++
	l.mu.Unlock()

	select {
	case cl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(courtID, cl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-cl.ch
			l.release(courtID, cl)
		})
	}, nil
}

func (l *LocalLocker) release(courtID int64, cl *courtLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl.refs--
	if cl.refs == 0 {
		delete(l.courts, courtID)
	}
}
