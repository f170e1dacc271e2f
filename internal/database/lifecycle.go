package database

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
)

type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
	StateFailed        State = "failed"
)

// Lifecycle owns the database connection state. Handlers never inspect a
// global "is db ready" flag; they ask the lifecycle, and startup blocks on
// WaitReady before the router accepts traffic.
type Lifecycle struct {
	mu    sync.RWMutex
	state State
	db    *gorm.DB
	err   error
	done  chan struct{}
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		state: StateUninitialized,
		done:  make(chan struct{}),
	}
}

// Init connects once and settles the lifecycle into ready or failed.
func (l *Lifecycle) Init(dsn string) {
	db, err := Connect(dsn)

	l.mu.Lock()
	if err != nil {
		l.state = StateFailed
		l.err = err
	} else {
		l.state = StateReady
		l.db = db
	}
	l.mu.Unlock()

	close(l.done)
}

func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// WaitReady blocks until Init settled, then returns the connection or the
// initialization error.
func (l *Lifecycle) WaitReady(ctx context.Context) (*gorm.DB, error) {
	select {
	case <-l.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state != StateReady {
		if l.err != nil {
			return nil, l.err
		}
		return nil, errors.New("database not ready")
	}
	return l.db, nil
}

// DB returns the connection if ready, nil otherwise.
func (l *Lifecycle) DB() *gorm.DB {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state != StateReady {
		return nil
	}
	return l.db
}
