// Package notify carries transient user-facing messages (toasts) from the
// parts of the client that produce them to whatever front end displays them.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Level is the severity of a toast
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast is a transient message
type Toast struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Handler receives published toasts
type Handler func(Toast)

// Publisher is what producers of toasts depend on
type Publisher interface {
	Publish(level Level, message string) Toast
}

// Bus fans toasts out to subscribers
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	order    []string
	logger   *zap.Logger
}

// NewBus creates an empty bus
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Subscribe registers h and returns a function that removes it
func (b *Bus) Subscribe(h Handler) func() {
	id := uuid.NewString()

	b.mu.Lock()
	b.handlers[id] = h
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, existing := range b.order {
				if existing == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers a toast to every subscriber in subscription order. A
// panicking subscriber is logged and skipped.
func (b *Bus) Publish(level Level, message string) Toast {
	toast := Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	b.logger.Debug("toast published", zap.String("toast_id", toast.ID), zap.String("level", string(level)))
	for _, h := range handlers {
		b.deliver(h, toast)
	}
	return toast
}

func (b *Bus) deliver(h Handler, toast Toast) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("toast subscriber panicked", zap.String("toast_id", toast.ID), zap.Any("panic", r))
		}
	}()
	h(toast)
}

// Subscribers returns the number of active subscribers
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

func (b *Bus) Info(message string) Toast    { return b.Publish(LevelInfo, message) }
func (b *Bus) Success(message string) Toast { return b.Publish(LevelSuccess, message) }
func (b *Bus) Warning(message string) Toast { return b.Publish(LevelWarning, message) }
func (b *Bus) Error(message string) Toast   { return b.Publish(LevelError, message) }

// Recorder is a subscriber that keeps every toast it sees
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// Handle records toast
func (r *Recorder) Handle(toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

// Toasts returns the recorded toasts
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Messages returns the recorded messages
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.toasts))
	for _, t := range r.toasts {
		out = append(out, t.Message)
	}
	return out
}

// Drain returns and forgets the recorded toasts
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	return out
}
