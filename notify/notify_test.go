package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBus_PublishInOrder(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got []string
	bus.Subscribe(func(toast Toast) { got = append(got, "first:"+toast.Message) })
	bus.Subscribe(func(toast Toast) { got = append(got, "second:"+toast.Message) })

	toast := bus.Success("Order accepted")

	assert.Equal(t, []string{"first:Order accepted", "second:Order accepted"}, got)
	assert.Equal(t, LevelSuccess, toast.Level)
	assert.NotEmpty(t, toast.ID)
	assert.False(t, toast.CreatedAt.IsZero())
}

func TestBus_Levels(t *testing.T) {
	bus := NewBus(nil)
	rec := &Recorder{}
	bus.Subscribe(rec.Handle)

	bus.Info("a")
	bus.Success("b")
	bus.Warning("c")
	bus.Error("d")

	toasts := rec.Toasts()
	require.Len(t, toasts, 4)
	levels := []Level{toasts[0].Level, toasts[1].Level, toasts[2].Level, toasts[3].Level}
	assert.Equal(t, []Level{LevelInfo, LevelSuccess, LevelWarning, LevelError}, levels)
	assert.NotEqual(t, toasts[0].ID, toasts[1].ID)
	assert.Equal(t, []string{"a", "b", "c", "d"}, rec.Messages())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(zap.NewNop())
	rec := &Recorder{}
	unsubscribe := bus.Subscribe(rec.Handle)
	assert.Equal(t, 1, bus.Subscribers())

	bus.Info("before")
	unsubscribe()
	unsubscribe()
	bus.Info("after")

	assert.Equal(t, []string{"before"}, rec.Messages())
	assert.Zero(t, bus.Subscribers())
}

func TestBus_PanickingSubscriberIsSkipped(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewBus(zap.New(core))
	rec := &Recorder{}

	bus.Subscribe(func(Toast) { panic("render failed") })
	bus.Subscribe(rec.Handle)

	assert.NotPanics(t, func() { bus.Error("Session expired. Please login again.") })
	assert.Equal(t, []string{"Session expired. Please login again."}, rec.Messages())
	assert.Equal(t, 1, logs.FilterMessage("toast subscriber panicked").Len())
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(zap.NewNop())
	rec := &Recorder{}
	bus.Subscribe(rec.Handle)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Info("ping")
		}()
	}
	wg.Wait()

	assert.Len(t, rec.Drain(), 20)
	assert.Empty(t, rec.Toasts())
}
