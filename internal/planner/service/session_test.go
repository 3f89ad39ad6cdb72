package service_test

import (
	"sync"
	"testing"

	"room-planner/internal/planner/editor"
	"room-planner/internal/planner/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	m := service.NewSessionManager(zap.NewNop())

	s := m.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	got, err := m.Resolve(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Close(s.ID))
	_, err = m.Resolve(s.ID)
	require.ErrorIs(t, err, service.ErrSessionNotFound)
	require.ErrorIs(t, m.Close(s.ID), service.ErrSessionNotFound)
}

func TestSessionManager_SessionsAreIsolated(t *testing.T) {
	m := service.NewSessionManager(nil)
	a, b := m.Create(), m.Create()
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.Do(func(e *editor.Editor) error {
		_, err := e.CreateRoom(10, 10, 8)
		return err
	}))

	_ = b.Do(func(e *editor.Editor) error {
		assert.True(t, e.Design().Room.IsZero())
		return nil
	})
}

func TestSession_DoSerializesCommands(t *testing.T) {
	s := service.NewSessionManager(nil).Create()
	require.NoError(t, s.Do(func(e *editor.Editor) error {
		_, err := e.CreateRoom(20, 20, 8)
		return err
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(e *editor.Editor) error {
				_, err := e.DropFurniture("chair", 0, 0)
				return err
			})
		}()
	}
	wg.Wait()

	_ = s.Do(func(e *editor.Editor) error {
		assert.Len(t, e.Design().Furniture, 20)
		assert.Equal(t, 20, e.HistoryLen())
		return nil
	})
}
