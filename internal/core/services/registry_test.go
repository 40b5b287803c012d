package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/collection"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/core/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock Store ---
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) LoadCollection(ctx context.Context, collectionID string) ([]domain.Task, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskStore) PersistOrder(ctx context.Context, collectionID string, entries []domain.OrderEntry) error {
	args := m.Called(ctx, collectionID, entries)
	return args.Error(0)
}

func boardTasks(projectID string, n int) []domain.Task {
	tasks := make([]domain.Task, n)
	for i := range tasks {
		tasks[i] = domain.Task{TaskID: fmt.Sprintf("t%d", i), ProjectID: projectID, Label: fmt.Sprintf("Task %d", i), Order: i}
	}
	return tasks
}

func TestCollectionRegistry_CapacityIsBounded(t *testing.T) {
	store := new(MockTaskStore)
	store.On("LoadCollection", mock.Anything, mock.Anything).Return([]domain.Task{}, nil)
	reg := services.NewCollectionRegistry[domain.Task](telemetry.KindTasks, store, nil, 8)

	for i := 0; i < 100; i++ {
		_, err := reg.Get(context.Background(), fmt.Sprintf("unknown-%d", i))
		require.NoError(t, err)
	}

	assert.Equal(t, 8, reg.Len())

	// An evicted id is loaded again on its next use.
	_, err := reg.Get(context.Background(), "unknown-0")
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "LoadCollection", 101)
}

func TestCollectionRegistry_ConcurrentFirstUseLoadsOnce(t *testing.T) {
	store := new(MockTaskStore)
	release := make(chan struct{})
	store.On("LoadCollection", mock.Anything, "p1").
		Run(func(mock.Arguments) { <-release }).
		Return(boardTasks("p1", 2), nil).Once()
	reg := services.NewCollectionRegistry[domain.Task](telemetry.KindTasks, store, nil, 0)

	const callers = 10
	got := make([]*collection.OrderedCollection[domain.Task], callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := reg.Get(context.Background(), "p1")
			assert.NoError(t, err)
			got[i] = c
		}(i)
	}
	close(release)
	wg.Wait()

	for _, c := range got {
		assert.Same(t, got[0], c)
	}
	store.AssertNumberOfCalls(t, "LoadCollection", 1)
}

func TestCollectionRegistry_SlowLoadDoesNotBlockOtherCollections(t *testing.T) {
	store := new(MockTaskStore)
	started := make(chan struct{})
	release := make(chan struct{})
	store.On("LoadCollection", mock.Anything, "slow").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(boardTasks("slow", 1), nil).Once()
	store.On("LoadCollection", mock.Anything, "fast").Return(boardTasks("fast", 1), nil).Once()
	reg := services.NewCollectionRegistry[domain.Task](telemetry.KindTasks, store, nil, 0)

	slowDone := make(chan error, 1)
	go func() {
		_, err := reg.Get(context.Background(), "slow")
		slowDone <- err
	}()
	<-started

	fastDone := make(chan error, 1)
	go func() {
		_, err := reg.Get(context.Background(), "fast")
		fastDone <- err
	}()
	select {
	case err := <-fastDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loading one collection waited for another")
	}

	close(release)
	require.NoError(t, <-slowDone)
	assert.Equal(t, 2, reg.Len())
}

func TestCollectionRegistry_ResyncFailureEvicts(t *testing.T) {
	ctx := context.Background()
	store := new(MockTaskStore)
	store.On("LoadCollection", mock.Anything, "p1").Return(boardTasks("p1", 3), nil).Once()
	reg := services.NewCollectionRegistry[domain.Task](telemetry.KindTasks, store, nil, 0)

	c, err := reg.Get(ctx, "p1")
	require.NoError(t, err)

	store.On("PersistOrder", mock.Anything, "p1", mock.Anything).Return(errors.New("boom")).Once()
	store.On("LoadCollection", mock.Anything, "p1").Return(nil, errors.New("still down")).Once()

	err = reg.Move(ctx, c, dto.MoveItemRequest{FromIndex: intPtr(0), ToIndex: intPtr(2)})

	assert.ErrorIs(t, err, apperrors.ErrReorderFailed)
	assert.ErrorIs(t, err, collection.ErrResyncFailed)
	assert.Equal(t, 0, reg.Len())

	store.On("LoadCollection", mock.Anything, "p1").Return(boardTasks("p1", 3), nil).Once()
	fresh, err := reg.Get(ctx, "p1")
	require.NoError(t, err)
	assert.NotSame(t, c, fresh)
	store.AssertExpectations(t)
}

func TestCollectionRegistry_PlainReorderFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	store := new(MockTaskStore)
	store.On("LoadCollection", mock.Anything, "p1").Return(boardTasks("p1", 3), nil).Twice()
	store.On("PersistOrder", mock.Anything, "p1", mock.Anything).Return(errors.New("boom")).Once()
	reg := services.NewCollectionRegistry[domain.Task](telemetry.KindTasks, store, nil, 0)

	c, err := reg.Get(ctx, "p1")
	require.NoError(t, err)

	err = reg.Move(ctx, c, dto.MoveItemRequest{FromIndex: intPtr(0), ToIndex: intPtr(2)})

	assert.ErrorIs(t, err, apperrors.ErrReorderFailed)
	assert.NotErrorIs(t, err, collection.ErrResyncFailed)
	again, err := reg.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Same(t, c, again)
	store.AssertExpectations(t)
}
