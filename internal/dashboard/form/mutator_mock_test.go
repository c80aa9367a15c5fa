package form

import (
	"context"
	"sync"

	"github.com/heartmarshall/pudiya/internal/domain"
)

var _ Mutator = &MutatorMock{}

type MutatorMock struct {
	CreateEntryFunc func(ctx context.Context, e domain.Entry) (*domain.Entry, error)
	UpdateEntryFunc func(ctx context.Context, e domain.Entry) (*domain.Entry, error)

	calls struct {
		CreateEntry []struct {
			Ctx context.Context
			E   domain.Entry
		}
		UpdateEntry []struct {
			Ctx context.Context
			E   domain.Entry
		}
	}
	lockCreateEntry sync.RWMutex
	lockUpdateEntry sync.RWMutex
}

func (mock *MutatorMock) CreateEntry(ctx context.Context, e domain.Entry) (*domain.Entry, error) {
	if mock.CreateEntryFunc == nil {
		panic("MutatorMock.CreateEntryFunc: method is nil but Mutator.CreateEntry was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.Entry
	}{Ctx: ctx, E: e}
	mock.lockCreateEntry.Lock()
	mock.calls.CreateEntry = append(mock.calls.CreateEntry, callInfo)
	mock.lockCreateEntry.Unlock()
	return mock.CreateEntryFunc(ctx, e)
}

func (mock *MutatorMock) CreateEntryCalls() []struct {
	Ctx context.Context
	E   domain.Entry
} {
	mock.lockCreateEntry.RLock()
	calls := mock.calls.CreateEntry
	mock.lockCreateEntry.RUnlock()
	return calls
}

func (mock *MutatorMock) UpdateEntry(ctx context.Context, e domain.Entry) (*domain.Entry, error) {
	if mock.UpdateEntryFunc == nil {
		panic("MutatorMock.UpdateEntryFunc: method is nil but Mutator.UpdateEntry was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.Entry
	}{Ctx: ctx, E: e}
	mock.lockUpdateEntry.Lock()
	mock.calls.UpdateEntry = append(mock.calls.UpdateEntry, callInfo)
	mock.lockUpdateEntry.Unlock()
	return mock.UpdateEntryFunc(ctx, e)
}

func (mock *MutatorMock) UpdateEntryCalls() []struct {
	Ctx context.Context
	E   domain.Entry
} {
	mock.lockUpdateEntry.RLock()
	calls := mock.calls.UpdateEntry
	mock.lockUpdateEntry.RUnlock()
	return calls
}
