package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/internal/service/entry"
)

var _ entryService = &entryServiceMock{}

type entryServiceMock struct {
	ListEntriesFunc func(ctx context.Context) ([]domain.Entry, error)
	CreateEntryFunc func(ctx context.Context, e domain.Entry) (*domain.Entry, error)
	PatchEntryFunc  func(ctx context.Context, id uuid.UUID, input entry.PatchEntryInput) (*domain.Entry, error)
	HistoryFunc     func(ctx context.Context, id uuid.UUID, limit int) ([]domain.AuditRecord, error)

	calls struct {
		ListEntries []struct {
			Ctx context.Context
		}
		CreateEntry []struct {
			Ctx context.Context
			E   domain.Entry
		}
		PatchEntry []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Input entry.PatchEntryInput
		}
		History []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Limit int
		}
	}
	lockListEntries sync.RWMutex
	lockCreateEntry sync.RWMutex
	lockPatchEntry  sync.RWMutex
	lockHistory     sync.RWMutex
}

func (mock *entryServiceMock) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	if mock.ListEntriesFunc == nil {
		panic("entryServiceMock.ListEntriesFunc: method is nil but entryService.ListEntries was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListEntries.Lock()
	mock.calls.ListEntries = append(mock.calls.ListEntries, callInfo)
	mock.lockListEntries.Unlock()
	return mock.ListEntriesFunc(ctx)
}

func (mock *entryServiceMock) ListEntriesCalls() []struct {
	Ctx context.Context
} {
	mock.lockListEntries.RLock()
	calls := mock.calls.ListEntries
	mock.lockListEntries.RUnlock()
	return calls
}

func (mock *entryServiceMock) CreateEntry(ctx context.Context, e domain.Entry) (*domain.Entry, error) {
	if mock.CreateEntryFunc == nil {
		panic("entryServiceMock.CreateEntryFunc: method is nil but entryService.CreateEntry was just called")
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

func (mock *entryServiceMock) CreateEntryCalls() []struct {
	Ctx context.Context
	E   domain.Entry
} {
	mock.lockCreateEntry.RLock()
	calls := mock.calls.CreateEntry
	mock.lockCreateEntry.RUnlock()
	return calls
}

func (mock *entryServiceMock) PatchEntry(ctx context.Context, id uuid.UUID, input entry.PatchEntryInput) (*domain.Entry, error) {
	if mock.PatchEntryFunc == nil {
		panic("entryServiceMock.PatchEntryFunc: method is nil but entryService.PatchEntry was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Input entry.PatchEntryInput
	}{Ctx: ctx, ID: id, Input: input}
	mock.lockPatchEntry.Lock()
	mock.calls.PatchEntry = append(mock.calls.PatchEntry, callInfo)
	mock.lockPatchEntry.Unlock()
	return mock.PatchEntryFunc(ctx, id, input)
}

func (mock *entryServiceMock) PatchEntryCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Input entry.PatchEntryInput
} {
	mock.lockPatchEntry.RLock()
	calls := mock.calls.PatchEntry
	mock.lockPatchEntry.RUnlock()
	return calls
}

func (mock *entryServiceMock) History(ctx context.Context, id uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	if mock.HistoryFunc == nil {
		panic("entryServiceMock.HistoryFunc: method is nil but entryService.History was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Limit int
	}{Ctx: ctx, ID: id, Limit: limit}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, id, limit)
}

func (mock *entryServiceMock) HistoryCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Limit int
} {
	mock.lockHistory.RLock()
	calls := mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}
