package entry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
)

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	LogFunc         func(ctx context.Context, rec domain.AuditRecord) error
	ListByEntryFunc func(ctx context.Context, entryID uuid.UUID, limit int) ([]domain.AuditRecord, error)

	calls struct {
		Log []struct {
			Ctx context.Context
			Rec domain.AuditRecord
		}
		ListByEntry []struct {
			Ctx     context.Context
			EntryID uuid.UUID
			Limit   int
		}
	}
	lockLog         sync.RWMutex
	lockListByEntry sync.RWMutex
}

func (mock *historyRepoMock) Log(ctx context.Context, rec domain.AuditRecord) error {
	if mock.LogFunc == nil {
		panic("historyRepoMock.LogFunc: method is nil but historyRepo.Log was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.AuditRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, rec)
}

func (mock *historyRepoMock) LogCalls() []struct {
	Ctx context.Context
	Rec domain.AuditRecord
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}

func (mock *historyRepoMock) ListByEntry(ctx context.Context, entryID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	if mock.ListByEntryFunc == nil {
		panic("historyRepoMock.ListByEntryFunc: method is nil but historyRepo.ListByEntry was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
		Limit   int
	}{Ctx: ctx, EntryID: entryID, Limit: limit}
	mock.lockListByEntry.Lock()
	mock.calls.ListByEntry = append(mock.calls.ListByEntry, callInfo)
	mock.lockListByEntry.Unlock()
	return mock.ListByEntryFunc(ctx, entryID, limit)
}

func (mock *historyRepoMock) ListByEntryCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
	Limit   int
} {
	mock.lockListByEntry.RLock()
	calls := mock.calls.ListByEntry
	mock.lockListByEntry.RUnlock()
	return calls
}
