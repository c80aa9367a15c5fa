package entry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	CreateFunc  func(ctx context.Context, e domain.Entry) (domain.Entry, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Entry, error)
	ListAllFunc func(ctx context.Context) ([]domain.Entry, error)
	UpdateFunc  func(ctx context.Context, e domain.Entry) (domain.Entry, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			E   domain.Entry
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListAll []struct {
			Ctx context.Context
		}
		Update []struct {
			Ctx context.Context
			E   domain.Entry
		}
	}
	lockCreate  sync.RWMutex
	lockGetByID sync.RWMutex
	lockListAll sync.RWMutex
	lockUpdate  sync.RWMutex
}

func (mock *entryRepoMock) Create(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	if mock.CreateFunc == nil {
		panic("entryRepoMock.CreateFunc: method is nil but entryRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.Entry
	}{Ctx: ctx, E: e}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *entryRepoMock) CreateCalls() []struct {
	Ctx context.Context
	E   domain.Entry
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *entryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Entry, error) {
	if mock.GetByIDFunc == nil {
		panic("entryRepoMock.GetByIDFunc: method is nil but entryRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *entryRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *entryRepoMock) ListAll(ctx context.Context) ([]domain.Entry, error) {
	if mock.ListAllFunc == nil {
		panic("entryRepoMock.ListAllFunc: method is nil but entryRepo.ListAll was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, callInfo)
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx)
}

func (mock *entryRepoMock) ListAllCalls() []struct {
	Ctx context.Context
} {
	mock.lockListAll.RLock()
	calls := mock.calls.ListAll
	mock.lockListAll.RUnlock()
	return calls
}

func (mock *entryRepoMock) Update(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	if mock.UpdateFunc == nil {
		panic("entryRepoMock.UpdateFunc: method is nil but entryRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.Entry
	}{Ctx: ctx, E: e}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, e)
}

func (mock *entryRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	E   domain.Entry
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
