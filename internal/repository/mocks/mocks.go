package mocks

import (
	"context"

	"github.com/mhrabal/tally/internal/domain/checkin"
	"github.com/stretchr/testify/mock"
)

// LedgerStore is a mock for repository.LedgerStore.
type LedgerStore struct {
	mock.Mock
}

func (m *LedgerStore) Load(ctx context.Context) (checkin.Ledger, error) {
	args := m.Called(ctx)
	if ledger, ok := args.Get(0).(checkin.Ledger); ok {
		return ledger, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LedgerStore) Save(ctx context.Context, ledger checkin.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}
