package filestore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveBalanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveBalanceRepository()

	_, err := repo.Get(ctx, "10001")
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
	_, err = repo.Deduct(ctx, "10001", leave.TypeSick, 1)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)

	opening := map[leave.Type]int{leave.TypeSick: 5, leave.TypeVacation: 3, leave.TypeEmergency: 1}
	require.NoError(t, repo.Open(ctx, "10001", opening))
	opening[leave.TypeSick] = 100

	remaining, err := repo.Deduct(ctx, "10001", leave.TypeSick, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	require.NoError(t, repo.Open(ctx, "10001", map[leave.Type]int{leave.TypeSick: 5}))

	remaining, err = repo.Deduct(ctx, "10001", leave.TypeVacation, 4)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Equal(t, 3, remaining)

	b, err := repo.Get(ctx, "10001")
	require.NoError(t, err)
	assert.Equal(t, map[leave.Type]int{leave.TypeSick: 3, leave.TypeVacation: 3, leave.TypeEmergency: 1}, b.Remaining)

	b.Remaining[leave.TypeEmergency] = 50
	b, err = repo.Get(ctx, "10001")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Remaining[leave.TypeEmergency])
}

func TestLeaveBalanceRepository_ConcurrentDeductsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveBalanceRepository()
	require.NoError(t, repo.Open(ctx, "10001", map[leave.Type]int{leave.TypeVacation: 5}))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		approved int
		denied   int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Deduct(ctx, "10001", leave.TypeVacation, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				approved++
			case errors.Is(err, leave.ErrInsufficientBalance):
				denied++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, approved)
	assert.Equal(t, 15, denied)

	b, err := repo.Get(ctx, "10001")
	require.NoError(t, err)
	assert.Zero(t, b.Remaining[leave.TypeVacation])
}
