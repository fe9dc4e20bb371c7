package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUnitOfWorkConcurrentRepoAccess(t *testing.T) {
	uow := NewPostgresUnitOfWork(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotNil(t, uow.Users())
			assert.NotNil(t, uow.Tasks())
			assert.NotNil(t, uow.DailyGoals())
			assert.NotNil(t, uow.FocusSessions())
		}()
	}
	wg.Wait()
}

func TestPostgresUnitOfWorkInstancesAreIndependent(t *testing.T) {
	a := NewPostgresUnitOfWork(nil)
	b := NewPostgresUnitOfWork(nil)

	require.NotSame(t, a, b)
	assert.NotSame(t, a.Users(), b.Users())
	assert.NotSame(t, a.Tasks(), b.Tasks())

	// repositories stay bound to their own unit of work
	assert.Same(t, a, a.users.uow)
	assert.Same(t, b, b.tasks.uow)
}
