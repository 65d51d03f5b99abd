package stripe

import (
	"sync"

	"github.com/opencamp-hq/backend/internal"
)

// LockManager manages per-user locks so concurrent webhook deliveries for the
// same user are serialized while different users process in parallel.
type LockManager struct {
	locks sync.Map // map[internal.ObjectID]*sync.Mutex
}

// NewLockManager creates a new lock manager.
func NewLockManager() *LockManager {
	return &LockManager{}
}

// LockUser acquires a lock for the given user ID. It returns a function that
// must be called to release the lock.
func (lm *LockManager) LockUser(userID internal.ObjectID) func() {
	lockInterface, _ := lm.locks.LoadOrStore(userID, &sync.Mutex{})
	lock, ok := lockInterface.(*sync.Mutex)
	if !ok {
		// only *sync.Mutex values are ever stored
		panic("unexpected type in lock manager")
	}

	lock.Lock()

	return func() {
		lock.Unlock()
	}
}

// CleanupLocks removes locks that are not currently held. It can be called
// periodically to keep the map from growing with inactive users.
func (lm *LockManager) CleanupLocks() {
	lm.locks.Range(func(key, value any) bool {
		lock, ok := value.(*sync.Mutex)
		if !ok {
			return true
		}
		if lock.TryLock() {
			lock.Unlock()
			lm.locks.Delete(key)
		}
		return true
	})
}
