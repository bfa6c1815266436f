package dao

import (
	"sync"
	"time"

	"repolens/internal/data"
	"repolens/pkg/util"
)

// LockDao hands out one mutex per repository so probe-then-compute runs once per process.
type LockDao struct {
	baseData    *data.BaseData
	repoLockMu  sync.Mutex
	lockTimeout time.Duration
}

func NewLockDao(baseData *data.BaseData) *LockDao {
	return &LockDao{baseData: baseData, lockTimeout: 10 * time.Minute}
}

func (f *LockDao) GetRepoLock(repo string) *sync.Mutex {
	key := util.GetRepoLockKey(repo)
	if val, ok := f.baseData.Cache.Get(key); ok {
		f.baseData.Cache.Set(key, val, f.lockTimeout)
		return val.(*sync.Mutex)
	}
	f.repoLockMu.Lock()
	defer f.repoLockMu.Unlock()
	if val, ok := f.baseData.Cache.Get(key); ok {
		f.baseData.Cache.Set(key, val, f.lockTimeout)
		return val.(*sync.Mutex)
	}
	newLock := &sync.Mutex{}
	f.baseData.Cache.Set(key, newLock, f.lockTimeout)
	return newLock
}
