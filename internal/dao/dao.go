package dao

import "github.com/google/wire"

var DaoProvider = wire.NewSet(
	NewUserDao,
	NewUserRepoDao,
	NewProcessedRepoDao,
	NewLockDao,
	NewQdrantDao,
)
