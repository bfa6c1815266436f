package dao

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"repolens/internal/data"
	"repolens/internal/model"
	"repolens/internal/model/query"
	"repolens/pkg/config"
	myorm "repolens/pkg/gorm"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBaseData(t *testing.T) *data.BaseData {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := myorm.NewSqliteClient(&config.DBConfig{Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", name)})
	require.NoError(t, err)
	require.NoError(t, data.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return &data.BaseData{BizDB: db, Cache: cache.New(time.Hour, time.Hour)}
}

func TestUserDao(t *testing.T) {
	baseData := newTestBaseData(t)
	userDao := NewUserDao(baseData)
	ctx := context.Background()

	missing, err := userDao.GetById(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	user := &model.User{Username: "octocat", GithubToken: "t1", GithubID: "583231", Email: "octocat@github.com"}
	require.NoError(t, userDao.Insert(ctx, user))
	assert.NotZero(t, user.ID)

	byName, err := userDao.GetByUsername(ctx, "octocat")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	require.NoError(t, userDao.UpdateToken(ctx, user.ID, "t2"))
	byId, err := userDao.GetById(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "t2", byId.GithubToken)

	users, err := userDao.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepoDao_AssociationIsUnique(t *testing.T) {
	baseData := newTestBaseData(t)
	userRepoDao := NewUserRepoDao(baseData)
	ctx := context.Background()

	inserted, err := userRepoDao.EnsureAssociation(ctx, 7, "acme/api")
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = userRepoDao.EnsureAssociation(ctx, 7, "acme/api")
	require.NoError(t, err)
	assert.False(t, inserted)

	// a racing insert that passed the existence check is absorbed by the unique index
	require.NoError(t, userRepoDao.Insert(ctx, 7, "acme/api"))

	_, err = userRepoDao.EnsureAssociation(ctx, 8, "acme/api")
	require.NoError(t, err)

	rows, err := userRepoDao.List(ctx, &query.UserRepoQuery{UserId: 7})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "acme/api", rows[0].Repo)
}

func TestUserRepoDao_ListLimit(t *testing.T) {
	baseData := newTestBaseData(t)
	userRepoDao := NewUserRepoDao(baseData)
	ctx := context.Background()
	for i := 0; i < 35; i++ {
		require.NoError(t, userRepoDao.Insert(ctx, 1, fmt.Sprintf("me/repo-%02d", i)))
	}

	rows, err := userRepoDao.List(ctx, &query.UserRepoQuery{UserId: 1, Limit: 30})
	require.NoError(t, err)
	assert.Len(t, rows, 30)
	assert.Equal(t, "me/repo-00", rows[0].Repo)

	rows, err = userRepoDao.List(ctx, &query.UserRepoQuery{UserId: 1, Repo: "me/repo-34"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func testVector(repo string) *model.Vector {
	owner, name, _ := strings.Cut(repo, "/")
	return &model.Vector{
		ID:     repo,
		Values: []float32{0.1, 0.2, 0.3},
		Metadata: model.VectorMetadata{
			Repo:     repo,
			RepoName: name,
			Owner:    owner,
			Summary:  "• Main programming languages: Go",
		},
	}
}

func TestProcessedRepoDao_PutGet(t *testing.T) {
	baseData := newTestBaseData(t)
	processedDao := NewProcessedRepoDao(baseData, &config.Config{})
	ctx := context.Background()

	_, found, err := processedDao.Get(ctx, "processed_acme/api")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, processedDao.Put(ctx, "processed_acme/api", testVector("acme/api")))

	// read through the database, not the in-memory front
	baseData.Cache.Flush()
	got, found, err := processedDao.Get(ctx, "processed_acme/api")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, testVector("acme/api"), got)

	var row model.ProcessedRepo
	require.NoError(t, baseData.BizDB.Where("cache_key = ?", "processed_acme/api").First(&row).Error)
	assert.Nil(t, row.ExpiresAt)
	assert.Contains(t, row.Metadata, `"owner":"acme"`)

	// overwrite keeps a single row
	updated := testVector("acme/api")
	updated.Metadata.Summary = "• Frameworks and libraries: echo"
	require.NoError(t, processedDao.Put(ctx, "processed_acme/api", updated))
	var count int64
	require.NoError(t, baseData.BizDB.Model(&model.ProcessedRepo{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProcessedRepoDao_ExpiredIsAbsent(t *testing.T) {
	baseData := newTestBaseData(t)
	conf := &config.Config{}
	conf.Cache.ProcessedTTL = 1
	processedDao := NewProcessedRepoDao(baseData, conf)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	processedDao.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, processedDao.Put(ctx, "processed_acme/api", testVector("acme/api")))
	baseData.Cache.Flush()

	now = now.Add(30 * time.Minute)
	_, found, err := processedDao.Get(ctx, "processed_acme/api")
	require.NoError(t, err)
	assert.True(t, found)

	baseData.Cache.Flush()
	now = now.Add(time.Hour)
	_, found, err = processedDao.Get(ctx, "processed_acme/api")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLockDao_SameRepoSameLock(t *testing.T) {
	lockDao := NewLockDao(&data.BaseData{Cache: cache.New(time.Hour, time.Hour)})

	var wg sync.WaitGroup
	locks := make([]*sync.Mutex, 16)
	for i := range locks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			locks[i] = lockDao.GetRepoLock("acme/api")
		}(i)
	}
	wg.Wait()

	for _, l := range locks {
		assert.Same(t, locks[0], l)
	}
	assert.NotSame(t, locks[0], lockDao.GetRepoLock("acme/web"))
}

func TestPointId_StableAndDistinct(t *testing.T) {
	assert.Equal(t, PointId("acme/api"), PointId("acme/api"))
	assert.NotEqual(t, PointId("acme/api"), PointId("acme/web"))
	assert.Len(t, PointId("acme/api"), 36)
}
