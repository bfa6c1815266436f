package service

import (
	"context"
	"sort"
	"sync"

	"repolens/internal/model"
	"repolens/internal/model/query"
	"repolens/internal/remote"
)

type fakeFetcher struct {
	mu        sync.Mutex
	readmes   map[string]string
	languages map[string][]string
	err       error
	calls     int
}

func (f *fakeFetcher) GetReadme(ctx context.Context, token, owner, repo string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.readmes[owner+"/"+repo], nil
}

func (f *fakeFetcher) ListLanguages(ctx context.Context, token, owner, repo string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.languages[owner+"/"+repo], nil
}

type fakeSummarizer struct {
	mu          sync.Mutex
	SummarizeFn func(readme string, languages []string) (string, error)
	calls       int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, readme string, languages []string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.SummarizeFn != nil {
		return f.SummarizeFn(readme, languages)
	}
	return "• Main programming languages: Go", nil
}

func (f *fakeSummarizer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeEmbedder struct {
	mu    sync.Mutex
	dim   int
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	values := make([]float32, f.dim)
	for i := range values {
		values[i] = float32(len(text)%7+i) / 10
	}
	return values, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*model.Vector
	gets    int
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*model.Vector)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (*model.Vector, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	v, ok := f.entries[key]
	return v, ok, nil
}

func (f *fakeCache) Put(ctx context.Context, key string, vector *model.Vector) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	f.entries[key] = vector
	return nil
}

type fakeIndex struct {
	mu      sync.Mutex
	dim     int
	upserts []*model.Vector
	queries int
	QueryFn func(vector []float32, opts model.QueryOptions) ([]*model.Match, error)
}

func (f *fakeIndex) Upsert(ctx context.Context, vectors []*model.Vector) (*model.UpsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(vectors))
	for _, v := range vectors {
		ids = append(ids, v.ID)
	}
	f.upserts = append(f.upserts, vectors...)
	return &model.UpsertResult{Count: len(vectors), Ids: ids, Status: "Completed"}, nil
}

func (f *fakeIndex) Query(ctx context.Context, vector []float32, opts model.QueryOptions) ([]*model.Match, error) {
	f.mu.Lock()
	f.queries++
	f.mu.Unlock()
	if f.QueryFn != nil {
		return f.QueryFn(vector, opts)
	}
	return nil, nil
}

func (f *fakeIndex) Describe(ctx context.Context) (*model.IndexStats, error) {
	return &model.IndexStats{Collection: "repositories", Dimensions: uint64(f.dim)}, nil
}

func (f *fakeIndex) Dimension() int {
	return f.dim
}

func (f *fakeIndex) Upserts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.upserts)
}

type fakeUsers struct {
	mu    sync.Mutex
	users []*model.User
}

func (f *fakeUsers) List(ctx context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.User(nil), f.users...), nil
}

func (f *fakeUsers) GetById(ctx context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Insert(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = int64(len(f.users) + 1)
	f.users = append(f.users, user)
	return nil
}

type fakeUserRepos struct {
	mu   sync.Mutex
	rows []*model.UserRepo
}

func (f *fakeUserRepos) EnsureAssociation(ctx context.Context, userId int64, repo string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == userId && r.Repo == repo {
			return false, nil
		}
	}
	f.rows = append(f.rows, &model.UserRepo{ID: int64(len(f.rows) + 1), UserID: userId, Repo: repo})
	return true, nil
}

func (f *fakeUserRepos) List(ctx context.Context, q *query.UserRepoQuery) ([]*model.UserRepo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := make([]*model.UserRepo, 0)
	for _, r := range f.rows {
		if r.UserID != q.UserId {
			continue
		}
		rows = append(rows, r)
		if q.Limit > 0 && len(rows) == q.Limit {
			break
		}
	}
	return rows, nil
}

func (f *fakeUserRepos) Repos(userId int64) []string {
	rows, _ := f.List(context.Background(), &query.UserRepoQuery{UserId: userId})
	repos := make([]string, len(rows))
	for i, r := range rows {
		repos[i] = r.Repo
	}
	sort.Strings(repos)
	return repos
}

type fakeLocker struct {
	locks sync.Map
}

func (f *fakeLocker) GetRepoLock(repo string) *sync.Mutex {
	l, _ := f.locks.LoadOrStore(repo, &sync.Mutex{})
	return l.(*sync.Mutex)
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []*model.ProcessingJob
	err  error
}

func (f *fakeQueue) Send(ctx context.Context, job *model.ProcessingJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeLister struct {
	user  *remote.GithubUser
	repos []string
	err   error
}

func (f *fakeLister) GetAuthenticatedUser(ctx context.Context, token string) (*remote.GithubUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeLister) ListOwnedRepos(ctx context.Context, token string) ([]string, error) {
	return f.repos, nil
}
