package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"repolens/internal/model"
	"repolens/internal/model/query"
	"repolens/internal/remote"
	"repolens/internal/service"
	"repolens/pkg/config"
	"repolens/pkg/util"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQueue struct {
	mu   sync.Mutex
	jobs []*model.ProcessingJob
}

func (s *stubQueue) Send(ctx context.Context, job *model.ProcessingJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
	return nil
}

type stubLister struct{}

func (stubLister) GetAuthenticatedUser(ctx context.Context, token string) (*remote.GithubUser, error) {
	return &remote.GithubUser{Login: "octocat", ID: 1}, nil
}

func (stubLister) ListOwnedRepos(ctx context.Context, token string) ([]string, error) {
	return []string{"octocat/hello", "octocat/world"}, nil
}

type stubUsers struct {
	users []*model.User
}

func (s *stubUsers) List(ctx context.Context) ([]*model.User, error) { return s.users, nil }

func (s *stubUsers) GetById(ctx context.Context, id int64) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) Insert(ctx context.Context, user *model.User) error {
	user.ID = int64(len(s.users) + 1)
	s.users = append(s.users, user)
	return nil
}

type stubUserRepos struct{}

func (stubUserRepos) EnsureAssociation(ctx context.Context, userId int64, repo string) (bool, error) {
	return true, nil
}

func (stubUserRepos) List(ctx context.Context, q *query.UserRepoQuery) ([]*model.UserRepo, error) {
	return nil, nil
}

type testEnv struct {
	echo  *echo.Echo
	queue *stubQueue
}

func newTestEnv() *testEnv {
	q := &stubQueue{}
	conf := &config.Config{}
	conf.Github.Token = "service-token"

	e := echo.New()
	e.Validator = util.NewRequestValidator()
	e.JSONSerializer = util.SonicSerializer{}

	enqueueService := service.NewEnqueueService(conf, q, stubLister{})
	repoHandler := NewRepoHandler(enqueueService, nil)
	userHandler := NewUserHandler(service.NewUserService(&stubUsers{}, stubUserRepos{}))
	recommendHandler := NewRecommendHandler(service.NewRecommendService(stubUserRepos{}, nil, nil))

	e.POST("/repos/batch", repoHandler.EnqueueBatchHandler)
	e.POST("/repos/process-user", repoHandler.ProcessUserHandler)
	e.POST("/repos/parse", repoHandler.ParseHandler)
	e.POST("/users", userHandler.CreateUserHandler)
	e.GET("/users/:userId/recommendations", recommendHandler.RecommendHandler)
	return &testEnv{echo: e, queue: q}
}

func (env *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func TestEnqueueBatchHandler(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed json", body: `{"repos":`, want: http.StatusBadRequest},
		{name: "missing repos", body: `{}`, want: http.StatusBadRequest},
		{name: "repos not array", body: `{"repos":"golang/go"}`, want: http.StatusBadRequest},
		{name: "empty array", body: `{"repos":[]}`, want: http.StatusBadRequest},
		{name: "bad name", body: `{"repos":["golang"]}`, want: http.StatusBadRequest},
		{name: "ok", body: `{"repos":["golang/go","acme/api"]}`, want: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			rec := env.do(http.MethodPost, "/repos/batch", tc.body)

			assert.Equal(t, tc.want, rec.Code)
			if tc.want != http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"error"`)
				assert.Empty(t, env.queue.jobs)
				return
			}
			assert.JSONEq(t, `{"success":true,"processedRepos":["golang/go","acme/api"]}`, rec.Body.String())
			assert.Len(t, env.queue.jobs, 2)
		})
	}
}

func TestProcessUserHandler(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/repos/process-user", `{"userId":7}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"GitHub token is required"}`, rec.Body.String())

	rec = env.do(http.MethodPost, "/repos/process-user", `{"githubToken":"gho_x","userId":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/repos/process-user", `{"githubToken":"gho_x","userId":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"processedRepos":["octocat/hello","octocat/world"]}`, rec.Body.String())
	require.Len(t, env.queue.jobs, 2)
	assert.Equal(t, "octocat", env.queue.jobs[0].Username)
}

func TestParseHandler_Validation(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/repos/parse", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/repos/parse", `{"repo":"a/b/c"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserHandler(t *testing.T) {
	env := newTestEnv()
	body := `{"username":"octocat","githubToken":"t","githubId":"583231","email":"octocat@github.com"}`

	rec := env.do(http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"octocat"`)
	assert.NotContains(t, rec.Body.String(), `githubToken`)

	rec = env.do(http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/users", `{"email":"x@y.z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendHandler_Errors(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/users/abc/recommendations", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"userId must be a positive integer"}`, rec.Body.String())

	rec = env.do(http.MethodGet, "/users/7/recommendations", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
