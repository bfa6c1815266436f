package service

import (
	"repolens/internal/dao"
	"repolens/internal/queue"
	"repolens/internal/remote"

	"github.com/google/wire"
)

var ServiceProvider = wire.NewSet(
	NewIngestService,
	NewRecommendService,
	NewEnqueueService,
	NewUserService,
	NewIndexService,
	NewCatalogService,
	wire.Bind(new(UserStore), new(*dao.UserDao)),
	wire.Bind(new(UserRepoStore), new(*dao.UserRepoDao)),
	wire.Bind(new(ProcessedCache), new(*dao.ProcessedRepoDao)),
	wire.Bind(new(VectorIndex), new(*dao.QdrantDao)),
	wire.Bind(new(RepoLocker), new(*dao.LockDao)),
	wire.Bind(new(MetadataFetcher), new(*remote.GithubClient)),
	wire.Bind(new(RepoLister), new(*remote.GithubClient)),
	wire.Bind(new(Summarizer), new(*remote.GenaiClient)),
	wire.Bind(new(Embedder), new(*remote.GenaiClient)),
	wire.Bind(new(JobSender), new(*queue.JobQueue)),
)
