package dto

type UserResp struct {
	ID         int64  `json:"id"`
	GithubID   string `json:"githubId"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	CreateTime int64  `json:"createdAt"`
}

type EnqueueResp struct {
	Success        bool     `json:"success"`
	ProcessedRepos []string `json:"processedRepos"`
}

type Recommendation struct {
	Repo  string  `json:"repo"`
	Count int     `json:"count"`
	Score float32 `json:"score"`
}

type RecommendationResp struct {
	Recommendations []Recommendation `json:"recommendations"`
	UserRepos       []string         `json:"userRepos"`
}

type ProbeQueryResp struct {
	Status  string   `json:"status"`
	Matches []string `json:"matches"`
}
