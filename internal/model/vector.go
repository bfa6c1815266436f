package model

// VectorMetadata is attached to every vector and mirrored in the processed-set cache.
type VectorMetadata struct {
	Repo     string `json:"repo"`
	RepoName string `json:"repoName"`
	Owner    string `json:"owner"`
	Username string `json:"username,omitempty"`
	Summary  string `json:"summary"`
}

// Vector is keyed by repository full name, one per repository across all users.
type Vector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata VectorMetadata `json:"metadata"`
}

type QueryOptions struct {
	TopK           int
	ReturnValues   bool
	ReturnMetadata bool
}

type Match struct {
	ID       string          `json:"id"`
	Score    float32         `json:"score"`
	Values   []float32       `json:"values,omitempty"`
	Metadata *VectorMetadata `json:"metadata,omitempty"`
}

// CandidateRepo is the repository a match points at; the metadata repo wins over the point id.
func (m *Match) CandidateRepo() string {
	if m.Metadata != nil && m.Metadata.Repo != "" {
		return m.Metadata.Repo
	}
	return m.ID
}

type UpsertResult struct {
	Count       int      `json:"count"`
	Ids         []string `json:"ids"`
	OperationId uint64   `json:"operationId"`
	Status      string   `json:"status"`
}

type IndexStats struct {
	Collection          string `json:"collection"`
	Status              string `json:"status"`
	Dimensions          uint64 `json:"dimensions"`
	VectorCount         uint64 `json:"vectorCount"`
	IndexedVectorsCount uint64 `json:"indexedVectorsCount"`
	SegmentsCount       uint64 `json:"segmentsCount"`
}
