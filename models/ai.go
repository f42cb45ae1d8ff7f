package models

// RecommendRequest is the payload of /api/ai/recommend.
type RecommendRequest struct {
	Symptoms string `json:"symptoms"`
}

// RecommendResponse carries zero to three catalog ids.
type RecommendResponse struct {
	TestIDs []string  `json:"testIds"`
	Tests   []LabTest `json:"tests"`
}
