package domain

// CycleResult summarizes one collection cycle
type CycleResult struct {
	Total         int  `json:"total"`
	Saved         int  `json:"saved"`
	Duplicates    int  `json:"duplicates"`
	Unclassified  int  `json:"unclassified"`
	Failed        int  `json:"failed"` // articles that could not be saved
	FailedSources int  `json:"failed_sources"`
	Skipped       bool `json:"skipped,omitempty"`
}

// ReclassifyResult summarizes one escalation pass
type ReclassifyResult struct {
	Classified    int  `json:"classified"`
	Skipped       int  `json:"skipped"`
	FailedBatches int  `json:"failed_batches"`
	Busy          bool `json:"busy,omitempty"`
}

// ClusterResult summarizes one clustering run
type ClusterResult struct {
	ClustersFormed  int  `json:"clusters_formed"`
	ArticlesUpdated int  `json:"articles_updated"`
	Busy            bool `json:"busy,omitempty"`
}

// BriefingResult summarizes one briefing pass
type BriefingResult struct {
	Generated int  `json:"generated"`
	Skipped   int  `json:"skipped"`
	Failed    int  `json:"failed"`
	Busy      bool `json:"busy,omitempty"`
}
