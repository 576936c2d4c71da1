package types

// UserStartUploadRequest is the body of POST /api/self/v1/upload
type UserStartUploadRequest struct {
	User        string   `json:"user,omitempty"`        // defaults to the current user
	Files       []string `json:"files"`                 // local file paths
	Concurrency *int     `json:"concurrency,omitempty"` // defaults to the configured concurrency
}

// UserStartUploadResponse is returned once a batch has been scheduled
type UserStartUploadResponse struct {
	BatchId string `json:"batchId"`
	Total   int    `json:"total"`
}

// BatchSnapshot is the JSON view of a batch for GET /api/self/v1/batches/:id
type BatchSnapshot struct {
	BatchId   string         `json:"batchId"`
	User      string         `json:"user"`
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	Status    string         `json:"status"` // last status line
	Done      bool           `json:"done"`
	Cancelled bool           `json:"cancelled"`
	State     *TerminalState `json:"state,omitempty"`
}
