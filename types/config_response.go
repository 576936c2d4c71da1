package types

// ConfigResponse is the JSON shape of GET /api/self/v1/config. API keys are masked.
type ConfigResponse struct {
	CurrentUser   string            `json:"currentUser"`
	ServerURL     string            `json:"serverUrl"`
	Concurrency   int               `json:"concurrency"`
	Language      string            `json:"language"`
	LogLevel      string            `json:"logLevel"`
	SpeedLimit    int64             `json:"speedLimit"`
	SkipTLSVerify bool              `json:"skipTlsVerify"`
	Users         map[string]string `json:"users"`
}

// ConfigPatchRequest is used for PATCH /api/self/v1/config; only provided fields are updated.
type ConfigPatchRequest struct {
	ServerURL     *string `json:"serverUrl,omitempty"`
	Concurrency   *int    `json:"concurrency,omitempty"`
	Language      *string `json:"language,omitempty"`
	LogLevel      *string `json:"logLevel,omitempty"`
	SpeedLimit    *int64  `json:"speedLimit,omitempty"`
	SkipTLSVerify *bool   `json:"skipTlsVerify,omitempty"`
}
