package models

// TargetRequest is the payload for creating or editing a target.
type TargetRequest struct {
	Name            string `json:"name"`
	Service         string `json:"service"`
	URL             string `json:"url"`
	APIKey          string `json:"api_key"`
	SkipTLSVerify   bool   `json:"skip_tls_verify"`
	Count           string `json:"count"`
	TagName         string `json:"tag_name"`
	IgnoreTag       string `json:"ignore_tag"`
	Monitored       *bool  `json:"monitored"`
	Status          string `json:"status"`
	QualityProfile  string `json:"quality_profile"`
	Enabled         bool   `json:"enabled"`
	Unattended      *bool  `json:"unattended"`
	Schedule        string `json:"schedule"`
	ScheduleEnabled bool   `json:"schedule_enabled"`
}

// RunRequest is the payload for the manual run endpoint. An empty Target
// means a global run over all eligible targets.
type RunRequest struct {
	Target uint `json:"target,omitempty" query:"target"`
}
