package api

// SelectionResponse carries the outcome of a file or folder picker. Path is
// nil when the user cancelled.
type SelectionResponse struct {
	Path *string `json:"path"`
}

// Selected reports whether the user picked something.
func (r SelectionResponse) Selected() bool {
	return r.Path != nil
}

// VideoInfoRequest names the video to probe.
type VideoInfoRequest struct {
	Path string `json:"path"`
}

// VideoInfoResponse describes the primary video stream of a file.
type VideoInfoResponse struct {
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	FPS      float64 `json:"fps"`
	Codec    string  `json:"codec"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	SocketPath   string             `json:"socketPath"`
	LockFilePath string             `json:"lockFilePath"`
	APIBind      string             `json:"apiBind,omitempty"`
	StartedAt    string             `json:"startedAt,omitempty"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
