package ipc

import "vidbridge/internal/api"

// SelectRequest opens a picker. It carries no fields.
type SelectRequest struct{}

// SelectResponse carries the picked path, null on cancel.
type SelectResponse = api.SelectionResponse

// VideoInfoRequest names the video to probe.
type VideoInfoRequest = api.VideoInfoRequest

// VideoInfoResponse mirrors the HTTP API media info DTO.
type VideoInfoResponse = api.VideoInfoResponse

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// DependencyStatus describes availability of an external dependency.
type DependencyStatus = api.DependencyStatus

// StatusResponse represents daemon status information.
type StatusResponse struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	SocketPath   string             `json:"socket_path"`
	LockPath     string             `json:"lock_path"`
	APIAddress   string             `json:"api_address"`
	StartedAt    string             `json:"started_at"`
	Dependencies []DependencyStatus `json:"dependencies"`
}
