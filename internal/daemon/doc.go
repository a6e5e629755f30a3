// Package daemon coordinates the long-running vidbridge process.
//
// It owns the bridge service, the optional HTTP transport for webview shells,
// and a flock-based lock that prevents two bridges from sharing a runtime
// directory. The JSON-RPC socket server lives in package ipc and dispatches
// into the same service.
//
// Keep transport plumbing here: the operations themselves live in package api.
package daemon
