package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// SelectVideoFile asks the daemon to show the video picker. It blocks until
// the user answers.
func (c *Client) SelectVideoFile() (*SelectResponse, error) {
	var resp SelectResponse
	if err := c.client.Call(ServiceName+".SelectVideoFile", SelectRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SelectOutputDir asks the daemon to show the directory picker.
func (c *Client) SelectOutputDir() (*SelectResponse, error) {
	var resp SelectResponse
	if err := c.client.Call(ServiceName+".SelectOutputDir", SelectRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetVideoInfo probes path on the daemon host.
func (c *Client) GetVideoInfo(path string) (*VideoInfoResponse, error) {
	var resp VideoInfoResponse
	if err := c.client.Call(ServiceName+".GetVideoInfo", VideoInfoRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call(ServiceName+".Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
