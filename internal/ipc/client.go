package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/slate/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// send marshals a payload and issues the command, discarding any data.
func (c *Client) send(cmd CommandType, payload interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		req.Payload = data
	}
	_, err := c.sendRequest(req)
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// ListComponents retrieves the current arrangement, ascending by z.
func (c *Client) ListComponents() (*ComponentsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandList})
	if err != nil {
		return nil, err
	}

	var data ComponentsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse components data: %w", err)
	}

	return &data, nil
}

// AddComponent registers a new component with the daemon.
func (c *Client) AddComponent(payload AddPayload) (*ComponentInfo, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal add payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandAdd, Payload: data})
	if err != nil {
		return nil, err
	}

	var info ComponentInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse component data: %w", err)
	}

	return &info, nil
}

// RemoveComponent deletes a component by id.
func (c *Client) RemoveComponent(id string) error {
	return c.send(CommandRemove, IDPayload{ID: id})
}

// MoveComponent relocates a component through the constraint pipeline
// and returns the settled position.
func (c *Client) MoveComponent(id string, x, y float64) (*PlacementData, error) {
	data, err := json.Marshal(MovePayload{ID: id, X: x, Y: y})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal move payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandMove, Payload: data})
	if err != nil {
		return nil, err
	}

	var settled PlacementData
	if err := json.Unmarshal(resp.Data, &settled); err != nil {
		return nil, fmt.Errorf("failed to parse placement data: %w", err)
	}

	return &settled, nil
}

// LockComponent prevents a component from being dragged.
func (c *Client) LockComponent(id string) error {
	return c.send(CommandLock, IDPayload{ID: id})
}

// UnlockComponent re-enables dragging.
func (c *Client) UnlockComponent(id string) error {
	return c.send(CommandUnlock, IDPayload{ID: id})
}

// HideComponent removes a component from hit-testing and collision
// checks without deleting it.
func (c *Client) HideComponent(id string) error {
	return c.send(CommandHide, IDPayload{ID: id})
}

// ShowComponent makes a hidden component visible again.
func (c *Client) ShowComponent(id string) error {
	return c.send(CommandShow, IDPayload{ID: id})
}

// BringToFront raises a component above every other.
func (c *Client) BringToFront(id string) error {
	return c.send(CommandBringToFront, IDPayload{ID: id})
}

// SendToBack lowers a component below every other.
func (c *Client) SendToBack(id string) error {
	return c.send(CommandSendToBack, IDPayload{ID: id})
}

// AlignComponents lines up the named components along an edge.
func (c *Client) AlignComponents(ids []string, edge string) error {
	return c.send(CommandAlign, AlignPayload{IDs: ids, Edge: edge})
}

// DistributeComponents spaces the named components evenly on an axis.
func (c *Client) DistributeComponents(ids []string, axis string) error {
	return c.send(CommandDistribute, DistributePayload{IDs: ids, Axis: axis})
}

// FindPlacement asks the daemon for a free position for a component
// of the given size.
func (c *Client) FindPlacement(width, height float64) (*PlacementData, error) {
	data, err := json.Marshal(PlacePayload{Width: width, Height: height})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal place payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandPlace, Payload: data})
	if err != nil {
		return nil, err
	}

	var pos PlacementData
	if err := json.Unmarshal(resp.Data, &pos); err != nil {
		return nil, fmt.Errorf("failed to parse placement data: %w", err)
	}

	return &pos, nil
}

// SaveSnapshot persists the current arrangement under a name.
func (c *Client) SaveSnapshot(name string) error {
	return c.send(CommandSnapshotSave, SnapshotPayload{Name: name})
}

// LoadSnapshot replaces the current arrangement with a stored one.
func (c *Client) LoadSnapshot(name string) error {
	return c.send(CommandSnapshotLoad, SnapshotPayload{Name: name})
}

// ListSnapshots returns the stored snapshot names.
func (c *Client) ListSnapshots() ([]string, error) {
	resp, err := c.sendRequest(&Request{Command: CommandSnapshotList})
	if err != nil {
		return nil, err
	}

	var data SnapshotsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse snapshots data: %w", err)
	}

	return data.Names, nil
}

// DeleteSnapshot removes a stored snapshot.
func (c *Client) DeleteSnapshot(name string) error {
	return c.send(CommandSnapshotDelete, SnapshotPayload{Name: name})
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.send(CommandReload, nil)
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
