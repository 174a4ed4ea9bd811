package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// RESTClient implements the chat ports against the platform's REST
// API, authenticating with a bot token and user id header pair.
type RESTClient struct {
	baseURL string
	token   string
	userID  string
	client  *http.Client
}

// NewRESTClient creates a chat REST adapter
func NewRESTClient(baseURL, token, userID string) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		token:   token,
		userID:  userID,
		client:  &http.Client{},
	}
}

type postMessageRequest struct {
	RoomID string         `json:"roomId"`
	Text   string         `json:"text"`
	Blocks []ActionsBlock `json:"blocks,omitempty"`
}

// PostMessage posts a message into a room
func (c *RESTClient) PostMessage(ctx context.Context, roomID, text string) error {
	return c.post(ctx, postMessageRequest{RoomID: roomID, Text: text})
}

// NotifyUser delivers a message to a user in a room. The platform
// renders it as an ephemeral notification addressed to the user.
func (c *RESTClient) NotifyUser(ctx context.Context, userID, roomID, text string, blocks ...ActionsBlock) error {
	return c.post(ctx, postMessageRequest{
		RoomID: roomID,
		Text:   fmt.Sprintf("@%s %s", userID, text),
		Blocks: blocks,
	})
}

// RoomByName resolves a room name to its identifier
func (c *RESTClient) RoomByName(ctx context.Context, name string) (string, error) {
	u := fmt.Sprintf("%s/api/v1/channels.info?roomName=%s", c.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.auth(req)

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var resp struct {
		Channel struct {
			ID string `json:"_id"`
		} `json:"channel"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.Channel.ID == "" {
		return "", fmt.Errorf("room not found: %s", name)
	}
	return resp.Channel.ID, nil
}

func (c *RESTClient) post(ctx context.Context, msg postMessageRequest) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.auth(req)

	_, err = c.do(req)
	return err
}

func (c *RESTClient) auth(req *http.Request) {
	req.Header.Set("X-Auth-Token", c.token)
	req.Header.Set("X-User-Id", c.userID)
}

func (c *RESTClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat API error (%d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}
