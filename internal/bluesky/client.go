// Package bluesky is a minimal AT Protocol client covering what cowpost
// needs: session creation, blob upload, and posting one image with alt text.
package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHost is the public Bluesky PDS.
const DefaultHost = "https://bsky.social"

// maxAltText is the record-level limit on image alt text.
const maxAltText = 1000

// Client talks to one PDS host.
type Client struct {
	host string
	http *http.Client
}

// NewClient creates a client for the given PDS host. An empty host selects
// the public Bluesky PDS.
func NewClient(host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		host: strings.TrimRight(host, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Session holds the credentials returned by createSession.
type Session struct {
	DID       string `json:"did"`
	Handle    string `json:"handle"`
	AccessJWT string `json:"accessJwt"`
}

// Blob is the opaque blob descriptor returned by uploadBlob. It is embedded
// verbatim in the post record.
type Blob = json.RawMessage

// PostResult identifies the created record.
type PostResult struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// CreateSession authenticates with an identifier (handle or email) and an
// app password.
func (c *Client) CreateSession(ctx context.Context, identifier, appPassword string) (*Session, error) {
	var sess Session
	err := c.postJSON(ctx, "/xrpc/com.atproto.server.createSession", map[string]string{
		"identifier": identifier,
		"password":   appPassword,
	}, "", &sess)
	if err != nil {
		return nil, err
	}
	if sess.DID == "" || sess.AccessJWT == "" {
		return nil, fmt.Errorf("bluesky: createSession response missing did or accessJwt")
	}
	return &sess, nil
}

// UploadBlob uploads raw image bytes and returns the blob descriptor.
func (c *Client) UploadBlob(ctx context.Context, sess *Session, data []byte, contentType string) (Blob, error) {
	url := c.host + "/xrpc/com.atproto.repo.uploadBlob"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("bluesky: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+sess.AccessJWT)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Blob json.RawMessage `json:"blob"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("bluesky: cannot decode uploadBlob response: %w", err)
	}
	if len(envelope.Blob) == 0 {
		return nil, fmt.Errorf("bluesky: uploadBlob response missing blob field")
	}
	return Blob(envelope.Blob), nil
}

// CreatePost publishes a post with a single image embed. altText is
// truncated to the record limit.
func (c *Client) CreatePost(ctx context.Context, sess *Session, text string, image Blob, altText string) (*PostResult, error) {
	if alt := []rune(altText); len(alt) > maxAltText {
		altText = string(alt[:maxAltText])
	}

	payload := map[string]any{
		"repo":       sess.DID,
		"collection": "app.bsky.feed.post",
		"record": map[string]any{
			"$type":     "app.bsky.feed.post",
			"text":      text,
			"createdAt": time.Now().UTC().Format(time.RFC3339),
			"embed": map[string]any{
				"$type": "app.bsky.embed.images",
				"images": []map[string]any{
					{"alt": altText, "image": image},
				},
			},
		},
	}

	var result PostResult
	if err := c.postJSON(ctx, "/xrpc/com.atproto.repo.createRecord", payload, sess.AccessJWT, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// postJSON sends a JSON payload and decodes the JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, payload any, jwt string, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bluesky: cannot encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("bluesky: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if jwt != "" {
		req.Header.Set("Authorization", "Bearer "+jwt)
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("bluesky: cannot decode response from %s: %w", path, err)
	}
	return nil
}

// do executes a request and returns the response body. Non-2xx responses
// become errors carrying the status code and a body excerpt.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bluesky: network error calling %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bluesky: cannot read response from %s: %w", req.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("bluesky: HTTP %d from %s: %s", resp.StatusCode, req.URL, excerpt(body))
	}
	return body, nil
}

// excerpt trims a response body down to something printable in one line.
func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}
