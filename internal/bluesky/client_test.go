package bluesky

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/xrpc/com.atproto.server.createSession", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if creds["password"] != "app-pass" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"AuthenticationRequired","message":"Invalid identifier or password"}`)
			return
		}
		io.WriteString(w, `{"did":"did:plc:abc123","handle":"cow.example.com","accessJwt":"jwt-token"}`)
	})
	mux.HandleFunc("/xrpc/com.atproto.repo.uploadBlob", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer jwt-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Content-Type") != "image/png" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		io.WriteString(w, `{"blob":{"$type":"blob","ref":{"$link":"bafyrei"},"mimeType":"image/png","size":42}}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL)
}

func TestCreateSession(t *testing.T) {
	_, client := newTestServer(t)

	sess, err := client.CreateSession(context.Background(), "cow.example.com", "app-pass")
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	if sess.DID != "did:plc:abc123" {
		t.Errorf("DID = %q, expected did:plc:abc123", sess.DID)
	}
	if sess.AccessJWT != "jwt-token" {
		t.Errorf("AccessJWT = %q, expected jwt-token", sess.AccessJWT)
	}
}

func TestCreateSessionBadCredentials(t *testing.T) {
	_, client := newTestServer(t)

	_, err := client.CreateSession(context.Background(), "cow.example.com", "wrong")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "HTTP 401") {
		t.Errorf("error %q does not include the status code", err)
	}
	if !strings.Contains(err.Error(), "AuthenticationRequired") {
		t.Errorf("error %q does not include the body excerpt", err)
	}
}

func TestUploadBlob(t *testing.T) {
	_, client := newTestServer(t)

	sess := &Session{DID: "did:plc:abc123", AccessJWT: "jwt-token"}
	blob, err := client.UploadBlob(context.Background(), sess, []byte("fake-png"), "image/png")
	if err != nil {
		t.Fatalf("UploadBlob() failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(blob, &decoded); err != nil {
		t.Fatalf("blob is not valid JSON: %v", err)
	}
	if decoded["mimeType"] != "image/png" {
		t.Errorf("blob mimeType = %v, expected image/png", decoded["mimeType"])
	}
}

func TestCreatePost(t *testing.T) {
	var captured map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/xrpc/com.atproto.repo.createRecord", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		io.WriteString(w, `{"uri":"at://did:plc:abc123/app.bsky.feed.post/xyz","cid":"bafycid"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL)
	sess := &Session{DID: "did:plc:abc123", AccessJWT: "jwt-token"}
	blob := Blob(`{"$type":"blob"}`)

	longAlt := strings.Repeat("m", 1500)
	result, err := client.CreatePost(context.Background(), sess, "cowsay", blob, longAlt)
	if err != nil {
		t.Fatalf("CreatePost() failed: %v", err)
	}
	if result.URI != "at://did:plc:abc123/app.bsky.feed.post/xyz" {
		t.Errorf("URI = %q", result.URI)
	}

	if captured["repo"] != "did:plc:abc123" {
		t.Errorf("repo = %v", captured["repo"])
	}
	record := captured["record"].(map[string]any)
	if record["text"] != "cowsay" {
		t.Errorf("text = %v", record["text"])
	}
	embed := record["embed"].(map[string]any)
	images := embed["images"].([]any)
	alt := images[0].(map[string]any)["alt"].(string)
	if len(alt) != 1000 {
		t.Errorf("alt text length = %d, expected truncation to 1000", len(alt))
	}
}

func TestNewClientDefaultHost(t *testing.T) {
	client := NewClient("")
	if client.host != DefaultHost {
		t.Errorf("host = %q, expected %q", client.host, DefaultHost)
	}

	client = NewClient("https://pds.example.com/")
	if client.host != "https://pds.example.com" {
		t.Errorf("host = %q, trailing slash should be trimmed", client.host)
	}
}
