package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/golang/glog"
)

// Performer sends encoded action sequences to a W3C remote end.
type Performer interface {
	// PerformActions sends the {"actions": [...]} payload.
	PerformActions(ctx context.Context, payload map[string]interface{}) error
	// ReleaseActions releases every key and button held by previous actions.
	ReleaseActions(ctx context.Context) error
}

const jsonType = "application/json"

// RemotePerformer performs actions through the session's HTTP endpoint. The
// selenium client does not expose the actions command, so it is issued
// directly.
type RemotePerformer struct {
	endpoint  string
	sessionID string
	client    *http.Client
}

// NewRemotePerformer returns a Performer for the session sessionID served at
// endpoint, e.g. "http://127.0.0.1:4444/wd/hub". A nil client means
// http.DefaultClient.
func NewRemotePerformer(endpoint, sessionID string, client *http.Client) *RemotePerformer {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemotePerformer{
		endpoint:  strings.TrimSuffix(endpoint, "/"),
		sessionID: sessionID,
		client:    client,
	}
}

func (p *RemotePerformer) url() string {
	return fmt.Sprintf("%s/session/%s/actions", p.endpoint, p.sessionID)
}

// PerformActions implements Performer.
func (p *RemotePerformer) PerformActions(ctx context.Context, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.execute(ctx, http.MethodPost, data)
}

// ReleaseActions implements Performer.
func (p *RemotePerformer) ReleaseActions(ctx context.Context) error {
	return p.execute(ctx, http.MethodDelete, nil)
}

// remoteError is the W3C error body.
type remoteError struct {
	Value struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	} `json:"value"`
}

func (p *RemotePerformer) execute(ctx context.Context, method string, data []byte) error {
	url := p.url()
	glog.V(2).Infof("-> %s %s\n%s", method, url, data)

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	request.Header.Add("Accept", jsonType)
	if data != nil {
		request.Header.Add("Content-Type", jsonType+"; charset=utf-8")
	}

	response, err := p.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	buf, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s response: %w", method, url, err)
	}
	glog.V(2).Infof("<- %s\n%s", response.Status, buf)

	if response.StatusCode < 400 {
		return nil
	}
	reply := new(remoteError)
	if err := json.Unmarshal(buf, reply); err != nil || reply.Value.Error == "" {
		return fmt.Errorf("bad server reply status: %s", response.Status)
	}
	if reply.Value.Message == "" {
		return fmt.Errorf("%s", reply.Value.Error)
	}
	return fmt.Errorf("%s: %s", reply.Value.Error, reply.Value.Message)
}
