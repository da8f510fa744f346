package approval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/toolgate/internal/clock"
)

// Journal persists an audit trail of approval requests and decisions. Each
// entry is written as an individual JSON object under the base URL so that
// any afs-supported storage (file, s3, gs, mem) can hold the trail.
type Journal struct {
	fs      afs.Service
	baseURL string
}

// Entry is a single journal record.
type Entry struct {
	Topic     string    `json:"topic"`
	Request   *Request  `json:"request,omitempty"`
	Decision  *Decision `json:"decision,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewJournal creates a journal rooted at baseURL.
func NewJournal(baseURL string) *Journal {
	return &Journal{fs: afs.New(), baseURL: baseURL}
}

// RequestCreated records an approval request. A nil journal is a no-op.
func (j *Journal) RequestCreated(ctx context.Context, request *Request) {
	if j == nil || request == nil {
		return
	}
	j.append(ctx, &Entry{Topic: TopicRequestCreated, Request: request, CreatedAt: clock.Now()}, request.ID)
}

// DecisionCreated records a decision together with the originating request.
func (j *Journal) DecisionCreated(ctx context.Context, request *Request, decision *Decision) {
	if j == nil || decision == nil {
		return
	}
	j.append(ctx, &Entry{Topic: TopicDecisionCreated, Request: request, Decision: decision, CreatedAt: clock.Now()}, decision.ID)
}

// List loads all journal entries in storage order.
func (j *Journal) List(ctx context.Context) ([]*Entry, error) {
	if j == nil {
		return nil, nil
	}
	objects, err := j.fs.List(ctx, j.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal %v: %w", j.baseURL, err)
	}
	var entries []*Entry
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		data, err := j.fs.DownloadWithURL(ctx, object.URL())
		if err != nil {
			return nil, err
		}
		entry := &Entry{}
		if err = json.Unmarshal(data, entry); err != nil {
			return nil, fmt.Errorf("corrupted journal entry %v: %w", object.URL(), err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (j *Journal) append(ctx context.Context, entry *Entry, id string) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("failed to marshal journal entry: %v", err)
		return
	}
	name := fmt.Sprintf("%v-%v-%v.json", entry.CreatedAt.UnixNano(), entry.Topic, id)
	URL := url.Join(j.baseURL, name)
	if err = j.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		log.Printf("failed to journal %v: %v", URL, err)
	}
}
