package approval

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal(t *testing.T) {
	ctx := context.Background()
	journal := NewJournal("mem://localhost/toolgate/journal")

	request := &Request{ID: "c1", CallID: "c1", Tool: "system/exec.execute", Args: json.RawMessage(`{"commands":["ls"]}`), CreatedAt: time.Now()}
	journal.RequestCreated(ctx, request)
	journal.DecisionCreated(ctx, request, &Decision{ID: "c1", Approved: false, Reason: "too risky", DecidedAt: time.Now()})

	entries, err := journal.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byTopic := map[string]*Entry{}
	for _, entry := range entries {
		byTopic[entry.Topic] = entry
	}
	require.Contains(t, byTopic, TopicRequestCreated)
	assert.Equal(t, "system/exec.execute", byTopic[TopicRequestCreated].Request.Tool)
	require.Contains(t, byTopic, TopicDecisionCreated)
	assert.False(t, byTopic[TopicDecisionCreated].Decision.Approved)

	// nil journal is a safe no-op
	var none *Journal
	none.RequestCreated(ctx, request)
	entries, err = none.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
