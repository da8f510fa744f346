package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/toolgate/internal/clock"
	approval "github.com/viant/toolgate/service/approval"
)

func TestService_RequestAndDecide(t *testing.T) {
	ctx := context.Background()
	svc := New()

	req := &approval.Request{CallID: "call-1", Tool: "system/exec.execute"}
	require.NoError(t, svc.RequestApproval(ctx, req))
	assert.Equal(t, "call-1", req.ID, "request id falls back to the call id")
	assert.False(t, req.CreatedAt.IsZero())

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	decision, err := svc.Decide(ctx, req.ID, true, "looks safe")
	require.NoError(t, err)
	assert.True(t, decision.Approved)
	assert.Equal(t, "looks safe", decision.Reason)

	// decided requests disappear from the pending list
	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// double decide is rejected
	_, err = svc.Decide(ctx, req.ID, false, "")
	assert.Error(t, err)

	// unknown request
	_, err = svc.Decide(ctx, "no-such", true, "")
	assert.Error(t, err)

	// empty id
	_, err = svc.Decide(ctx, "", true, "")
	assert.Error(t, err)
}

func TestService_Expiry(t *testing.T) {
	ctx := context.Background()
	svc := New()

	now := time.Now()
	clock.NowFunc = func() time.Time { return now }
	defer func() { clock.NowFunc = time.Now }()

	deadline := now.Add(time.Minute)
	require.NoError(t, svc.RequestApproval(ctx, &approval.Request{CallID: "c1", Tool: "lint.format", ExpiresAt: &deadline}))

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	// past the deadline the request expires instead of being decidable
	now = now.Add(2 * time.Minute)
	_, err = svc.Decide(ctx, "c1", true, "")
	assert.Error(t, err)

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
