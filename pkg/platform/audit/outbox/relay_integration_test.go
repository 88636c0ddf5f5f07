//go:build integration

package outbox_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "roster/pkg/platform/audit"
	"roster/pkg/platform/audit/outbox"
	"roster/pkg/platform/audit/store/memory"
	"roster/pkg/testutil/containers"
)

func TestRelayPublishesToBroker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rp := containers.GetManager().GetRedpanda(t)
	topic := "roster.audit.relay-test"

	client, err := outbox.NewClient(rp.Brokers, topic)
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, outbox.EnsureTopic(ctx, client, topic, 1))
	// A second call finds the topic and is a no-op.
	require.NoError(t, outbox.EnsureTopic(ctx, client, topic, 1))

	store := memory.NewInMemoryStore()
	for _, training := range []string{"training-a", "training-b"} {
		require.NoError(t, store.Append(ctx, audit.Event{
			Action:     string(audit.EventParticipantTransferred),
			Subject:    "participant-1",
			TrainingID: training,
		}))
	}

	n, err := outbox.New(store, client, topic).RelayOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	keys := map[string]string{}
	for len(keys) < 2 {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, ctx.Err(), "timed out waiting for relayed records")
		fetches.EachRecord(func(r *kgo.Record) {
			for _, h := range r.Headers {
				if h.Key == "event_type" {
					keys[string(r.Key)] = string(h.Value)
				}
			}
		})
	}
	assert.Equal(t, string(audit.EventParticipantTransferred), keys["training-a"])
	assert.Equal(t, string(audit.EventParticipantTransferred), keys["training-b"])

	pending, err := store.Pending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
