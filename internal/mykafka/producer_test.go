package mykafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilProducerDropsEvents(t *testing.T) {
	var p *Producer

	require.NoError(t, p.PublishEvent(context.Background(), "user_events", "1", map[string]any{"type": "user_registered"}))
	require.NoError(t, p.Close())
}

func TestNewProducerNoBrokers(t *testing.T) {
	require.Nil(t, NewProducer(nil))
	require.Nil(t, NewProducer([]string{}))
}
