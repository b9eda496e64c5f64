package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llmchess/config"
)

// captureClient records the prompt it was asked to complete.
type captureClient struct {
	prompt string
	move   string
}

func (c *captureClient) GetCompletion(_ context.Context, prompt string) (string, error) {
	c.prompt = prompt

	return c.move, nil
}

func TestMockClientReturnsMove(t *testing.T) {
	client := NewMockClient(0)

	move, err := client.GetCompletion(context.Background(), "test prompt")
	require.NoError(t, err)
	assert.Equal(t, "e2e4", move)
}

func TestMockClientRespectsResponseTime(t *testing.T) {
	const responseTime = 50 * time.Millisecond

	client := NewMockClient(responseTime)

	start := time.Now()
	_, err := client.GetCompletion(context.Background(), "test prompt")
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, responseTime*9/10)
}

func TestMockClientHonorsCancellation(t *testing.T) {
	client := NewMockClient(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := client.GetCompletion(ctx, "test prompt")

	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewClientMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"both missing", config.Config{}},
		{"model missing", config.Config{Endpoint: "https://test.azure.com"}},
		{"endpoint missing", config.Config{Model: "gpt-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "AI credentials required")
		})
	}
}

func TestNewClientReturnsMockPlaceholder(t *testing.T) {
	client, err := NewClient(config.Config{
		Endpoint: "https://test.azure.com",
		Model:    "gpt-4",
	})

	require.NoError(t, err)
	assert.IsType(t, &MockClient{}, client)
}

func TestNewRequiresClient(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestGetMovePromptContainsBoardState(t *testing.T) {
	const fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	client := &captureClient{move: "e7e5"}

	p, err := New(client)
	require.NoError(t, err)

	move, err := p.GetMove(context.Background(), fen)
	require.NoError(t, err)

	assert.Equal(t, "e7e5", move)
	assert.Contains(t, client.prompt, fen)
	assert.Contains(t, client.prompt, "best move")
}

func TestGetMoveTimedMeasuresLatency(t *testing.T) {
	const responseTime = 20 * time.Millisecond

	p, err := New(NewMockClient(responseTime))
	require.NoError(t, err)

	move, latency, err := p.GetMoveTimed(context.Background(), "8/8/8/8/8/8/8/8 w - - 0 1")
	require.NoError(t, err)

	assert.Equal(t, "e2e4", move)
	assert.GreaterOrEqual(t, latency, responseTime*9/10)
}
