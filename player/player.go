// Package player implements the AI chess player and the completion
// clients it talks to.
package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"llmchess/config"
)

// DefaultResponseTime is the simulated delay of the mock client.
const DefaultResponseTime = 50 * time.Millisecond

// mockMove is the constant move returned by the mock client: the
// standard king's pawn opening in UCI notation.
const mockMove = "e2e4"

// CompletionClient is the single-method contract for an AI backend.
// GetCompletion may block until the backend answers; callers that
// need to bail out early cancel the context.
type CompletionClient interface {
	GetCompletion(ctx context.Context, prompt string) (string, error)
}

// MockClient simulates an AI backend by waiting a fixed duration and
// returning a constant move. The prompt content is ignored.
type MockClient struct {
	responseTime time.Duration
}

// NewMockClient creates a mock client with the given simulated
// response time.
func NewMockClient(responseTime time.Duration) *MockClient {
	return &MockClient{responseTime: responseTime}
}

// GetCompletion waits for the configured response time, then returns
// the mock move. Returns early with the context error if ctx is
// cancelled during the wait.
func (c *MockClient) GetCompletion(ctx context.Context, _ string) (string, error) {
	timer := time.NewTimer(c.responseTime)
	defer timer.Stop()

	select {
	case <-timer.C:
		return mockMove, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// NewClient returns the completion client for a resolved
// configuration, failing fast when the required connection settings
// are absent.
//
// TODO: construct a real Azure AI Foundry client here once the
// backend integration lands; the mock is a deliberate placeholder.
func NewClient(cfg config.Config) (CompletionClient, error) {
	if cfg.Endpoint == "" || cfg.Model == "" {
		return nil, errors.New(
			"AI credentials required: set " + config.EnvEndpoint +
				" and " + config.EnvModel,
		)
	}

	return NewMockClient(DefaultResponseTime), nil
}

// Player asks a completion client for chess moves.
type Player struct {
	client CompletionClient
}

// New creates a Player backed by the given completion client.
func New(client CompletionClient) (*Player, error) {
	if client == nil {
		return nil, errors.New("completion client required")
	}

	return &Player{client: client}, nil
}

// GetMove asks the backend for the best move in the given position.
// boardState is the position in FEN notation; the returned move is
// whatever the backend answers (UCI format for the mock).
func (p *Player) GetMove(ctx context.Context, boardState string) (string, error) {
	prompt := fmt.Sprintf(
		"Given this chess board state: %s, what is the best move?",
		boardState,
	)

	return p.client.GetCompletion(ctx, prompt)
}

// GetMoveTimed returns the move together with the wall-clock time
// the request took.
func (p *Player) GetMoveTimed(ctx context.Context, boardState string) (string, time.Duration, error) {
	start := time.Now()
	move, err := p.GetMove(ctx, boardState)

	return move, time.Since(start), err
}
