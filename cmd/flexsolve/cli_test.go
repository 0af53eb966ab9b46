package main

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doitintl/flexsolve/types"
)

func newPipedCLI() (*cli, *io.PipeWriter) {
	pr, pw := io.Pipe()
	c := &cli{
		logger: zap.NewNop(),
		in:     bufio.NewReader(pr),
		out:    io.Discard,
	}
	c.startInput()
	return c, pw
}

func TestExpiredReviewLeavesNextLineForUserPrompt(t *testing.T) {
	c, pw := newPipedCLI()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Review(ctx, types.AggregatedResult{})
	require.Error(t, err)

	// A line typed after the review expired must reach the next prompt
	// instead of being consumed by a leftover review reader.
	go pw.Write([]byte("any update on my request?\n"))
	line, ok := c.readLine("you> ")
	require.True(t, ok)
	assert.Equal(t, "any update on my request?", line)
}

func TestReviewReadsVerdictFromInput(t *testing.T) {
	c, pw := newPipedCLI()
	defer pw.Close()

	go pw.Write([]byte("APPROVE\n"))
	verdict, err := c.Review(context.Background(), types.AggregatedResult{})
	require.NoError(t, err)
	assert.Equal(t, "APPROVE", verdict)
}

func TestReadLineReportsClosedInput(t *testing.T) {
	c, pw := newPipedCLI()
	pw.Close()

	_, ok := c.readLine("you> ")
	assert.False(t, ok)
}
