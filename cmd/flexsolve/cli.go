package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/doitintl/flexsolve"
	"github.com/doitintl/flexsolve/config"
	"github.com/doitintl/flexsolve/route"
	"github.com/doitintl/flexsolve/session"
	"github.com/doitintl/flexsolve/types"
)

// cli runs the interactive terminal session. The operator plays two parts:
// the end user asking questions, and the human expert reviewing proposals.
//
// Input is owned by a single pump goroutine feeding the lines channel, so a
// review that times out never leaves a competing reader parked on stdin; the
// line typed during a stalled review is handed to the next prompt instead.
type cli struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics prometheus.Registerer
	in      *bufio.Reader
	out     io.Writer
	lines   chan string
}

func newCLI(cfg config.Config, logger *zap.Logger, reg prometheus.Registerer) *cli {
	return &cli{
		cfg:     cfg,
		logger:  logger,
		metrics: reg,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// startInput launches the single reader goroutine. The channel is
// unbuffered: a line stays with the pump until some prompt consumes it.
func (c *cli) startInput() {
	c.lines = make(chan string)
	go func() {
		defer close(c.lines)
		for {
			line, err := c.in.ReadString('\n')
			if err != nil {
				return
			}
			c.lines <- strings.TrimRight(line, "\r\n")
		}
	}()
}

func (c *cli) Run() error {
	c.startInput()

	ctrl, err := flexsolve.New(
		flexsolve.WithConfig(c.cfg),
		flexsolve.WithLogger(c.logger),
		flexsolve.WithMetrics(c.metrics),
		flexsolve.WithDomainAgentFunc(catalogAgent),
		flexsolve.WithExpert(c),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "FlexSolve AWS support assistant. Type 'exit' to quit.")
	ctx := context.Background()
	turn := ctrl.NewTurn()

	for {
		line, ok := c.readLine("you> ")
		if !ok || strings.EqualFold(strings.TrimSpace(line), "exit") {
			ctrl.Abort(turn, "user exit")
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		resp, err := ctrl.HandleMessage(ctx, turn, line)
		if err != nil {
			if types.IsCode(err, types.ErrReviewStalled) {
				fmt.Fprintln(c.out, "The expert review did not complete; your request is still pending.")
				continue
			}
			return err
		}
		fmt.Fprintln(c.out, resp.Render())

		if turn.Terminated() {
			c.runSurvey()
			turn = ctrl.NewTurn()
			fmt.Fprintln(c.out, "\nStarting a new conversation. Ask away, or type 'exit' to quit.")
		}
	}
}

// Review implements the expert collaborator against the operator's terminal.
func (c *cli) Review(ctx context.Context, result types.AggregatedResult) (string, error) {
	rendered := (&session.Response{Kind: session.ResponseSolutions, Result: &result}).Render()
	fmt.Fprintln(c.out, "\n--- proposal pending expert review ---")
	fmt.Fprintln(c.out, rendered)
	fmt.Fprintln(c.out, `Reply "APPROVE" or "REWORK: <feedback>".`)

	fmt.Fprint(c.out, "expert> ")
	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", fmt.Errorf("expert input closed")
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *cli) runSurvey() {
	fmt.Fprintln(c.out, "\n"+session.SurveyPrompt)
	line, ok := c.readLine("rating> ")
	if !ok {
		return
	}
	if rating, valid := session.ParseRating(line); valid {
		c.logger.Info("satisfaction survey completed", zap.Int("rating", rating))
		fmt.Fprintln(c.out, "Thanks for the feedback!")
	} else {
		fmt.Fprintln(c.out, "No rating recorded.")
	}
}

func (c *cli) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	line, ok := <-c.lines
	return line, ok
}

// catalogAgent is the built-in offline collaborator: it answers only for
// domains the request actually mentions, with generic clarification
// questions and checklist-style steps. It stands in for a model-backed
// collaborator so the pipeline is usable out of the box.
func catalogAgent(_ context.Context, profile types.AgentProfile, request string) (string, error) {
	if !mentions(request, profile.Domain) {
		return "TERMINATE", nil
	}
	if profile.Role == types.RoleResearcher {
		return fmt.Sprintf(
			"1. Which region and account is the %s resource in?\n"+
				"2. When did the problem start, and what changed around that time?\n"+
				"TERMINATE", profile.Domain), nil
	}
	return fmt.Sprintf(
		"1. Review the %s configuration against the reported symptoms (%s).\n"+
			"2. Check the service quotas and recent limit changes for %s.\n"+
			"3. Correlate the failure window with CloudTrail events for the resource.\n"+
			"TERMINATE", profile.Domain, strings.Join(profile.Expertise, ", "), profile.Domain), nil
}

func mentions(request string, domain types.Domain) bool {
	for _, d := range route.InferDomains(request) {
		if d == domain {
			return true
		}
	}
	return false
}
