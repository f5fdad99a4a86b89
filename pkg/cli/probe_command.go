package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/bbq-beach/agents/pkg/a2a"
)

// probeCommand creates the 'probe' command: a test client running the
// card's example queries against a remote agent.
func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Sends test queries to a remote agent and prints the responses",
		ArgsUsage: "[AGENT_URL]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "Base URL of the agent to probe",
				Value: "http://localhost:10003",
			},
			&cli.StringFlag{
				Name:  "query",
				Usage: "Single query to send instead of the card examples",
			},
		},
		Action: probeCommandAction,
	}
}

func probeCommandAction(c *cli.Context) error {
	agentURL := c.Args().First()
	if agentURL == "" {
		agentURL = c.String("url")
	}

	ctx := context.Background()

	fmt.Printf("Connecting to agent at %s...\n", agentURL)
	resolver := a2a.NewAgentCardResolver(agentURL, nil)
	card, err := resolver.GetWellKnownAgentCard(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve agent card: %w", err)
	}

	fmt.Printf("Connected to %q (version %s)\n", card.Name, card.Version)
	if card.Description != nil {
		fmt.Printf("  %s\n", *card.Description)
	}

	queries := card.Examples
	if q := c.String("query"); q != "" {
		queries = []string{q}
	}
	if len(queries) == 0 {
		return fmt.Errorf("agent card has no examples and no --query given")
	}

	client, err := a2a.NewClient(agentURL, nil)
	if err != nil {
		return err
	}

	contextID := uuid.NewString()
	for i, query := range queries {
		fmt.Printf("\n=== Query %d/%d ===\n%s\n---\n", i+1, len(queries), query)

		task, err := client.SendMessage(ctx, &a2a.SendParams{
			Message: a2a.Message{
				Role:      "user",
				Parts:     []a2a.Part{a2a.TextPart(query)},
				MessageID: uuid.NewString(),
				TaskID:    uuid.NewString(),
				ContextID: contextID,
			},
		})
		if err != nil {
			fmt.Printf("query failed: %v\n", err)
			continue
		}

		fmt.Printf("state: %s\n", task.Status.State)
		for _, artifact := range task.Artifacts {
			for _, part := range artifact.Parts {
				if part.Type == "text" {
					fmt.Println(part.Text)
				}
			}
		}
		if len(task.Artifacts) == 0 && task.Status.Message != nil {
			fmt.Println(task.Status.Message.Text())
		}
	}

	fmt.Println("\nAll queries finished.")
	return nil
}
