package cmd

import (
	"errors"
	"fmt"

	"github.com/learnpath/learnpath/internal/topicgraph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect the topic graph",
}

var graphValidateCmd = &cobra.Command{
	Use:   "validate [topics.json]",
	Short: "Validate a topics file (or the built-in catalog)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var g *topicgraph.Graph
		var err error
		if len(args) == 1 {
			g, err = topicgraph.LoadFile(args[0])
		} else {
			g, err = resolveGraph(cmd)
		}
		if err != nil {
			var cycle *topicgraph.CycleError
			if errors.As(err, &cycle) {
				return fmt.Errorf("topic graph has a prerequisite cycle through: %v", cycle.Topics)
			}
			return err
		}

		fmt.Printf("OK: %d topics, %d roots.\n", g.Len(), len(g.Roots()))
		return nil
	},
}

var graphShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print topics in prerequisite order",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := resolveGraph(cmd)
		if err != nil {
			return err
		}

		for _, t := range g.TopologicalOrder() {
			indent := ""
			for range g.Depth(t.ID) {
				indent += "  "
			}
			fmt.Printf("%s%s (%s, ~%dm)\n", indent, t.Name, t.ID, t.EstimatedMins)
		}
		return nil
	},
}

func init() {
	graphCmd.AddCommand(graphValidateCmd)
	graphCmd.AddCommand(graphShowCmd)
}
