package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/learnpath/learnpath/internal/assistant"
	"github.com/learnpath/learnpath/internal/recommend"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about topics on the learning path",
	Long: "Chat answers topic questions from a local knowledge base and falls " +
		"back to a configured LLM provider for anything it doesn't know. " +
		"Without a provider it runs in knowledge-base-only mode.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		user, _ := cmd.Flags().GetString("user")

		s, err := openState(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		provider, err := assistant.NewProviderFromEnv(ctx, s.store.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Running in knowledge-base-only mode.")
			provider = nil
		}

		kb := assistant.NewKnowledgeBase(s.graph, nil)
		bot := assistant.NewChatbot(kb, provider)

		if user != "" {
			bot.SetSession(chatSession(s, user))
		}

		fmt.Println("Learning assistant ready. Type a question, or 'quit' to exit.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "quit" || line == "exit" {
				break
			}

			answer, err := bot.Ask(ctx, line)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				continue
			}
			fmt.Println(answer)
			fmt.Println()
		}
		return scanner.Err()
	},
}

// chatSession builds the learner context for the LLM system prompt.
func chatSession(s *state, user string) assistant.SessionContext {
	sess := assistant.SessionContext{User: user}

	snap := s.mastery.Snapshot()
	scores := snap.Scores(user)
	if len(scores) == 0 {
		return sess
	}

	mastery := make(map[string]float64, len(scores))
	for id, score := range scores {
		name := id
		if t, err := s.graph.Topic(id); err == nil {
			name = t.Name
		}
		mastery[name] = score
	}
	sess.Mastery = mastery

	engine, err := recommend.NewEngine(s.graph, recommend.ConfigFromEnv())
	if err != nil {
		return sess
	}
	result, err := engine.Recommend(user, snap, 0)
	if err != nil || result == nil {
		return sess
	}
	for _, rec := range result.Recommendations {
		name := rec.Topic
		if t, err := s.graph.Topic(rec.Topic); err == nil {
			name = t.Name
		}
		sess.Suggested = append(sess.Suggested, name)
	}
	return sess
}

func init() {
	chatCmd.Flags().StringP("user", "u", "", "Learner ID for personalized answers")
}
