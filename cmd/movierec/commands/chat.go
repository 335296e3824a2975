package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"movierec/internal/chat"
	"movierec/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat about movies in the terminal",
	Long: `Start an interactive chat. Type a message such as "I like Alien" or
"search for star"; use up/down to page through results and Esc to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		engine, err := buildEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		svc := chat.NewService(engine, chat.Limits{
			Recommend: cfg.Chat.RecommendLimit,
			Search:    cfg.Chat.SearchLimit,
		})
		st := engine.Status()
		summary := fmt.Sprintf("%s: %d movies, %d terms", cfg.Catalog.Source, st.Movies, st.Vocabulary)
		_, err = tea.NewProgram(tui.New(svc, summary), tea.WithAltScreen()).Run()
		return err
	},
}
