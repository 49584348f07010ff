// Package main provides the Tianya CLI application entry point.
// Tianya is the client core for a mobile meetings-and-AI-chat app: meeting
// history, session lifecycle, theme state, and a streamed chat endpoint.
// The CLI exposes the core's operations for development and embedding work.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tianya/internal/chat"
	"tianya/internal/config"
	"tianya/internal/history"
	"tianya/internal/logger"
	"tianya/internal/session"
	"tianya/internal/store"
	"tianya/internal/theme"
	"tianya/pkg/meettypes"
)

var (
	logLevel string
	logFile  string
	testMode bool
	version  = "0.1.0" // This could be set at build time

	meetRoom     string
	meetHost     bool
	meetPassword string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tianya",
	Short: "Tianya - meetings and AI chat client core",
	Long: `Tianya is the core of a mobile client for video meetings and AI chat.
The CLI drives the same components the app embeds: meeting history, theme
state, conference session parameters, and the streamed chat endpoint.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logger.Configure(logLevel, logFile, testMode)
	},
}

// chatCmd sends one chat turn and renders the assistant's reply
var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send a message to the assistant",
	Long: `Send one message to the configured chat endpoint and print the
assistant's reply. Requires TIANYA_CHAT_API_KEY to be set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

// historyCmd groups the meeting-history operations
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the meeting history log",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed meetings, newest first",
	RunE:  runHistoryList,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove one meeting record by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the entire meeting history",
	RunE:  runHistoryClear,
}

// themeCmd groups the theme-state operations
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or cycle the UI theme",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current theme",
	RunE:  runThemeShow,
}

var themeCycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Switch to the next theme",
	RunE:  runThemeCycle,
}

// meetCmd derives the construction payload for the conferencing component
var meetCmd = &cobra.Command{
	Use:   "meet",
	Short: "Derive conferencing options from session parameters",
	Long: `Validate session parameters and print the construction options the
embedding layer hands to the conferencing component. With no --room, a
quick-meeting room name is generated and the caller becomes host.`,
	RunE: runMeet,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("Tianya v%s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")

	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(1)
	}

	meetCmd.Flags().StringVar(&meetRoom, "room", "", "Room name (blank generates a quick-meeting room)")
	meetCmd.Flags().BoolVar(&meetHost, "host", false, "Join as host")
	meetCmd.Flags().StringVar(&meetPassword, "password", "", "Room password (host only, min 4 characters)")

	historyCmd.AddCommand(historyListCmd, historyRemoveCmd, historyClearCmd)
	themeCmd.AddCommand(themeShowCmd, themeCycleCmd)
	rootCmd.AddCommand(chatCmd, historyCmd, themeCmd, meetCmd, versionCmd)
}

// openStore builds the configured store backend.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		return store.NewMemoryStore(), nil
	case config.StoreBackendRedis:
		return store.NewRedisStore(ctx, cfg.RedisAddr)
	default:
		return store.NewFileStore(cfg.StorePath)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := chat.NewClient(chat.ClientConfig{
		BaseURL: cfg.ChatBaseURL,
		APIKey:  cfg.ChatAPIKey,
		Model:   cfg.ChatModel,
	})
	if !client.IsConfigured() {
		return fmt.Errorf("chat endpoint not configured: set TIANYA_CHAT_API_KEY")
	}

	transcript := chat.NewTranscript(client)
	if err := transcript.SendTurn(cmd.Context(), strings.Join(args, " ")); err != nil {
		return err
	}

	messages := transcript.Messages()
	reply := messages[len(messages)-1].Content

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Rendering is cosmetic; fall back to plain text.
		fmt.Println(reply)
		return nil
	}
	rendered, err := renderer.Render(reply)
	if err != nil {
		fmt.Println(reply)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	themes := theme.NewManager(st)
	themes.Load(ctx)
	current := themes.Current()

	records := history.NewService(st).Load(ctx)
	if len(records) == 0 {
		fmt.Println("No meetings yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %s  %s\n",
			current.Accent.Render(rec.Room),
			current.Text.Render(rec.Date),
			rec.ID,
		)
	}
	return nil
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	return history.NewService(st).Remove(ctx, args[0])
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	if err := history.NewService(st).Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Meeting history cleared.")
	return nil
}

func runThemeShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	themes := theme.NewManager(st)
	themes.Load(ctx)
	printTheme(themes.Current())
	return nil
}

func runThemeCycle(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	themes := theme.NewManager(st)
	themes.Load(ctx)
	printTheme(themes.Cycle(ctx))
	return nil
}

func printTheme(current *theme.Theme) {
	swatches := ""
	for _, stop := range current.Gradient {
		swatches += current.Text.Background(stop).Render("  ")
	}
	fmt.Printf("%s %s\n", current.Accent.Render(current.Name), swatches)
}

func runMeet(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	params := meettypes.SessionParams{
		Room:     meetRoom,
		IsHost:   meetHost,
		Password: meetPassword,
	}
	if params.Room == "" {
		// A quick meeting: generated room, caller hosts.
		params.Room = session.QuickRoomName()
		params.IsHost = true
	}
	if err := session.ValidateParams(params); err != nil {
		return err
	}

	options := session.BuildConferenceOptions(params, cfg.ConferenceServerURL)
	payload, err := json.MarshalIndent(options, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}
