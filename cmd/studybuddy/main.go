package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/studybuddy/internal/profile"
	"github.com/hrygo/studybuddy/plugin/ai"
	"github.com/hrygo/studybuddy/plugin/textextract"
	"github.com/hrygo/studybuddy/server/service/gamification"
	"github.com/hrygo/studybuddy/server/service/study"
	"github.com/hrygo/studybuddy/store"
	"github.com/hrygo/studybuddy/store/db"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "studybuddy",
		Short: "Turn raw notes into summaries, quizzes and flashcard decks",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDemo(ctx)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("mode", "dev", `mode of the service, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "storage driver, can be sqlite, postgres or memory")
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("studybuddy")
	viper.AutomaticEnv()
}

// loadProfile resolves flags, environment and defaults into the runtime
// profile. Flag values seed the profile; STUDYBUDDY_* variables override.
func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: "0.1.0",
	}
	p.FromEnv()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// runDemo walks one full study session against the configured store: capture
// a sample text, generate the study set, ace the quiz, flip the deck and
// report the gamification profile.
func runDemo(ctx context.Context) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}

	driver, err := db.NewKVDriver(p)
	if err != nil {
		return err
	}
	s := store.New(driver, p)
	defer s.Close()

	engine := gamification.NewEngine(s)

	var summarizer study.Summarizer
	var quizzer study.QuizGenerator
	if p.IsAIEnabled() {
		provider, err := ai.NewProvider(ai.NewConfigFromProfile(p))
		if err != nil {
			return err
		}
		summarizer = ai.NewSummarizer(provider, &ai.SummarizerConfig{
			MaxLength: p.SummaryMaxLength,
			MinLength: p.SummaryMinLength,
		})
		quizzer = ai.NewQuizGenerator(provider)
	} else {
		slog.Info("AI disabled, using local generation only")
	}
	svc := study.NewService(s, engine, summarizer, quizzer, nil)

	// No image on hand: the extractor serves one of its sample passages.
	extractor := textextract.NewClient(textextract.NewConfigFromProfile(p))
	text, err := extractor.ExtractText(ctx, nil)
	if err != nil {
		return err
	}

	note, gp, err := svc.SaveNote(ctx, text)
	if err != nil {
		return err
	}
	fmt.Printf("Saved note %d (+%d points, %d total)\n", note.ID, study.PointsPerNote, gp.Points)

	set, err := svc.GenerateStudySet(ctx, note.ID)
	if err != nil {
		return err
	}
	fmt.Printf("\nSummary%s:\n  %s\n", fallbackTag(set.SummaryFallback), set.Summary)

	fmt.Printf("\nQuiz%s:\n", fallbackTag(set.QuizFallback))
	run, err := study.NewQuizRun(set.Quiz)
	if err != nil {
		return err
	}
	for !run.Completed() {
		q := run.Current()
		fmt.Printf("  %d. %s\n", q.ID, q.Question)
		for i, opt := range q.Options {
			fmt.Printf("     %c) %s\n", 'A'+i, opt)
		}
		if err := run.Select(q.CorrectIndex); err != nil {
			return err
		}
		if err := run.Next(); err != nil {
			return err
		}
	}
	gp, err = svc.CompleteQuiz(ctx, run)
	if err != nil {
		return err
	}
	fmt.Printf("  Score: %d/%d (%d%%), points now %d\n", run.Score(), run.Len(), run.Percent(), gp.Points)

	fmt.Println("\nFlashcards:")
	deck, err := study.NewFlashcardRun(set.Flashcards)
	if err != nil {
		return err
	}
	for {
		card, ok := deck.Current()
		if !ok {
			break
		}
		fmt.Printf("  Q: %s\n  A: %s\n", card.Question, card.Answer)
		deck.Advance()
	}
	if gp, err = svc.CompleteFlashcards(ctx, deck); err != nil {
		return err
	}

	gp, notifications, err := svc.ViewProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nProfile: %d points, streak %d, %d notes, %d quizzes, %d decks\n",
		gp.Points, gp.Streak, gp.TotalNotes, gp.TotalQuizzes, gp.TotalFlashcards)
	for _, n := range notifications {
		fmt.Printf("  %s: %s\n", n.Title, n.Description)
	}
	return nil
}

func fallbackTag(fallback bool) string {
	if fallback {
		return " (local)"
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
