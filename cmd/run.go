package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordbuddy/internal/app"
	"github.com/abhisek/wordbuddy/internal/config"
	"github.com/abhisek/wordbuddy/internal/logging"
	"github.com/abhisek/wordbuddy/internal/progress"
	"github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/reminder"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/settings"
	"github.com/abhisek/wordbuddy/internal/speech"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog.Close()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	pool, err := vocab.Load(cfg.VocabPath)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	logger.Info("vocabulary loaded", "items", len(pool), "source", cfg.VocabPath)

	prog := progress.NewStore(st.ProgressRepo(), progress.WithLogger(logger))
	if err := prog.Load(ctx); err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	rawSettings, err := st.SettingsRepo().Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	prefs, err := settings.Load(ctx, st.SettingsRepo())
	if err != nil {
		logger.Warn("settings had invalid fields, using defaults for them", "error", err)
	}

	relay := &app.Relay{}
	history := st.SessionRepo()
	session := quiz.NewSession(pool, prog,
		quiz.WithLogger(logger),
		quiz.WithLength(cfg.QuizLength),
		quiz.WithTimeLimit(cfg.QuizTimeLimit()),
		quiz.WithOnEnd(app.RecordSessionEnd(history, logger)),
		quiz.WithOnExpire(func() { relay.Send(screen.QuizExpiredMsg{}) }),
	)

	speaker := speech.New(logger)
	if c, ok := speaker.(io.Closer); ok {
		defer c.Close()
	}

	if cfg.RemindAt != "" {
		r, err := reminder.New(cfg.RemindAt, prog, func(n reminder.Notice) { relay.Send(n) }, logger)
		if err != nil {
			return err
		}
		r.Start()
		defer r.Stop()
	}

	svc := &screen.Services{
		Pool:        pool,
		Progress:    prog,
		Quiz:        session,
		Settings:    &prefs,
		SettingsDoc: st.SettingsRepo(),
		Cards:       st.CardRepo(),
		History:     history,
		Speaker:     speaker,
		Logger:      logger,
	}

	return app.Run(app.Options{
		Services: svc,
		FirstRun: rawSettings == nil,
		Relay:    relay,
	})
}

// openLog opens the TUI log file from config.
func openLog() (*slog.Logger, io.Closer, error) {
	path := cfg.LogFile
	if path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	return logging.OpenFile(path, cfg.LogLevel)
}
