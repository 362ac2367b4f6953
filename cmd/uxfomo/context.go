package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"uxfomo/internal/config"
	"uxfomo/internal/logging"
	"uxfomo/internal/persistence"
	"uxfomo/internal/profile"
	"uxfomo/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	closeLog   func() error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor builds the CLI logger once. Console output goes to the command's
// stderr; a broken log file degrades to console only.
func (c *commandContext) loggerFor(cmd *cobra.Command) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, closeLog, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; logging to console only\n", err)
			logger, closeLog, err = logging.New(logging.Options{Level: "info", Console: cmd.ErrOrStderr()})
			if err != nil {
				logger, closeLog = logging.NewNop(), nil
			}
		}
		c.logger = logger
		c.closeLog = closeLog
	})
	return c.logger
}

// closeLogger releases the log file. A later loggerFor call opens it again.
func (c *commandContext) closeLogger() {
	if c.closeLog != nil {
		_ = c.closeLog()
	}
	c.logger, c.closeLog = nil, nil
	c.loggerOnce = sync.Once{}
}

// withSession opens the store, loads the profile, and runs fn. The store and
// the log file are closed when fn returns.
func (c *commandContext) withSession(cmd *cobra.Command, fn func(*persistence.Session, persistence.LoadResult) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger := c.loggerFor(cmd)
	defer c.closeLogger()

	s, err := store.Open(cfg, store.WithLogger(logger))
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			return fmt.Errorf("profile store is in use by another uxfomo process (%s)", cfg.Paths.DataDir)
		}
		return fmt.Errorf("open profile store: %w", err)
	}
	defer s.Close()

	gw := persistence.NewGateway(s, cfg.Store.Key, persistence.WithLogger(logger))
	session, result := persistence.OpenSession(cmd.Context(), gw)
	return fn(session, result)
}

// applyEdits runs mutations through a session and prints message on success.
func (c *commandContext) applyEdits(cmd *cobra.Command, message string, mutations ...profile.Mutation) error {
	return c.withSession(cmd, func(session *persistence.Session, _ persistence.LoadResult) error {
		return applySession(cmd, session, message, mutations...)
	})
}

func applySession(cmd *cobra.Command, session *persistence.Session, message string, mutations ...profile.Mutation) error {
	_, err := session.Apply(cmd.Context(), mutations...)
	// A rejected mutation joined with earlier failed writes is returned whole.
	if saveErr, ok := err.(*persistence.SaveError); ok {
		return fmt.Errorf("change not saved: %w", saveErr.Err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
