package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/config"
	"github.com/gorewood/gitcc/internal/envfile"
	"github.com/gorewood/gitcc/internal/git"
	"github.com/gorewood/gitcc/internal/logging"
)

// session holds what prepare resolved for the running command.
type session struct {
	// root is the repository top level, empty outside a repository.
	root   string
	cfg    *config.Config
	cfgErr error
}

type sessionKey struct{}

// config returns the loaded configuration or the error loading it.
// Commands that cannot work without it report the error themselves so
// init can still repair a broken file.
func (s *session) config() (*config.Config, error) {
	return s.cfg, s.cfgErr
}

// prepare loads env files, the layered configuration and the logger, and
// stores them on the command context.
//
// Env file resolution order (first match per variable wins, variables
// already set always win):
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. $CONFIG_DIR/env
func prepare(cmd *cobra.Command, _ []string) error {
	envErr := envfile.LoadAll(".env.local", ".env", config.GlobalEnvFile())

	s := &session{}
	s.root, _ = git.RepoRoot()
	s.cfg, s.cfgErr = config.Load(s.root)

	level := "warn"
	if s.cfgErr == nil {
		level = s.cfg.Log.Level
	}
	logger := logging.New(cmd.ErrOrStderr(), level)
	if envErr != nil {
		logger.Warn("could not read env file", "err", envErr)
	}
	if s.cfgErr != nil {
		logger.Debug("configuration failed to load", "err", s.cfgErr)
	} else {
		logger.Debug("configuration loaded", "root", s.root, "sources", s.cfg.Sources)
	}

	ctx := logging.WithContext(cmd.Context(), logger)
	cmd.SetContext(context.WithValue(ctx, sessionKey{}, s))
	return nil
}

// sessionFrom returns the session prepared for cmd, preparing one when the
// command runs without its root's pre-run hook.
func sessionFrom(cmd *cobra.Command) *session {
	if cmd.Context() != nil {
		if s, ok := cmd.Context().Value(sessionKey{}).(*session); ok {
			return s
		}
	}
	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	_ = prepare(cmd, nil)
	return cmd.Context().Value(sessionKey{}).(*session)
}
