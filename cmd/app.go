package cmd

import (
	"github.com/grovetools/navcore/channels"
	"github.com/grovetools/navcore/cli"
	"github.com/grovetools/navcore/config"
	"github.com/grovetools/navcore/errors"
	"github.com/grovetools/navcore/prefs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is what every command works on: the resolved configuration, the
// preferences file and the channel registry backed by it.
type app struct {
	cfg      *config.Config
	prefs    *prefs.File
	registry *channels.Registry
	logger   *logrus.Entry
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := cli.GetLogger(cmd, "navcore")

	file, err := prefs.Open(cfg.PrefsFile, logger)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to open preferences").
			WithDetail("path", cfg.PrefsFile)
	}

	return &app{
		cfg:      cfg,
		prefs:    file,
		registry: channels.NewRegistry(file, cfg.ChannelSpecs(), logger),
		logger:   logger,
	}, nil
}

// store resolves a category argument, accepting the aliases ParseCategory
// knows.
func (a *app) store(arg string) (*channels.Store, error) {
	cat, ok := channels.ParseCategory(arg)
	if !ok {
		return nil, errors.UnknownCategory(arg)
	}
	store, ok := a.registry.Store(cat)
	if !ok {
		return nil, errors.UnknownCategory(arg)
	}
	return store, nil
}
