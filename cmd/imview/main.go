package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/alexballas/imview/internal/config"
	"github.com/alexballas/imview/internal/logger"
	"github.com/alexballas/imview/viewer"
)

const appID = "io.github.alexballas.imview"

var version = "dev"

type options struct {
	configPath string
	logLevel   string
	extensions []string
	watch      bool
}

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command line. start receives the resolved settings
// and the optional path argument.
func newRootCmd(start func(cfg config.Config, path string) error) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "imview [path]",
		Short: "Browse the images of a directory",
		Long: `imview shows one image at a time and steps through the other images
of the same directory with the arrow keys. The path may be an image file
or a directory; without one the last directory used is opened.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return start(cfg, path)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/imview/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringSliceVar(&opts.extensions, "ext", nil, "image extensions to show, e.g. --ext jpg,png")
	flags.BoolVar(&opts.watch, "watch", false, "reload when files are added to or removed from the directory")

	return cmd
}

// resolveConfig loads the config file and applies the flags that were set
// explicitly on top of it.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("ext") {
		cfg.Extensions = opts.extensions
	}
	if flags.Changed("watch") {
		cfg.Watch = opts.watch
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(cfg config.Config, path string) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.NewConsole(level)

	a := app.NewWithID(appID)
	v, err := viewer.New(a, cfg, log)
	if err != nil {
		return err
	}

	explicit := path != ""
	if !explicit {
		path = v.StartupPath()
	}
	if err := v.OpenPath(path); err != nil {
		if explicit {
			log.Error().Err(err).Str("path", path).Msg("cannot open path")
		} else {
			log.Debug().Err(err).Str("path", path).Msg("nothing to show at startup")
		}
	}

	v.Window().ShowAndRun()
	return nil
}
