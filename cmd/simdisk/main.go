package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/watsonliu1/disk-simulator-v2/pkg/config"
	"github.com/watsonliu1/disk-simulator-v2/pkg/disk"
)

func main() {
	app := &cli.App{
		Name:  "simdisk",
		Usage: "a UNIX-style filesystem simulated inside a single disk image",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "image",
				Aliases: []string{"i"},
				Usage:   "path to the backing disk image",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of command executors (default: host CPU count)",
			},
			&cli.IntFlag{
				Name:  "queue-depth",
				Usage: "task queue capacity",
			},
			&cli.BoolFlag{
				Name:  "auto-format",
				Usage: "format the image when mounting fails instead of refusing to start",
			},
			&cli.BoolFlag{
				Name:  "json-logs",
				Usage: "emit logs as JSON",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if err := runShell(cfg, os.Stdin, os.Stdout); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
		Commands: []*cli.Command{{
			Name:  "selftest",
			Usage: "format the configured image and run the built-in operation sequence",
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if !runSelfTest(cfg.Image, os.Stdout) {
					return cli.Exit("selftest failed", 1)
				}
				return nil
			},
		}},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if c.IsSet("image") {
		cfg.Image = c.String("image")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("queue-depth") {
		cfg.QueueDepth = c.Int("queue-depth")
	}
	if c.IsSet("auto-format") {
		cfg.AutoFormat = c.Bool("auto-format")
	}
	if c.IsSet("json-logs") {
		cfg.JSONLogs = c.Bool("json-logs")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.JSONLogs {
		log.SetFormatter(&log.JSONFormatter{})
	}
	if c.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	return cfg, nil
}

// openImage mounts the configured image. On a bad or missing image it
// formats first only when auto-format was requested; otherwise it refuses,
// leaving the decision to an explicit `format`.
func openImage(cfg *config.Config) (*disk.FileSystem, error) {
	fs := disk.New(cfg.Image)
	err := fs.Mount()
	if err == nil {
		return fs, nil
	}

	if !cfg.AutoFormat {
		return nil, fmt.Errorf(
			"mounting `%s` (pass --auto-format to format a fresh image): %w",
			cfg.Image,
			err,
		)
	}

	log.WithField("image", cfg.Image).
		Warn("mount failed; formatting a fresh image")
	if err := fs.Format(disk.DefaultGeometry()); err != nil {
		return nil, fmt.Errorf("formatting `%s`: %w", cfg.Image, err)
	}
	if err := fs.Mount(); err != nil {
		return nil, fmt.Errorf("mounting freshly formatted `%s`: %w", cfg.Image, err)
	}
	return fs, nil
}
