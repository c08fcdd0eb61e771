// Command gscp copies objects from a Cloud Storage bucket to a local
// directory.
//
//	gscp [-r] [-m N] gs://bucket/prefix /local/dir
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/infraops/gscp"
	gscperrors "github.com/infraops/gscp/errors"
	"github.com/infraops/gscp/internal/config"
)

func main() {
	cfg := config.Load()

	app := &cli.App{
		Name:      "gscp",
		Usage:     "copy objects from a gs:// bucket to a local directory",
		ArgsUsage: "src_url dst_dir",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "download every object whose key starts with the prefix",
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"m"},
				Usage:   "number of parallel downloads; 0 means sequential",
				Value:   cfg.Parallel,
				EnvVars: []string{"GSCP_PARALLEL"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "path-boundary",
				Usage:   "restrict recursive matching to whole path segments",
				Value:   cfg.PathBoundary,
				EnvVars: []string{"GSCP_PATH_BOUNDARY"},
			},
			&cli.BoolFlag{
				Name:    "keep-partial",
				Usage:   "leave partially written files in place on failed transfers",
				Value:   cfg.KeepPartial,
				EnvVars: []string{"GSCP_KEEP_PARTIAL"},
			},
		},
		Action: run(cfg),
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 2 {
			cli.ShowAppHelp(c)
			return cli.Exit("gscp: expected exactly two arguments: src_url dst_dir", 1)
		}
		srcURL := c.Args().Get(0)
		dstDir := c.Args().Get(1)

		log := newLogger(cfg.LogLevel, c.Bool("debug"))

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, err := gscp.New(ctx, gscp.WithLogger(log))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		result, err := client.Copy(ctx, srcURL, dstDir,
			gscp.WithRecursive(c.Bool("recursive")),
			gscp.WithParallel(c.Int("parallel")),
			gscp.WithPathBoundary(c.Bool("path-boundary")),
			gscp.WithKeepPartial(c.Bool("keep-partial")),
		)
		if err != nil {
			return cli.Exit(fatalMessage(err), 1)
		}

		if failed := result.Failed(); failed > 0 {
			for _, o := range result.Outcomes {
				if !o.Success() {
					log.Error().Err(o.Err).Str("key", o.Key).Msg("download failed")
				}
			}
			return cli.Exit(
				fmt.Sprintf("gscp: %d of %d downloads failed", failed, len(result.Outcomes)), 1)
		}

		log.Info().
			Int("objects", result.Succeeded()).
			Str("dest", dstDir).
			Msg("copy completed")
		return nil
	}
}

// fatalMessage appends a usage hint to well-known fatal errors.
func fatalMessage(err error) string {
	if gscperrors.IsBucketNotFound(err) {
		return err.Error() + "\nTry to use an absolute path to the files."
	}
	return err.Error()
}

func newLogger(level string, debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	}

	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
