package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"ordna/internal"
)

var (
	watchVerbose bool
	watchSettle  time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch source destination",
	Short: "Watch a source tree and organize new images as they appear",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, dest := args[0], args[1]

		info, err := os.Stat(source)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("source does not exist or is not a directory: %s", source)
		}
		if err := os.MkdirAll(dest, 0755); err != nil {
			return fmt.Errorf("destination is not usable as a directory: %w", err)
		}

		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}

		var logW io.Writer = io.Discard
		if watchVerbose {
			logW = cmd.ErrOrStderr()
		}
		logger := internal.NewLogger(logW)

		var reader internal.DateReader = internal.ExifReader{}
		if conf.UseExifTool {
			et, err := internal.NewExifToolReader()
			if err != nil {
				return err
			}
			defer et.Close()
			reader = et
		}

		session, err := internal.NewRunSession(dest, conf.Hardlinks)
		if err != nil {
			return err
		}
		defer session.Close()

		classifier := &internal.Classifier{
			Resolver: &internal.Resolver{Root: dest, Pattern: conf.Pattern, Reader: reader},
			Ledger:   internal.NewLedger(),
			Log:      logger,
			Session:  session,
		}

		watcher, err := internal.NewWatcher(source, conf.ImageExt)
		if err != nil {
			return err
		}
		defer watcher.Close()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s -> %s\n", source, dest)
		for {
			select {
			case ev := <-watcher.Events():
				if ev.Type != internal.EventCreate {
					continue
				}
				// Give the writer a moment to finish the file.
				time.Sleep(watchSettle)
				classifier.Classify(ev.Path)
			case err := <-watcher.Errors():
				logger.Printf("watch error: %v", err)
			case <-interrupt:
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Log per-file progress and diagnostics to stderr")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 2*time.Second, "Delay before classifying a newly created file")

	rootCmd.AddCommand(watchCmd)
}
