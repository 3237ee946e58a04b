package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ordna/internal"
)

var (
	patternFlag   string
	dedupFlag     bool
	deleteFlag    bool
	dryRunFlag    bool
	verboseFlag   bool
	extFlag       []string
	useExifTool   bool
	hardlinksFlag bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize [flags] source... [destination]",
	Short: "Sort images into the destination library by capture date",
	Long: `Organize stages images from the given sources, reads each one's capture
timestamp, and copies it to a destination path derived from the configured
pattern. Identical content is copied once per run; with --delete the originals
of successfully placed images are removed and emptied source directories are
pruned. The destination is the last argument, or the configured library when
only sources are given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOrganize,
}

func runOrganize(cmd *cobra.Command, args []string) error {
	conf, err := internal.LoadConfig()
	if err != nil {
		return err
	}

	// Flags override the config file.
	if cmd.Flags().Changed("pattern") {
		conf.Pattern = patternFlag
	}
	if cmd.Flags().Changed("dedup") {
		conf.Dedup = dedupFlag
	}
	if cmd.Flags().Changed("ext") {
		conf.ImageExt = extFlag
	}
	if cmd.Flags().Changed("exiftool") {
		conf.UseExifTool = useExifTool
	}
	if cmd.Flags().Changed("hardlinks") {
		conf.Hardlinks = hardlinksFlag
	}

	sources := args
	dest := conf.Library
	if len(args) >= 2 {
		dest = args[len(args)-1]
		sources = args[:len(args)-1]
	}
	if dest == "" {
		return fmt.Errorf("no destination given and no library configured")
	}

	if dryRunFlag {
		if info, err := os.Stat(dest); err == nil && !info.IsDir() {
			return fmt.Errorf("destination is not a directory: %s", dest)
		}
	} else if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("destination is not usable as a directory: %w", err)
	}

	var logW io.Writer = io.Discard
	if verboseFlag {
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

	var session *internal.RunSession
	if !dryRunFlag {
		session, err = internal.NewRunSession(dest, conf.Hardlinks)
		if err != nil {
			return err
		}
		defer session.Close()
	}

	staging := internal.Stage(sources, conf.ImageExt, logger)
	session.LogRunStart(sources, len(staging.Files))

	var ledger *internal.Ledger
	if conf.Dedup {
		ledger = internal.NewLedger()
	}

	coord := &internal.Coordinator{
		Classifier: &internal.Classifier{
			Resolver: &internal.Resolver{Root: dest, Pattern: conf.Pattern, Reader: reader},
			Ledger:   ledger,
			DryRun:   dryRunFlag,
			Log:      logger,
			Session:  session,
		},
		Delete:  deleteFlag,
		DryRun:  dryRunFlag,
		Log:     logger,
		Session: session,
	}

	sum := coord.Process(staging)
	printSummary(cmd.OutOrStdout(), sum, dryRunFlag)
	return nil
}

func printSummary(w io.Writer, sum internal.Summary, dry bool) {
	if dry {
		fmt.Fprintln(w, "[dry-run] no files were written or removed")
	}
	fmt.Fprintf(w, "Staged:    %d\n", sum.Staged)
	fmt.Fprintf(w, "Succeeded: %d", sum.Copied)
	if sum.Duplicates > 0 {
		fmt.Fprintf(w, " (%d duplicates)", sum.Duplicates)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Failed:    %d", sum.Failed())
	if sum.Failed() > 0 {
		fmt.Fprintf(w, " (%d copy, %d processing)", sum.FailedCopy, sum.FailedProcessing)
	}
	fmt.Fprintln(w)
	if sum.Deleted > 0 || sum.Pruned > 0 {
		fmt.Fprintf(w, "Removed:   %d originals, %d empty directories\n", sum.Deleted, sum.Pruned)
	}
}

func init() {
	organizeCmd.Flags().StringVar(&patternFlag, "pattern", internal.DefaultPattern, "strftime pattern for destination paths")
	organizeCmd.Flags().BoolVar(&dedupFlag, "dedup", true, "Skip images whose content was already placed this run")
	organizeCmd.Flags().BoolVar(&deleteFlag, "delete", false, "Delete originals after successful placement")
	organizeCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Simulate without touching the filesystem")
	organizeCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log per-file progress and diagnostics to stderr")
	organizeCmd.Flags().StringSliceVar(&extFlag, "ext", []string{".jpg", ".jpeg"}, "Accepted image extensions")
	organizeCmd.Flags().BoolVar(&useExifTool, "exiftool", false, "Use the exiftool binary to read metadata")
	organizeCmd.Flags().BoolVar(&hardlinksFlag, "hardlinks", false, "Hardlink placed files into the run directory for browsing")

	rootCmd.AddCommand(organizeCmd)
}
