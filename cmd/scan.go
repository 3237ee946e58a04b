package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"ordna/internal"
)

var (
	scanDuplicates bool
	scanExts       []string
	scanVerbose    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] path...",
	Short: "Inventory stageable images without copying anything",
	Long: `Scan stages the given paths exactly like organize would, then prints an
inventory instead of copying: staged/refused counts, total size, and a
per-extension breakdown. With --duplicates every staged file is hashed and
duplicate content groups are counted. Strictly read-only.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("ext") {
			conf.ImageExt = scanExts
		}

		var logW io.Writer = io.Discard
		if scanVerbose {
			logW = cmd.ErrOrStderr()
		}

		staging := internal.Stage(args, conf.ImageExt, internal.NewLogger(logW))
		report := internal.BuildReport(staging, scanDuplicates)
		report.Render(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanDuplicates, "duplicates", false, "Hash files to count duplicate content groups (slower)")
	scanCmd.Flags().StringSliceVar(&scanExts, "ext", []string{".jpg", ".jpeg"}, "Accepted image extensions")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Log refused paths to stderr")

	rootCmd.AddCommand(scanCmd)
}
