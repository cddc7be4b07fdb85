// Command cropcli is the upstream side of the overlay contract: after a
// snapoverlay session finishes, it reads the finalized rectangle from
// the session's state file and performs the actual crop-and-save.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"snapoverlay/src/config"
	"snapoverlay/src/crop"
	"snapoverlay/src/geom"
	"snapoverlay/src/logutil"
	"snapoverlay/src/session"
)

type cliOptions struct {
	sessionDir string
	jsonOutput bool
	verbose    bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts := &cliOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cropcli",
		Short:         "Crop and save the region selected in the last overlay session",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithOptions(*opts)
		},
	}

	cmd.Flags().StringVar(&opts.sessionDir, "session-dir", "", "Session directory (default: the overlay's temp dir)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output result as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging to stderr")

	return cmd
}

func runWithOptions(opts cliOptions) error {
	// Configure logging BEFORE any other operations.
	if opts.verbose {
		log.SetOutput(os.Stderr)
	} else {
		logutil.Discard()
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{SessionDirOverride: opts.sessionDir})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	sess := session.New(cfg.SessionDir)
	st := sess.Channel().Read()
	rect, ok := st.Rect()
	if !ok {
		return fmt.Errorf("no finalized selection in session %s", cfg.SessionDir)
	}

	displays, err := sess.LoadMonitors()
	if err != nil {
		return err
	}

	saver := crop.NewSaver(cfg.ScreensDir, cfg.CopyToClipboard)
	path, err := saver.Save(rect, displays)
	if err != nil {
		return err
	}

	out, err := formatResult(path, rect, opts.jsonOutput)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func formatResult(path string, rect geom.Rect, jsonOutput bool) (string, error) {
	if !jsonOutput {
		return path, nil
	}
	data, err := json.Marshal(struct {
		Path string     `json:"path"`
		Rect [4]float64 `json:"rect"`
	}{
		Path: path,
		Rect: [4]float64{rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %v", err)
	}
	return string(data), nil
}
