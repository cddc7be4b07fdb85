package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"snapoverlay/src/config"
	"snapoverlay/src/cursor"
	"snapoverlay/src/logutil"
	"snapoverlay/src/monitor"
	"snapoverlay/src/orchestrator"
	"snapoverlay/src/overlay"
)

type rootOptions struct {
	monitorIndex  int
	onlyMonitor   int
	activeMonitor bool
	sessionDir    string
}

// noTarget means the flag was not given (display indices start at 0).
const noTarget = -1

func main() {
	// The child's input hook wants a stable main thread.
	runtime.LockOSThread()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "snapoverlay",
		Short:         "Select a region across all displays for a screenshot",
		Long: "Without flags, snapoverlay captures every display and opens one overlay\n" +
			"child process per display for region selection. The finalized rectangle\n" +
			"is left in the session's state file for the caller to crop.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithOptions(*opts)
		},
	}

	cmd.Flags().IntVar(&opts.monitorIndex, "monitor", noTarget, "Child mode: render the overlay for exactly this display index")
	cmd.Flags().IntVar(&opts.onlyMonitor, "only-monitor", noTarget, "Capture all displays but open an overlay only for this index")
	cmd.Flags().BoolVar(&opts.activeMonitor, "active-monitor", false, "Like --only-monitor for the display under the pointer")
	cmd.Flags().StringVar(&opts.sessionDir, "session-dir", "", "Session directory override (default: temp dir)")
	cmd.MarkFlagsMutuallyExclusive("monitor", "only-monitor", "active-monitor")

	return cmd
}

func runWithOptions(opts rootOptions) error {
	enableDPIAwareness()

	cfg, err := config.LoadWithOptions(config.LoadOptions{SessionDirOverride: opts.sessionDir})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logutil.Setup(cfg.EnableFileLogging)

	if opts.monitorIndex != noTarget {
		log.Printf("Child process: overlay for display %d", opts.monitorIndex)
		return overlay.Run(cfg, opts.monitorIndex)
	}

	target := opts.onlyMonitor
	if opts.activeMonitor {
		displays, err := monitor.NewResolver().Resolve()
		if err != nil {
			return fmt.Errorf("display enumeration failed: %w", err)
		}
		target = cursor.MonitorAtCursor(displays)
		log.Printf("Parent process: overlay restricted to active display %d", target)
	} else if target != noTarget {
		log.Printf("Parent process: overlay restricted to display %d", target)
	} else {
		log.Printf("Parent process: multi-display overlay session")
		target = orchestrator.AllDisplays
	}

	return orchestrator.New(cfg).Run(target)
}
