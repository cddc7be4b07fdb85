// Package orchestrator runs the parent side of a capture session: it
// resolves the display topology, captures every display, persists the
// session files, then spawns and supervises one overlay child process
// per target display.
package orchestrator

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"

	"snapoverlay/src/capture"
	"snapoverlay/src/config"
	"snapoverlay/src/monitor"
	"snapoverlay/src/session"
)

// AllDisplays selects every captured display as an overlay target.
const AllDisplays = -1

type Orchestrator struct {
	Config   *config.Config
	Resolver *monitor.Resolver
	Engine   *capture.Engine
	// ExePath is the child executable; defaults to the current binary
	// (children are this same program run with --monitor).
	ExePath string
}

func New(cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		Config:   cfg,
		Resolver: monitor.NewResolver(),
		Engine:   capture.NewEngine(),
	}
}

type child struct {
	index int
	cmd   *exec.Cmd
}

// Run performs a full parent session and blocks until every child has
// exited. only selects a single overlay target display, or AllDisplays;
// the capture step always covers every display so a later change of
// target needs no re-capture. Child exit codes are recorded but never
// fail the session; only a topology or capture failure does.
func (o *Orchestrator) Run(only int) error {
	displays, err := o.Resolver.Resolve()
	if err != nil {
		return fmt.Errorf("display enumeration failed: %w", err)
	}

	sess := session.New(o.Config.SessionDir)
	if err := sess.Prepare(); err != nil {
		return err
	}

	vdScale := monitor.VirtualScale(displays)
	log.Printf("Virtual desktop DPI scale: %.2f", vdScale)

	captured := o.Engine.Capture(displays, vdScale, sess.Dir)
	if len(captured) == 0 {
		return fmt.Errorf("no displays captured")
	}

	bounds := monitor.VirtualBounds(captured)
	log.Printf("Virtual desktop bounds: %s [%dx%d]", bounds, int(bounds.Width()), int(bounds.Height()))

	// Persist everything children need before the first spawn.
	if err := sess.SaveMonitors(captured); err != nil {
		return err
	}
	if err := sess.SaveBounds(bounds); err != nil {
		return err
	}
	sess.Channel().Reset()
	log.Printf("Saved session metadata to %s", sess.Dir)

	targets, err := o.targets(captured, only)
	if err != nil {
		return err
	}

	children := o.spawn(targets)
	o.wait(children)

	st := sess.Channel().Read()
	if rect, ok := st.Rect(); ok {
		log.Printf("Session finished with selection %s", rect)
	} else {
		log.Printf("Session finished with no selection")
	}

	if o.Config.KeepSessionFiles {
		log.Printf("Session files preserved in %s", sess.Dir)
	} else if err := sess.Cleanup(); err != nil {
		log.Printf("Failed to clean up session dir: %v", err)
	}
	return nil
}

func (o *Orchestrator) targets(captured []monitor.Display, only int) ([]int, error) {
	if only == AllDisplays {
		targets := make([]int, len(captured))
		for i, d := range captured {
			targets[i] = d.Index
		}
		return targets, nil
	}
	for _, d := range captured {
		if d.Index == only {
			log.Printf("Overlay restricted to display %d", only)
			return []int{only}, nil
		}
	}
	return nil, fmt.Errorf("target display %d was not captured", only)
}

// spawn launches one child per target. A spawn failure is logged per
// display and does not abort the remaining launches.
func (o *Orchestrator) spawn(targets []int) []child {
	exePath := o.ExePath
	if exePath == "" {
		p, err := os.Executable()
		if err != nil {
			log.Printf("Cannot determine own executable path: %v", err)
			return nil
		}
		exePath = p
	}

	var children []child
	for _, index := range targets {
		log.Printf("Launching overlay child for display %d", index)
		cmd := exec.Command(exePath, "--monitor", strconv.Itoa(index))
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			log.Printf("Failed to spawn child for display %d: %v", index, err)
			continue
		}
		children = append(children, child{index: index, cmd: cmd})
	}
	log.Printf("Launched %d overlay child process(es)", len(children))
	return children
}

// wait blocks until every child exits, recording each exit status. A
// non-zero child exit is not an error for the session.
func (o *Orchestrator) wait(children []child) {
	for _, c := range children {
		if err := c.cmd.Wait(); err != nil {
			log.Printf("Child for display %d exited with error: %v", c.index, err)
		} else {
			log.Printf("Child for display %d exited successfully", c.index)
		}
	}
}
