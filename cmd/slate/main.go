package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/slate/internal/board"
	"github.com/1broseidon/slate/internal/config"
	"github.com/1broseidon/slate/internal/daemon"
	"github.com/1broseidon/slate/internal/engine"
	"github.com/1broseidon/slate/internal/geom"
	"github.com/1broseidon/slate/internal/hotkeys"
	"github.com/1broseidon/slate/internal/ipc"
	"github.com/1broseidon/slate/internal/snapshot"
	"github.com/1broseidon/slate/internal/tui"
	"github.com/1broseidon/slate/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "serve":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: slate serve")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "serve takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: slate serve")
			os.Exit(2)
		}
		runServe()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "component":
		os.Exit(runComponent(os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "align":
		os.Exit(runAlign(os.Args[2:]))
	case "distribute":
		os.Exit(runDistribute(os.Args[2:]))
	case "place":
		os.Exit(runPlace(os.Args[2:]))
	case "snapshot":
		os.Exit(runSnapshot(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slate <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve               Start the slate daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Ask the daemon to reload its configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  component list      List placed components")
	fmt.Fprintln(w, "  component add       Add a component to the board")
	fmt.Fprintln(w, "  component remove    Remove a component")
	fmt.Fprintln(w, "  component lock      Lock a component in place")
	fmt.Fprintln(w, "  component unlock    Unlock a component")
	fmt.Fprintln(w, "  component hide      Hide a component")
	fmt.Fprintln(w, "  component show      Show a hidden component")
	fmt.Fprintln(w, "  component front     Bring a component to the front")
	fmt.Fprintln(w, "  component back      Send a component to the back")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  move                Move a component to a position")
	fmt.Fprintln(w, "  align               Align components to a shared edge")
	fmt.Fprintln(w, "  distribute          Distribute components evenly along an axis")
	fmt.Fprintln(w, "  place               Find a free position for a given size")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  snapshot save       Save the current arrangement")
	fmt.Fprintln(w, "  snapshot load       Restore a saved arrangement")
	fmt.Fprintln(w, "  snapshot list       List saved arrangements")
	fmt.Fprintln(w, "  snapshot delete     Delete a saved arrangement")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive board view")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'slate <command> --help' for command-specific options.")
}

func runServe() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Logging.Enabled && cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	log.Printf("Configuration loaded (surface: %.0fx%.0f, grid: %.0f)",
		cfg.Surface.Width, cfg.Surface.Height, cfg.GridSize)

	mgr, err := engine.New(cfg.Constraint())
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}
	mgr.ConfigurePlacement(cfg.Placement.Step, cfg.Placement.Margin)

	store, err := snapshot.NewStore("")
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}

	// Components created over IPC or rebuilt from a snapshot have no
	// window behind them; a fixed-size handle is all the engine needs.
	handles := func(req ipc.AddPayload) (board.Handle, error) {
		return board.NewStaticHandle(geom.Size{Width: req.Width, Height: req.Height}), nil
	}
	restore := func(rec snapshot.Record) (board.Handle, error) {
		return board.NewStaticHandle(rec.Size), nil
	}

	reloadChan := make(chan struct{}, 1)
	srv, err := ipc.NewServer(mgr, store, handles, restore, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer srv.Stop()

	// X11 is optional: without a display the daemon still serves IPC
	// clients against the configured surface.
	var host *x11.Host
	conn, err := x11.NewConnection()
	if err != nil {
		log.Printf("No X11 display, running headless: %v", err)
	} else {
		defer conn.Close()
		host = x11.NewHost(conn, srv, cfg.Adopt.Classes, "")
		if adopted, err := host.AdoptAll(); err != nil {
			log.Printf("Window adoption failed: %v", err)
		} else if adopted > 0 {
			log.Printf("Adopted %d windows", adopted)
		}

		if err := host.BindHotkeys(hotkeys.NewHandler(conn.XUtil, conn.Root)); err != nil {
			log.Printf("Warning: failed to register hotkeys: %v", err)
		}

		reconciler := daemon.NewReconciler(daemon.Config{
			Interval: 10 * time.Second,
			Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			})),
		}, host)
		reconcilerCtx, cancelReconciler := context.WithCancel(context.Background())
		defer cancelReconciler()
		go reconciler.Run(reconcilerCtx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					reloadConfig(srv)
				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down slate daemon...")
					srv.Stop()
					os.Exit(0)
				}
			case <-reloadChan:
				reloadConfig(srv)
			}
		}
	}()

	log.Println("slate daemon started successfully")
	if host != nil {
		host.Run()
	} else {
		select {}
	}
}

// reloadConfig re-reads the config file and swaps the constraint
// pipeline under the daemon's lock. Placed components keep their
// current positions; the new rules apply from the next operation on.
func reloadConfig(srv *ipc.Server) {
	newCfg, err := config.Load()
	if err != nil {
		log.Printf("Config reload failed: %v", err)
		return
	}
	err = srv.WithManager(func(mgr *engine.Manager) error {
		if err := mgr.Reconfigure(newCfg.Constraint()); err != nil {
			return err
		}
		mgr.ConfigurePlacement(newCfg.Placement.Step, newCfg.Placement.Margin)
		return nil
	})
	if err != nil {
		log.Printf("Config reload failed: %v", err)
		return
	}
	log.Println("Config reloaded successfully")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: slate status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running:  %v\n", status.DaemonRunning)
	fmt.Printf("components:      %d\n", status.ComponentCount)
	fmt.Printf("surface:         %.0fx%.0f\n", status.SurfaceWidth, status.SurfaceHeight)
	fmt.Printf("grid_size:       %.0f\n", status.GridSize)
	fmt.Printf("snap_to_grid:    %v\n", status.SnapToGrid)
	fmt.Printf("collisions:      %v\n", status.Collisions)
	if status.DraggingID != "" {
		fmt.Printf("dragging:        %s\n", status.DraggingID)
	}
	fmt.Printf("uptime_seconds:  %d\n", status.UptimeSeconds)
	return 0
}

func runMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: slate move <id> <x> <y>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move a component. The daemon snaps, clamps and resolves")
		fmt.Fprintln(os.Stderr, "collisions, then reports where the component settled.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "move requires <id> <x> <y>")
		fs.Usage()
		return 2
	}

	x, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid x %q\n", fs.Arg(1))
		return 2
	}
	y, err := strconv.ParseFloat(fs.Arg(2), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid y %q\n", fs.Arg(2))
		return 2
	}

	client := ipc.NewClient()
	settled, err := client.MoveComponent(fs.Arg(0), x, y)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("moved to (%.0f, %.0f)\n", settled.X, settled.Y)
	return 0
}

func runAlign(args []string) int {
	fs := flag.NewFlagSet("align", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: slate align <edge> <id> <id> [id...]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Align two or more components to a shared edge.")
		fmt.Fprintln(os.Stderr, "Edges: left, right, top, bottom, center-horizontal, center-vertical")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "align requires <edge> and at least two ids")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.AlignComponents(fs.Args()[1:], fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDistribute(args []string) int {
	fs := flag.NewFlagSet("distribute", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: slate distribute <axis> <id> <id> <id> [id...]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Spread three or more components evenly between the two")
		fmt.Fprintln(os.Stderr, "outermost ones. Axes: horizontal, vertical")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() < 4 {
		fmt.Fprintln(os.Stderr, "distribute requires <axis> and at least three ids")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.DistributeComponents(fs.Args()[1:], fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runPlace(args []string) int {
	fs := flag.NewFlagSet("place", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: slate place <width> <height>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Find a free position for a component of the given size")
		fmt.Fprintln(os.Stderr, "without placing anything.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "place requires <width> <height>")
		fs.Usage()
		return 2
	}

	width, err := strconv.ParseFloat(fs.Arg(0), 64)
	if err != nil || width <= 0 {
		fmt.Fprintf(os.Stderr, "invalid width %q\n", fs.Arg(0))
		return 2
	}
	height, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil || height <= 0 {
		fmt.Fprintf(os.Stderr, "invalid height %q\n", fs.Arg(1))
		return 2
	}

	client := ipc.NewClient()
	placement, err := client.FindPlacement(width, height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("(%.0f, %.0f)\n", placement.X, placement.Y)
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: slate reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the running daemon to re-read its configuration.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  slate config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  slate config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/slate/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/slate/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		var err error
		switch {
		case *printDefaults:
			cfg = config.Default()
		case *path == "":
			cfg, err = config.Load()
		default:
			cfg, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: slate tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive board view talking to the running daemon.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  tab/j, shift+tab/k  Cycle selection")
		fmt.Fprintln(os.Stderr, "  arrows              Nudge selected component")
		fmt.Fprintln(os.Stderr, "  a                   Add a component")
		fmt.Fprintln(os.Stderr, "  d                   Remove selected component")
		fmt.Fprintln(os.Stderr, "  l                   Toggle lock")
		fmt.Fprintln(os.Stderr, "  v                   Toggle visibility")
		fmt.Fprintln(os.Stderr, "  f/b                 Bring to front / send to back")
		fmt.Fprintln(os.Stderr, "  s                   Save snapshot")
		fmt.Fprintln(os.Stderr, "  o                   Load snapshot")
		fmt.Fprintln(os.Stderr, "  r                   Refresh")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C           Quit")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "tui takes no arguments")
		return 2
	}

	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
