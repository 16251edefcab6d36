package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/1broseidon/slate/internal/ipc"
)

func printComponentUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  slate component list [--json]")
	fmt.Fprintln(w, "  slate component add [--id ID] [--kind KIND] [--x N --y N | --auto] <width> <height>")
	fmt.Fprintln(w, "  slate component remove <id>")
	fmt.Fprintln(w, "  slate component lock <id>")
	fmt.Fprintln(w, "  slate component unlock <id>")
	fmt.Fprintln(w, "  slate component hide <id>")
	fmt.Fprintln(w, "  slate component show <id>")
	fmt.Fprintln(w, "  slate component front <id>")
	fmt.Fprintln(w, "  slate component back <id>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'slate component <command> --help' for command-specific options.")
}

func runComponent(args []string) int {
	if len(args) == 0 {
		printComponentUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printComponentUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		return runComponentList(client, args[1:])
	case "add":
		return runComponentAdd(client, args[1:])
	case "remove":
		return runComponentID(client, args[1:], "remove", client.RemoveComponent)
	case "lock":
		return runComponentID(client, args[1:], "lock", client.LockComponent)
	case "unlock":
		return runComponentID(client, args[1:], "unlock", client.UnlockComponent)
	case "hide":
		return runComponentID(client, args[1:], "hide", client.HideComponent)
	case "show":
		return runComponentID(client, args[1:], "show", client.ShowComponent)
	case "front":
		return runComponentID(client, args[1:], "front", client.BringToFront)
	case "back":
		return runComponentID(client, args[1:], "back", client.SendToBack)
	default:
		fmt.Fprintf(os.Stderr, "Unknown component command: %s\n\n", args[0])
		printComponentUsage(os.Stderr)
		return 2
	}
}

func runComponentList(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: slate component list [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List placed components in ascending stacking order.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output full component details as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "component list takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := client.ListComponents()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data.Components); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, c := range data.Components {
		fmt.Print(formatComponent(c))
	}
	return 0
}

func formatComponent(c ipc.ComponentInfo) string {
	flags := ""
	if c.Locked {
		flags += " locked"
	}
	if !c.Visible {
		flags += " hidden"
	}
	kind := ""
	if c.Kind != "" {
		kind = " " + c.Kind
	}
	return fmt.Sprintf("%s%s  (%.0f,%.0f) %.0fx%.0f z=%d%s\n",
		c.ID, kind, c.X, c.Y, c.Width, c.Height, c.Z, flags)
}

func runComponentAdd(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: slate component add [--id ID] [--kind KIND] [--x N --y N | --auto] <width> <height>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Add a component to the board. Without --id a fresh id is")
		fmt.Fprintln(os.Stderr, "generated; with --auto the daemon picks a free position.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	id := fs.String("id", "", "Component id (generated when omitted)")
	kind := fs.String("kind", "", "Host-defined component kind")
	x := fs.Float64("x", 0, "Initial x position")
	y := fs.Float64("y", 0, "Initial y position")
	auto := fs.Bool("auto", false, "Let the daemon pick a free position")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "component add requires <width> <height>")
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

	if *id == "" {
		*id = uuid.NewString()
	}

	c, err := client.AddComponent(ipc.AddPayload{
		ID:        *id,
		Kind:      *kind,
		X:         *x,
		Y:         *y,
		Width:     width,
		Height:    height,
		AutoPlace: *auto,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("added %s at (%.0f, %.0f)\n", c.ID, c.X, c.Y)
	return 0
}

// runComponentID handles the single-id subcommands, which differ only
// in the client call they make.
func runComponentID(client *ipc.Client, args []string, name string, op func(string) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slate component %s <id>\n", name)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "component %s requires <id>\n", name)
		return 2
	}

	if err := op(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
