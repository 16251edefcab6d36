package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/slate/internal/ipc"
)

func printSnapshotUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  slate snapshot save <name>")
	fmt.Fprintln(w, "  slate snapshot load <name>")
	fmt.Fprintln(w, "  slate snapshot list")
	fmt.Fprintln(w, "  slate snapshot delete <name>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'slate snapshot <command> --help' for command-specific options.")
}

func runSnapshot(args []string) int {
	if len(args) == 0 {
		printSnapshotUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printSnapshotUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "save":
		return runSnapshotName(args[1:], "save",
			"Save the current arrangement under a name.", client.SaveSnapshot)
	case "load":
		return runSnapshotName(args[1:], "load",
			"Replace the board with a saved arrangement.", client.LoadSnapshot)
	case "delete":
		return runSnapshotName(args[1:], "delete",
			"Delete a saved arrangement.", client.DeleteSnapshot)
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: slate snapshot list")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "snapshot list takes no arguments")
			return 2
		}

		names, err := client.ListSnapshots()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown snapshot command: %s\n\n", args[0])
		printSnapshotUsage(os.Stderr)
		return 2
	}
}

func runSnapshotName(args []string, name, doc string, op func(string) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slate snapshot %s <name>\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, doc)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "snapshot %s requires <name>\n", name)
		return 2
	}

	if err := op(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
