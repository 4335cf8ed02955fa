package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Reveal(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Copy(ctx context.Context, id string) error
	Generate(ctx context.Context, args []string) error
	Strength(ctx context.Context) error
}

const helpText = "Available commands: (l)ist, show <id>, reveal <id>, add, edit <id>, delete <id>, copy <id>, generate [length] [classes], strength, exit"

// runREPL reads commands line by line from in, dispatches them to a and
// writes prompts and messages to out. It returns on end of input or on
// "exit"/"quit". Command errors are reported and the loop goes on.
func runREPL(ctx context.Context, a execIface, in *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(out, "gv> ")

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "show", "reveal", "edit", "delete", "copy":
			if len(args) != 1 {
				fmt.Fprintf(out, "Usage: %s <id>\n", cmd)
				continue
			}
			cmdErr = dispatchByID(ctx, a, cmd, args[0])

		case "add":
			cmdErr = a.Add(ctx)

		case "generate":
			cmdErr = a.Generate(ctx, args)

		case "strength":
			cmdErr = a.Strength(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
	}
}

func dispatchByID(ctx context.Context, a execIface, cmd, id string) error {
	switch cmd {
	case "show":
		return a.Show(ctx, id)
	case "reveal":
		return a.Reveal(ctx, id)
	case "edit":
		return a.Edit(ctx, id)
	case "delete":
		return a.Delete(ctx, id)
	default:
		return a.Copy(ctx, id)
	}
}
