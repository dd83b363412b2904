package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL messages.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a recording stub.
type execIface interface {
	Help(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Collections(ctx context.Context, args []string) error
	Collection(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Next(ctx context.Context, args []string) error
	Prev(ctx context.Context, args []string) error
	CloseViewer(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Wait(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Wallpaper(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit". A
// command's error is printed and the loop carries on. With prompt set, the
// status line is printed before every read.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, prompt bool) {
	handlers := map[string]func(context.Context, []string) error{
		"help":        a.Help,
		"list":        a.List,
		"ls":          a.List,
		"collections": a.Collections,
		"collection":  a.Collection,
		"search":      a.Search,
		"show":        a.Show,
		"open":        a.Show,
		"next":        a.Next,
		"n":           a.Next,
		"prev":        a.Prev,
		"p":           a.Prev,
		"close":       a.CloseViewer,
		"edit":        a.Edit,
		"upload":      a.Upload,
		"wait":        a.Wait,
		"status":      a.Status,
		"wallpaper":   a.Wallpaper,
		"wp":          a.Wallpaper,
		"stats":       a.Stats,
	}

	for {
		if ctx.Err() != nil {
			return
		}
		if prompt {
			printlnFn(fmt.Sprintf("vault %s> ", statusFn()))
		}

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		h, ok := handlers[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd, "(type 'help')")
			continue
		}
		if err := h(ctx, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}
