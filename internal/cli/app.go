package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/mediavault/internal/ingest"
	"github.com/dmitrijs2005/mediavault/internal/logging"
	"github.com/dmitrijs2005/mediavault/internal/services"
)

type App struct {
	svc    services.VaultService
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	prompt bool

	mu    sync.Mutex
	batch *ingest.Batch
}

// NewApp builds an App reading commands from in and writing to out.
func NewApp(svc services.VaultService, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		svc:    svc,
		log:    log,
		reader: bufio.NewReader(in),
		out:    &syncWriter{w: out},
	}
}

// WithPrompt enables the status prompt, normally when stdin is a terminal.
func (a *App) WithPrompt(on bool) *App {
	a.prompt = on
	return a
}

// Run blocks until the input ends, the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.printf("Media vault (type 'help' for commands)\n")
	runREPL(ctx, a, a.statusLine, a.reader, a.prompt)
}

func (a *App) statusLine() string {
	st := a.svc.Status()
	s := fmt.Sprintf("[%s", st.Collection)
	if st.Search != "" {
		s += fmt.Sprintf(" %q", st.Search)
	}
	s += fmt.Sprintf(" %d/%d", st.Visible, st.Items)
	if st.Viewing != "" {
		s += " viewing " + st.Viewing
	}
	if st.Uploading {
		s += " uploading"
	}
	return s + "]"
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) Help(_ context.Context, _ []string) error {
	a.printf(`Commands:
  list | ls                  show the current view
  collections                list collections
  collection <name>          filter by collection ("all" for everything)
  search [text]              filter by title or tag; no text clears
  show | open <id>           open an item in the viewer
  next | n, prev | p         step through the current view
  close                      close the viewer
  edit <id>                  edit title, collection and tags
  upload <path>...           upload files into "recent"
  wait                       wait for the running upload
  status                     show the vault state
  wallpaper set [id]         use an item (default: the open one) as wallpaper
  wallpaper show             show the wallpaper settings
  wallpaper fit cover|contain
  wallpaper opacity <0..1 | N%%>
  wallpaper blur <px>
  wallpaper brightness <factor>
  wallpaper muted on|off
  wallpaper loop on|off
  wallpaper clear            remove the wallpaper
  stats                      show counters
  exit | quit
`)
	return nil
}

// syncWriter serialises writes from the REPL and the upload notifier.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
