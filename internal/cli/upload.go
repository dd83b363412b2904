package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/mediavault/internal/ingest"
	"github.com/dmitrijs2005/mediavault/internal/metrics"
)

// Upload starts a batch from local paths. Completion is reported in the
// background; "wait" blocks for it.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: upload <path>...")
	}

	files := make([]ingest.Source, 0, len(args))
	var errs []error
	for _, p := range args {
		src, err := ingest.LocalFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, src)
	}
	if len(files) == 0 {
		return errors.Join(errs...)
	}
	for _, err := range errs {
		a.printf("Skipping: %v\n", err)
	}

	batch, err := a.svc.Upload(ctx, files)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.batch = batch
	a.mu.Unlock()

	a.printf("Uploading %d file(s)...\n", batch.Size())
	go func() {
		<-batch.Done()
		res, _ := batch.Result()
		a.printf("\n%s\n", summary(res))
	}()
	return nil
}

func (a *App) Wait(ctx context.Context, _ []string) error {
	a.mu.Lock()
	batch := a.batch
	a.mu.Unlock()

	if batch == nil {
		a.printf("No upload started.\n")
		return nil
	}
	if _, done := batch.Result(); done {
		a.printf("Upload already finished.\n")
		return nil
	}
	res, err := batch.Wait(ctx)
	if err != nil {
		return err
	}
	a.printf("%s\n", summary(res))
	return nil
}

func summary(res ingest.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Upload finished: %d added", len(res.Items))
	if n := res.FailureCount(); n > 0 {
		fmt.Fprintf(&b, ", %d failed", n)
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "\n  %s: %v", f.Name, f.Err)
		}
	}
	return b.String()
}

func (a *App) Status(_ context.Context, _ []string) error {
	st := a.svc.Status()
	a.printf("Items:      %d (%d visible)\n", st.Items, st.Visible)
	a.printf("Collection: %s\n", st.Collection)
	if st.Search != "" {
		a.printf("Search:     %q\n", st.Search)
	}
	if st.Viewing != "" {
		a.printf("Viewing:    %s\n", st.Viewing)
	}
	if st.Uploading {
		a.printf("Upload:     in progress\n")
	}
	if st.Wallpaper != nil {
		a.printf("Wallpaper:  %s %s\n", st.Wallpaper.Type, st.Wallpaper.URL)
	} else {
		a.printf("Wallpaper:  none\n")
	}
	return nil
}

func (a *App) Stats(_ context.Context, _ []string) error {
	samples, err := metrics.Snapshot()
	if err != nil {
		return err
	}
	for _, s := range samples {
		name := s.Name
		if len(s.Labels) > 0 {
			pairs := make([]string, 0, len(s.Labels))
			for k, v := range s.Labels {
				pairs = append(pairs, k+"="+v)
			}
			sort.Strings(pairs)
			name += "{" + strings.Join(pairs, ",") + "}"
		}
		a.printf("%-48s %s\n", name, humanize.Comma(int64(s.Value)))
	}
	return nil
}
