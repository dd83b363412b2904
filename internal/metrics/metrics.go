// Package metrics holds the process-wide prometheus collectors of the vault.
// They live in a private registry so the CLI can print them without an HTTP
// exporter.
package metrics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	FilterCacheHits = factory.NewCounter(prometheus.CounterOpts{
		Name: "mediavault_filter_cache_hits_total",
		Help: "Filtered views served from the LRU cache.",
	})
	FilterCacheMisses = factory.NewCounter(prometheus.CounterOpts{
		Name: "mediavault_filter_cache_misses_total",
		Help: "Filtered views computed from a repository snapshot.",
	})
	ItemsIngested = factory.NewCounter(prometheus.CounterOpts{
		Name: "mediavault_items_ingested_total",
		Help: "Media items added by upload batches.",
	})
	IngestFailures = factory.NewCounter(prometheus.CounterOpts{
		Name: "mediavault_ingest_failures_total",
		Help: "Files dropped from upload batches because they could not be stored.",
	})
	MetadataUpdates = factory.NewCounter(prometheus.CounterOpts{
		Name: "mediavault_metadata_updates_total",
		Help: "Successful media metadata edits.",
	})
	WallpaperSaves = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "mediavault_wallpaper_saves_total",
		Help: "Wallpaper writes to the settings store by outcome.",
	}, []string{"result"})
)

type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot returns every counter and gauge sample of Registry sorted by name.
func Snapshot() ([]Sample, error) {
	families, err := Registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			s := Sample{Name: mf.GetName(), Labels: map[string]string{}}
			for _, lp := range m.GetLabel() {
				s.Labels[lp.GetName()] = lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				s.Value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				s.Value = m.GetGauge().GetValue()
			default:
				continue
			}
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
