package ingest

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/japandatascience/timeline-mapping/lib/stream"
	"github.com/japandatascience/timeline-mapping/services/transit/panel"
	"github.com/japandatascience/timeline-mapping/services/transit/routecache"
	"go.uber.org/zap"
)

const (
	// Scrapers write captures in several chunks; a path is ingested once it has been quiet this long.
	defaultSettleDelay = 250 * time.Millisecond
)

// Ingester turns capture files into routes.
// Each route is cached against the search that produced it and published on the source.
type Ingester struct {
	logger *zap.Logger
	parser *panel.Parser
	cache  *routecache.Cache
	source *stream.Source

	bucket time.Duration
	settle time.Duration
}

// NewIngester creates a new ingester. Arrival times are rounded down to the bucket when
// fingerprinting a capture.
func NewIngester(logger *zap.Logger, parser *panel.Parser, cache *routecache.Cache, source *stream.Source, bucket time.Duration) *Ingester {
	return &Ingester{
		logger: logger,
		parser: parser,
		cache:  cache,
		source: source,
		bucket: bucket,
		settle: defaultSettleDelay,
	}
}

// Ingest loads the capture at path and returns its route.
// A route already cached for the same search is returned without parsing the capture again.
// Captures missing an origin or destination cannot be told apart and are never cached.
func (i *Ingester) Ingest(ctx context.Context, path string) (*panel.Route, error) {
	capture, err := LoadCapture(path)
	if err != nil {
		i.logger.Info("unable to load capture",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	fp := routecache.NewFingerprint(capture.Origin, capture.Destination, capture.Arrival(), i.bucket)
	cacheable := len(fp.Origin) > 0 && len(fp.Destination) > 0

	if !cacheable {
		i.logger.Debug("capture has no origin or destination, not caching",
			zap.String("path", path),
		)
	} else if route, ok := i.cache.Lookup(ctx, fp); ok {
		i.logger.Debug("capture served from cache",
			zap.String("path", path),
			zap.String("key", fp.Key()),
		)
		i.source.SendMessage(route)
		return route, nil
	}

	text, err := capture.Text()
	if err != nil {
		i.logger.Info("unable to read panel text",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	res, err := i.parser.Parse(text)
	if err != nil {
		i.logger.Info("error parsing capture",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if cacheable {
		if _, err := i.cache.Insert(ctx, fp, res.Route); err != nil {
			// The route is still usable; it will just be parsed again next time.
			i.logger.Warn("unable to cache route",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}

	i.logger.Info("ingested capture",
		zap.String("path", path),
		zap.String("origin", fp.Origin),
		zap.String("destination", fp.Destination),
		zap.String("departure", res.Departure.String()),
		zap.String("arrival", res.Arrival.String()),
		zap.Int("total_time", res.Route.TotalMinutes),
	)
	i.source.SendMessage(res.Route)
	return res.Route, nil
}

// IngestDir ingests every capture already present in the directory.
// Captures that fail are logged and skipped; the number ingested is returned.
func (i *Ingester) IngestDir(ctx context.Context, dir string) (int, error) {
	dirEntries, err := ioutil.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !IsCapturePath(dirEntry.Name()) {
			continue
		}
		if _, err := i.Ingest(ctx, filepath.Join(dir, dirEntry.Name())); err == nil {
			count++
		}
	}
	return count, nil
}

// Watch ingests captures as they are written to the directory until the context is cancelled.
// A capture is ingested once per burst of writes, after the path has settled.
func (i *Ingester) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	i.logger.Info("watching for captures",
		zap.String("dir", dir),
	)

	return i.watchEvents(ctx, dir, watcher.Events, watcher.Errors)
}

type settledPath struct {
	path       string
	generation int
}

func (i *Ingester) watchEvents(ctx context.Context, dir string, events <-chan fsnotify.Event, errs <-chan error) error {
	// Each event stamps its path with a new generation; only the timer of the latest one ingests.
	pending := map[string]int{}
	generation := 0
	settled := make(chan settledPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !IsCapturePath(event.Name) {
				continue
			}

			generation++
			pending[event.Name] = generation
			sp := settledPath{
				path:       event.Name,
				generation: generation,
			}
			time.AfterFunc(i.settle, func() {
				select {
				case settled <- sp:
				case <-ctx.Done():
				}
			})
		case sp := <-settled:
			if pending[sp.path] != sp.generation {
				continue
			}
			delete(pending, sp.path)
			i.Ingest(ctx, sp.path)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			i.logger.Warn("error watching for captures",
				zap.String("dir", dir),
				zap.Error(err),
			)
		}
	}
}
