package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/BrandSum/internal/common"
	"github.com/yildizm/BrandSum/internal/config"
	"github.com/yildizm/BrandSum/internal/history"
	"github.com/yildizm/BrandSum/internal/logger"
)

// recordSource is an opened listing plus the cleanup it needs
type recordSource struct {
	history.Source
	name    string
	cleanup func()
}

// openSource picks where records come from: an explicit file wins, then --db,
// then the configured history file when it exists, then the configured database
func openSource(file string) (*recordSource, error) {
	cfg := GetGlobalConfig()
	log := GetLogger("source")

	if file != "" {
		if err := validateFilePath(file); err != nil {
			return nil, fmt.Errorf("invalid file path: %w", err)
		}
		log.Debug("reading records from file %s", file)
		return &recordSource{Source: history.NewFileSource(filepath.Clean(file)), name: file, cleanup: func() {}}, nil
	}

	if dbPath == "" {
		if historyFile := cfg.Source.HistoryFile; historyFile != "" {
			if _, err := os.Stat(historyFile); err == nil {
				log.Debug("reading records from configured history file %s", historyFile)
				return &recordSource{Source: history.NewFileSource(historyFile), name: historyFile, cleanup: func() {}}, nil
			}
		}
	}

	store, path, err := openStore()
	if err != nil {
		return nil, err
	}
	log.Debug("reading records from store %s", path)

	return &recordSource{
		Source:  store,
		name:    path,
		cleanup: func() { closeStore(store) },
	}, nil
}

// openStore opens the history store named by --db or the configuration
func openStore() (*history.Store, string, error) {
	cfg := GetGlobalConfig()

	path := dbPath
	if path == "" {
		path = cfg.Source.Database
	}
	path = config.ExpandPath(path)

	store, err := history.OpenStore(path,
		history.WithRetention(cfg.Source.Retention),
		history.WithStoreLogger(GetLogger("history")),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open history store %s: %w", path, err)
	}
	return store, path, nil
}

func closeStore(store *history.Store) {
	if err := store.Close(); err != nil {
		GetLogger("history").Warn("failed to close history store: %v", err)
	}
}

// loadRecords collects one snapshot of records, newest first
func loadRecords(ctx context.Context, file string) ([]*common.AnalysisRecord, error) {
	src, err := openSource(file)
	if err != nil {
		return nil, err
	}
	defer src.cleanup()

	cfg := GetGlobalConfig()
	log := GetLogger("source")

	start := time.Now()
	records, err := history.Collect(ctx, src, owner, cfg.Source.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load records from %s: %w", src.name, err)
	}
	log.Stage("collect", start, logger.Records(len(records)))

	if malformed := common.CountMalformed(records); malformed > 0 {
		log.WarnWithFields("malformed records found; they are counted in timing averages only",
			[]logger.Field{logger.Count(malformed), logger.F("source", src.name)})
	}
	return records, nil
}

// selectRecord finds a record by id, or by its 1-based position in the snapshot
func selectRecord(records []*common.AnalysisRecord, selector string) (*common.AnalysisRecord, error) {
	for _, r := range records {
		if r != nil && r.ID != "" && r.ID == selector {
			return r, nil
		}
	}

	index, err := strconv.Atoi(strings.TrimPrefix(selector, "#"))
	if err == nil {
		if index < 1 || index > len(records) {
			return nil, fmt.Errorf("record index %d out of range (1-%d)", index, len(records))
		}
		return records[index-1], nil
	}

	return nil, fmt.Errorf("%w: %s", history.ErrNotFound, selector)
}

// buildEngine configures an engine from the loaded configuration. rankBy and
// top override the configured ranking when set.
func buildEngine(rankBy string, top int) (*analyzer.AnalyzerEngine, error) {
	cfg := GetGlobalConfig()

	mode, err := analyzer.ParseTimelineMode(cfg.Analysis.TimelineMode)
	if err != nil {
		return nil, err
	}
	source, err := analyzer.ParseConfidenceSource(cfg.Analysis.ConfidenceSources)
	if err != nil {
		return nil, err
	}

	if rankBy == "" {
		rankBy = cfg.Analysis.RankBy
	}
	if top < 0 {
		top = cfg.Output.Top
	}

	return analyzer.NewEngine(
		analyzer.WithTimelineOptions(analyzer.TimelineOptions{
			Mode:              mode,
			BucketSeconds:     cfg.Analysis.BucketSeconds,
			DefaultConfidence: cfg.Analysis.DefaultConfidence,
		}),
		analyzer.WithConfidenceSource(source),
		analyzer.WithRanking(rankBy, top),
		analyzer.WithLogger(GetLogger("analyzer")),
	), nil
}

// analysisContext bounds a run by the configured timeout; zero means no limit
func analysisContext() (context.Context, context.CancelFunc) {
	timeout := GetGlobalConfig().Analysis.Timeout
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}
