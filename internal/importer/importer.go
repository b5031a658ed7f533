// Package importer loads historical set-log CSV exports into the database.
// Imports are resumable: a SQLite state file remembers which files were
// already loaded, keyed by path, size, and content hash.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/liftstack/liftlog/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	ExecutionsInserted int
	PhasesInserted     int
}

// Recorder is the slice of the storage layer the importer writes through.
type Recorder interface {
	RecordExecution(ctx context.Context, in storage.ExecutionInput) (uuid.UUID, error)
}

// Importer reads set-log CSV files from an export directory and records the
// executions they contain.
type Importer struct {
	db     Recorder
	state  *StateDB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed unconditionally.
func New(db Recorder, state *StateDB, userID int, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, userID: userID, log: log, dryRun: dryRun}
}

// Import processes all .csv files under the given export directory in name
// order. A file that fails to parse or record is counted and logged, and the
// import moves on to the next file.
func (imp *Importer) Import(ctx context.Context, exportDir string) (*Stats, error) {
	entries, err := os.ReadDir(exportDir)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", exportDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return &imp.stats, err
		}
		if err := imp.importFile(ctx, exportDir, name); err != nil {
			imp.stats.FilesErrored++
			imp.log.Error("import file failed", "file", name, "error", err)
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, dir, name string) error {
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	if imp.state != nil {
		done, err := imp.state.IsImported(name, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking state: %w", err)
		}
		if done {
			imp.stats.FilesSkipped++
			imp.log.Info("skipping file (already imported)", "file", name)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	executions, err := Parse(f, imp.userID)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	if imp.dryRun {
		imp.stats.FilesProcessed++
		for _, in := range executions {
			imp.stats.ExecutionsInserted++
			imp.stats.PhasesInserted += len(in.Phases)
		}
		return nil
	}

	for _, in := range executions {
		if _, err := imp.db.RecordExecution(ctx, in); err != nil {
			return fmt.Errorf("recording execution (exercise %d): %w", in.ExerciseID, err)
		}
		imp.stats.ExecutionsInserted++
		imp.stats.PhasesInserted += len(in.Phases)
	}

	if imp.state != nil {
		if err := imp.state.MarkImported(name, info.Size(), hash); err != nil {
			return fmt.Errorf("marking imported: %w", err)
		}
	}

	imp.stats.FilesProcessed++
	imp.log.Info("imported file", "file", name, "executions", len(executions))
	return nil
}
