package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/liftstack/liftlog/internal/storage"
)

type fakeRecorder struct {
	inputs []storage.ExecutionInput
	err    error
}

func (f *fakeRecorder) RecordExecution(_ context.Context, in storage.ExecutionInput) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.inputs = append(f.inputs, in)
	return uuid.New(), nil
}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestImportRecordsExecutions verifies a directory of CSV files is imported
// in name order with accurate stats.
func TestImportRecordsExecutions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-03.csv", sampleCSV)
	writeFile(t, dir, "notes.txt", "ignore me")

	rec := &fakeRecorder{}
	imp := New(rec, nil, 1, discardLog(), false)

	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesProcessed != 1 || stats.FilesErrored != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ExecutionsInserted != 3 || stats.PhasesInserted != 5 {
		t.Errorf("inserted = %d executions, %d phases, want 3 and 5",
			stats.ExecutionsInserted, stats.PhasesInserted)
	}
	if len(rec.inputs) != 3 {
		t.Fatalf("recorder saw %d executions, want 3", len(rec.inputs))
	}
	if rec.inputs[0].PerformedAt == nil {
		t.Error("imported execution lost its historical date")
	}
}

// TestImportStateSkipsFinishedFiles verifies a second run over the same
// directory skips files the state database already knows.
func TestImportStateSkipsFinishedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-03.csv", sampleCSV)

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	rec := &fakeRecorder{}
	imp := New(rec, state, 1, discardLog(), false)
	if _, err := imp.Import(context.Background(), dir); err != nil {
		t.Fatal(err)
	}

	imp2 := New(rec, state, 1, discardLog(), false)
	stats, err := imp2.Import(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesSkipped != 1 || stats.FilesProcessed != 0 {
		t.Errorf("second run stats = %+v, want 1 skipped", stats)
	}
	if len(rec.inputs) != 3 {
		t.Errorf("recorder saw %d executions after rerun, want 3", len(rec.inputs))
	}
}

// TestImportChangedFileReimported verifies a file with new content is not
// skipped even though its name is known.
func TestImportChangedFileReimported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-03.csv", sampleCSV)

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	rec := &fakeRecorder{}
	if _, err := New(rec, state, 1, discardLog(), false).Import(context.Background(), dir); err != nil {
		t.Fatal(err)
	}

	writeFile(t, dir, "2026-03.csv", sampleCSV+"2026-03-06,3,2,105,1,8,105,120\n")
	stats, err := New(rec, state, 1, discardLog(), false).Import(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesProcessed != 1 {
		t.Errorf("changed file not reprocessed: %+v", stats)
	}
}

// TestImportDryRun verifies dry-run counts without writing.
func TestImportDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-03.csv", sampleCSV)

	rec := &fakeRecorder{}
	stats, err := New(rec, nil, 1, discardLog(), true).Import(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.ExecutionsInserted != 3 {
		t.Errorf("dry run counted %d executions, want 3", stats.ExecutionsInserted)
	}
	if len(rec.inputs) != 0 {
		t.Errorf("dry run wrote %d executions", len(rec.inputs))
	}
}

// TestImportBadFileContinues verifies one broken file does not abort the
// rest of the directory.
func TestImportBadFileContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a-broken.csv", "not,a,set,log\n")
	writeFile(t, dir, "b-good.csv", sampleCSV)

	rec := &fakeRecorder{}
	stats, err := New(rec, nil, 1, discardLog(), false).Import(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesErrored != 1 || stats.FilesProcessed != 1 {
		t.Errorf("stats = %+v, want 1 errored and 1 processed", stats)
	}
	if len(rec.inputs) != 3 {
		t.Errorf("recorder saw %d executions, want 3", len(rec.inputs))
	}
}
