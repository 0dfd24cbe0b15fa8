package ops

import (
	"archive/tar"
	"compress/gzip"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hedging-my-bets/myTaskLists/internal/pet"
	"github.com/hedging-my-bets/myTaskLists/internal/state"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
)

func TestBackupRestore_RoundTrip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}

	files := map[string]string{
		"appstate.json":     `{"tasks":[],"petState":{"xp":42,"stageIndex":2}}`,
		"widget_state.json": `{"todayTasks":[],"currentIndex":0}`,
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(src, rel), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	if err := Backup(src, archive); err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("archive missing: %v", err)
	}

	restoreDir := filepath.Join(t.TempDir(), "restore")
	if err := Restore(archive, restoreDir); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	got := map[string]string{}
	err := filepath.WalkDir(restoreDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(restoreDir, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	if err != nil {
		t.Fatalf("walk restore dir: %v", err)
	}

	if !reflect.DeepEqual(files, got) {
		t.Fatalf("restored files mismatch:\nwant=%v\ngot=%v", files, got)
	}
}

func TestRestore_RejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bad.tar.gz")
	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "../escape.txt",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len("bad")),
	}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if _, err := tw.Write([]byte("bad")); err != nil {
		t.Fatalf("write body: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	if err := Restore(archive, filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatalf("expected restore to reject path traversal archive")
	}
}

func TestDrill_ReportsRestoredState(t *testing.T) {
	dataDir := t.TempDir()

	store, err := state.NewStore(dataDir, log.Default())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	st := state.Default("2025-03-04")
	st.Tasks = []task.Task{{ID: "2025-03-04-9", Title: "One", DueHour: 9, DayKey: "2025-03-04"}}
	st.PetState = pet.State{XP: 42, StageIndex: 2}
	if err := store.Save(st); err != nil {
		t.Fatalf("save state: %v", err)
	}

	report, err := Drill(dataDir, t.TempDir())
	if err != nil {
		t.Fatalf("drill failed: %v", err)
	}
	if report.Tasks != 1 {
		t.Fatalf("expected 1 task in report, got %d", report.Tasks)
	}
	if report.PetXP != 42 || report.StageIndex != 2 {
		t.Fatalf("unexpected pet in report: %+v", report)
	}
	if report.LastRolloverDate != "2025-03-04" {
		t.Fatalf("unexpected rollover date: %q", report.LastRolloverDate)
	}
}
