// Command delvemap hosts a Delve Map editing session. It restores the last
// map from storage, keeps an auto-save pipeline running, and exposes
// import/export subcommands for map and library JSON files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/talgya/delvemap/internal/autosave"
	"github.com/talgya/delvemap/internal/config"
	"github.com/talgya/delvemap/internal/sample"
	"github.com/talgya/delvemap/internal/state"
	"github.com/talgya/delvemap/internal/storage"
	"github.com/talgya/delvemap/internal/transfer"
)

const usage = `usage: delvemap [-config path] <command>

commands:
  run             host an editing session until interrupted (default)
  info            print the current map summary
  list            print the saved maps collection
  export <dir>            export the current map to a JSON file
  export-library <dir>    export the card library to a JSON file
  import <file>           import a map file and make it current
  import-library <file>   merge a library file into the card library
  delete <map-id>         remove a map from the saved collection
`

func main() {
	configPath := flag.String("config", "delvemap.yaml", "config file path")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel.Slog(),
	}))
	slog.SetDefault(logger)

	cmd := "run"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	// ── Storage ───────────────────────────────────────────────────────
	if dir := filepath.Dir(cfg.Storage.Path); dir != "." && cfg.Storage.Path != ":memory:" {
		os.MkdirAll(dir, 0755)
	}
	db, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Storage.Path)

	st := restore(db)

	switch cmd {
	case "run":
		runSession(cfg, db, st)
	case "info":
		printInfo(st)
	case "list":
		printList(db)
	case "export":
		exportMap(db, st, flag.Arg(1))
	case "export-library":
		exportLibrary(st, flag.Arg(1))
	case "import":
		importMap(db, st, flag.Arg(1))
	case "import-library":
		importLibrary(db, st, flag.Arg(1))
	case "delete":
		deleteMap(db, flag.Arg(1))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
}

// restore rebuilds editor state from storage. A crash-recovery auto-save
// slot wins over the regular current-map slot when it is newer. When the
// database is completely empty a sample map is seeded so a first session
// has something to edit.
func restore(db storage.Store) *state.Store {
	lib := storage.LoadLibrary(db)
	current := storage.LoadCurrentMap(db)
	recovered := storage.LoadAutoSave(db)

	if recovered != nil && (current == nil || recovered.UpdatedAt.After(current.UpdatedAt)) {
		slog.Info("recovering from auto-save",
			"map", recovered.Name,
			"saved_at", recovered.UpdatedAt.Format(time.RFC3339),
		)
		current = recovered
	}

	if current == nil && len(storage.LoadMaps(db)) == 0 {
		m := sample.Map(42, time.Now)
		slog.Info("seeding sample map", "name", m.Name,
			"landmarks", len(m.Landmarks), "delves", len(m.Delves))
		current = &m
	}

	if current == nil {
		s := state.NewState()
		s.Library = lib
		return state.NewStore(s)
	}
	return state.NewStore(state.FromMap(*current, lib))
}

// runSession keeps the auto-save pipeline alive until SIGINT/SIGTERM,
// then flushes any unsaved work.
func runSession(cfg config.Config, db storage.Store, st *state.Store) {
	pipe := autosave.New(st, db, autosave.WithDebounce(cfg.AutoSave.Debounce))
	pipe.Start()
	pipe.MarkClean()
	defer pipe.Stop()

	s := st.State()
	if s.CurrentMap != nil {
		slog.Info("session open",
			"map", s.CurrentMap.Name,
			"landmarks", len(s.Landmarks),
			"delves", len(s.Delves),
			"placed", len(s.PlacedCards),
			"hex_size", cfg.Grid.HexSize,
			"placement", cfg.Grid.Placement,
		)
	} else {
		slog.Info("session open", "map", "(none)")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	if pipe.HasUnsavedChanges() {
		if err := pipe.SaveNow(); err != nil {
			slog.Error("final save failed", "error", err)
			os.Exit(1)
		}
		slog.Info("final save complete")
	}
}

func printInfo(st *state.Store) {
	s := st.State()
	if s.CurrentMap == nil {
		fmt.Println("no current map")
		return
	}
	fmt.Printf("%s (%s)\n", s.CurrentMap.Name, s.CurrentMap.ID)
	fmt.Printf("  landmarks:   %d\n", len(s.Landmarks))
	fmt.Printf("  delves:      %d\n", len(s.Delves))
	fmt.Printf("  placed:      %d\n", len(s.PlacedCards))
	fmt.Printf("  connections: %d\n", len(s.Connections))
	fmt.Printf("  library:     %d landmarks, %d delves, %d monsters\n",
		len(s.Library.Landmarks), len(s.Library.Delves), len(s.Library.Monsters))
	fmt.Printf("  updated:     %s\n", s.CurrentMap.UpdatedAt.Format(time.RFC3339))
}

func printList(db storage.Store) {
	maps := storage.LoadMaps(db)
	if len(maps) == 0 {
		fmt.Println("no saved maps")
		return
	}
	for _, m := range maps {
		fmt.Printf("%-24s %-32s %d landmarks, %d delves (updated %s)\n",
			m.ID, m.Name, len(m.Landmarks), len(m.Delves),
			m.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func exportMap(db storage.Store, st *state.Store, dir string) {
	if dir == "" {
		fatal("export: destination directory required")
	}
	s := st.State()
	m, ok := s.ToMap()
	if !ok {
		fatal("export: no current map")
	}
	m.UpdatedAt = time.Now()
	path, err := transfer.WriteMapFile(dir, m, time.Now)
	if err != nil {
		fatal("export: %v", err)
	}
	if err := storage.UpsertMap(db, m); err != nil {
		slog.Warn("failed to update saved maps", "error", err)
	}
	fmt.Println(path)
}

func exportLibrary(st *state.Store, dir string) {
	if dir == "" {
		fatal("export-library: destination directory required")
	}
	path, err := transfer.WriteLibraryFile(dir, st.State().Library, time.Now)
	if err != nil {
		fatal("export-library: %v", err)
	}
	fmt.Println(path)
}

func importMap(db storage.Store, st *state.Store, path string) {
	if path == "" {
		fatal("import: source file required")
	}
	m, err := transfer.ReadMapFile(path)
	if err != nil {
		fatal("import: %v", err)
	}
	st.Dispatch(state.ImportMap{Map: m})
	if err := persistCurrent(db, st); err != nil {
		fatal("import: %v", err)
	}
	fmt.Printf("imported %q (%s)\n", m.Name, m.ID)
}

func importLibrary(db storage.Store, st *state.Store, path string) {
	if path == "" {
		fatal("import-library: source file required")
	}
	lib, err := transfer.ReadLibraryFile(path)
	if err != nil {
		fatal("import-library: %v", err)
	}
	st.Dispatch(state.ImportLibrary{Library: lib, Merge: true})
	merged := st.State().Library
	if err := storage.SaveLibrary(db, merged); err != nil {
		fatal("import-library: %v", err)
	}
	fmt.Printf("library now holds %d landmarks, %d delves, %d monsters\n",
		len(merged.Landmarks), len(merged.Delves), len(merged.Monsters))
}

func deleteMap(db storage.Store, id string) {
	if id == "" {
		fatal("delete: map id required")
	}
	if err := storage.DeleteMap(db, id); err != nil {
		fatal("delete: %v", err)
	}
	fmt.Printf("deleted %s\n", id)
}

// persistCurrent writes the current map to its storage slots without going
// through the debounced pipeline. Used by one-shot subcommands.
func persistCurrent(db storage.Store, st *state.Store) error {
	m, ok := st.State().ToMap()
	if !ok {
		return nil
	}
	if err := storage.SaveCurrentMap(db, m); err != nil {
		return err
	}
	return storage.UpsertMap(db, m)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
