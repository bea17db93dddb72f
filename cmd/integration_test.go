package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "wifiviz/internal/config"
	"wifiviz/internal/dataset"
	"wifiviz/internal/report"
)

// fourRoomData is a small dataset with distinct readings per room, rooms
// appearing in order 1..4.
var fourRoomData = strings.Join([]string{
	"-64\t-56\t-61\t-66\t-71\t-82\t-81\t1",
	"-68\t-57\t-61\t-65\t-71\t-85\t-85\t1",
	"-63\t-60\t-60\t-67\t-76\t-85\t-84\t1",
	"-55\t-62\t-55\t-63\t-66\t-76\t-80\t2",
	"-58\t-61\t-57\t-62\t-68\t-79\t-83\t2",
	"-57\t-64\t-52\t-64\t-65\t-77\t-79\t2",
	"-17\t-74\t-60\t-68\t-58\t-79\t-86\t3",
	"-20\t-71\t-62\t-66\t-59\t-82\t-84\t3",
	"-21\t-72\t-59\t-69\t-61\t-80\t-83\t3",
	"-43\t-55\t-51\t-52\t-49\t-71\t-72\t4",
	"-46\t-52\t-54\t-50\t-51\t-73\t-75\t4",
	"-44\t-54\t-50\t-53\t-48\t-70\t-74\t4",
}, "\n")

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wifi_localization.txt")
	if err := os.WriteFile(path, []byte(fourRoomData), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func baseOptions(t *testing.T) cfgpkg.Options {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	o, err := cfgpkg.Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	return *o
}

func TestRunCorrFourRooms(t *testing.T) {
	opt := baseOptions(t)
	opt.DataFile = writeDataset(t)
	// The output directory does not exist yet; the writer must create it.
	opt.ResultFile = filepath.Join(t.TempDir(), "out", "correlations.html")

	n, err := runCorr(opt)
	if err != nil {
		t.Fatalf("runCorr: %v", err)
	}
	b, err := os.ReadFile(opt.ResultFile)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if n != len(b) {
		t.Fatalf("reported %d bytes, file has %d", n, len(b))
	}
	doc := string(b)
	if strings.Count(doc, "<caption") != 4 {
		t.Fatalf("expected 4 tables, got %d", strings.Count(doc, "<caption"))
	}
	last := -1
	for _, key := range []string{"1", "2", "3", "4"} {
		pos := strings.Index(doc, "ROOM "+key)
		if pos < 0 {
			t.Fatalf("missing caption for room %s", key)
		}
		if pos < last {
			t.Fatalf("room %s out of input order", key)
		}
		last = pos
	}
}

func TestRunCorrDeterministic(t *testing.T) {
	opt := baseOptions(t)
	opt.DataFile = writeDataset(t)
	dir := t.TempDir()

	opt.ResultFile = filepath.Join(dir, "a.html")
	if _, err := runCorr(opt); err != nil {
		t.Fatalf("first run: %v", err)
	}
	opt.ResultFile = filepath.Join(dir, "b.html")
	if _, err := runCorr(opt); err != nil {
		t.Fatalf("second run: %v", err)
	}
	a, _ := os.ReadFile(filepath.Join(dir, "a.html"))
	b, _ := os.ReadFile(filepath.Join(dir, "b.html"))
	if string(a) != string(b) {
		t.Fatalf("two runs on identical input must be byte-identical")
	}
}

func TestRunCorrMissingFileProducesNoOutput(t *testing.T) {
	opt := baseOptions(t)
	dir := t.TempDir()
	opt.DataFile = filepath.Join(dir, "absent.txt")
	opt.ResultFile = filepath.Join(dir, "correlations.html")

	_, err := runCorr(opt)
	var mfe *dataset.MissingFileError
	if !errors.As(err, &mfe) {
		t.Fatalf("expected MissingFileError, got %v", err)
	}
	if _, err := os.Stat(opt.ResultFile); !os.IsNotExist(err) {
		t.Fatalf("fatal error must leave no partial output file")
	}
}

func TestRunCorrValidatesBeforeLoading(t *testing.T) {
	opt := baseOptions(t)
	dir := t.TempDir()
	// The data file is absent as well; the configuration errors must win,
	// proving validation happens before any load.
	opt.DataFile = filepath.Join(dir, "absent.txt")
	opt.ResultFile = filepath.Join(dir, "out.html")

	opt.Precision = 7
	var ipe *report.InvalidPrecisionError
	if _, err := runCorr(opt); !errors.As(err, &ipe) {
		t.Fatalf("expected InvalidPrecisionError, got %v", err)
	}

	opt.Precision = 6
	opt.Colormap = "NotAColormap"
	if _, err := runCorr(opt); err == nil || !strings.Contains(err.Error(), "NotAColormap") {
		t.Fatalf("expected colormap validation error, got %v", err)
	}
}

func TestRunCorrAbsolute(t *testing.T) {
	opt := baseOptions(t)
	opt.DataFile = writeDataset(t)
	opt.ResultFile = filepath.Join(t.TempDir(), "abs.html")
	opt.Absolute = true
	opt.Precision = 6

	if _, err := runCorr(opt); err != nil {
		t.Fatalf("runCorr: %v", err)
	}
	b, err := os.ReadFile(opt.ResultFile)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if strings.Contains(string(b), ">-0.") {
		t.Fatalf("absolute matrix must not contain negative cell values")
	}
}

func TestRunDistLooseFiles(t *testing.T) {
	opt := baseOptions(t)
	opt.DataFile = writeDataset(t)
	opt.ImageDir = filepath.Join(t.TempDir(), "images")

	paths, err := runDist(opt)
	if err != nil {
		t.Fatalf("runDist: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("expected one image per room, got %d", len(paths))
	}
	for i, key := range []string{"1", "2", "3", "4"} {
		want := filepath.Join(opt.ImageDir, "room_"+key+".png")
		if paths[i] != want {
			t.Fatalf("path %d: got %q, want %q", i, paths[i], want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Fatalf("missing %s: %v", want, err)
		}
	}
}

func TestRunDistArchive(t *testing.T) {
	opt := baseOptions(t)
	opt.DataFile = writeDataset(t)
	opt.ImageDir = filepath.Join(t.TempDir(), "images")
	opt.Archive = "rooms.zip"

	paths, err := runDist(opt)
	if err != nil {
		t.Fatalf("runDist: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("archive mode must write a single file, got %v", paths)
	}
	entries, err := os.ReadDir(opt.ImageDir)
	if err != nil {
		t.Fatalf("read image dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "rooms.zip" {
		t.Fatalf("expected only the archive in the image dir, got %v", entries)
	}
}

// runCmd executes the root command with args, replacing any sticky state
// from earlier invocations.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	cfg = nil
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func TestSetConfigKey(t *testing.T) {
	opt := baseOptions(t)

	if err := setConfigKey(&opt, "colormap", "RdBu"); err != nil {
		t.Fatalf("set colormap: %v", err)
	}
	if opt.Colormap != "RdBu" {
		t.Fatalf("colormap not applied: %q", opt.Colormap)
	}
	if err := setConfigKey(&opt, "precision", "3"); err != nil {
		t.Fatalf("set precision: %v", err)
	}
	if err := setConfigKey(&opt, "absolute", "true"); err != nil {
		t.Fatalf("set absolute: %v", err)
	}
	if err := setConfigKey(&opt, "bins", "40"); err != nil {
		t.Fatalf("set bins: %v", err)
	}
	if opt.Precision != 3 || !opt.Absolute || opt.Bins != 40 {
		t.Fatalf("values not applied: %+v", opt)
	}

	// Constrained domains are validated before anything is saved.
	if err := setConfigKey(&opt, "colormap", "NotAColormap"); err == nil {
		t.Fatalf("unknown colormap must be rejected")
	}
	var ipe *report.InvalidPrecisionError
	if err := setConfigKey(&opt, "precision", "9"); !errors.As(err, &ipe) {
		t.Fatalf("out-of-range precision must be rejected, got %v", err)
	}
	if err := setConfigKey(&opt, "bins", "0"); err == nil {
		t.Fatalf("non-positive bins must be rejected")
	}
	if err := setConfigKey(&opt, "nope", "x"); err == nil {
		t.Fatalf("unknown key must be rejected")
	}
}

func TestCLI_ConfigSetPersists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfgFile = path
	defer func() { cfgFile = "" }()

	runCmd(t, "config", "set", "colormap", "Viridis")

	saved, err := cfgpkg.Load(path)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if saved.Colormap != "Viridis" {
		t.Fatalf("config set did not persist: %q", saved.Colormap)
	}
}

func TestCLI_CorrEndToEnd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	data := writeDataset(t)
	out := filepath.Join(t.TempDir(), "out.html")

	runCmd(t, "corr", data, "--result-file", out, "--precision", "2", "--colormap", "Blues")

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(b), "<h1>Wi-fi signal strength correlation values.</h1>") {
		t.Fatalf("default title missing from document")
	}
}
