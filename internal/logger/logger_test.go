package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "poptex.log")

	// MaxSize is in MB; 1 is the smallest lumberjack allows.
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
		Compress:   false,
	}
	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	// A batch render logs one line per written image; ~150 bytes each.
	log := Named("export")
	for i := 0; i < 12000; i++ {
		log.Info("image written",
			zap.String("path", fmt.Sprintf("textures/land-%03d.png", i%256)),
			zap.Int("width", 4096),
			zap.Int("height", 4096),
			zap.Duration("elapsed", time.Duration(i)*time.Millisecond))
	}
	Sync()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Fatal("main log file does not exist")
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}

	var rotated []string
	for _, f := range files {
		name := f.Name()
		if name == "poptex.log" || !strings.HasPrefix(name, "poptex") {
			continue
		}
		// lumberjack names backups poptex-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.Contains(name, "-20") || !strings.HasSuffix(name, ".log") {
			t.Errorf("rotated file %s doesn't have expected timestamp format", name)
		}
		rotated = append(rotated, name)
	}
	if len(rotated) == 0 {
		t.Fatal("no rotated files found")
	}
	if len(rotated) > cfg.MaxBackups {
		t.Errorf("expected at most %d backups, got %d: %v", cfg.MaxBackups, len(rotated), rotated)
	}

	// Backups keep whole entries with their fields.
	content, err := os.ReadFile(filepath.Join(tempDir, rotated[0]))
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	first := strings.SplitN(string(content), "\n", 2)[0]
	for _, want := range []string{"INFO", "export", "image written", `"width": 4096`, `"path": "textures/land-`} {
		if !strings.Contains(first, want) {
			t.Errorf("expected %q in rotated entry %q", want, first)
		}
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	// One line per level, as the tool emits them.
	emit := func() {
		Named("assets").Debug("tables loaded", zap.String("type", "b"), zap.Int("bytes", 1<<20))
		Named("assets").Info("level loaded", zap.Int("level", 7), zap.String("type", "b"))
		Named("assets").Warn("table set not cached", zap.String("type", "c"))
		Error("command failed", zap.String("command", "land"), zap.Error(errors.New("level file missing")))
	}
	lines := map[string]string{
		"DEBUG": `tables loaded {"type": "b", "bytes": 1048576}`,
		"INFO":  `level loaded {"level": 7, "type": "b"}`,
		"WARN":  `table set not cached {"type": "c"}`,
		"ERROR": `command failed {"command": "land", "error": "level file missing"}`,
	}

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
		{"bogus", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}
			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			emit()
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, lvl := range tt.expected {
				if !strings.Contains(logContent, lvl) || !strings.Contains(logContent, lines[lvl]) {
					t.Errorf("expected %s entry %q in log output:\n%s", lvl, lines[lvl], logContent)
				}
			}
			for _, lvl := range tt.excluded {
				if strings.Contains(logContent, lines[lvl]) {
					t.Errorf("unexpected %s entry for level %s", lvl, tt.level)
				}
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/poptex.log")

	if cfg.Path != "/tmp/poptex.log" {
		t.Errorf("expected path /tmp/poptex.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 14 {
		t.Errorf("expected MaxAgeDays 14, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}

func TestNamedLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	cfg := FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}
	if err := InitWithFileConfig("info", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	Named("assets").Info("tables loaded")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "assets") || !strings.Contains(string(content), "tables loaded") {
		t.Errorf("expected named entry in log output, got %q", content)
	}
}

func TestNamedWithoutInit(t *testing.T) {
	Log = nil
	Named("export").Info("discarded")
	if Log == nil || Sugar == nil {
		t.Error("expected Named to install a no-op logger")
	}
}
