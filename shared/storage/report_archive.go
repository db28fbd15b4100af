package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"analyst-stack/internal/models"
)

// ReportArchive keeps every generated analysis report as a timestamped JSON
// file under the data directory, pruning reports older than maxAge on save.
type ReportArchive struct {
	dataDir string
	maxAge  time.Duration
	mu      sync.Mutex
}

const reportFilePrefix = "report_"

// NewReportArchive creates the archive directory if needed.
func NewReportArchive(dataDir string, maxAge time.Duration) (*ReportArchive, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &ReportArchive{dataDir: dataDir, maxAge: maxAge}, nil
}

// Save writes the report to a new timestamped file and prunes old reports.
// Returns the path of the written file.
func (a *ReportArchive) Save(report *models.AnalysisReport) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := fmt.Sprintf("%s%s.json", reportFilePrefix, report.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(a.dataDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	if err := a.prune(); err != nil {
		return "", err
	}

	return path, nil
}

// Latest loads the most recent archived report, or nil when the archive is
// empty.
func (a *ReportArchive) Latest() (*models.AnalysisReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	paths, err := a.reportPaths()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(paths)
	latest := paths[len(paths)-1]

	file, err := os.Open(latest)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer file.Close()

	var report models.AnalysisReport
	if err := json.NewDecoder(file).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", latest, err)
	}
	return &report, nil
}

// Count returns the number of archived reports.
func (a *ReportArchive) Count() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	paths, err := a.reportPaths()
	if err != nil {
		return 0, err
	}
	return len(paths), nil
}

func (a *ReportArchive) reportPaths() ([]string, error) {
	entries, err := os.ReadDir(a.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, reportFilePrefix) && strings.HasSuffix(name, ".json") {
			paths = append(paths, filepath.Join(a.dataDir, name))
		}
	}
	return paths, nil
}

func (a *ReportArchive) prune() error {
	if a.maxAge <= 0 {
		return nil
	}

	paths, err := a.reportPaths()
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-a.maxAge)
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to prune old report %s: %w", path, err)
			}
		}
	}
	return nil
}
