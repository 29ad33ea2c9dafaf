// package problemstore keeps daily problem sets as dated JSON documents
// on disk, one file per category and day.
package problemstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

var _ secondary.ProblemStore = (*problemStore)(nil)

const (
	dateLayout   = "2006-01-02"
	streamPrefix = "stream_"
)

type problemStore struct {
	baseDir string
	logger  primary.Logger
}

// New creates a problem store rooted at baseDir, creating the
// directory if needed.
func New(baseDir string, logger primary.Logger) (secondary.ProblemStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create problem directory: %w", err)
	}
	return &problemStore{baseDir: baseDir, logger: logger}, nil
}

// fileName maps a category and date onto the document name:
// 2026-08-31.json for the default track, stream_2026-08-31.json for the
// stream track.
func fileName(category domain.Category, asOf time.Time) string {
	name := asOf.UTC().Format(dateLayout) + ".json"
	if category == domain.CategoryStream {
		name = streamPrefix + name
	}
	return name
}

func (s *problemStore) FindProblem(ctx context.Context, problemID string, category domain.Category, asOf time.Time) (*domain.Problem, error) {
	set, err := s.LoadDaily(ctx, category, asOf)
	if err != nil || set == nil {
		return nil, err
	}
	return set.FindByID(problemID), nil
}

func (s *problemStore) LoadDaily(_ context.Context, category domain.Category, asOf time.Time) (*domain.ProblemSet, error) {
	path := filepath.Join(s.baseDir, fileName(category, asOf))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}

	var problems []domain.Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, fmt.Errorf("failed to parse problem file %s: %w", path, err)
	}

	return &domain.ProblemSet{
		Date:     asOf,
		Category: category,
		Problems: problems,
	}, nil
}

func (s *problemStore) SaveDaily(_ context.Context, set *domain.ProblemSet) error {
	data, err := json.MarshalIndent(set.Problems, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal problem set: %w", err)
	}

	path := filepath.Join(s.baseDir, fileName(set.Category, set.Date))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write problem file: %w", err)
	}

	s.logger.Info("Saved daily problem set", "path", path, "count", len(set.Problems))
	return nil
}

// DeleteOlderThan removes problem documents dated before the cutoff.
// Files whose names do not parse as dated documents are left alone.
func (s *problemStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return 0, fmt.Errorf("failed to list problem directory: %w", err)
	}

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		fileDate, ok := parseFileDate(entry.Name())
		if !ok || !fileDate.Before(cutoff) {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Error("Failed to delete old problem file", "path", path, "error", err)
			continue
		}
		s.logger.Info("Deleted old problem file", "path", path)
		deleted++
	}
	return deleted, nil
}

func parseFileDate(name string) (time.Time, bool) {
	name = strings.TrimSuffix(name, ".json")
	name = strings.TrimPrefix(name, streamPrefix)
	t, err := time.Parse(dateLayout, name)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
