package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"DrishtiGPT-Learning-Backend/internal/model"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrVideoNotFound = errors.New("video not found")

// DefaultVideos is the catalog used when no catalog file is configured.
var DefaultVideos = []model.Video{
	{ID: "7781", Title: "Video 7781"},
	{ID: "7782", Title: "Video 7782"},
	{ID: "7783", Title: "Video 7783"},
}

type videoCatalog struct {
	Videos []model.Video `yaml:"videos"`
}

type VideoRepository struct {
	path   string
	mu     sync.RWMutex
	videos []model.Video
	byID   map[string]model.Video
	log    *logrus.Entry
}

// NewVideoRepository loads the catalog at path, or DefaultVideos when path is empty.
func NewVideoRepository(path string, logger *logrus.Logger) (*VideoRepository, error) {
	repo := &VideoRepository{path: path, log: logger.WithField("component", "video-repo")}
	if path == "" {
		repo.set(DefaultVideos)
		repo.log.Infof("[Videos] no catalog file configured, using %d default videos", len(DefaultVideos))
		return repo, nil
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func readCatalog(path string) ([]model.Video, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read video catalog '%s': %w", path, err)
	}
	var catalog videoCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse video catalog '%s': %w", path, err)
	}
	if len(catalog.Videos) == 0 {
		return nil, fmt.Errorf("video catalog '%s' lists no videos", path)
	}
	seen := make(map[string]bool, len(catalog.Videos))
	for i, v := range catalog.Videos {
		if v.ID == "" {
			return nil, fmt.Errorf("video catalog '%s': entry %d has no id", path, i+1)
		}
		if seen[v.ID] {
			return nil, fmt.Errorf("video catalog '%s': duplicate id %s", path, v.ID)
		}
		seen[v.ID] = true
		if v.Title == "" {
			catalog.Videos[i].Title = "Video " + v.ID
		}
	}
	return catalog.Videos, nil
}

func (r *VideoRepository) load() error {
	videos, err := readCatalog(r.path)
	if err != nil {
		return err
	}
	r.set(videos)
	r.log.Infof("[Videos] catalog loaded from '%s': %d videos", r.path, len(videos))
	return nil
}

func (r *VideoRepository) set(videos []model.Video) {
	byID := make(map[string]model.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	r.mu.Lock()
	r.videos = videos
	r.byID = byID
	r.mu.Unlock()
}

func (r *VideoRepository) List() []model.Video {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Video, len(r.videos))
	copy(out, r.videos)
	return out
}

func (r *VideoRepository) Find(id string) (model.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byID[id]
	if !ok {
		return model.Video{}, fmt.Errorf("%w: %s", ErrVideoNotFound, id)
	}
	return v, nil
}

// Watch reloads the catalog whenever its file changes, until ctx is done. A broken
// edit keeps the previous catalog. Without a catalog file Watch returns at once.
func (r *VideoRepository) Watch(ctx context.Context) error {
	if r.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// editors replace the file, so watch the directory
	dir := filepath.Dir(r.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch '%s': %w", dir, err)
	}
	target := filepath.Clean(r.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			if err := r.load(); err != nil {
				r.log.WithError(err).Warn("[Videos] reload failed, keeping previous catalog")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.WithError(err).Warn("[Videos] watcher error")
		}
	}
}
