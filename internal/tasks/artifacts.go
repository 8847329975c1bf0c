package tasks

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlist/internal/shared"
	"github.com/patrickmn/go-cache"
)

const maxJanitorInterval = time.Minute

// ArtifactStore hands out opaque tokens for CSV artifacts so they can be fetched later without exposing paths.
//
// Tokens expire after the store's TTL. Artifacts added with [ArtifactStore.Register] are owned by the store:
// expiry and [ArtifactStore.Release] delete the artifact's directory, provided it lives under the transient root.
// Artifacts added with [ArtifactStore.Share] are never deleted.
type ArtifactStore struct {
	root   string
	cache  *cache.Cache
	logger *log.Logger
}

// NewArtifactStore creates a store for artifacts under root that live for ttl.
func NewArtifactStore(root string, ttl time.Duration, logger *log.Logger) *ArtifactStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	interval := ttl / 2
	if interval <= 0 || interval > maxJanitorInterval {
		interval = maxJanitorInterval
	}

	s := &ArtifactStore{root: filepath.Clean(root), cache: cache.New(ttl, interval), logger: logger}
	s.cache.OnEvicted(s.evict)
	return s
}

type artifact struct {
	path  string
	owned bool
}

// Register takes ownership of a transient artifact and returns the token that retrieves it.
func (s *ArtifactStore) Register(path string) string {
	return s.add(artifact{path: path, owned: true})
}

// Share returns a token for an artifact the store must leave in place.
func (s *ArtifactStore) Share(path string) string {
	return s.add(artifact{path: path})
}

func (s *ArtifactStore) add(a artifact) string {
	token := shared.GenerateID()
	s.cache.SetDefault(token, a)
	s.logger.Debug("registered artifact", "token", token, "path", a.path, "owned", a.owned)
	return token
}

// Lookup returns the artifact path for token, or [shared.ErrArtifactMissing] if the token is
// unknown, expired, or its file is gone.
func (s *ArtifactStore) Lookup(token string) (string, error) {
	v, ok := s.cache.Get(token)
	if !ok {
		return "", shared.ErrArtifactMissing
	}

	a := v.(artifact)
	if _, err := os.Stat(a.path); err != nil {
		s.cache.Delete(token)
		return "", shared.ErrArtifactMissing
	}
	return a.path, nil
}

// Release forgets token and removes its artifact if the store owns it.
func (s *ArtifactStore) Release(token string) {
	s.cache.Delete(token)
}

// Len returns the number of live tokens.
func (s *ArtifactStore) Len() int {
	return s.cache.ItemCount()
}

// Close releases every artifact still held.
func (s *ArtifactStore) Close() {
	s.cache.DeleteExpired()
	for token := range s.cache.Items() {
		s.cache.Delete(token)
	}
}

func (s *ArtifactStore) evict(token string, v any) {
	a, ok := v.(artifact)
	if !ok || !a.owned {
		return
	}

	path := a.path
	dir := filepath.Dir(path)
	if !s.owns(dir) {
		s.logger.Warn("artifact outside transient root, removing file only", "path", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Error("failed to remove artifact", "path", path, "error", err)
		}
		return
	}

	if err := os.RemoveAll(dir); err != nil {
		s.logger.Error("failed to remove artifact directory", "path", dir, "error", err)
		return
	}
	s.logger.Debug("released artifact", "token", token, "path", dir)
}

// owns reports whether dir is strictly inside the transient root.
func (s *ArtifactStore) owns(dir string) bool {
	rel, err := filepath.Rel(s.root, filepath.Clean(dir))
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
