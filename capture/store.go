package capture

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/lixenwraith/racecast/parameter"
)

// Artifact is a finalized recording held in the spool
type Artifact struct {
	Handle    string // artifact:<uuid>
	Session   uuid.UUID
	Path      string
	Size      int64
	MIME      string
	CreatedAt time.Time

	seq uint64 // session order, newer sessions win
}

// Store keeps artifacts on an afero filesystem
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore creates the spool directory if needed
func NewStore(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create spool %s: %w", dir, err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

// Put writes data as a new artifact
func (st *Store) Put(session uuid.UUID, data []byte, at time.Time) (*Artifact, error) {
	id := uuid.New()
	p := filepath.Join(st.dir, id.String()+parameter.ArtifactExt)
	if err := afero.WriteFile(st.fs, p, data, 0o644); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	return &Artifact{
		Handle:    "artifact:" + id.String(),
		Session:   session,
		Path:      p,
		Size:      int64(len(data)),
		MIME:      parameter.ArtifactMIME,
		CreatedAt: at,
	}, nil
}

// Open returns a reader over the artifact bytes
func (st *Store) Open(a *Artifact) (io.ReadCloser, error) {
	if a == nil {
		return nil, ErrNoArtifact
	}
	return st.fs.Open(a.Path)
}

// Release deletes the artifact's underlying file
func (st *Store) Release(a *Artifact) error {
	if a == nil {
		return nil
	}
	return st.fs.Remove(a.Path)
}

// ArtifactName derives the download name from a timestamp: ISO-8601 UTC with ':' and '.' replaced by '-'
func ArtifactName(t time.Time) string {
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return parameter.ArtifactPrefix + strings.NewReplacer(":", "-", ".", "-").Replace(iso) + parameter.ArtifactExt
}

// Saver persists a downloaded artifact into the user's environment
type Saver interface {
	Save(name string, r io.Reader) (string, error)
}

// DirSaver writes downloads into a directory
type DirSaver struct {
	Fs  afero.Fs
	Dir string
}

// Save copies r to Dir/name and returns the written path
func (s DirSaver) Save(name string, r io.Reader) (string, error) {
	if err := s.Fs.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	p := filepath.Join(s.Dir, name)
	f, err := s.Fs.Create(p)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", p, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	return p, f.Close()
}
