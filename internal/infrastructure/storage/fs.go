package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"svw.info/maxrun/internal/domain"
)

var errInvalidID = errors.New("invalid sample id")

type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

// kindDir buckets samples by dimensionality.
func kindDir(k domain.TopologyKind) string {
	switch k {
	case domain.Cartesian3D, domain.Hexagonal3D:
		return "3d"
	default:
		return "2d"
	}
}

var buckets = []struct {
	name string
	kind domain.TopologyKind
}{
	{"2d", domain.Cartesian2D},
	{"3d", domain.Cartesian3D},
}

func (s *FS) pathFor(id string, k domain.TopologyKind) string {
	return filepath.Join(s.dir, kindDir(k), id+".json")
}

// Save writes s as JSON, assigning a fresh ID when it has none.
func (s *FS) Save(ctx context.Context, smp *domain.Sample) error {
	if smp == nil {
		return errors.New("invalid sample: nil")
	}
	if err := smp.Check(); err != nil {
		return err
	}
	smp.ID = strings.TrimSpace(smp.ID)
	if smp.ID == "" {
		smp.ID = uuid.NewString()
	} else if !validID(smp.ID) {
		return errInvalidID
	}
	if smp.CreatedAt == 0 {
		smp.CreatedAt = time.Now().UnixNano()
	}
	// Ensure directory ./data/{2d,3d} exists
	target := s.pathFor(smp.ID, smp.Topology.Kind)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(smp)
}

// Load reads the sample with id. Surrounding spaces are ignored, as in Save.
func (s *FS) Load(ctx context.Context, id string) (*domain.Sample, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return nil, errInvalidID
	}
	var data []byte
	for _, b := range buckets {
		p := s.pathFor(id, b.kind)
		if _, statErr := os.Stat(p); statErr != nil {
			continue
		}
		d, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		data = d
		break
	}
	if data == nil {
		return nil, os.ErrNotExist
	}
	var out domain.Sample
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FS) List(ctx context.Context) ([]domain.SampleMeta, error) {
	type m struct {
		ID        string `json:"id"`
		Name      string `json:"name,omitempty"`
		Topology  struct {
			Kind domain.TopologyKind `json:"kind"`
		} `json:"topology"`
		CreatedAt int64 `json:"createdAt"`
	}

	var out []domain.SampleMeta
	for _, b := range buckets {
		ents, err := os.ReadDir(filepath.Join(s.dir, b.name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(s.dir, b.name, e.Name()))
			if err != nil {
				continue
			}
			var mm m
			if err := json.Unmarshal(data, &mm); err != nil || mm.ID == "" {
				continue
			}
			out = append(out, domain.SampleMeta{
				ID:        mm.ID,
				Name:      mm.Name,
				Kind:      mm.Topology.Kind,
				CreatedAt: mm.CreatedAt,
			})
		}
	}
	return out, nil
}

// validID rejects IDs that could escape the storage directory. Callers trim
// spaces first.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}
