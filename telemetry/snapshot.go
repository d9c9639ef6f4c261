package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Snapshot document identity.
const (
	SnapshotName    = "smoothLifeWorld"
	SnapshotVersion = 1
)

// ErrBadSnapshot is wrapped by every malformed-document error.
var ErrBadSnapshot = errors.New("bad snapshot")

// Snapshot mirrors a whole world: the configuration needed to rebuild it
// and the state of every blob.
type Snapshot struct {
	Name       string     `json:"name"`
	Version    int        `json:"version"`
	Tick       int        `json:"tick"`
	WorldInfo  WorldInfo  `json:"worldInfo"`
	WorldState WorldState `json:"worldState"`
}

// WorldInfo is the configuration section.
type WorldInfo struct {
	WorldWidth  int           `json:"worldWidth"`
	WorldHeight int           `json:"worldHeight"`
	Species     []SpeciesInfo `json:"species"`
}

// SpeciesInfo describes one species.
type SpeciesInfo struct {
	SpecieID      int64   `json:"specieId"`
	IsPrey        bool    `json:"isPrey"`
	InitBlobCount int     `json:"initBlobCount"`
	NeuronLayout  IntList `json:"neuronLayout"`
}

// WorldState is the state section, one entry per species in info order.
type WorldState struct {
	Species []SpeciesState `json:"species"`
}

// SpeciesState lists a species' blobs, live first.
type SpeciesState struct {
	Blobs []BlobRecord `json:"blobs"`
}

// BlobRecord is one blob. Chromo is the active genome, OldChromo the one
// its gene pool entry holds.
type BlobRecord struct {
	Chromo    GenomeRecord `json:"chromo"`
	OldChromo GenomeRecord `json:"oldChromo"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Angle     float64      `json:"angle"`
	Energy    float64      `json:"energy"`
	Age       int          `json:"age"`
}

// GenomeRecord is a fitness plus a gene list.
type GenomeRecord struct {
	Fitness float64  `json:"fitness"`
	Genes   GeneList `json:"genes"`
}

// GeneList encodes as a textual list literal such as "[0.5, -1.25]".
// Values use the shortest representation that parses back exactly.
type GeneList []float64

func (g GeneList) MarshalText() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range g {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteByte(']')
	return []byte(sb.String()), nil
}

func (g *GeneList) UnmarshalText(text []byte) error {
	fields, err := splitList(string(text))
	if err != nil {
		return err
	}
	out := make(GeneList, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("%w: gene %d: %v", ErrBadSnapshot, i, err)
		}
		out[i] = v
	}
	*g = out
	return nil
}

// IntList encodes as a textual list literal such as "[8, 20, 20, 4]".
type IntList []int

func (l IntList) MarshalText() ([]byte, error) {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = strconv.Itoa(v)
	}
	return []byte("[" + strings.Join(parts, ", ") + "]"), nil
}

func (l *IntList) UnmarshalText(text []byte) error {
	fields, err := splitList(string(text))
	if err != nil {
		return err
	}
	out := make(IntList, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return fmt.Errorf("%w: layout entry %d: %v", ErrBadSnapshot, i, err)
		}
		out[i] = v
	}
	*l = out
	return nil
}

// splitList strips the brackets of a list literal and returns its trimmed items.
func splitList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: %q is not a list literal", ErrBadSnapshot, s)
	}
	s = strings.TrimSpace(s[1 : len(s)-1])
	if s == "" {
		return nil, nil
	}
	items := strings.Split(s, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items, nil
}

// Validate checks the document identity and that both sections agree.
func (s *Snapshot) Validate() error {
	if s.Name != SnapshotName {
		return fmt.Errorf("%w: name %q, want %q", ErrBadSnapshot, s.Name, SnapshotName)
	}
	if s.Version < 1 || s.Version > SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, s.Version)
	}
	if len(s.WorldInfo.Species) != len(s.WorldState.Species) {
		return fmt.Errorf("%w: %d species in info, %d in state",
			ErrBadSnapshot, len(s.WorldInfo.Species), len(s.WorldState.Species))
	}
	for i, info := range s.WorldInfo.Species {
		if n := len(s.WorldState.Species[i].Blobs); n != info.InitBlobCount {
			return fmt.Errorf("%w: species %d declares %d blobs, has %d",
				ErrBadSnapshot, info.SpecieID, info.InitBlobCount, n)
		}
	}
	return nil
}

// Encode writes the snapshot as indented JSON.
func (s *Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads and validates a snapshot.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveSnapshot writes a snapshot to dir and returns its path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := snapshot.Encode(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	defer f.Close()
	return DecodeSnapshot(f)
}
