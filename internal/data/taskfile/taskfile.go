// Package taskfile encodes tasks as YAML documents. The same encoding is
// used for exported files and for task bodies in the library database.
package taskfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/hay-kot/criterio"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/validate"
)

// Version is the current file format version.
const Version = 1

// File is the on-disk form of a task.
type File struct {
	Version    int             `yaml:"version"`
	Name       string          `yaml:"name,omitempty"`
	Type       task.Type       `yaml:"type"`
	Properties task.Properties `yaml:"properties,omitempty"`
	Points     []task.Point    `yaml:"points"`
}

// FromSequence captures seq under name.
func FromSequence(name string, seq *task.Sequence) File {
	return File{
		Version:    Version,
		Name:       name,
		Type:       seq.Type(),
		Properties: seq.Properties(),
		Points:     seq.Points(),
	}
}

// Validate checks the file is a well-formed task.
func (f File) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if f.Version != 0 && f.Version != Version {
		errs = errs.Append("version", fmt.Errorf("unsupported version %d", f.Version))
	}
	if f.Name != "" {
		if err := validate.TaskName(f.Name); err != nil {
			errs = errs.Append("name", err)
		}
	}

	rules, err := f.Type.Rules()
	if err != nil {
		return errs.Append("type", err).ToError()
	}
	if len(f.Points) > rules.Capacity {
		errs = errs.Append("points", fmt.Errorf("%d points exceed %s capacity %d", len(f.Points), f.Type, rules.Capacity))
	}

	for i, p := range f.Points {
		field := fmt.Sprintf("points[%d]", i)
		if p.Waypoint.Name == "" {
			errs = errs.Append(field+".waypoint.name", fmt.Errorf("name is required"))
		}
		if loc := p.Waypoint.Location; loc.Lat < -90 || loc.Lat > 90 || loc.Lon < -180 || loc.Lon > 180 {
			errs = errs.Append(field+".waypoint", fmt.Errorf("location %.4f,%.4f out of range", loc.Lat, loc.Lon))
		}
		if !p.Zone.Shape.IsValid() {
			errs = errs.Append(field+".zone.shape", fmt.Errorf("invalid shape %q", p.Zone.Shape))
		}
		if p.Zone.Radius <= 0 {
			errs = errs.Append(field+".zone.radius", fmt.Errorf("radius must be positive"))
		}
	}

	return errs.ToError()
}

// Sequence validates the file and builds a sequence from it. Points
// without an id receive a new one.
func (f File) Sequence() (*task.Sequence, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	seq, err := task.New(f.Type)
	if err != nil {
		return nil, err
	}
	seq.SetProperties(f.Properties)

	for _, p := range f.Points {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if err := seq.Append(p); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

// Encode writes f as YAML.
func Encode(w io.Writer, f File) error {
	if f.Version == 0 {
		f.Version = Version
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode task: %w", err)
	}
	return enc.Close()
}

// Marshal returns the YAML encoding of f.
func Marshal(f File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one YAML task document.
func Decode(r io.Reader) (File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("decode task: empty document")
		}
		return File{}, fmt.Errorf("decode task: %w", err)
	}
	return f, nil
}

// Unmarshal decodes a YAML task document.
func Unmarshal(data []byte) (File, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile decodes the task at path. A path of "-" reads stdin, which must
// not be a terminal.
func ReadFile(path string) (File, error) {
	if path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return File{}, fmt.Errorf("no input provided (stdin is a terminal); pass a file or pipe YAML input")
		}
		return Decode(os.Stdin)
	}

	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open task file: %w", err)
	}
	defer func() { _ = fh.Close() }()

	return Decode(fh)
}

// WriteFile encodes f to path, replacing any existing file.
func WriteFile(path string, f File) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}
