package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/imgajeed76/erpgrid/internal/util"
)

// Source loads a dataset.
type Source interface {
	Dataset(ctx context.Context) (*Dataset, error)
}

// BuiltinSource serves the sample data.
type BuiltinSource struct{}

func (BuiltinSource) Dataset(context.Context) (*Dataset, error) {
	return Builtin(), nil
}

// FileSource reads a dataset from a JSON, YAML or TOML file, picked by
// extension.
type FileSource struct {
	Path string
}

func (s FileSource) Dataset(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, util.SourceError(s.Path, err)
	}
	ds, err := Decode(filepath.Ext(s.Path), data)
	if err != nil {
		return nil, util.SourceError(s.Path, err)
	}
	return ds, nil
}

// Decode parses data in the format named by ext (".json", ".yaml", ".yml"
// or ".toml"). Invalid UTF-8 is repaired first.
func Decode(ext string, data []byte) (*Dataset, error) {
	data = util.ToValidUTF8Bytes(data)
	var ds Dataset

	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ds); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&ds); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &ds)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml: unknown key %s", undecoded[0])
		}
	default:
		return nil, fmt.Errorf("%w: %q", util.ErrUnsupportedFormat, ext)
	}
	return &ds, nil
}
