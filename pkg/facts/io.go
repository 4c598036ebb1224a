package facts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/archscope/archscope/pkg/errors"
)

// ReadSet decodes a facts document from r and validates it.
func ReadSet(r io.Reader) (Set, error) {
	var s Set
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode facts document")
	}
	if err := Validate(s); err != nil {
		return Set{}, err
	}
	return s, nil
}

// ReadSetFile reads and validates a facts document from a file.
func ReadSetFile(path string) (Set, error) {
	if err := errors.ValidateFactsPath(path); err != nil {
		return Set{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Set{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Set{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSet(f)
}

// MarshalSet encodes the set in canonical form as indented JSON.
// Canonical ordering keeps byte output stable across scanner runs, which
// is what makes content-addressed caching of analysis results possible.
func MarshalSet(s Set) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Canonical()); err != nil {
		return nil, fmt.Errorf("encode facts: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSetFile writes the set to a file in canonical form.
// The file is created with 0644 permissions.
func WriteSetFile(s Set, path string) error {
	data, err := MarshalSet(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks structural validity of a facts document.
// It enforces the input contract only: known schema version and well-formed
// service names. It deliberately does not reject duplicate service names or
// dependencies on unknown services - the graph builder resolves both.
func Validate(s Set) error {
	if s.Version != 0 && s.Version != Version {
		return errors.New(errors.ErrCodeInvalidFacts, "unsupported facts version %d (want %d)", s.Version, Version)
	}
	for _, svc := range s.Services {
		if err := errors.ValidateServiceName(svc.Name); err != nil {
			return err
		}
	}
	for _, layer := range s.Layers {
		if err := errors.ValidateServiceName(layer.Service); err != nil {
			return err
		}
	}
	return nil
}
