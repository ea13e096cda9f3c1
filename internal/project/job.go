package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/BlockPack/internal/model"
)

// ErrUnsupportedFormat is returned for job files that are neither TOML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported job file format")

// IsJobFile reports whether path has a job file extension.
func IsJobFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".json":
		return true
	}
	return false
}

// LoadJob reads a job from a .toml or .json file. The file is decoded on
// top of base, so settings it leaves out keep the base value. Unknown keys
// are rejected so that a typo does not silently fall back to a default.
func LoadJob(path string, base model.PackSettings) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, err
	}

	job := model.NewJob()
	job.Settings = base
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &job)
		if err != nil {
			return model.Job{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return model.Job{}, fmt.Errorf("parse %s: unknown key %q", filepath.Base(path), undecoded[0].String())
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&job); err != nil {
			return model.Job{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	default:
		return model.Job{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := ValidateJob(job); err != nil {
		return model.Job{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return job, nil
}

// SaveJob writes a job in the format implied by the file extension,
// creating parent directories as needed.
func SaveJob(path string, job model.Job) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(job); err != nil {
			return fmt.Errorf("encode job: %w", err)
		}
	case ".json":
		data, err := json.MarshalIndent(job, "", "  ")
		if err != nil {
			return fmt.Errorf("encode job: %w", err)
		}
		buf.Write(data)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ValidateJob checks the mode and every block entry of a job.
func ValidateJob(job model.Job) error {
	if _, err := model.ParseMode(string(job.Settings.Mode)); err != nil {
		return err
	}
	for i, spec := range job.Blocks {
		if spec.Width <= 0 || spec.Height <= 0 {
			return fmt.Errorf("block %d (%s): size %dx%d must be positive", i+1, spec.Label, spec.Width, spec.Height)
		}
		if spec.Quantity < 0 {
			return fmt.Errorf("block %d (%s): negative quantity %d", i+1, spec.Label, spec.Quantity)
		}
	}
	return nil
}
