package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AidanWoolley/demikernel/internal/container/utils"
)

var ErrNotFound = errors.New("not found")

// jsonStore keeps one JSON file per record in dir, named <id>.json.
type jsonStore[T any] struct {
	dir  string
	kind string
}

func newJSONStore[T any](dir, kind string) (*jsonStore[T], error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s metadata dir: %w", kind, err)
	}
	return &jsonStore[T]{dir: dir, kind: kind}, nil
}

// ensureID fills id with a fresh identifier if it is empty.
func ensureID(id *string) error {
	if *id != "" {
		return nil
	}
	generated, err := utils.GenerateID()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}
	*id = generated
	return nil
}

func (s *jsonStore[T]) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *jsonStore[T]) put(id string, v *T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(id), data, 0644)
}

func (s *jsonStore[T]) get(id string) (*T, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s %s: %w", s.kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", s.kind, id, err)
	}
	return &v, nil
}

// list returns every readable record. Unreadable files are skipped.
func (s *jsonStore[T]) list() ([]*T, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var records []*T
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}
		v, err := s.get(strings.TrimSuffix(file.Name(), ".json"))
		if err == nil {
			records = append(records, v)
		}
	}
	return records, nil
}

func (s *jsonStore[T]) find(match func(*T) bool, what string) (*T, error) {
	records, err := s.list()
	if err != nil {
		return nil, err
	}
	for _, v := range records {
		if match(v) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", s.kind, what, ErrNotFound)
}

func (s *jsonStore[T]) remove(id string) error {
	err := os.Remove(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s %s: %w", s.kind, id, ErrNotFound)
	}
	return err
}
