package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const (
	storeDirName  = ".rtasks"
	storeFileName = "tasks.json"
)

var (
	ErrHomeNotFound = errors.New("failed to find user home directory")
	ErrIO           = errors.New("store i/o failure")
	ErrParse        = errors.New("store file is malformed")
)

type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindParse
)

// StoreError describes a failed store operation. Every StoreError is fatal.
type StoreError struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrParse:
		return e.Kind == KindParse
	}

	return false
}

// folderFile is the on-disk shape of a folder. Cursors are not part of it.
type folderFile struct {
	Name    string       `json:"name"`
	Tasks   []Task       `json:"tasks"`
	Folders []folderFile `json:"folders"`
}

func toFile(f *Folder) folderFile {
	out := folderFile{
		Name:    f.Name,
		Tasks:   make([]Task, len(f.tasks)),
		Folders: make([]folderFile, 0, len(f.folders)),
	}

	copy(out.Tasks, f.tasks)

	for _, sub := range f.folders {
		out.Folders = append(out.Folders, toFile(sub))
	}

	return out
}

func fromFile(ff folderFile) *Folder {
	f := NewFolder(ff.Name)
	f.tasks = append(f.tasks, ff.Tasks...)

	for _, sub := range ff.Folders {
		f.folders = append(f.folders, fromFile(sub))
	}

	return f
}

// encodeTree renders the tree as indented JSON
func encodeTree(root *Folder) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(toFile(root)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeTree parses a store file. Every folder, task and status must be an
// object carrying all of its keys, spelled exactly; unknown keys are ignored.
func decodeTree(data []byte) (*Folder, error) {
	var raw json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	ff, err := decodeFolder(raw, "root")
	if err != nil {
		return nil, err
	}

	return fromFile(ff), nil
}

func decodeFolder(raw json.RawMessage, where string) (folderFile, error) {
	var ff folderFile

	obj, err := object(raw, where, "name", "tasks", "folders")
	if err != nil {
		return ff, err
	}

	if err := field(obj, where, "name", &ff.Name); err != nil {
		return ff, err
	}

	var tasks, folders []json.RawMessage

	if err := field(obj, where, "tasks", &tasks); err != nil {
		return ff, err
	}

	if err := field(obj, where, "folders", &folders); err != nil {
		return ff, err
	}

	ff.Tasks = make([]Task, 0, len(tasks))
	for i, rt := range tasks {
		task, err := decodeTask(rt, fmt.Sprintf("%s.tasks[%d]", where, i))
		if err != nil {
			return ff, err
		}
		ff.Tasks = append(ff.Tasks, task)
	}

	ff.Folders = make([]folderFile, 0, len(folders))
	for i, rf := range folders {
		sub, err := decodeFolder(rf, fmt.Sprintf("%s.folders[%d]", where, i))
		if err != nil {
			return ff, err
		}
		ff.Folders = append(ff.Folders, sub)
	}

	return ff, nil
}

func decodeTask(raw json.RawMessage, where string) (Task, error) {
	var task Task

	obj, err := object(raw, where, "title", "task", "status")
	if err != nil {
		return task, err
	}

	if err := field(obj, where, "title", &task.Title); err != nil {
		return task, err
	}

	if err := field(obj, where, "task", &task.Body); err != nil {
		return task, err
	}

	var status json.RawMessage
	if err := field(obj, where, "status", &status); err != nil {
		return task, err
	}

	where += ".status"
	sobj, err := object(status, where, "status", "color")
	if err != nil {
		return task, err
	}

	if err := field(sobj, where, "status", &task.Status.Label); err != nil {
		return task, err
	}

	if err := field(sobj, where, "color", &task.Status.Color); err != nil {
		return task, err
	}

	return task, nil
}

// object decodes raw as a JSON object that holds every one of keys
func object(raw json.RawMessage, where string, keys ...string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage

	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}

	if obj == nil {
		return nil, fmt.Errorf("%s: expected an object, got null", where)
	}

	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return nil, fmt.Errorf("%s: missing %q", where, k)
		}
	}

	return obj, nil
}

// field decodes obj[key] into dst; null is rejected
func field(obj map[string]json.RawMessage, where, key string, dst any) error {
	value := obj[key]

	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return fmt.Errorf("%s.%s: null", where, key)
	}

	if err := json.Unmarshal(value, dst); err != nil {
		return fmt.Errorf("%s.%s: %w", where, key, err)
	}

	return nil
}

// DefaultDir returns the per-user store directory, ~/.rtasks
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHomeNotFound, err)
	}

	if home == "" {
		return "", ErrHomeNotFound
	}

	return filepath.Join(home, storeDirName), nil
}

// Store persists the whole folder tree as a single JSON file
type Store struct {
	dir   string
	path  string
	stamp time.Time
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, path: filepath.Join(dir, storeFileName)}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Dir() string {
	return s.dir
}

// Load reads the tree from disk. A missing file is initialized with an empty
// root and written immediately; a file that fails to parse is an error.
func (s *Store) Load() (*Folder, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, &StoreError{Kind: KindIO, Op: "create", Path: s.dir, Err: err}
	}

	data, err := os.ReadFile(s.path)

	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, &StoreError{Kind: KindIO, Op: "read", Path: s.path, Err: err}
		}

		root := NewFolder("")
		if err := s.Save(root); err != nil {
			return nil, err
		}

		logger.Info().Str("path", s.path).Msg("initialized empty store")
		return root, nil
	}

	root, err := decodeTree(data)

	if err != nil {
		return nil, &StoreError{Kind: KindParse, Op: "parse", Path: s.path, Err: err}
	}

	s.touch()
	logger.Info().Str("path", s.path).Int("entries", root.Total()).Msg("loaded store")

	return root, nil
}

// Save overwrites the store file with the whole tree
func (s *Store) Save(root *Folder) error {
	data, err := encodeTree(root)

	if err != nil {
		return &StoreError{Kind: KindIO, Op: "encode", Path: s.path, Err: err}
	}

	// A rename never leaves a half-written tasks.json behind
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return &StoreError{Kind: KindIO, Op: "write", Path: s.path, Err: err}
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return &StoreError{Kind: KindIO, Op: "write", Path: s.path, Err: err}
	}

	s.touch()
	logger.Info().Str("path", s.path).Int("bytes", len(data)).Msg("saved store")

	return nil
}

// touch records the file's modification time after our own read or write
func (s *Store) touch() {
	info, err := os.Stat(s.path)
	if err != nil {
		return
	}

	s.stamp = info.ModTime()
}

// ChangedOnDisk reports whether the file was modified since the last load or
// save made by this store.
func (s *Store) ChangedOnDisk() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		return !s.stamp.IsZero()
	}

	return !info.ModTime().Equal(s.stamp)
}
