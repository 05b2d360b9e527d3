package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

var ErrNoFiles = errors.New("no files specified")

type Service struct {
	dataRoot string
}

// QuestionSet is the concatenation of the questions from several files.
// FilesLoaded counts every file that was attempted, including the ones that
// could not be read.
type QuestionSet struct {
	Questions   []json.RawMessage `json:"questions"`
	Total       int               `json:"total"`
	FilesLoaded int               `json:"files_loaded"`
}

func NewService(dataRoot string) *Service {
	return &Service{dataRoot: dataRoot}
}

func (s *Service) ListTree(ctx context.Context) (*Folder, error) {
	if err := s.ensureDataRoot(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return BuildTree(s.dataRoot, s.dataRoot), nil
}

func (s *Service) LoadQuestions(ctx context.Context, ids []string) (*QuestionSet, error) {
	if err := s.ensureDataRoot(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoFiles
	}

	set := &QuestionSet{Questions: []json.RawMessage{}}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		set.FilesLoaded++

		path, err := ResolvePath(s.dataRoot, id)
		if err != nil {
			log.Printf("error loading %s: %v", id, err)
			continue
		}
		doc, err := ReadFile(path)
		if err != nil {
			log.Printf("error loading %s: %v", id, err)
			continue
		}
		set.Questions = append(set.Questions, doc.Questions...)
	}
	set.Total = len(set.Questions)
	return set, nil
}

func (s *Service) ensureDataRoot() error {
	info, err := os.Stat(s.dataRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrDataRootNotFound
		}
		return fmt.Errorf("stat data folder: %w", err)
	}
	if !info.IsDir() {
		return ErrDataRootNotFound
	}
	return nil
}
