package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
	"go.uber.org/zap"
)

// Loader reads source documents from a knowledge base folder.
// Supported formats: .txt, .md, .docx. Other files are skipped with a warning.
type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadFolder loads every supported document from dir. A missing folder
// yields ErrNoDocuments; a folder with no supported documents is a valid
// empty knowledge base and loads as zero documents.
func (l *Loader) LoadFolder(dir string) ([]entity.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read knowledge base dir %s: %v", entity.ErrNoDocuments, dir, err)
	}

	var docs []entity.Document
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		content, err := l.loadFile(path)
		if err != nil {
			if errors.Is(err, entity.ErrUnsupportedFormat) {
				l.logger.Warn("skipping unsupported file", zap.String("file", e.Name()))
				continue
			}
			l.logger.Error("failed to load document", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		docs = append(docs, entity.Document{Source: e.Name(), Content: content})
		l.logger.Info("loaded document", zap.String("file", e.Name()), zap.Int("bytes", len(content)))
	}

	if len(docs) == 0 {
		l.logger.Warn("knowledge base is empty", zap.String("dir", dir))
	}
	return docs, nil
}

func (l *Loader) loadFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	case ".docx":
		return loadDocx(path)
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func loadDocx(path string) (string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			b.WriteString(run.Text())
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
