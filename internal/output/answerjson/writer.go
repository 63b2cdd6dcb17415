package answerjson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/logger"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// Writer outputs rendered answers to a JSON lines file.
type Writer struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewWriter creates a JSONL writer for answers.
func NewWriter(path string) (*Writer, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	logger.Infof("Answer JSON writer initialized: %s", path)
	return &Writer{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// WriteAnswers writes a batch of answers.
func (w *Writer) WriteAnswers(answers []*models.Answer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, answer := range answers {
		if err := w.encoder.Encode(answer); err != nil {
			return fmt.Errorf("failed to encode answer: %w", err)
		}
	}
	return nil
}

// Close closes the output file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
