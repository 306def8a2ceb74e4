package history

import (
	"context"
	"fmt"

	"github.com/yildizm/BrandSum/internal/common"
)

// FileSource lists records from a history JSON file. The file is reread on every
// call, so a FileSource always reflects the file's current contents.
type FileSource struct {
	path string
}

// NewFileSource creates a source for path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the history file path
func (f *FileSource) Path() string {
	return f.path
}

// List returns the requested page
func (f *FileSource) List(ctx context.Context, q Query) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := common.LoadRecordsFromFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	return NewMemorySource(records).List(ctx, q)
}
