package transcription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"MorphScanner/internal/domain"
)

// ErrUnknownFormat is returned when no reader is registered under a name.
var ErrUnknownFormat = errors.New("unknown transcription format")

// Request carries everything a reader needs to tokenise one document.
type Request struct {
	Name     string
	Body     io.Reader
	Sections *SectionMap
}

// Reader captures a single transcription format (plain text, HTML, etc.).
// Readers number sentences and positions from zero; the caller renumbers
// when several documents are concatenated.
type Reader interface {
	Name() string
	Read(ctx context.Context, req Request) ([]domain.Token, error)
}

// Registry keeps a mapping from format names to their readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{readers: map[string]Reader{}}
}

// Register adds or replaces a reader implementation.
func (r *Registry) Register(reader Reader) {
	if r.readers == nil {
		r.readers = map[string]Reader{}
	}
	r.readers[reader.Name()] = reader
}

// Resolve returns a reader by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Reader, error) {
	if reader, ok := r.readers[name]; ok {
		return reader, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Names lists the registered formats.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.readers))
	for n := range r.readers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
