package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/domain/repository"
)

// FileStore keeps uploaded bytes in a map keyed by name.
type FileStore struct {
	mu    sync.Mutex
	files map[string][]byte

	FailSave error
}

func NewFileStore() *FileStore {
	return &FileStore{files: map[string][]byte{}}
}

func (s *FileStore) Save(_ context.Context, name, _ string, r io.Reader) (repository.StoredFile, error) {
	if s.FailSave != nil {
		return repository.StoredFile{}, s.FailSave
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return repository.StoredFile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = b
	return repository.StoredFile{Name: name, Path: "/uploads/" + name}, nil
}

func (s *FileStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
	return nil
}

// Names returns the stored file names.
func (s *FileStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for n := range s.files {
		out = append(out, n)
	}
	return out
}

// ListingIndex matches the search term as a substring of title or category.
type ListingIndex struct {
	mu   sync.Mutex
	docs map[string]entity.Listing

	FailSearch error
}

func NewListingIndex() *ListingIndex {
	return &ListingIndex{docs: map[string]entity.Listing{}}
}

func (x *ListingIndex) Index(_ context.Context, l *entity.Listing) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.docs[l.ID] = *l
	return nil
}

func (x *ListingIndex) Remove(_ context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.docs, id)
	return nil
}

func (x *ListingIndex) Search(_ context.Context, term string, size int) ([]string, error) {
	if x.FailSearch != nil {
		return nil, x.FailSearch
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	term = strings.ToLower(term)
	var out []string
	for id, l := range x.docs {
		if strings.Contains(strings.ToLower(l.Title), term) || strings.Contains(strings.ToLower(l.Category), term) {
			out = append(out, id)
		}
		if size > 0 && len(out) >= size {
			break
		}
	}
	return out, nil
}

func (x *ListingIndex) Has(id string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	_, ok := x.docs[id]
	return ok
}

// Notification is one recorded Notify call.
type Notification struct {
	To       string
	Template string
	Data     map[string]any
}

type Notifier struct {
	mu   sync.Mutex
	Sent []Notification
}

func (n *Notifier) Notify(_ context.Context, to, template string, data map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, Notification{To: to, Template: template, Data: data})
	return nil
}

func (n *Notifier) Templates() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.Sent))
	for _, s := range n.Sent {
		out = append(out, s.Template)
	}
	return out
}

type AuditLog struct {
	mu     sync.Mutex
	Events []repository.AuditEvent
}

func (a *AuditLog) Record(_ context.Context, e repository.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Events = append(a.Events, e)
	return nil
}

func (a *AuditLog) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.Events))
	for _, e := range a.Events {
		out = append(out, e.Action)
	}
	return out
}

// ErrUnavailable simulates a backend outage.
var ErrUnavailable = errors.New("backend unavailable")

var (
	_ repository.FileStore    = (*FileStore)(nil)
	_ repository.ListingIndex = (*ListingIndex)(nil)
	_ repository.Notifier     = (*Notifier)(nil)
	_ repository.AuditLog     = (*AuditLog)(nil)
)
