// Package memory implements the catalogue and entry ports in process
// memory. It is the development backend: no sqlite file, no migrations,
// everything gone on restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"ore/internal/core"
	"ore/internal/storage"
)

type Store struct {
	mu       sync.Mutex
	clients  []core.Client
	projects []core.Project
	people   []core.Person
	entries  map[int64]core.Entry
	nextID   int64
}

func New() *Store {
	return &Store{entries: make(map[int64]core.Entry), nextID: 1}
}

// Seed installs a small demo catalogue so the index page is not empty
// on first run.
func Seed(s *Store) {
	ctx := context.Background()
	acme, _ := s.CreateClient(ctx, "Acme")
	_, _ = s.CreateProject(ctx, "Alpha", acme.Slug)
	_, _ = s.CreatePerson(ctx, "Demo User")
}

func (s *Store) CreateClient(_ context.Context, name string) (core.Client, error) {
	c := core.Client{Name: name, Slug: core.Slugify(name)}
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Slug = s.uniqueSlug(c.Slug, func(slug string) bool {
		for _, existing := range s.clients {
			if existing.Slug == slug {
				return true
			}
		}
		return false
	})
	c.ID = int64(len(s.clients) + 1)
	s.clients = append(s.clients, c)
	return c, nil
}

func (s *Store) CreateProject(ctx context.Context, name, clientSlug string) (core.Project, error) {
	client, err := s.GetClientBySlug(ctx, clientSlug)
	if err != nil {
		return core.Project{}, err
	}
	p := core.Project{Name: name, Slug: core.Slugify(name), Client: client}
	if err := p.Validate(); err != nil {
		return core.Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Slug = s.uniqueSlug(p.Slug, func(slug string) bool {
		for _, existing := range s.projects {
			if existing.Slug == slug {
				return true
			}
		}
		return false
	})
	p.ID = int64(len(s.projects) + 1)
	s.projects = append(s.projects, p)
	return p, nil
}

func (s *Store) CreatePerson(_ context.Context, name string) (core.Person, error) {
	p := core.Person{Name: name, Slug: core.Slugify(name)}
	if err := p.Validate(); err != nil {
		return core.Person{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Slug = s.uniqueSlug(p.Slug, func(slug string) bool {
		for _, existing := range s.people {
			if existing.Slug == slug {
				return true
			}
		}
		return false
	})
	p.ID = int64(len(s.people) + 1)
	s.people = append(s.people, p)
	return p, nil
}

func (s *Store) GetClientBySlug(_ context.Context, slug string) (core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.Slug == slug {
			return c, nil
		}
	}
	return core.Client{}, fmt.Errorf("client %q: %w", slug, storage.ErrNotFound)
}

func (s *Store) GetProjectBySlug(_ context.Context, slug string) (core.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return core.Project{}, fmt.Errorf("project %q: %w", slug, storage.ErrNotFound)
}

func (s *Store) GetPersonBySlug(_ context.Context, slug string) (core.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.people {
		if p.Slug == slug {
			return p, nil
		}
	}
	return core.Person{}, fmt.Errorf("person %q: %w", slug, storage.ErrNotFound)
}

func (s *Store) ListClients(_ context.Context) ([]core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Client(nil), s.clients...), nil
}

func (s *Store) ListProjects(_ context.Context) ([]core.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Project(nil), s.projects...), nil
}

func (s *Store) ListPeople(_ context.Context) ([]core.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Person(nil), s.people...), nil
}

func (s *Store) RecordEntry(_ context.Context, e core.Entry) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	e.ID = id
	s.entries[id] = e
	return id, nil
}

func (s *Store) DeleteEntry(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("entry %d: %w", id, storage.ErrNotFound)
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) ListEntries(_ context.Context) ([]core.Entry, error) {
	return s.filterEntries(func(core.Entry) bool { return true }), nil
}

func (s *Store) ListEntriesByPerson(_ context.Context, slug string) ([]core.Entry, error) {
	return s.filterEntries(func(e core.Entry) bool { return e.Person.Slug == slug }), nil
}

func (s *Store) ListEntriesByProject(_ context.Context, slug string) ([]core.Entry, error) {
	return s.filterEntries(func(e core.Entry) bool { return e.Project.Slug == slug }), nil
}

func (s *Store) ListEntriesByClient(_ context.Context, slug string) ([]core.Entry, error) {
	return s.filterEntries(func(e core.Entry) bool { return e.Project.Client.Slug == slug }), nil
}

func (s *Store) filterEntries(keep func(core.Entry) bool) []core.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Entry
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// uniqueSlug must be called with s.mu held.
func (s *Store) uniqueSlug(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
