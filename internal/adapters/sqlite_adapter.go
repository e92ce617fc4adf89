// Package adapters bridges the storage layer to the application ports so
// HTTP handlers work unchanged whatever backend is configured.
package adapters

import (
	"context"

	"ore/internal/core"
	"ore/internal/services"
	"ore/internal/storage"
)

// SQLiteAdapter composes the repository with the entry service. Catalogue
// and listing calls go straight to storage; entry writes go through the
// service so every change also reaches the export pipeline.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.EntryService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.EntryService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// RecordEntry implements sheets.EntryRecorder.
func (a *SQLiteAdapter) RecordEntry(ctx context.Context, e core.Entry) (int64, error) {
	return a.service.RecordEntry(ctx, e)
}

// DeleteEntry implements sheets.EntryRecorder.
func (a *SQLiteAdapter) DeleteEntry(ctx context.Context, id int64) error {
	return a.service.DeleteEntry(ctx, id)
}

// CreateClient implements sheets.DirectoryWriter.
func (a *SQLiteAdapter) CreateClient(ctx context.Context, name string) (core.Client, error) {
	return a.storage.CreateClient(ctx, name)
}

// CreateProject implements sheets.DirectoryWriter.
func (a *SQLiteAdapter) CreateProject(ctx context.Context, name, clientSlug string) (core.Project, error) {
	return a.storage.CreateProject(ctx, name, clientSlug)
}

// CreatePerson implements sheets.DirectoryWriter.
func (a *SQLiteAdapter) CreatePerson(ctx context.Context, name string) (core.Person, error) {
	return a.storage.CreatePerson(ctx, name)
}

// GetClientBySlug implements sheets.DirectoryReader.
func (a *SQLiteAdapter) GetClientBySlug(ctx context.Context, slug string) (core.Client, error) {
	return a.storage.GetClientBySlug(ctx, slug)
}

// GetProjectBySlug implements sheets.DirectoryReader.
func (a *SQLiteAdapter) GetProjectBySlug(ctx context.Context, slug string) (core.Project, error) {
	return a.storage.GetProjectBySlug(ctx, slug)
}

// GetPersonBySlug implements sheets.DirectoryReader.
func (a *SQLiteAdapter) GetPersonBySlug(ctx context.Context, slug string) (core.Person, error) {
	return a.storage.GetPersonBySlug(ctx, slug)
}

// ListClients implements sheets.DirectoryReader.
func (a *SQLiteAdapter) ListClients(ctx context.Context) ([]core.Client, error) {
	return a.storage.ListClients(ctx)
}

// ListProjects implements sheets.DirectoryReader.
func (a *SQLiteAdapter) ListProjects(ctx context.Context) ([]core.Project, error) {
	return a.storage.ListProjects(ctx)
}

// ListPeople implements sheets.DirectoryReader.
func (a *SQLiteAdapter) ListPeople(ctx context.Context) ([]core.Person, error) {
	return a.storage.ListPeople(ctx)
}

// ListEntries implements sheets.EntryLister.
func (a *SQLiteAdapter) ListEntries(ctx context.Context) ([]core.Entry, error) {
	return a.storage.ListEntries(ctx)
}

// ListEntriesByPerson implements sheets.EntryLister.
func (a *SQLiteAdapter) ListEntriesByPerson(ctx context.Context, slug string) ([]core.Entry, error) {
	return a.storage.ListEntriesByPerson(ctx, slug)
}

// ListEntriesByProject implements sheets.EntryLister.
func (a *SQLiteAdapter) ListEntriesByProject(ctx context.Context, slug string) ([]core.Entry, error) {
	return a.storage.ListEntriesByProject(ctx, slug)
}

// ListEntriesByClient implements sheets.EntryLister.
func (a *SQLiteAdapter) ListEntriesByClient(ctx context.Context, slug string) ([]core.Entry, error) {
	return a.storage.ListEntriesByClient(ctx, slug)
}
