// Package sheets declares the application's ports: the read side served by
// the sqlite and memory backends, and the outbound export side implemented
// by the Google Sheets client. The reporting code itself never appears here;
// it consumes the already-resolved entries these ports return.
package sheets

import (
	"context"

	"ore/internal/core"
)

type (
	// EntryWriter mirrors a stored entry into the export target.
	EntryWriter interface {
		Append(ctx context.Context, storageID int64, e core.Entry) (rowRef string, err error)
	}

	// EntryDeleter removes a previously exported entry.
	EntryDeleter interface {
		Delete(ctx context.Context, storageID int64) error
	}

	// EntryLister returns fully joined entries: every Entry carries its
	// Person, Project and the Project's Client already resolved.
	EntryLister interface {
		ListEntries(ctx context.Context) ([]core.Entry, error)
		ListEntriesByPerson(ctx context.Context, slug string) ([]core.Entry, error)
		ListEntriesByProject(ctx context.Context, slug string) ([]core.Entry, error)
		ListEntriesByClient(ctx context.Context, slug string) ([]core.Entry, error)
	}

	// DirectoryReader serves the people/projects/clients catalogue.
	DirectoryReader interface {
		ListClients(ctx context.Context) ([]core.Client, error)
		ListProjects(ctx context.Context) ([]core.Project, error)
		ListPeople(ctx context.Context) ([]core.Person, error)
		GetClientBySlug(ctx context.Context, slug string) (core.Client, error)
		GetProjectBySlug(ctx context.Context, slug string) (core.Project, error)
		GetPersonBySlug(ctx context.Context, slug string) (core.Person, error)
	}

	// DirectoryWriter creates catalogue records; slugs are derived from the
	// name and uniquified by the implementation.
	DirectoryWriter interface {
		CreateClient(ctx context.Context, name string) (core.Client, error)
		CreateProject(ctx context.Context, name, clientSlug string) (core.Project, error)
		CreatePerson(ctx context.Context, name string) (core.Person, error)
	}

	// EntryRecorder persists worked-time facts.
	EntryRecorder interface {
		RecordEntry(ctx context.Context, e core.Entry) (int64, error)
		DeleteEntry(ctx context.Context, id int64) error
	}
)
