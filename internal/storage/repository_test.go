package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"ore/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ore_test.db"))
	if err != nil {
		t.Fatalf("create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedEntry(t *testing.T, repo *SQLiteRepository, date core.Date, hours core.Hours, person core.Person, project core.Project) int64 {
	t.Helper()
	id, err := repo.CreateEntry(context.Background(), core.Entry{
		Date:    date,
		Hours:   hours,
		Person:  person,
		Project: project,
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	return id
}

func TestDirectoryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client, err := repo.CreateClient(ctx, "Acme Corp")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if client.Slug != "acme-corp" {
		t.Errorf("client slug = %q, want acme-corp", client.Slug)
	}

	project, err := repo.CreateProject(ctx, "Alpha", client.Slug)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.Client.ID != client.ID {
		t.Errorf("project client = %+v, want %+v", project.Client, client)
	}

	person, err := repo.CreatePerson(ctx, "Bob Smith")
	if err != nil {
		t.Fatalf("create person: %v", err)
	}

	got, err := repo.GetProjectBySlug(ctx, "alpha")
	if err != nil {
		t.Fatalf("get project by slug: %v", err)
	}
	if got.Name != "Alpha" || got.Client.Slug != "acme-corp" {
		t.Errorf("GetProjectBySlug = %+v, want Alpha under acme-corp", got)
	}

	if _, err := repo.GetPersonBySlug(ctx, person.Slug); err != nil {
		t.Errorf("get person by slug: %v", err)
	}
	if _, err := repo.GetClientBySlug(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing client error = %v, want ErrNotFound", err)
	}
}

func TestSlugUniqueness(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.CreatePerson(ctx, "Bob")
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.CreatePerson(ctx, "Bob")
	if err != nil {
		t.Fatal(err)
	}
	third, err := repo.CreatePerson(ctx, "Bob")
	if err != nil {
		t.Fatal(err)
	}

	if first.Slug != "bob" || second.Slug != "bob-2" || third.Slug != "bob-3" {
		t.Errorf("slugs = %q, %q, %q; want bob, bob-2, bob-3", first.Slug, second.Slug, third.Slug)
	}
}

func TestEntryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client, _ := repo.CreateClient(ctx, "Acme")
	project, _ := repo.CreateProject(ctx, "Alpha", client.Slug)
	person, _ := repo.CreatePerson(ctx, "Bob")

	id := seedEntry(t, repo, core.NewDate(2024, 3, 11), 7.5, person, project)

	got, err := repo.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if !got.Date.Equal(core.NewDate(2024, 3, 11)) {
		t.Errorf("date = %s, want 2024-03-11", got.Date.ISO())
	}
	if got.Hours != 7.5 {
		t.Errorf("hours = %v, want 7.5", got.Hours)
	}
	if got.Person.Slug != "bob" || got.Project.Slug != "alpha" || got.Project.Client.Slug != "acme" {
		t.Errorf("entry not fully joined: %+v", got)
	}
}

func TestEntryValidationRejected(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client, _ := repo.CreateClient(ctx, "Acme")
	project, _ := repo.CreateProject(ctx, "Alpha", client.Slug)
	person, _ := repo.CreatePerson(ctx, "Bob")

	_, err := repo.CreateEntry(ctx, core.Entry{
		Date:    core.NewDate(2024, 3, 11),
		Hours:   -1,
		Person:  person,
		Project: project,
	})
	if !errors.Is(err, core.ErrNegativeHours) {
		t.Errorf("negative hours error = %v, want ErrNegativeHours", err)
	}
}

func TestListEntriesScoping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	acme, _ := repo.CreateClient(ctx, "Acme")
	globex, _ := repo.CreateClient(ctx, "Globex")
	alpha, _ := repo.CreateProject(ctx, "Alpha", acme.Slug)
	beta, _ := repo.CreateProject(ctx, "Beta", acme.Slug)
	omega, _ := repo.CreateProject(ctx, "Omega", globex.Slug)
	bob, _ := repo.CreatePerson(ctx, "Bob")
	carol, _ := repo.CreatePerson(ctx, "Carol")

	seedEntry(t, repo, core.NewDate(2024, 3, 11), 2, bob, alpha)
	seedEntry(t, repo, core.NewDate(2024, 3, 12), 3, bob, beta)
	seedEntry(t, repo, core.NewDate(2024, 3, 13), 4, carol, omega)

	all, err := repo.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("ListEntries = %d entries, want 3", len(all))
	}

	byPerson, err := repo.ListEntriesByPerson(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(byPerson) != 2 {
		t.Errorf("ListEntriesByPerson(bob) = %d entries, want 2", len(byPerson))
	}

	byProject, err := repo.ListEntriesByProject(ctx, "beta")
	if err != nil {
		t.Fatal(err)
	}
	if len(byProject) != 1 || byProject[0].Hours != 3 {
		t.Errorf("ListEntriesByProject(beta) = %+v, want single 3h entry", byProject)
	}

	byClient, err := repo.ListEntriesByClient(ctx, "acme")
	if err != nil {
		t.Fatal(err)
	}
	if len(byClient) != 2 {
		t.Errorf("ListEntriesByClient(acme) = %d entries, want 2", len(byClient))
	}
}

func TestSoftDeleteHidesEntry(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client, _ := repo.CreateClient(ctx, "Acme")
	project, _ := repo.CreateProject(ctx, "Alpha", client.Slug)
	person, _ := repo.CreatePerson(ctx, "Bob")
	id := seedEntry(t, repo, core.NewDate(2024, 3, 11), 2, person, project)

	if err := repo.SoftDeleteEntry(ctx, id); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := repo.GetEntry(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted entry = %v, want ErrNotFound", err)
	}
	if err := repo.SoftDeleteEntry(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete = %v, want ErrNotFound", err)
	}

	all, err := repo.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("deleted entry still listed: %+v", all)
	}
}

func TestPendingSyncLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client, _ := repo.CreateClient(ctx, "Acme")
	project, _ := repo.CreateProject(ctx, "Alpha", client.Slug)
	person, _ := repo.CreatePerson(ctx, "Bob")
	first := seedEntry(t, repo, core.NewDate(2024, 3, 11), 2, person, project)
	second := seedEntry(t, repo, core.NewDate(2024, 3, 12), 3, person, project)

	pending, err := repo.GetPendingSyncEntries(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}

	if err := repo.MarkSynced(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkSyncError(ctx, second); err != nil {
		t.Fatal(err)
	}

	pending, err = repo.GetPendingSyncEntries(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after marking = %d, want 0", len(pending))
	}
}
