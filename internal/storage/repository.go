package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ore/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a slug or id does not resolve to a record.
var ErrNotFound = errors.New("not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// uniqueSlug derives a slug from name and appends a numeric suffix until it
// is free in the given table.
func (r *SQLiteRepository) uniqueSlug(ctx context.Context, table, name string) (string, error) {
	base := core.Slugify(name)
	if base == "" {
		return "", core.ErrEmptyName
	}

	slug := base
	for i := 2; ; i++ {
		var exists int
		// table is always one of our fixed table names, never user input
		query := fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE slug = ?", table)
		if err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
			return "", fmt.Errorf("check slug %q: %w", slug, err)
		}
		if exists == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateClient implements sheets.DirectoryWriter
func (r *SQLiteRepository) CreateClient(ctx context.Context, name string) (core.Client, error) {
	client := core.Client{Name: name}
	if err := client.Validate(); err != nil {
		return core.Client{}, fmt.Errorf("validate client: %w", err)
	}

	slug, err := r.uniqueSlug(ctx, "clients", name)
	if err != nil {
		return core.Client{}, fmt.Errorf("slug for client %q: %w", name, err)
	}

	res, err := r.db.ExecContext(ctx, "INSERT INTO clients (name, slug) VALUES (?, ?)", name, slug)
	if err != nil {
		return core.Client{}, fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Client{}, fmt.Errorf("client insert id: %w", err)
	}

	slog.InfoContext(ctx, "Client created", "id", id, "slug", slug)
	return core.Client{ID: id, Name: name, Slug: slug}, nil
}

// CreateProject implements sheets.DirectoryWriter
func (r *SQLiteRepository) CreateProject(ctx context.Context, name, clientSlug string) (core.Project, error) {
	client, err := r.GetClientBySlug(ctx, clientSlug)
	if err != nil {
		return core.Project{}, fmt.Errorf("resolve client %q: %w", clientSlug, err)
	}

	project := core.Project{Name: name, Client: client}
	if err := project.Validate(); err != nil {
		return core.Project{}, fmt.Errorf("validate project: %w", err)
	}

	slug, err := r.uniqueSlug(ctx, "projects", name)
	if err != nil {
		return core.Project{}, fmt.Errorf("slug for project %q: %w", name, err)
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (name, slug, client_id) VALUES (?, ?, ?)", name, slug, client.ID)
	if err != nil {
		return core.Project{}, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Project{}, fmt.Errorf("project insert id: %w", err)
	}

	slog.InfoContext(ctx, "Project created", "id", id, "slug", slug, "client", client.Slug)
	return core.Project{ID: id, Name: name, Slug: slug, Client: client}, nil
}

// CreatePerson implements sheets.DirectoryWriter
func (r *SQLiteRepository) CreatePerson(ctx context.Context, name string) (core.Person, error) {
	person := core.Person{Name: name}
	if err := person.Validate(); err != nil {
		return core.Person{}, fmt.Errorf("validate person: %w", err)
	}

	slug, err := r.uniqueSlug(ctx, "people", name)
	if err != nil {
		return core.Person{}, fmt.Errorf("slug for person %q: %w", name, err)
	}

	res, err := r.db.ExecContext(ctx, "INSERT INTO people (name, slug) VALUES (?, ?)", name, slug)
	if err != nil {
		return core.Person{}, fmt.Errorf("insert person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Person{}, fmt.Errorf("person insert id: %w", err)
	}

	slog.InfoContext(ctx, "Person created", "id", id, "slug", slug)
	return core.Person{ID: id, Name: name, Slug: slug}, nil
}

// GetClientBySlug implements sheets.DirectoryReader
func (r *SQLiteRepository) GetClientBySlug(ctx context.Context, slug string) (core.Client, error) {
	var c core.Client
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, slug FROM clients WHERE slug = ?", slug).Scan(&c.ID, &c.Name, &c.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Client{}, fmt.Errorf("client %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return core.Client{}, fmt.Errorf("get client by slug: %w", err)
	}
	return c, nil
}

// GetProjectBySlug implements sheets.DirectoryReader
func (r *SQLiteRepository) GetProjectBySlug(ctx context.Context, slug string) (core.Project, error) {
	var p core.Project
	err := r.db.QueryRowContext(ctx, `
		SELECT pr.id, pr.name, pr.slug, c.id, c.name, c.slug
		FROM projects pr
		JOIN clients c ON c.id = pr.client_id
		WHERE pr.slug = ?`, slug).
		Scan(&p.ID, &p.Name, &p.Slug, &p.Client.ID, &p.Client.Name, &p.Client.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Project{}, fmt.Errorf("project %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return core.Project{}, fmt.Errorf("get project by slug: %w", err)
	}
	return p, nil
}

// GetPersonBySlug implements sheets.DirectoryReader
func (r *SQLiteRepository) GetPersonBySlug(ctx context.Context, slug string) (core.Person, error) {
	var p core.Person
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, slug FROM people WHERE slug = ?", slug).Scan(&p.ID, &p.Name, &p.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Person{}, fmt.Errorf("person %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return core.Person{}, fmt.Errorf("get person by slug: %w", err)
	}
	return p, nil
}

// ListClients implements sheets.DirectoryReader
func (r *SQLiteRepository) ListClients(ctx context.Context) ([]core.Client, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug FROM clients ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []core.Client
	for rows.Next() {
		var c core.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// ListProjects implements sheets.DirectoryReader
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]core.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pr.id, pr.name, pr.slug, c.id, c.name, c.slug
		FROM projects pr
		JOIN clients c ON c.id = pr.client_id
		ORDER BY pr.name`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []core.Project
	for rows.Next() {
		var p core.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Client.ID, &p.Client.Name, &p.Client.Slug); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListPeople implements sheets.DirectoryReader
func (r *SQLiteRepository) ListPeople(ctx context.Context) ([]core.Person, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug FROM people ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []core.Person
	for rows.Next() {
		var p core.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}
