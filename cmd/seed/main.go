package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"labhub/internal/config"
	"labhub/internal/domain/models"
	"labhub/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	taskRepo := postgres.NewTaskRepository(repoConfig)

	log.Println("👤 Seeding demo users...")
	admin := &models.User{Name: "Ada Admin", Email: "ada@labhub.dev", Role: models.RoleAdmin, Department: "Operations"}
	lead := &models.User{Name: "Liu Wen", Email: "liu@labhub.dev", Role: models.RoleResearchLead, Department: "Biology"}
	member := &models.User{Name: "Mira Santos", Email: "mira@labhub.dev", Role: models.RoleTeamMember, Department: "Biology"}

	for _, u := range []*models.User{admin, lead, member} {
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Email, err)
		}
		log.Printf("✅ Created user %s (%s)", u.Name, u.ID)
	}

	log.Println("📁 Seeding demo project...")
	deadline := time.Now().AddDate(0, 3, 0)
	project := &models.Project{
		Title:        "Protein Folding Survey",
		Description:  "Benchmark folding predictions against wet-lab results",
		ResearchLead: lead.ID,
		TeamMembers:  []string{member.ID},
		Goals: models.GoalList{
			{Description: "Collect baseline structures", IsCompleted: true},
			{Description: "Run prediction batch", IsCompleted: false},
		},
		Status:   models.StatusActive,
		Deadline: &deadline,
		Budget:   25000,
		Tags:     []string{"proteins", "benchmark"},
	}
	if err := projectRepo.Create(ctx, project); err != nil {
		log.Fatalf("Failed to create project: %v", err)
	}
	log.Printf("✅ Created project %s", project.ID)

	log.Println("📝 Seeding demo tasks...")
	taskDeadline := time.Now().AddDate(0, 1, 0)
	estimated := 12.0
	tasks := []*models.Task{
		{
			Project:        project.ID,
			Title:          "Prepare sample set",
			Description:    "Select 50 structures from the PDB baseline",
			AssignedTo:     &member.ID,
			AssignedBy:     lead.ID,
			Status:         models.TaskInProgress,
			Priority:       "high",
			Deadline:       &taskDeadline,
			EstimatedHours: &estimated,
		},
		{
			Project:     project.ID,
			Title:       "Draft evaluation protocol",
			Description: "Write up the scoring methodology",
			AssignedBy:  lead.ID,
			Status:      models.TaskPending,
			Priority:    "medium",
		},
	}
	for _, t := range tasks {
		if err := taskRepo.Create(ctx, t); err != nil {
			log.Fatalf("Failed to create task %q: %v", t.Title, err)
		}
		log.Printf("✅ Created task %s (%s)", t.Title, t.ID)
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist.
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\""); err != nil {
		return err
	}

	createUsers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL,
			department TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsers); err != nil {
		return err
	}

	createProjects := `
		CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			research_lead UUID NOT NULL,
			team_members UUID[] NOT NULL DEFAULT '{}',
			goals JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'planning',
			deadline TIMESTAMPTZ,
			budget DOUBLE PRECISION NOT NULL DEFAULT 0,
			tags TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createProjects); err != nil {
		return err
	}

	createTasks := `
		CREATE TABLE IF NOT EXISTS ` + tables.Tasks + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project UUID NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			assigned_to UUID,
			assigned_by UUID NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			priority TEXT NOT NULL DEFAULT 'medium',
			deadline TIMESTAMPTZ,
			estimated_hours DOUBLE PRECISION,
			actual_hours DOUBLE PRECISION,
			comments TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createTasks); err != nil {
		return err
	}

	createComments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Comments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project UUID NOT NULL,
			author UUID NOT NULL,
			content TEXT NOT NULL,
			attachments JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createComments); err != nil {
		return err
	}

	// Dangling task/comment project references are kept visible rather than
	// cascaded away, so no FK constraints to the projects table here.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_lead ON ` + tables.Projects + `(research_lead)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_members ON ` + tables.Projects + ` USING GIN(team_members)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `tasks_project ON ` + tables.Tasks + `(project)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `tasks_assigned_to ON ` + tables.Tasks + `(assigned_to)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_project ON ` + tables.Comments + `(project, created_at DESC)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse dependency order.
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Comments,
		tables.Tasks,
		tables.Projects,
		tables.Users,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}
