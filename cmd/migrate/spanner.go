package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// spannerTarget is a database path split into its parts.
type spannerTarget struct {
	project  string
	instance string
	database string
}

// parseDatabasePath splits projects/P/instances/I/databases/D.
func parseDatabasePath(path string) (spannerTarget, error) {
	parts := strings.Split(path, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" ||
		parts[1] == "" || parts[3] == "" || parts[5] == "" {
		return spannerTarget{}, fmt.Errorf("invalid Spanner database path %q", path)
	}
	return spannerTarget{project: parts[1], instance: parts[3], database: parts[5]}, nil
}

func (t spannerTarget) projectPath() string  { return "projects/" + t.project }
func (t spannerTarget) instancePath() string { return t.projectPath() + "/instances/" + t.instance }
func (t spannerTarget) databasePath() string { return t.instancePath() + "/databases/" + t.database }

func (t spannerTarget) migrate(ctx context.Context, dir string) error {
	if err := t.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	if err := t.ensureDatabase(ctx, adminClient); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := t.applyMigrations(ctx, adminClient, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (t spannerTarget) ensureInstance(ctx context.Context) error {
	log.Printf("Ensuring instance %s exists...", t.instance)

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: t.instancePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		log.Printf("Warning: unexpected error checking instance: %v", err)
		return nil
	}

	log.Println("Creating instance...")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     t.projectPath(),
		InstanceId: t.instance,
		Instance: &instancepb.Instance{
			Config:      t.projectPath() + "/instanceConfigs/emulator-config",
			DisplayName: "Order Tally",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}

	// The emulator may finish the operation before Wait polls it.
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Printf("Warning during instance creation: %v", err)
	}
	return nil
}

func (t spannerTarget) ensureDatabase(ctx context.Context, adminClient *database.DatabaseAdminClient) error {
	log.Printf("Ensuring database %s exists...", t.database)

	_, err := adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: t.databasePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			log.Printf("Proceeding with database (emulator mode): %v", err)
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	log.Println("Creating database...")
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          t.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", t.database),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// applyMigrations runs every *.sql file in name order, skipping CREATE TABLE
// statements for tables the database already has.
func (t spannerTarget) applyMigrations(ctx context.Context, adminClient *database.DatabaseAdminClient, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		log.Printf("No migration files found in %s", dir)
		return nil
	}

	current, err := adminClient.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: t.databasePath()})
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	existing := existingTables(current.GetStatements())

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := pendingStatements(splitDDLStatements(string(content)), existing)
		if len(statements) == 0 {
			log.Printf("Skipping %s, already applied", name)
			continue
		}

		log.Printf("Applying %s...", name)
		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   t.databasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
		for _, stmt := range statements {
			if table := createdTable(stmt); table != "" {
				existing[table] = true
			}
		}
	}
	return nil
}
