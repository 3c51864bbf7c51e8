package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/budgetbite/budgetbite/internal/config"
	"github.com/budgetbite/budgetbite/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "budgetbite"
	dbUser     = "test_budgetbite"
	dbPassword = "test_budgetbite"
	dbSchema   = "budgetbite"
)

func preparePostgresContainer(ctx context.Context) (*postgres.PostgresContainer, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %v", err)
	}

	pgContainer, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Errorf("failed to start container: %s", err)
		return nil, err
	}
	return pgContainer, nil
}

// TestWithDB starts a Postgres container, applies all migrations and returns a pool connected to it
// together with a cleanup function terminating the container. Meant to be called from TestMain.
func TestWithDB() (*pgxpool.Pool, func()) {
	ctx := context.Background()

	container, err := preparePostgresContainer(ctx)
	if err != nil {
		log.Errorf("Failed to start postgres container: %v", err)
		os.Exit(1)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432/tcp")
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   dbUser,
		Pass:   dbPassword,
		Name:   dbName,
		Schema: dbSchema,
	}

	if err := database.Migrate(cfg); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}

	return db, func() {
		db.Close()
		if err := container.Terminate(ctx); err != nil {
			log.Errorf("failed to terminate postgres container: %v", err)
		}
	}
}

// TruncateAll empties every application table once the test finishes.
func TruncateAll(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	t.Cleanup(func() {
		_, err := db.Exec(context.Background(), `TRUNCATE meal_plans, grocery_items, users RESTART IDENTITY CASCADE`)
		if err != nil {
			t.Errorf("failed to truncate tables: %v", err)
		}
	})
}

// InsertUser stores a minimal user row and returns its id.
func InsertUser(t *testing.T, db *pgxpool.Pool, username string) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (uid, username, email, password_hash) VALUES ($1, $2, $3, 'hash') RETURNING id`,
		"uid-"+username, username, username+"@example.com",
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
	return id
}

// findProjectRoot walks up from the working directory until it finds go.mod or .git.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(dir, ".git")) || fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
