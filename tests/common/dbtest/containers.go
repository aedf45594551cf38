//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/infra/mongostore"
	"course-enrollment/internal/pkg/config"
	"course-enrollment/migrations"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	postgresOnce      sync.Once
	postgresContainer testcontainers.Container
	postgresErr       error

	mongoOnce      sync.Once
	mongoContainer testcontainers.Container
	mongoErr       error

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// ------------------------------------------------------------
// PostgreSQL
// ------------------------------------------------------------

// NewPostgresDB creates a fresh database on the shared postgres:17 container,
// applies the migrations and drops it on cleanup.
func NewPostgresDB(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	postgresOnce.Do(func() {
		postgresContainer, postgresErr = startContainer(testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}, 180)
	})
	require.NoError(t, postgresErr, "failed to start postgres container")

	info, err := hostPort(postgresContainer, "5432/tcp")
	require.NoError(t, err)

	dbName := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, info.Host, info.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err)
	defer adminPool.Close()

	var createErr error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(min(time.Duration(500+attempt*500)*time.Millisecond, 3*time.Second))
		}
		if _, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName); createErr == nil {
			break
		}
		slog.Warn("retrying test database creation", "attempt", attempt+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "failed to create test database")

	cfg := config.DBConfig{
		Host:     info.Host,
		Port:     info.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 20,
	}
	pool, cleanup, err := db.Connect(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, pool, migrations.FS))

	t.Cleanup(func() {
		cleanup()
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		p, err := pgxpool.New(dropCtx, adminDSN)
		if err != nil {
			slog.Warn("failed to connect for test database cleanup", "database", dbName, "error", err.Error())
			return
		}
		defer p.Close()
		if _, err := p.Exec(dropCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})
	return pool, cfg
}

// ------------------------------------------------------------
// MongoDB
// ------------------------------------------------------------

// NewMongoDB returns a uniquely named database on the shared mongo:7
// container with the store indexes in place.
func NewMongoDB(t *testing.T) (*mongo.Database, config.MongoConfig) {
	t.Helper()

	mongoOnce.Do(func() {
		mongoContainer, mongoErr = startContainer(testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}, 180)
	})
	require.NoError(t, mongoErr, "failed to start mongo container")

	info, err := hostPort(mongoContainer, "27017/tcp")
	require.NoError(t, err)

	cfg := config.MongoConfig{
		URI:            fmt.Sprintf("mongodb://%s:%s", info.Host, info.Port.Port()),
		Database:       "test_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		ConnectTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	database, cleanup, err := mongostore.Connect(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, mongostore.EnsureIndexes(ctx, database))

	t.Cleanup(func() {
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		if err := database.Drop(dropCtx); err != nil {
			slog.Warn("failed to drop mongo test database", "database", cfg.Database, "error", err.Error())
		}
		cleanup()
	})
	return database, cfg
}

func startContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func hostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mapped}, nil
}
