// Package store opens the database backends and translates driver errors
// into apperr kinds.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo dials uri and verifies the primary is reachable.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// OpenPostgres opens a lib/pq pool and pings it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// IsDuplicateKey reports a unique constraint violation from either backend.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// IsNoRows reports a missing document or row from either backend.
func IsNoRows(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, sql.ErrNoRows)
}

// IsInvalidInput reports a value Postgres could not parse as the column type,
// such as a non-UUID string bound to a UUID id.
func IsInvalidInput(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

// Translate wraps the common driver failures as apperr kinds; what names the entity in messages.
func Translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case IsNoRows(err), IsInvalidInput(err):
		return apperr.NotFound("%s not found", what)
	case IsDuplicateKey(err):
		return apperr.Conflict("%s already exists", what)
	}
	return err
}
