package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"blogposts/app/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUnsupported is returned by Backup and Restore on drivers without them.
var ErrUnsupported = errors.New("operation not supported by storage driver")

const connectTimeout = 10 * time.Second

// Store owns the storage connection behind a PostRepository.
type Store struct {
	Posts  PostRepository
	driver string
	close  func() error
}

// Open connects to the store selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	default:
		return OpenBadger(cfg.BadgerPath)
	}
}

// OpenBadger opens a Badger store at path, or an in-memory one when path is empty.
func OpenBadger(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}

	log.Info().Str("driver", config.DriverBadger).Str("path", path).Bool("in_memory", path == "").Msg("Storage opened")
	return &Store{
		Posts:  NewBadgerPostRepository(db),
		driver: config.DriverBadger,
		close:  db.Close,
	}, nil
}

func openMongo(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
	log.Info().Str("driver", config.DriverMongo).Str("database", cfg.MongoDatabase).Str("collection", cfg.MongoCollection).Msg("Storage opened")

	return &Store{
		Posts:  NewMongoPostRepository(coll),
		driver: config.DriverMongo,
		close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			return client.Disconnect(ctx)
		},
	}, nil
}

// Driver names the backing store.
func (s *Store) Driver() string {
	return s.driver
}

// Close releases the storage connection. It is safe to call more than once.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	err := s.close()
	s.close = nil
	return err
}

type backupper interface {
	Backup(w io.Writer) error
	Restore(r io.Reader) error
}

// Backup writes a full backup when the driver supports it.
func (s *Store) Backup(w io.Writer) error {
	b, ok := s.Posts.(backupper)
	if !ok {
		return fmt.Errorf("backup on %s: %w", s.driver, ErrUnsupported)
	}
	return b.Backup(w)
}

// Restore loads a backup when the driver supports it.
func (s *Store) Restore(r io.Reader) error {
	b, ok := s.Posts.(backupper)
	if !ok {
		return fmt.Errorf("restore on %s: %w", s.driver, ErrUnsupported)
	}
	return b.Restore(r)
}
