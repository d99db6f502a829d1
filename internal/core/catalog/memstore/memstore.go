// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memstore provides an in-memory implementation of [catalog.Store].

It mirrors the relational schema closely enough to stand in for PostgreSQL in
service tests and local runs:

  - Generated values: ids, canonical URLs and the author's full name.
  - Restrict deletes: referenced authors, publishers and comics cannot be removed.
  - Cascades: deleting a comic or a genre drops its association rows.
  - Unique keys: genre and publisher names (case-insensitive), volume numbers per comic.

Transactions run on a private copy of the tables that replaces the shared state
on commit. Writers are serialized; readers outside a transaction never observe
a partial write.
*/
package memstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taibuivan/comiking/internal/core/catalog"
	"github.com/taibuivan/comiking/internal/platform/apperr"
)

// Engine is the shared in-memory database.
type Engine struct {
	mu     sync.RWMutex
	tables *tables
	writes atomic.Int64

	// now supplies the default release date.
	now func() time.Time
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{
		tables: newTables(),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Writes returns the number of write statements executed so far, committed or not.
func (engine *Engine) Writes() int64 {
	return engine.writes.Load()
}

// Store returns the engine as a [catalog.Store].
func (engine *Engine) Store() catalog.Store {
	return &session{engine: engine}
}

// # Tables

type association struct {
	comicID int
	genreID int
}

type tables struct {
	genres      map[int]catalog.Genre
	publishers  map[int]catalog.Publisher
	authors     map[int]catalog.Author
	comics      map[int]catalog.Comic
	volumes     map[int]catalog.Volume
	comicGenres map[association]struct{}

	// Last issued id per table, like a SERIAL sequence. Not rolled back.
	sequences map[string]int
}

func newTables() *tables {
	return &tables{
		genres:      make(map[int]catalog.Genre),
		publishers:  make(map[int]catalog.Publisher),
		authors:     make(map[int]catalog.Author),
		comics:      make(map[int]catalog.Comic),
		volumes:     make(map[int]catalog.Volume),
		comicGenres: make(map[association]struct{}),
		sequences:   make(map[string]int),
	}
}

func (t *tables) clone() *tables {
	return &tables{
		genres:      cloneMap(t.genres),
		publishers:  cloneMap(t.publishers),
		authors:     cloneMap(t.authors),
		comics:      cloneMap(t.comics),
		volumes:     cloneMap(t.volumes),
		comicGenres: cloneMap(t.comicGenres),
		sequences:   cloneMap(t.sequences),
	}
}

func (t *tables) nextID(table string) int {
	t.sequences[table]++
	return t.sequences[table]
}

func cloneMap[K comparable, V any](source map[K]V) map[K]V {
	clone := make(map[K]V, len(source))
	for key, value := range source {
		clone[key] = value
	}
	return clone
}

// # Sessions

// session is a [catalog.Store] bound either to the shared tables or to the
// private copy of an open transaction.
type session struct {
	engine *Engine

	// tx is the transaction copy. nil outside a transaction.
	tx *tables
}

func (s *session) Genres() catalog.GenreRepository         { return &genreRepository{session: s} }
func (s *session) Publishers() catalog.PublisherRepository { return &publisherRepository{session: s} }
func (s *session) Authors() catalog.AuthorRepository       { return &authorRepository{session: s} }
func (s *session) Comics() catalog.ComicRepository         { return &comicRepository{session: s} }
func (s *session) Volumes() catalog.VolumeRepository       { return &volumeRepository{session: s} }

/*
InTx runs fn against a private copy of the tables.

Description: The outermost call holds the engine's write lock until fn returns
and swaps the copy in on success. A nested call takes a snapshot of the current
copy and restores it when fn fails, like a savepoint.
*/
func (s *session) InTx(context context.Context, fn func(tx catalog.Store) error) error {
	if err := checkContext(context); err != nil {
		return err
	}

	if s.tx != nil {
		savepoint := s.tx.clone()
		if err := fn(s); err != nil {
			sequences := s.tx.sequences
			*s.tx = *savepoint
			s.tx.sequences = sequences
			return err
		}
		return nil
	}

	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()

	tx := &session{engine: s.engine, tx: s.engine.tables.clone()}
	if err := fn(tx); err != nil {
		// Sequences advance even on rollback.
		s.engine.tables.sequences = tx.tx.sequences
		return err
	}

	s.engine.tables = tx.tx
	return nil
}

// Ping implements [catalog.Store].
func (s *session) Ping(context context.Context) error {
	return checkContext(context)
}

// read runs fn against the visible tables under a read lock.
func (s *session) read(context context.Context, fn func(t *tables) error) error {
	if err := checkContext(context); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}

	s.engine.mu.RLock()
	defer s.engine.mu.RUnlock()
	return fn(s.engine.tables)
}

// write runs fn as one statement. Outside a transaction the statement commits alone.
func (s *session) write(context context.Context, fn func(t *tables) error) error {
	if err := checkContext(context); err != nil {
		return err
	}
	s.engine.writes.Add(1)

	if s.tx != nil {
		return applyStatement(s.tx, fn)
	}

	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()
	return applyStatement(s.engine.tables, fn)
}

// applyStatement makes fn atomic: a failing statement leaves t untouched.
func applyStatement(t *tables, fn func(t *tables) error) error {
	working := t.clone()
	if err := fn(working); err != nil {
		t.sequences = working.sequences
		return err
	}
	*t = *working
	return nil
}

// # Errors

// checkContext reports a cancelled or expired request as an unreachable engine,
// the same way the PostgreSQL store classifies an aborted statement.
func checkContext(context context.Context) error {
	if err := context.Err(); err != nil {
		return apperr.ServiceUnavailable("Storage unavailable").WithCause(err)
	}
	return nil
}

func uniqueViolation(resource string) error {
	return apperr.Conflict(fmt.Sprintf("%s already exists", resource))
}

func stillReferenced(resource string) error {
	return apperr.Conflict(fmt.Sprintf("%s is still referenced and cannot be deleted", resource))
}

func danglingReference(resource string) error {
	return apperr.Conflict(fmt.Sprintf("%s references a record that does not exist", resource))
}

func checkViolation(resource string) error {
	return apperr.ValidationError(fmt.Sprintf("%s violates a storage constraint", resource))
}
