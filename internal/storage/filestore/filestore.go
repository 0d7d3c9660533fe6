// Package filestore keeps every record in one JSON document that is rewritten
// whole on each commit. Writers are serialized by a mutex; the store assumes
// it is the only process writing the file.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/carson-networks/trackease/internal/storage/transaction"
	"github.com/carson-networks/trackease/internal/storage/user"
)

var ErrTxDone = errors.New("filestore: transaction already finished")

type Store struct {
	mu   sync.Mutex
	path string
	doc  *document
	now  func() time.Time
}

// Open loads path, creating it (and its directory) when missing or empty.
// Stored dates without a zone are read in loc; nil means time.Local.
func Open(path string, loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Store{path: path, now: time.Now}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "filestore: create data directory")
	}

	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "filestore: read")
	}

	doc := &document{}
	if len(bytes.TrimSpace(raw)) == 0 {
		if err := s.flush(doc); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(raw, doc); err != nil {
		return nil, errors.Wrapf(err, "filestore: decode %s", path)
	}
	doc.resolveDates(loc)
	s.doc = doc

	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Transactions returns a table whose mutations commit immediately.
func (s *Store) Transactions() transaction.ITransactionTable {
	return &autoTransactions{store: s}
}

// Users returns a table whose mutations commit immediately.
func (s *Store) Users() user.IUserTable {
	return &autoUsers{store: s}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := os.Stat(s.path)
	return errors.Wrap(err, "filestore: stat")
}

// Begin locks the store and hands out a private copy of the document.
// Commit persists the copy and makes it current; Rollback discards it.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &Tx{store: s, doc: s.doc.clone()}, nil
}

func (s *Store) snapshot() *document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.clone()
}

// flush writes doc to a temp file in the same directory and renames it over
// the target so readers never see a partial file.
func (s *Store) flush(doc *document) error {
	if doc.Transactions == nil {
		doc.Transactions = []transactionRecord{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "filestore: encode")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "filestore: create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "filestore: write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "filestore: sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "filestore: close temp file")
	}
	return errors.Wrap(os.Rename(tmpName, s.path), "filestore: replace")
}

type Tx struct {
	store *Store
	doc   *document
	done  bool
}

func (tx *Tx) Transactions() transaction.ITransactionTable {
	return &transactionTable{doc: tx.doc, now: tx.store.now}
}

func (tx *Tx) Users() user.IUserTable {
	return &userTable{doc: tx.doc, now: tx.store.now}
}

func (tx *Tx) Commit() error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	defer tx.store.mu.Unlock()

	if err := tx.store.flush(tx.doc); err != nil {
		return err
	}
	tx.store.doc = tx.doc
	return nil
}

func (tx *Tx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.store.mu.Unlock()
	return nil
}
