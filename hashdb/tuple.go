package hashdb

import (
	"context"

	"github.com/pkg/errors"

	_ "github.com/hidal-go/hidalgo/kv/all"

	"github.com/hidal-go/hidalgo/kv"
	"github.com/hidal-go/hidalgo/tuple"
	tuplekv "github.com/hidal-go/hidalgo/tuple/kv"
	"github.com/hidal-go/hidalgo/values"

	"github.com/direct-connect/go-tiger"
)

const (
	tableFiles = "files"
)

// TypeMemory is a database type that keeps hashes in memory only.
const TypeMemory = "mem"

// Open opens a hash database of a given type at the path.
// Types other than "mem" are hidalgo key-value backends, like "bolt" or "leveldb".
func Open(typ, path string) (DB, error) {
	if typ == "" || typ == TypeMemory {
		return NewMemory(), nil
	}
	reg := kv.ByName(typ)
	if reg == nil {
		return nil, errors.Errorf("unsupported database kind: %q", typ)
	}
	kdb, err := reg.OpenPath(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s database", typ)
	}
	ctx := context.TODO()
	db := tuplekv.New(kdb)
	files, err := db.Table(ctx, tableFiles)
	if err == tuple.ErrTableNotFound {
		if err = createTables(ctx, db); err == nil {
			files, err = db.Table(ctx, tableFiles)
		}
	}
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "cannot open tables")
	}
	return &tupleDB{db: db, files: files}, nil
}

func createTables(ctx context.Context, db tuple.Store) error {
	tx, err := db.Tx(true)
	if err != nil {
		return errors.Wrap(err, "cannot create tables")
	}
	defer tx.Close()
	_, err = tx.CreateTable(ctx, tuple.Header{
		Name: tableFiles,
		Key: []tuple.KeyField{
			{Name: "file", Type: values.StringType{}},
		},
		Data: []tuple.Field{
			{Name: "tth", Type: values.StringType{}},
		},
	})
	if err != nil {
		return errors.Wrap(err, "cannot create tables")
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "cannot create tables")
	}
	return nil
}

type tupleDB struct {
	db    tuple.Store
	files tuple.TableInfo
}

func (db *tupleDB) Lookup(ctx context.Context, k FileKey) (tiger.Hash, bool, error) {
	tx, err := db.db.Tx(false)
	if err != nil {
		return tiger.Hash{}, false, err
	}
	defer tx.Close()
	files, err := db.files.Open(tx)
	if err != nil {
		return tiger.Hash{}, false, err
	}
	file, err := files.GetTuple(ctx, tuple.SKey(k.String()))
	if err == tuple.ErrNotFound {
		return tiger.Hash{}, false, nil
	} else if err != nil {
		return tiger.Hash{}, false, err
	}
	s, ok := file[0].(values.String)
	if !ok {
		return tiger.Hash{}, false, errors.Errorf("expected string, got: %T", file[0])
	}
	h, err := tiger.ParseBase32(string(s))
	if err != nil {
		return tiger.Hash{}, false, errors.Wrapf(err, "corrupted hash for %q", k.Path)
	}
	return h, true, nil
}

func (db *tupleDB) Store(ctx context.Context, k FileKey, h tiger.Hash) error {
	tx, err := db.db.Tx(true)
	if err != nil {
		return err
	}
	defer tx.Close()
	files, err := db.files.Open(tx)
	if err != nil {
		return err
	}
	key := tuple.SKey(k.String())
	_, err = files.GetTuple(ctx, key)
	if err == nil {
		// same file version, same hash
		return nil
	} else if err != tuple.ErrNotFound {
		return err
	}
	_, err = files.InsertTuple(ctx, tuple.Tuple{
		Key:  key,
		Data: tuple.SData(h.Base32()),
	})
	if err == nil {
		err = tx.Commit(ctx)
	}
	return err
}

func (db *tupleDB) Close() error {
	return db.db.Close()
}
