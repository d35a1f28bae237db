package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/direct-connect/go-tiger/hashdb"
)

const dbFlagUsage = "hash cache in the type:path form (bolt:hashes.db, leveldb:hashes); overrides the config"

// openDB opens the hash cache from the flag value or from the config.
// It returns a nil DB if no cache is configured.
func openDB(flag string) (hashdb.DB, error) {
	var typ, path string
	if flag != "" {
		i := strings.Index(flag, ":")
		if i < 0 {
			return nil, errors.Errorf("expected type:path, got %q", flag)
		}
		typ, path = flag[:i], flag[i+1:]
	} else {
		conf, err := readConfig(false)
		if err != nil {
			return nil, err
		}
		typ, path = conf.Database.Type, conf.Database.Path
	}
	if typ == "" {
		return nil, nil
	}
	log.Info("using database", zap.String("type", typ), zap.String("path", path))
	return hashdb.Open(typ, path)
}

func closeDB(db hashdb.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
