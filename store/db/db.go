// Package db creates key-value store drivers based on the runtime profile.
package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/studybuddy/internal/profile"
	"github.com/hrygo/studybuddy/store"
	"github.com/hrygo/studybuddy/store/db/memory"
	"github.com/hrygo/studybuddy/store/db/postgres"
	"github.com/hrygo/studybuddy/store/db/sqlite"
)

// NewKVDriver creates a new key-value driver based on the profile.
// SQLite is the default for single-device local use; postgres is available
// for shared deployments and memory for tests and throwaway runs.
func NewKVDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	case "memory":
		driver = memory.NewDB()
	default:
		return nil, errors.Errorf("unknown kv driver %q: only sqlite, postgres and memory are supported", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create kv driver")
	}
	return driver, nil
}
