package db

import (
	"context"
	"fmt"

	"github.com/hsm-gustavo/account-api/internal/config"
)

// Open returns the UserStore selected by cfg.Driver. The mysql backend has
// its migrations applied before it is returned.
func Open(ctx context.Context, cfg config.StoreConfig) (UserStore, error) {
	switch cfg.Driver {
	case "mongo", "":
		return NewMongoUserStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case "mysql":
		if err := RunMigrations(DSN(cfg.MySQL)); err != nil {
			return nil, err
		}
		conn, err := Connect(cfg.MySQL)
		if err != nil {
			return nil, err
		}
		return NewMySQLUserStore(conn), nil
	case "memory":
		return NewMemoryUserStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
