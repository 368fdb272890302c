// Package kv implements the client's persistent key-value store on the
// kv_store SQLite table.
//
// SQLiteRepository accepts any dbx.DBTX, so the same code runs against the
// database handle or inside a transaction started with dbx.WithTx:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := kv.NewSQLiteRepository(tx)
//	    if err := repo.Set(ctx, "token", []byte(token)); err != nil {
//	        return err
//	    }
//	    return repo.Set(ctx, "user", userJSON)
//	})
//
// Errors are wrapped with the key involved, e.g. "failed to set kv[token]: ...".
package kv
