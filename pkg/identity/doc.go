// Package identity owns the persisted account records consumed by the
// authentication core: email, password hash and the two nullable token
// slots (session, password reset).
//
// The Store interface is a pure data-access capability. It is deliberately
// narrow — Find with exactly one predicate, Insert, and an atomic partial
// Update — so that every higher-level component (pkg/authn, pkg/session,
// pkg/auth) queries by token or email on demand and never caches mutable
// account state across requests.
//
// Three implementations ship out of the box:
//
//   - MemoryStore: mutex-guarded in-process maps, ideal for tests.
//   - PostgresStore: pgx/v5 pool, schema under migrations/.
//   - RedisStore: go-redis/v9 hashes with secondary-index keys.
//
// # Usage
//
//	store := identity.NewMemoryStore()
//
//	acc, err := store.Insert(ctx, "a@b.com", hash)
//	if err != nil {
//	    // identity.ErrEmailTaken on duplicates
//	}
//
//	acc, err = store.Find(ctx, identity.ByEmail("a@b.com"))
//
//	err = store.Update(ctx, acc.ID, identity.Changes{
//	    SessionToken: identity.SetToken(token),
//	})
package identity
