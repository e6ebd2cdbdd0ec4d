// FILE: confetti/doc.go

// Package confetti provides an in-memory hierarchical configuration tree
// with behaviors ordinary nested maps do not offer: lazily resolved
// cross-references between leaves, dirty/clean change tracking, a LIFO
// backup/restore stack for transactional edits, update notification
// callbacks, and guarded structural merging that refuses to silently
// destroy existing state.
//
// Features:
//   - Dotted-path access, absolute ("a.b.c") and relative (".sibling")
//   - Cross-references (NewRef) resolved lazily on every read, with
//     optional filters and cycle detection
//   - Two merge policies: additive-only Extend and deep-merging Update
//   - Grafting prebuilt subtrees by shared reference
//   - Per-subtree backup/restore stack and scoped transactional edits
//   - Update callbacks bubbling from the changed node to the root
//   - Path-expression overrides ("a.b.c=234") with optional type deduction
//   - TOML, JSON, and YAML loading, atomic TOML saving, struct scanning
//
// Quick Start:
//
//	cfg := confetti.MustNewConfig(map[string]any{
//	    "server": map[string]any{
//	        "host": "localhost",
//	        "port": 8080,
//	        "addr": confetti.NewRef(".host"),
//	    },
//	})
//
//	host, _ := cfg.String("server.host")
//	addr, _ := cfg.GetPath("server.addr") // "localhost", via the reference
//
//	_ = cfg.AssignPathExpression("server.port=9090", true)
//
// Transactional edits:
//
//	err := cfg.ScopedBackup(func() error {
//	    if err := cfg.Set("mode", "trial"); err != nil {
//	        return err
//	    }
//	    return runTrial(cfg)
//	}) // the pre-backup state is restored on every exit path
//
// Concurrency:
// The tree is a single-owner, single-goroutine structure. Operations run to
// completion synchronously and no internal locking is provided; concurrent
// mutation from multiple goroutines is the caller's responsibility.
package confetti
