// Demonstrates construction, cross-references, merges, overrides, and
// scoped backup/restore.
package main

import (
	"fmt"
	"log"
	"os"

	confetti "github.com/vmalloc/confetti"
)

func main() {
	cfg := confetti.MustNewConfig(map[string]any{
		"server": map[string]any{
			"host": "localhost",
			"port": int64(8080),
			"addr": confetti.NewRef(".host").WithFilter(func(v any) any {
				return fmt.Sprintf("http://%v", v)
			}),
		},
		"debug": false,
	})

	cfg.OnUpdate(func(changed *confetti.Config) {
		log.Printf("changed: %s", changed.PathString())
	})

	// CLI-style overrides, e.g. ./demo server.port=9090 debug=true
	for _, arg := range os.Args[1:] {
		if err := cfg.AssignPathExpression(arg, true); err != nil {
			log.Fatalf("bad override %q: %v", arg, err)
		}
	}

	addr, err := cfg.GetPath("server.addr")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("addr:", addr)

	if err := cfg.Update(map[string]any{
		"server": map[string]any{"timeout": "30s"},
	}); err != nil {
		log.Fatal(err)
	}

	// Transactional edit: the port override below never survives the scope.
	_ = cfg.ScopedBackup(func() error {
		if err := cfg.AssignPath("server.port", int64(1)); err != nil {
			return err
		}
		port, _ := cfg.Int64("server.port")
		fmt.Println("inside scope:", port)
		return nil
	})

	port, _ := cfg.Int64("server.port")
	fmt.Println("after scope:", port)
}
