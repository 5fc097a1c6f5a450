// Command permscope-loadtest hammers the query path while a writer replaces
// the permission set, to validate the single-writer/multi-reader model under
// load. Denials are audited to a Redis stream; without -redis-addr an
// embedded miniredis is used so the tool runs standalone.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	permscope "github.com/permscope/permscope"
)

func main() {
	var (
		permissions = flag.Int("permissions", 512, "size of the granted permission set")
		concurrency = flag.Int("concurrency", 256, "number of concurrent query workers")
		ops         = flag.Int("ops", 200000, "queries per worker")
		denyRatio   = flag.Float64("deny-ratio", 0.2, "fraction of queries targeting an absent permission")
		replaceMs   = flag.Int("replace-interval-ms", 10, "interval between snapshot replacements")
		redisAddr   = flag.String("redis-addr", "", "redis address for the denial stream; if empty, REDIS_ADDR env or miniredis is used")
		stream      = flag.String("stream", "permscope:denials", "denial stream key")
	)
	flag.Parse()

	if *permissions <= 0 || *concurrency <= 0 || *ops <= 0 || *denyRatio < 0 || *denyRatio > 1 {
		fmt.Fprintln(os.Stderr, "permissions, concurrency, and ops must be > 0; deny-ratio must be in [0,1]")
		os.Exit(2)
	}

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() {
			_ = client.Close()
		}
	}
	defer cleanup()

	grants := make([]string, *permissions)
	for i := range grants {
		grants[i] = fmt.Sprintf("perm.%04d", i)
	}

	scope, err := permscope.New().
		WithPermissions(grants).
		WithAuditEnabled(true).
		WithDenialSink(permscope.NewRedisStreamSink(client, *stream, 10000)).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build scope: %v\n", err)
		os.Exit(1)
	}

	ctx := permscope.WithScope(context.Background(), scope)

	stop := make(chan struct{})
	var writerWg sync.WaitGroup
	writerWg.Add(1)
	go func() {
		defer writerWg.Done()
		ticker := time.NewTicker(time.Duration(*replaceMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := scope.SetPermissions(grants); err != nil {
					fmt.Fprintf(os.Stderr, "replace failed: %v\n", err)
					return
				}
			}
		}
	}()

	var (
		granted atomic.Uint64
		denied  atomic.Uint64
		failed  atomic.Uint64
	)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < *ops; i++ {
				var permission string
				if rng.Float64() < *denyRatio {
					permission = "perm.absent"
				} else {
					permission = grants[rng.Intn(len(grants))]
				}

				ok, err := permscope.HasPermission(ctx, permission)
				switch {
				case err != nil:
					failed.Add(1)
				case ok:
					granted.Add(1)
				default:
					denied.Add(1)
				}
			}
		}(int64(w) + 1)
	}
	wg.Wait()
	elapsed := time.Since(start)

	close(stop)
	writerWg.Wait()
	scope.Close()

	total := granted.Load() + denied.Load() + failed.Load()
	fmt.Printf("queries:   %d in %s (%.0f/s)\n", total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds())
	fmt.Printf("granted:   %d\n", granted.Load())
	fmt.Printf("denied:    %d\n", denied.Load())
	fmt.Printf("failed:    %d\n", failed.Load())
	fmt.Printf("dropped:   %d (audit buffer)\n", scope.DroppedDenials())

	snap := scope.Metrics()
	fmt.Printf("metrics:   granted=%d denied=%d replaced=%d\n", snap.CheckGranted, snap.CheckDenied, snap.ScopeReplaced)

	if length, err := client.XLen(context.Background(), *stream).Result(); err == nil {
		fmt.Printf("stream:    %d entries in %s\n", length, *stream)
	}

	if failed.Load() > 0 {
		os.Exit(1)
	}
}
