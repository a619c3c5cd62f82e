package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gocache/internal/cache"
	"gocache/internal/codec"
	"gocache/internal/metrics"
	"gocache/internal/persist"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	name := flag.String("name", "", "snapshot name (overrides config)")
	dir := flag.String("dir", "", "snapshot directory (default: user cache dir)")
	format := flag.String("format", "", "snapshot format: json or arrow")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *name != "" {
		cfg.Snapshot.Name = *name
	}
	if *dir != "" {
		cfg.Snapshot.Dir = *dir
	}
	if *format != "" {
		cfg.Snapshot.Format = *format
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

// demoClock lets the demo move time forward instead of sleeping.
type demoClock struct {
	now time.Time
}

func (d *demoClock) Now() (time.Time, bool) { return d.now, true }

func run(ctx context.Context, cfg Config) error {
	clk := &demoClock{now: time.Now()}
	c, err := cache.New[string, string](cache.Config{
		Clock:    clk.Now,
		TTL:      cfg.TTL,
		Capacity: cfg.Capacity,
	})
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.NewMetrics(reg, "gocache")
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	ic := metrics.Instrument(c, m)

	log.Println("GoCache demo starting")
	log.Printf("config: capacity=%d ttl=%s format=%s", cfg.Capacity, cfg.TTL, cfg.Snapshot.Format)

	// -------------------------------------------------------------------
	// 1) Capacity eviction
	// -------------------------------------------------------------------
	ic.Insert("A", "1")
	ic.Insert("B", "2")
	ic.Insert("C", "3")
	for _, k := range []string{"A", "B", "C"} {
		logGet(ic, k)
	}
	ic.Insert("D", "4")
	log.Printf("keys after inserting D (MRU->LRU): %v", ic.Keys())

	if err := ctx.Err(); err != nil {
		log.Println("received shutdown signal")
		return nil
	}

	// -------------------------------------------------------------------
	// 2) Lazy TTL expiration
	// -------------------------------------------------------------------
	ic.Insert("ttl", "short")
	clk.now = clk.now.Add(cfg.TTL / 2)
	logGet(ic, "ttl")
	clk.now = clk.now.Add(cfg.TTL)
	logGet(ic, "ttl")

	// -------------------------------------------------------------------
	// 3) Snapshot round trip
	// -------------------------------------------------------------------
	snapshotCodec, err := codec.ByName[string, string](cfg.Snapshot.Format)
	if err != nil {
		return err
	}
	disk := &persist.Disk[string, string]{Dir: cfg.Snapshot.Dir, Codec: snapshotCodec}
	if disk.Dir == "" {
		if disk, err = persist.NewDisk(snapshotCodec); err != nil {
			return err
		}
	}

	if err := disk.Save(cfg.Snapshot.Name, ic); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	path, _ := disk.Path(cfg.Snapshot.Name)
	log.Printf("saved %d entries to %s", ic.Len(), path)

	restored, err := disk.Load(cfg.Snapshot.Name)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	for _, e := range restored.Serialize() {
		log.Printf("restored %s = %q", e.Key, e.Value)
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			value := metric.GetCounter().GetValue()
			if g := metric.GetGauge(); g != nil {
				value = g.GetValue()
			}
			log.Printf("metric %s = %g", mf.GetName(), value)
		}
	}

	fmt.Println("Done.")
	return nil
}

func logGet(c *metrics.Instrumented[string, string], key string) {
	if v, ok := c.Get(key); ok {
		log.Printf("GET %s = %q", key, v)
		return
	}
	log.Printf("GET %s: missing", key)
}
