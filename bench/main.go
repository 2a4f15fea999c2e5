package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/loov/hrtime"
	"github.com/philpearl/intmap"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	var (
		count      = pflag.Int("count", 1e7, "number of puts to time")
		capacity   = pflag.Int("capacity", intmap.DefaultCapacity, "initial capacity of the map")
		workload   = pflag.String("workload", "dense", "key distribution: span, dense or random")
		seed       = pflag.Int64("seed", 0xBEEFCAFE, "random seed for dense and random workloads")
		production = pflag.Bool("production", false, "use production logging")
	)
	pflag.Parse()

	var log *zap.Logger
	if *production {
		log, _ = zap.NewProduction()
	} else {
		log, _ = zap.NewDevelopment()
	}
	defer log.Sync()

	keys, err := makeKeys(*workload, *count, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Error("bad workload", zap.Error(err))
		os.Exit(1)
	}

	m, err := intmap.NewWithCapacity[int32](*capacity)
	if err != nil {
		log.Error("could not create map", zap.Error(err))
		os.Exit(1)
	}

	log.Info("starting", zap.String("workload", *workload), zap.Int("count", len(keys)), zap.Int("capacity", m.Cap()))

	b := hrtime.NewBenchmarkTSC(len(keys))

	runtime.GC()

	for i := 0; b.Next(); i++ {
		key := keys[i]
		t := hrtime.TSC()
		if _, _, err := m.Put(key, key); err != nil {
			log.Error("put failed", zap.Int32("key", key), zap.Error(err))
			os.Exit(1)
		}
		dur := hrtime.TSC() - t
		if dur.ApproxDuration() > time.Millisecond*100 {
			// Growing to large sizes is slow, mostly because the new slices have to be zeroed
			log.Warn("slow put", zap.Int("index", i), zap.Int("capacity", m.Cap()), zap.Duration("took", dur.ApproxDuration()))
		}
	}

	stats := m.Stats()
	log.Info("done",
		zap.Int("size", stats.Size),
		zap.Int("capacity", stats.Capacity),
		zap.Float32("loadFactor", stats.LoadFactor),
		zap.Int("maxProbe", stats.MaxProbe),
		zap.Int("grows", stats.Grows),
	)

	opts := hrtime.HistogramOptions{
		BinCount:        20,
		NiceRange:       true,
		ClampMaximum:    0,
		ClampPercentile: 0.999999,
	}
	fmt.Println(hrtime.NewDurationHistogram(b.Laps(), &opts))
}

// makeKeys builds count keys for one of the workloads the map is tuned for
func makeKeys(workload string, count int, r *rand.Rand) ([]int32, error) {
	keys := make([]int32, count)
	switch workload {
	case "span":
		// Alternate outwards from zero: 0, -1, 1, -2, 2...
		for i := range keys {
			if i%2 == 0 {
				keys[i] = int32(i / 2)
			} else {
				keys[i] = -int32(i/2 + 1)
			}
		}
	case "dense":
		for i := range keys {
			keys[i] = int32(i - count/2)
		}
		r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	case "random":
		const m = 1 << 11
		for i := range keys {
			keys[i] = int32(r.Intn(2*m) - m)
		}
	default:
		return nil, errors.Errorf("unknown workload %q", workload)
	}
	return keys, nil
}
