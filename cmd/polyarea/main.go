package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sanity-io/litter"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Hikitak/polyarea"
)

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <polygon-file>\n", prog)
	fmt.Fprintf(os.Stderr, "\nEstimates the polygon's area by Monte Carlo sampling. Each line of\n")
	fmt.Fprintf(os.Stderr, "<polygon-file> holds one \"x y\" vertex; malformed lines are skipped.\n\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	// .env feeds the flag defaults below, so it loads first
	_ = godotenv.Load()

	samples := flag.Int("n", envOr("POLYAREA_SAMPLES", 1_000_000), "total number of random samples")
	workers := flag.Int("workers", envOr("POLYAREA_WORKERS", runtime.NumCPU()), "number of sampling workers")
	bound := flag.Float64("bound", envOr("POLYAREA_BOUND", polyarea.DefaultBound), "sampling square edge; reference area is bound²")
	seed := flag.Int64("seed", envOr[int64]("POLYAREA_SEED", 0), "RNG seed for reproducible runs (0 = random)")
	batch := flag.Int("batch", envOr("POLYAREA_BATCH", 0), "samples per tally merge (0 = engine default)")
	interval := flag.Duration("interval", envOr("POLYAREA_INTERVAL", time.Second), "progress refresh interval")
	maxVerts := flag.Int("max-vertices", envOr("POLYAREA_MAX_VERTICES", 0), "reject polygons with more vertices (0 = unlimited)")
	journalDir := flag.String("journal", envOr("POLYAREA_JOURNAL", ""), "record completed runs in a journal at this directory")
	recent := flag.Int("recent", 0, "print the N most recent journaled runs and exit")
	quiet := flag.Bool("quiet", false, "suppress the progress line")
	debug := flag.Bool("debug", false, "debug logging plus config and record dumps")
	flag.Usage = usage
	flag.Parse()

	log.SetOutput(os.Stderr)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if *recent > 0 {
		if *journalDir == "" {
			log.Fatal("-recent needs -journal to know where the runs live")
		}
		listRecent(*journalDir, *recent, *debug)
		return
	}

	path := flag.Arg(0)
	if path == "" {
		flag.Usage()
		os.Exit(2)
	}

	poly, err := polyarea.LoadPolygonFile(path, polyarea.LoaderConfig{MaxVertices: *maxVerts})
	if err != nil {
		log.Fatal(err)
	}

	cfg := polyarea.Config{
		Samples:   *samples,
		Workers:   *workers,
		Bound:     *bound,
		Seed:      *seed,
		BatchSize: *batch,
		Interval:  *interval,
	}
	if !*quiet {
		cfg.Progress = func(pct int) {
			fmt.Fprintf(os.Stderr, "\rProgress: %d%%", pct)
		}
	}
	if *debug {
		litter.Dump(cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := polyarea.Estimate(ctx, poly, cfg)
	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Fatal(err)
		}
		log.Warnf("interrupted after %d of %d samples, reporting the partial estimate", res.Checked, res.Samples)
	}

	report(poly, res)

	if *journalDir != "" && err == nil {
		recordRun(*journalDir, res, poly.Len())
	}
}

func report(poly *polyarea.Polygon, res polyarea.Result) {
	p := message.NewPrinter(language.English)
	p.Printf("Estimated area: %.2f square units (%d of %d samples inside)\n", res.Area, res.Inside, res.Checked)
	if exact := poly.Area(); exact > 0 {
		p.Printf("Shoelace area: %.2f square units (estimate off by %+.2f%%)\n", exact, (res.Area-exact)/exact*100)
	}
	p.Printf("Sampled %d points with %d workers in %v\n", res.Checked, res.Workers, res.Elapsed.Round(time.Millisecond))
}

func recordRun(dir string, res polyarea.Result, vertices int) {
	j, err := polyarea.OpenJournal(dir)
	if err != nil {
		log.Errorf("journal: %v", err)
		return
	}
	defer j.Close()

	rec, err := j.Record(res, vertices)
	if err != nil {
		log.Errorf("journal: %v", err)
		return
	}
	log.Infof("journaled run %s", rec.ID)
}

func listRecent(dir string, n int, debug bool) {
	j, err := polyarea.OpenJournal(dir)
	if err != nil {
		log.Fatal(err)
	}
	defer j.Close()

	recs, err := j.Recent(n)
	if err != nil {
		log.Fatal(err)
	}
	if debug {
		litter.Dump(recs)
	}

	p := message.NewPrinter(language.English)
	for _, rec := range recs {
		p.Printf("%s  area=%-10.2f samples=%-12d workers=%-3d vertices=%d\n",
			rec.At.Format(time.RFC3339), rec.Result.Area, rec.Result.Samples, rec.Result.Workers, rec.Vertices)
	}
}
