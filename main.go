package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/cratedig/internal/config"
	"github.com/llehouerou/cratedig/internal/library"
	"github.com/llehouerou/cratedig/internal/query"
	"github.com/llehouerou/cratedig/internal/search"
)

var (
	artistStyle  = lipgloss.NewStyle().Bold(true)
	albumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

func main() {
	log.SetFlags(0)

	var (
		scan       = flag.Bool("scan", false, "rescan library sources before searching")
		noIndex    = flag.Bool("no-index", false, "disable the full-text index, match substrings instead")
		listCrates = flag.Bool("crates", false, "list crates and exit")
		crateName  = flag.String("crate", "", "crate to operate on with -add")
		addPath    = flag.String("add", "", "track path to add to the crate named by -crate")
		dbPath     = flag.String("db", "", "override the catalog database path")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] QUERY...\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(os.Stderr, "Searches the track catalog. Query arguments are joined with spaces,")
		fmt.Fprintln(os.Stderr, "so shell quoting is only needed for phrases and empty-value filters.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*scan, *noIndex, *listCrates, *crateName, *addPath, *dbPath, flag.Args()); err != nil {
		var perr *query.ParseError
		if errors.As(err, &perr) {
			log.Fatalf("invalid query: %v", perr)
		}
		log.Fatalf("cratedig: %v", err)
	}
}

func run(scan, noIndex, listCrates bool, crateName, addPath, dbPath string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath == "" {
		dbPath = cfg.Database
	}

	lib, err := library.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer lib.Close()

	if scan {
		if len(cfg.LibrarySources) == 0 {
			return errors.New("no library_sources configured, nothing to scan")
		}
		stats, err := lib.Scan(cfg.LibrarySources)
		if err != nil {
			return fmt.Errorf("scan library: %w", err)
		}
		log.Printf("scanned %s files: %d added, %d updated, %d missing",
			humanize.Comma(int64(stats.Scanned)), stats.Added, stats.Updated, stats.Missing)
	}

	switch {
	case listCrates:
		return printCrates(lib)
	case crateName != "" && addPath != "":
		return addToCrate(lib, crateName, addPath)
	case crateName != "" || addPath != "":
		return errors.New("-crate and -add must be used together")
	}

	s := search.New(lib)
	if noIndex || cfg.Search.DisableIndex {
		s.DisableIndex()
	}
	results, err := s.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}
	printResults(results)
	return nil
}

func printCrates(lib *library.Library) error {
	crates, err := lib.Crates()
	if err != nil {
		return fmt.Errorf("list crates: %w", err)
	}
	for _, c := range crates {
		fmt.Printf("%s %s\n", artistStyle.Render(c.Name),
			summaryStyle.Render(fmt.Sprintf("(%d tracks)", c.Tracks)))
	}
	return nil
}

func addToCrate(lib *library.Library, crateName, path string) error {
	track, err := lib.TrackByPath(path)
	if err != nil {
		return fmt.Errorf("look up track: %w", err)
	}
	if track == nil {
		return fmt.Errorf("no cataloged track at %s (run -scan first?)", path)
	}
	crateID, err := lib.EnsureCrate(crateName)
	if err != nil {
		return fmt.Errorf("create crate: %w", err)
	}
	if err := lib.AssignTrack(crateID, track.ID); err != nil {
		return fmt.Errorf("add track to crate: %w", err)
	}
	fmt.Printf("added %s - %s to %s\n", track.Artist, track.Title, crateName)
	return nil
}

func printResults(results []library.Track) {
	var totalSize int64
	for _, t := range results {
		totalSize += t.Filesize

		line := artistStyle.Render(t.Artist) + " - " + t.Title
		if t.Album != "" {
			line += " " + albumStyle.Render("("+t.Album+")")
		}
		if t.Missing {
			line += " " + missingStyle.Render("[missing]")
		}
		fmt.Println(line)
		fmt.Println("  " + pathStyle.Render(t.Path))
	}

	fmt.Println(summaryStyle.Render(fmt.Sprintf("%s tracks, %s",
		humanize.Comma(int64(len(results))), humanize.Bytes(uint64(totalSize)))))
}
