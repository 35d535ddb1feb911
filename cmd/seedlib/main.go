// Dev tool: seed a demo catalog with a handful of tracks and crates so
// queries can be tried without scanning a real music folder.
//
//	go run ./cmd/seedlib -db /tmp/cratedig-demo.db
package main

import (
	"flag"
	"log"

	"github.com/llehouerou/cratedig/internal/library"
)

func main() {
	log.SetFlags(0)

	dbPath := flag.String("db", "cratedig-demo.db", "catalog database to create")
	flag.Parse()

	lib, err := library.Open(*dbPath)
	if err != nil {
		log.Fatalf("open catalog: %v", err)
	}
	defer lib.Close()

	tracks := []library.Track{
		{Path: "/demo/koan/darkpulse.mp3", Artist: "Koan Mode", Title: "DarkPulse", Album: "Night Drive", Genre: "Darkwave", BPM: 124, Rating: 4, Key: "8A", Year: "2019", Filesize: 9_600_000},
		{Path: "/demo/koan/redline.mp3", Artist: "Koan Mode", Title: "Redline", Album: "Night Drive", Genre: "Darkwave", BPM: 128, Rating: 3, Key: "9A", Year: "2019", Filesize: 8_800_000},
		{Path: "/demo/slow/meadow.flac", Artist: "Slow Fields", Title: "Meadow", Album: "Stillness", Genre: "Ambient", BPM: 72.5, Rating: 5, Key: "C", Year: "2021", Filesize: 31_000_000},
		{Path: "/demo/slow/fog.flac", Artist: "Slow Fields", Title: "Fog", Album: "Stillness", Genre: "Ambient", BPM: 68, Key: "Am", Year: "2021", Filesize: 28_000_000},
		{Path: "/demo/vera/warehouse.mp3", Artist: "Vera Cut", Title: "Warehouse", Album: "Concrete", Genre: "Techno", BPM: 140, Rating: 4, Key: "2A", Year: "2023", Filesize: 11_200_000},
		{Path: "/demo/misc/untagged.mp3", Artist: "", Title: "untagged", Filesize: 4_100_000},
	}

	ids := make(map[string]int64)
	for i := range tracks {
		tracks[i].Color = -1
		id, err := lib.InsertTrack(&tracks[i])
		if err != nil {
			log.Fatalf("insert %s: %v", tracks[i].Path, err)
		}
		ids[tracks[i].Title] = id
	}

	crates := map[string][]string{
		"Festival":  {"DarkPulse", "Warehouse"},
		"Chill":     {"Meadow", "Fog"},
		"Peak Time": {"Warehouse", "Redline"},
	}
	for name, titles := range crates {
		crateID, err := lib.EnsureCrate(name)
		if err != nil {
			log.Fatalf("create crate %s: %v", name, err)
		}
		for _, title := range titles {
			if err := lib.AssignTrack(crateID, ids[title]); err != nil {
				log.Fatalf("assign %s to %s: %v", title, name, err)
			}
		}
	}

	if err := lib.RebuildIndex(); err != nil {
		log.Fatalf("rebuild index: %v", err)
	}
	log.Printf("seeded %d tracks and %d crates into %s", len(tracks), len(crates), *dbPath)
}
