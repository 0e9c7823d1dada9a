package main

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"reeltrivia/internal/dataset"
	"reeltrivia/internal/logger"
)

// Writes a small starter dataset so the server has something to load on a
// fresh checkout. Existing files are left alone.
func main() {
	_ = godotenv.Load()
	log := logger.New("reeltrivia-seed")

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.WithError(err).Fatal("could not create data dir")
	}

	tables := map[string][][]string{
		dataset.ActorsFile: {
			{"imdb_id", "name", "birthday (YYYY-MM-DD)"},
			{"nm0000206", "Keanu Reeves", "1964-09-02"},
			{"nm0000401", "Laurence Fishburne", "1961-07-30"},
			{"nm0005251", "Carrie-Anne Moss", "1967-08-21"},
			{"nm0000234", "Charlize Theron", "1975-08-07"},
			{"nm0000354", "Matt Damon", "1970-10-08"},
		},
		dataset.ProductionsFile: {
			{"imdb_id", "title", "type", "franchise", "genre_ids", "release_date", "production_start", "production_end", "box_office_us", "imdb_rating", "poster"},
			{"tt0133093", "The Matrix", "movie", "The Matrix", "28|878", "1999-03-31", "1998-03-14", "1998-09-01", "$171,479,930", "8.7", ""},
			{"tt0234215", "The Matrix Reloaded", "movie", "The Matrix", "28|878", "2003-05-15", "2001-03-01", "2002-08-21", "$281,576,461", "7.2", ""},
			{"tt1392190", "Mad Max: Fury Road", "movie", "Mad Max", "28|12|878", "2015-05-15", "2012-07-02", "2012-12-17", "$154,280,290", "8.1", ""},
			{"tt0440963", "The Bourne Ultimatum", "movie", "Bourne", "28|53", "2007-08-03", "2006-08-01", "2007-03-01", "$227,471,070", "8.0", ""},
		},
		dataset.RolesFile: {
			{"actor_imdb_id", "actor_name", "production_imdb_id", "production_title", "character"},
			{"nm0000206", "Keanu Reeves", "tt0133093", "The Matrix", "Neo"},
			{"nm0000401", "Laurence Fishburne", "tt0133093", "The Matrix", "Morpheus"},
			{"nm0005251", "Carrie-Anne Moss", "tt0133093", "The Matrix", "Trinity"},
			{"nm0000206", "Keanu Reeves", "tt0234215", "The Matrix Reloaded", "Neo"},
			{"nm0005251", "Carrie-Anne Moss", "tt0234215", "The Matrix Reloaded", "Trinity"},
			{"nm0000234", "Charlize Theron", "tt1392190", "Mad Max: Fury Road", "Imperator Furiosa"},
			{"nm0000354", "Matt Damon", "tt0440963", "The Bourne Ultimatum", "Jason Bourne"},
		},
		dataset.GenresFile: {
			{"id", "name"},
			{"12", "Adventure"},
			{"28", "Action"},
			{"53", "Thriller"},
			{"878", "Science Fiction"},
		},
	}

	for name, rows := range tables {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			log.WithField("file", name).Info("exists, skipping")
			continue
		}
		if err := writeCSV(path, rows); err != nil {
			log.WithError(err).WithField("file", name).Fatal("could not write table")
		}
		if err := dataset.RewriteWithQuotes(path); err != nil {
			log.WithError(err).WithField("file", name).Fatal("could not normalize table")
		}
		log.WithField("file", name).WithField("rows", len(rows)-1).Info("seeded")
	}
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
