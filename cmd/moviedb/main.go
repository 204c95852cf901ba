package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/relalg/internal/config"
	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/domain/types"
	"github.com/leengari/relalg/internal/engine"
	"github.com/leengari/relalg/internal/logging"
	"github.com/leengari/relalg/internal/network"
	"github.com/leengari/relalg/internal/printer"
	"github.com/leengari/relalg/internal/repl"
	"github.com/leengari/relalg/internal/storage/filelist"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closeFn := logging.SetupLogger(logging.Options{Level: cfg.Level(), SeqURL: cfg.SeqURL})
	defer closeFn()
	slog.SetDefault(logger)

	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.Storage == "file" {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			slog.Error("failed to create data directory", "dir", cfg.DataDir, "error", err)
			closeFn()
			os.Exit(1)
		}
		opts = append(opts, engine.WithStore(filelist.Factory(cfg.FileStore())))
	}

	eng := engine.New(opts...)
	defer eng.Close()
	eng.AddObserver(engine.NewLoggingObserver(logger))

	if err := buildMovieDB(eng); err != nil {
		slog.Error("failed to build movie database", "error", err)
		eng.Close()
		closeFn()
		os.Exit(1)
	}

	if err := runQueries(eng); err != nil {
		slog.Error("query failed", "error", err)
		eng.Close()
		closeFn()
		os.Exit(1)
	}

	switch {
	case cfg.REPL:
		repl.Start(eng, os.Stdin, os.Stdout)
	case cfg.Serve:
		if err := network.Start(cfg.HTTPAddr, eng); err != nil {
			slog.Error("http server stopped", "error", err)
		}
	}
}

func buildMovieDB(eng *engine.Engine) error {
	tables := []struct{ name, attributes, domains, key string }{
		{"movie", "title year length genre studioName producerNo", "String Integer Integer String String Integer", "title year"},
		{"cinema", "title year length genre studioName producerNo", "String Integer Integer String String Integer", "title year"},
		{"movieStar", "name address gender birthdate", "String String Character String", "name"},
		{"starsIn", "movieTitle movieYear starName", "String Integer String", "movieTitle movieYear starName"},
		{"movieExec", "certNo name address fee", "Integer String String Float", "certNo"},
		{"studio", "name address presNo", "String String Integer", "name"},
	}
	for _, t := range tables {
		if _, err := eng.CreateTable(t.name, t.attributes, t.domains, t.key); err != nil {
			return err
		}
	}

	film0 := film("Star_Wars", 1977, 124, "sciFi", "Fox", 12345)
	film1 := film("Star_Wars_2", 1980, 124, "sciFi", "Fox", 12345)
	film2 := film("Rocky", 1985, 200, "action", "Universal", 12125)
	film3 := film("Rambo", 1978, 100, "action", "Universal", 32355)
	film4 := film("Galaxy_Quest", 1999, 104, "comedy", "DreamWorks", 67890)

	rows := []struct {
		table string
		tup   data.Tuple
	}{
		{"movie", film0}, {"movie", film1}, {"movie", film2}, {"movie", film3},
		{"cinema", film2}, {"cinema", film3}, {"cinema", film4},
		{"movieStar", data.Tuple{types.String("Carrie_Fisher"), types.String("Hollywood"), types.Character('F'), types.String("9/9/99")}},
		{"movieStar", data.Tuple{types.String("Mark_Hamill"), types.String("Brentwood"), types.Character('M'), types.String("8/8/88")}},
		{"movieStar", data.Tuple{types.String("Harrison_Ford"), types.String("Beverly_Hills"), types.Character('M'), types.String("7/7/77")}},
		{"starsIn", data.Tuple{types.String("Star_Wars"), types.Int(1977), types.String("Carrie_Fisher")}},
		{"movieExec", data.Tuple{types.Int(9999), types.String("S_Spielberg"), types.String("Hollywood"), types.Float(10000.00)}},
		{"studio", data.Tuple{types.String("Fox"), types.String("Los_Angeles"), types.Int(7777)}},
		{"studio", data.Tuple{types.String("Universal"), types.String("Universal_City"), types.Int(8888)}},
		{"studio", data.Tuple{types.String("DreamWorks"), types.String("Universal_City"), types.Int(9999)}},
	}
	for _, r := range rows {
		if err := eng.Insert(r.table, r.tup); err != nil {
			return err
		}
	}
	return nil
}

func film(title string, year, length int32, genre, studioName string, producerNo int32) data.Tuple {
	return data.Tuple{
		types.String(title), types.Int(year), types.Int(length),
		types.String(genre), types.String(studioName), types.Int(producerNo),
	}
}

func runQueries(eng *engine.Engine) error {
	queries := []func() (*schema.Table, error){
		func() (*schema.Table, error) { return eng.Select("movie", "title == 'Star_Wars'") },
		func() (*schema.Table, error) {
			return eng.Select("movie", "length > 100 & studioName == 'Universal' | genre == 'sciFi'")
		},
		func() (*schema.Table, error) { return eng.Project("movie", "title year") },
		func() (*schema.Table, error) { return eng.Project("cinema", "title genre studioName") },
		func() (*schema.Table, error) { return eng.Union("movie", "cinema") },
		func() (*schema.Table, error) { return eng.Union("movieStar", "studio") },
		func() (*schema.Table, error) { return eng.Minus("movie", "cinema") },
		func() (*schema.Table, error) { return eng.Minus("movieStar", "studio") },
		func() (*schema.Table, error) { return eng.Join("movie", "studioName == name", "studio") },
		func() (*schema.Table, error) { return eng.Join("movieStar", "name == starName", "starsIn") },
	}

	for _, q := range queries {
		result, err := q()
		if err != nil {
			return err
		}
		fmt.Println()
		if err := printer.Render(os.Stdout, result); err != nil {
			return err
		}
	}
	return nil
}
