package testutil

import (
	"testing"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/domain/types"
)

// Film builds a movie/cinema tuple
func Film(title string, year, length int32, genre, studioName string, producerNo int32) data.Tuple {
	return data.Tuple{
		types.String(title), types.Int(year), types.Int(length),
		types.String(genre), types.String(studioName), types.Int(producerNo),
	}
}

// Star builds a movieStar tuple
func Star(name, address string, gender rune, birthdate string) data.Tuple {
	return data.Tuple{types.String(name), types.String(address), types.Character(gender), types.String(birthdate)}
}

// Cast builds a starsIn tuple
func Cast(movieTitle string, movieYear int32, starName string) data.Tuple {
	return data.Tuple{types.String(movieTitle), types.Int(movieYear), types.String(starName)}
}

// Exec builds a movieExec tuple
func Exec(certNo int32, name, address string, fee float32) data.Tuple {
	return data.Tuple{types.Int(certNo), types.String(name), types.String(address), types.Float(fee)}
}

// Studio builds a studio tuple
func Studio(name, address string, presNo int32) data.Tuple {
	return data.Tuple{types.String(name), types.String(address), types.Int(presNo)}
}

var (
	Film0 = Film("Star_Wars", 1977, 124, "sciFi", "Fox", 12345)
	Film1 = Film("Star_Wars_2", 1980, 124, "sciFi", "Fox", 12345)
	Film2 = Film("Rocky", 1985, 200, "action", "Universal", 12125)
	Film3 = Film("Rambo", 1978, 100, "action", "Universal", 32355)
	Film4 = Film("Galaxy_Quest", 1999, 104, "comedy", "DreamWorks", 67890)

	Star0 = Star("Carrie_Fisher", "Hollywood", 'F', "9/9/99")
	Star1 = Star("Mark_Hamill", "Brentwood", 'M', "8/8/88")
	Star2 = Star("Harrison_Ford", "Beverly_Hills", 'M', "7/7/77")

	Cast0 = Cast("Star_Wars", 1977, "Carrie_Fisher")

	Exec0 = Exec(9999, "S_Spielberg", "Hollywood", 10000.00)

	Studio0 = Studio("Fox", "Los_Angeles", 7777)
	Studio1 = Studio("Universal", "Universal_City", 8888)
	Studio2 = Studio("DreamWorks", "Universal_City", 9999)
)

// TableDef is the raw declaration of a table
type TableDef struct {
	Name       string
	Attributes string
	Domains    string
	Key        string
}

// MovieSchemas declares the tables of the movie database
var MovieSchemas = []TableDef{
	{"movie", "title year length genre studioName producerNo", "String Integer Integer String String Integer", "title year"},
	{"cinema", "title year length genre studioName producerNo", "String Integer Integer String String Integer", "title year"},
	{"movieStar", "name address gender birthdate", "String String Character String", "name"},
	{"starsIn", "movieTitle movieYear starName", "String Integer String", "movieTitle movieYear starName"},
	{"movieExec", "certNo name address fee", "Integer String String Float", "certNo"},
	{"studio", "name address presNo", "String String Integer", "name"},
}

// MovieRows lists the tuples inserted into each table, in insertion order
var MovieRows = map[string][]data.Tuple{
	"movie":     {Film0, Film1, Film2, Film3},
	"cinema":    {Film2, Film3, Film4},
	"movieStar": {Star0, Star1, Star2},
	"starsIn":   {Cast0},
	"movieExec": {Exec0},
	"studio":    {Studio0, Studio1, Studio2},
}

// MovieDB holds the populated tables of the movie database
type MovieDB struct {
	Movie     *schema.Table
	Cinema    *schema.Table
	MovieStar *schema.Table
	StarsIn   *schema.Table
	MovieExec *schema.Table
	Studio    *schema.Table
}

// CreateMovieDB creates and populates every movie database table.
// Tables are closed when the test finishes.
func CreateMovieDB(t testing.TB, opts ...schema.Option) *MovieDB {
	t.Helper()

	tables := make(map[string]*schema.Table, len(MovieSchemas))
	for _, def := range MovieSchemas {
		tables[def.Name] = CreateTable(t, def, MovieRows[def.Name], opts...)
	}

	return &MovieDB{
		Movie:     tables["movie"],
		Cinema:    tables["cinema"],
		MovieStar: tables["movieStar"],
		StarsIn:   tables["starsIn"],
		MovieExec: tables["movieExec"],
		Studio:    tables["studio"],
	}
}

// CreateTable creates one table and inserts rows into it
func CreateTable(t testing.TB, def TableDef, rows []data.Tuple, opts ...schema.Option) *schema.Table {
	t.Helper()

	table, err := schema.NewTable(def.Name, def.Attributes, def.Domains, def.Key, opts...)
	if err != nil {
		t.Fatalf("create table %s: %v", def.Name, err)
	}
	t.Cleanup(func() { table.Close() })

	for _, row := range rows {
		if err := table.Insert(row); err != nil {
			t.Fatalf("insert into %s: %v", def.Name, err)
		}
	}
	return table
}
