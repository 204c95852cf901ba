package engine

import (
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/errors"
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/domain/types"
	"github.com/leengari/relalg/internal/query/operations/testutil"
	"github.com/leengari/relalg/internal/storage/filelist"
)

func loadMovieDB(t *testing.T, eng *Engine) {
	t.Helper()
	for _, def := range testutil.MovieSchemas {
		_, err := eng.CreateTable(def.Name, def.Attributes, def.Domains, def.Key)
		testutil.AssertNoError(t, err, "create "+def.Name)
		for _, row := range testutil.MovieRows[def.Name] {
			testutil.AssertNoError(t, eng.Insert(def.Name, row), "insert into "+def.Name)
		}
	}
}

func TestCatalog(t *testing.T) {
	logger, logs := testutil.CaptureLogs(slog.LevelInfo)
	eng := New(WithLogger(logger))
	defer eng.Close()
	loadMovieDB(t, eng)

	names := eng.ListTables()
	expected := []string{"cinema", "movie", "movieExec", "movieStar", "starsIn", "studio"}
	if len(names) != len(expected) {
		t.Fatalf("Expected tables %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Table %d: expected %s, got %s", i, expected[i], names[i])
		}
	}

	movie, ok := eng.Table("movie")
	if !ok {
		t.Fatal("Expected table movie")
	}
	testutil.AssertRowCount(t, movie, 4, "movie")

	testutil.AssertLogged(t, logs, "DDL/DML trace",
		"DDL> create table movie (title year length genre studioName producerNo)",
		"DML> insert into movie values (Star_Wars, 1977, 124, sciFi, Fox, 12345)",
	)
}

func TestCreateTableErrors(t *testing.T) {
	logger, _ := testutil.CaptureLogs(slog.LevelInfo)
	eng := New(WithLogger(logger))
	defer eng.Close()

	_, err := eng.CreateTable("movie", "title year", "String Integer", "title")
	testutil.AssertNoError(t, err, "create")

	_, err = eng.CreateTable("movie", "title", "String", "title")
	var exists *TableExistsError
	if !stderrors.As(err, &exists) {
		t.Errorf("Expected TableExistsError, got %v", err)
	}

	_, err = eng.CreateTable("bad", "title year", "String Decimal", "title")
	var unknown *errors.UnknownDomainError
	if !stderrors.As(err, &unknown) {
		t.Errorf("Expected UnknownDomainError, got %v", err)
	}
	if _, ok := eng.Table("bad"); ok {
		t.Error("Expected no table after a failed create")
	}
}

func TestInsertValidation(t *testing.T) {
	logger, _ := testutil.CaptureLogs(slog.LevelInfo)
	eng := New(WithLogger(logger))
	defer eng.Close()
	loadMovieDB(t, eng)

	err := eng.Insert("movie", data.Tuple{testutil.Film0[0]})
	var constraint *errors.ConstraintError
	if !stderrors.As(err, &constraint) || constraint.Constraint != "arity" {
		t.Errorf("Expected arity violation, got %v", err)
	}

	err = eng.Insert("nowhere", testutil.Film0)
	var notFound *TableNotFoundError
	if !stderrors.As(err, &notFound) {
		t.Errorf("Expected TableNotFoundError, got %v", err)
	}

	movie, _ := eng.Table("movie")
	testutil.AssertRowCount(t, movie, 4, "failed inserts leave the table unchanged")
}

func TestOperatorsRegisterResults(t *testing.T) {
	logger, _ := testutil.CaptureLogs(slog.LevelInfo)
	eng := New(WithLogger(logger), WithNames(schema.NewCounter(1)))
	defer eng.Close()
	loadMovieDB(t, eng)

	sel, err := eng.Select("movie", "title == 'Star_Wars'")
	testutil.AssertNoError(t, err, "select")
	if sel.Name != "movie1" {
		t.Errorf("Expected result movie1, got %s", sel.Name)
	}

	proj, err := eng.Project(sel.Name, "title")
	testutil.AssertNoError(t, err, "project of a registered result")
	testutil.AssertRowCount(t, proj, 1, "project")

	union, err := eng.Union("movie", "cinema")
	testutil.AssertNoError(t, err, "union")
	testutil.AssertRowCount(t, union, 5, "union")

	minus, err := eng.Minus("movieStar", "studio")
	testutil.AssertNoError(t, err, "minus")
	testutil.AssertRowCount(t, minus, 3, "minus")

	join, err := eng.Join("movie", "studioName == name", "studio")
	testutil.AssertNoError(t, err, "join")
	testutil.AssertRowCount(t, join, 4, "join")

	for _, name := range []string{sel.Name, proj.Name, union.Name, minus.Name, join.Name} {
		if _, ok := eng.Table(name); !ok {
			t.Errorf("Expected result %s in the catalog", name)
		}
	}

	testutil.AssertNoError(t, eng.Drop(union.Name), "drop")
	if _, ok := eng.Table(union.Name); ok {
		t.Errorf("Expected %s to be dropped", union.Name)
	}

	_, err = eng.Join("movie", "studioName == name", "nowhere")
	var notFound *TableNotFoundError
	if !stderrors.As(err, &notFound) || notFound.Name != "nowhere" {
		t.Errorf("Expected TableNotFoundError for nowhere, got %v", err)
	}
}

func TestEngineOnFileStore(t *testing.T) {
	logger, _ := testutil.CaptureLogs(slog.LevelInfo)
	eng := New(WithLogger(logger), WithStore(filelist.Factory(filelist.Config{Dir: t.TempDir(), PageRecords: 2})))
	loadMovieDB(t, eng)

	result, err := eng.Join("movieStar", "name == starName", "starsIn")
	testutil.AssertNoError(t, err, "join")
	testutil.AssertRows(t, result, []data.Tuple{data.Concat(testutil.Star0, testutil.Cast0)}, "join on file store")

	stored, err := result.Tuples()
	testutil.AssertNoError(t, err, "read back")
	if len(stored) != 1 || !stored[0].Equal(data.Concat(testutil.Star0, testutil.Cast0)) {
		t.Errorf("Expected the joined tuple in the store, got %v", stored)
	}

	testutil.AssertNoError(t, eng.Close(), "close")
	if len(eng.ListTables()) != 0 {
		t.Error("Expected an empty catalog after close")
	}
}

// fixedName hands out the same name for every result
type fixedName string

func (f fixedName) Next(string) string { return string(f) }

func TestResultNamesSkipCatalogTables(t *testing.T) {
	logger, _ := testutil.CaptureLogs(slog.LevelInfo)
	eng := New(WithLogger(logger), WithNames(schema.NewCounter(1)))
	defer eng.Close()

	def := testutil.MovieSchemas[0]
	_, err := eng.CreateTable(def.Name, def.Attributes, def.Domains, def.Key)
	testutil.AssertNoError(t, err, "create movie")
	_, err = eng.CreateTable("movie1", "a", "Integer", "a")
	testutil.AssertNoError(t, err, "create movie1")
	testutil.AssertNoError(t, eng.Insert("movie1", data.Tuple{types.Int(42)}), "insert into movie1")

	result, err := eng.Select("movie", "")
	testutil.AssertNoError(t, err, "select")
	if result.Name != "movie2" {
		t.Errorf("Expected result movie2, got %s", result.Name)
	}

	user, ok := eng.Table("movie1")
	if !ok {
		t.Fatal("Expected table movie1")
	}
	testutil.AssertColumnCount(t, user, 1, "user table movie1")
	testutil.AssertRows(t, user, []data.Tuple{{types.Int(42)}}, "user table movie1")
}

func TestResultNameTakenIsRejected(t *testing.T) {
	logger, _ := testutil.CaptureLogs(slog.LevelInfo)
	eng := New(WithLogger(logger), WithNames(fixedName("taken")))
	defer eng.Close()
	observer := &MockObserver{}

	def := testutil.MovieSchemas[0]
	_, err := eng.CreateTable(def.Name, def.Attributes, def.Domains, def.Key)
	testutil.AssertNoError(t, err, "create movie")
	_, err = eng.CreateTable("taken", "a", "Integer", "a")
	testutil.AssertNoError(t, err, "create taken")
	testutil.AssertNoError(t, eng.Insert("taken", data.Tuple{types.Int(42)}), "insert into taken")
	eng.AddObserver(observer)

	_, err = eng.Project("movie", "title")
	var exists *TableExistsError
	if !stderrors.As(err, &exists) || exists.Name != "taken" {
		t.Fatalf("Expected TableExistsError for taken, got %v", err)
	}

	taken, _ := eng.Table("taken")
	testutil.AssertRows(t, taken, []data.Tuple{{types.Int(42)}}, "existing table kept")
	if last := observer.Events[len(observer.Events)-1]; last.Type != EventOpError {
		t.Errorf("Expected EventOpError, got %s", last.Type)
	}
}
