package condition

import (
	stderrors "errors"
	"testing"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/errors"
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/domain/types"
	"gotest.tools/v3/assert"
)

func TestTokenize(t *testing.T) {
	input := `title == 'Star_Wars' & year >= "1977" | genre != sciFi`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{OPERAND, "title"},
		{COMPARISON, "=="},
		{OPERAND, "Star_Wars"},
		{AND, "&"},
		{OPERAND, "year"},
		{COMPARISON, ">="},
		{OPERAND, "1977"},
		{OR, "|"},
		{OPERAND, "genre"},
		{COMPARISON, "!="},
		{OPERAND, "sciFi"},
	}

	tokens := Tokenize(input)
	assert.Equal(t, len(tokens), len(tests))

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Pos != i {
			t.Fatalf("tests[%d] - position wrong. got=%d", i, tok.Pos)
		}
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"title == 'Star_Wars'", "title Star_Wars =="},
		{"1979 < year & year < 1990", "1979 year < year 1990 < &"},
		{"length > 100 & studioName == 'Universal' | genre == 'sciFi'",
			"length 100 > studioName Universal == & genre sciFi == |"},
		{"  a   ==   b  ", "a b =="},
	}

	for i, tt := range tests {
		p, err := Compile(tt.input)
		assert.NilError(t, err, "tests[%d]", i)
		assert.Equal(t, p.String(), tt.expected, "tests[%d]", i)
	}
}

func TestCompileBlank(t *testing.T) {
	for _, input := range []string{"", "   "} {
		p, err := Compile(input)
		assert.NilError(t, err)
		assert.Assert(t, p == nil)
	}
}

func TestCompileRejectsMalformed(t *testing.T) {
	tests := []string{
		"title",
		"title ==",
		"== title 'x'",
		"title 'x' ==",
		"a == b &",
		"a == b & c",
		"a == b c == d",
		"a & b == c",
		"a == b | | c == d",
	}

	for i, input := range tests {
		_, err := Compile(input)
		var condErr *errors.ConditionError
		assert.Assert(t, stderrors.As(err, &condErr), "tests[%d] %q: got %v", i, input, err)
		assert.Equal(t, condErr.Condition, input)
	}
}

func TestUnqualify(t *testing.T) {
	p, err := Compile("m.title == s_movieTitle & 2.5 < m.rating")
	assert.NilError(t, err)

	assert.Equal(t, p.Unqualify().String(), "m_title s_movieTitle == 2.5 m_rating < &")
	assert.Equal(t, p.String(), "m.title s_movieTitle == 2.5 m.rating < &", "original is unchanged")
}

func movieSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Parse("movie",
		"title year length genre studioName producerNo",
		"String Integer Integer String String Integer",
		"title year")
	assert.NilError(t, err)
	return s
}

func movie(title string, year, length int32, genre, studio string, producer int32) data.Tuple {
	return data.Tuple{
		types.String(title), types.Int(year), types.Int(length),
		types.String(genre), types.String(studio), types.Int(producer),
	}
}

func TestEval(t *testing.T) {
	s := movieSchema(t)
	starWars := movie("Star_Wars", 1977, 124, "sciFi", "Fox", 12345)
	galaxyQuest := movie("Galaxy_Quest", 1999, 104, "comedy", "DreamWorks", 67890)

	tests := []struct {
		condition string
		tuple     data.Tuple
		expected  bool
	}{
		{"", starWars, true},
		{"title == 'Star_Wars'", starWars, true},
		{"title == 'Star_Wars'", galaxyQuest, false},
		{"'Star_Wars' == title", starWars, true},
		{"year < 1980", starWars, true},
		{"1980 < year", galaxyQuest, true},
		{"1979 < year & year < 1990", starWars, false},
		{"1979 < year & year < 2000", galaxyQuest, true},
		{"length > 100 & studioName == 'Universal' | genre == 'sciFi'", starWars, true},
		{"length > 100 & studioName == 'Universal' | genre == 'sciFi'", galaxyQuest, false},
		{"year != 1977", starWars, false},
		{"length >= 124 & length <= 124", starWars, true},
		{"title == genre", starWars, false},
		{"producerNo > year", starWars, true},
	}

	for i, tt := range tests {
		p, err := Compile(tt.condition)
		assert.NilError(t, err, "tests[%d]", i)
		got, err := p.Eval(s, tt.tuple)
		assert.NilError(t, err, "tests[%d] %q", i, tt.condition)
		assert.Equal(t, got, tt.expected, "tests[%d] %q", i, tt.condition)
	}
}

func TestEvalCharColumn(t *testing.T) {
	s, err := schema.Parse("movieStar", "name address gender birthdate", "String String Character String", "name")
	assert.NilError(t, err)

	carrie := data.Tuple{types.String("Carrie_Fisher"), types.String("Hollywood"), types.Character('F'), types.String("9/9/99")}

	p, err := Compile("gender == 'F'")
	assert.NilError(t, err)
	ok, err := p.Eval(s, carrie)
	assert.NilError(t, err)
	assert.Assert(t, ok)

	p, err = Compile("gender == 'M'")
	assert.NilError(t, err)
	ok, err = p.Eval(s, carrie)
	assert.NilError(t, err)
	assert.Assert(t, !ok)
}

func TestEvalErrors(t *testing.T) {
	s := movieSchema(t)
	starWars := movie("Star_Wars", 1977, 124, "sciFi", "Fox", 12345)

	tests := []struct {
		postfix Postfix
		reason  string
	}{
		{Postfix{"year"}, "one boolean"},
		{Postfix{"year", "1977", "==", "&"}, "underflow"},
		{Postfix{"year", "1977", "==", "title"}, "one boolean"},
		{Postfix{"year", "abc", "=="}, "abc"},
		{Postfix{"foo", "bar", "=="}, "names an attribute"},
		{Postfix{"year", "1977", "==", "year", "&"}, "applied to an operand"},
		{Postfix{"year", "1977", "==", "year", "=="}, "applied to a boolean"},
	}

	for i, tt := range tests {
		_, err := tt.postfix.Eval(s, starWars)
		var condErr *errors.ConditionError
		assert.Assert(t, stderrors.As(err, &condErr), "tests[%d]: got %v", i, err)
		assert.ErrorContains(t, err, tt.reason, "tests[%d]", i)
	}
}
