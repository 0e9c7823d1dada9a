package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reeltrivia/internal/model"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, ActorsFile,
		"imdb_id,name,birthday (YYYY-MM-DD)\n"+
			"nm1,Alice Gray,1970-01-01\n"+
			"nm2,Ben Cole,N/A\n"+
			"nm3,Cara Dunn,1980-03-10\n"+
			",Missing Id,1990-01-01\n")
	writeFile(t, dir, ProductionsFile,
		"imdb_id,title,type,franchise,genre_ids,release_date,production_start,production_end,box_office_us,imdb_rating,poster\n"+
			"tt1,Saga One,movie,Saga,28|12,2000-06-01,1999-03-01,1999-09-01,\"$100,000,000\",7.1,\n"+
			"tt2,Lone Drift,movie,,878,2010-06-01,2009-03-01,,N/A,N/A,\n")
	writeFile(t, dir, RolesFile,
		"actor_imdb_id,actor_name,production_imdb_id,production_title,character\n"+
			"nm1,Alice Gray,tt1,Saga One,Hero\n"+
			"nm3,Cara Dunn,tt1,Saga One,Rival\n"+
			"nm1,Alice Gray,tt2,Lone Drift,Drifter\n")
	writeFile(t, dir, GenresFile,
		"id,name\n28,Action\n12,Adventure\n878,Science Fiction\n")
	return dir
}

func TestLoad(t *testing.T) {
	tables, err := Load(writeFixture(t), quietLog())
	require.NoError(t, err)

	assert.Len(t, tables.Actors, 3) // the row without an id is dropped
	assert.Len(t, tables.Productions, 2)
	assert.Len(t, tables.Roles, 3)

	t.Run("year bounds from release dates", func(t *testing.T) {
		assert.Equal(t, 2000, tables.AbsoluteMinYear)
		assert.Equal(t, 2010, tables.AbsoluteMaxYear)
	})

	t.Run("n/a fields are blanked", func(t *testing.T) {
		ben, ok := tables.Actor("nm2", "Ben Cole")
		require.True(t, ok)
		assert.Nil(t, ben.Birthday)

		lone := tables.Productions["tt2"]
		assert.Empty(t, lone.BoxOffice)
		assert.Empty(t, lone.Rating)
		assert.Nil(t, lone.ProductionEnd)
	})

	t.Run("genre ids are split and named", func(t *testing.T) {
		saga := tables.Productions["tt1"]
		assert.Equal(t, []string{"28", "12"}, saga.GenreIDs)
		assert.Equal(t, "Action", tables.GenreName("28"))
		assert.Equal(t, "999", tables.GenreName("999"))
	})

	t.Run("quoted currency survives parsing", func(t *testing.T) {
		v, ok := tables.Productions["tt1"].BoxOfficeValue()
		require.True(t, ok)
		assert.Equal(t, int64(100000000), v)
	})
}

func TestLoadMissingTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ActorsFile, "imdb_id,name,birthday (YYYY-MM-DD)\nnm1,Alice Gray,1970-01-01\n")
	_, err := Load(dir, quietLog())
	assert.Error(t, err)
}

func TestLoadEmptyTables(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ActorsFile, "imdb_id,name,birthday (YYYY-MM-DD)\n")
	writeFile(t, dir, ProductionsFile, "imdb_id,title\n")
	writeFile(t, dir, RolesFile, "actor_imdb_id,actor_name,production_imdb_id,production_title,character\n")

	_, err := Load(dir, quietLog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid data rows")
}

func TestLoadGenresOptional(t *testing.T) {
	dir := writeFixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, GenresFile)))

	tables, err := Load(dir, quietLog())
	require.NoError(t, err)
	// Ids still classify; names fall back to the id.
	assert.Equal(t, "28", tables.GenreName("28"))
}

func TestClassifyGenresMajorSplit(t *testing.T) {
	tables := &Tables{
		Productions: make(map[string]*model.Production),
		genreNames:  map[string]string{"28": "Action", "99": "Documentary"},
	}
	for i := 0; i < majorGenreThreshold; i++ {
		id := string(rune('a' + i))
		tables.Productions[id] = &model.Production{ID: id, Title: id, GenreIDs: []string{"28"}}
	}
	tables.Productions["doc"] = &model.Production{ID: "doc", Title: "doc", GenreIDs: []string{"99"}}
	tables.classifyGenres()

	byID := make(map[string]model.Genre)
	for _, g := range tables.Genres {
		byID[g.ID] = g
	}
	assert.True(t, byID["28"].Major)
	assert.False(t, byID["99"].Major)
}
