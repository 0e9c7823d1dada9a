package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reeltrivia/internal/model"
)

func TestCleanCharacterName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Smith / Agent Smith (voice)", "Smith"},
		{"James Norrington (Commodore)", "James Norrington"},
		{"Neo", "Neo"},
		{"  Trinity  ", "Trinity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanCharacterName(tt.in))
	}
}

func TestBigramSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, bigramSimilarity("norrington", "norrington"))
	assert.Greater(t, bigramSimilarity("norrington", "norringtons"), 0.8)
	assert.Less(t, bigramSimilarity("norrington", "elizabeth"), 0.2)
	assert.Zero(t, bigramSimilarity("a", "ab"))
}

func rolesFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, RolesFile,
		"actor_imdb_id,actor_name,production_imdb_id,production_title,character\n"+
			"nm1,Alice Gray,tt1,Saga One,James Norrington (Commodore)\n"+
			"nm2,Ben Cole,tt1,Saga One,Villain\n")
	return filepath.Join(dir, RolesFile)
}

func TestRoleExists(t *testing.T) {
	path := rolesFixture(t)

	t.Run("fuzzy variant matches", func(t *testing.T) {
		ok, err := RoleExists(path, "tt1", "james norrington")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("different character does not", func(t *testing.T) {
		ok, err := RoleExists(path, "tt1", "elizabeth swann")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("scoped to the production", func(t *testing.T) {
		ok, err := RoleExists(path, "tt9", "james norrington")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestKnownRoles(t *testing.T) {
	path := rolesFixture(t)

	known, err := KnownRoles(path, []RolePair{
		{ActorName: "alice gray", CharacterName: "James Norrington Commodore"},
		{ActorName: "Ben Cole", CharacterName: "Hero"},
	})
	require.NoError(t, err)
	require.Len(t, known, 1)
	assert.Equal(t, "alice gray", known[0].ActorName)
}

func TestUpsertProduction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProductionsFile)
	writeFile(t, dir, ProductionsFile,
		"imdb_id,title,release_date,imdb_rating\n"+
			"tt1,Saga One,2000-06-01,7.1\n")

	t.Run("update keeps untouched columns", func(t *testing.T) {
		require.NoError(t, UpsertProduction(path, "tt1", map[string]string{"imdb_rating": "8.0"}))
		row, err := ReadProductionRow(path, "tt1")
		require.NoError(t, err)
		assert.Equal(t, "8.0", row["imdb_rating"])
		assert.Equal(t, "Saga One", row["title"])
	})

	t.Run("unknown id appends", func(t *testing.T) {
		require.NoError(t, UpsertProduction(path, "tt2", map[string]string{"title": "Saga Two"}))
		row, err := ReadProductionRow(path, "tt2")
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "tt2", row["imdb_id"])
		assert.Equal(t, "Saga Two", row["title"])
	})

	t.Run("output is fully quoted", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		for _, line := range lines {
			assert.True(t, strings.HasPrefix(line, `"`), "line %q not quoted", line)
		}
	})

	t.Run("missing id rejected", func(t *testing.T) {
		assert.Error(t, UpsertProduction(path, "", map[string]string{"title": "x"}))
	})
}

func TestRewriteWithQuotesEscapesEmbeddedQuotes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProductionsFile)
	writeFile(t, dir, ProductionsFile,
		"imdb_id,title\n"+
			"tt1,\"The \"\"Big\"\" One\"\n")

	require.NoError(t, RewriteWithQuotes(path))

	rows, err := readRawRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `The "Big" One`, rows[1][1])
}

func TestAppendActor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ActorsFile)
	writeFile(t, dir, ActorsFile, "imdb_id,name,birthday (YYYY-MM-DD)\nnm1,Alice Gray,1970-01-01\n")

	added, err := AppendActor(path, "nm2", "Ben Cole", "1960-06-15")
	require.NoError(t, err)
	assert.True(t, added)

	// Same id again is a no-op.
	added, err = AppendActor(path, "nm2", "Ben Cole", "1960-06-15")
	require.NoError(t, err)
	assert.False(t, added)

	names, err := KnownActorNames(path, []string{"Ben Cole", "Cara Dunn"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ben Cole"}, names)
}

func TestAppendRoles(t *testing.T) {
	path := rolesFixture(t)

	added, err := AppendRoles(path, [][]string{
		{"nm2", "Ben Cole", "tt1", "Saga One", "Villain"}, // exact duplicate
		{"nm3", "Cara Dunn", "tt1", "Saga One", "Rival"},
		{"nm3", "Cara Dunn", "tt1", "Saga One", "Rival"}, // duplicate within batch
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	roles, err := RolesForProduction(path, "tt1")
	require.NoError(t, err)
	assert.Len(t, roles, 3)
	assert.Contains(t, roles, model.Role{
		ActorID: "nm3", ActorName: "Cara Dunn",
		ProductionID: "tt1", ProductionTitle: "Saga One", Character: "Rival",
	})
}
