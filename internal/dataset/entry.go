package dataset

import (
	"strings"

	"reeltrivia/internal/model"
)

// Read-side helpers for the data-entry surface. These re-read the files per
// call so back-office edits are visible without a server restart.

// roleMatchThreshold is the bigram similarity above which a character name
// counts as already recorded.
const roleMatchThreshold = 0.8

// ReadProductionRow returns the raw column map for one production id, or nil
// when the id is not on file.
func ReadProductionRow(path, id string) (map[string]string, error) {
	rows, err := readRawRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) == 0 || strings.TrimSpace(rows[i][0]) != id {
			continue
		}
		out := make(map[string]string, len(header))
		for j, col := range header {
			v := ""
			if j < len(rows[i]) {
				v = strings.TrimSpace(rows[i][j])
			}
			out[strings.TrimSpace(col)] = v
		}
		return out, nil
	}
	return nil, nil
}

// ReadRows returns every data row of a table as a column map, skipping rows
// whose width does not match the header.
func ReadRows(path string) ([]map[string]string, error) {
	rows, err := readRawRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			continue
		}
		m := make(map[string]string, len(header))
		for j, col := range header {
			m[strings.TrimSpace(col)] = strings.TrimSpace(row[j])
		}
		out = append(out, m)
	}
	return out, nil
}

// KnownActorNames filters names down to those already present in the actors
// file.
func KnownActorNames(path string, names []string) ([]string, error) {
	rows, err := readRawRows(path)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]struct{})
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > 1 {
			if name := strings.TrimSpace(rows[i][1]); name != "" {
				existing[name] = struct{}{}
			}
		}
	}
	var found []string
	for _, n := range names {
		if _, ok := existing[n]; ok {
			found = append(found, n)
		}
	}
	return found, nil
}

// RoleExists reports whether a character is already recorded for the
// production, using fuzzy matching so cast-list variants ("Norrington" vs
// "James Norrington (Commodore)") still match.
func RoleExists(path, productionID, character string) (bool, error) {
	rows, err := readRawRows(path)
	if err != nil {
		return false, err
	}
	want := strings.ToLower(character)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= 4 || strings.TrimSpace(row[2]) != productionID {
			continue
		}
		have := strings.ToLower(CleanCharacterName(strings.TrimSpace(row[4])))
		if bigramSimilarity(want, have) > roleMatchThreshold {
			return true, nil
		}
	}
	return false, nil
}

// RolePair identifies a role by actor and character name.
type RolePair struct {
	ActorName     string `json:"actorName"`
	CharacterName string `json:"characterName"`
}

// KnownRoles filters pairs down to those already present in the roles file,
// compared case-insensitively with the character name stripped to
// alphanumerics.
func KnownRoles(path string, pairs []RolePair) ([]RolePair, error) {
	rows, err := readRawRows(path)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]struct{})
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= 4 {
			continue
		}
		actor, character := strings.TrimSpace(row[1]), strings.TrimSpace(row[4])
		if actor == "" || character == "" {
			continue
		}
		existing[roleLookupKey(actor, character)] = struct{}{}
	}
	var found []RolePair
	for _, p := range pairs {
		if _, ok := existing[roleLookupKey(p.ActorName, p.CharacterName)]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

// RolesForProduction returns the role rows of one production.
func RolesForProduction(path, productionID string) ([]model.Role, error) {
	rows, err := readRawRows(path)
	if err != nil {
		return nil, err
	}
	var roles []model.Role
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 5 || strings.TrimSpace(row[2]) != productionID {
			continue
		}
		roles = append(roles, model.Role{
			ActorID:         strings.TrimSpace(row[0]),
			ActorName:       strings.TrimSpace(row[1]),
			ProductionID:    strings.TrimSpace(row[2]),
			ProductionTitle: strings.TrimSpace(row[3]),
			Character:       strings.TrimSpace(row[4]),
		})
	}
	return roles, nil
}

// CleanCharacterName drops alias and parenthetical suffixes from a cast-list
// character name: "Smith / Agent Smith (voice)" becomes "Smith".
func CleanCharacterName(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		name = name[:i]
	}
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// bigramSimilarity is the Sorensen-Dice coefficient over character bigrams.
func bigramSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}
	bigrams := make(map[string]int)
	for i := 0; i < len(a)-1; i++ {
		bigrams[a[i:i+2]]++
	}
	matches := 0
	for i := 0; i < len(b)-1; i++ {
		if bigrams[b[i:i+2]] > 0 {
			bigrams[b[i:i+2]]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(len(a)+len(b)-2)
}

func roleLookupKey(actor, character string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(actor))
	b.WriteByte(0)
	for _, r := range strings.ToLower(character) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
