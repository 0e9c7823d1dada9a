package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"reeltrivia/internal/dataset"
	"reeltrivia/internal/model"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

// testTables builds a small dataset with two complete franchises, one
// standalone production, and five actors who appear in every production.
func testTables() *dataset.Tables {
	t := &dataset.Tables{
		Actors:      make(map[model.ActorKey]*model.Actor),
		Productions: make(map[string]*model.Production),
	}

	actors := []*model.Actor{
		{ID: "nm1", Name: "Alice Gray", Birthday: date(1970, 1, 1)},
		{ID: "nm2", Name: "Ben Cole", Birthday: date(1960, 6, 15)},
		{ID: "nm3", Name: "Cara Dunn", Birthday: date(1980, 3, 10)},
		{ID: "nm4", Name: "Dan Ellis", Birthday: date(1975, 9, 20)},
		{ID: "nm5", Name: "Eve Frost", Birthday: date(1950, 12, 5)},
	}
	for _, a := range actors {
		t.Actors[a.Key()] = a
	}

	type prodSpec struct {
		id, title, franchise string
		year                 int
		boxOffice, rating    string
	}
	specs := []prodSpec{
		{"tt01", "Saga One", "Saga", 2000, "$100,000,000", "7.1"},
		{"tt02", "Saga Two", "Saga", 2001, "$150,000,000", "7.5"},
		{"tt03", "Saga Three", "Saga", 2002, "$90,000,000", "6.8"},
		{"tt04", "Saga Four", "Saga", 2003, "$200,000,000", "8.2"},
		{"tt05", "Orbit One", "Orbit", 2005, "$50,000,000", "6.1"},
		{"tt06", "Orbit Two", "Orbit", 2006, "$75,000,000", "6.9"},
		{"tt07", "Orbit Three", "Orbit", 2007, "$60,000,000", "7.8"},
		{"tt08", "Orbit Four", "Orbit", 2008, "$85,000,000", "7.3"},
		{"tt09", "Lone Drift", "", 2010, "$40,000,000", "8.5"},
	}
	for _, s := range specs {
		t.Productions[s.id] = &model.Production{
			ID:              s.id,
			Title:           s.title,
			Franchise:       s.franchise,
			GenreIDs:        []string{"28"},
			ReleaseDate:     date(s.year, 6, 1),
			ProductionStart: date(s.year-1, 3, 1),
			ProductionEnd:   date(s.year-1, 9, 1),
			BoxOffice:       s.boxOffice,
			Rating:          s.rating,
		}
	}

	for _, s := range specs {
		for _, a := range actors {
			t.Roles = append(t.Roles, model.Role{
				ActorID:         a.ID,
				ActorName:       a.Name,
				ProductionID:    s.id,
				ProductionTitle: s.title,
				Character:       fmt.Sprintf("%s of %s", a.Name, s.title),
			})
		}
	}

	t.AbsoluteMinYear, t.AbsoluteMaxYear = 2000, 2010
	return t
}

func testGenerator(seed uint64) (*Generator, *dataset.Tables) {
	tables := testTables()
	filter := NewFilterContext(tables.AbsoluteMinYear, tables.AbsoluteMaxYear, 0, 0, nil, nil)
	rng := rand.New(rand.NewPCG(seed, seed+1))
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewGenerator(tables, filter, NewUsedMemory(), rng, log), tables
}
