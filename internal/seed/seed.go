// Package seed installs the default course catalog on first run.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emre/enrollhub/internal/app/registry"
)

// catalogEntry is one row of the default catalog.
type catalogEntry struct {
	id, name, instructor, days, timeRange string
}

// defaultCatalog is the fixed twenty-course catalog shipped with the
// system. All courses use the default capacity.
var defaultCatalog = []catalogEntry{
	{"BIO101", "General Biology", "Dr. Darwin", "MWF", "08:00–09:30"},
	{"CHEM101", "Intro to Chemistry", "Dr. Curie", "TR", "08:00–09:30"},
	{"MATH101", "College Algebra", "Dr. Euler", "MWF", "09:00–10:30"},
	{"PHYS101", "Physics I", "Dr. Newton", "TR", "09:00–10:30"},
	{"CS101", "Intro to Programming", "Prof. Turing", "MWF", "10:00–11:30"},
	{"PSY101", "Psychology Basics", "Dr. Freud", "TR", "10:00–11:30"},
	{"ENG101", "English Composition", "Prof. Orwell", "MWF", "11:00–12:30"},
	{"SOC101", "Intro to Sociology", "Dr. Durkheim", "TR", "11:00–12:30"},
	{"ART101", "Foundations of Art", "Prof. Picasso", "MWF", "12:00–13:30"},
	{"MUS101", "Music Theory", "Prof. Bach", "TR", "12:00–13:30"},
	{"HIST101", "World History", "Dr. Herodotus", "MWF", "13:00–14:30"},
	{"ECON101", "Microeconomics", "Dr. Smith", "TR", "13:00–14:30"},
	{"PHIL101", "Intro to Philosophy", "Dr. Kant", "MWF", "14:00–15:30"},
	{"LANG101", "Spanish I", "Prof. Cervantes", "TR", "14:00–15:30"},
	{"BUS101", "Principles of Business", "Dr. Bezos", "MWF", "08:00–09:30"},
	{"LAW101", "Intro to Law", "Prof. Ginsburg", "TR", "09:00–10:30"},
	{"ANTH101", "Cultural Anthropology", "Dr. Levi-Strauss", "MWF", "10:00–11:30"},
	{"ASTRO101", "Astronomy Basics", "Dr. Hawking", "TR", "11:00–12:30"},
	{"GEO101", "Physical Geography", "Dr. Wegener", "MWF", "12:00–13:30"},
	{"MED101", "Intro to Medicine", "Dr. House", "TR", "14:00–15:30"},
}

// CreateDefaultCatalog installs the default courses when the catalog is
// empty. A non-empty catalog, even a partial one, is left untouched.
func CreateDefaultCatalog(ctx context.Context, reg *registry.Registry, lgr zerolog.Logger) error {
	if reg.CourseCount() > 0 {
		lgr.Debug().Msg("Catalog already populated, skipping seed")
		return nil
	}

	lgr.Info().Int("courses", len(defaultCatalog)).Msg("Seeding default course catalog")
	for _, entry := range defaultCatalog {
		if _, err := reg.AddCourse(ctx, entry.id, entry.name, entry.instructor, entry.days, entry.timeRange, 0); err != nil {
			return fmt.Errorf("failed to seed course %s: %w", entry.id, err)
		}
	}
	return nil
}
