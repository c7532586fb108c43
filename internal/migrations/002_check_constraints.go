package migrations

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type checkConstraint struct {
	table, name, expr string
}

var checkConstraints = []checkConstraint{
	{"profiles", "chk_profiles_age", "age IS NULL OR age >= 0"},
	{"roommate_profiles", "chk_roommate_profiles_budget", "budget IS NULL OR budget >= 0"},
	{"rooms", "chk_rooms_price", "price > 0"},
	{"room_reviews", "chk_room_reviews_rating", "rating BETWEEN 1 AND 5"},
	{"room_availabilities", "chk_room_availabilities_window", "end_date >= start_date"},
}

// Migration002CheckConstraints adds CHECK constraints on PostgreSQL. SQLite
// cannot add constraints to existing tables, so it is recorded as applied
// without changes there; the handlers validate the same rules.
func Migration002CheckConstraints() Migration {
	return Migration{
		ID:        "002_check_constraints",
		Name:      "Add value check constraints",
		DependsOn: []string{"001_search_indexes"},
		Up: func(db *gorm.DB) error {
			if db.Dialector.Name() != "postgres" {
				log.Info().Str("dialect", db.Dialector.Name()).Msg("Skipping check constraints")
				return nil
			}
			for _, cc := range checkConstraints {
				stmt := fmt.Sprintf(`DO $$ BEGIN
					IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
						ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
					END IF;
				END $$`, cc.name, cc.table, cc.name, cc.expr)
				if err := db.Exec(stmt).Error; err != nil {
					return fmt.Errorf("add %s: %w", cc.name, err)
				}
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			if db.Dialector.Name() != "postgres" {
				return nil
			}
			for _, cc := range checkConstraints {
				if err := db.Exec(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s", cc.table, cc.name)).Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
