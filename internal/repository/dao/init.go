package dao

import (
	"fmt"

	"gorm.io/gorm"
)

// boardForeignKeys are declared from the child tables so the models carry no
// relation fields.
var boardForeignKeys = []struct {
	model any
	table string
	name  string
}{
	{&Square{}, "squares", "fk_squares_board"},
	{&Game{}, "games", "fk_games_board"},
}

func InitTables(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Board{},
		&Square{},
		&Game{},
	); err != nil {
		return err
	}

	for _, fk := range boardForeignKeys {
		if db.Migrator().HasConstraint(fk.model, fk.name) {
			continue
		}

		stmt := fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE",
			fk.table, fk.name,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s -> %w", fk.name, err)
		}
	}

	return nil
}

// DropTables removes every pool table.
func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(&Game{}, &Square{}, &Board{})
}
