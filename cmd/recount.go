package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// recountCmd repairs the denormalized categories.item_count column from the
// live asset rows, for counters that drifted through out-of-band writes.
var recountCmd = &cobra.Command{
	Use:   "recount",
	Short: "Recompute category item counts from asset rows",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		result := db.Exec(`
			UPDATE categories
			SET item_count = (
				SELECT COUNT(*) FROM assets WHERE assets.category_id = categories.id
			)`)
		if result.Error != nil {
			log.Fatalf("recount failed: %v", result.Error)
		}

		fmt.Printf("Recounted %d categories\n", result.RowsAffected)
	},
}
