package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync films from SWAPI into the local database",
	Long: `Fetch the SWAPI film catalog and upsert it into the local database.

Examples:
  swapi-films sync          # Sync all films
  swapi-films sync --id 4   # Refresh a single film by its SWAPI id`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().Int("id", 0, "SWAPI id of a single film to refresh")
}

func runSync(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return syncFilms(cmd, a, id)
}

func syncFilms(cmd *cobra.Command, a *app, id int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if id > 0 {
		film, err := a.syncService.SyncFilm(ctx, id)
		if err != nil {
			return fmt.Errorf("sync film %d: %w", id, err)
		}
		fmt.Fprintf(out, "Synced film %d: %s\n", film.SwapiID, film.Title)
		return nil
	}
	if id < 0 {
		return fmt.Errorf("invalid film id: %d", id)
	}

	n, err := a.syncService.SyncFilms(ctx)
	if err != nil {
		return fmt.Errorf("sync films: %w", err)
	}
	fmt.Fprintf(out, "Synced %d films\n", n)
	return nil
}
