package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longregen/genepool/evolution"
	"github.com/longregen/genepool/store"
)

func seedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the gene database with the starter pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := store.OpenDB(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open gene database: %w", err)
			}
			defer db.Close()

			existing, err := db.LoadGenes(ctx)
			if err != nil {
				return fmt.Errorf("load genes: %w", err)
			}
			if len(existing) > 0 && !force {
				return fmt.Errorf("database already has %d genes; use --force to reseed", len(existing))
			}

			pool := store.New()
			for _, g := range evolution.SeedGenes() {
				pool.AddGene(g)
			}
			if err := db.SaveGenes(ctx, pool.AllGenes()); err != nil {
				return fmt.Errorf("save genes: %w", err)
			}

			fmt.Printf("Seeded %d genes into %s\n", pool.Len(), cfg.Database.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "reseed even if the database already has genes")
	return cmd
}
