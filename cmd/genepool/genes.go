package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longregen/genepool/domain"
	"github.com/longregen/genepool/store"
)

func genesCmd() *cobra.Command {
	var geneType string

	cmd := &cobra.Command{
		Use:   "genes",
		Short: "List genes in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.OpenDB(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open gene database: %w", err)
			}
			defer db.Close()

			genes, err := db.LoadGenes(cmd.Context())
			if err != nil {
				return fmt.Errorf("load genes: %w", err)
			}

			if geneType != "" {
				gt := domain.GeneType(geneType)
				if !gt.Valid() {
					return fmt.Errorf("unknown gene type %q", geneType)
				}
				filtered := genes[:0]
				for _, g := range genes {
					if g.Type == gt {
						filtered = append(filtered, g)
					}
				}
				genes = filtered
			}

			for _, g := range genes {
				fmt.Printf("%s  %-20s v%-2d fitness=%.2f band=%-8s usage=%-4d +%d/-%d\n",
					g.ID, g.Type, g.Version, g.FitnessScore, g.FitnessBand(),
					g.UsageCount, g.PositiveReactions, g.NegativeReactions)
			}
			fmt.Printf("%d genes\n", len(genes))
			return nil
		},
	}

	cmd.Flags().StringVar(&geneType, "type", "", "filter by gene type")
	return cmd
}
