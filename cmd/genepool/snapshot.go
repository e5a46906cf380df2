package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/longregen/genepool/store"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the gene pool to a msgpack snapshot",
		Args:  cobra.ExactArgs(1),
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

			data, err := store.EncodeSnapshot(genes)
			if err != nil {
				return fmt.Errorf("encode snapshot: %w", err)
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			fmt.Printf("Exported %d genes to %s\n", len(genes), args[0])
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the gene database with a msgpack snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			genes, err := store.DecodeSnapshot(data)
			if err != nil {
				return fmt.Errorf("decode snapshot: %w", err)
			}

			db, err := store.OpenDB(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open gene database: %w", err)
			}
			defer db.Close()

			if err := db.SaveGenes(cmd.Context(), genes); err != nil {
				return fmt.Errorf("save genes: %w", err)
			}

			fmt.Printf("Imported %d genes into %s\n", len(genes), cfg.Database.Path)
			return nil
		},
	}
}
