package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordbuddy/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect the vocabulary pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			path = cfg.VocabPath
		}
		pool, err := vocab.Load(path)
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("list")
		if verbose {
			fmt.Printf("%-8s  %-20s  %-16s  %-10s  %s\n", "ID", "English", "Japanese", "Category", "Level")
			fmt.Println(strings.Repeat("─", 70))
			for _, it := range pool {
				fmt.Printf("%-8s  %-20s  %-16s  %-10s  %d\n", it.ID, it.EN, it.JA, it.Category.DisplayName(), it.Level)
			}
			fmt.Println()
		}

		counts := pool.CountByCategory()
		for _, c := range vocab.AllCategories() {
			fmt.Printf("%-10s %d\n", c.DisplayName(), counts[c])
		}
		fmt.Printf("levels %v\n", pool.Levels())
		fmt.Printf("\n%d words\n", len(pool))
		return nil
	},
}

var vocabImportCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Convert a spreadsheet or CSV word list into a vocabulary JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		out, _ := cmd.Flags().GetString("output")
		sheet, _ := cmd.Flags().GetString("sheet")

		var (
			pool vocab.Pool
			err  error
		)
		switch strings.ToLower(filepath.Ext(src)) {
		case ".xlsx":
			pool, err = vocab.LoadXLSX(src, sheet)
		case ".csv":
			pool, err = vocab.Load(src)
		default:
			return fmt.Errorf("unsupported file type %q (want .xlsx or .csv)", filepath.Ext(src))
		}
		if err != nil {
			return err
		}

		data, err := vocab.MarshalJSON(pool)
		if err != nil {
			return err
		}
		if out == "" || out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d words to %s\n", len(pool), out)
		return nil
	},
}

func init() {
	vocabCmd.Flags().String("file", "", "Vocabulary file to inspect (default: WORDBUDDY_VOCAB or the built-in pool)")
	vocabCmd.Flags().Bool("list", false, "List every word")

	vocabImportCmd.Flags().StringP("output", "o", "", "Output JSON file (default: stdout)")
	vocabImportCmd.Flags().String("sheet", "", "Sheet name (default: first sheet)")

	vocabCmd.AddCommand(vocabImportCmd)
}
