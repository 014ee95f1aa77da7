package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"titlecatalog/internal/models"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var valuesCmd = &cobra.Command{
	Use:   "values <column>",
	Short: "Print the sorted distinct values of a column",
	Long: `Print the sorted distinct values of a column. Comma-separated columns
such as cast, country and listed_in are split into individual values;
title and type are reported whole.`,
	Args: cobra.ExactArgs(1),
	RunE: runValues,
}

func init() {
	rootCmd.AddCommand(valuesCmd)
}

func runValues(cmd *cobra.Command, args []string) error {
	column := strings.ToLower(strings.TrimSpace(args[0]))

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	c, err := s.openCatalog()
	if err != nil {
		return err
	}

	if !slices.Contains(c.Snapshot().Columns, column) {
		return fmt.Errorf("unknown column %q (available: %s)", column, strings.Join(c.Snapshot().Columns, ", "))
	}

	var values []string

	switch column {
	case models.ColumnTitle:
		values = c.Titles()
	case models.ColumnType:
		values = c.Types()
	default:
		values = c.Values(column)
	}

	return s.renderer.Values(cmd.OutOrStdout(), column, values)
}
