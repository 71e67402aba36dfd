package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
)

var catalogYAML bool

// catalogCmd prints the attribute catalog
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the attributes and categories practices are scored against",
	Long: `Prints every attribute group with its attributes, followed by the
categories a practice can be assigned to.

Example:
  profiler catalog
  profiler catalog --yaml > catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: showCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogYAML, "yaml", false, "Print the catalog as YAML")
}

func showCatalog(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()
	logger.Debug("Printing catalog", zap.Int("attributes", cat.Len()), zap.Bool("yaml", catalogYAML))

	out := cmd.OutOrStdout()
	if catalogYAML {
		return writeCatalogYAML(out, cat)
	}
	writeCatalogText(out, cat)
	return nil
}

func writeCatalogText(w io.Writer, cat *catalog.Catalog) {
	for _, g := range cat.Groups() {
		fmt.Fprintf(w, "%s\n", g.Title)
		if g.Description != "" {
			fmt.Fprintf(w, "  %s\n", g.Description)
		}
		for _, id := range g.AttributeIDs {
			attr, ok := cat.Attribute(id)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  - %s (%s): %s\n", attr.Name, attr.ID, attr.Description)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Categories\n")
	for _, c := range cat.Categories() {
		fmt.Fprintf(w, "  - %s\n", c)
	}
	fmt.Fprintf(w, "\nScores range from %d to %d.\n", catalog.ScoreMin, catalog.ScoreMax)
}

type catalogDocument struct {
	Attributes []catalog.Attribute      `yaml:"attributes"`
	Groups     []catalog.AttributeGroup `yaml:"groups"`
	Categories []string                 `yaml:"categories"`
}

func writeCatalogYAML(w io.Writer, cat *catalog.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	doc := catalogDocument{
		Attributes: cat.Attributes(),
		Groups:     cat.Groups(),
		Categories: cat.Categories(),
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}
