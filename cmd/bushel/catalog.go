package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/btouchard/bushel/internal/compiler/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the terminology catalog",
	Long: `Imports and lists the application and system vocabularies that
"require app" and "require system" load from.

Examples:
  bushel catalog import Finder.yaml
  bushel catalog list
  bushel catalog remove app Finder`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file.yaml>...",
	Short: "Import vocabulary files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogImport,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored vocabularies",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <kind> <name>",
	Short: "Remove a stored vocabulary",
	Args:  cobra.ExactArgs(2),
	RunE:  runCatalogRemove,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd, catalogListCmd, catalogRemoveCmd)
}

func openCatalog() (*catalog.Store, error) {
	if cfg.Catalog.DSN == "" {
		return nil, fmt.Errorf("no catalog configured, set [catalog] dsn in %s", DefaultConfigFile)
	}
	return catalog.Open(cfg.Catalog.DSN, logger)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		v, err := store.ImportYAML(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s %s (%d terms)\n", v.Kind, v.Name, len(v.Terms))
	}
	return nil
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	vs, err := store.Vocabularies()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tBUNDLE ID\tLANGUAGE\tIMPORTED")
	for _, v := range vs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.Kind, v.Name, v.BundleID, v.Language, v.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runCatalogRemove(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Remove(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s %s\n", args[0], args[1])
	return nil
}
