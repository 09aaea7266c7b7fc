package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"notelint/internal/config"
	"notelint/internal/git"
	"notelint/internal/lint"
	"notelint/internal/notes"
	"notelint/internal/report"
	"notelint/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "notelint",
		Short: "Lint, format and track markdown lecture notes",
	}
	configPath string
	dbPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "notelint.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the lint history database (SQLite); overrides config")

	lintCmd.Flags().String("changed", "", "Only lint notes changed relative to this git ref")
	lintCmd.Flags().String("json", "", "Also write the report as JSON to this file")
	lintCmd.Flags().Bool("incremental", false, "Reuse stored results for files whose content is unchanged")
	fmtCmd.Flags().BoolP("write", "w", false, "Rewrite files in place instead of printing")
	reportCmd.Flags().String("json", "", "Read the report from this JSON file instead of the database")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reportCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	return cfg
}

// initStore initializes the SQLite store.
func initStore(cfg *config.Config) (storage.Store, error) {
	return storage.NewSQLiteStore(cfg.Storage.DBPath)
}

func printReport(r *lint.Report) {
	for _, f := range r.Files {
		if f.Unreadable() {
			fmt.Printf("%s: %s\n", f.Path, f.ReadError)
			continue
		}
		if f.Malformed() {
			fmt.Printf("%s:%d: %s\n", f.Path, f.ErrorLine, f.ParseError)
			continue
		}
		for _, is := range f.Issues {
			fmt.Printf("%s:%d: %s: %s\n", f.Path, is.Line, is.Kind, is.Message)
		}
	}
	fmt.Printf("📊 %d files, %d unreadable, %d malformed, %d issues\n",
		r.Summary.Files, r.Summary.Unreadable, r.Summary.Malformed, r.Summary.Issues)
}

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Parse and validate every notes file under path",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := context.Background()

		root := cfg.Notes.Root
		if len(args) > 0 {
			root = args[0]
		}
		changedRef, _ := cmd.Flags().GetString("changed")
		jsonPath, _ := cmd.Flags().GetString("json")
		incremental, _ := cmd.Flags().GetBool("incremental")

		// 1. Initialize Store
		store, err := initStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		linter := lint.NewLinter(cfg)
		if incremental {
			prev, err := store.LoadReport(ctx)
			if err != nil {
				log.Fatalf("Failed to load previous report: %v", err)
			}
			linter.Reuse(prev)
		}

		// 2. Lint
		start := time.Now()
		var r *lint.Report
		if changedRef != "" {
			changes, err := git.GetChangedFiles(changedRef)
			if err != nil {
				log.Fatalf("Failed to get git changes: %v", err)
			}
			changes = git.FilterByExtension(changes, cfg.Notes.Extensions)
			if len(changes) == 0 {
				fmt.Println("✅ No changed notes detected.")
				return
			}
			fmt.Printf("📝 Detected %d changed notes files.\n", len(changes))
			top, err := git.TopLevel(".")
			if err != nil {
				log.Fatalf("Failed to locate repository root: %v", err)
			}
			present, lines := changedNotes(changes, top)
			r = linter.LintFiles(present)
			r.RestrictToLines(lines)
		} else {
			fmt.Printf("📂 Linting notes in: %s\n", root)
			r, err = linter.LintTree(root)
			if err != nil {
				log.Fatalf("Lint failed: %v", err)
			}
		}
		fmt.Printf("✅ Linted %d files in %v.\n", len(r.Files), time.Since(start))
		printReport(r)

		// 3. Persist
		if changedRef == "" {
			if err := store.SaveReport(ctx, r); err != nil {
				log.Fatalf("Failed to save report: %v", err)
			}
		}
		if jsonPath != "" {
			if err := report.SaveReport(jsonPath, r); err != nil {
				log.Fatalf("Failed to write JSON report: %v", err)
			}
			fmt.Printf("💾 Report written to %s\n", jsonPath)
		}

		if cfg.Lint.FailOnIssues && r.HasFindings() {
			os.Exit(1)
		}
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>...",
	Short: "Rewrite notes files in canonical form",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		write, _ := cmd.Flags().GetBool("write")
		for _, path := range args {
			formatted, changed, err := formatFile(path)
			if err != nil {
				log.Fatalf("Failed to format %s: %v", path, err)
			}
			if !write {
				fmt.Print(formatted)
				continue
			}
			if !changed {
				continue
			}
			if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
				log.Fatalf("Failed to write %s: %v", path, err)
			}
			fmt.Printf("✍️  %s\n", path)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Verify that rendering a notes file and parsing it again is lossless",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := 0
		for _, path := range args {
			if err := checkRoundTrip(path); err != nil {
				fmt.Printf("❌ %s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Printf("✅ %s\n", path)
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the last stored lint report",
	Run: func(cmd *cobra.Command, args []string) {
		jsonPath, _ := cmd.Flags().GetString("json")

		var store storage.ReportStore
		if jsonPath == "" {
			s, err := initStore(loadConfig())
			if err != nil {
				log.Fatalf("Failed to initialize database: %v", err)
			}
			defer s.Close()
			store = s
		}

		r, err := loadReport(context.Background(), store, jsonPath)
		if err != nil {
			log.Fatalf("Failed to load report: %v", err)
		}
		if r == nil {
			fmt.Println("No lint report stored yet. Run 'notelint lint' first.")
			return
		}
		fmt.Printf("🗂  Report for %s generated at %s\n", r.Root, r.GeneratedAt)
		printReport(r)
	},
}

// changedNotes resolves repository-relative diff paths against top and
// keeps the files that still exist. The returned index maps each kept path
// to its changed lines.
func changedNotes(changes []git.ChangedFile, top string) ([]string, map[string][]int) {
	var present []git.ChangedFile
	for _, c := range git.Resolve(changes, top) {
		if _, err := os.Stat(c.Path); err == nil {
			present = append(present, c)
		}
	}
	return git.Paths(present), git.LineIndex(present)
}

// loadReport reads a JSON report when jsonPath is set, otherwise the last
// run stored in store. A nil report means nothing has been stored yet.
func loadReport(ctx context.Context, store storage.ReportStore, jsonPath string) (*lint.Report, error) {
	if jsonPath != "" {
		return report.LoadReport(jsonPath)
	}
	return store.LoadReport(ctx)
}

// formatFile parses path and renders it back. changed reports whether the
// rendered text differs from the file content.
func formatFile(path string) (string, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	doc, err := notes.Parse(string(b))
	if err != nil {
		return "", false, err
	}
	out := notes.Render(doc)
	return out, out != string(b), nil
}

func checkRoundTrip(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := notes.Parse(string(b))
	if err != nil {
		return err
	}
	again, err := notes.Parse(notes.Render(doc))
	if err != nil {
		return fmt.Errorf("rendered text does not parse: %w", err)
	}
	if !notes.Equal(doc, again) {
		return fmt.Errorf("rendered text parses to a different document")
	}
	return nil
}
