// Command ftsctl is the demo/benchmark driver for the search engine library.
// It is deliberately a thin, external collaborator: the index core in
// pkg/engine has no dependency on this package or on cobra.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcsearch/fts/pkg/config"
	"github.com/arcsearch/fts/pkg/corpusloader"
	"github.com/arcsearch/fts/pkg/engine"
	"github.com/arcsearch/fts/pkg/paginate"
)

var (
	version = "0.1.0"

	configPath   string
	stopWords    string
	fromBadger   string
	badgerMemory bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ftsctl",
		Short: "ftsctl - in-memory TF-IDF search engine driver",
		Long: `ftsctl is a demonstration CLI for the in-memory full-text search
engine: it loads documents, runs ranked queries, and prints paginated
results. The engine itself holds no state on disk; this CLI is the only
place persistence (via an optional BadgerDB staging store) ever appears.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML engine config file")
	rootCmd.PersistentFlags().StringVar(&stopWords, "stopwords", "", "space-separated stop words")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ftsctl v%s\n", version)
		},
	})

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "ingest documents from a BadgerDB staging store into a fresh engine and report the document count",
		Args:  cobra.ExactArgs(0),
		RunE:  runIngest,
	}
	ingestCmd.Flags().StringVar(&fromBadger, "from-badger", "", "BadgerDB data directory to load staged documents from")
	ingestCmd.Flags().BoolVar(&badgerMemory, "badger-memory", false, "run the staging store in-memory instead of on disk")
	rootCmd.AddCommand(ingestCmd)

	queryCmd := &cobra.Command{
		Use:   "query [query-text]",
		Short: "run a ranked query against documents ingested from a BadgerDB staging store",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
	queryCmd.Flags().StringVar(&fromBadger, "from-badger", "", "BadgerDB data directory to load staged documents from")
	queryCmd.Flags().Int("page-size", 0, "page size for paginated output (0 uses the config default)")
	rootCmd.AddCommand(queryCmd)

	replCmd := &cobra.Command{
		Use:   "serve-repl",
		Short: "load a corpus and read queries from stdin until EOF",
		Args:  cobra.ExactArgs(0),
		RunE:  runServeRepl,
	}
	replCmd.Flags().StringVar(&fromBadger, "from-badger", "", "BadgerDB data directory to load staged documents from")
	rootCmd.AddCommand(replCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.EngineConfig, error) {
	var cfg config.EngineConfig
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromYAML(configPath)
	} else {
		cfg = config.LoadFromEnv()
	}
	if err != nil {
		return cfg, err
	}
	if stopWords != "" {
		cfg.StopWords = strings.Fields(stopWords)
	}
	return cfg, cfg.Validate()
}

func buildEngine(cfg config.EngineConfig) (*engine.Server, error) {
	words, err := cfg.ResolveStopWords()
	if err != nil {
		return nil, err
	}
	return engine.NewWithOptions(words, engine.Options{
		ShardCount:        cfg.ShardCount,
		RequestWindowSize: cfg.RequestWindowSize,
	})
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	srv, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	n, err := ingestFromBadger(srv)
	if err != nil {
		return err
	}
	fmt.Printf("ingested %d documents (%d total in index)\n", n, srv.GetDocumentCount())
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	srv, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	if _, err := ingestFromBadger(srv); err != nil {
		return err
	}

	results, err := srv.FindTopDocuments(args[0])
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize <= 0 {
		pageSize = cfg.PageSize
	}
	pages, err := paginate.Paginate(results, pageSize)
	if err != nil {
		return err
	}
	printPages(pages)
	return nil
}

// runServeRepl loads a corpus once, then evaluates one query per line of
// stdin until EOF, printing a single-page summary per line. It is the
// simplest possible interactive driver for the engine, grounded in the same
// "load, then loop" shape as ftsctl query with the ingest step factored out.
func runServeRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	srv, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	if _, err := ingestFromBadger(srv); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		results, err := srv.FindTopDocuments(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		for _, r := range results {
			fmt.Printf("  id=%d relevance=%s rating=%d\n", r.ID, strconv.FormatFloat(r.Relevance, 'f', 4, 64), r.Rating)
		}
	}
	return scanner.Err()
}

func ingestFromBadger(srv *engine.Server) (int, error) {
	if fromBadger == "" {
		return 0, nil
	}
	store, err := corpusloader.Open(corpusloader.Options{DataDir: fromBadger, InMemory: badgerMemory})
	if err != nil {
		return 0, err
	}
	defer store.Close()

	n := 0
	err = store.Each(func(d corpusloader.Document) error {
		if addErr := srv.AddDocument(d.ID, d.Body, engine.Status(d.Status), d.Ratings); addErr != nil {
			return fmt.Errorf("ingesting document %d: %w", d.ID, addErr)
		}
		n++
		return nil
	})
	return n, err
}

func printPages(pages [][]engine.Result) {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for i, page := range pages {
		fmt.Fprintf(w, "-- page %d --\n", i+1)
		for _, r := range page {
			fmt.Fprintf(w, "  id=%d relevance=%s rating=%d\n", r.ID, strconv.FormatFloat(r.Relevance, 'f', 4, 64), r.Rating)
		}
	}
}
