package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ddltools/ddlmin"
	"github.com/ddltools/ddlmin/internal/nl2sql"
)

var (
	outputFile    string
	format        string
	includeTables string
	excludeTables string
	showStats     bool
	showEstimate  bool
	listFormats   bool
	verbose       bool

	nlConfigPath string
	nlFormat     string

	log = newLogger()
)

var rootCmd = &cobra.Command{
	Use:   "ddlmin [ddl-file]",
	Short: "Compress SQL DDL into LLM-friendly schema formats",
	Long: `ddlmin parses CREATE TABLE statements from a DDL file and renders the
schema in one of six compact, token-efficient formats optimized for LLM
prompts. Reads stdin when no file is given or the file is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

var nl2sqlCmd = &cobra.Command{
	Use:   "nl2sql <ddl-file> <question>",
	Short: "Translate a natural-language question into SQL",
	Long: `nl2sql renders the schema from the DDL file, sends it with the question
to the Anthropic messages API, and prints the generated SQL. Requires
ANTHROPIC_API_KEY in the environment or an api_key in the config file.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runNL2SQL,
}

func init() {
	rootCmd.Flags().StringVarP(&format, "format", "f", "dense", "Output format: dense, structured, tabular, tiered, erd, or minimal")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&includeTables, "tables", "t", "", "Keep only these tables (comma-separated)")
	rootCmd.Flags().StringVarP(&excludeTables, "exclude", "e", "", "Drop these tables (comma-separated)")
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "Print schema statistics to stderr")
	rootCmd.Flags().BoolVar(&showEstimate, "estimate", false, "Print the estimated token reduction to stderr")
	rootCmd.Flags().BoolVar(&listFormats, "list-formats", false, "List the supported output formats and exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	nl2sqlCmd.Flags().StringVarP(&nlConfigPath, "config", "c", "", "Path to nl2sql YAML config file")
	nl2sqlCmd.Flags().StringVarP(&nlFormat, "format", "f", "", "Schema format sent to the model (default from config)")
	rootCmd.AddCommand(nl2sqlCmd)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if listFormats {
		for _, f := range ddlmin.Formats() {
			fmt.Printf("%-12s%s\n", f, ddlmin.DescribeFormat(f))
		}
		return nil
	}

	kind, err := ddlmin.ParseFormat(format)
	if err != nil {
		return err
	}
	if includeTables != "" && excludeTables != "" {
		return fmt.Errorf("cannot use both --tables and --exclude")
	}

	raw, err := readInput(args)
	if err != nil {
		return err
	}

	s, issues := ddlmin.Parse(raw)
	for _, iss := range issues {
		log.Warn(iss.Error())
	}
	log.WithField("tables", len(s.Tables)).Debug("parsed schema")

	if includeTables != "" {
		s = ddlmin.Restrict(s, parseTableList(includeTables))
	}
	if excludeTables != "" {
		s = ddlmin.Remove(s, parseTableList(excludeTables))
	}

	rendered, err := ddlmin.Render(s, kind)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	var writer io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}
	if _, err := io.WriteString(writer, rendered); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if showStats {
		st := ddlmin.Stats(s)
		fmt.Fprintf(os.Stderr, "tables: %d, columns: %d, indexes: %d, foreign keys: %d, avg columns/table: %.2f\n",
			st.TableCount, st.ColumnCount, st.IndexCount, st.ForeignKeyCount, st.AvgColumnsPerTable)
	}
	if showEstimate {
		r := ddlmin.EstimateReduction(raw, rendered)
		fmt.Fprintf(os.Stderr, "estimated tokens: %d -> %d (%.2f%% reduction)\n",
			r.OriginalTokens, r.OptimizedTokens, r.PercentReduction)
	}

	return nil
}

func runNL2SQL(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	config, err := nl2sql.LoadConfig(nlConfigPath)
	if err != nil {
		return err
	}
	if nlFormat != "" {
		config.SchemaFormat = nlFormat
	}
	kind, err := ddlmin.ParseFormat(config.SchemaFormat)
	if err != nil {
		return err
	}

	s, issues, err := ddlmin.ParseFile(args[0])
	if err != nil {
		return err
	}
	for _, iss := range issues {
		log.Warn(iss.Error())
	}

	rendered, err := ddlmin.Render(s, kind)
	if err != nil {
		return fmt.Errorf("failed to format schema: %w", err)
	}

	question := strings.Join(args[1:], " ")
	engine := nl2sql.NewEngine(nl2sql.NewClient(config), rendered, log)

	result, err := engine.Translate(cmd.Context(), question)
	if err != nil {
		return err
	}
	fmt.Println(result.SQL)
	return nil
}

// readInput returns the DDL text from the file argument, or stdin when no
// argument (or "-") is given.
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read DDL file: %w", err)
	}
	return string(data), nil
}

// parseTableList splits a comma-separated table list, trimming whitespace and
// dropping empty entries.
func parseTableList(tablesStr string) []string {
	if tablesStr == "" {
		return nil
	}
	var list []string
	for _, t := range strings.Split(tablesStr, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			list = append(list, t)
		}
	}
	return list
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
