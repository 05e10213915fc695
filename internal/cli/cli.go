package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/golf-courses/internal/course"
	"github.com/pfrederiksen/golf-courses/internal/logger"
	"github.com/pfrederiksen/golf-courses/internal/source"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

const (
	defaultOutput   = "courses.json"
	defaultLimit    = 100
	defaultLogLevel = "warn"
)

// ErrUsage is matched by errors caused by invalid command-line options
var ErrUsage = errors.New("usage error")

type usageError struct {
	msg string
}

func (e *usageError) Error() string        { return e.msg }
func (e *usageError) Is(target error) bool { return target == ErrUsage }

func usageErrorf(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

var (
	flagSource   string
	flagInput    string
	flagOutput   string
	flagLimit    int
	flagFormat   string
	flagQuery    string
	flagLogLevel string
	flagVerbose  bool
)

// now is replaced in tests
var now = time.Now

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "golf-courses",
		Short: "Export golf courses to JSON",
		Long: `Export a list of golf courses, each with an 18-hole layout, to a JSON file.

Courses come from a built-in list of well-known courses (--source mock) or
from a CSV file with name, location, lat and lon columns and optional par
and handicap columns (--source csv --input courses.csv).`,
		Example: `  golf-courses --source mock --output courses.json
  golf-courses --source csv --input courses.csv --output courses.json
  golf-courses --source csv --input courses.csv --format sqlite --output courses.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExport,
	}

	cmd.Flags().StringVar(&flagSource, "source", string(source.NameMock), "Course source: mock (alias golflink) or csv")
	cmd.Flags().StringVar(&flagInput, "input", "", "Input CSV file (required for --source csv)")
	cmd.Flags().StringVar(&flagOutput, "output", envOr("GOLF_COURSES_OUTPUT", defaultOutput), "Output file (or env: GOLF_COURSES_OUTPUT)")
	cmd.Flags().IntVar(&flagLimit, "limit", defaultLimit, "Max courses to fetch (ignored by the mock source)")
	cmd.Flags().StringVar(&flagFormat, "format", string(FormatJSON), "Output format: json or sqlite")
	cmd.Flags().StringVar(&flagQuery, "query", "", "Only export courses whose name or location contains this text")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", envOr("GOLF_COURSES_LOG_LEVEL", defaultLogLevel), "Log level: debug, info, warn or error (or env: GOLF_COURSES_LOG_LEVEL)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and list exported courses")

	return cmd
}

// runExport is the main command logic
func runExport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Validate every option before touching the filesystem
	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return usageErrorf("%v", err)
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	metrics := logger.NewMetrics()

	sourceName, err := source.ParseName(flagSource)
	if err != nil {
		return usageErrorf("%v", err)
	}

	format := OutputFormat(strings.ToLower(strings.TrimSpace(flagFormat)))
	if format != FormatJSON && format != FormatSQLite {
		return usageErrorf("invalid format: %s (must be 'json' or 'sqlite')", flagFormat)
	}

	if sourceName == source.NameCSV && flagInput == "" {
		return usageErrorf("--input required for CSV source")
	}

	if strings.TrimSpace(flagOutput) == "" {
		return usageErrorf("--output must not be empty")
	}

	loader := newLoader(sourceName, out, log)

	log.Debug("Loading courses", logger.Fields{
		"source": string(sourceName),
		"input":  flagInput,
		"limit":  flagLimit,
	})

	start := time.Now()
	courses, err := loader.Load()
	metrics.RecordTiming("source.load", time.Since(start))
	if err != nil {
		log.Error("Loading courses failed", logger.Fields{"source": string(sourceName)}, err)
		return fmt.Errorf("loading courses: %w", err)
	}
	metrics.AddCounter("courses.loaded", int64(len(courses)))

	if flagQuery != "" {
		courses = course.Search(courses, flagQuery)
		log.Debug("Filtered courses", logger.Fields{
			"query":   flagQuery,
			"matched": len(courses),
		})
	}

	if len(courses) == 0 {
		fmt.Fprintln(out, "No courses found.")
		log.Info("Run finished", metrics.Snapshot().Fields())
		return nil
	}

	start = time.Now()
	err = WriteCourses(flagOutput, format, courses, now())
	metrics.RecordTiming("export.write", time.Since(start))
	if err != nil {
		log.Error("Export failed", logger.Fields{"output": flagOutput, "format": string(format)}, err)
		return fmt.Errorf("exporting courses: %w", err)
	}
	metrics.AddCounter("courses.exported", int64(len(courses)))

	if flagVerbose {
		writeSummary(out, courses)
	}
	fmt.Fprintf(out, "✓ Exported %d courses to %s\n", len(courses), flagOutput)

	log.Info("Run finished", metrics.Snapshot().Fields())

	return nil
}

// newLoader builds the loader for a validated source name
func newLoader(name source.Name, out io.Writer, log *logger.Logger) source.Loader {
	if name == source.NameCSV {
		return source.NewCSVLoader(flagInput, out)
	}

	if flagLimit != defaultLimit {
		log.Debug("Limit is ignored by the mock source", logger.Fields{"limit": flagLimit})
	}
	return source.NewFixtureLoader(flagLimit, out)
}

// envOr returns the environment variable key, or fallback if it is unset or empty
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, ErrUsage) {
			os.Exit(ExitUsage)
		}
		os.Exit(ExitError)
	}
}
