package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/analyzer"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/config"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/linkcheck"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/logging"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/reporter"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

var (
	scanConfigFile string
	scanRoot       string
	scanOutput     string
	scanFormat     string
	scanDiff       string
	scanVerbose    bool

	reportResults string
	reportOutput  string
	reportFormat  string
	reportPR      int

	linkConfigFile string
	linkRoot       string
	linkFormat     string
	linkOutput     string
	linkVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "guardian",
	Short: "Auto-Guardian - automated code quality gate",
	Long: `Auto-Guardian

Scans a project for code quality and security issues, runs external
linters, and blocks merges when critical issues are found.

Examples:
  guardian scan                           # scan the current directory
  guardian scan -p ./src --format=sarif   # SARIF output for code scanning
  guardian scan --diff changes.patch      # only files touched by a diff
  guardian report --scan-results scan-results.json
  guardian linkcheck`,
	Version: "1.0.0",
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the project and persist the result",
	Run:   runScan,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render reports from a persisted scan result",
	Run:   runReport,
}

var linkcheckCmd = &cobra.Command{
	Use:   "linkcheck",
	Short: "Check documentation links",
	Run:   runLinkcheck,
}

func init() {
	scanCmd.Flags().StringVarP(&scanConfigFile, "config", "c", "", "config file path (default: guardian.yaml in the project root)")
	scanCmd.Flags().StringVarP(&scanRoot, "project-root", "p", ".", "project directory to scan")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "result file path (default from config)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "json", "output format (json/sarif)")
	scanCmd.Flags().StringVar(&scanDiff, "diff", "", "unified diff file; scope issues to the files it names")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "verbose logging")

	reportCmd.Flags().StringVar(&reportResults, "scan-results", "", "scan results file")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "report.md", "output file")
	reportCmd.Flags().StringVar(&reportFormat, "format", "comment", "report format (comment/summary/html/alert)")
	reportCmd.Flags().IntVar(&reportPR, "pr-number", 0, "pull request number")
	_ = reportCmd.MarkFlagRequired("scan-results")

	linkcheckCmd.Flags().StringVarP(&linkConfigFile, "config", "c", "", "config file path (default: guardian.yaml in the project root)")
	linkcheckCmd.Flags().StringVarP(&linkRoot, "project-root", "p", ".", "project directory to check")
	linkcheckCmd.Flags().StringVar(&linkFormat, "format", "text", "output format (text/json)")
	linkcheckCmd.Flags().StringVarP(&linkOutput, "output", "o", "", "also write the report to this file")
	linkcheckCmd.Flags().BoolVarP(&linkVerbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(scanCmd, reportCmd, linkcheckCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) {
	if err := logging.InitLogger(scanVerbose); err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}

	if scanFormat != "json" && scanFormat != "sarif" {
		fmt.Fprintf(os.Stderr, "unsupported scan format: %s\n", scanFormat)
		os.Exit(1)
	}

	cfg, err := loadConfig(scanConfigFile, scanRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting code analysis...")

	result := analyzer.New(cfg).Analyze(cmd.Context(), scanRoot)

	if scanDiff != "" {
		f, err := os.Open(scanDiff)
		if err != nil {
			fmt.Fprintf(os.Stderr, "diff open failed: %v\n", err)
			os.Exit(1)
		}
		changed, err := analyzer.ChangedFiles(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "diff parse failed: %v\n", err)
			os.Exit(1)
		}
		result = analyzer.ScopeToFiles(result, scanRoot, changed)
	}

	fmt.Printf("   Files scanned: %d\n", result.FilesScanned)
	fmt.Printf("   Issues found: %d\n", result.IssuesFound)
	fmt.Printf("   Critical issues: %d\n", len(result.CriticalIssues))
	fmt.Printf("   Auto-fixable issues: %d\n", len(result.AutoFixableIssues))

	outputPath := scanOutput
	if outputPath == "" {
		outputPath = cfg.Output.ResultsFile
	}

	rep, err := reporter.New(scanFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reporter init failed: %v\n", err)
		os.Exit(1)
	}
	if err := rep.Generate(result, outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "result write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("   Results saved to %s\n", outputPath)

	if result.HasCriticalIssues() {
		if err := reporter.WriteCriticalIssues(result, cfg.Output.CriticalFile); err != nil {
			fmt.Fprintf(os.Stderr, "critical issues write failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("   Critical issues saved to %s\n", cfg.Output.CriticalFile)
	}

	// critical issues block the merge
	if result.HasCriticalIssues() {
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, args []string) {
	if err := logging.InitLogger(false); err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	if reportPR > 0 {
		logging.Logger.Infow("generating report", "pr", reportPR)
	}

	data, err := os.ReadFile(reportResults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan results read failed: %v\n", err)
		os.Exit(1)
	}
	var result types.ScanResult
	if err := json.Unmarshal(data, &result); err != nil {
		fmt.Fprintf(os.Stderr, "scan results parse failed: %v\n", err)
		os.Exit(1)
	}

	switch reportFormat {
	case "comment":
		content := reporter.PRComment(&result, time.Now())
		fmt.Println(content)
		saveReport(content, reportOutput)

	case "summary":
		summary, err := json.MarshalIndent(reporter.NewDailySummary(&result, time.Now()), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "summary marshal failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(summary))
		saveReport(string(summary), reportOutput)

	case "html":
		rep := &reporter.HTMLReporter{}
		if err := rep.Generate(&result, reportOutput); err != nil {
			fmt.Fprintf(os.Stderr, "report write failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport saved to %s\n", reportOutput)

	case "alert":
		content, ok := reporter.SecurityAlert(&result)
		if !ok {
			fmt.Println("No security issues found.")
			return
		}
		fmt.Println(content)
		saveReport(content, reportOutput)

	default:
		fmt.Fprintf(os.Stderr, "unsupported report format: %s\n", reportFormat)
		os.Exit(1)
	}
}

func saveReport(content, path string) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "report write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nReport saved to %s\n", path)
}

func runLinkcheck(cmd *cobra.Command, args []string) {
	if err := logging.InitLogger(linkVerbose); err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(linkConfigFile, linkRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting Link Checker...")

	report, err := linkcheck.New(cfg.Link).Run(cmd.Context(), linkRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "link check failed: %v\n", err)
		os.Exit(1)
	}

	var content string
	switch linkFormat {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "report marshal failed: %v\n", err)
			os.Exit(1)
		}
		content = string(data)
	default:
		content = report.Text()
	}

	fmt.Println(content)
	if linkOutput != "" {
		if err := os.WriteFile(linkOutput, []byte(content), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "report write failed: %v\n", err)
			os.Exit(1)
		}
	}
	// informational only, broken links never fail the run
}

func loadConfig(path, root string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(root)
}
