// Command rfpctl runs the RFP pipeline in-process and inspects run history.
//
//	rfpctl run [-json] <url-or-text>
//	rfpctl stats
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"rfpflow/internal/app"
	"rfpflow/internal/config"
	"rfpflow/internal/domain"
)

const usage = "Usage: rfpctl [run [-json] <url-or-text>|stats]"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func run(cmd string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	switch cmd {
	case "run":
		fs := flag.NewFlagSet("run", flag.ExitOnError)
		asJSON := fs.Bool("json", false, "print the full run result as JSON")
		_ = fs.Parse(args)

		result, err := a.Pipeline.Run(ctx, strings.Join(fs.Args(), " "))
		if err != nil {
			return fmt.Errorf("pipeline failed: %w", err)
		}
		if *asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printSummary(os.Stdout, result)

	case "stats":
		stats, err := a.Stats.GetDashboardStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}
		printStats(os.Stdout, stats)

	default:
		fmt.Printf("unknown command: %s\n", cmd)
		fmt.Println(usage)
		os.Exit(1)
	}
	return nil
}

func printSummary(w io.Writer, result *domain.RunResult) {
	wf := result.Workflow
	md := wf.Sales.RfpMetadata

	fmt.Fprintf(w, "Run %s: %s\n\n", result.ID, result.Status)
	fmt.Fprintln(w, "[1] Sales")
	fmt.Fprintf(w, "    title:     %s\n", md.Title)
	fmt.Fprintf(w, "    contract:  %s\n", md.ContractID)
	fmt.Fprintf(w, "    authority: %s\n", md.Authority)
	fmt.Fprintf(w, "    bid dates: %s .. %s\n", md.BidDates.Start, md.BidDates.End)
	if wf.Sales.Error != "" {
		fmt.Fprintf(w, "    degraded:  %s\n", wf.Sales.Error)
	}
	for _, item := range wf.Sales.Items {
		fmt.Fprintf(w, "    - %s x %d\n", item.Name, item.Quantity)
	}

	fmt.Fprintf(w, "\n[2] Technical: %d%% overall match\n", wf.Technical.OverallMatchPercent)
	for _, m := range wf.Technical.MatchedSKUs {
		fmt.Fprintf(w, "    - %s -> %s (%d%%)\n", m.Item, m.MatchedSKU, m.MatchPercent)
	}

	fmt.Fprintf(w, "\n[3] Pricing: %s %s\n", wf.Pricing.TotalCost, wf.Pricing.Currency)
	for _, line := range wf.Pricing.Breakdown {
		fmt.Fprintf(w, "    - %s: %d x %s = %s\n", line.SKU, line.Quantity, line.FinalUnitPrice, line.LineTotal)
	}

	fmt.Fprintln(w, "\n[4] Proposal")
	fmt.Fprintln(w, result.FinalDocument)
}

func printStats(w io.Writer, stats *domain.DashboardStats) {
	fmt.Fprintf(w, "approved: %d\ndeclined: %d\npending:  %d\n", stats.Approved, stats.Declined, stats.Pending)
	if len(stats.RecentActivity) == 0 {
		return
	}
	fmt.Fprintln(w, "\nrecent:")
	for _, r := range stats.RecentActivity {
		fmt.Fprintf(w, "  %s  %-8s  %s  %s\n", r.Date.Format("2006-01-02 15:04"), r.Status, r.ID, r.Title)
	}
}
