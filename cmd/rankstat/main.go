// rankstat is the terminal companion to the dashboard: it loads a rankings
// CSV, applies the same filters the web UI offers, and prints the summary and
// top-countries table. It exercises the exact service layer the server uses.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"rankboard/internal/rankings"
	"rankboard/internal/rankings/loader"
	"rankboard/internal/rankings/service"
	"rankboard/internal/rankings/store"
)

var (
	flagData      string
	flagCountries []string
	flagMinRank   int
	flagMaxRank   int
	flagLimit     int
	flagTop       int
)

var rootCmd = &cobra.Command{
	Use:   "rankstat",
	Short: "Summarize a university rankings CSV from the terminal",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flagData, "data", "top universities.csv", "path to the rankings CSV")
	rootCmd.Flags().StringSliceVar(&flagCountries, "countries", nil, "restrict to these countries (default all)")
	rootCmd.Flags().IntVar(&flagMinRank, "min-rank", 0, "inclusive lower rank bound (0 = unbounded)")
	rootCmd.Flags().IntVar(&flagMaxRank, "max-rank", 0, "inclusive upper rank bound (0 = unbounded)")
	rootCmd.Flags().IntVar(&flagLimit, "limit", 15, "rows to print in the record table (0 = all)")
	rootCmd.Flags().IntVar(&flagTop, "top", 10, "entries in the top-countries table")
}

func run(cmd *cobra.Command, _ []string) error {
	records, err := loader.Load(flagData)
	if err != nil {
		return err
	}
	svc := service.New(store.New(records))

	filter := rankings.Filter{
		Countries: flagCountries,
		MinRank:   flagMinRank,
		MaxRank:   flagMaxRank,
		Limit:     flagLimit,
	}
	ctx := context.Background()

	summary := svc.Summary(ctx, filter)
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintln(cmd.OutOrStdout(), "University Rankings Summary")
	fmt.Fprintf(cmd.OutOrStdout(), "  Universities: %d\n", summary.Total)
	fmt.Fprintf(cmd.OutOrStdout(), "  Countries:    %d\n", summary.Countries)
	fmt.Fprintf(cmd.OutOrStdout(), "  Cities:       %d\n", summary.Cities)
	if summary.Total > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  Average rank: %.0f\n", summary.MeanRank)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "  Average rank: N/A")
		fmt.Fprintln(cmd.OutOrStdout(), "\nNo universities match the current filters.")
		return nil
	}

	title.Fprintf(cmd.OutOrStdout(), "\nTop %d Countries\n", flagTop)
	countryTable := tablewriter.NewWriter(cmd.OutOrStdout())
	countryTable.SetHeader([]string{"Country", "Universities"})
	for _, gc := range svc.TopCountries(ctx, filter, flagTop) {
		countryTable.Append([]string{gc.Label, fmt.Sprintf("%d", gc.Count)})
	}
	countryTable.Render()

	matched := svc.Filter(ctx, filter)
	title.Fprintf(cmd.OutOrStdout(), "\nRecords (%d shown)\n", len(matched))
	recordTable := tablewriter.NewWriter(cmd.OutOrStdout())
	recordTable.SetHeader([]string{"Rank", "University", "Country", "City"})
	for _, rec := range matched {
		recordTable.Append([]string{fmt.Sprintf("%d", rec.GlobalRank), rec.Name, rec.Country, rec.City})
	}
	recordTable.Render()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
