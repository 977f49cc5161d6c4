package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/quotepicker/stocks/internal/config"
	"github.com/quotepicker/stocks/internal/display"
	"github.com/quotepicker/stocks/internal/iex"
	"github.com/quotepicker/stocks/internal/logger"
	"github.com/quotepicker/stocks/internal/quote"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	symbol := flag.String("symbol", "", "print the quote for this symbol")
	list := flag.Bool("list", false, "list the companies in focus")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, os.Stderr)

	client := iex.NewClient(
		iex.WithTimeout(cfg.IEXTimeout()),
		iex.WithLogoRequired(cfg.IEX.LogoRequired),
		iex.WithLogger(log),
	)
	ctx := context.Background()

	if *list || *symbol == "" {
		dir, err := client.FetchDirectory(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load companies error: %v\n", err)
			os.Exit(1)
		}
		if dir.Len() == 0 {
			fmt.Println("No companies in focus.")
			return
		}
		fmt.Printf("Found %d company(ies):\n\n", dir.Len())
		for _, c := range dir.Companies() {
			fmt.Printf("  %-6s %s\n", c.Symbol, c.Name)
		}
		if *symbol == "" {
			return
		}
		fmt.Println()
	}

	res, err := client.FetchQuote(ctx, *symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch quote error: %v\n", err)
		os.Exit(1)
	}
	q, err := quote.ParseQuote(res.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse quote error: %v\n", err)
		os.Exit(1)
	}

	state := display.Format(q)
	fmt.Println(state.Company)
	fmt.Printf("  price:  %s\n", state.Price)
	fmt.Printf("  change: %s (%s)\n", state.Change, state.Color)
	if len(res.Logo) > 0 {
		fmt.Printf("  logo:   %d bytes\n", len(res.Logo))
	}
}
