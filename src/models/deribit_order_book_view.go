package models

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

type OrderBookSummary struct {
	BestBid   float64
	BestAsk   float64
	Spread    float64
	BidVolume float64
	AskVolume float64
}

func SummarizeOrderBook(bids, asks []eventmodels.DeribitPriceLevel) (*OrderBookSummary, error) {
	if len(bids) == 0 || len(asks) == 0 {
		return nil, fmt.Errorf("SummarizeOrderBook: both sides of the book must be non-empty")
	}

	bidPrices, bidAmounts := splitLevels(bids)
	askPrices, askAmounts := splitLevels(asks)

	bestBid, err := stats.Max(bidPrices)
	if err != nil {
		return nil, fmt.Errorf("SummarizeOrderBook: best bid: %w", err)
	}

	bestAsk, err := stats.Min(askPrices)
	if err != nil {
		return nil, fmt.Errorf("SummarizeOrderBook: best ask: %w", err)
	}

	bidVolume, err := stats.Sum(bidAmounts)
	if err != nil {
		return nil, fmt.Errorf("SummarizeOrderBook: bid volume: %w", err)
	}

	askVolume, err := stats.Sum(askAmounts)
	if err != nil {
		return nil, fmt.Errorf("SummarizeOrderBook: ask volume: %w", err)
	}

	return &OrderBookSummary{
		BestBid:   bestBid,
		BestAsk:   bestAsk,
		Spread:    bestAsk - bestBid,
		BidVolume: bidVolume,
		AskVolume: askVolume,
	}, nil
}

func splitLevels(levels []eventmodels.DeribitPriceLevel) ([]float64, []float64) {
	prices := make([]float64, 0, len(levels))
	amounts := make([]float64, 0, len(levels))
	for _, lvl := range levels {
		prices = append(prices, lvl.Price)
		amounts = append(amounts, lvl.Amount)
	}

	return prices, amounts
}

// WriteOrderBook prints both sides of the book. A side missing from the reply is
// reported as unavailable rather than as an error.
func WriteOrderBook(w io.Writer, instrument string, book *eventmodels.DeribitOrderBookDTO) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "\n=== Order Book for %s ===\n", instrument)

	if book.Bids != nil {
		fmt.Fprintln(w, "Bids:")
		writePriceLevels(w, p, *book.Bids)
	} else {
		fmt.Fprintln(w, "No bids available.")
	}

	if book.Asks != nil {
		fmt.Fprintln(w, "\nAsks:")
		writePriceLevels(w, p, *book.Asks)
	} else {
		fmt.Fprintln(w, "No asks available.")
	}

	if book.Bids == nil || book.Asks == nil {
		return
	}

	summary, err := SummarizeOrderBook(*book.Bids, *book.Asks)
	if err != nil {
		return
	}

	fmt.Fprintf(w, "\nBest bid: %s, Best ask: %s, Spread: %s, Bid depth: %s, Ask depth: %s\n",
		p.Sprintf("%.2f", summary.BestBid),
		p.Sprintf("%.2f", summary.BestAsk),
		p.Sprintf("%.2f", summary.Spread),
		p.Sprintf("%.4f", summary.BidVolume),
		p.Sprintf("%.4f", summary.AskVolume),
	)
}

func writePriceLevels(w io.Writer, p *message.Printer, levels []eventmodels.DeribitPriceLevel) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Price", "Amount"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, lvl := range levels {
		table.Append([]string{p.Sprintf("%.2f", lvl.Price), p.Sprintf("%.4f", lvl.Amount)})
	}

	table.Render()
}
