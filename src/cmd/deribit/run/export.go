package run

import (
	"context"
	"fmt"
	"time"

	"github.com/jiaming2012/deribit-trading/src/utils"
)

type ExportArgs struct {
	Currency string
	Kind     string
	OutDir   string
}

func ExportInstruments(ctx context.Context, session *Session, args ExportArgs) (string, error) {
	currency := args.Currency
	if currency == "" {
		currency = session.Config.Instruments.Currency
	}

	kind := args.Kind
	if kind == "" {
		kind = session.Config.Instruments.Kind
	}

	instruments, err := session.Client.FetchInstruments(ctx, currency, kind)
	if err != nil {
		return "", fmt.Errorf("ExportInstruments: %w", err)
	}

	prefix := fmt.Sprintf("instruments_%s_%s", currency, kind)
	outFile, err := utils.ExportInstrumentsToCsv(args.OutDir, instruments, prefix, time.Now())
	if err != nil {
		return "", fmt.Errorf("ExportInstruments: %w", err)
	}

	return outFile, nil
}
