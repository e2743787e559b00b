package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

func ExportInstrumentsToCsv(outDir string, instruments []eventmodels.DeribitInstrumentDTO, outFilePrefix string, now time.Time) (string, error) {
	outFilePath := path.Join(outDir, fmt.Sprintf("%s_%s.csv", outFilePrefix, now.Format("2006-01-02_15-04-05")))

	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return "", fmt.Errorf("ExportInstrumentsToCsv: failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outFilePath)
	if err != nil {
		return "", fmt.Errorf("ExportInstrumentsToCsv: failed to create file: %w", err)
	}
	defer file.Close()

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		writer := csv.NewWriter(out)
		writer.Comma = ','
		return gocsv.NewSafeCSVWriter(writer)
	})

	if err := gocsv.MarshalFile(&instruments, file); err != nil {
		return "", fmt.Errorf("ExportInstrumentsToCsv: failed to write to file: %w", err)
	}

	log.Infof("Exported %d instruments to %s", len(instruments), outFilePath)

	return outFilePath, nil
}
