package models

import (
	"fmt"
	"io"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

func WriteInstruments(w io.Writer, instruments []eventmodels.DeribitInstrumentDTO) {
	for _, instrument := range instruments {
		fmt.Fprintf(w, "Instrument: %s, Type: %s, Expiry: %d\n", instrument.InstrumentName, instrument.Kind, instrument.ExpirationTimestamp)
	}
}
