package models

import (
	"fmt"
	"io"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

func WritePosition(w io.Writer, instrument string, position *eventmodels.DeribitPositionDTO) {
	fmt.Fprintf(w, "Position Details for %s:\n", instrument)
	for _, field := range position.Fields() {
		fmt.Fprintf(w, "%s: %s\n", field.Name, field.Value)
	}
}
