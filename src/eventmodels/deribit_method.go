package eventmodels

import "strings"

type DeribitMethod string

const (
	DeribitAuthMethod           DeribitMethod = "public/auth"
	DeribitBuyMethod            DeribitMethod = "private/buy"
	DeribitCancelMethod         DeribitMethod = "private/cancel"
	DeribitGetOrderBookMethod   DeribitMethod = "public/get_order_book"
	DeribitGetPositionMethod    DeribitMethod = "private/get_position"
	DeribitGetInstrumentsMethod DeribitMethod = "public/get_instruments"
	DeribitEditMethod           DeribitMethod = "private/edit"
)

// Request ids are fixed per call site. Calls are strictly sequential, so the id is never
// used to correlate responses.
const (
	DeribitAuthRequestID           = 0
	DeribitBuyRequestID            = 1
	DeribitCancelRequestID         = 2
	DeribitGetOrderBookRequestID   = 3
	DeribitGetInstrumentsRequestID = 6
	DeribitEditRequestID           = 7
	DeribitGetPositionRequestID    = 20
)

func (m DeribitMethod) IsPrivate() bool {
	return strings.HasPrefix(string(m), "private/")
}

func (m DeribitMethod) String() string {
	return string(m)
}
