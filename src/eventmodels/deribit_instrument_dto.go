package eventmodels

type DeribitInstrumentDTO struct {
	InstrumentName      string `json:"instrument_name" csv:"instrument_name"`
	Kind                string `json:"kind" csv:"kind"`
	ExpirationTimestamp int64  `json:"expiration_timestamp" csv:"expiration_timestamp"`
}
