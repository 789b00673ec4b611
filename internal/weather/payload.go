package weather

// PayloadKind tags which backend shape a RawPayload carries.
type PayloadKind string

const (
	KindDirectAPI         PayloadKind = "direct-api"
	KindPredictionBackend PayloadKind = "prediction-backend"
)

// ParsePayloadKind maps a configuration value onto a PayloadKind.
func ParsePayloadKind(s string) (PayloadKind, bool) {
	switch PayloadKind(s) {
	case KindDirectAPI, KindPredictionBackend:
		return PayloadKind(s), true
	default:
		return "", false
	}
}

// RawPayload is the tagged variant handed from a Source to the normalizer.
// Implementations are DirectAPIPayload and BackendPayload.
type RawPayload interface {
	Kind() PayloadKind
}

// DirectAPIPayload holds the two bodies returned by the public weather API:
// the /weather response and the /forecast response.
type DirectAPIPayload struct {
	Current  []byte
	Forecast []byte
}

func (DirectAPIPayload) Kind() PayloadKind { return KindDirectAPI }

// BackendPayload holds the JSON array returned by the prediction backend.
// Element 0 is the current day, the rest are forecast days.
type BackendPayload struct {
	Body []byte
}

func (BackendPayload) Kind() PayloadKind { return KindPredictionBackend }

// Diagnostics lists the optional fields the normalizer had to default.
type Diagnostics struct {
	Kind      PayloadKind
	Defaulted []string
}

func (d *Diagnostics) defaulted(field string) {
	d.Defaulted = append(d.Defaulted, field)
}
