package weather

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/i474232898/sabia-weather/internal/common"
)

// Normalize converts a raw payload into a CanonicalReading. It fails with a
// *MalformedPayloadError when a required field is absent or null and with
// ErrEmptyDataset when the backend list is empty. No partial reading is ever
// returned alongside an error.
func Normalize(p RawPayload) (CanonicalReading, Diagnostics, error) {
	switch v := p.(type) {
	case DirectAPIPayload:
		return normalizeDirect(v)
	case *DirectAPIPayload:
		return normalizeDirect(*v)
	case BackendPayload:
		return normalizeBackend(v)
	case *BackendPayload:
		return normalizeBackend(*v)
	default:
		return CanonicalReading{}, Diagnostics{}, fmt.Errorf("unsupported payload type %T", p)
	}
}

// NormalizeForecast extracts the flat forecast entries from a raw payload.
// For the prediction backend every element is returned, including element 0;
// selecting the forecast days is the aggregator's job.
func NormalizeForecast(p RawPayload) ([]ForecastEntry, error) {
	switch v := p.(type) {
	case DirectAPIPayload:
		return directForecast(v.Forecast)
	case *DirectAPIPayload:
		return directForecast(v.Forecast)
	case BackendPayload:
		return backendForecast(v.Body)
	case *BackendPayload:
		return backendForecast(v.Body)
	default:
		return nil, fmt.Errorf("unsupported payload type %T", p)
	}
}

// owmCurrent mirrors the /weather response. Pointers distinguish absent
// fields from zero values.
type owmCurrent struct {
	Dt   int64  `json:"dt"`
	Name string `json:"name"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Visibility *int `json:"visibility"`
}

type owmForecast struct {
	List *[]struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64  `json:"temp"`
			TempMax  *float64 `json:"temp_max"`
			TempMin  *float64 `json:"temp_min"`
			Humidity float64  `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

// backendDay mirrors one element of the prediction backend array.
type backendDay struct {
	Date           *string  `json:"date"`
	CityName       *string  `json:"city_name"`
	Classification *string  `json:"classification"`
	Message        *string  `json:"message"`
	Temp           *float64 `json:"T2M_prediction"`
	TempMax        *float64 `json:"T2M_MAX_prediction"`
	TempMin        *float64 `json:"T2M_MIN_prediction"`
	Wind           *float64 `json:"WS2M_prediction"`
	Humidity       *float64 `json:"RH2M_prediction"`
}

func normalizeDirect(p DirectAPIPayload) (CanonicalReading, Diagnostics, error) {
	diag := Diagnostics{Kind: KindDirectAPI}

	var raw owmCurrent
	if err := json.Unmarshal(p.Current, &raw); err != nil {
		return CanonicalReading{}, diag, &MalformedPayloadError{Kind: KindDirectAPI, Field: "body", Err: err}
	}

	switch {
	case raw.Main == nil || raw.Main.Temp == nil:
		return CanonicalReading{}, diag, &MalformedPayloadError{Kind: KindDirectAPI, Field: "main.temp"}
	case raw.Wind == nil || raw.Wind.Speed == nil:
		return CanonicalReading{}, diag, &MalformedPayloadError{Kind: KindDirectAPI, Field: "wind.speed"}
	case len(raw.Weather) == 0 || raw.Weather[0].Main == "":
		return CanonicalReading{}, diag, &MalformedPayloadError{Kind: KindDirectAPI, Field: "weather[0].main"}
	}

	r := CanonicalReading{
		Temperature:    *raw.Main.Temp,
		WindSpeed:      math.Max(0, *raw.Wind.Speed*msToKmh),
		ConditionLabel: raw.Weather[0].Main,
		CityName:       raw.Name,
	}

	if raw.Main.FeelsLike != nil {
		r.FeelsLike = *raw.Main.FeelsLike
	} else {
		r.FeelsLike = r.Temperature
		diag.defaulted("main.feels_like")
	}

	if raw.Main.Humidity != nil {
		r.Humidity = common.Clamp(*raw.Main.Humidity, 0, 100)
	} else {
		diag.defaulted("main.humidity")
	}

	if raw.Visibility != nil && *raw.Visibility >= 0 {
		r.Visibility = *raw.Visibility
	} else {
		r.Visibility = DefaultVisibility
		diag.defaulted("visibility")
	}

	if raw.Dt > 0 {
		r.ObservedAt = time.Unix(raw.Dt, 0).UTC()
	} else {
		r.ObservedAt = clock.Now().UTC()
		diag.defaulted("dt")
	}

	return r, diag, nil
}

func normalizeBackend(p BackendPayload) (CanonicalReading, Diagnostics, error) {
	diag := Diagnostics{Kind: KindPredictionBackend}

	days, err := decodeBackend(p.Body)
	if err != nil {
		return CanonicalReading{}, diag, err
	}

	cur := days[0]
	switch {
	case cur.Temp == nil:
		return CanonicalReading{}, diag, &MalformedPayloadError{Kind: KindPredictionBackend, Field: "T2M_prediction"}
	case cur.Wind == nil:
		return CanonicalReading{}, diag, &MalformedPayloadError{Kind: KindPredictionBackend, Field: "WS2M_prediction"}
	case cur.Humidity == nil:
		return CanonicalReading{}, diag, &MalformedPayloadError{Kind: KindPredictionBackend, Field: "RH2M_prediction"}
	case cur.Classification == nil:
		return CanonicalReading{}, diag, &MalformedPayloadError{Kind: KindPredictionBackend, Field: "classification"}
	case cur.Message == nil:
		return CanonicalReading{}, diag, &MalformedPayloadError{Kind: KindPredictionBackend, Field: "message"}
	}

	r := CanonicalReading{
		Temperature:    *cur.Temp,
		FeelsLike:      *cur.Temp,
		Humidity:       common.Clamp(*cur.Humidity, 0, 100),
		WindSpeed:      math.Max(0, *cur.Wind*msToKmh),
		Visibility:     DefaultVisibility,
		ConditionLabel: *cur.Classification,
		SourceMessage:  *cur.Message,
		ObservedAt:     clock.Now().UTC(),
	}
	// The backend predicts neither of these.
	diag.defaulted("feels_like")
	diag.defaulted("visibility")

	if cur.CityName != nil {
		r.CityName = *cur.CityName
	}

	return r, diag, nil
}

func decodeBackend(body []byte) ([]backendDay, error) {
	var days []backendDay
	if err := json.Unmarshal(body, &days); err != nil {
		return nil, &MalformedPayloadError{Kind: KindPredictionBackend, Field: "body", Err: err}
	}
	if len(days) == 0 {
		return nil, ErrEmptyDataset
	}
	return days, nil
}

func directForecast(body []byte) ([]ForecastEntry, error) {
	var raw owmForecast
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &MalformedPayloadError{Kind: KindDirectAPI, Field: "forecast body", Err: err}
	}
	if raw.List == nil {
		return nil, &MalformedPayloadError{Kind: KindDirectAPI, Field: "list"}
	}
	if len(*raw.List) == 0 {
		return nil, ErrEmptyDataset
	}

	entries := make([]ForecastEntry, 0, len(*raw.List))
	for _, item := range *raw.List {
		e := ForecastEntry{
			Timestamp: time.Unix(item.Dt, 0).UTC(),
			TempMax:   item.Main.Temp,
			TempMin:   item.Main.Temp,
			Humidity:  common.Clamp(item.Main.Humidity, 0, 100),
		}
		if item.Main.TempMax != nil {
			e.TempMax = *item.Main.TempMax
		}
		if item.Main.TempMin != nil {
			e.TempMin = *item.Main.TempMin
		}
		if len(item.Weather) > 0 {
			e.ConditionLabel = item.Weather[0].Main
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func backendForecast(body []byte) ([]ForecastEntry, error) {
	days, err := decodeBackend(body)
	if err != nil {
		return nil, err
	}

	entries := make([]ForecastEntry, 0, len(days))
	for _, d := range days {
		var e ForecastEntry
		if d.Date != nil {
			e.RawDate = *d.Date
		}
		if d.Classification != nil {
			e.ConditionLabel = *d.Classification
		}
		if d.Humidity != nil {
			e.Humidity = common.Clamp(*d.Humidity, 0, 100)
		}
		var base float64
		if d.Temp != nil {
			base = *d.Temp
		}
		e.TempMax, e.TempMin = base, base
		if d.TempMax != nil {
			e.TempMax = *d.TempMax
		}
		if d.TempMin != nil {
			e.TempMin = *d.TempMin
		}
		entries = append(entries, e)
	}
	return entries, nil
}
