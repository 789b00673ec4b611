// Package i18n holds the dashboard's static strings for the three supported
// languages and the date formatting that goes with them.
package i18n

import (
	"fmt"
	"strings"
	"time"
)

// Language is a supported UI language code.
type Language string

const (
	Portuguese Language = "pt"
	English    Language = "en"
	Spanish    Language = "es"
)

// Default is used when no preference is stored or an unknown code is given.
const Default = English

// Supported lists the accepted language codes.
var Supported = []Language{Portuguese, English, Spanish}

// Parse returns the Language for code and whether it was recognized.
// Unrecognized codes yield Default.
func Parse(code string) (Language, bool) {
	switch l := Language(strings.ToLower(strings.TrimSpace(code))); l {
	case Portuguese, English, Spanish:
		return l, true
	default:
		return Default, false
	}
}

// Key names a translated string.
type Key string

const (
	KeyHotAlert        Key = "hotAlert"
	KeyColdAlert       Key = "coldAlert"
	KeyRainAlert       Key = "rainAlert"
	KeyStormAlert      Key = "stormAlert"
	KeyWindAlert       Key = "windAlert"
	KeyFogAlert        Key = "fogAlert"
	KeyTemperature     Key = "temperature"
	KeyFeelsLike       Key = "feelsLike"
	KeyHumidity        Key = "humidity"
	KeyWind            Key = "wind"
	KeyVisibility      Key = "visibility"
	KeyForecast6Days   Key = "forecast6Days"
	KeyChatTitle       Key = "chatTitle"
	KeyChatWelcome     Key = "chatWelcome"
	KeyLoadingWeather  Key = "loadingWeather"
	KeyLoadError       Key = "loadError"
	KeyHistoricalData  Key = "historicalData"
	KeyPrecipitation   Key = "precipitation"
	KeyClouds          Key = "clouds"
	KeyTemperatureMap  Key = "temperatureMap"
	KeyClearSky        Key = "clearSky"
	KeyCloudy          Key = "cloudy"
	KeyRain            Key = "rain"
	KeyDrizzle         Key = "drizzle"
	KeyThunderstorm    Key = "thunderstorm"
	KeySnow            Key = "snow"
	KeyMist            Key = "mist"
	KeyFog             Key = "fog"
	KeySand            Key = "sand"
	KeyDust            Key = "dust"
	KeyVolcanicAsh     Key = "volcanicAsh"
	KeySqualls         Key = "squalls"
	KeyTornado         Key = "tornado"
	KeyOvercastClouds  Key = "overcastClouds"
	KeyFewClouds       Key = "fewClouds"
	KeyScatteredClouds Key = "scatteredClouds"
)

var texts = map[Language]map[Key]string{
	Portuguese: {
		KeyHotAlert:        "Vai estar muito quente hoje, prepare-se para se hidratar e se proteger do sol!",
		KeyColdAlert:       "Está frio hoje! Vista-se bem e mantenha-se aquecido.",
		KeyRainAlert:       "Está nublado e pode chover! Leve um guarda-chuva e não se esqueça de fechar as janelas de casa antes de sair.",
		KeyStormAlert:      "Tempestade prevista! Evite sair de casa e mantenha-se em local seguro.",
		KeyWindAlert:       "Ventos fortes hoje! Cuidado com objetos soltos e evite áreas abertas.",
		KeyFogAlert:        "Névoa densa prevista! Dirija com cuidado e use faróis baixos.",
		KeyTemperature:     "Temperatura",
		KeyFeelsLike:       "Sensação",
		KeyHumidity:        "Umidade",
		KeyWind:            "Vento",
		KeyVisibility:      "Visibilidade",
		KeyForecast6Days:   "Previsão para os próximos 6 dias",
		KeyChatTitle:       "Conversar com SabiA",
		KeyChatWelcome:     "Olá! Sou o SabiA, seu assistente de clima. Como posso ajudar você hoje?",
		KeyLoadingWeather:  "Carregando dados do clima...",
		KeyLoadError:       "Erro ao carregar dados do clima",
		KeyHistoricalData:  "Dados históricos para %s",
		KeyPrecipitation:   "Precipitação",
		KeyClouds:          "Nuvens",
		KeyTemperatureMap:  "Temperatura",
		KeyClearSky:        "céu limpo",
		KeyCloudy:          "nublado",
		KeyRain:            "chuva",
		KeyDrizzle:         "garoa",
		KeyThunderstorm:    "tempestade",
		KeySnow:            "neve",
		KeyMist:            "neblina",
		KeyFog:             "névoa",
		KeySand:            "areia",
		KeyDust:            "poeira",
		KeyVolcanicAsh:     "cinza vulcânica",
		KeySqualls:         "rajadas",
		KeyTornado:         "tornado",
		KeyOvercastClouds:  "nublado",
		KeyFewClouds:       "poucas nuvens",
		KeyScatteredClouds: "nuvens dispersas",
	},
	English: {
		KeyHotAlert:        "It will be very hot today, prepare to hydrate and protect yourself from the sun!",
		KeyColdAlert:       "It's cold today! Dress warmly and stay warm.",
		KeyRainAlert:       "It's cloudy and it might rain! Take an umbrella and don't forget to close the windows before leaving.",
		KeyStormAlert:      "Storm predicted! Avoid going out and stay in a safe place.",
		KeyWindAlert:       "Strong winds today! Be careful with loose objects and avoid open areas.",
		KeyFogAlert:        "Dense fog predicted! Drive carefully and use low beams.",
		KeyTemperature:     "Temperature",
		KeyFeelsLike:       "Feels like",
		KeyHumidity:        "Humidity",
		KeyWind:            "Wind",
		KeyVisibility:      "Visibility",
		KeyForecast6Days:   "Forecast for the next 6 days",
		KeyChatTitle:       "Chat with SabiA",
		KeyChatWelcome:     "Hello! I'm SabiA, your weather assistant. How can I help you today?",
		KeyLoadingWeather:  "Loading weather data...",
		KeyLoadError:       "Error loading weather data",
		KeyHistoricalData:  "Historical data for %s",
		KeyPrecipitation:   "Precipitation",
		KeyClouds:          "Clouds",
		KeyTemperatureMap:  "Temperature",
		KeyClearSky:        "clear sky",
		KeyCloudy:          "cloudy",
		KeyRain:            "rain",
		KeyDrizzle:         "drizzle",
		KeyThunderstorm:    "thunderstorm",
		KeySnow:            "snow",
		KeyMist:            "mist",
		KeyFog:             "fog",
		KeySand:            "sand",
		KeyDust:            "dust",
		KeyVolcanicAsh:     "volcanic ash",
		KeySqualls:         "squalls",
		KeyTornado:         "tornado",
		KeyOvercastClouds:  "overcast clouds",
		KeyFewClouds:       "few clouds",
		KeyScatteredClouds: "scattered clouds",
	},
	Spanish: {
		KeyHotAlert:        "¡Va a estar muy caliente hoy, prepárate para hidratarte y protegerte del sol!",
		KeyColdAlert:       "¡Hace frío hoy! Abrígate bien y mantente caliente.",
		KeyRainAlert:       "¡Está nublado y puede llover! Lleva un paraguas y no olvides cerrar las ventanas antes de salir.",
		KeyStormAlert:      "¡Tormenta prevista! Evita salir y mantente en un lugar seguro.",
		KeyWindAlert:       "¡Vientos fuertes hoy! Ten cuidado con objetos sueltos y evita áreas abiertas.",
		KeyFogAlert:        "¡Niebla densa prevista! Conduce con cuidado y usa luces bajas.",
		KeyTemperature:     "Temperatura",
		KeyFeelsLike:       "Sensación",
		KeyHumidity:        "Humedad",
		KeyWind:            "Viento",
		KeyVisibility:      "Visibilidad",
		KeyForecast6Days:   "Pronóstico para los próximos 6 días",
		KeyChatTitle:       "Chatear con SabiA",
		KeyChatWelcome:     "¡Hola! Soy SabiA, tu asistente del clima. ¿Cómo puedo ayudarte hoy?",
		KeyLoadingWeather:  "Cargando datos del clima...",
		KeyLoadError:       "Error al cargar datos del clima",
		KeyHistoricalData:  "Datos históricos para %s",
		KeyPrecipitation:   "Precipitación",
		KeyClouds:          "Nubes",
		KeyTemperatureMap:  "Temperatura",
		KeyClearSky:        "cielo despejado",
		KeyCloudy:          "nublado",
		KeyRain:            "lluvia",
		KeyDrizzle:         "llovizna",
		KeyThunderstorm:    "tormenta eléctrica",
		KeySnow:            "nieve",
		KeyMist:            "neblina",
		KeyFog:             "niebla",
		KeySand:            "arena",
		KeyDust:            "polvo",
		KeyVolcanicAsh:     "ceniza volcánica",
		KeySqualls:         "ráfagas",
		KeyTornado:         "tornado",
		KeyOvercastClouds:  "nublado",
		KeyFewClouds:       "pocas nubes",
		KeyScatteredClouds: "nubes dispersas",
	},
}

// T returns the string for key in lang, falling back to Portuguese and
// finally to the key itself.
func T(lang Language, key Key) string {
	if s, ok := texts[lang][key]; ok {
		return s
	}
	if s, ok := texts[Portuguese][key]; ok {
		return s
	}
	return string(key)
}

// Tf formats the string for key with args.
func Tf(lang Language, key Key, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

var dayNames = map[Language][7]string{
	Portuguese: {"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"},
	English:    {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	Spanish:    {"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"},
}

var longDayNames = map[Language][7]string{
	Portuguese: {"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira", "Quinta-feira", "Sexta-feira", "Sábado"},
	English:    dayNames[English],
	Spanish:    dayNames[Spanish],
}

var monthAbbr = map[Language][12]string{
	Portuguese: {"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"},
	English:    {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Spanish:    {"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"},
}

var monthNames = map[Language][12]string{
	Portuguese: {"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho", "Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"},
	English:    {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	Spanish:    {"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"},
}

func known(lang Language) Language {
	if _, ok := texts[lang]; ok {
		return lang
	}
	return Default
}

// DayName returns the weekday name used on forecast cards.
func DayName(lang Language, t time.Time) string {
	return dayNames[known(lang)][t.Weekday()]
}

// ShortDate renders "19 Oct" style card dates.
func ShortDate(lang Language, t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), monthAbbr[known(lang)][t.Month()-1])
}

// LongDate renders the historical banner date, e.g.
// "Segunda-feira, 5 de Maio de 2025". The "de" connector is kept for every
// language.
func LongDate(lang Language, t time.Time) string {
	l := known(lang)
	return fmt.Sprintf("%s, %d de %s de %d", longDayNames[l][t.Weekday()], t.Day(), monthNames[l][t.Month()-1], t.Year())
}
