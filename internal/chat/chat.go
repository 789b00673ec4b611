// Package chat implements the dashboard's canned assistant: an ordered
// keyword table mapped to per-language reply templates.
package chat

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/i474232898/sabia-weather/internal/common"
	"github.com/i474232898/sabia-weather/internal/i18n"
	"github.com/i474232898/sabia-weather/internal/weather"
)

// Topic is the keyword group a message matched.
type Topic string

const (
	TopicRain        Topic = "rain"
	TopicTemperature Topic = "temperature"
	TopicWind        Topic = "wind"
	TopicHumidity    Topic = "humidity"
	TopicGeneric     Topic = "generic"
)

type reply func(lang i18n.Language, r weather.CanonicalReading) string

type topicRule struct {
	topic    Topic
	keywords []string
	// needsReading is set when the reply quotes current values.
	needsReading bool
	reply        reply
}

// topics is checked in order; the first keyword hit wins.
var topics = []topicRule{
	{TopicRain, []string{"chuva", "rain", "lluvia"}, false, func(lang i18n.Language, _ weather.CanonicalReading) string {
		return pick(lang, map[i18n.Language]string{
			i18n.English:    "Yes, there's a possibility of rain today! I recommend taking an umbrella.",
			i18n.Spanish:    "¡Sí, hay posibilidad de lluvia hoy! Te recomiendo llevar un paraguas.",
			i18n.Portuguese: "Sim, há possibilidade de chuva hoje! Recomendo levar um guarda-chuva.",
		})
	}},
	{TopicTemperature, []string{"temperatura", "temperature"}, true, func(lang i18n.Language, r weather.CanonicalReading) string {
		tmpl := pick(lang, map[i18n.Language]string{
			i18n.English:    "Current temperature is %d°C, with a feels-like temperature of %d°C.",
			i18n.Spanish:    "La temperatura actual es %d°C, con una sensación térmica de %d°C.",
			i18n.Portuguese: "A temperatura atual é %d°C, com sensação térmica de %d°C.",
		})
		return fmt.Sprintf(tmpl, round(r.Temperature), round(r.FeelsLike))
	}},
	{TopicWind, []string{"vento", "wind", "viento"}, true, func(lang i18n.Language, r weather.CanonicalReading) string {
		tmpl := pick(lang, map[i18n.Language]string{
			i18n.English:    "Wind is at %d km/h.",
			i18n.Spanish:    "El viento está a %d km/h.",
			i18n.Portuguese: "O vento está a %d km/h.",
		})
		return fmt.Sprintf(tmpl, round(r.WindSpeed))
	}},
	{TopicHumidity, []string{"umidade", "humidity", "humedad"}, true, func(lang i18n.Language, r weather.CanonicalReading) string {
		tmpl := pick(lang, map[i18n.Language]string{
			i18n.English:    "Humidity is at %d%%.",
			i18n.Spanish:    "La humedad está en %d%%.",
			i18n.Portuguese: "A umidade está em %d%%.",
		})
		return fmt.Sprintf(tmpl, round(r.Humidity))
	}},
}

var generic = map[i18n.Language][]string{
	i18n.Portuguese: {
		"Baseado nos dados atuais, posso te ajudar com informações sobre o clima!",
		"O clima está interessante hoje, não é mesmo?",
		"Posso te dar dicas sobre como se preparar para as condições atuais.",
		"Que pergunta interessante sobre o clima! Deixe-me pensar...",
		"Com base nos dados que tenho, posso te orientar sobre o clima.",
	},
	i18n.English: {
		"Based on current data, I can help you with weather information!",
		"The weather is interesting today, isn't it?",
		"I can give you tips on how to prepare for current conditions.",
		"What an interesting question about the weather! Let me think...",
		"Based on the data I have, I can guide you about the weather.",
	},
	i18n.Spanish: {
		"¡Basado en los datos actuales, puedo ayudarte con información del clima!",
		"El clima está interesante hoy, ¿verdad?",
		"Puedo darte consejos sobre cómo prepararte para las condiciones actuales.",
		"¡Qué pregunta tan interesante sobre el clima! Déjame pensar...",
		"Basado en los datos que tengo, puedo orientarte sobre el clima.",
	},
}

// Respond answers message in lang. reading may be nil when nothing has been
// loaded yet; topics that quote current values then fall through to a
// generic reply. Unknown languages answer in Portuguese.
func Respond(message string, lang i18n.Language, reading *weather.CanonicalReading) string {
	text, _ := Answer(message, lang, reading)
	return text
}

// Answer is Respond that also reports the matched topic.
func Answer(message string, lang i18n.Language, reading *weather.CanonicalReading) (string, Topic) {
	for _, t := range topics {
		if !common.HasAny(message, t.keywords...) {
			continue
		}
		if t.needsReading && reading == nil {
			break
		}
		var r weather.CanonicalReading
		if reading != nil {
			r = *reading
		}
		return t.reply(lang, r), t.topic
	}
	return genericReply(message, lang), TopicGeneric
}

// genericReply picks one of the fallback replies from a hash of the
// normalized message so the same question always gets the same answer.
func genericReply(message string, lang i18n.Language) string {
	replies, ok := generic[lang]
	if !ok {
		replies = generic[i18n.Portuguese]
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(message))))
	return replies[h.Sum32()%uint32(len(replies))]
}

func pick(lang i18n.Language, byLang map[i18n.Language]string) string {
	if s, ok := byLang[lang]; ok {
		return s
	}
	return byLang[i18n.Portuguese]
}

func round(v float64) int {
	return int(math.Round(v))
}
