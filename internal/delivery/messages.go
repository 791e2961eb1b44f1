package delivery

import (
	"fmt"

	"github.com/2beens/gymapi/internal/reports"
)

type messageTemplate struct {
	subject   string
	emailBody string
	caption   func(name string) string
	// prefix of delivery log lines
	what string
}

var templates = map[string]messageTemplate{
	reports.KindAssessment: {
		subject:   "Avaliação Física - Alpphas GYM",
		emailBody: "Olá! Segue em anexo sua avaliação física realizada no Alpphas GYM.",
		caption: func(name string) string {
			return fmt.Sprintf("Olá %s, segue sua avaliação física realizada no Alpphas GYM.", name)
		},
		what: "Avaliação enviada",
	},
	reports.KindMealPlan: {
		subject:   "Seu Plano Alimentar - Alpphas GYM",
		emailBody: "Olá! Segue em anexo seu plano alimentar personalizado.",
		caption: func(string) string {
			return "Olá! Segue em anexo seu Plano Alimentar personalizado pelo Alpphas GYM 💪"
		},
		what: "Plano alimentar enviado",
	},
}

func templateFor(kind string) messageTemplate {
	if t, ok := templates[kind]; ok {
		return t
	}
	return messageTemplate{
		subject:   "Documento - Alpphas GYM",
		emailBody: "Olá! Segue em anexo seu documento do Alpphas GYM.",
		caption: func(string) string {
			return "Olá! Segue em anexo seu documento do Alpphas GYM."
		},
		what: "Documento enviado",
	}
}

func (t messageTemplate) logContent(channel Channel, destination string) string {
	switch channel {
	case ChannelEmail:
		return fmt.Sprintf("%s por e-mail para %s", t.what, destination)
	default:
		return fmt.Sprintf("%s por WhatsApp para %s", t.what, destination)
	}
}
