package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// GetBrasilLocation retorna a localização de São Paulo (UTC-3)
// Esta função deve ser usada em todo o projeto para obter o fuso horário padrão brasileiro,
// garantindo consistência em todas as operações relacionadas a data e hora.
func GetBrasilLocation() *time.Location {
	brazilLocation, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// Fallback para UTC-3 se não conseguir carregar a localização
		brazilLocation = time.FixedZone("BRT", -3*60*60)
	}
	return brazilLocation
}

// NowSaoPaulo é o relógio usado para todos os timestamps de auditoria.
func NowSaoPaulo() time.Time {
	return time.Now().In(GetBrasilLocation())
}

// ParseFrontendDate interpreta uma data vinda do frontend.
// "YYYY-MM-DD" vira meio-dia em São Paulo (evita que o dia "escorregue" ao converter para UTC);
// qualquer outro formato precisa ser RFC3339.
func ParseFrontendDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if dateOnlyPattern.MatchString(value) {
		d, err := time.ParseInLocation("2006-01-02", value, GetBrasilLocation())
		if err != nil {
			return time.Time{}, err
		}
		return d.Add(12 * time.Hour), nil
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, GetBrasilLocation()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ", value)
}

// ParseFrontendDateOrNow é a variante tolerante usada na criação de demandas:
// valores vazios ou inválidos caem para o horário atual.
func ParseFrontendDateOrNow(value string) time.Time {
	t, err := ParseFrontendDate(value)
	if err != nil {
		return NowSaoPaulo()
	}
	return t
}
