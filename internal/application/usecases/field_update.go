package usecases

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/kruetzmann2110/demandas/internal/utils"
)

// ColumnKind define como o valor de uma coluna é convertido antes do bind.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
	KindTimestamp
	KindDate
)

// demandColumns é o registro fechado de colunas editáveis de demands.
// Nenhuma chave fora daqui chega ao SQL como identificador.
var demandColumns = map[string]ColumnKind{
	"requester":               KindText,
	"group_name":              KindText,
	"scenario":                KindText,
	"observation":             KindText,
	"open_date":               KindDate,
	"status":                  KindText,
	"responsible":             KindText,
	"deadline":                KindTimestamp,
	"priority":                KindInt,
	"priority_classification": KindText,
	"priority_score":          KindInt,
	"impacto_cliente_final":   KindInt,
	"complexidade_tecnica":    KindInt,
	"tdna":                    KindInt,
	"nps":                     KindInt,
	"reincidencia":            KindInt,
	"reclamada":               KindInt,
	"frequencia_automacao":    KindInt,
	"gestao_equipes_direta":   KindText,
	"envolvimento_grupos":     KindText,
	"gerar_dentro_casa":       KindText,
	"theme":                   KindText,
	"title":                   KindText,
	"description":             KindText,
	"due_date":                KindTimestamp,
	"real_demand_id":          KindText,
	"submotivo":               KindText,
	"categoria":               KindText,
}

// Colunas aceitas pelos PATCH update-field e timeline-edit.
var patchColumns = []string{"real_demand_id", "open_date"}

const (
	reservedID       = "id"
	reservedRevision = "revision"
)

// FieldUpdate é um conjunto esparso já validado e convertido.
type FieldUpdate struct {
	Fields   map[string]interface{}
	Columns  []string
	Revision *int64
}

// BuildFieldUpdate valida as chaves do corpo contra o registro e converte os valores.
// Com allowed == nil (PUT) qualquer chave fora do registro é erro; com allowed
// definido (PATCH) só essas colunas são consideradas e o resto é ignorado.
func BuildFieldUpdate(body map[string]interface{}, allowed []string) (*FieldUpdate, error) {
	update := &FieldUpdate{Fields: make(map[string]interface{}, len(body))}

	if raw, ok := body[reservedRevision]; ok && raw != nil {
		rev, err := toInt(raw)
		if err != nil || rev == nil {
			return nil, newValidationError("Revisão inválida", reservedRevision)
		}
		r := int64(*rev)
		update.Revision = &r
	}

	var unknown, invalid []string

	if allowed == nil {
		for key, raw := range body {
			if key == reservedID || key == reservedRevision {
				continue
			}
			kind, ok := demandColumns[key]
			if !ok {
				unknown = append(unknown, key)
				continue
			}
			value, err := coerce(kind, raw)
			if err != nil {
				invalid = append(invalid, key)
				continue
			}
			update.Fields[key] = value
		}
	} else {
		for _, key := range allowed {
			raw, present := body[key]
			if !present {
				continue
			}
			value, err := coerce(demandColumns[key], raw)
			if err != nil {
				invalid = append(invalid, key)
				continue
			}
			update.Fields[key] = value
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, newValidationError("Campos desconhecidos", unknown...)
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, newValidationError("Valores inválidos", invalid...)
	}

	if p, ok := update.Fields["priority"].(int); ok && (p < 1 || p > 3) {
		return nil, newValidationError("Prioridade deve estar entre 1 e 3", "priority")
	}

	if len(update.Fields) == 0 {
		if allowed != nil {
			return nil, newValidationError("Nenhum campo válido para atualizar")
		}
		return nil, newValidationError("Nenhum campo para atualizar")
	}

	for column := range update.Fields {
		update.Columns = append(update.Columns, column)
	}
	sort.Strings(update.Columns)

	return update, nil
}

func coerce(kind ColumnKind, raw interface{}) (interface{}, error) {
	switch kind {
	case KindInt:
		v, err := toInt(raw)
		if err != nil || v == nil {
			return nil, err
		}
		return *v, nil
	case KindTimestamp, KindDate:
		v, err := toTime(raw)
		if err != nil || v == nil {
			return nil, err
		}
		return *v, nil
	default:
		v, err := toText(raw)
		if err != nil || v == nil {
			return nil, err
		}
		return *v, nil
	}
}

var errUnsupportedValue = errors.New("valor não suportado")

// toInt aceita números JSON inteiros e strings numéricas; vazio vira nulo.
func toInt(raw interface{}) (*int, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int:
		return &v, nil
	case int64:
		n := int(v)
		return &n, nil
	case json.Number:
		return toInt(string(v))
	case float64:
		return floatToInt(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return &n, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return nil, errUnsupportedValue
		}
		// "3.0", "1e2"
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errUnsupportedValue
		}
		return floatToInt(f)
	default:
		return nil, errUnsupportedValue
	}
}

// floatToInt só aceita valores inteiros dentro da faixa de int.
func floatToInt(f float64) (*int, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, errUnsupportedValue
	}
	n := int(f)
	return &n, nil
}

func toTime(raw interface{}) (*time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		t, err := utils.ParseFrontendDate(s)
		if err != nil {
			return nil, errUnsupportedValue
		}
		return &t, nil
	default:
		return nil, errUnsupportedValue
	}
}

func toText(raw interface{}) (*string, error) {
	var s string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case bool:
		s = strconv.FormatBool(v)
	default:
		return nil, errUnsupportedValue
	}
	return &s, nil
}

// lenientInt segue a regra de criação: qualquer coisa não numérica vira nulo.
func lenientInt(raw interface{}) *int {
	v, err := toInt(raw)
	if err != nil {
		return nil
	}
	return v
}

func lenientText(raw interface{}) *string {
	v, err := toText(raw)
	if err != nil {
		return nil
	}
	return v
}

// firstText devolve o primeiro alias presente e não vazio.
func firstText(body map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v := lenientText(body[key]); v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return ""
}
