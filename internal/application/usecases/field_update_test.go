package usecases

import (
	"math"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFieldUpdateFullUpdate(t *testing.T) {
	body := map[string]interface{}{
		"id":          json.Number("7"),
		"revision":    json.Number("3"),
		"scenario":    "Login fails",
		"priority":    "3",
		"nps":         json.Number("9"),
		"deadline":    "2025-04-01",
		"observation": nil,
	}

	update, err := BuildFieldUpdate(body, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"deadline", "nps", "observation", "priority", "scenario"}, update.Columns)
	assert.Equal(t, "Login fails", update.Fields["scenario"])
	assert.Equal(t, 3, update.Fields["priority"])
	assert.Equal(t, 9, update.Fields["nps"])
	assert.Nil(t, update.Fields["observation"])
	assert.IsType(t, time.Time{}, update.Fields["deadline"])
	require.NotNil(t, update.Revision)
	assert.EqualValues(t, 3, *update.Revision)
	assert.NotContains(t, update.Fields, "id")
	assert.NotContains(t, update.Fields, "revision")
}

func TestBuildFieldUpdateRejectsUnknownColumns(t *testing.T) {
	_, err := BuildFieldUpdate(map[string]interface{}{
		"scenario":           "ok",
		"status; DROP TABLE": "x",
		"created_at":         "2025-01-01",
	}, nil)

	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"created_at", "status; DROP TABLE"}, vErr.Fields)
}

func TestBuildFieldUpdateRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"int as text":        {"priority": "alta"},
		"fractional int":     {"tdna": json.Number("1.5")},
		"bad date":           {"deadline": "amanhã"},
		"object as text":     {"scenario": map[string]interface{}{"a": 1}},
		"priority too high":  {"priority": json.Number("4")},
		"priority too low":   {"priority": json.Number("0")},
		"malformed revision": {"scenario": "x", "revision": "abc"},
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildFieldUpdate(body, nil)
			assert.True(t, IsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

func TestBuildFieldUpdateEmpty(t *testing.T) {
	_, err := BuildFieldUpdate(map[string]interface{}{"id": 1}, nil)
	require.Error(t, err)
	assert.Equal(t, "Nenhum campo para atualizar", err.Error())

	_, err = BuildFieldUpdate(map[string]interface{}{"scenario": "ignorado"}, patchColumns)
	require.Error(t, err)
	assert.Equal(t, "Nenhum campo válido para atualizar", err.Error())
}

func TestBuildFieldUpdatePatchSubset(t *testing.T) {
	update, err := BuildFieldUpdate(map[string]interface{}{
		"real_demand_id": "X123",
		"scenario":       "não deve mudar",
		"unknown":        true,
	}, patchColumns)
	require.NoError(t, err)

	assert.Equal(t, []string{"real_demand_id"}, update.Columns)
	assert.Equal(t, "X123", update.Fields["real_demand_id"])
}

func TestColumnRegistryKinds(t *testing.T) {
	assert.Equal(t, KindInt, demandColumns["priority"])
	assert.Equal(t, KindDate, demandColumns["open_date"])
	assert.Equal(t, KindTimestamp, demandColumns["due_date"])
	assert.Equal(t, KindText, demandColumns["scenario"])

	_, ok := demandColumns["revision"]
	assert.False(t, ok)
}

func TestBuildFieldUpdateRejectsOutOfRangeIntegers(t *testing.T) {
	for _, raw := range []interface{}{
		json.Number("1e20"),
		json.Number("-1e20"),
		"99999999999999999999",
		"9223372036854775808",
		float64(1e19),
	} {
		_, err := BuildFieldUpdate(map[string]interface{}{"priority_score": raw}, nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "%v", raw)
		assert.Equal(t, "Valores inválidos", vErr.Message)
		assert.Equal(t, []string{"priority_score"}, vErr.Fields)
	}

	update, err := BuildFieldUpdate(map[string]interface{}{
		"priority_score": json.Number("9223372036854775807"),
		"nps":            json.Number("1e2"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt64, update.Fields["priority_score"])
	assert.Equal(t, 100, update.Fields["nps"])
}

func TestLenientInt(t *testing.T) {
	assert.Nil(t, lenientInt("abc"))
	assert.Nil(t, lenientInt(nil))
	assert.Nil(t, lenientInt(""))
	assert.Equal(t, 5, *lenientInt(" 5 "))
	assert.Equal(t, 7, *lenientInt(json.Number("7")))
	assert.Equal(t, 2, *lenientInt(float64(2)))
	assert.Nil(t, lenientInt(json.Number("1e20")))
	assert.Nil(t, lenientInt("99999999999999999999"))
}

func TestIdentityDetect(t *testing.T) {
	assert.Equal(t, "ana", Identity{ForwardedUser: `CORP\ana`, EnvironmentUser: "svc"}.Detect())
	assert.Equal(t, "bruno", Identity{ClientPrincipal: "bruno"}.Detect())
	assert.Equal(t, "G0040925", Identity{EnvironmentUser: `DOMINIO\G0040925`}.Detect())
	assert.Equal(t, "", Identity{ForwardedUser: "  "}.Detect())
}
