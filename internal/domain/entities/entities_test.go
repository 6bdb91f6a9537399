package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDemandNormalize(t *testing.T) {
	d := Demand{}
	d.Normalize()

	assert.Equal(t, DefaultPriority, *d.Priority)
	assert.Equal(t, DefaultPriorityScore, *d.PriorityScore)
	assert.Equal(t, DefaultPriorityClassification, *d.PriorityClassification)

	p, s, c := 1, 87, "Alta"
	kept := Demand{Priority: &p, PriorityScore: &s, PriorityClassification: &c}
	kept.Normalize()
	assert.Equal(t, 1, *kept.Priority)
	assert.Equal(t, 87, *kept.PriorityScore)
	assert.Equal(t, "Alta", *kept.PriorityClassification)

	empty := ""
	blank := Demand{PriorityClassification: &empty}
	blank.Normalize()
	assert.Equal(t, DefaultPriorityClassification, *blank.PriorityClassification)
}

func TestPermissionsFor(t *testing.T) {
	assert.Equal(t, Permissions{true, true, true, true}, PermissionsFor(RoleAdmin))
	assert.Equal(t, Permissions{CanExport: true, CanViewAll: true, CanEdit: true}, PermissionsFor(RoleFocal))
	assert.Equal(t, Permissions{}, PermissionsFor(RoleColaborador))
	assert.Equal(t, Permissions{}, PermissionsFor(Role("gerente")))
	assert.Equal(t, Permissions{}, PermissionsFor(""))
}

func TestTimelineRowView(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	row := TimelineRow{ID: 7, DemandID: 3, EventDate: at, EventText: "algo", CreatedAt: at}

	v := row.View()
	assert.Equal(t, SystemUserLabel, v.Usuario)
	assert.Equal(t, "algo", v.Acao)
	assert.Equal(t, "algo", v.Descricao)
	assert.Equal(t, at, v.DataAcao)

	row.UserName = "Ana"
	assert.Equal(t, "Ana", row.View().Usuario)
}
