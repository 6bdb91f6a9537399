package entities

import "time"

const (
	DefaultPriority               = 2
	DefaultPriorityScore          = 0
	DefaultPriorityClassification = "Média"
	DefaultStatus                 = "Novo"
)

// FallbackStatuses é usada quando a constraint de status não pode ser lida do banco.
var FallbackStatuses = []string{"Novo", "Em analise", "Aguardando demandante", "Em andamento", "Concluido", "Cancelado"}

type Demand struct {
	ID                     int64      `json:"id" gorm:"primaryKey;column:id"`
	Requester              *string    `json:"requester" gorm:"column:requester"`
	GroupName              *string    `json:"group_name" gorm:"column:group_name"`
	Scenario               *string    `json:"scenario" gorm:"column:scenario"`
	Observation            *string    `json:"observation" gorm:"column:observation;type:text"`
	OpenDate               *time.Time `json:"open_date" gorm:"column:open_date"`
	Status                 string     `json:"status" gorm:"column:status;not null;default:'Novo';check:chk_demands_status,status IN ('Novo','Em analise','Aguardando demandante','Em andamento','Concluido','Cancelado')"`
	Responsible            *string    `json:"responsible" gorm:"column:responsible"`
	ResponsibleName        *string    `json:"responsible_name" gorm:"column:responsible_name;->;-:migration"`
	Deadline               *time.Time `json:"deadline" gorm:"column:deadline"`
	Priority               *int       `json:"priority" gorm:"column:priority"`
	PriorityClassification *string    `json:"priority_classification" gorm:"column:priority_classification"`
	PriorityScore          *int       `json:"priority_score" gorm:"column:priority_score"`
	ImpactoClienteFinal    *int       `json:"impacto_cliente_final" gorm:"column:impacto_cliente_final"`
	ComplexidadeTecnica    *int       `json:"complexidade_tecnica" gorm:"column:complexidade_tecnica"`
	TDNA                   *int       `json:"tdna" gorm:"column:tdna"`
	NPS                    *int       `json:"nps" gorm:"column:nps"`
	Reincidencia           *int       `json:"reincidencia" gorm:"column:reincidencia"`
	Reclamada              *int       `json:"reclamada" gorm:"column:reclamada"`
	FrequenciaAutomacao    *int       `json:"frequencia_automacao" gorm:"column:frequencia_automacao"`
	GestaoEquipesDireta    *string    `json:"gestao_equipes_direta" gorm:"column:gestao_equipes_direta"`
	EnvolvimentoGrupos     *string    `json:"envolvimento_grupos" gorm:"column:envolvimento_grupos"`
	GerarDentroCasa        *string    `json:"gerar_dentro_casa" gorm:"column:gerar_dentro_casa"`
	Theme                  *string    `json:"theme" gorm:"column:theme"`
	Title                  *string    `json:"title" gorm:"column:title"`
	Description            *string    `json:"description" gorm:"column:description;type:text"`
	DueDate                *time.Time `json:"due_date" gorm:"column:due_date"`
	RealDemandID           *string    `json:"real_demand_id" gorm:"column:real_demand_id"`
	Submotivo              *string    `json:"submotivo" gorm:"column:submotivo"`
	Categoria              *string    `json:"categoria" gorm:"column:categoria"`
	Revision               int64      `json:"revision" gorm:"column:revision;not null;default:0"`
	CreatedAt              time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt              *time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Demand) TableName() string {
	return "demands"
}

// Normalize preenche os campos de prioridade que nunca podem sair nulos na resposta.
// Valores nulos gravados no banco são tolerados e corrigidos em toda leitura.
func (d *Demand) Normalize() {
	if d.Priority == nil {
		p := DefaultPriority
		d.Priority = &p
	}
	if d.PriorityScore == nil {
		s := DefaultPriorityScore
		d.PriorityScore = &s
	}
	if d.PriorityClassification == nil || *d.PriorityClassification == "" {
		c := DefaultPriorityClassification
		d.PriorityClassification = &c
	}
}

// DemandWithTimeline é o formato servido pela listagem principal.
type DemandWithTimeline struct {
	Demand
	Timeline []TimelineView `json:"timeline"`
}
