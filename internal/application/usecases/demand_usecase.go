package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"github.com/kruetzmann2110/demandas/internal/domain/repositories"
	"github.com/kruetzmann2110/demandas/internal/utils"
	"go.uber.org/zap"
)

type DemandUseCase interface {
	ListWithTimeline(ctx context.Context) ([]entities.DemandWithTimeline, error)
	Create(ctx context.Context, body map[string]interface{}) (int64, error)
	Update(ctx context.Context, id int64, body map[string]interface{}) error
	UpdateField(ctx context.Context, id int64, body map[string]interface{}) error
	TimelineEdit(ctx context.Context, id int64, body map[string]interface{}) ([]string, error)
	Export(ctx context.Context) ([]entities.Demand, error)
}

type demandUseCase struct {
	demandRepo   repositories.DemandRepository
	timelineRepo repositories.TimelineRepository
}

func NewDemandUseCase(demandRepo repositories.DemandRepository, timelineRepo repositories.TimelineRepository) DemandUseCase {
	return &demandUseCase{demandRepo, timelineRepo}
}

// ListWithTimeline lê as demandas e anexa a timeline de todas com uma única consulta extra.
// Qualquer falha derruba a listagem inteira; não há resposta parcial.
func (uc *demandUseCase) ListWithTimeline(ctx context.Context) ([]entities.DemandWithTimeline, error) {
	demands, err := uc.demandRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar demandas: %w", err)
	}

	result := make([]entities.DemandWithTimeline, 0, len(demands))
	if len(demands) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(demands))
	for _, d := range demands {
		ids = append(ids, d.ID)
	}

	timelines, err := uc.timelineRepo.AggregateByDemandIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar timeline: %w", err)
	}

	for _, d := range demands {
		timeline := timelines[d.ID]
		if timeline == nil {
			timeline = []entities.TimelineView{}
		}
		result = append(result, entities.DemandWithTimeline{Demand: d, Timeline: timeline})
	}

	zap.L().Debug("demandas carregadas com timeline", zap.Int("total", len(result)))
	return result, nil
}

// Create normaliza prioridade e datas, grava a demanda com status inicial e
// registra a entrada de criação na timeline, tendo o solicitante como autor.
func (uc *demandUseCase) Create(ctx context.Context, body map[string]interface{}) (int64, error) {
	now := utils.NowSaoPaulo()

	priority := entities.DefaultPriority
	if p := lenientInt(body["priority"]); p != nil && *p != 0 {
		priority = *p
	}
	if priority < 1 || priority > 3 {
		return 0, newValidationError("Prioridade deve estar entre 1 e 3", "priority")
	}

	score := entities.DefaultPriorityScore
	if s := lenientInt(body["analyticsScore"]); s != nil {
		score = *s
	}

	classification := entities.DefaultPriorityClassification
	if c := lenientText(body["analyticsPriority"]); c != nil && strings.TrimSpace(*c) != "" {
		classification = *c
	}

	openDate := now
	if raw := lenientText(body["demand_open_date"]); raw != nil {
		openDate = utils.ParseFrontendDateOrNow(*raw)
	}

	deadline, err := toTime(body["deadline"])
	if err != nil {
		return 0, newValidationError("Valores inválidos", "deadline")
	}
	dueDate, err := toTime(body["due_date"])
	if err != nil {
		return 0, newValidationError("Valores inválidos", "due_date")
	}

	demand := &entities.Demand{
		Requester:              lenientText(body["requester"]),
		GroupName:              lenientText(body["group_name"]),
		Scenario:               lenientText(body["scenario"]),
		Observation:            lenientText(body["observation"]),
		OpenDate:               &openDate,
		Status:                 entities.DefaultStatus,
		Responsible:            lenientText(body["responsible"]),
		Deadline:               deadline,
		Priority:               &priority,
		PriorityClassification: &classification,
		PriorityScore:          &score,
		ImpactoClienteFinal:    lenientInt(body["impacto_cliente_final"]),
		ComplexidadeTecnica:    lenientInt(body["complexidade_tecnica"]),
		TDNA:                   lenientInt(body["tdna"]),
		NPS:                    lenientInt(body["nps"]),
		Reincidencia:           lenientInt(body["reincidencia"]),
		Reclamada:              lenientInt(body["reclamada"]),
		FrequenciaAutomacao:    lenientInt(body["frequencia_automacao"]),
		GestaoEquipesDireta:    lenientText(body["gestao_equipes_direta"]),
		EnvolvimentoGrupos:     lenientText(body["envolvimento_grupos"]),
		GerarDentroCasa:        lenientText(body["gerar_dentro_casa"]),
		Theme:                  lenientText(body["theme"]),
		Title:                  lenientText(body["title"]),
		Description:            lenientText(body["description"]),
		DueDate:                dueDate,
		RealDemandID:           lenientText(body["real_demand_id"]),
		Submotivo:              lenientText(body["submotivo"]),
		Categoria:              lenientText(body["categoria"]),
		CreatedAt:              now,
	}

	scenario := ""
	if demand.Scenario != nil {
		scenario = *demand.Scenario
	}

	initial := &entities.TimelineEntry{
		EventDate: now,
		EventText: `Demanda "` + scenario + `" foi criada`,
		CreatedAt: now,
		UserID:    demand.Requester,
	}

	if err := uc.demandRepo.Create(ctx, demand, initial); err != nil {
		return 0, fmt.Errorf("erro ao criar demanda: %w", err)
	}

	zap.L().Info("✅ Demanda criada",
		zap.Int64("id", demand.ID),
		zap.Int("priority", priority),
		zap.Int("priority_score", score),
		zap.String("priority_classification", classification))

	return demand.ID, nil
}

// Update é o PUT: qualquer coluna registrada, chaves desconhecidas rejeitadas.
func (uc *demandUseCase) Update(ctx context.Context, id int64, body map[string]interface{}) error {
	update, err := BuildFieldUpdate(body, nil)
	if err != nil {
		return err
	}
	_, err = uc.apply(ctx, id, update)
	return err
}

// UpdateField aceita apenas real_demand_id e open_date; demais chaves são ignoradas.
func (uc *demandUseCase) UpdateField(ctx context.Context, id int64, body map[string]interface{}) error {
	update, err := BuildFieldUpdate(body, patchColumns)
	if err != nil {
		return err
	}
	_, err = uc.apply(ctx, id, update)
	return err
}

// TimelineEdit atualiza os mesmos campos do UpdateField e registra a alteração na timeline.
func (uc *demandUseCase) TimelineEdit(ctx context.Context, id int64, body map[string]interface{}) ([]string, error) {
	update, err := BuildFieldUpdate(body, patchColumns)
	if err != nil {
		return nil, err
	}

	affected, err := uc.apply(ctx, id, update)
	if err != nil {
		return nil, err
	}
	// Demanda inexistente: nada foi alterado, então nada é registrado.
	if affected == 0 {
		return update.Columns, nil
	}

	changes := make([]string, 0, len(update.Columns))
	if _, ok := update.Fields["real_demand_id"]; ok {
		changes = append(changes, `ID da demanda real: "`+displayValue(body["real_demand_id"])+`"`)
	}
	if _, ok := update.Fields["open_date"]; ok {
		changes = append(changes, `Data de abertura: "`+displayValue(body["open_date"])+`"`)
	}

	now := utils.NowSaoPaulo()
	entry := &entities.TimelineEntry{
		DemandID:  id,
		EventDate: now,
		EventText: "Campos editados via timeline: " + strings.Join(changes, ", "),
		CreatedAt: now,
	}
	if user := firstText(body, "user_id", "user_name"); user != "" {
		entry.UserID = &user
	}

	if err := uc.timelineRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("erro ao registrar edição na timeline: %w", err)
	}

	return update.Columns, nil
}

func (uc *demandUseCase) Export(ctx context.Context) ([]entities.Demand, error) {
	demands, err := uc.demandRepo.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar dados de exportação: %w", err)
	}
	for i := range demands {
		demands[i].Normalize()
	}
	return demands, nil
}

func (uc *demandUseCase) apply(ctx context.Context, id int64, update *FieldUpdate) (int64, error) {
	affected, err := uc.demandRepo.UpdateFields(ctx, id, update.Fields, update.Revision, utils.NowSaoPaulo())
	if err != nil {
		return 0, err
	}

	zap.L().Info("🔧 Demanda atualizada",
		zap.Int64("id", id),
		zap.Strings("fields", update.Columns),
		zap.Int64("rows", affected))
	return affected, nil
}

func displayValue(raw interface{}) string {
	if v := lenientText(raw); v != nil {
		return *v
	}
	return ""
}
