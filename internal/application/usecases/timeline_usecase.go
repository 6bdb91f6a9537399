package usecases

import (
	"context"
	"fmt"

	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"github.com/kruetzmann2110/demandas/internal/domain/repositories"
	"github.com/kruetzmann2110/demandas/internal/utils"
)

var (
	eventTextAliases = []string{"event_text", "text", "observation", "message"}
	userIDAliases    = []string{"user_id", "userId", "usuario"}
	demandIDAliases  = []string{"demand_id", "demandId", "id"}
)

type TimelineUseCase interface {
	ListByDemand(ctx context.Context, demandID int64) ([]entities.TimelineRow, error)
	Append(ctx context.Context, demandID int64, body map[string]interface{}, identity Identity) (*entities.TimelineEntry, error)
	ListLegacy(ctx context.Context, demandID int64) ([]entities.TimelineEntry, error)
	AppendLegacy(ctx context.Context, body map[string]interface{}) (*entities.TimelineEntry, error)
}

type timelineUseCase struct {
	timelineRepo repositories.TimelineRepository
	defaultUser  string
}

func NewTimelineUseCase(timelineRepo repositories.TimelineRepository, defaultUser string) TimelineUseCase {
	return &timelineUseCase{timelineRepo, defaultUser}
}

func (uc *timelineUseCase) ListByDemand(ctx context.Context, demandID int64) ([]entities.TimelineRow, error) {
	rows, err := uc.timelineRepo.ListByDemand(ctx, demandID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []entities.TimelineRow{}
	}
	return rows, nil
}

// Append registra um evento na demanda. Sem usuário no corpo, usa a identidade
// detectada na requisição e, por último, o usuário padrão configurado.
func (uc *timelineUseCase) Append(ctx context.Context, demandID int64, body map[string]interface{}, identity Identity) (*entities.TimelineEntry, error) {
	text := firstText(body, eventTextAliases...)
	if text == "" {
		return nil, newValidationError("event_text é obrigatório")
	}

	user := firstText(body, userIDAliases...)
	if user == "" {
		user = identity.Detect()
	}
	if user == "" {
		user = uc.defaultUser
	}

	now := utils.NowSaoPaulo()
	entry := &entities.TimelineEntry{
		DemandID:  demandID,
		EventDate: now,
		EventText: text,
		CreatedAt: now,
	}
	if user != "" {
		entry.UserID = &user
	}

	if err := uc.timelineRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("erro ao adicionar entrada: %w", err)
	}
	return entry, nil
}

func (uc *timelineUseCase) ListLegacy(ctx context.Context, demandID int64) ([]entities.TimelineEntry, error) {
	return uc.timelineRepo.ListLegacy(ctx, demandID)
}

// AppendLegacy é o POST /api/timeline antigo: sem usuário associado.
func (uc *timelineUseCase) AppendLegacy(ctx context.Context, body map[string]interface{}) (*entities.TimelineEntry, error) {
	text := firstText(body, eventTextAliases...)

	var demandID *int
	for _, key := range demandIDAliases {
		if v := lenientInt(body[key]); v != nil && *v != 0 {
			demandID = v
			break
		}
	}

	if demandID == nil || text == "" {
		return nil, newValidationError("demand_id e event_text são obrigatórios")
	}

	now := utils.NowSaoPaulo()
	entry := &entities.TimelineEntry{
		DemandID:  int64(*demandID),
		EventDate: now,
		EventText: text,
		CreatedAt: now,
	}

	if err := uc.timelineRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("erro ao adicionar evento: %w", err)
	}
	return entry, nil
}
