package entities

import "time"

// SystemUserLabel é o rótulo exibido quando não há usuário associado a um evento.
const SystemUserLabel = "Sistema"

// TimelineEntry é uma linha de auditoria append-only de uma demanda.
type TimelineEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey;column:id"`
	DemandID  int64     `json:"demand_id" gorm:"column:demand_id;not null;index"`
	EventDate time.Time `json:"event_date" gorm:"column:event_date;not null"`
	EventText string    `json:"event_text" gorm:"column:event_text;type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UserID    *string   `json:"user_id" gorm:"column:user_id"`
}

func (TimelineEntry) TableName() string {
	return "demand_timeline"
}

// TimelineRow é a leitura de uma entrada com o nome do usuário já resolvido.
type TimelineRow struct {
	ID        int64     `json:"id" gorm:"column:id"`
	DemandID  int64     `json:"demand_id" gorm:"column:demand_id"`
	EventDate time.Time `json:"event_date" gorm:"column:event_date"`
	EventText string    `json:"event_text" gorm:"column:event_text"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UserID    *string   `json:"user_id" gorm:"column:user_id"`
	UserName  string    `json:"user_name" gorm:"column:user_name"`
}

// TimelineView é o formato embutido em cada demanda da listagem.
type TimelineView struct {
	ID        int64     `json:"id"`
	DemandID  int64     `json:"demand_id"`
	Usuario   string    `json:"usuario"`
	Acao      string    `json:"acao"`
	Descricao string    `json:"descricao"`
	DataAcao  time.Time `json:"data_acao"`
	CreatedAt time.Time `json:"created_at"`
	UserID    *string   `json:"user_id"`
}

func (r TimelineRow) View() TimelineView {
	name := r.UserName
	if name == "" {
		name = SystemUserLabel
	}
	return TimelineView{
		ID:        r.ID,
		DemandID:  r.DemandID,
		Usuario:   name,
		Acao:      r.EventText,
		Descricao: r.EventText,
		DataAcao:  r.EventDate,
		CreatedAt: r.CreatedAt,
		UserID:    r.UserID,
	}
}
