package entities

// Tema mapeia um tema ao focal responsável e ao texto de glossário.
type Tema struct {
	ID             int64   `json:"id" gorm:"primaryKey;column:id"`
	Tema           string  `json:"tema" gorm:"column:tema;not null;uniqueIndex"`
	UsuarioWindows *string `json:"usuario_windows" gorm:"column:usuario_windows"`
	FocalNome      *string `json:"focal_nome" gorm:"column:focal_nome"`
	Glossario      *string `json:"glossario" gorm:"column:glossario;type:text"`
}

func (Tema) TableName() string {
	return "temas_glossario"
}
