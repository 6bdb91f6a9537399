package entities

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleFocal       Role = "focal"
	RoleColaborador Role = "colaborador"
)

// User é pré-cadastrado fora deste sistema; aqui só é lido.
type User struct {
	ID        int64      `json:"id" gorm:"primaryKey;column:id"`
	Name      string     `json:"name" gorm:"column:name;not null"`
	Role      Role       `json:"role" gorm:"column:role;not null;default:'colaborador'"`
	CreatedAt *time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "usuarios_demanda"
}

type Permissions struct {
	CanExport      bool `json:"canExport"`
	CanManageUsers bool `json:"canManageUsers"`
	CanViewAll     bool `json:"canViewAll"`
	CanEdit        bool `json:"canEdit"`
}

var rolePermissions = map[Role]Permissions{
	RoleAdmin: {CanExport: true, CanManageUsers: true, CanViewAll: true, CanEdit: true},
	RoleFocal: {CanExport: true, CanManageUsers: false, CanViewAll: true, CanEdit: true},
}

// PermissionsFor mapeia um papel para o conjunto fixo de capacidades.
// Papéis desconhecidos (incluindo colaborador) não recebem nenhuma.
func PermissionsFor(role Role) Permissions {
	return rolePermissions[role]
}

// CurrentUser é a identidade resolvida para o chamador.
type CurrentUser struct {
	User    string `json:"user"`
	Role    Role   `json:"role"`
	Source  string `json:"source"`
	Message string `json:"message,omitempty"`
}
