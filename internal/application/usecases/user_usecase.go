package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"github.com/kruetzmann2110/demandas/internal/domain/repositories"
	"go.uber.org/zap"
)

const (
	UndetectedUser = "usuario.padrao"

	SourceDatabase      = "database"
	SourceAdminFallback = "admin-fallback"
	SourceLocalFile     = "local-file"
	SourceDefaultUser   = "default-user"
	SourceDefaultRole   = "default-role"
	SourceUndetected    = "undetected"
)

// LocalUsers é o arquivo de autenticação local carregado na inicialização.
type LocalUsers interface {
	FindUser(name string) (entities.User, bool)
}

type UserUseCase interface {
	List(ctx context.Context) ([]entities.User, error)
	Permissions(ctx context.Context, username string) entities.Permissions
	CurrentUser(ctx context.Context, identity Identity) entities.CurrentUser
}

type UserOptions struct {
	LookupTimeout      time.Duration
	DefaultUser        string
	AdminFallbackUsers []string
}

type userUseCase struct {
	userRepo   repositories.UserRepository
	localUsers LocalUsers
	opts       UserOptions
}

func NewUserUseCase(userRepo repositories.UserRepository, localUsers LocalUsers, opts UserOptions) UserUseCase {
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = 10 * time.Second
	}
	return &userUseCase{userRepo, localUsers, opts}
}

func (uc *userUseCase) List(ctx context.Context) ([]entities.User, error) {
	return uc.userRepo.List(ctx)
}

// Permissions nunca falha: timeout, erro de banco ou usuário inexistente
// resultam no conjunto vazio de colaborador.
func (uc *userUseCase) Permissions(ctx context.Context, username string) entities.Permissions {
	user, err := uc.lookup(ctx, username)
	if err != nil {
		zap.L().Warn("❌ Erro ao buscar permissões, usando padrão colaborador",
			zap.String("username", username), zap.Error(err))
		return entities.PermissionsFor(entities.RoleColaborador)
	}
	if user == nil {
		zap.L().Debug("usuário não encontrado, usando permissões padrão colaborador", zap.String("username", username))
		return entities.PermissionsFor(entities.RoleColaborador)
	}
	return entities.PermissionsFor(user.Role)
}

// userResolver devolve ok=false para passar a vez ao próximo da cadeia.
type userResolver func(ctx context.Context, name string) (entities.CurrentUser, bool)

// CurrentUser percorre a cadeia de resolvedores; o primeiro que responder vence.
func (uc *userUseCase) CurrentUser(ctx context.Context, identity Identity) entities.CurrentUser {
	name := identity.Detect()
	if name == "" {
		return entities.CurrentUser{
			User:    UndetectedUser,
			Role:    entities.RoleColaborador,
			Source:  SourceUndetected,
			Message: "Usuário fallback - Windows não detectado",
		}
	}

	resolvers := []userResolver{
		uc.fromDatabase,
		uc.fromAdminFallback,
		uc.fromLocalFile,
		uc.fromDefaultUser,
	}
	for _, resolve := range resolvers {
		if current, ok := resolve(ctx, name); ok {
			return current
		}
	}

	zap.L().Info("⚠️ Todos os fallbacks falharam, usando role padrão", zap.String("user", name))
	return entities.CurrentUser{
		User:    name,
		Role:    entities.RoleColaborador,
		Source:  SourceDefaultRole,
		Message: "Fallback: Usuário não cadastrado, usando role padrão",
	}
}

func (uc *userUseCase) fromDatabase(ctx context.Context, name string) (entities.CurrentUser, bool) {
	user, err := uc.lookup(ctx, name)
	if err != nil {
		zap.L().Warn("❌ Erro ao buscar usuário no banco, seguindo para fallbacks", zap.String("user", name), zap.Error(err))
		return entities.CurrentUser{}, false
	}
	if user == nil {
		return entities.CurrentUser{}, false
	}
	return entities.CurrentUser{User: user.Name, Role: user.Role, Source: SourceDatabase}, true
}

func (uc *userUseCase) fromAdminFallback(_ context.Context, name string) (entities.CurrentUser, bool) {
	for _, admin := range uc.opts.AdminFallbackUsers {
		if strings.EqualFold(admin, name) {
			return entities.CurrentUser{
				User:    admin,
				Role:    entities.RoleAdmin,
				Source:  SourceAdminFallback,
				Message: "Fallback: Usuário configurado como admin",
			}, true
		}
	}
	return entities.CurrentUser{}, false
}

func (uc *userUseCase) fromLocalFile(_ context.Context, name string) (entities.CurrentUser, bool) {
	if uc.localUsers == nil {
		return entities.CurrentUser{}, false
	}
	user, ok := uc.localUsers.FindUser(name)
	if !ok {
		return entities.CurrentUser{}, false
	}
	return entities.CurrentUser{
		User:    user.Name,
		Role:    user.Role,
		Source:  SourceLocalFile,
		Message: "Fallback: Usuário encontrado no arquivo local",
	}, true
}

func (uc *userUseCase) fromDefaultUser(ctx context.Context, name string) (entities.CurrentUser, bool) {
	if uc.opts.DefaultUser == "" {
		return entities.CurrentUser{}, false
	}
	user, err := uc.lookup(ctx, uc.opts.DefaultUser)
	if err != nil || user == nil {
		return entities.CurrentUser{}, false
	}
	return entities.CurrentUser{
		User:    user.Name,
		Role:    user.Role,
		Source:  SourceDefaultUser,
		Message: "Fallback: Usuário " + name + " não encontrado, usando " + uc.opts.DefaultUser,
	}, true
}

type lookupResult struct {
	user *entities.User
	err  error
}

// lookup disputa a consulta contra o LookupTimeout; se o prazo vencer antes,
// devolve o erro do contexto sem esperar o banco.
func (uc *userUseCase) lookup(ctx context.Context, name string) (*entities.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.opts.LookupTimeout)
	defer cancel()

	done := make(chan lookupResult, 1)
	go func() {
		user, err := uc.userRepo.FindByName(ctx, name)
		done <- lookupResult{user, err}
	}()

	select {
	case res := <-done:
		return res.user, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
