package usecases

import "strings"

// Identity reúne as fontes de onde o usuário Windows do chamador pode vir.
type Identity struct {
	ForwardedUser   string // x-forwarded-user
	ClientPrincipal string // x-ms-client-principal-name
	EnvironmentUser string // USERNAME do processo
}

// Detect devolve o primeiro nome disponível (cabeçalhos antes do ambiente), sem o domínio.
func (i Identity) Detect() string {
	for _, candidate := range []string{i.ForwardedUser, i.ClientPrincipal, i.EnvironmentUser} {
		if name := stripDomain(candidate); name != "" {
			return name
		}
	}
	return ""
}

// DOMINIO\usuario -> usuario
func stripDomain(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}
