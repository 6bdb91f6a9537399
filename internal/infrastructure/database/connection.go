package database

import (
	"net/url"
	"strings"
)

// withTimezone fixa o fuso da sessão na própria DSN: o pgx envia TimeZone
// como parâmetro de runtime em toda conexão nova do pool.
// Um TimeZone já presente na DSN prevalece.
func withTimezone(dsn, timezone string) string {
	if timezone == "" {
		return dsn
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		query := u.Query()
		for key := range query {
			if strings.EqualFold(key, "timezone") {
				return dsn
			}
		}
		query.Set("TimeZone", timezone)
		u.RawQuery = query.Encode()
		return u.String()
	}

	// formato key=value
	for _, field := range strings.Fields(dsn) {
		if strings.HasPrefix(strings.ToLower(field), "timezone=") {
			return dsn
		}
	}
	return strings.TrimSpace(dsn + " TimeZone=" + timezone)
}
