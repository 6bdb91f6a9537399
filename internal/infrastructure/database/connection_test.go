package database

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTimezoneURL(t *testing.T) {
	dsn := withTimezone("postgres://app:secret@db:5432/demandas?sslmode=disable", "America/Sao_Paulo")

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/demandas", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "America/Sao_Paulo", u.Query().Get("TimeZone"))
}

func TestWithTimezoneKeyValue(t *testing.T) {
	dsn := withTimezone("host=db user=app dbname=demandas sslmode=disable", "America/Sao_Paulo")
	assert.Equal(t, "host=db user=app dbname=demandas sslmode=disable TimeZone=America/Sao_Paulo", dsn)
}

func TestWithTimezoneKeepsExisting(t *testing.T) {
	tests := []string{
		"postgres://app@db/demandas?timezone=UTC",
		"postgresql://app@db/demandas?TimeZone=UTC",
		"host=db dbname=demandas TimeZone=UTC",
		"host=db dbname=demandas timezone=UTC",
	}
	for _, dsn := range tests {
		t.Run(dsn, func(t *testing.T) {
			assert.Equal(t, dsn, withTimezone(dsn, "America/Sao_Paulo"))
		})
	}
}

func TestWithTimezoneEmpty(t *testing.T) {
	assert.Equal(t, "host=db", withTimezone("host=db", ""))
	assert.Equal(t, "TimeZone=UTC", withTimezone("", "UTC"))
}
