package updater

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const userAgent = "Sistema-Demandas-Updater/2.0"

// client faz os GETs do atualizador com o Agent do fiber (fasthttp).
type client struct {
	timeout  time.Duration
	insecure bool
}

// HTTPError é uma resposta fora da faixa 2xx.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d em %s", e.StatusCode, e.URL)
}

func (c client) get(url string, headers map[string]string) ([]byte, error) {
	agent := fiber.Get(url)
	agent.Timeout(c.timeout).
		UserAgent(userAgent).
		MaxRedirectsCount(5).
		ConnectionClose()
	if c.insecure {
		// proxies corporativos com certificado próprio
		agent.InsecureSkipVerify()
	}
	for k, v := range headers {
		agent.Set(k, v)
	}

	if err := agent.Parse(); err != nil {
		return nil, fmt.Errorf("requisição inválida para %s: %w", url, err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("falha ao acessar %s: %w", url, errs[0])
	}
	if code < 200 || code > 299 {
		return nil, &HTTPError{URL: url, StatusCode: code}
	}
	return body, nil
}
