package anvisaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/vfg2006/manipulados-eda/internal/domain"
)

// RemoteFileName segue o padrão publicado: {prefixo}_{YYYYMM}.csv
func RemoteFileName(prefix string, month domain.YearMonth) string {
	return fmt.Sprintf("%s_%s.csv", prefix, month.String())
}

// FetchMonth copia o CSV do mês para w e devolve o número de bytes escritos
func (c *AnvisaClient) FetchMonth(ctx context.Context, month domain.YearMonth, w io.Writer) (int64, error) {
	// O portal é compartilhado; uma requisição por vez dentro do limite configurado
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("erro aguardando o limite de requisições: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Construir a URL do arquivo mensal.
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, RemoteFileName(c.remotePrefix, month))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("requisição de %s falhou com status: %s", endpoint.String(), resp.Status)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("erro ao ler o arquivo %s: %w", endpoint.String(), err)
	}

	return n, nil
}
