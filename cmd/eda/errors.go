package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/manipulados-eda/infrastructure/export"
	"github.com/vfg2006/manipulados-eda/infrastructure/integrator/anvisa"
	"github.com/vfg2006/manipulados-eda/internal/usecases/aggregating"
	"github.com/vfg2006/manipulados-eda/internal/usecases/animating"
	"github.com/vfg2006/manipulados-eda/internal/usecases/dating"
	"github.com/vfg2006/manipulados-eda/internal/usecases/filtering"
	"github.com/vfg2006/manipulados-eda/internal/usecases/loading"
	"github.com/vfg2006/manipulados-eda/internal/usecases/rendering"
	"github.com/vfg2006/manipulados-eda/internal/usecases/visualizing"
	"github.com/vfg2006/manipulados-eda/pkg/cliErrors"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

// errorCodes associa os erros dos serviços aos códigos da linha de comando.
// A primeira correspondência vence.
var errorCodes = []struct {
	err  error
	code string
}{
	{dating.ErrDateTooShort, cliErrors.ErrInvalidDate},
	{dating.ErrYearOutOfRange, cliErrors.ErrInvalidDate},
	{dating.ErrMonthOutOfRange, cliErrors.ErrInvalidDate},
	{dating.ErrAfterCoverage, cliErrors.ErrInvalidDate},
	{dating.ErrEndBeforeStart, cliErrors.ErrInvalidDate},
	{loading.ErrInvalidRange, cliErrors.ErrInvalidDate},
	{anvisa.ErrInvalidRange, cliErrors.ErrInvalidDate},
	{animating.ErrInvalidYears, cliErrors.ErrInvalidDate},

	{filtering.ErrInvalidColumn, cliErrors.ErrInvalidColumn},
	{filtering.ErrInvalidExpression, cliErrors.ErrInvalidColumn},
	{filtering.ErrInvalidTable, cliErrors.ErrInvalidColumn},
	{filtering.ErrInvalidTargets, cliErrors.ErrInvalidColumn},
	{loading.ErrInvalidColumnFilter, cliErrors.ErrInvalidColumn},

	{filtering.ErrUnknownColumn, cliErrors.ErrMissingColumn},
	{aggregating.ErrMissingColumn, cliErrors.ErrMissingColumn},
	{aggregating.ErrNonNumericValue, cliErrors.ErrInvalidValue},
	{aggregating.ErrInvalidMonth, cliErrors.ErrInvalidValue},

	{loading.ErrNoMonthLoaded, cliErrors.ErrNoData},
	{visualizing.ErrNoFrameSaved, cliErrors.ErrNoData},
	{animating.ErrNoFrames, cliErrors.ErrNoData},
	{animating.ErrFrameNotFound, cliErrors.ErrNoData},
	{rendering.ErrEmptySeries, cliErrors.ErrNoData},

	{export.ErrInvalidPath, cliErrors.ErrInvalidOutput},
	{anvisa.ErrInvalidOutputFile, cliErrors.ErrInvalidOutput},
	{animating.ErrInvalidOutput, cliErrors.ErrInvalidOutput},
	{export.ErrTooManyRows, cliErrors.ErrWriteOutput},
	{rendering.ErrSaveFrame, cliErrors.ErrWriteOutput},

	{anvisa.ErrNothingDownloaded, cliErrors.ErrExternalService},

	{errInvalidArgument, cliErrors.ErrInvalidRequest},
}

// classify devolve o código do primeiro erro conhecido na cadeia
func classify(err error) string {
	for _, entry := range errorCodes {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return cliErrors.ErrInternal
}

// errorDetails expõe o contexto dos erros tipados
func errorDetails(err error) any {
	var dateErr *dating.DateError
	if errors.As(err, &dateErr) {
		return map[string]string{"side": string(dateErr.Side), "value": dateErr.Value}
	}

	var cellErr *aggregating.CellError
	if errors.As(err, &cellErr) {
		return map[string]any{"row": cellErr.Row, "column": cellErr.Column, "value": cellErr.Value}
	}

	return nil
}

// fail registra o erro e escreve o código padronizado em stderr
func (a *application) fail(err error) int {
	code := classify(err)
	log.L.WithError(err).WithField("code", code).Debug("Comando finalizado com erro")
	return cliErrors.WriteError(a.stderr, code, err.Error(), errorDetails(err))
}

// exactArgs marca erros de quantidade de argumentos como entrada inválida
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errInvalidArgument, err)
		}
		return nil
	}
}

func flagError(_ *cobra.Command, err error) error {
	return fmt.Errorf("%w: %w", errInvalidArgument, err)
}
