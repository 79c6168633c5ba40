package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/core/ports"
)

type CensusUseCase struct {
	storage  ports.ObjectStorage
	key      string
	parser   ports.CensusParser
	reloader ports.CensusReloader
	bus      ports.ReloadBus
}

// NewCensusUseCase wires workbook replacement. bus may be nil, in which case
// reloads only affect the current process.
func NewCensusUseCase(
	storage ports.ObjectStorage,
	key string,
	parser ports.CensusParser,
	reloader ports.CensusReloader,
	bus ports.ReloadBus,
) *CensusUseCase {
	return &CensusUseCase{
		storage:  storage,
		key:      key,
		parser:   parser,
		reloader: reloader,
		bus:      bus,
	}
}

// Replace validates the uploaded workbook, stores it under the configured key
// and asks every replica to reload. It returns the number of parsed districts.
func (uc *CensusUseCase) Replace(ctx context.Context, body io.Reader) (int, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return 0, fmt.Errorf("read workbook: %w", err)
	}

	records, err := uc.parser.Parse(bytes.NewReader(raw))
	if err != nil {
		return 0, domain.WrapError(domain.ErrInvalidInput, "parse workbook", err)
	}
	if len(records) == 0 {
		return 0, domain.WrapError(domain.ErrInvalidInput, "parse workbook", errors.New("workbook has no district rows"))
	}

	if err := uc.storage.Save(ctx, uc.key, bytes.NewReader(raw)); err != nil {
		return 0, fmt.Errorf("save workbook: %w", err)
	}
	if err := uc.RequestReload(ctx); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (uc *CensusUseCase) RequestReload(ctx context.Context) error {
	if uc.bus == nil {
		if _, err := uc.reloader.Reload(ctx); err != nil {
			return fmt.Errorf("reload census: %w", err)
		}
		return nil
	}
	if err := uc.bus.PublishCensusReload(ctx); err != nil {
		return fmt.Errorf("publish census reload: %w", err)
	}
	return nil
}
