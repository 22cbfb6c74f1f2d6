package usecase

import (
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// MovementUseCase consultas de solo lectura sobre el ledger de movimientos.
type MovementUseCase struct {
	movRepo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(movRepo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo}
}

// List historial de movimientos, más recientes primero, con límite para no
// degradar con historiales grandes.
func (uc *MovementUseCase) List(filter repository.MovementFilter) ([]dto.MovementResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 200
	}
	movements, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *ToMovementResponse(m))
	}
	return items, nil
}

// ToMovementResponse mapea un movimiento del ledger a su DTO.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	lines := make([]dto.MovementLineResponse, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, dto.MovementLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
		})
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		Kind:          m.Kind,
		Details:       m.Details,
		SourceStoreID: m.SourceStoreID,
		TargetStoreID: m.TargetStoreID,
		SupplierID:    m.SupplierID,
		Lines:         lines,
		OperatorID:    m.OperatorID,
		Cancelled:     m.Cancelled,
		CreatedAt:     m.CreatedAt,
	}
}
