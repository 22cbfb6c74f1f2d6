package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para tiendas con sus invariantes: una sola
// central, tipo de la central inmutable, borrado bloqueado con stock restante.
type StoreUseCase struct {
	storeRepo   repository.StoreRepository
	articleRepo repository.ArticleRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(storeRepo repository.StoreRepository, articleRepo repository.ArticleRepository) *StoreUseCase {
	return &StoreUseCase{storeRepo: storeRepo, articleRepo: articleRepo}
}

// Create crea una tienda. Solo puede existir una central en todo momento.
func (uc *StoreUseCase) Create(in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" || in.Address == "" {
		return nil, fmt.Errorf("%w: nombre y dirección son requeridos", domain.ErrInvalidInput)
	}
	storeType := in.Type
	if storeType == "" {
		storeType = entity.StoreTypeBranch
	}
	if storeType != entity.StoreTypeCentral && storeType != entity.StoreTypeBranch {
		return nil, fmt.Errorf("%w: tipo de tienda desconocido %q", domain.ErrInvalidInput, in.Type)
	}
	if storeType == entity.StoreTypeCentral {
		existing, err := uc.storeRepo.GetCentral()
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: ya existe una tienda central", domain.ErrConflict)
		}
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Type:      storeType,
		Active:    true,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.storeRepo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID. Devuelve nil si no existe.
func (uc *StoreUseCase) GetByID(id string) (*dto.StoreResponse, error) {
	store, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	return toStoreResponse(store), nil
}

// List lista las tiendas con el número de artículos de cada una.
func (uc *StoreUseCase) List() ([]dto.StoreResponse, error) {
	stores, err := uc.storeRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		count, err := uc.articleRepo.CountByStore(s.ID)
		if err != nil {
			return nil, err
		}
		s.ArticleCount = count
		items = append(items, *toStoreResponse(s))
	}
	return items, nil
}

// Update modifica una tienda. El tipo de la central actual no puede cambiar
// (es el pilar del sistema) y no puede promoverse una segunda central.
func (uc *StoreUseCase) Update(id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	if in.Type != nil && *in.Type != store.Type {
		if store.IsCentral() {
			return nil, fmt.Errorf("%w: el tipo de la tienda central no puede modificarse", domain.ErrConflict)
		}
		if *in.Type == entity.StoreTypeCentral {
			existing, err := uc.storeRepo.GetCentral()
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: ya existe una tienda central", domain.ErrConflict)
			}
		} else if *in.Type != entity.StoreTypeBranch {
			return nil, fmt.Errorf("%w: tipo de tienda desconocido %q", domain.ErrInvalidInput, *in.Type)
		}
		store.Type = *in.Type
	}
	if in.Name != nil {
		store.Name = *in.Name
	}
	if in.Address != nil {
		store.Address = *in.Address
	}
	if in.Active != nil {
		store.Active = *in.Active
	}
	if in.Latitude != nil {
		store.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		store.Longitude = *in.Longitude
	}
	store.UpdatedAt = time.Now()
	if err := uc.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// Delete elimina una tienda. La central no se elimina; una tienda con
// artículos tampoco (primero transferir su stock).
func (uc *StoreUseCase) Delete(id string) error {
	store, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("%w: tienda %s", domain.ErrNotFound, id)
	}
	if store.IsCentral() {
		return fmt.Errorf("%w: la tienda central no puede eliminarse", domain.ErrInvalidOperation)
	}
	count, err := uc.articleRepo.CountByStore(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: la tienda aún contiene %d artículo(s), transfiera el stock antes de eliminarla", domain.ErrConflict, count)
	}
	return uc.storeRepo.Delete(id)
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:           s.ID,
		Name:         s.Name,
		Address:      s.Address,
		Type:         s.Type,
		Active:       s.Active,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		ArticleCount: s.ArticleCount,
		CreatedAt:    s.CreatedAt,
	}
}
