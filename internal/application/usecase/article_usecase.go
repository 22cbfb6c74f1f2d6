package usecase

import (
	"fmt"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// ArticleUseCase consultas y ediciones administrativas de artículos. La
// creación manual está deshabilitada (el alta pasa por el aprovisionamiento)
// y la cantidad nunca se edita por aquí.
type ArticleUseCase struct {
	articleRepo repository.ArticleRepository
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(articleRepo repository.ArticleRepository) *ArticleUseCase {
	return &ArticleUseCase{articleRepo: articleRepo}
}

// List lista artículos según el rol: el admin ve todo, un gerente solo su
// tienda (nada si no tiene tienda asignada).
func (uc *ArticleUseCase) List(actor entity.Actor) ([]dto.ArticleResponse, error) {
	var (
		articles []*entity.Article
		err      error
	)
	if actor.IsAdmin() {
		articles, err = uc.articleRepo.ListAll()
	} else {
		if actor.StoreID == "" {
			return []dto.ArticleResponse{}, nil
		}
		articles, err = uc.articleRepo.ListByStore(actor.StoreID)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		items = append(items, *toArticleResponse(a))
	}
	return items, nil
}

// Update edita los precios de un artículo validando que el precio de venta
// resultante supere al de compra. Devuelve nil si el artículo no existe.
func (uc *ArticleUseCase) Update(id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	if in.PurchasePrice == nil && in.SalePrice == nil {
		return nil, fmt.Errorf("%w: datos de actualización vacíos", domain.ErrInvalidInput)
	}
	article, err := uc.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, nil
	}
	purchase := article.PurchasePrice
	sale := article.SalePrice
	if in.PurchasePrice != nil {
		purchase = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		sale = *in.SalePrice
	}
	if purchase.IsNegative() {
		return nil, fmt.Errorf("%w: el precio de compra no puede ser negativo", domain.ErrValidation)
	}
	if sale.LessThanOrEqual(purchase) {
		return nil, fmt.Errorf("%w: el precio de venta debe ser superior al de compra", domain.ErrValidation)
	}
	article.PurchasePrice = purchase
	article.SalePrice = sale
	article.UpdatedAt = time.Now()
	if err := uc.articleRepo.Save(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// Delete elimina un artículo solo si su stock es cero.
func (uc *ArticleUseCase) Delete(id string) error {
	article, err := uc.articleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if article == nil {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
	}
	if article.Quantity > 0 {
		return fmt.Errorf("%w: el artículo aún tiene %d unidades en stock", domain.ErrConflict, article.Quantity)
	}
	return uc.articleRepo.Delete(id)
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:            a.ID,
		ProductID:     a.ProductID,
		StoreID:       a.StoreID,
		Name:          a.Name,
		PurchasePrice: a.PurchasePrice,
		SalePrice:     a.SalePrice,
		Quantity:      a.Quantity,
		UpdatedAt:     a.UpdatedAt,
	}
}
