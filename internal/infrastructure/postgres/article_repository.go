package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación PostgreSQL del stock por tienda. El nombre
// del producto se resuelve con JOIN a products en todas las lecturas.
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository crea el repositorio de artículos.
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

const articleColumns = `a.id, a.product_id, a.store_id, p.name,
	a.purchase_price, a.sale_price, a.quantity, a.created_at, a.updated_at`

func (r *ArticleRepo) Create(article *entity.Article) error {
	query := `
		INSERT INTO articles (id, product_id, store_id, purchase_price, sale_price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		article.ID, article.ProductID, article.StoreID,
		article.PurchasePrice, article.SalePrice, article.Quantity,
		article.CreatedAt, article.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el producto ya existe en esa tienda", domain.ErrConflict)
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepo) GetByID(id string) (*entity.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles a
		JOIN products p ON p.id = a.product_id
		WHERE a.id = $1`, articleColumns)
	return scanArticle(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate lee el artículo bloqueando su fila (FOR UPDATE OF a):
// serializa los decrementos concurrentes de cantidad dentro de la tx.
func (r *ArticleRepo) GetByIDForUpdate(id string) (*entity.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles a
		JOIN products p ON p.id = a.product_id
		WHERE a.id = $1
		FOR UPDATE OF a`, articleColumns)
	return scanArticle(r.q.QueryRow(context.Background(), query, id))
}

func (r *ArticleRepo) GetByProductAndStore(productID, storeID string) (*entity.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles a
		JOIN products p ON p.id = a.product_id
		WHERE a.product_id = $1 AND a.store_id = $2`, articleColumns)
	return scanArticle(r.q.QueryRow(context.Background(), query, productID, storeID))
}

func (r *ArticleRepo) GetByProductAndStoreForUpdate(productID, storeID string) (*entity.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles a
		JOIN products p ON p.id = a.product_id
		WHERE a.product_id = $1 AND a.store_id = $2
		FOR UPDATE OF a`, articleColumns)
	return scanArticle(r.q.QueryRow(context.Background(), query, productID, storeID))
}

func (r *ArticleRepo) Save(article *entity.Article) error {
	query := `
		UPDATE articles
		SET purchase_price = $2, sale_price = $3, quantity = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		article.ID, article.PurchasePrice, article.SalePrice, article.Quantity, article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ArticleRepo) ListByStore(storeID string) ([]*entity.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles a
		JOIN products p ON p.id = a.product_id
		WHERE a.store_id = $1
		ORDER BY p.name`, articleColumns)
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *ArticleRepo) ListAll() ([]*entity.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles a
		JOIN products p ON p.id = a.product_id
		ORDER BY p.name, a.store_id`, articleColumns)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *ArticleRepo) CountByStore(storeID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM articles WHERE store_id = $1`, storeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

func (r *ArticleRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(&a.ID, &a.ProductID, &a.StoreID, &a.Name,
		&a.PurchasePrice, &a.SalePrice, &a.Quantity, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return &a, nil
}

func scanArticles(rows pgx.Rows) ([]*entity.Article, error) {
	var articles []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.ProductID, &a.StoreID, &a.Name,
			&a.PurchasePrice, &a.SalePrice, &a.Quantity, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}
