package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/encarte"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ encarte.ProductService = (*ProductService)(nil)

// ProductService implements encarte.ProductService using SQLite.
type ProductService struct {
	db *DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *DB) *ProductService {
	return &ProductService{db: db}
}

// hashKey computes the xxHash of a product key as a hex string.
func hashKey(k encarte.ProductKey) string {
	d := xxhash.New()
	_, _ = d.WriteString(k.Source)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(k.Name)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.FormatInt(int64(k.Price), 10))
	return fmt.Sprintf("%016x", d.Sum64())
}

// CreateProducts stores products in one transaction. Products whose key is
// already stored are skipped. IDs and timestamps are set on inserted
// products only. Returns EINVALID, storing nothing, if any product is invalid.
func (s *ProductService) CreateProducts(ctx context.Context, products []*encarte.Product) (int, error) {
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return 0, encarte.Errorf(encarte.EINVALID, "product %d: %s", i, encarte.ErrorMessage(err))
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO products (id, source, name, name_key, price_cents, promotion, category, dedup_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC().Truncate(time.Second)
	var created int
	for _, p := range products {
		id := uuid.New().String()
		key := p.Key()
		res, err := stmt.ExecContext(ctx, id, p.Source, p.Name, key.Name, int64(p.Price),
			p.Promotion, string(p.Category), hashKey(key), now.Format(time.RFC3339))
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		p.ID = id
		p.CreatedAt = now
		created++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return created, nil
}

// FindProducts retrieves products matching the filter, cheapest first.
func (s *ProductService) FindProducts(ctx context.Context, filter encarte.ProductFilter) ([]*encarte.Product, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, name, price_cents, promotion, category, created_at FROM products WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.Search != nil {
		query.WriteString(" AND instr(name_key, ?) > 0")
		args = append(args, strings.ToLower(strings.TrimSpace(*filter.Search)))
	}
	if filter.Promotion != nil {
		query.WriteString(" AND promotion = ?")
		args = append(args, *filter.Promotion)
	}

	query.WriteString(" ORDER BY price_cents ASC, name_key ASC, source ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*encarte.Product
	for rows.Next() {
		var p encarte.Product
		var price int64
		var category, createdAt string

		if err := rows.Scan(&p.ID, &p.Source, &p.Name, &price, &p.Promotion, &category, &createdAt); err != nil {
			return nil, err
		}
		p.Price = encarte.Price(price)
		p.Category = encarte.Category(category)
		if p.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		products = append(products, &p)
	}

	return products, rows.Err()
}

// FindSources lists sources with their product counts, alphabetically.
func (s *ProductService) FindSources(ctx context.Context) ([]*encarte.SourceSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, COUNT(*) FROM products GROUP BY source ORDER BY source ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*encarte.SourceSummary
	for rows.Next() {
		var summary encarte.SourceSummary
		if err := rows.Scan(&summary.Source, &summary.Products); err != nil {
			return nil, err
		}
		sources = append(sources, &summary)
	}
	return sources, rows.Err()
}

// DeleteProductsBySource removes all products of a source.
func (s *ProductService) DeleteProductsBySource(ctx context.Context, source string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE source = ?", source)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return encarte.Errorf(encarte.ENOTFOUND, "no products for source %q", source)
	}
	return nil
}
