package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takeariz/storefront/internal/models"
	repository "github.com/takeariz/storefront/internal/repositories"
)

const productCols = "id, name, description, price, stock, discount, image_url, colors, sizes, materials, created_at, updated_at"

func productRow(p *models.Product, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "discount", "image_url", "colors", "sizes", "materials", "created_at", "updated_at"}).
		AddRow(p.ID, p.Name, p.Description, p.Price.String(), p.Stock, p.Discount.String(), p.ImageURL,
			"{black,tan}", "{small,large}", "{leather}", now, now)
}

func TestNewProductRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	assert.NotNil(t, repo, "NewProductRepo should return a non-nil repository")
}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()

	t.Run("CreateProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			product := &models.Product{
				ID:          uuid.New(),
				Name:        "Canvas Tote",
				Description: "Everyday canvas tote",
				Price:       decimal.NewFromInt(350000),
				Stock:       25,
				Discount:    decimal.Zero,
				ImageURL:    "https://cdn.example.com/tote.jpg",
				Colors:      pq.StringArray{"black", "tan"},
				Sizes:       pq.StringArray{"small", "large"},
				Materials:   pq.StringArray{"leather"},
			}
			now := time.Now()

			mock.ExpectQuery(`INSERT INTO products`).
				WithArgs(product.ID, product.Name, product.Description, product.Price, product.Stock,
					product.Discount, product.ImageURL,
					pq.Array([]string(product.Colors)), pq.Array([]string(product.Sizes)), pq.Array([]string(product.Materials))).
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			err := repo.CreateProduct(ctx, product)

			require.NoError(t, err)
			assert.WithinDuration(t, now, product.CreatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			product := &models.Product{ID: uuid.New(), Name: "Broken", Price: decimal.NewFromInt(1000)}
			dbError := errors.New("database insertion error")

			mock.ExpectQuery(`INSERT INTO products`).WillReturnError(dbError)

			err := repo.CreateProduct(ctx, product)

			require.Error(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetProductByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			product := &models.Product{
				ID:       uuid.New(),
				Name:     "Leather Sling",
				Price:    decimal.NewFromInt(420000),
				Stock:    5,
				Discount: decimal.NewFromInt(10),
			}

			mock.ExpectQuery(`SELECT ` + productCols + ` FROM products WHERE id = \$1`).
				WithArgs(product.ID).
				WillReturnRows(productRow(product, time.Now()))

			got, err := repo.GetProductByID(ctx, product.ID)

			require.NoError(t, err)
			assert.Equal(t, product.ID, got.ID)
			assert.True(t, got.Price.Equal(decimal.NewFromInt(420000)))
			assert.Equal(t, pq.StringArray{"black", "tan"}, got.Colors)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NotFound", func(t *testing.T) {
			id := uuid.New()

			mock.ExpectQuery(`SELECT ` + productCols + ` FROM products WHERE id = \$1`).
				WithArgs(id).
				WillReturnError(sql.ErrNoRows)

			_, err := repo.GetProductByID(ctx, id)

			require.ErrorIs(t, err, sql.ErrNoRows)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetProductsByIDs", func(t *testing.T) {
		first := &models.Product{ID: uuid.New(), Name: "Canvas Tote", Price: decimal.NewFromInt(350000)}
		second := &models.Product{ID: uuid.New(), Name: "Leather Sling", Price: decimal.NewFromInt(420000)}
		now := time.Now()

		rows := productRow(first, now).
			AddRow(second.ID, second.Name, second.Description, second.Price.String(), second.Stock,
				second.Discount.String(), second.ImageURL, "{black}", "{small}", "{leather}", now, now)

		mock.ExpectQuery(`SELECT ` + productCols + ` FROM products WHERE id = ANY\(\$1\)`).
			WillReturnRows(rows)

		products, err := repo.GetProductsByIDs(ctx, []uuid.UUID{first.ID, second.ID})

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, first.ID, products[0].ID)
		assert.Equal(t, second.ID, products[1].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			id := uuid.New()

			mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
				WithArgs(id).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, repo.DeleteProduct(ctx, id))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NotFound", func(t *testing.T) {
			id := uuid.New()

			mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
				WithArgs(id).
				WillReturnResult(sqlmock.NewResult(0, 0))

			err := repo.DeleteProduct(ctx, id)

			require.ErrorIs(t, err, sql.ErrNoRows)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListProducts", func(t *testing.T) {
		product := &models.Product{ID: uuid.New(), Name: "Canvas Tote", Price: decimal.NewFromInt(350000)}

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))
		mock.ExpectQuery(`SELECT ` + productCols + ` FROM products ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 10).
			WillReturnRows(productRow(product, time.Now()))

		products, total, err := repo.ListProducts(ctx, 2, 10)

		require.NoError(t, err)
		assert.Equal(t, 14, total)
		require.Len(t, products, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
