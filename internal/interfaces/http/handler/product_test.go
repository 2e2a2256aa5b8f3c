package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_Create(t *testing.T) {
	t.Run("creates a product", func(t *testing.T) {
		engine, _, _ := setupAPI(t)

		w := doJSON(engine, http.MethodPost, "/api/v1/products", gin.H{
			"name":        "Caderno",
			"quantity":    10,
			"price":       "19.90",
			"description": "200 folhas",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data struct {
				Name           string `json:"name"`
				Quantity       int    `json:"quantity"`
				Price          string `json:"price"`
				InventoryValue string `json:"inventory_value"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Caderno", resp.Data.Name)
		assert.Equal(t, "19.9", resp.Data.Price)
		assert.Equal(t, "199", resp.Data.InventoryValue)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		engine, _, _ := setupAPI(t)

		w := doJSON(engine, http.MethodPost, "/api/v1/products", gin.H{
			"quantity": 10,
			"price":    "19.90",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		engine, _, _ := setupAPI(t)

		w := doJSON(engine, http.MethodPost, "/api/v1/products", gin.H{
			"name":  "Caderno",
			"price": "-5",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Update(t *testing.T) {
	engine, products, _ := setupAPI(t)
	product := seedProduct(t, products, "Caderno", 10, 19.90)

	w := doJSON(engine, http.MethodPut, "/api/v1/products/"+product.ID.String(), gin.H{
		"price": "25.00",
	})

	require.Equal(t, http.StatusOK, w.Code)
	stored, err := products.FindByID(t.Context(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "25", stored.Price.String())
	assert.Equal(t, "Caderno", stored.Name)
	assert.Equal(t, 10, stored.Quantity)
}

func TestProductHandler_Delete(t *testing.T) {
	t.Run("removes product and its sales", func(t *testing.T) {
		engine, products, salesRepo := setupAPI(t)
		product := seedProduct(t, products, "Caderno", 10, 19.90)

		w := doJSON(engine, http.MethodPost, "/api/v1/sales", gin.H{
			"product_id": product.ID.String(),
			"quantity":   2,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(engine, http.MethodDelete, "/api/v1/products/"+product.ID.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		_, err := products.FindByID(t.Context(), product.ID)
		assert.Error(t, err)
		remaining, _ := salesRepo.FindByProductID(t.Context(), product.ID)
		assert.Empty(t, remaining)
	})

	t.Run("unknown product yields 404", func(t *testing.T) {
		engine, _, _ := setupAPI(t)

		w := doJSON(engine, http.MethodDelete, "/api/v1/products/4b4ee1ec-0c37-4fb4-9fae-288f4f9f68e6", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id yields 400", func(t *testing.T) {
		engine, _, _ := setupAPI(t)

		w := doJSON(engine, http.MethodDelete, "/api/v1/products/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Search(t *testing.T) {
	engine, products, _ := setupAPI(t)
	seedProduct(t, products, "Caderno", 10, 19.90)
	seedProduct(t, products, "Cadeado", 4, 8.50)
	seedProduct(t, products, "Borracha", 7, 2.00)

	w := doJSON(engine, http.MethodGet, "/api/v1/products/search?q=cad", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Cadeado", resp.Data[0].Name)
	assert.Equal(t, "Caderno", resp.Data[1].Name)
}

func TestProductHandler_InventoryReport(t *testing.T) {
	engine, products, _ := setupAPI(t)
	seedProduct(t, products, "Caderno", 10, 19.90)
	seedProduct(t, products, "Borracha", 5, 2.00)

	w := doJSON(engine, http.MethodGet, "/api/v1/products/inventory-report", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			ProductCount int64  `json:"product_count"`
			TotalValue   string `json:"total_value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.ProductCount)
	assert.Equal(t, "209", resp.Data.TotalValue)
}

func TestProductHandler_StockBuckets(t *testing.T) {
	engine, products, _ := setupAPI(t)
	seedProduct(t, products, "Borracha", 0, 2.00)
	seedProduct(t, products, "Caneta", 2, 3.00)
	seedProduct(t, products, "Apontador", 2, 1.50)
	seedProduct(t, products, "Caderno", 10, 19.90)

	w := doJSON(engine, http.MethodGet, "/api/v1/products/stock-buckets", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []struct {
			Quantity int `json:"quantity"`
			Products []struct {
				Name string `json:"name"`
			} `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 4)

	assert.Equal(t, 0, resp.Data[0].Quantity)
	require.Len(t, resp.Data[0].Products, 1)
	assert.Equal(t, "Borracha", resp.Data[0].Products[0].Name)

	assert.Empty(t, resp.Data[1].Products)

	// bucket 2 ordered by name
	require.Len(t, resp.Data[2].Products, 2)
	assert.Equal(t, "Apontador", resp.Data[2].Products[0].Name)
	assert.Equal(t, "Caneta", resp.Data[2].Products[1].Name)

	// products above the threshold never appear
	assert.Empty(t, resp.Data[3].Products)
}

func TestProductHandler_List(t *testing.T) {
	engine, products, _ := setupAPI(t)
	seedProduct(t, products, "Caderno", 10, 19.90)
	seedProduct(t, products, "Borracha", 5, 2.00)

	w := doJSON(engine, http.MethodGet, "/api/v1/products?search=cad", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Items []struct {
				Name string `json:"name"`
			} `json:"items"`
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "Caderno", resp.Data.Items[0].Name)
}
