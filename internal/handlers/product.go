package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/marketfair/api/internal/logging"
	authmw "github.com/marketfair/api/internal/middleware/auth"
	"github.com/marketfair/api/internal/models"
	"github.com/marketfair/api/internal/mykafka"
	"github.com/marketfair/api/internal/service/search"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	var items []models.Product
	if err := h.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		l.Error("get_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching data from the database")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Product id must be an integer.")
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found.")
		}
		l.Error("get_product_failed", "status", 500, "product_id", id, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "An error occurred on the server.")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	userID, ok := authmw.UserID(c)
	if !ok {
		l.Warn("create_product_failed", "status", 401, "reason", "no identity in context")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	var req struct {
		Name     string  `json:"name"`
		Seller   string  `json:"seller"`
		Price    float64 `json:"price"`
		ImageURL string  `json:"imageUrl"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Name, price, and imageUrl are required.")
	}
	if req.Name == "" || req.Price == 0 || req.ImageURL == "" {
		l.Warn("create_product_failed", "status", 400, "reason", "missing required fields")
		return echo.NewHTTPError(http.StatusBadRequest, "Name, price, and imageUrl are required.")
	}

	seller := req.Seller
	if seller == "" {
		seller = authmw.Email(c)
	}

	prod := models.Product{
		Name:     req.Name,
		Seller:   seller,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		UserID:   userID,
	}
	if err := h.DB.WithContext(ctx).Create(&prod).Error; err != nil {
		l.Error("create_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "An error occurred on the server.")
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_created",
		"productID": prod.ID,
		"userID":    prod.UserID,
		"name":      prod.Name,
	})
	h.index(c, &prod)

	l.Info("create_product_success", "product_id", prod.ID, "user_id", prod.UserID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) MyProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.my_products")

	userID, ok := authmw.UserID(c)
	if !ok {
		l.Warn("my_products_failed", "status", 401, "reason", "no identity in context")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	var items []models.Product
	if err := h.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		l.Error("my_products_failed", "status", 500, "user_id", userID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "An error occurred on the server.")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", "product_events", "error", err)
	}
}

func (h *ProductHandler) index(c echo.Context, prod *models.Product) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	if err := search.Index(ctx, h.ES, h.ESIndex, prod); err != nil {
		logging.FromContext(ctx).Error("es_index_failed", "product_id", prod.ID, "error", err)
	}
}
