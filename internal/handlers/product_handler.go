package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Dias221467/Storefront/internal/models"
	"github.com/Dias221467/Storefront/internal/services"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// AssetsURLPrefix is where the static product image directory is served.
const AssetsURLPrefix = "/product/ProductAssets/"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type ProductHandler struct {
	Service   *services.ProductService
	AssetsDir string
}

func NewProductHandler(service *services.ProductService, assetsDir string) *ProductHandler {
	return &ProductHandler{
		Service:   service,
		AssetsDir: assetsDir,
	}
}

// GetProductsHandler lists the catalog, optionally filtered by ?category=.
func (h *ProductHandler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.GetProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		logrus.WithError(err).Error("Failed to list products")
		writeError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.GetProduct(r.Context(), mux.Vars(r)["id"])
	switch {
	case errors.Is(err, services.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	case errors.Is(err, services.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) AddProductHandler(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeBody(r, &product); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := h.Service.CreateProduct(r.Context(), &product)
	if errors.Is(err, services.ErrInvalidProduct) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logrus.WithError(err).Error("Failed to create product")
		writeError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	logrus.WithField("productID", created.ID.Hex()).Info("Product created")
	writeJSON(w, http.StatusCreated, created)
}

// UploadImageHandler stores an image in the assets directory and records its
// public path on the product.
func (h *ProductHandler) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	// max size: 10MB
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "File too big or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file in request")
		return
	}
	defer file.Close()

	ext, ok := allowedImageTypes[strings.ToLower(header.Header.Get("Content-Type"))]
	if !ok {
		writeError(w, http.StatusBadRequest, "Only JPEG, PNG and WebP images are allowed")
		return
	}

	if err := os.MkdirAll(h.AssetsDir, os.ModePerm); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create assets folder")
		return
	}

	fileName := uuid.NewString() + ext
	savePath := filepath.Join(h.AssetsDir, fileName)
	out, err := os.Create(savePath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write file")
		return
	}

	imageURL := path.Join(AssetsURLPrefix, fileName)
	updated, err := h.Service.AddImage(r.Context(), productID, imageURL)
	if err != nil {
		_ = os.Remove(savePath)
		if errors.Is(err, services.ErrProductNotFound) || errors.Is(err, services.ErrInvalidID) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		logrus.WithError(err).Error("Failed to attach product image")
		writeError(w, http.StatusInternalServerError, "Failed to update product with image")
		return
	}

	logrus.WithFields(logrus.Fields{
		"productID": productID,
		"imageURL":  imageURL,
	}).Info("Product image uploaded")
	writeJSON(w, http.StatusOK, updated)
}
