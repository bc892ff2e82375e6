package httpserver

import (
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cartoolsbd/storefront/internal/service"
)

// ProductsHandler is the admin CRUD surface. Create and Update take
// multipart forms so the image travels with the product fields.
type ProductsHandler struct {
	Svc *service.ProductsService
}

func (h *ProductsHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.Svc.List(c.Request().Context(), c.QueryParam("q"), page, size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func productInput(c echo.Context) service.ProductInput {
	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	return service.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Category:    c.FormValue("category"),
	}
}

// imageFile opens the optional "image" form file. A form without one
// yields a nil reader, which Create treats as a missing image and Update
// treats as "keep the current one".
func imageFile(c echo.Context) (string, io.ReadCloser, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No file part, or not a multipart form at all.
		return "", nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, f, nil
}

func (h *ProductsHandler) Create(c echo.Context) error {
	name, img, err := imageFile(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	if img != nil {
		defer img.Close()
	}

	var reader io.Reader
	if img != nil {
		reader = img
	}

	p, err := h.Svc.Create(c.Request().Context(), productInput(c), name, reader)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductsHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	name, img, err := imageFile(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	if img != nil {
		defer img.Close()
	}

	var reader io.Reader
	if img != nil {
		reader = img
	}

	p, err := h.Svc.Update(c.Request().Context(), id, productInput(c), name, reader)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
