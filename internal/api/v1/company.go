package v1

import (
	"net/http"

	"github.com/emretit/paftamobile-sub005/internal/api/dto"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/service"
	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	service service.CompanyService
	log     *logger.Logger
}

func NewCompanyHandler(service service.CompanyService, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create the issuing company profile
// @Description Create the issuing company profile
// @Tags Companies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param company body dto.CreateCompanyRequest true "Company"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCompany(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get the tenant's company profile
// @Description Get the tenant's company profile
// @Tags Companies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /companies/me [get]
func (h *CompanyHandler) GetTenantCompany(c *gin.Context) {
	resp, err := h.service.GetTenantCompany(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update the company profile
// @Description Update the company profile
// @Tags Companies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Company"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateCompany(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
