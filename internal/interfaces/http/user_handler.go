package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/usecase"
	"github.com/jhoicas/greenthread-api/internal/domain"
)

// UserHandler perfil y libreta de direcciones. Solo el propio usuario accede a sus datos.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetByID godoc
// @Summary      Perfil del usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !requireSelf(c, id) {
		return respondError(c, domain.ErrForbidden)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAddresses godoc
// @Summary      Direcciones guardadas
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {array}   dto.AddressResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/addresses [get]
func (h *UserHandler) ListAddresses(c *fiber.Ctx) error {
	id := c.Params("id")
	if !requireSelf(c, id) {
		return respondError(c, domain.ErrForbidden)
	}
	out, err := h.uc.ListAddresses(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddAddress godoc
// @Summary      Agregar dirección
// @Description  Agrega la dirección al final de la lista y devuelve la lista completa.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del usuario"
// @Param        body  body  dto.AddressRequest  true  "street, city, state, zip, type"
// @Success      201   {array}   dto.AddressResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/addresses [post]
func (h *UserHandler) AddAddress(c *fiber.Ctx) error {
	id := c.Params("id")
	if !requireSelf(c, id) {
		return respondError(c, domain.ErrForbidden)
	}
	var in dto.AddressRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddAddress(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
