package handlers

import (
	"net/http"

	"garage_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// entityRequest is a request body that converts into a domain entity.
type entityRequest[E any] interface {
	ToEntity() E
}

// CrudHandler serves list/get/create/update/delete for one resource.
type CrudHandler[E any, R entityRequest[E]] struct {
	resource string
	usecase  usecase.ICrudUseCase[E]
	present  func(E) any
	log      *logrus.Entry
}

// NewCrudHandler builds a handler. present shapes the response body and
// may be nil when the entity is already the wire shape.
func NewCrudHandler[E any, R entityRequest[E]](resource string, uc usecase.ICrudUseCase[E], present func(E) any) *CrudHandler[E, R] {
	if present == nil {
		present = func(e E) any { return e }
	}
	return &CrudHandler[E, R]{
		resource: resource,
		usecase:  uc,
		present:  present,
		log:      logrus.WithField("resource", resource),
	}
}

func (h *CrudHandler[E, R]) List(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, mapCrudError(h.resource, err))
		return
	}
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, h.present(it))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CrudHandler[E, R]) Get(c *gin.Context) {
	e, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapCrudError(h.resource, err))
		return
	}
	c.JSON(http.StatusOK, h.present(e))
}

func (h *CrudHandler[E, R]) Create(c *gin.Context) {
	var payload R
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.WithError(err).Debug("[crud][handler] invalid payload")
		writeError(c, errInvalidRequest)
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), payload.ToEntity())
	if err != nil {
		writeError(c, mapCrudError(h.resource, err))
		return
	}
	c.JSON(http.StatusCreated, h.present(created))
}

func (h *CrudHandler[E, R]) Update(c *gin.Context) {
	var payload R
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.WithError(err).Debug("[crud][handler] invalid payload")
		writeError(c, errInvalidRequest)
		return
	}

	updated, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToEntity())
	if err != nil {
		writeError(c, mapCrudError(h.resource, err))
		return
	}
	c.JSON(http.StatusOK, h.present(updated))
}

func (h *CrudHandler[E, R]) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapCrudError(h.resource, err))
		return
	}
	c.Status(http.StatusNoContent)
}
