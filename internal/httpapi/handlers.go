package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/todo"
)

const (
	todosPrefix = "/api/todos/"
	finishedID  = "finished"
)

var errTrailingData = errors.New("unexpected data after json body")

type createTodoRequest struct {
	Text any `json:"text"`
}

// Fields of the wrong JSON type are ignored rather than rejected.
type updateTodoRequest struct {
	Text      any `json:"text"`
	Completed any `json:"completed"`
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListTodos godoc
// @Summary  List todos
// @Produce  json
// @Success  200 {array} todo.Todo
// @Failure  500 {string} string "Internal error"
// @Router   /todos [get]
func (h *Handler) handleListTodos(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// handleCreateTodo godoc
// @Summary  Create a todo
// @Accept   json
// @Produce  json
// @Param    body body createTodoRequest true "todo text"
// @Success  200 {object} todo.Todo
// @Failure  400 {string} string "Missing text"
// @Router   /todos [post]
func (h *Handler) handleCreateTodo(c *gin.Context) {
	var req createTodoRequest
	if err := bindJSON(c, &req); err != nil {
		c.String(http.StatusBadRequest, "Invalid JSON")
		return
	}

	text, _ := req.Text.(string)
	item, err := h.svc.Create(c.Request.Context(), text)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// handleUpdateTodo godoc
// @Summary  Update a todo's text and/or completion flag
// @Accept   json
// @Produce  json
// @Param    id   path string true "todo id"
// @Param    body body updateTodoRequest true "fields to change"
// @Success  200 {object} todo.Todo
// @Failure  404 {string} string "Not found"
// @Router   /todos/{id} [put]
func (h *Handler) handleUpdateTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		h.handleFallback(c)
		return
	}

	var req updateTodoRequest
	if err := bindJSON(c, &req); err != nil {
		c.String(http.StatusBadRequest, "Invalid JSON")
		return
	}

	var patch todo.Patch
	if text, ok := req.Text.(string); ok {
		patch.Text = &text
	}
	if completed, ok := req.Completed.(bool); ok {
		patch.Completed = &completed
	}

	item, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// handleDeleteTodo godoc
// @Summary  Delete a todo, or every completed todo when id is "finished"
// @Produce  plain
// @Param    id path string true "todo id or finished"
// @Success  200 {string} string "Deleted"
// @Router   /todos/{id} [delete]
func (h *Handler) handleDeleteTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		h.handleFallback(c)
		return
	}

	// The bulk route shares the id route's shape and must win over it.
	if id == finishedID {
		if err := h.svc.DeleteFinished(c.Request.Context()); err != nil {
			h.writeServiceError(c, err)
			return
		}
		c.String(http.StatusOK, "Deleted finished")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.String(http.StatusOK, "Deleted")
}

func (h *Handler) handleFallback(c *gin.Context) {
	if h.assets == nil {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	// gin presets 404 on unmatched routes; handlers that write without
	// calling WriteHeader expect the net/http default.
	c.Status(http.StatusOK)
	h.assets.ServeHTTP(c.Writer, c.Request)
}

// todoID returns everything after /api/todos/ in the path as the client
// sent it, percent-escapes included. An empty remainder is not a todo route.
func todoID(c *gin.Context) (string, bool) {
	id, ok := strings.CutPrefix(c.Request.URL.EscapedPath(), todosPrefix)
	return id, ok && id != ""
}

// bindJSON decodes the body into v. The body must hold exactly one JSON
// value.
func bindJSON(c *gin.Context, v any) error {
	if c.Request.Body == nil {
		return io.ErrUnexpectedEOF
	}
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	if errors.Is(err, todo.ErrMissingText) {
		c.String(http.StatusBadRequest, "Missing text")
		return
	}
	if errors.Is(err, todo.ErrNotFound) {
		c.String(http.StatusNotFound, "Not found")
		return
	}

	h.log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("internal error")
	c.String(http.StatusInternalServerError, "Internal error")
}
