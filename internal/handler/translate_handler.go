package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lingo/backend/internal/logger"
	"lingo/backend/internal/model"
	"lingo/backend/internal/service"
)

type TranslateHandler struct {
	service service.TranslateService
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type languageResponse struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Targets []string `json:"targets,omitempty"`
}

func NewTranslateHandler(service service.TranslateService) *TranslateHandler {
	return &TranslateHandler{service: service}
}

func (h *TranslateHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/languages", h.Languages)
	g.POST("/translate", h.Translate)
}

// Languages relays the upstream language list.
// @Summary List languages
// @Description Fetch the translation languages from the configured provider. LibreTranslate bodies are relayed unchanged.
// @Tags translate
// @Produce json
// @Success 200 {array} languageResponse
// @Failure 500 {object} errorResponse
// @Router /languages [get]
func (h *TranslateHandler) Languages(c echo.Context) error {
	list, err := h.service.Languages(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, err.Error())
	}
	if len(list.Raw) > 0 {
		return c.JSONBlob(http.StatusOK, list.Raw)
	}

	resp := make([]languageResponse, 0, len(list.Languages))
	for _, l := range list.Languages {
		resp = append(resp, languageResponse{Code: l.Code, Name: l.Name, Targets: l.Targets})
	}
	return c.JSON(http.StatusOK, resp)
}

// Translate forwards one translation request upstream.
// @Summary Translate text
// @Description Forward {q, source, target} to the configured provider. No validation of language codes or text length is performed.
// @Tags translate
// @Accept json
// @Produce json
// @Param request body translateRequest true "Translation request"
// @Success 200 {object} translateResponse
// @Failure 500 {object} errorResponse
// @Router /translate [post]
func (h *TranslateHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("translate bind failed", "module", "handler", "action", "translate", "resource", "translation", "result", "failed", "error", err)
		return Error(c, http.StatusInternalServerError, "invalid request body")
	}

	res, err := h.service.Translate(c.Request().Context(), model.TranslationRequest{
		Text:           req.Q,
		SourceLanguage: req.Source,
		TargetLanguage: req.Target,
	})
	if err != nil {
		return Error(c, http.StatusInternalServerError, err.Error())
	}
	if len(res.Raw) > 0 {
		return c.JSONBlob(http.StatusOK, res.Raw)
	}
	return c.JSON(http.StatusOK, translateResponse{TranslatedText: res.TranslatedText})
}
