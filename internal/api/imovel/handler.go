package imovel

import (
	"errors"
	"mime/multipart"
	"net/http"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/respond"
	"imobiliaria/internal/pkg/storage"
)

// multipartMemory é quanto do formulário fica em memória antes de ir para arquivo temporário.
const multipartMemory = 8 << 20

// Uploader grava e remove as fotos enviadas no campo "fotos".
type Uploader interface {
	SaveAll(files []*multipart.FileHeader) ([]string, error)
	RemoveAll(names []string) error
	MaxRequestSize() int64
}

// Handler agrupa os endpoints de imóveis.
type Handler struct {
	Service domain.ImovelService
	Files   Uploader
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc domain.ImovelService, files Uploader, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Files:   files,
		Logger:  log,
	}
}

// ListImoveisHandler lida com GET /imoveis.
// @Summary Lista os imóveis
// @Description Sem filtros devolve todos os imóveis.
// @Tags imoveis
// @Produce json
// @Param tipoImovel query string false "casa, apartamento ou terreno"
// @Param tipo query string false "venda ou aluguel"
// @Param cidade query string false "Cidade (sem diferenciar maiúsculas)"
// @Param valorMin query number false "Valor mínimo"
// @Param valorMax query number false "Valor máximo"
// @Success 200 {array} domain.Imovel
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Router /imoveis [get]
func (h *Handler) ListImoveisHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	imoveis, err := h.Service.ListImoveis(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, imoveis)
}

// DashboardHandler lida com GET /imoveis/dashboard.
// @Summary Agregados do painel administrativo
// @Tags imoveis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Dashboard
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 403 {object} domain.ErrorResponse "Requer admin"
// @Router /imoveis/dashboard [get]
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Service.Dashboard(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, dashboard)
}

// GetImovelHandler lida com GET /imoveis/{id}.
// @Summary Busca um imóvel por ID
// @Tags imoveis
// @Produce json
// @Param id path string true "ID do imóvel"
// @Success 200 {object} domain.Imovel
// @Failure 404 {object} domain.ErrorResponse "Imóvel não encontrado"
// @Router /imoveis/{id} [get]
func (h *Handler) GetImovelHandler(w http.ResponseWriter, r *http.Request) {
	imovel, err := h.Service.GetImovelByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, imovel)
}

// CreateImovelHandler lida com POST /imoveis.
// @Summary Cria um imóvel
// @Description Campos escalares + arquivos no campo "fotos" (até 10 imagens jpg/png/gif, 5MB cada).
// @Tags imoveis
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param titulo formData string false "Título"
// @Param valor formData number false "Valor"
// @Param tipo formData string false "venda ou aluguel"
// @Param tipoImovel formData string false "casa, apartamento ou terreno"
// @Param estadoImovel formData string false "novo ou semi-novo"
// @Param aceitaFinanciamento formData boolean false "Aceita financiamento"
// @Param fotos formData file false "Fotos"
// @Success 201 {object} domain.Imovel
// @Failure 400 {object} domain.ErrorResponse "Dados ou arquivos inválidos"
// @Failure 403 {object} domain.ErrorResponse "Requer admin"
// @Router /imoveis [post]
func (h *Handler) CreateImovelHandler(w http.ResponseWriter, r *http.Request) {
	input, fotos, err := h.readForm(w, r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateImovel(r.Context(), input, fotos)
	if err != nil {
		h.discard(fotos)
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusCreated, created)
}

// UpdateImovelHandler lida com PUT /imoveis/{id}.
// Novas fotos são anexadas às existentes; campos omitidos mantêm o valor gravado.
// @Summary Atualiza um imóvel
// @Tags imoveis
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do imóvel"
// @Param fotos formData file false "Novas fotos"
// @Success 200 {object} domain.Imovel
// @Failure 400 {object} domain.ErrorResponse "Dados ou arquivos inválidos"
// @Failure 404 {object} domain.ErrorResponse "Imóvel não encontrado"
// @Router /imoveis/{id} [put]
func (h *Handler) UpdateImovelHandler(w http.ResponseWriter, r *http.Request) {
	input, fotos, err := h.readForm(w, r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateImovel(r.Context(), r.PathValue("id"), input, fotos)
	if err != nil {
		h.discard(fotos)
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, updated)
}

// DeleteImovelHandler lida com DELETE /imoveis/{id}.
// @Summary Remove um imóvel
// @Tags imoveis
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do imóvel"
// @Success 200 {object} domain.MessageResponse
// @Failure 404 {object} domain.ErrorResponse "Imóvel não encontrado"
// @Router /imoveis/{id} [delete]
func (h *Handler) DeleteImovelHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteImovel(r.Context(), r.PathValue("id")); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, domain.MessageResponse{Message: "Imóvel removido com sucesso"})
}

// DeleteFotoHandler lida com DELETE /imoveis/{id}/fotos/{foto}.
// @Summary Remove uma foto do imóvel
// @Tags imoveis
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do imóvel"
// @Param foto path string true "Nome do arquivo"
// @Success 200 {object} domain.Imovel
// @Failure 400 {object} domain.ErrorResponse "Nome de arquivo inválido"
// @Failure 404 {object} domain.ErrorResponse "Imóvel não encontrado"
// @Router /imoveis/{id}/fotos/{foto} [delete]
func (h *Handler) DeleteFotoHandler(w http.ResponseWriter, r *http.Request) {
	imovel, err := h.Service.DeleteFoto(r.Context(), r.PathValue("id"), r.PathValue("foto"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, imovel)
}

// readForm valida os campos antes de gravar qualquer arquivo.
func (h *Handler) readForm(w http.ResponseWriter, r *http.Request) (domain.ImovelInput, []string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Files.MaxRequestSize())

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.ImovelInput{}, nil, apperror.NewValidationError("Requisição excede o tamanho máximo permitido para upload.")
		}
		return domain.ImovelInput{}, nil, apperror.NewValidationError("Formulário inválido.")
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	input, err := parseImovelForm(r.PostForm)
	if err != nil {
		return domain.ImovelInput{}, nil, err
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File[storage.FieldName]
	}

	names, err := h.Files.SaveAll(files)
	if err != nil {
		return domain.ImovelInput{}, nil, err
	}
	return input, names, nil
}

func (h *Handler) discard(names []string) {
	if len(names) == 0 {
		return
	}
	if err := h.Files.RemoveAll(names); err != nil {
		h.Logger.Warn("Falha ao remover fotos de requisição rejeitada.", map[string]interface{}{
			"fotos": names,
			"error": err.Error(),
		})
	}
}
