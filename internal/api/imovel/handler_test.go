package imovel_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"imobiliaria/internal/api/imovel"
	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/storage"
)

// MockImovelService é uma implementação mock de domain.ImovelService
type MockImovelService struct {
	mock.Mock
}

func (m *MockImovelService) CreateImovel(ctx context.Context, input domain.ImovelInput, fotos []string) (domain.Imovel, error) {
	args := m.Called(ctx, input, fotos)
	return args.Get(0).(domain.Imovel), args.Error(1)
}

func (m *MockImovelService) GetImovelByID(ctx context.Context, id string) (domain.Imovel, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Imovel), args.Error(1)
}

func (m *MockImovelService) ListImoveis(ctx context.Context, filter domain.ImovelFilter) ([]domain.Imovel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Imovel), args.Error(1)
}

func (m *MockImovelService) UpdateImovel(ctx context.Context, id string, input domain.ImovelInput, novasFotos []string) (domain.Imovel, error) {
	args := m.Called(ctx, id, input, novasFotos)
	return args.Get(0).(domain.Imovel), args.Error(1)
}

func (m *MockImovelService) DeleteFoto(ctx context.Context, id, foto string) (domain.Imovel, error) {
	args := m.Called(ctx, id, foto)
	return args.Get(0).(domain.Imovel), args.Error(1)
}

func (m *MockImovelService) DeleteImovel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImovelService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Dashboard), args.Error(1)
}

// pngBytes tem a assinatura PNG suficiente para a detecção de conteúdo.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

type upload struct {
	name    string
	content []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(storage.FieldName, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newHandler(t *testing.T) (*imovel.Handler, *MockImovelService, string) {
	t.Helper()
	dir := t.TempDir()
	files, err := storage.NewDiskStorage(dir, 3, 1024*1024)
	require.NoError(t, err)
	svc := new(MockImovelService)
	return imovel.NewHandler(svc, files, logger.NewLogger("fatal")), svc, dir
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestCreateImovelHandler_CoercesFieldsAndStoresPhotos(t *testing.T) {
	h, svc, dir := newHandler(t)
	svc.On("CreateImovel", mock.Anything,
		mock.MatchedBy(func(in domain.ImovelInput) bool {
			return in.Titulo != nil && *in.Titulo == "Casa na praia" &&
				in.Valor != nil && *in.Valor == 350000 &&
				in.Quartos != nil && *in.Quartos == 3 &&
				in.AceitaFinanciamento != nil && *in.AceitaFinanciamento &&
				in.TipoImovel != nil && *in.TipoImovel == domain.TipoCasa &&
				in.Area == nil
		}),
		mock.MatchedBy(func(fotos []string) bool {
			return len(fotos) == 1 && strings.HasPrefix(fotos[0], "fotos-") && strings.HasSuffix(fotos[0], ".png")
		}),
	).Return(domain.Imovel{ID: "i1", Titulo: "Casa na praia", Fotos: []string{"x.png"}}, nil)

	req := multipartRequest(t, http.MethodPost, "/imoveis", map[string]string{
		"titulo":              "Casa na praia",
		"valor":               "350000",
		"quartos":             "3",
		"aceitaFinanciamento": "true",
		"tipoImovel":          "casa",
		"area":                "",
	}, upload{"frente.png", pngBytes})
	rec := httptest.NewRecorder()
	h.CreateImovelHandler(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, dirEntries(t, dir), 1)
	svc.AssertExpectations(t)
}

func TestCreateImovelHandler_RejectsNonImageExtension(t *testing.T) {
	h, svc, dir := newHandler(t)

	req := multipartRequest(t, http.MethodPost, "/imoveis", map[string]string{"titulo": "Casa"},
		upload{"frente.png", pngBytes}, upload{"contrato.pdf", []byte("%PDF-1.4")})
	rec := httptest.NewRecorder()
	h.CreateImovelHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Apenas arquivos de imagem são permitidos!")
	assert.Empty(t, dirEntries(t, dir))
	svc.AssertNotCalled(t, "CreateImovel", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateImovelHandler_RejectsDisguisedContent(t *testing.T) {
	h, _, dir := newHandler(t)

	req := multipartRequest(t, http.MethodPost, "/imoveis", nil, upload{"foto.jpg", []byte("#!/bin/sh\necho oi\n")})
	rec := httptest.NewRecorder()
	h.CreateImovelHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, dirEntries(t, dir))
}

func TestCreateImovelHandler_TooManyFiles(t *testing.T) {
	h, _, dir := newHandler(t)

	req := multipartRequest(t, http.MethodPost, "/imoveis", nil,
		upload{"1.png", pngBytes}, upload{"2.png", pngBytes}, upload{"3.png", pngBytes}, upload{"4.png", pngBytes})
	rec := httptest.NewRecorder()
	h.CreateImovelHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, dirEntries(t, dir))
}

func TestCreateImovelHandler_BadNumberRejectedBeforeSavingFiles(t *testing.T) {
	h, svc, dir := newHandler(t)

	req := multipartRequest(t, http.MethodPost, "/imoveis", map[string]string{"valor": "caro"}, upload{"frente.png", pngBytes})
	rec := httptest.NewRecorder()
	h.CreateImovelHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valor deve ser um número")
	assert.Empty(t, dirEntries(t, dir))
	svc.AssertNotCalled(t, "CreateImovel", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateImovelHandler_ServiceErrorRemovesUploadedFiles(t *testing.T) {
	h, svc, dir := newHandler(t)
	svc.On("CreateImovel", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Imovel{}, apperror.NewValidationError("valor não pode ser negativo"))

	req := multipartRequest(t, http.MethodPost, "/imoveis", map[string]string{"valor": "-1"}, upload{"frente.png", pngBytes})
	rec := httptest.NewRecorder()
	h.CreateImovelHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, dirEntries(t, dir))
}

func TestUpdateImovelHandler_PassesNewPhotosAndOmittedFieldsStayNil(t *testing.T) {
	h, svc, _ := newHandler(t)
	svc.On("UpdateImovel", mock.Anything, "i1",
		mock.MatchedBy(func(in domain.ImovelInput) bool {
			return in.Titulo != nil && *in.Titulo == "Novo título" && in.Valor == nil && in.Descricao == nil
		}),
		mock.MatchedBy(func(fotos []string) bool { return len(fotos) == 2 }),
	).Return(domain.Imovel{ID: "i1", Fotos: []string{"a.png", "b.png", "c.png"}}, nil)

	req := multipartRequest(t, http.MethodPut, "/imoveis/i1", map[string]string{"titulo": "Novo título"},
		upload{"b.png", pngBytes}, upload{"c.png", pngBytes})
	req.SetPathValue("id", "i1")
	rec := httptest.NewRecorder()
	h.UpdateImovelHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestUpdateImovelHandler_NotFoundRemovesUploadedFiles(t *testing.T) {
	h, svc, dir := newHandler(t)
	svc.On("UpdateImovel", mock.Anything, "nao-existe", mock.Anything, mock.Anything).
		Return(domain.Imovel{}, apperror.NewNotFoundError("Imóvel com ID nao-existe não encontrado"))

	req := multipartRequest(t, http.MethodPut, "/imoveis/nao-existe", nil, upload{"b.png", pngBytes})
	req.SetPathValue("id", "nao-existe")
	rec := httptest.NewRecorder()
	h.UpdateImovelHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, dirEntries(t, dir))
}

func TestUpdateImovelHandler_URLEncodedBody(t *testing.T) {
	h, svc, _ := newHandler(t)
	svc.On("UpdateImovel", mock.Anything, "i1",
		mock.MatchedBy(func(in domain.ImovelInput) bool {
			return in.Cidade != nil && *in.Cidade == "Natal"
		}),
		[]string{},
	).Return(domain.Imovel{ID: "i1"}, nil)

	req := httptest.NewRequest(http.MethodPut, "/imoveis/i1", strings.NewReader("cidade=Natal"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", "i1")
	rec := httptest.NewRecorder()
	h.UpdateImovelHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestUpdateImovelHandler_NonFiniteValorIs400(t *testing.T) {
	h, svc, _ := newHandler(t)

	for _, body := range []string{"valor=NaN", "area=Inf", "valor=-Infinity"} {
		req := httptest.NewRequest(http.MethodPut, "/imoveis/i1", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetPathValue("id", "i1")
		rec := httptest.NewRecorder()
		h.UpdateImovelHandler(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	svc.AssertNotCalled(t, "UpdateImovel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteImovelHandler_Message(t *testing.T) {
	h, svc, _ := newHandler(t)
	svc.On("DeleteImovel", mock.Anything, "i1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/imoveis/i1", nil)
	req.SetPathValue("id", "i1")
	rec := httptest.NewRecorder()
	h.DeleteImovelHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Imóvel removido com sucesso"}`, rec.Body.String())
}

func TestDeleteFotoHandler(t *testing.T) {
	h, svc, _ := newHandler(t)
	svc.On("DeleteFoto", mock.Anything, "i1", "fotos-1-a.png").Return(domain.Imovel{ID: "i1", Fotos: []string{"fotos-2-b.png"}}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/imoveis/i1/fotos/fotos-1-a.png", nil)
	req.SetPathValue("id", "i1")
	req.SetPathValue("foto", "fotos-1-a.png")
	rec := httptest.NewRecorder()
	h.DeleteFotoHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body domain.Imovel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"fotos-2-b.png"}, body.Fotos)
}

func TestListImoveisHandler_Filters(t *testing.T) {
	h, svc, _ := newHandler(t)
	svc.On("ListImoveis", mock.Anything, mock.MatchedBy(func(f domain.ImovelFilter) bool {
		return f.TipoImovel == domain.TipoApartamento && f.Cidade == "Recife" &&
			f.ValorMax != nil && *f.ValorMax == 500000 && f.ValorMin == nil
	})).Return([]domain.Imovel{{ID: "i1"}}, nil)

	rec := httptest.NewRecorder()
	h.ListImoveisHandler(rec, httptest.NewRequest(http.MethodGet, "/imoveis?tipoImovel=apartamento&cidade=Recife&valorMax=500000", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestListImoveisHandler_InvalidFilterIs400(t *testing.T) {
	h, svc, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.ListImoveisHandler(rec, httptest.NewRequest(http.MethodGet, "/imoveis?tipoImovel=castelo", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListImoveis", mock.Anything, mock.Anything)
}

func TestListImoveisHandler_NonFiniteValorFilterIs400(t *testing.T) {
	h, svc, _ := newHandler(t)

	for _, target := range []string{"/imoveis?valorMin=NaN", "/imoveis?valorMax=Inf"} {
		rec := httptest.NewRecorder()
		h.ListImoveisHandler(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	svc.AssertNotCalled(t, "ListImoveis", mock.Anything, mock.Anything)
}

func TestDashboardHandler_EmptyArrays(t *testing.T) {
	h, svc, _ := newHandler(t)
	svc.On("Dashboard", mock.Anything).Return(domain.Dashboard{
		TiposImoveis:  []domain.TipoQuantidade{},
		ValoresMedios: []domain.TipoValorMedio{},
		StatusImoveis: []domain.StatusQuantidade{},
	}, nil)

	rec := httptest.NewRecorder()
	h.DashboardHandler(rec, httptest.NewRequest(http.MethodGet, "/imoveis/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tiposImoveis":[],"valoresMedios":[],"statusImoveis":[]}`, rec.Body.String())
}

func TestGetImovelHandler_NotFound(t *testing.T) {
	h, svc, _ := newHandler(t)
	svc.On("GetImovelByID", mock.Anything, "x").Return(domain.Imovel{}, apperror.NewNotFoundError("Imóvel com ID x não encontrado"))

	req := httptest.NewRequest(http.MethodGet, "/imoveis/x", nil)
	req.SetPathValue("id", "x")
	rec := httptest.NewRecorder()
	h.GetImovelHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
