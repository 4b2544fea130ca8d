package imovelrepo_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/cache"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/repository/imovelrepo"
)

const imovelID = "0b7e3a52-9d1c-4c55-8f0e-6a7b8c9d0e1f"

var columns = []string{
	"id", "titulo", "descricao", "valor", "tipo", "tipo_imovel", "estado_imovel", "aceita_financiamento",
	"fotos", "endereco", "cidade", "estado", "cep", "area", "quartos", "banheiros", "vagas_garagem",
	"created_at", "updated_at",
}

type fixture struct {
	repo *imovelrepo.ImovelRepository
	mock sqlmock.Sqlmock
	mr   *miniredis.Miniredis
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := cache.NewRedisClient(mr.Addr())
	t.Cleanup(func() { client.Close() })

	repo := imovelrepo.NewImovelRepository(db, client, time.Second, time.Minute, logger.NewLogger("error"))
	return fixture{repo: repo, mock: mock, mr: mr}
}

func imovelRow(fotos string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(columns).AddRow(
		imovelID, "Casa no centro", "Ampla", "350000.00", "venda", "casa", "novo", true,
		fotos, "Rua A, 10", "Curitiba", "PR", "80000-000", "120.50", 3, 2, 1, now, now,
	)
}

func TestSave(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO imoveis")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := f.repo.Save(context.Background(), domain.Imovel{Titulo: "Casa", TipoImovel: domain.TipoCasa})

	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, []string{}, saved.Fotos)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestFindByID_ScansAndCaches(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta("FROM imoveis WHERE id = $1")).
		WithArgs(imovelID).
		WillReturnRows(imovelRow("{fotos-1-a.png,fotos-2-b.png}"))

	im, err := f.repo.FindByID(context.Background(), imovelID)

	require.NoError(t, err)
	require.NotNil(t, im.Valor)
	assert.Equal(t, 350000.0, *im.Valor)
	assert.Equal(t, domain.TipoCasa, im.TipoImovel)
	assert.Equal(t, domain.EstadoNovo, im.EstadoImovel)
	assert.Equal(t, []string{"fotos-1-a.png", "fotos-2-b.png"}, im.Fotos)
	assert.Equal(t, 120.5, im.Area)
	assert.True(t, f.mr.Exists("imovel:"+imovelID))

	// Segunda leitura vem do cache, sem nova query
	again, err := f.repo.FindByID(context.Background(), imovelID)
	require.NoError(t, err)
	assert.Equal(t, im.Fotos, again.Fotos)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestFindByID_NullableColumns(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	f.mock.ExpectQuery(regexp.QuoteMeta("FROM imoveis WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			imovelID, "", "", nil, nil, nil, nil, false, "{}", "", "", "", "", "0", 0, 0, 0, now, now))

	im, err := f.repo.FindByID(context.Background(), imovelID)

	require.NoError(t, err)
	assert.Nil(t, im.Valor)
	assert.Empty(t, im.TipoImovel)
	assert.Equal(t, []string{}, im.Fotos)
}

func TestFindByID_NotFound(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta("FROM imoveis WHERE id = $1")).
		WillReturnError(sql.ErrNoRows)

	_, err := f.repo.FindByID(context.Background(), imovelID)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestFindByID_MalformedIDSkipsDB(t *testing.T) {
	f := newFixture(t)

	_, err := f.repo.FindByID(context.Background(), "123")

	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestFindByID_CacheDownFallsBackToDB(t *testing.T) {
	f := newFixture(t)
	f.mr.Close()

	f.mock.ExpectQuery(regexp.QuoteMeta("FROM imoveis WHERE id = $1")).
		WillReturnRows(imovelRow("{}"))

	im, err := f.repo.FindByID(context.Background(), imovelID)

	require.NoError(t, err)
	assert.Equal(t, imovelID, im.ID)
}

func TestFindAll_WithFilters(t *testing.T) {
	f := newFixture(t)
	min, max := 100000.0, 500000.0

	f.mock.ExpectQuery(regexp.QuoteMeta(
		"FROM imoveis WHERE tipo_imovel = $1 AND tipo = $2 AND LOWER(cidade) = LOWER($3) AND valor >= $4 AND valor <= $5 ORDER BY created_at")).
		WithArgs("casa", "venda", "curitiba", min, max).
		WillReturnRows(imovelRow("{}"))

	list, err := f.repo.FindAll(context.Background(), domain.ImovelFilter{
		TipoImovel: domain.TipoCasa, Tipo: domain.NegocioVenda, Cidade: "curitiba", ValorMin: &min, ValorMax: &max,
	})

	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFindAll_NoFilterEmptyResult(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta("FROM imoveis ORDER BY created_at")).
		WillReturnRows(sqlmock.NewRows(columns))

	list, err := f.repo.FindAll(context.Background(), domain.ImovelFilter{})

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	f := newFixture(t)
	f.mr.Set("imovel:"+imovelID, `{"id":"stale"}`)

	f.mock.ExpectExec(regexp.QuoteMeta("UPDATE imoveis SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := f.repo.Update(context.Background(), domain.Imovel{ID: imovelID, Fotos: []string{"a.png"}})

	require.NoError(t, err)
	assert.False(t, f.mr.Exists("imovel:"+imovelID))
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectExec(regexp.QuoteMeta("UPDATE imoveis SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := f.repo.Update(context.Background(), domain.Imovel{ID: imovelID})

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	f.mr.Set("imovel:"+imovelID, `{}`)

	f.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM imoveis WHERE id = $1")).
		WithArgs(imovelID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, f.repo.Delete(context.Background(), imovelID))
	assert.False(t, f.mr.Exists("imovel:"+imovelID))
}

func TestDelete_DBError(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM imoveis WHERE id = $1")).
		WillReturnError(errors.New("connection reset"))

	err := f.repo.Delete(context.Background(), imovelID)

	assert.IsType(t, &apperror.InternalError{}, err)
}
