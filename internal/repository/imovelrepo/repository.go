package imovelrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/cache"
	"imobiliaria/internal/pkg/logger"
)

// imovelCacheKey é a chave de cache de um imóvel por id.
const imovelCacheKey = "imovel:%s"

const imovelColumns = `id, titulo, descricao, valor, tipo, tipo_imovel, estado_imovel, aceita_financiamento,
	fotos, endereco, cidade, estado, cep, area, quartos, banheiros, vagas_garagem, created_at, updated_at`

// ImovelRepository implementa domain.ImovelRepository com PostgreSQL e cache-aside no Redis.
type ImovelRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewImovelRepository injeta as dependências de infraestrutura (DB e Cache).
func NewImovelRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ImovelRepository {
	return &ImovelRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Save persiste um novo imóvel.
func (r *ImovelRepository) Save(ctx context.Context, imovel domain.Imovel) (domain.Imovel, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	imovel.ID = uuid.NewString()
	imovel.CreatedAt = time.Now().UTC()
	imovel.UpdatedAt = imovel.CreatedAt
	if imovel.Fotos == nil {
		imovel.Fotos = []string{}
	}

	query := `INSERT INTO imoveis (` + imovelColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		imovel.ID,
		imovel.Titulo,
		imovel.Descricao,
		imovel.Valor,
		nullString(string(imovel.Tipo)),
		nullString(string(imovel.TipoImovel)),
		nullString(string(imovel.EstadoImovel)),
		imovel.AceitaFinanciamento,
		pq.Array(imovel.Fotos),
		imovel.Endereco,
		imovel.Cidade,
		imovel.Estado,
		imovel.Cep,
		imovel.Area,
		imovel.Quartos,
		imovel.Banheiros,
		imovel.VagasGaragem,
		imovel.CreatedAt,
		imovel.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir imóvel no DB.", err)
		return domain.Imovel{}, apperror.NewDBError("Erro ao criar imóvel", err)
	}

	r.logger.Info("Imóvel salvo no repositório.", map[string]interface{}{"imovel_id": imovel.ID, "fotos": len(imovel.Fotos)})
	return imovel, nil
}

// FindByID busca um imóvel pelo ID, utilizando a estratégia Cache-Aside.
func (r *ImovelRepository) FindByID(ctx context.Context, id string) (domain.Imovel, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Imovel{}, notFound(id)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(imovelCacheKey, id)

	if imovel, ok := r.fromCache(ctxTimeout, key); ok {
		return imovel, nil
	}

	query := `SELECT ` + imovelColumns + ` FROM imoveis WHERE id = $1`
	imovel, err := scanImovel(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Imovel{}, notFound(id)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar imóvel no DB.", err)
		return domain.Imovel{}, apperror.NewDBError("Erro ao buscar imóvel", err)
	}

	r.toCache(ctxTimeout, key, imovel)
	return imovel, nil
}

// FindAll lista os imóveis aplicando os filtros informados.
func (r *ImovelRepository) FindAll(ctx context.Context, filter domain.ImovelFilter) ([]domain.Imovel, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	where, args := buildFilter(filter)
	query := `SELECT ` + imovelColumns + ` FROM imoveis` + where + ` ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar imóveis no DB.", err)
		return nil, apperror.NewDBError("Erro ao listar imóveis", err)
	}
	defer rows.Close()

	imoveis := []domain.Imovel{}
	for rows.Next() {
		imovel, err := scanImovel(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear imóvel.", err)
			return nil, apperror.NewDBError("Erro ao listar imóveis", err)
		}
		imoveis = append(imoveis, imovel)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro ao listar imóveis", err)
	}

	r.logger.Debug("Imóveis listados.", map[string]interface{}{"count": len(imoveis), "filtrado": !filter.IsEmpty()})
	return imoveis, nil
}

// buildFilter monta o WHERE com placeholders posicionais.
func buildFilter(f domain.ImovelFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.TipoImovel != "" {
		add("tipo_imovel = $%d", string(f.TipoImovel))
	}
	if f.Tipo != "" {
		add("tipo = $%d", string(f.Tipo))
	}
	if f.Cidade != "" {
		add("LOWER(cidade) = LOWER($%d)", f.Cidade)
	}
	if f.ValorMin != nil {
		add("valor >= $%d", *f.ValorMin)
	}
	if f.ValorMax != nil {
		add("valor <= $%d", *f.ValorMax)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Update grava o registro completo (última escrita vence) e invalida o cache.
func (r *ImovelRepository) Update(ctx context.Context, imovel domain.Imovel) (domain.Imovel, error) {
	if _, err := uuid.Parse(imovel.ID); err != nil {
		return domain.Imovel{}, notFound(imovel.ID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	imovel.UpdatedAt = time.Now().UTC()
	if imovel.Fotos == nil {
		imovel.Fotos = []string{}
	}

	query := `UPDATE imoveis SET
		titulo = $2, descricao = $3, valor = $4, tipo = $5, tipo_imovel = $6, estado_imovel = $7,
		aceita_financiamento = $8, fotos = $9, endereco = $10, cidade = $11, estado = $12, cep = $13,
		area = $14, quartos = $15, banheiros = $16, vagas_garagem = $17, updated_at = $18
		WHERE id = $1`

	res, err := r.DB.ExecContext(ctxTimeout, query,
		imovel.ID,
		imovel.Titulo,
		imovel.Descricao,
		imovel.Valor,
		nullString(string(imovel.Tipo)),
		nullString(string(imovel.TipoImovel)),
		nullString(string(imovel.EstadoImovel)),
		imovel.AceitaFinanciamento,
		pq.Array(imovel.Fotos),
		imovel.Endereco,
		imovel.Cidade,
		imovel.Estado,
		imovel.Cep,
		imovel.Area,
		imovel.Quartos,
		imovel.Banheiros,
		imovel.VagasGaragem,
		imovel.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar imóvel no DB.", err)
		return domain.Imovel{}, apperror.NewDBError("Erro ao atualizar imóvel", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Imovel{}, apperror.NewDBError("Erro ao atualizar imóvel", err)
	}
	if affected == 0 {
		return domain.Imovel{}, notFound(imovel.ID)
	}

	r.invalidate(ctxTimeout, imovel.ID)
	r.logger.Info("Imóvel atualizado no repositório.", map[string]interface{}{"imovel_id": imovel.ID, "fotos": len(imovel.Fotos)})
	return imovel, nil
}

// Delete remove o imóvel e invalida o cache.
func (r *ImovelRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound(id)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM imoveis WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover imóvel no DB.", err)
		return apperror.NewDBError("Erro ao remover imóvel", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Erro ao remover imóvel", err)
	}
	if affected == 0 {
		return notFound(id)
	}

	r.invalidate(ctxTimeout, id)
	r.logger.Info("Imóvel removido do repositório.", map[string]interface{}{"imovel_id": id})
	return nil
}

// --- Cache ---

func (r *ImovelRepository) fromCache(ctx context.Context, key string) (domain.Imovel, bool) {
	if r.Cache == nil {
		return domain.Imovel{}, false
	}

	cached, err := r.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Falha de cache não derruba a leitura
			r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return domain.Imovel{}, false
	}

	var imovel domain.Imovel
	if err := json.Unmarshal([]byte(cached), &imovel); err != nil {
		r.logger.Warn("Entrada de cache corrompida.", map[string]interface{}{"key": key})
		return domain.Imovel{}, false
	}

	r.logger.Debug("Cache HIT.", map[string]interface{}{"key": key})
	return imovel, true
}

func (r *ImovelRepository) toCache(ctx context.Context, key string, imovel domain.Imovel) {
	if r.Cache == nil {
		return
	}
	payload, err := json.Marshal(imovel)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, payload, r.CacheTTL); err != nil {
		r.logger.Warn("Falha ao gravar no cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (r *ImovelRepository) invalidate(ctx context.Context, id string) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, fmt.Sprintf(imovelCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache do imóvel.", map[string]interface{}{"imovel_id": id, "error": err.Error()})
	}
}

// --- Helpers ---

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanImovel(row rowScanner) (domain.Imovel, error) {
	var (
		im                         domain.Imovel
		valor                      sql.NullFloat64
		tipo, tipoImovel, estadoIm sql.NullString
	)

	err := row.Scan(
		&im.ID,
		&im.Titulo,
		&im.Descricao,
		&valor,
		&tipo,
		&tipoImovel,
		&estadoIm,
		&im.AceitaFinanciamento,
		pq.Array(&im.Fotos),
		&im.Endereco,
		&im.Cidade,
		&im.Estado,
		&im.Cep,
		&im.Area,
		&im.Quartos,
		&im.Banheiros,
		&im.VagasGaragem,
		&im.CreatedAt,
		&im.UpdatedAt,
	)
	if err != nil {
		return domain.Imovel{}, err
	}

	if valor.Valid {
		v := valor.Float64
		im.Valor = &v
	}
	im.Tipo = domain.TipoNegocio(tipo.String)
	im.TipoImovel = domain.TipoImovel(tipoImovel.String)
	im.EstadoImovel = domain.EstadoImovel(estadoIm.String)
	if im.Fotos == nil {
		im.Fotos = []string{}
	}

	return im, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func notFound(id string) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Imóvel com ID %s não encontrado", id))
}
