package imovelservice

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"unicode/utf8"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/logger"
)

// Limites das colunas de imoveis (NUMERIC(12,2), INTEGER e VARCHAR).
const (
	maxDecimal  = 9999999999.99
	maxContagem = math.MaxInt32
	maxTexto    = 255
	maxCep      = 20
)

// Service implementa domain.ImovelService.
type Service struct {
	repo   domain.ImovelRepository
	files  domain.FileStore
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Imóveis.
func NewService(repo domain.ImovelRepository, files domain.FileStore, logger logger.Logger) *Service {
	return &Service{repo: repo, files: files, logger: logger}
}

// CreateImovel persiste os campos informados; as fotos são exatamente os arquivos desta requisição.
func (s *Service) CreateImovel(ctx context.Context, input domain.ImovelInput, fotos []string) (domain.Imovel, error) {
	if err := validateInput(input); err != nil {
		return domain.Imovel{}, err
	}

	var imovel domain.Imovel
	input.ApplyTo(&imovel)
	imovel.Fotos = append([]string{}, fotos...)

	created, err := s.repo.Save(ctx, imovel)
	if err != nil {
		return domain.Imovel{}, err
	}

	s.logger.Info("Imóvel criado.", map[string]interface{}{"imovel_id": created.ID, "fotos": len(created.Fotos)})
	return created, nil
}

// GetImovelByID devolve o registro gravado ou NotFound.
func (s *Service) GetImovelByID(ctx context.Context, id string) (domain.Imovel, error) {
	return s.repo.FindByID(ctx, id)
}

// ListImoveis lista os imóveis; filtro vazio devolve todos.
func (s *Service) ListImoveis(ctx context.Context, filter domain.ImovelFilter) ([]domain.Imovel, error) {
	for _, v := range []*float64{filter.ValorMin, filter.ValorMax} {
		if v != nil && !finite(*v) {
			return nil, apperror.NewValidationError("Os filtros de valor devem ser números finitos.")
		}
	}
	if filter.ValorMin != nil && filter.ValorMax != nil && *filter.ValorMin > *filter.ValorMax {
		return nil, apperror.NewValidationError("valorMin não pode ser maior que valorMax.")
	}
	return s.repo.FindAll(ctx, filter)
}

// UpdateImovel mescla a atualização no registro gravado.
// Campos omitidos mantêm o valor atual e as novas fotos entram no fim da lista existente.
func (s *Service) UpdateImovel(ctx context.Context, id string, input domain.ImovelInput, novasFotos []string) (domain.Imovel, error) {
	if err := validateInput(input); err != nil {
		return domain.Imovel{}, err
	}

	imovel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Imovel{}, err
	}

	input.ApplyTo(&imovel)
	imovel.Fotos = mergeFotos(imovel.Fotos, novasFotos)

	updated, err := s.repo.Update(ctx, imovel)
	if err != nil {
		return domain.Imovel{}, err
	}

	s.logger.Info("Imóvel atualizado.", map[string]interface{}{
		"imovel_id":    id,
		"fotos_novas":  len(novasFotos),
		"fotos_totais": len(updated.Fotos),
	})
	return updated, nil
}

// mergeFotos devolve uma nova lista: existentes seguidas das novas, na ordem de envio.
func mergeFotos(existentes, novas []string) []string {
	merged := make([]string, 0, len(existentes)+len(novas))
	merged = append(merged, existentes...)
	return append(merged, novas...)
}

// DeleteFoto remove o nome da lista (igualdade exata) e apaga o arquivo.
// Nome ausente na lista não altera o registro, mas a remoção do arquivo ainda é tentada.
func (s *Service) DeleteFoto(ctx context.Context, id, foto string) (domain.Imovel, error) {
	if foto == "" || foto == "." || foto == ".." || filepath.Base(foto) != foto {
		return domain.Imovel{}, apperror.NewValidationError("Nome de arquivo inválido.")
	}

	imovel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Imovel{}, err
	}

	remaining := make([]string, 0, len(imovel.Fotos))
	for _, f := range imovel.Fotos {
		if f != foto {
			remaining = append(remaining, f)
		}
	}

	if len(remaining) != len(imovel.Fotos) {
		imovel.Fotos = remaining
		if imovel, err = s.repo.Update(ctx, imovel); err != nil {
			return domain.Imovel{}, err
		}
	} else {
		s.logger.Warn("Foto não pertence ao imóvel; lista mantida.", map[string]interface{}{"imovel_id": id, "foto": foto})
	}

	if err := s.files.Remove(foto); err != nil {
		// A lista já foi gravada; o arquivo órfão fica só no log
		s.logger.Error(fmt.Sprintf("Falha ao remover arquivo da foto %s.", foto), err)
	}

	return imovel, nil
}

// DeleteImovel remove o registro e tenta apagar os arquivos das fotos.
func (s *Service) DeleteImovel(ctx context.Context, id string) error {
	imovel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, foto := range imovel.Fotos {
		if err := s.files.Remove(foto); err != nil {
			s.logger.Error(fmt.Sprintf("Falha ao remover arquivo da foto %s.", foto), err)
		}
	}

	s.logger.Info("Imóvel removido.", map[string]interface{}{"imovel_id": id, "fotos_removidas": len(imovel.Fotos)})
	return nil
}

// Dashboard recalcula as distribuições sobre a lista completa, sem filtro.
func (s *Service) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	imoveis, err := s.repo.FindAll(ctx, domain.ImovelFilter{})
	if err != nil {
		return domain.Dashboard{}, err
	}
	return BuildDashboard(imoveis), nil
}

// validateInput aplica as regras de faixa, tamanho e enumeração antes de tocar no banco.
func validateInput(in domain.ImovelInput) error {
	decimais := []struct {
		nome     string
		valor    *float64
		negativo string
	}{
		{"valor", in.Valor, "valor não pode ser negativo."},
		{"area", in.Area, "area não pode ser negativa."},
	}
	for _, d := range decimais {
		if d.valor == nil {
			continue
		}
		v := *d.valor
		if !finite(v) {
			return apperror.NewValidationError(fmt.Sprintf("%s deve ser um número finito.", d.nome))
		}
		if v < 0 {
			return apperror.NewValidationError(d.negativo)
		}
		if v > maxDecimal {
			return apperror.NewValidationError(fmt.Sprintf("%s excede o máximo permitido.", d.nome))
		}
	}

	contagens := []struct {
		nome  string
		valor *int
	}{
		{"quartos", in.Quartos},
		{"banheiros", in.Banheiros},
		{"vagasGaragem", in.VagasGaragem},
	}
	for _, c := range contagens {
		if c.valor == nil {
			continue
		}
		if *c.valor < 0 {
			return apperror.NewValidationError(fmt.Sprintf("%s não pode ser negativo.", c.nome))
		}
		if *c.valor > maxContagem {
			return apperror.NewValidationError(fmt.Sprintf("%s excede o máximo permitido.", c.nome))
		}
	}

	textos := []struct {
		nome  string
		valor *string
		max   int
	}{
		{"titulo", in.Titulo, maxTexto},
		{"endereco", in.Endereco, maxTexto},
		{"cidade", in.Cidade, maxTexto},
		{"estado", in.Estado, maxTexto},
		{"cep", in.Cep, maxCep},
	}
	for _, t := range textos {
		if t.valor != nil && utf8.RuneCountInString(*t.valor) > t.max {
			return apperror.NewValidationError(fmt.Sprintf("%s deve ter no máximo %d caracteres.", t.nome, t.max))
		}
	}

	if in.Tipo != nil && !in.Tipo.Valid() {
		return apperror.NewValidationError("tipo deve ser um dos valores: venda, aluguel.")
	}
	if in.TipoImovel != nil && !in.TipoImovel.Valid() {
		return apperror.NewValidationError("tipoImovel deve ser um dos valores: casa, apartamento, terreno.")
	}
	if in.EstadoImovel != nil && !in.EstadoImovel.Valid() {
		return apperror.NewValidationError("estadoImovel deve ser um dos valores: novo, semi-novo.")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
