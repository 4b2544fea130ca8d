package domain

import (
	"context"
	"time"
)

// TipoNegocio indica se o imóvel está à venda ou para aluguel.
type TipoNegocio string

const (
	NegocioVenda   TipoNegocio = "venda"
	NegocioAluguel TipoNegocio = "aluguel"
)

func (t TipoNegocio) Valid() bool { return t == NegocioVenda || t == NegocioAluguel }

// TipoImovel classifica o imóvel.
type TipoImovel string

const (
	TipoCasa        TipoImovel = "casa"
	TipoApartamento TipoImovel = "apartamento"
	TipoTerreno     TipoImovel = "terreno"
)

func (t TipoImovel) Valid() bool {
	return t == TipoCasa || t == TipoApartamento || t == TipoTerreno
}

// EstadoImovel indica a condição de conservação.
type EstadoImovel string

const (
	EstadoNovo     EstadoImovel = "novo"
	EstadoSemiNovo EstadoImovel = "semi-novo"
)

func (e EstadoImovel) Valid() bool { return e == EstadoNovo || e == EstadoSemiNovo }

// Imovel representa um anúncio imobiliário.
// Fotos guarda os nomes dos arquivos na ordem de exibição da galeria.
type Imovel struct {
	ID                  string       `json:"id"`
	Titulo              string       `json:"titulo"`
	Descricao           string       `json:"descricao"`
	Valor               *float64     `json:"valor"`
	Tipo                TipoNegocio  `json:"tipo,omitempty"`
	TipoImovel          TipoImovel   `json:"tipoImovel,omitempty"`
	EstadoImovel        EstadoImovel `json:"estadoImovel,omitempty"`
	AceitaFinanciamento bool         `json:"aceitaFinanciamento"`
	Fotos               []string     `json:"fotos"`
	Endereco            string       `json:"endereco"`
	Cidade              string       `json:"cidade"`
	Estado              string       `json:"estado"`
	Cep                 string       `json:"cep"`
	Area                float64      `json:"area"`
	Quartos             int          `json:"quartos"`
	Banheiros           int          `json:"banheiros"`
	VagasGaragem        int          `json:"vagasGaragem"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// ImovelInput carrega os campos escalares de criação e atualização.
// Campo nil significa "não informado": na atualização mantém o valor gravado.
type ImovelInput struct {
	Titulo              *string
	Descricao           *string
	Valor               *float64
	Tipo                *TipoNegocio
	TipoImovel          *TipoImovel
	EstadoImovel        *EstadoImovel
	AceitaFinanciamento *bool
	Endereco            *string
	Cidade              *string
	Estado              *string
	Cep                 *string
	Area                *float64
	Quartos             *int
	Banheiros           *int
	VagasGaragem        *int
}

// ApplyTo copia para o imóvel apenas os campos informados.
func (in ImovelInput) ApplyTo(im *Imovel) {
	if in.Titulo != nil {
		im.Titulo = *in.Titulo
	}
	if in.Descricao != nil {
		im.Descricao = *in.Descricao
	}
	if in.Valor != nil {
		v := *in.Valor
		im.Valor = &v
	}
	if in.Tipo != nil {
		im.Tipo = *in.Tipo
	}
	if in.TipoImovel != nil {
		im.TipoImovel = *in.TipoImovel
	}
	if in.EstadoImovel != nil {
		im.EstadoImovel = *in.EstadoImovel
	}
	if in.AceitaFinanciamento != nil {
		im.AceitaFinanciamento = *in.AceitaFinanciamento
	}
	if in.Endereco != nil {
		im.Endereco = *in.Endereco
	}
	if in.Cidade != nil {
		im.Cidade = *in.Cidade
	}
	if in.Estado != nil {
		im.Estado = *in.Estado
	}
	if in.Cep != nil {
		im.Cep = *in.Cep
	}
	if in.Area != nil {
		im.Area = *in.Area
	}
	if in.Quartos != nil {
		im.Quartos = *in.Quartos
	}
	if in.Banheiros != nil {
		im.Banheiros = *in.Banheiros
	}
	if in.VagasGaragem != nil {
		im.VagasGaragem = *in.VagasGaragem
	}
}

// ImovelFilter define os filtros opcionais da listagem.
type ImovelFilter struct {
	TipoImovel TipoImovel
	Tipo       TipoNegocio
	Cidade     string
	ValorMin   *float64
	ValorMax   *float64
}

// IsEmpty informa se nenhum filtro foi informado.
func (f ImovelFilter) IsEmpty() bool {
	return f.TipoImovel == "" && f.Tipo == "" && f.Cidade == "" && f.ValorMin == nil && f.ValorMax == nil
}

// ImovelRepository é o contrato de persistência de imóveis.
type ImovelRepository interface {
	Save(ctx context.Context, imovel Imovel) (Imovel, error)
	FindByID(ctx context.Context, id string) (Imovel, error)
	FindAll(ctx context.Context, filter ImovelFilter) ([]Imovel, error)
	Update(ctx context.Context, imovel Imovel) (Imovel, error)
	Delete(ctx context.Context, id string) error
}

// FileStore remove arquivos de fotos já gravados.
type FileStore interface {
	Remove(name string) error
}

// ImovelService é o contrato da camada de negócio de imóveis.
type ImovelService interface {
	CreateImovel(ctx context.Context, input ImovelInput, fotos []string) (Imovel, error)
	GetImovelByID(ctx context.Context, id string) (Imovel, error)
	ListImoveis(ctx context.Context, filter ImovelFilter) ([]Imovel, error)
	UpdateImovel(ctx context.Context, id string, input ImovelInput, novasFotos []string) (Imovel, error)
	DeleteFoto(ctx context.Context, id, foto string) (Imovel, error)
	DeleteImovel(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (Dashboard, error)
}
