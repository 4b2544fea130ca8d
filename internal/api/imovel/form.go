package imovel

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
)

// parseImovelForm converte os campos do formulário em ImovelInput.
// Campo ausente fica nil; campos numéricos e enums vazios também.
func parseImovelForm(form url.Values) (domain.ImovelInput, error) {
	var in domain.ImovelInput

	in.Titulo = textField(form, "titulo")
	in.Descricao = textField(form, "descricao")
	in.Endereco = textField(form, "endereco")
	in.Cidade = textField(form, "cidade")
	in.Estado = textField(form, "estado")
	in.Cep = textField(form, "cep")

	var err error
	if in.Valor, err = floatField(form, "valor"); err != nil {
		return in, err
	}
	if in.Area, err = floatField(form, "area"); err != nil {
		return in, err
	}
	if in.Quartos, err = intField(form, "quartos"); err != nil {
		return in, err
	}
	if in.Banheiros, err = intField(form, "banheiros"); err != nil {
		return in, err
	}
	if in.VagasGaragem, err = intField(form, "vagasGaragem"); err != nil {
		return in, err
	}
	if in.AceitaFinanciamento, err = boolField(form, "aceitaFinanciamento"); err != nil {
		return in, err
	}

	if v, ok := nonEmpty(form, "tipo"); ok {
		t := domain.TipoNegocio(v)
		in.Tipo = &t
	}
	if v, ok := nonEmpty(form, "tipoImovel"); ok {
		t := domain.TipoImovel(v)
		in.TipoImovel = &t
	}
	if v, ok := nonEmpty(form, "estadoImovel"); ok {
		e := domain.EstadoImovel(v)
		in.EstadoImovel = &e
	}

	return in, nil
}

// parseFilter lê os filtros de GET /imoveis.
func parseFilter(q url.Values) (domain.ImovelFilter, error) {
	var f domain.ImovelFilter

	if v, ok := nonEmpty(q, "tipoImovel"); ok {
		f.TipoImovel = domain.TipoImovel(v)
		if !f.TipoImovel.Valid() {
			return f, apperror.NewValidationError("tipoImovel deve ser um dos valores: casa, apartamento, terreno")
		}
	}
	if v, ok := nonEmpty(q, "tipo"); ok {
		f.Tipo = domain.TipoNegocio(v)
		if !f.Tipo.Valid() {
			return f, apperror.NewValidationError("tipo deve ser um dos valores: venda, aluguel")
		}
	}
	if v, ok := nonEmpty(q, "cidade"); ok {
		f.Cidade = v
	}

	var err error
	if f.ValorMin, err = floatField(q, "valorMin"); err != nil {
		return f, err
	}
	if f.ValorMax, err = floatField(q, "valorMax"); err != nil {
		return f, err
	}
	if f.ValorMin != nil && f.ValorMax != nil && *f.ValorMin > *f.ValorMax {
		return f, apperror.NewValidationError("valorMin não pode ser maior que valorMax")
	}

	return f, nil
}

func textField(form url.Values, key string) *string {
	if _, ok := form[key]; !ok {
		return nil
	}
	v := strings.TrimSpace(form.Get(key))
	return &v
}

func nonEmpty(form url.Values, key string) (string, bool) {
	v := strings.TrimSpace(form.Get(key))
	return v, v != ""
}

func floatField(form url.Values, key string) (*float64, error) {
	v, ok := nonEmpty(form, key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, apperror.NewValidationError(fmt.Sprintf("%s deve ser um número", key))
	}
	return &n, nil
}

func intField(form url.Values, key string) (*int, error) {
	v, ok := nonEmpty(form, key)
	if !ok {
		return nil, nil
	}
	// colunas INTEGER: 32 bits
	n, err := strconv.ParseInt(v, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return nil, apperror.NewValidationError(fmt.Sprintf("%s excede o valor máximo permitido", key))
	}
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("%s deve ser um número inteiro", key))
	}
	i := int(n)
	return &i, nil
}

func boolField(form url.Values, key string) (*bool, error) {
	v, ok := nonEmpty(form, key)
	if !ok {
		return nil, nil
	}
	switch v {
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	}
	return nil, apperror.NewValidationError(fmt.Sprintf("%s deve ser true ou false", key))
}
