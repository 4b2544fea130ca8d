package imovelservice

import (
	"math"

	"imobiliaria/internal/domain"
)

type somaValores struct {
	total float64
	n     int
}

// BuildDashboard agrupa por tipo de imóvel e por tipo de negócio em uma única passada.
// Os grupos seguem a ordem da primeira ocorrência; tipo ausente vira TipoNaoInformado.
// A média considera só imóveis com valor e é arredondada para o inteiro mais próximo.
func BuildDashboard(imoveis []domain.Imovel) domain.Dashboard {
	d := domain.Dashboard{
		TiposImoveis:  []domain.TipoQuantidade{},
		ValoresMedios: []domain.TipoValorMedio{},
		StatusImoveis: []domain.StatusQuantidade{},
	}

	tipoIdx := map[string]int{}
	statusIdx := map[string]int{}
	somas := map[string]*somaValores{}
	var ordemValores []string

	for _, im := range imoveis {
		tipo := keyOrSentinel(string(im.TipoImovel))
		if i, ok := tipoIdx[tipo]; ok {
			d.TiposImoveis[i].Quantidade++
		} else {
			tipoIdx[tipo] = len(d.TiposImoveis)
			d.TiposImoveis = append(d.TiposImoveis, domain.TipoQuantidade{Tipo: tipo, Quantidade: 1})
		}

		if im.Valor != nil {
			soma, ok := somas[tipo]
			if !ok {
				soma = &somaValores{}
				somas[tipo] = soma
				ordemValores = append(ordemValores, tipo)
			}
			soma.total += *im.Valor
			soma.n++
		}

		status := keyOrSentinel(string(im.Tipo))
		if i, ok := statusIdx[status]; ok {
			d.StatusImoveis[i].Quantidade++
		} else {
			statusIdx[status] = len(d.StatusImoveis)
			d.StatusImoveis = append(d.StatusImoveis, domain.StatusQuantidade{Status: status, Quantidade: 1})
		}
	}

	for _, tipo := range ordemValores {
		soma := somas[tipo]
		d.ValoresMedios = append(d.ValoresMedios, domain.TipoValorMedio{
			Tipo:       tipo,
			ValorMedio: int64(math.Round(soma.total / float64(soma.n))),
		})
	}

	return d
}

func keyOrSentinel(k string) string {
	if k == "" {
		return domain.TipoNaoInformado
	}
	return k
}
