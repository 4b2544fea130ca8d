package domain

// TipoNaoInformado agrupa imóveis sem tipo ou sem status no dashboard.
const TipoNaoInformado = "nao_informado"

// Dashboard reúne as três distribuições exibidas no painel administrativo.
type Dashboard struct {
	TiposImoveis  []TipoQuantidade   `json:"tiposImoveis"`
	ValoresMedios []TipoValorMedio   `json:"valoresMedios"`
	StatusImoveis []StatusQuantidade `json:"statusImoveis"`
}

type TipoQuantidade struct {
	Tipo       string `json:"tipo"`
	Quantidade int    `json:"quantidade"`
}

type TipoValorMedio struct {
	Tipo       string `json:"tipo"`
	ValorMedio int64  `json:"valorMedio"`
}

type StatusQuantidade struct {
	Status     string `json:"status"`
	Quantidade int    `json:"quantidade"`
}
