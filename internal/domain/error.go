package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"Apenas arquivos de imagem são permitidos!"`
	Error      string `json:"error" example:"Bad Request"`
}

// MessageResponse é usada em respostas que só carregam uma mensagem.
type MessageResponse struct {
	Message string `json:"message" example:"Imóvel removido com sucesso"`
}
