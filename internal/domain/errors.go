package domain

import "errors"

var (
	ErrNotFound     = errors.New("registro não encontrado")
	ErrDuplicate    = errors.New("registro já existe")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrLimitReached = errors.New("limite atingido")

	ErrSenhaCurta           = errors.New("senha deve ter pelo menos 6 dígitos")
	ErrSenhaIncorreta       = errors.New("senha incorreta")
	ErrAniversarioIncorreto = errors.New("data de aniversário incorreta")
)
