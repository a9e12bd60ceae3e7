package ai

import "errors"

// Failure classes for generative calls. Handlers match these with errors.Is
// to pick the user-facing message; they are never swallowed into an empty
// success.
var (
	// ErrEmptyModelOutput: the call succeeded transport-wise but produced no
	// usable text.
	ErrEmptyModelOutput = errors.New("o modelo de IA retornou uma resposta vazia")

	// ErrModelBlocked: a safety or policy filter suppressed the output.
	ErrModelBlocked = errors.New("a resposta foi bloqueada pelo filtro de conteúdo do modelo")

	// ErrSchemaValidation: structured output did not match the required shape.
	ErrSchemaValidation = errors.New("a resposta do modelo não corresponde ao formato esperado")

	// ErrUpstream: network, auth or rate-limit failure from the provider.
	ErrUpstream = errors.New("falha na comunicação com o provedor do modelo")
)
