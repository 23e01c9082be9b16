package handler

import (
	"ragwall/internal/app/account"
	"ragwall/internal/app/rag"
	"ragwall/internal/configs"
)

// AppDeps bundles the dependencies the handlers close over: configuration,
// the credential store, and the RAG backend client. Both collaborators are
// interfaces so tests can substitute stubs.
type AppDeps struct {
	Config   *configs.AppConfig
	Accounts account.Store
	RAG      rag.Backend
}
