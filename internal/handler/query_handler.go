/*
Package handler provides the HTTP handlers and routing setup for the ragwall gateway.

This file contains the query pipeline: /search forwards a validated prompt to
the RAG backend and enforces its response contract; /user_query and
/query_response proxy the history panel. Search failures always answer in the
{answer, sources, suggestion} shape so the chat view can render them without a
special error path.
*/
package handler

import (
	"errors"
	"net/http"
	"strings"

	"ragwall/internal/app/account"
	"ragwall/internal/app/rag"
	"ragwall/internal/pkg/errs"
	"ragwall/internal/pkg/logx"
	"ragwall/internal/pkg/req"
	"ragwall/internal/pkg/resp"
)

type SearchInput struct {
	Input  string `json:"input"`
	UserID string `json:"userId"`
}

// SearchResponse is the wire shape of every /search reply, success or failure.
// Sources is always present as an array and Suggestion as a string.
type SearchResponse struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	Suggestion string   `json:"suggestion"`
}

// respondSearchFailure sends the failure in the chat payload shape, with the
// fixed message standing in as the answer and sources left empty.
func respondSearchFailure(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	resp.RespondJSON(w, r, customErr.Status, SearchResponse{
		Answer:     customErr.Message,
		Sources:    []string{},
		Suggestion: "",
	})
}

// HandleSearch is the query gateway. Validation runs in order (prompt
// present, user id present, user id resolving to an account) and the backend
// is never called when any step fails. No result is cached and no retry is
// attempted: two identical requests mean two backend calls.
func HandleSearch(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SearchInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			respondSearchFailure(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Input) == "" {
			logx.Warn("search: empty input received")
			respondSearchFailure(w, r, errs.NewError(errs.ErrPromptRequired))
			return
		}

		if strings.TrimSpace(input.UserID) == "" {
			logx.Warn("search: request without user id")
			respondSearchFailure(w, r, errs.NewError(errs.ErrIdentityRequired))
			return
		}

		if _, err := deps.Accounts.GetByID(r.Context(), input.UserID); err != nil {
			if errors.Is(err, account.ErrNotFound) {
				logx.Warn("search: unknown user id", "user_id", input.UserID)
				respondSearchFailure(w, r, errs.NewError(errs.ErrSessionExpired))
				return
			}

			logx.Error(err, "search: account lookup failed")
			respondSearchFailure(w, r, errs.NewError(errs.ErrSearchFailed))
			return
		}

		exchange, err := deps.RAG.Ask(r.Context(), input.Input, input.UserID)
		if err != nil {
			switch {
			case errors.Is(err, rag.ErrTimeout):
				logx.Error(err, "search: backend call timed out")
				respondSearchFailure(w, r, errs.NewError(errs.ErrUpstreamTimeout))
			case errors.Is(err, rag.ErrBadResponse):
				logx.Error(err, "search: backend response violated contract")
				respondSearchFailure(w, r, errs.NewError(errs.ErrUpstreamInvalid))
			default:
				logx.Error(err, "search: backend call failed")
				respondSearchFailure(w, r, errs.NewError(errs.ErrSearchFailed))
			}
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, SearchResponse{
			Answer:     exchange.Answer,
			Sources:    exchange.Sources,
			Suggestion: exchange.Suggestion,
		})
	}
}

type UserQueriesInput struct {
	UserID string `json:"userId"`
}

// UserQueriesResponse is the wire shape of the history listing. The field
// name matches the backend's casing, which the SPA consumes as-is.
type UserQueriesResponse struct {
	Queries []string `json:"Queries"`
}

// HandleUserQueries proxies the history panel listing. An unreachable or
// failing backend degrades to an empty list: the panel renders empty instead
// of erroring, and the detail stays in the logs.
func HandleUserQueries(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input UserQueriesInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.UserID) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		queries, err := deps.RAG.UserQueries(r.Context(), input.UserID)
		if err != nil {
			logx.Error(err, "user_query: history fetch failed", "user_id", input.UserID)
			resp.RespondJSON(w, r, http.StatusOK, UserQueriesResponse{Queries: []string{}})
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, UserQueriesResponse{Queries: queries})
	}
}

type QueryResponseInput struct {
	Query  string `json:"query"`
	UserID string `json:"userId"`
}

// QueryResponseBody carries the stored answer for a previously asked prompt.
type QueryResponseBody struct {
	Response string `json:"response"`
}

// HandleQueryResponse re-fetches the stored answer for a past prompt by its
// literal text. Only the answer comes back; the client clears sources and
// suggestion when surfacing it.
func HandleQueryResponse(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input QueryResponseInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Query) == "" || strings.TrimSpace(input.UserID) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		response, err := deps.RAG.StoredResponse(r.Context(), input.Query, input.UserID)
		if err != nil {
			logx.Error(err, "query_response: stored answer fetch failed", "user_id", input.UserID)
			resp.RespondError(w, r, errs.NewError(errs.ErrHistoryFailed))
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, QueryResponseBody{Response: response})
	}
}
