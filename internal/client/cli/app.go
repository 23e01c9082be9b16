/*
Package cli implements the interactive terminal client for the ragwall gateway.

It mirrors the web client's behavior: the conversation state (input, answer,
sources, suggestion, user id) persists between runs, "new" starts a fresh chat
without dropping the signed-in identity, and "signout" wipes everything.
*/
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ragwall/internal/client"
	"ragwall/internal/client/session"
)

// App wires the gateway client, the persisted session state, and the terminal
// streams together.
type App struct {
	client  *client.Client
	session *session.Store
	in      *bufio.Reader
	out     io.Writer
}

// NewApp returns an App reading commands from in and writing to out.
func NewApp(c *client.Client, s *session.Store, in io.Reader, out io.Writer) *App {
	return &App{
		client:  c,
		session: s,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run loads the persisted session and enters the command loop. It returns
// when the user quits or input reaches EOF.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Load(); err != nil {
		fmt.Fprintf(a.out, "warning: could not load saved session: %v\n", err)
	}

	if a.session.UserID() != "" {
		fmt.Fprintf(a.out, "Signed in (user %s).\n", a.session.UserID())
	}
	if answer := a.session.Answer(); answer != "" {
		fmt.Fprintln(a.out, "\nLast answer:")
		a.printExchange(answer, a.session.Sources(), a.session.Suggestion())
	}

	fmt.Fprintln(a.out, `Type "help" for commands.`)

	for {
		line, err := promptLine(a.in, "\nragwall> ", a.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
			continue
		case "help":
			a.printHelp()
		case "signup":
			a.signup(ctx)
		case "login":
			a.login(ctx)
		case "ask":
			a.ask(ctx, arg)
		case "history":
			a.history(ctx)
		case "recall":
			a.recall(ctx, arg)
		case "new":
			a.newChat()
		case "signout":
			a.signOut()
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(a.out, "unknown command %q, type \"help\"\n", cmd)
		}
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `commands:
  signup            create an account
  login             sign in
  ask <question>    send a question to the assistant
  history           list your past questions
  recall <number>   re-fetch the stored answer for a past question
  new               start a new chat (keeps you signed in)
  signout           sign out and clear saved state
  quit              exit`)
}

func (a *App) signup(ctx context.Context) {
	firstName, err := promptLine(a.in, "First name: ", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	lastName, err := promptLine(a.in, "Last name: ", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	email, err := promptLine(a.in, "Email: ", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	password, err := promptPassword(a.out, "Password: ")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	if err := a.client.Register(ctx, firstName, lastName, email, password); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	fmt.Fprintln(a.out, "Account created. You can log in now.")
}

func (a *App) login(ctx context.Context) {
	email, err := promptLine(a.in, "Email: ", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	password, err := promptPassword(a.out, "Password: ")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	result, err := a.client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	if err := a.session.SetUserID(result.UserID); err != nil {
		fmt.Fprintf(a.out, "warning: could not save session: %v\n", err)
	}

	fmt.Fprintf(a.out, "Logged in as %s.\n", result.Email)
}

func (a *App) ask(ctx context.Context, question string) {
	if question == "" {
		fmt.Fprintln(a.out, "usage: ask <question>")
		return
	}

	userID := a.session.UserID()
	if userID == "" {
		fmt.Fprintln(a.out, "Please log in first.")
		return
	}

	if err := a.session.SetInput(question); err != nil {
		fmt.Fprintf(a.out, "warning: could not save input: %v\n", err)
	}

	result, err := a.client.Search(ctx, question, userID)
	if err != nil {
		if errors.Is(err, client.ErrRequestInFlight) {
			fmt.Fprintln(a.out, "Still waiting on the previous question.")
			return
		}
		fmt.Fprintln(a.out, err.Error())
		return
	}

	a.session.SetAnswer(result.Answer)
	a.session.SetSources(result.Sources)
	a.session.SetSuggestion(result.Suggestion)

	a.printExchange(result.Answer, result.Sources, result.Suggestion)
}

func (a *App) history(ctx context.Context) {
	userID := a.session.UserID()
	if userID == "" {
		fmt.Fprintln(a.out, "Please log in first.")
		return
	}

	queries, err := a.client.History(ctx, userID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	if len(queries) == 0 {
		fmt.Fprintln(a.out, "No past questions.")
		return
	}

	for i, q := range queries {
		fmt.Fprintf(a.out, "%3d. %s\n", i+1, q)
	}
}

// recall fetches the stored answer for a question listed by history. Only the
// answer is retrievable; sources and suggestion are cleared in the view, as
// in the web client's history selection.
func (a *App) recall(ctx context.Context, arg string) {
	userID := a.session.UserID()
	if userID == "" {
		fmt.Fprintln(a.out, "Please log in first.")
		return
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		fmt.Fprintln(a.out, "usage: recall <number from history>")
		return
	}

	queries, err := a.client.History(ctx, userID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if n > len(queries) {
		fmt.Fprintf(a.out, "history has only %d entries\n", len(queries))
		return
	}

	query := queries[n-1]
	answer, err := a.client.StoredResponse(ctx, query, userID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	a.session.SetInput(query)
	a.session.SetAnswer(answer)
	a.session.SetSources(nil)
	a.session.SetSuggestion("")

	fmt.Fprintf(a.out, "Q: %s\n", query)
	a.printExchange(answer, nil, "")
}

func (a *App) newChat() {
	if err := a.session.NewChat(); err != nil {
		fmt.Fprintf(a.out, "warning: could not clear session: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Started a new chat.")
}

func (a *App) signOut() {
	if err := a.session.SignOut(); err != nil {
		fmt.Fprintf(a.out, "warning: could not clear session: %v\n", err)
		return
	}
	a.client.SetToken("")
	fmt.Fprintln(a.out, "Signed out.")
}

func (a *App) printExchange(answer string, sources []string, suggestion string) {
	fmt.Fprintln(a.out, answer)
	if len(sources) > 0 {
		fmt.Fprintln(a.out, "Sources:")
		for _, src := range sources {
			fmt.Fprintf(a.out, "  - %s\n", src)
		}
	}
	if strings.TrimSpace(suggestion) != "" {
		fmt.Fprintf(a.out, "Suggestion: %s\n", suggestion)
	}
}
