package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/geosick-health/geosick/internal/client/shell"
)

func (a *App) getStatus() string {
	s := ""
	if user := a.shell.User(); user != nil {
		s = user.Name + " "
	}
	s = s + string(a.shell.Page())
	return fmt.Sprintf("(%s)", s)
}

// Root runs the interactive command loop. Commands map onto the shell's
// navigation and the feature pages; handlers print their own errors so the
// loop stays focused on I/O.
func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to GeoSick (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("geosick %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: image, prescription, mental, symptoms, history, global, profile, goto <page>, logout, exit")
			} else {
				fmt.Println("Available commands: login, about, contact, explore, home, exit")
			}

		case "login":
			if a.isLoggedIn() {
				fmt.Println("Already logged in.")
				continue
			}
			_ = a.Login(ctx)

		case "logout":
			a.Logout(ctx)

		case "home":
			a.goTo(shell.PageHome, shell.PageWelcome)
		case "about":
			a.shell.GoTo(shell.PageAbout)
		case "contact":
			a.shell.GoTo(shell.PageContact)
		case "explore":
			a.shell.GoTo(shell.PageExplore)

		case "goto":
			if len(args) == 0 {
				fmt.Println("Usage: goto <page>")
				continue
			}
			// the router is permissive, any page name is accepted
			a.shell.GoTo(shell.Page(args[0]))

		case "image":
			_ = a.runImageAnalysis(ctx)
		case "prescription":
			_ = a.runPrescriptionAnalysis(ctx)
		case "mental":
			_ = a.runMentalHealthCheck(ctx)
		case "symptoms":
			_ = a.runSymptomChecker(ctx)

		case "history":
			a.showHistory(ctx)
		case "global":
			a.showGlobalHistory(ctx)
		case "profile":
			a.showProfile()

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

// goTo picks the landing page matching the auth state: home redirects to
// welcome for a logged-in user.
func (a *App) goTo(public, authed shell.Page) {
	if a.isLoggedIn() {
		a.shell.GoTo(authed)
	} else {
		a.shell.GoTo(public)
	}
}
