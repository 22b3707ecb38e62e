// Command adminctl is a terminal front end for the admin panel API. Every
// invocation rehydrates the session from the token file, the same way the
// panel rebuilds identity on a page load.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dinith-rusiru/internExam1/pkg/authclient"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	baseURL := os.Getenv("ADMINCTL_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api/v1"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	store := authclient.NewFileStore(filepath.Join(home, ".adminctl", "token.json"))
	client := authclient.New(baseURL, store)
	session := authclient.NewSession(client, store)

	ctx := context.Background()
	if err := session.Rehydrate(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "login":
		return cmdLogin(ctx, session, args[1:])
	case "register":
		return cmdRegister(ctx, session, args[1:])
	case "logout":
		return cmdLogout(ctx, session)
	case "whoami":
		return cmdWhoami(session)
	case "users":
		return cmdUsers(ctx, session, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: adminctl <command> [flags]

commands:
  login     -email -password
  register  -name -email -password [-role]
  logout
  whoami
  users     list | update | delete`)
}

// requireRole maps a guard decision to CLI behavior: the terminal analog of
// the panel's route guard.
func requireRole(s *authclient.Session, roles ...string) error {
	switch s.Guard(roles...) {
	case authclient.Allow:
		return nil
	case authclient.RedirectLogin:
		return fmt.Errorf("not logged in; run adminctl login")
	default:
		return fmt.Errorf("your role does not allow this command")
	}
}

func cmdLogin(ctx context.Context, s *authclient.Session, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := s.Login(ctx, *email, *password); err != nil {
		return err
	}
	u := s.CurrentUser()
	fmt.Printf("logged in as %s (%s)\n", u.Name, u.Role)
	return nil
}

func cmdRegister(ctx context.Context, s *authclient.Session, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "requested role (admin requires an admin session)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := s.Register(ctx, *name, *email, *password, *role); err != nil {
		return err
	}
	u := s.CurrentUser()
	fmt.Printf("registered and logged in as %s (%s)\n", u.Name, u.Role)
	return nil
}

func cmdLogout(ctx context.Context, s *authclient.Session) error {
	// Revoke server-side when possible; local state clears regardless.
	if err := s.LogoutServer(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: server-side revocation failed:", err)
	}
	fmt.Println("logged out")
	return nil
}

func cmdWhoami(s *authclient.Session) error {
	u := s.CurrentUser()
	if u == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s id=%s\n", u.Name, u.Email, u.Role, u.ID)
	return nil
}

func cmdUsers(ctx context.Context, s *authclient.Session, args []string) error {
	if err := requireRole(s, authclient.RoleAdmin); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: adminctl users list | update | delete")
	}

	switch args[0] {
	case "list":
		users, err := s.ListUsers(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()

	case "update":
		fs := flag.NewFlagSet("users update", flag.ContinueOnError)
		id := fs.String("id", "", "user id")
		name := fs.String("name", "", "new name")
		email := fs.String("email", "", "new email")
		role := fs.String("role", "", "new role")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return fmt.Errorf("users update: -id is required")
		}

		var patch authclient.UserPatch
		if *name != "" {
			patch.Name = name
		}
		if *email != "" {
			patch.Email = email
		}
		if *role != "" {
			patch.Role = role
		}

		u, err := s.UpdateUser(ctx, *id, patch)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s (%s)\n", u.Name, u.Role)
		return nil

	case "delete":
		fs := flag.NewFlagSet("users delete", flag.ContinueOnError)
		id := fs.String("id", "", "user id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return fmt.Errorf("users delete: -id is required")
		}
		if err := s.DeleteUser(ctx, *id); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	default:
		return fmt.Errorf("unknown users subcommand %q", args[0])
	}
}
