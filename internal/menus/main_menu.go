package menus

import (
	"context"
	"errors"
	"log"

	"github.com/mrlokans/plotpoint/internal/audit"
	"github.com/mrlokans/plotpoint/internal/auth"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

func (m *Menus) mainMenu(ctx context.Context) error {
	for {
		choice, err := m.choose(terminal.Menu("Welcome to PlotPoint", []string{"Log In", "Sign Up"}, "Exit"), 2)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.login(ctx)
		case 2:
			err = m.signUp()
		case 0:
			m.console.Println("Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menus) login(ctx context.Context) error {
	m.console.Print(terminal.Title("Log In"))

	username, err := m.console.Prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := m.console.Password("Password: ")
	if err != nil {
		return err
	}

	session, err := m.auth.Login(username, password)
	if err != nil {
		m.audit.LogAuth(audit.Actor{Username: username}, "login_failed", err)
	}
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		m.console.Println("Invalid username or password. Please try again.")
		return nil
	case errors.Is(err, auth.ErrTooManyAttempts):
		m.console.Printf("%v.\n", err)
		return nil
	case err != nil:
		m.report("log in", err)
		return nil
	}

	m.console.Println("Logged in successfully.")
	m.audit.LogAuth(audit.Actor{UserID: session.UserID, Username: session.Username}, "login", nil)
	ctx = auth.WithSession(ctx, session)
	if session.IsAdmin {
		return m.adminMenu(ctx)
	}
	return m.userMenu(ctx)
}

func (m *Menus) signUp() error {
	m.console.Print(terminal.Title("Sign Up"))

	username, err := m.console.PromptValid("Choose a username: ", m.checkUsername)
	if err != nil {
		return err
	}

	var password string
	for {
		password, err = m.console.Password("Choose a password: ")
		if err != nil {
			return err
		}
		err = auth.ValidatePassword(password, m.auth.MinPasswordLength())
		if errors.Is(err, auth.ErrPasswordTooShort) {
			m.console.Printf("Password must be at least %d characters long.\n", m.auth.MinPasswordLength())
			continue
		}
		if errors.Is(err, auth.ErrPasswordTooLong) {
			m.console.Printf("Password must be at most %d bytes long.\n", auth.MaxPasswordBytes)
			continue
		}
		break
	}

	user, err := m.auth.Register(username, password, false)
	switch {
	case errors.Is(err, auth.ErrUserExists):
		m.console.Println("Username already exists. Please choose another one.")
	case err != nil:
		m.report("create your account", err)
	default:
		m.console.Println("Account created successfully!")
		m.audit.LogAuth(audit.Actor{UserID: user.ID, Username: user.Username}, "signup", nil)
	}
	return nil
}

var (
	errUsernameEmpty     = errors.New("username cannot be empty")
	errUsernameTaken     = errors.New("username already exists, please choose another one")
	errUsernameUnchecked = errors.New("could not check that username, please try again")
)

func (m *Menus) checkUsername(username string) error {
	if username == "" {
		return errUsernameEmpty
	}
	available, err := m.auth.UsernameAvailable(username)
	if err != nil {
		log.Printf("Failed to check username: %v", err)
		return errUsernameUnchecked
	}
	if !available {
		return errUsernameTaken
	}
	return nil
}
