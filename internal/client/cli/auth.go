package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/educloud/internal/client/models"
	"github.com/dmitrijs2005/educloud/internal/common"
)

// getSimpleText, getChoice and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getChoice     = GetChoice
	getPassword   = GetPassword
)

// Register prompts for the profile fields and a password and creates an
// account. On success the new session is stored and the prompt shows the
// user. The byte slice read from the terminal is wiped before returning; the
// string handed to the auth service is immutable and is not.
func (a *App) Register(ctx context.Context) error {
	var fields models.RegisterFields
	var err error

	prompts := []struct {
		dst    *string
		prompt string
	}{
		{&fields.Nombre, "Enter first name"},
		{&fields.Apellido1, "Enter first surname"},
		{&fields.Apellido2, "Enter second surname (optional)"},
		{&fields.Email, "Enter email"},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.prompt, a.out); err != nil {
			return err
		}
	}

	userType, err := getChoice(a.reader, "Account type",
		[]string{string(models.UserTypeStudent), string(models.UserTypeTeacher)}, a.out)
	if err != nil {
		return err
	}
	fields.UserType = models.UserType(userType)

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.authService.Register(ctx, fields, string(password))
	a.printResult(res)
	if !res.Success {
		return res.Err
	}
	a.setUserName(userLabel(res.User))
	return nil
}

// Login prompts for credentials and authenticates. The byte slice read from
// the terminal is wiped before returning; the string copy passed to the auth
// service cannot be.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.authService.Login(ctx, email, string(password))
	a.printResult(res)
	if !res.Success {
		return res.Err
	}
	a.setUserName(userLabel(res.User))
	return nil
}

// Logout ends the session. Local session state is gone afterwards even when
// the server could not be told.
func (a *App) Logout(ctx context.Context) error {
	res := a.authService.Logout(ctx)
	a.setUserName("")
	a.printResult(res)
	if !res.Success {
		return res.Err
	}
	return nil
}

// WhoAmI prints the cached profile and what the session token says about
// itself.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	user, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Fprintf(a.out, "%s <%s> %s\n", user.FullName(), user.Email, user.UserType)
	}

	claims, err := a.authService.TokenClaims(ctx)
	if err != nil {
		a.log.Debug(ctx, "session token is not a readable JWT", "error", err)
		return nil
	}
	if !claims.ExpiresAt.IsZero() {
		state := "valid until"
		if claims.Expired(time.Now()) {
			state = "expired at"
		}
		fmt.Fprintf(a.out, "Token %s %s\n", state, claims.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// Health probes the backend, prints the result and updates the mode.
func (a *App) Health(ctx context.Context) error {
	st := a.authService.Health(ctx)
	a.printHealth(st)
	if st.Up() {
		a.setMode(ModeOnline)
	} else {
		a.setMode(ModeOffline)
	}
	return nil
}

// Get performs an authenticated GET and prints the JSON reply.
func (a *App) Get(ctx context.Context, path string) error {
	var out any
	if err := a.api.Get(ctx, path, &out); err != nil {
		printError(a.out, err.Error())
		return err
	}
	return a.printJSON(out)
}

func userLabel(p *models.Profile) string {
	if p == nil {
		return ""
	}
	if p.Email != "" {
		return p.Email
	}
	return p.FullName()
}
