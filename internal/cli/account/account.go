package account

import (
	"errors"
	"fmt"

	"github.com/julianstephens/mindflow/internal/cli"
	apperrors "github.com/julianstephens/mindflow/internal/errors"
	"github.com/julianstephens/mindflow/internal/models"
)

type AccountCmd struct {
	Register RegisterCmd `cmd:"" help:"Create the local profile."`
	Login    LoginCmd    `cmd:"" help:"Sign in to the local profile."`
	Logout   LogoutCmd   `cmd:"" help:"Sign out and erase all local data."`
	Whoami   WhoamiCmd   `cmd:"" help:"Show the signed-in profile." default:"1"`
}

type RegisterCmd struct {
	Name     string `arg:"" help:"Display name."`
	Email    string `arg:"" help:"Email address."`
	Remember bool   `help:"Stay signed in on this device."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	if u, ok := ctx.Prefs.User(); ok {
		confirmed, err := ctx.Prompt.Confirm(fmt.Sprintf("Replace the profile for %s?", u.Email))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Registration cancelled.")
			return nil
		}
	}

	password, err := ctx.Prompt.Password("Choose a password")
	if err != nil {
		return err
	}
	repeat, err := ctx.Prompt.Password("Repeat the password")
	if err != nil {
		return err
	}
	if password != repeat {
		return errors.New("passwords do not match")
	}

	if err := ctx.Prefs.SaveUser(models.User{Name: c.Name, Email: c.Email}, password); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	ctx.Prefs.SetRememberMe(c.Remember)

	fmt.Printf("✓ Welcome, %s!\n", c.Name)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Email address."`
	Remember bool   `help:"Stay signed in on this device."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	password, err := ctx.Prompt.Password("Password")
	if err != nil {
		return err
	}

	switch err := ctx.Prefs.ValidateLogin(c.Email, password); {
	case errors.Is(err, apperrors.ErrNoUser):
		return errors.New("no profile on this device. Use 'mindflow account register' first")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return errors.New("invalid email or password")
	case err != nil:
		return err
	}
	ctx.Prefs.SetRememberMe(c.Remember)

	u, _ := ctx.Prefs.User()
	fmt.Printf("✓ Signed in as %s\n", u.Name)
	return nil
}

type LogoutCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		fmt.Println("⚠️  Signing out erases the profile, habits, mood journal, counters and settings on this device.")
		confirmed, err := ctx.Prompt.Confirm("Sign out and erase local data?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Logout cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	ctx.Prefs.Logout()
	fmt.Println("✓ Signed out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	u, ok := ctx.Prefs.User()
	if !ok {
		fmt.Println("No profile on this device.")
		return nil
	}
	status := "signed out"
	if ctx.Prefs.IsLoggedIn() {
		status = "signed in"
	}
	fmt.Printf("%s <%s>, %s\n", u.Name, u.Email, status)
	fmt.Printf("Registered:  %s\n", u.RegisteredDate)
	fmt.Printf("Remember me: %v\n", ctx.Prefs.ShouldRememberUser())
	return nil
}
