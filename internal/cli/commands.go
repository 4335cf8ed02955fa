package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/atotto/clipboard"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/dmitrijs2005/gophvault/internal/password"
	"github.com/dmitrijs2005/gophvault/internal/vault"
)

// writeClipboard is a test seam for clipboard.WriteAll.
var writeClipboard = clipboard.WriteAll

var errUnknownID = errors.New("no credential with this id")

const timeLayout = "2006-01-02 15:04"

func (a *App) List(ctx context.Context) error {
	items, err := a.vault.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("No credentials yet. Use 'add' to create one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tACCOUNT\tUSERNAME\tSTRENGTH\tUPDATED")
	for _, c := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.AccountLabel, c.Identifier, colorStrength(c.Strength()), c.UpdatedAt.Local().Format(timeLayout))
	}
	return tw.Flush()
}

func (a *App) Show(_ context.Context, id string) error {
	c, err := a.lookup(id)
	if err != nil {
		return err
	}
	a.printf("Account:  %s\n", c.AccountLabel)
	a.printf("Username: %s\n", c.Identifier)
	a.printf("Password: %s\n", c.MaskedSecret())
	a.printf("Strength: %s\n", colorStrength(c.Strength()))
	a.printf("Created:  %s\n", c.CreatedAt.Local().Format(timeLayout))
	a.printf("Updated:  %s\n", c.UpdatedAt.Local().Format(timeLayout))
	return nil
}

func (a *App) Reveal(_ context.Context, id string) error {
	c, err := a.lookup(id)
	if err != nil {
		return err
	}
	a.println(c.Secret)
	return nil
}

func (a *App) Copy(_ context.Context, id string) error {
	c, err := a.lookup(id)
	if err != nil {
		return err
	}
	if err := writeClipboard(c.Secret); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	a.println("Password copied to clipboard")
	return nil
}

// Add asks for the fields of a new credential. An empty password is
// replaced by a generated one.
func (a *App) Add(ctx context.Context) error {
	label, err := GetSimpleText(a.reader, "Account (e.g. GitHub)", a.out)
	if err != nil {
		return err
	}
	identifier, err := GetSimpleText(a.reader, "Username or email", a.out)
	if err != nil {
		return err
	}
	secret, err := a.readNewSecret("Password (empty to generate)")
	if err != nil {
		return err
	}

	return a.written(a.vault.Create(ctx, label, identifier, secret), "Saved")
}

// Edit asks for new values; empty answers keep the current ones.
func (a *App) Edit(ctx context.Context, id string) error {
	c, err := a.lookup(id)
	if err != nil {
		return err
	}

	label, err := GetSimpleText(a.reader, fmt.Sprintf("Account [%s]", c.AccountLabel), a.out)
	if err != nil {
		return err
	}
	identifier, err := GetSimpleText(a.reader, fmt.Sprintf("Username or email [%s]", c.Identifier), a.out)
	if err != nil {
		return err
	}
	raw, err := GetSecret(a.reader, "New password (empty to keep, 'gen' to generate)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(raw)

	secret := c.Secret
	switch string(raw) {
	case "":
		// keep
	case "gen":
		if secret, err = a.generateDefault(); err != nil {
			return err
		}
	default:
		secret = string(raw)
		a.printf("Strength: %s\n", colorStrength(password.Score(secret)))
	}

	return a.written(a.vault.Update(ctx, id, orDefault(label, c.AccountLabel), orDefault(identifier, c.Identifier), secret), "Saved")
}

func (a *App) Delete(ctx context.Context, id string) error {
	c, err := a.lookup(id)
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s (%s)?", c.AccountLabel, c.Identifier), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled")
		return nil
	}
	return a.written(a.vault.Delete(ctx, id), "Deleted")
}

// written reports the outcome of a vault mutation. A write that landed but
// could not be re-read still counts as done.
func (a *App) written(err error, done string) error {
	switch {
	case errors.Is(err, vault.ErrStaleView):
		a.printf("%s (%v)\n", done, err)
		return nil
	case err != nil:
		return err
	}
	a.println(done)
	return nil
}

// Generate prints a password. args are an optional length and an optional
// comma-separated class list, e.g. "generate 20 upper,lower,digit".
func (a *App) Generate(_ context.Context, args []string) error {
	policy := password.DefaultPolicy()
	policy.Length = a.config.PasswordLength

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: length %q is not a number", common.ErrorValidation, args[0])
		}
		policy.Length = n
	}
	if len(args) > 1 {
		classes, err := password.ParseClasses(args[1])
		if err != nil {
			return err
		}
		policy.Classes = classes
	}
	if err := policy.Validate(); err != nil {
		return err
	}

	pw, err := policy.Generate()
	if err != nil {
		return err
	}
	if pw == "" {
		a.println("No character classes selected")
		return nil
	}
	a.println(pw)
	a.printf("Strength: %s (%s)\n", colorStrength(password.Score(pw)), policy.Classes)
	return nil
}

func (a *App) Strength(_ context.Context) error {
	raw, err := GetSecret(a.reader, "Password to check", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(raw)

	s := password.Score(string(raw))
	a.printf("Strength: %s (%d/6 checks)\n", colorStrength(s), password.Points(string(raw)))
	return nil
}

func (a *App) lookup(id string) (models.Credential, error) {
	c, ok := a.vault.Get(id)
	if !ok {
		return models.Credential{}, fmt.Errorf("%w: %s", errUnknownID, id)
	}
	return c, nil
}

func (a *App) readNewSecret(prompt string) (string, error) {
	raw, err := GetSecret(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(raw)

	if len(raw) == 0 {
		return a.generateDefault()
	}
	secret := string(raw)
	a.printf("Strength: %s\n", colorStrength(password.Score(secret)))
	return secret, nil
}

func (a *App) generateDefault() (string, error) {
	policy := password.DefaultPolicy()
	policy.Length = a.config.PasswordLength
	pw, err := policy.Generate()
	if err != nil {
		return "", err
	}
	a.printf("Generated password (%s)\n", colorStrength(password.Score(pw)))
	return pw, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
