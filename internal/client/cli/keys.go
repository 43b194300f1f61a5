package cli

import (
	"context"
	"fmt"
	"strings"
)

// usageError reports a command invoked with the wrong arguments.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return usageError(usage)
	}
	return nil
}

func (a *App) Issue(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "issue <resource>"); err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	pub, err := a.keyService.Issue(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Key pair issued for %s\n%s", args[0], pub)
	return nil
}

func (a *App) PublicKey(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "pubkey <resource>"); err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	pub, err := a.keyService.PublicKey(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, pub)
	return nil
}

func (a *App) PrivateKey(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "privkey <resource>"); err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	priv, err := a.keyService.PrivateKey(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, priv)
	return nil
}

func (a *App) Grant(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "grant <resource> <email>"); err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	status, err := a.keyService.Grant(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s can now fetch the private key of %s\n", status, args[1], args[0])
	return nil
}

func (a *App) Members(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "members <resource>"); err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	members, err := a.keyService.Members(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, strings.Join(members, "\n"))
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "upload <resource> <file>"); err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.keyService.UploadFile(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s as %s\n", args[1], args[0])
	return nil
}

func (a *App) Download(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "download <resource> <file>"); err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.keyService.DownloadFile(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s to %s\n", args[0], args[1])
	return nil
}
