// Package main is the openaccount command: the HTTP service, the interactive
// terminal application flow, and a static form renderer behind one binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-openaccount/internal/server"
	"github.com/goliatone/go-openaccount/pkg/controller"
	"github.com/goliatone/go-openaccount/pkg/form"
	"github.com/goliatone/go-openaccount/pkg/renderers/tui"
)

const usage = `Usage: openaccount <command> [flags]

Commands:
  serve    run the HTTP service
  prompt   fill in an application interactively in the terminal
  render   write a rendered form document to stdout or a file

Run "openaccount <command> -h" for the flags of each command.
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "prompt":
		err = runPrompt(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// runServe starts the HTTP service. Environment configuration provides the
// defaults; flags override per invocation.
func runServe(args []string) error {
	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Addr, "HTTP listen address")
	themeName := fs.String("theme", cfg.Theme, "theme name (empty renders unthemed)")
	themeVariant := fs.String("variant", cfg.ThemeVariant, "theme variant")
	publicURL := fs.String("public-url", cfg.PublicURL, "advertised server URL for the OpenAPI document")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Addr = *addr
	cfg.Theme = *themeName
	cfg.ThemeVariant = *themeVariant
	cfg.PublicURL = *publicURL

	srv, err := server.New(server.WithConfig(cfg))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// runPrompt walks the application in the terminal and submits it through a
// controller wired to the logging collaborator.
func runPrompt(args []string) error {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	formModel, err := form.New().Model()
	if err != nil {
		return err
	}

	flow, err := tui.NewFlow(controller.New(), formModel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := flow.Run(ctx)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return errors.New("aborted")
		}
		return err
	}

	fmt.Printf("Application accepted for %s (%s account, %s %.2f).\n",
		result.Request.FullName, result.Request.AccountType,
		result.Request.Currency, result.Request.InitialDeposit)
	return nil
}

// runRender writes one rendered document and exits.
func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	rendererName := fs.String("renderer", "vanilla", "renderer to use (vanilla, jsonform)")
	output := fs.String("output", "", "output file (stdout if empty)")
	themeName := fs.String("theme", "", "theme name")
	themeVariant := fs.String("variant", "", "theme variant")
	action := fs.String("action", "/submit", "form action URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	document, err := form.New().Generate(context.Background(), form.Request{
		Renderer: *rendererName,
		Action:   *action,
		Method:   http.MethodPost,
		Theme:    *themeName,
		Variant:  *themeVariant,
	})
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, document, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return nil
	}
	fmt.Println(string(document))
	return nil
}
