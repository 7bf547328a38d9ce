package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/angelmondragon/cardfinderz/internal/catalog"
	"github.com/angelmondragon/cardfinderz/internal/featured"
	"github.com/angelmondragon/cardfinderz/internal/search"
	"github.com/angelmondragon/cardfinderz/internal/settings"
	"github.com/angelmondragon/cardfinderz/pkg/config"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

type displayFlags struct {
	format   string
	currency string
	rate     string
}

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "cardfinderz",
		Short:         "Search the trading card catalog from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var searchFlags displayFlags
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: `Search by name or by "<number>/<set total>"`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), strings.Join(args, " "), searchFlags)
		},
	}
	bindDisplayFlags(searchCmd, &searchFlags)

	var featuredFlags displayFlags
	var limit int
	featuredCmd := &cobra.Command{
		Use:   "featured",
		Short: "List the featured cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeatured(limit, featuredFlags)
		},
	}
	bindDisplayFlags(featuredCmd, &featuredFlags)
	featuredCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of cards to list (0 lists all)")

	root.AddCommand(searchCmd, featuredCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func bindDisplayFlags(cmd *cobra.Command, flags *displayFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "table", "Output format: table or json")
	f.StringVar(&flags.currency, "currency", "", "Display currency (PEN, USD, MXN, COP, CLP); defaults to config")
	f.StringVar(&flags.rate, "rate", "", "Units of the display currency per 1 USD; defaults to config")
}

func runSearch(ctx context.Context, query string, flags displayFlags) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}
	prefs, err := resolveSettings(cfg.Settings, flags)
	if err != nil {
		return codeError(2, "%s", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "cardfinderz-cli",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Output:      os.Stderr,
	})

	lookup, err := catalog.NewFromConfig(cfg.Catalog, nil, logg, nil)
	if err != nil {
		return codeError(3, "building catalog client: %s", err)
	}
	ctrl, err := search.NewController(lookup, logg, nil)
	if err != nil {
		return codeError(3, "building search controller: %s", err)
	}

	out := ctrl.Submit(ctx, query)
	if out.Kind == search.OutcomeIgnored {
		return codeError(2, "query is empty")
	}
	if out.Failed {
		fmt.Fprintln(os.Stderr, "WARN: catalog lookup failed, showing no results")
	}
	return renderOutcome(os.Stdout, flags.format, out, prefs.Snapshot())
}

func runFeatured(limit int, flags displayFlags) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}
	prefs, err := resolveSettings(cfg.Settings, flags)
	if err != nil {
		return codeError(2, "%s", err)
	}
	items, err := featured.Load()
	if err != nil {
		return err
	}
	list := items.List()
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return renderCards(os.Stdout, flags.format, list, prefs.Snapshot())
}

// resolveSettings starts from the configured defaults and applies flag
// overrides. Flag rates are not clamped; the store only rejects values <= 0.
func resolveSettings(cfg config.SettingsConfig, flags displayFlags) (*settings.Store, error) {
	store, err := settings.NewStore(cfg.DefaultCurrency, cfg.DefaultRate)
	if err != nil {
		return nil, err
	}
	if flags.currency != "" {
		if _, err := store.SetCurrency(flags.currency); err != nil {
			return nil, fmt.Errorf("invalid --currency %q", flags.currency)
		}
	}
	if flags.rate != "" {
		rate, err := decimal.NewFromString(flags.rate)
		if err != nil {
			return nil, fmt.Errorf("invalid --rate %q", flags.rate)
		}
		if _, err := store.SetExchangeRate(rate); err != nil {
			return nil, fmt.Errorf("invalid --rate %q: must be greater than zero", flags.rate)
		}
	}
	return store, nil
}
