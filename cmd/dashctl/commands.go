package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/overview"
	"github.com/vfg2006/campaign-dashboard-api/pkg/limiter"
	"github.com/vfg2006/campaign-dashboard-api/pkg/utils"
)

// rangeFlags são as flags de período comuns a todos os comandos
type rangeFlags struct {
	preset string
	since  string
	until  string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", string(domain.PresetToday), "today, yesterday, last7, thisMonth ou lastMonth")
	cmd.Flags().StringVar(&f.since, "since", "", "início do período (YYYY-MM-DD); exige --until")
	cmd.Flags().StringVar(&f.until, "until", "", "fim do período (YYYY-MM-DD)")
}

func (f *rangeFlags) selection() (domain.RangeSelection, error) {
	rng := domain.Preset(domain.RangePreset(f.preset))
	if f.since != "" || f.until != "" {
		rng = domain.CustomRange(f.since, f.until)
	}
	return rng, rng.Validate()
}

// engine monta a mesma cadeia usada pela API, sem cache em banco
type engine struct {
	source     *insighting.Service
	limiter    *limiter.Limiter
	normalizer *normalizing.Normalizer
}

func newEngine(cfg *config.Config) engine {
	return engine{
		source:     insighting.NewService(cfg, meta.New(metaclient.NewClient(cfg))),
		limiter:    limiter.New(cfg.Engine.MaxConcurrency),
		normalizer: normalizing.New(cfg.Engine.ResultMarkers),
	}
}

func (e engine) loader(cfg *config.Config) *loading.Loader {
	return loading.NewLoader(e.source, e.limiter, e.normalizer, cfg.Engine.AdInsightsCeiling)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func printJSON(v any) {
	fmt.Fprintln(os.Stdout, utils.PrettyJson(v))
}

func newCampaignsCommand(cfg *config.Config) *cobra.Command {
	var (
		rf         rangeFlags
		accounts   []string
		unfiltered bool
	)

	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Lista as campanhas ativas das contas com os totais do período",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(accounts) == 0 {
				return fmt.Errorf("informe ao menos uma conta com --account")
			}
			rng, err := rf.selection()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			campaigns, err := newEngine(cfg).loader(cfg).LoadCampaigns(ctx, accounts, rng, loading.Options{Unfiltered: unfiltered})
			if err != nil {
				return err
			}

			printJSON(campaigns)
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringSliceVarP(&accounts, "account", "a", nil, "id da conta de anúncios (repetível ou separado por vírgula)")
	cmd.Flags().BoolVar(&unfiltered, "unfiltered", false, "mantém campanhas sem gasto e sem resultado")
	return cmd
}

func newAdsCommand(cfg *config.Config) *cobra.Command {
	var (
		rf         rangeFlags
		campaignID string
		daily      bool
	)

	cmd := &cobra.Command{
		Use:   "ads",
		Short: "Lista os anúncios de uma campanha ou a série diária dela",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if campaignID == "" {
				return fmt.Errorf("informe a campanha com --campaign")
			}
			rng, err := rf.selection()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			loader := newEngine(cfg).loader(cfg)

			if daily {
				series, err := loader.LoadDaily(ctx, domain.NodeKindCampaign, campaignID, rng)
				if err != nil {
					return err
				}
				printJSON(series)
				return nil
			}

			ads, err := loader.LoadAdTree(ctx, campaignID, rng)
			if err != nil {
				return err
			}

			printJSON(ads)
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&campaignID, "campaign", "c", "", "id da campanha")
	cmd.Flags().BoolVar(&daily, "daily", false, "mostra a série diária da campanha em vez dos anúncios")
	return cmd
}

func newOverviewCommand(cfg *config.Config) *cobra.Command {
	var (
		rf       rangeFlags
		clientID string
	)

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Resume gasto e resultados de cada cliente do cadastro",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := rf.selection()
			if err != nil {
				return err
			}

			clients, err := config.LoadClients(cfg.ClientsFile)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			e := newEngine(cfg)
			service := overview.NewService(clients, e.source, e.limiter, e.normalizer)

			if clientID != "" {
				item, err := service.GetClientOverview(ctx, clientID, rng)
				if err != nil {
					return err
				}
				printJSON(item)
				return nil
			}

			items, err := service.GetOverview(ctx, rng)
			if err != nil {
				return err
			}

			printJSON(items)
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&clientID, "client", "", "resume só este cliente")
	return cmd
}
