package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
)

func main() {
	// Só avisos e erros vão para stderr; stdout fica com o JSON
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	root := cobra.Command{
		Use:           "dashctl",
		Short:         "Consulta campanhas, anúncios e o resumo de clientes direto na Graph API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "mostra logs de debug no stderr")
	root.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}

	root.AddCommand(newCampaignsCommand(cfg))
	root.AddCommand(newAdsCommand(cfg))
	root.AddCommand(newOverviewCommand(cfg))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
