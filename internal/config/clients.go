package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

// LoadClients lê o cadastro de clientes da agência. O arquivo é um objeto
// indexado pelo id do cliente:
//
//	{"otica-centro": {"client_name": "Ótica Centro", "ad_account_ids": ["act_1", "2"]}}
func LoadClients(path string) (map[string]domain.Client, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: erro ao ler arquivo de clientes %s: %w", path, err)
	}

	clients := make(map[string]domain.Client)
	err := v.Unmarshal(&clients, viper.DecodeHook(
		mapstructure.StringToSliceHookFunc(","),
	))
	if err != nil {
		return nil, fmt.Errorf("config: erro ao decodificar clientes: %w", err)
	}

	for id, c := range clients {
		c.ID = id
		c.AdAccountIDs = normalizeAccountIDs(c.AdAccountIDs)
		clients[id] = c
	}

	return clients, nil
}

// SortedClients devolve os clientes ordenados por nome
func SortedClients(clients map[string]domain.Client) []domain.Client {
	out := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// normalizeAccountIDs remove o prefixo act_ e ids vazios; o cliente da Graph API recoloca o prefixo
func normalizeAccountIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimPrefix(strings.TrimSpace(id), "act_")
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
