package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrCurrencyNotSupported = errors.New("currency not supported")

// ProviderCredentials holds the per-currency vendor account configuration.
// Resolved once at startup from env; never persisted.
type ProviderCredentials struct {
	Provider       string
	Currency       string
	AgentID        string
	APIURL         string
	AuthToken      string
	PublicKey      string
	ArcadeGameList []string
}

var credentials = map[string]ProviderCredentials{}

func key(provider, currency string) string {
	return strings.ToUpper(provider) + ":" + strings.ToUpper(currency)
}

// Load reads <PROVIDER>_CURRENCIES (comma separated) and the per-currency
// env blocks, e.g. HG5_IDR_AGENT_ID, HG5_IDR_API_URL, HG5_IDR_AUTH_TOKEN,
// HG5_IDR_PUBLIC_KEY, HG5_IDR_GAME_LIST.
func Load(providersList ...string) {
	for _, provider := range providersList {
		p := strings.ToUpper(provider)
		for _, cur := range strings.Split(os.Getenv(p+"_CURRENCIES"), ",") {
			cur = strings.ToUpper(strings.TrimSpace(cur))
			if cur == "" {
				continue
			}
			prefix := fmt.Sprintf("%s_%s_", p, cur)
			cred := ProviderCredentials{
				Provider:  p,
				Currency:  cur,
				AgentID:   os.Getenv(prefix + "AGENT_ID"),
				APIURL:    os.Getenv(prefix + "API_URL"),
				AuthToken: os.Getenv(prefix + "AUTH_TOKEN"),
				PublicKey: os.Getenv(prefix + "PUBLIC_KEY"),
			}
			if list := os.Getenv(prefix + "GAME_LIST"); list != "" {
				for _, g := range strings.Split(list, ",") {
					if g = strings.TrimSpace(g); g != "" {
						cred.ArcadeGameList = append(cred.ArcadeGameList, g)
					}
				}
			}
			credentials[key(p, cur)] = cred
		}
	}
}

// Register installs a credential directly. Used by tests and by providers that
// carry static defaults.
func Register(cred ProviderCredentials) {
	credentials[key(cred.Provider, cred.Currency)] = cred
}

func ByCurrency(provider, currency string) (ProviderCredentials, error) {
	cred, ok := credentials[key(provider, currency)]
	if !ok {
		return ProviderCredentials{}, fmt.Errorf("%w: %s/%s", ErrCurrencyNotSupported, provider, currency)
	}
	return cred, nil
}
