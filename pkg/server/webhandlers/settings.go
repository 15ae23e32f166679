package webhandlers

import (
	"html/template"
	"net/http"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"github.com/gatefig/gatefig/config"
	"github.com/gatefig/gatefig/pkg/models"
	"github.com/gatefig/gatefig/pkg/web"
)

type ConfigData struct {
	ConfigHTML   template.HTML
	ConfigString string
	Version      string
}

// redactConfig deep-copies the config and blanks out secrets so the
// settings page can never leak them.
func redactConfig(cfg *config.Config) (*config.Config, error) {
	redacted := config.Config{}
	if err := copier.CopyWithOption(&redacted, cfg, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if redacted.UI.SessionSecret != "" {
		redacted.UI.SessionSecret = "**redacted**"
	}
	return &redacted, nil
}

// getConfigYAMLAndHTML returns the config as a YAML string and a
// highlighted HTML rendering of it
func getConfigYAMLAndHTML(cfg *config.Config) (string, string, error) {
	cfgBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return "", "", err
	}

	configHTML, err := web.CodeHighlight(string(cfgBytes), "yaml")
	if err != nil {
		return "", "", err
	}

	return configHTML, string(cfgBytes), nil
}

func SettingsHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const path = "/settings"

		redactedConfig, err := redactConfig(appState.Config)
		if err != nil {
			handleError(w, err, "failed to redact config")
			return
		}

		configHTML, configYAML, err := getConfigYAMLAndHTML(redactedConfig)
		if err != nil {
			handleError(w, err, "failed to get config HTML")
			return
		}

		configData := ConfigData{
			ConfigHTML:   template.HTML(configHTML), //nolint: gosec
			ConfigString: configYAML,
			Version:      config.VersionString,
		}

		page := web.NewPage(
			"Settings",
			"How the gateway is currently configured",
			path,
			sidebarVisibility(r),
			[]string{
				"templates/pages/settings.html",
				"templates/components/content/*.html",
			},
			configData,
		)

		page.Render(w, r)
	}
}
