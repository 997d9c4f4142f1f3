// Package i18n provides a small translation table for UI strings, keyed by
// the English text. The language is detected from the system locale and can
// be forced with the CADENCE_LANG environment variable.
package i18n

import (
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

var lang string

var translations = map[string]map[string]string{
	"Work": {
		"pt": "Trabalho",
		"es": "Trabajo",
	},
	"Rest": {
		"pt": "Descanso",
		"es": "Descanso",
	},
	"Pause": {
		"pt": "Pausar",
		"es": "Pausar",
	},
	"Resume": {
		"pt": "Continuar",
		"es": "Continuar",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
	},
	"Settings": {
		"pt": "Configurações",
		"es": "Configuración",
	},
	"Save": {
		"pt": "Salvar",
		"es": "Guardar",
	},
	"Cancel": {
		"pt": "Cancelar",
		"es": "Cancelar",
	},
	"Quit": {
		"pt": "Sair",
		"es": "Salir",
	},
	"Sessions": {
		"pt": "Sessões",
		"es": "Sesiones",
	},
	"Export CSV": {
		"pt": "Exportar CSV",
		"es": "Exportar CSV",
	},
	"Clear history": {
		"pt": "Limpar histórico",
		"es": "Borrar historial",
	},
	"Clear all completed sessions? This cannot be undone.": {
		"pt": "Limpar todas as sessões concluídas? Isso não pode ser desfeito.",
		"es": "¿Borrar todas las sesiones completadas? Esto no se puede deshacer.",
	},
	"No completed sessions to export.": {
		"pt": "Nenhuma sessão concluída para exportar.",
		"es": "No hay sesiones completadas para exportar.",
	},
	"Exported to": {
		"pt": "Exportado para",
		"es": "Exportado a",
	},
}

func init() {
	if forcedLang := strings.TrimSpace(os.Getenv("CADENCE_LANG")); forcedLang != "" {
		lang = forcedLang
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil || len(userLocales) == 0 {
		lang = "en"
		return
	}

	switch {
	case strings.HasPrefix(userLocales[0], "pt"):
		lang = "pt"
	case strings.HasPrefix(userLocales[0], "es"):
		lang = "es"
	default:
		lang = "en"
	}
}

// T returns the translation for key, or the key itself.
func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

// GetLang returns the active language code.
func GetLang() string {
	return lang
}
